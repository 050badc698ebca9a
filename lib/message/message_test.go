// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package message

import (
	"errors"
	"fmt"
	"testing"

	"github.com/bureau-foundation/bufrjson/lib/bufrjson"
	"github.com/bureau-foundation/bufrjson/lib/descriptor"
	"github.com/bureau-foundation/bufrjson/lib/value"
)

func stationTable() *descriptor.MapTable {
	table := descriptor.NewMapTable()
	table.AddElement(descriptor.NewElement(0x0001, 7, 0, 0, "WMO block number", "Numeric"))
	table.AddElement(descriptor.NewElement(0x0002, 10, 0, 0, "WMO station number", "Numeric"))
	table.AddElement(descriptor.NewElement(descriptor.FXY(0, 12, 101), 16, 2, 0, "Temperature", "K"))
	table.AddSequence(0xC001, "Station", 0x0001, 0x0002)
	return table
}

const bareMessage = `{
  "descriptors": [49153, 3173],
  "data": [
    [{"descriptor": 1, "raw": 2}, {"descriptor": 2, "raw": 974, "value": 974}],
    {"descriptor": 3173, "raw": 29315},
    {"descriptor": 3173, "raw": null}
  ]
}`

func TestParseBareCodes(t *testing.T) {
	message, err := Parse([]byte(bareMessage), stationTable(), nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if len(message.Descriptors) != 2 {
		t.Fatalf("got %d descriptors, want 2", len(message.Descriptors))
	}
	if _, ok := message.Descriptors[0].(*descriptor.LazySequence); !ok {
		t.Errorf("sequence code resolved to %T, want *descriptor.LazySequence", message.Descriptors[0])
	}

	children := message.Data.Children()
	if len(children) != 3 || children[0].IsLeaf() {
		t.Fatalf("unexpected tree shape: %d children", len(children))
	}
	if got := children[1].Value().Decoded; got != 293.15 {
		t.Errorf("temperature = %#v, want 293.15", got)
	}
	if !children[2].Value().Missing() {
		t.Errorf("null raw should decode as missing, got %#v", children[2].Value().Decoded)
	}
	if got := children[0].Children()[1].Value().Raw; got != int64(974) {
		t.Errorf("station raw = %#v, want int64(974)", got)
	}
}

func TestParseWithoutTable(t *testing.T) {
	_, err := Parse([]byte(bareMessage), nil, nil)
	if !errors.Is(err, ErrNoTable) {
		t.Fatalf("Parse error = %v, want ErrNoTable", err)
	}
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  error
	}{
		{"unknown code", `{"descriptors":[1],"data":[{"descriptor":9,"raw":1}]}`, descriptor.ErrNotFound},
		{"unknown kind", `{"descriptors":[65537],"data":[]}`, descriptor.ErrUnknownKind},
		{"malformed record", `{"descriptors":[[1,7]],"data":[]}`, descriptor.ErrMalformedRecord},
		{"malformed payload", `{"descriptors":[1],"data":[{"descriptor":1,"raw":"x"}]}`, value.ErrMalformedPayload},
		{"missing data", `{"descriptors":[1]}`, nil},
		{"leaf without descriptor", `{"descriptors":[1],"data":[{"raw":1}]}`, nil},
		{"scalar node", `{"descriptors":[1],"data":[1]}`, nil},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse([]byte(test.input), stationTable(), nil)
			if err == nil {
				t.Fatal("Parse succeeded, want error")
			}
			if test.want != nil && !errors.Is(err, test.want) {
				t.Errorf("Parse error = %v, want %v", err, test.want)
			}
		})
	}
}

func TestMarshalReadsBackWithoutTable(t *testing.T) {
	original, err := Parse([]byte(bareMessage), stationTable(), nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	data, err := original.MarshalJSON()
	if err != nil {
		t.Fatalf("MarshalJSON: %v", err)
	}

	reread, err := Parse(data, nil, nil)
	if err != nil {
		t.Fatalf("Parse of marshalled message: %v\n%s", err, data)
	}
	if _, ok := reread.Descriptors[0].(*descriptor.Sequence); !ok {
		t.Errorf("reread sequence is %T, want strong *descriptor.Sequence", reread.Descriptors[0])
	}
	assertSameLeaves(t, reread.Data, original.Data)
}

func TestDocumentRoundTrip(t *testing.T) {
	original, err := Parse([]byte(bareMessage), stationTable(), nil)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	document, err := original.Document()
	if err != nil {
		t.Fatalf("Document: %v", err)
	}
	serialized, err := document.EncodeJSON(false)
	if err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}
	parsed, err := bufrjson.ParseJSON(serialized)
	if err != nil {
		t.Fatalf("ParseJSON: %v", err)
	}
	restored, err := FromDocument(parsed, nil)
	if err != nil {
		t.Fatalf("FromDocument: %v", err)
	}
	if restored.Data.Depth() != original.Data.Depth() {
		t.Errorf("depth = %d, want %d", restored.Data.Depth(), original.Data.Depth())
	}
	assertSameLeaves(t, restored.Data, original.Data)
}

func TestFromDocumentPropagatesLookupErrors(t *testing.T) {
	document := &bufrjson.Document{
		Descriptors: []descriptor.Record{{1, 7, 0, 0, "", "Numeric"}},
		Data:        bufrjson.GroupData(bufrjson.LeafData(3, 1)),
	}
	if _, err := FromDocument(document, nil); !errors.Is(err, bufrjson.ErrLookup) {
		t.Errorf("FromDocument error = %v, want ErrLookup", err)
	}
}

func assertSameLeaves(t *testing.T, got, want value.Node) {
	t.Helper()
	type leaf struct {
		path string
		code descriptor.Code
		raw  any
	}
	collect := func(node value.Node) []leaf {
		var leaves []leaf
		node.Walk(func(path []int, v value.Value) error {
			leaves = append(leaves, leaf{path: fmt.Sprint(path), code: v.Descriptor.Code(), raw: v.Raw})
			return nil
		})
		return leaves
	}
	g, w := collect(got), collect(want)
	if len(g) != len(w) {
		t.Fatalf("got %d leaves, want %d", len(g), len(w))
	}
	for i := range w {
		if g[i] != w[i] {
			t.Errorf("leaf %d = %+v, want %+v", i, g[i], w[i])
		}
	}
}
