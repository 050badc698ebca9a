// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"encoding/json"
	"errors"
	"math"
	"testing"

	"github.com/bureau-foundation/bufrjson/lib/descriptor"
)

var (
	blockNumber = descriptor.NewElement(descriptor.FXY(0, 1, 1), 7, 0, 0, "WMO block number", "Numeric")
	temperature = descriptor.NewElement(descriptor.FXY(0, 12, 101), 16, 2, 0, "Temperature", "K")
	pressure    = descriptor.NewElement(descriptor.FXY(0, 10, 4), 14, -1, 0, "Pressure", "Pa")
	stationName = descriptor.NewElement(descriptor.FXY(0, 1, 15), 160, 0, 0, "Station name", UnitText)
	delayed     = descriptor.NewReplication(descriptor.FXY(1, 1, 0), 0, 1, 0, "")
	widthChange = descriptor.NewOperator(descriptor.FXY(2, 1, 131), 0, 1, 131, "")
)

// wideElement has a 64-bit width, so no payload reads as missing.
func wideElement(scale, reference int) *descriptor.Element {
	return descriptor.NewElement(descriptor.FXY(0, 33, 7), 64, scale, reference, "Wide", "Numeric")
}

func TestStandardCodecDecode(t *testing.T) {
	tests := []struct {
		name       string
		descriptor descriptor.Descriptor
		payload    any
		wantRaw    any
		wantValue  any
	}{
		{"integer", blockNumber, 12, int64(12), int64(12)},
		{"json float", blockNumber, float64(12), int64(12), int64(12)},
		{"json number", blockNumber, json.Number("12"), int64(12), int64(12)},
		{"cbor unsigned", blockNumber, uint64(12), int64(12), int64(12)},
		{"missing payload", blockNumber, nil, nil, nil},
		{"all bits set", blockNumber, 127, int64(127), nil},
		{"positive scale", temperature, 29315, int64(29315), 293.15},
		{"negative scale", pressure, 10132, int64(10132), int64(101320)},
		{"largest scale that fits", wideElement(-18, 0), 9, int64(9), int64(9_000_000_000_000_000_000)},
		{"zero at extreme scale", wideElement(-400, 0), 0, int64(0), int64(0)},
		{"text", stationName, "HELSINKI  \x00", "HELSINKI  \x00", "HELSINKI"},
		{"replication", delayed, 3, int64(3), int64(3)},
		{"operator", widthChange, 0, int64(0), int64(0)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			decoded, err := StandardCodec{}.Decode(test.payload, test.descriptor)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if decoded.Descriptor != test.descriptor {
				t.Errorf("Descriptor = %v, want %v", decoded.Descriptor, test.descriptor)
			}
			if decoded.Raw != test.wantRaw {
				t.Errorf("Raw = %#v, want %#v", decoded.Raw, test.wantRaw)
			}
			if decoded.Decoded != test.wantValue {
				t.Errorf("Decoded = %#v, want %#v", decoded.Decoded, test.wantValue)
			}
			if decoded.Missing() != (test.wantValue == nil) {
				t.Errorf("Missing() = %v", decoded.Missing())
			}
		})
	}
}

func TestStandardCodecMalformed(t *testing.T) {
	sequence := descriptor.NewSequence(descriptor.FXY(3, 1, 1), 0, nil, "", []descriptor.Descriptor{blockNumber})
	tests := []struct {
		name       string
		descriptor descriptor.Descriptor
		payload    any
	}{
		{"string for numeric", blockNumber, "twelve"},
		{"fraction for numeric", temperature, 1.5},
		{"number for text", stationName, 42},
		{"string for replication", delayed, "3"},
		{"value for sequence", sequence, 1},
		{"scale overflow", wideElement(-19, 0), 1},
		{"scaled value overflow", wideElement(-2, 0), int64(math.MaxInt64 / 10)},
		{"reference overflow", wideElement(0, 1), int64(math.MaxInt64)},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			_, err := StandardCodec{}.Decode(test.payload, test.descriptor)
			if !errors.Is(err, ErrMalformedPayload) {
				t.Fatalf("Decode error = %v, want ErrMalformedPayload", err)
			}
			var payloadError *PayloadError
			if !errors.As(err, &payloadError) || payloadError.Code != test.descriptor.Code() {
				t.Errorf("PayloadError = %+v", payloadError)
			}
		})
	}
}

func TestNodeShape(t *testing.T) {
	leaf := func(raw int) Node {
		decoded, err := StandardCodec{}.Decode(raw, blockNumber)
		if err != nil {
			t.Fatalf("Decode: %v", err)
		}
		return Leaf(decoded)
	}

	tree := Group(
		leaf(1),
		Group(leaf(2), Group(leaf(3), leaf(4))),
		Group(),
	)

	if tree.IsLeaf() {
		t.Fatal("group reports IsLeaf")
	}
	if got := tree.Depth(); got != 3 {
		t.Errorf("Depth() = %d, want 3", got)
	}
	if got := tree.Leaves(); got != 4 {
		t.Errorf("Leaves() = %d, want 4", got)
	}
	if got := len(tree.Children()); got != 3 {
		t.Errorf("len(Children()) = %d, want 3", got)
	}
	if got := Group().Depth(); got != 1 {
		t.Errorf("empty group Depth() = %d, want 1", got)
	}
	if got := leaf(9).Depth(); got != 0 {
		t.Errorf("leaf Depth() = %d, want 0", got)
	}
	if (Node{}).Children() != nil || (Node{}).IsLeaf() {
		t.Error("zero Node should be an empty group")
	}

	var visited []int64
	var paths [][]int
	err := tree.Walk(func(path []int, v Value) error {
		visited = append(visited, v.Raw.(int64))
		paths = append(paths, append([]int(nil), path...))
		return nil
	})
	if err != nil {
		t.Fatalf("Walk: %v", err)
	}
	if len(visited) != 4 || visited[0] != 1 || visited[3] != 4 {
		t.Errorf("visited = %v, want [1 2 3 4]", visited)
	}
	if len(paths[3]) != 3 || paths[3][0] != 1 || paths[3][1] != 1 || paths[3][2] != 1 {
		t.Errorf("path of last leaf = %v, want [1 1 1]", paths[3])
	}

	stop := errors.New("stop")
	count := 0
	err = tree.Walk(func([]int, Value) error {
		count++
		return stop
	})
	if !errors.Is(err, stop) || count != 1 {
		t.Errorf("Walk did not stop at first error: err=%v count=%d", err, count)
	}
}
