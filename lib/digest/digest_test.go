// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/bureau-foundation/bufrjson/lib/descriptor"
)

func stationRecords() []descriptor.Record {
	return []descriptor.Record{
		{1, 7, 0, 0, "WMO block number", "Numeric"},
		{2, 10, 0, 0, "WMO station number", "Numeric"},
	}
}

func TestDescriptorSetDeterministic(t *testing.T) {
	first, err := DescriptorSet(stationRecords())
	if err != nil {
		t.Fatalf("DescriptorSet: %v", err)
	}
	second, err := DescriptorSet(stationRecords())
	if err != nil {
		t.Fatalf("DescriptorSet: %v", err)
	}
	if first != second {
		t.Errorf("equal records hashed differently: %s vs %s", first, second)
	}
}

func TestDescriptorSetIgnoresNumericRepresentation(t *testing.T) {
	const text = `[[1,7,0,0,"WMO block number","Numeric"],[2,10,0,0,"WMO station number","Numeric"]]`

	var floats []descriptor.Record
	if err := json.Unmarshal([]byte(text), &floats); err != nil {
		t.Fatalf("json.Unmarshal: %v", err)
	}
	var numbers []descriptor.Record
	decoder := json.NewDecoder(strings.NewReader(text))
	decoder.UseNumber()
	if err := decoder.Decode(&numbers); err != nil {
		t.Fatalf("Decode: %v", err)
	}

	want, err := DescriptorSet(stationRecords())
	if err != nil {
		t.Fatalf("DescriptorSet: %v", err)
	}
	for name, records := range map[string][]descriptor.Record{"float64": floats, "json.Number": numbers} {
		got, err := DescriptorSet(records)
		if err != nil {
			t.Fatalf("%s: DescriptorSet: %v", name, err)
		}
		if got != want {
			t.Errorf("%s records hash to %s, in-memory to %s", name, got, want)
		}
	}
}

func TestDescriptorSetRejectsMalformedRecords(t *testing.T) {
	if _, err := DescriptorSet([]descriptor.Record{{1, 7}}); !errors.Is(err, descriptor.ErrMalformedRecord) {
		t.Errorf("DescriptorSet error = %v, want ErrMalformedRecord", err)
	}
}

func TestDescriptorSetOrderSensitive(t *testing.T) {
	records := stationRecords()
	reversed := []descriptor.Record{records[1], records[0]}
	a, _ := DescriptorSet(records)
	b, _ := DescriptorSet(reversed)
	if a == b {
		t.Error("reordered records should hash differently")
	}
}

func TestDomainSeparation(t *testing.T) {
	data := []byte("same bytes")
	if keyedHash(descriptorsDomainKey, data) == Document(data) {
		t.Error("descriptor and document domains produced the same hash")
	}
}

func TestParseRoundTrip(t *testing.T) {
	hash := Document([]byte(`{"descriptors":[],"data":[]}`))
	text := hash.String()
	if len(text) != 64 {
		t.Fatalf("String() length = %d, want 64", len(text))
	}
	if hash.Short() != text[:12] {
		t.Errorf("Short() = %q, want %q", hash.Short(), text[:12])
	}
	parsed, err := Parse(text)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed != hash {
		t.Error("Parse(String()) did not round trip")
	}

	for _, bad := range []string{"zz", "abcd"} {
		if _, err := Parse(bad); err == nil {
			t.Errorf("Parse(%q) should fail", bad)
		}
	}
}
