// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package message

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bureau-foundation/bufrjson/internal/numeric"
	"github.com/bureau-foundation/bufrjson/lib/bufrjson"
	"github.com/bureau-foundation/bufrjson/lib/descriptor"
	"github.com/bureau-foundation/bufrjson/lib/value"
)

// Message is a decoded BUFR message: the descriptors of its
// description section and the value tree of its data section.
type Message struct {
	Descriptors []descriptor.Descriptor
	Data        value.Node
}

// ErrNoTable is returned by [Parse] when the input refers to a
// descriptor by bare code and no table was supplied.
var ErrNoTable = errors.New("bare descriptor code without a table")

// wireMessage and wireLeaf are the native JSON shapes. Descriptors are
// kept raw because each one is either a record array or a bare code.
type wireMessage struct {
	Descriptors []json.RawMessage `json:"descriptors"`
	Data        json.RawMessage   `json:"data"`
}

type wireLeaf struct {
	Descriptor json.RawMessage `json:"descriptor"`
	Raw        any             `json:"raw"`
	Value      any             `json:"value,omitempty"`
}

// Parse reads a message in native JSON form. Bare integer codes are
// resolved through table; sequence codes come back as lazy sequences
// bound to it. Leaf values are rebuilt from "raw" with valueCodec (nil
// means [value.StandardCodec]); the "value" field is informational and
// ignored.
func Parse(data []byte, table descriptor.Table, valueCodec value.Codec) (*Message, error) {
	if valueCodec == nil {
		valueCodec = value.StandardCodec{}
	}

	var wire wireMessage
	if err := decodeJSON(data, &wire); err != nil {
		return nil, fmt.Errorf("parsing message: %w", err)
	}
	if wire.Data == nil {
		return nil, errors.New("parsing message: missing \"data\"")
	}

	resolver := &resolver{table: table}
	descriptors := make([]descriptor.Descriptor, len(wire.Descriptors))
	for i, raw := range wire.Descriptors {
		resolved, err := resolver.resolve(raw)
		if err != nil {
			return nil, fmt.Errorf("descriptors[%d]: %w", i, err)
		}
		descriptors[i] = resolved
	}

	root, err := parseNode(wire.Data, resolver, valueCodec, nil)
	if err != nil {
		return nil, err
	}
	return &Message{Descriptors: descriptors, Data: root}, nil
}

func parseNode(raw json.RawMessage, resolver *resolver, valueCodec value.Codec, path []int) (value.Node, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) == 0 {
		return value.Node{}, fmt.Errorf("data%v: empty node", path)
	}

	switch trimmed[0] {
	case '[':
		var children []json.RawMessage
		if err := json.Unmarshal(trimmed, &children); err != nil {
			return value.Node{}, fmt.Errorf("data%v: %w", path, err)
		}
		nodes := make([]value.Node, len(children))
		for i, child := range children {
			node, err := parseNode(child, resolver, valueCodec, append(path, i))
			if err != nil {
				return value.Node{}, err
			}
			nodes[i] = node
		}
		return value.Group(nodes...), nil

	case '{':
		var leaf wireLeaf
		if err := decodeJSON(trimmed, &leaf); err != nil {
			return value.Node{}, fmt.Errorf("data%v: %w", path, err)
		}
		if leaf.Descriptor == nil {
			return value.Node{}, fmt.Errorf("data%v: leaf has no \"descriptor\"", path)
		}
		d, err := resolver.resolve(leaf.Descriptor)
		if err != nil {
			return value.Node{}, fmt.Errorf("data%v: %w", path, err)
		}
		decoded, err := valueCodec.Decode(leaf.Raw, d)
		if err != nil {
			return value.Node{}, err
		}
		return value.Leaf(decoded), nil

	default:
		return value.Node{}, fmt.Errorf("data%v: node must be an array or an object, got %q", path, trimmed[:1])
	}
}

// resolver turns a descriptor reference into a descriptor. Bare codes
// are looked up once per message.
type resolver struct {
	table descriptor.Table
	seen  map[descriptor.Code]descriptor.Descriptor
}

func (r *resolver) resolve(raw json.RawMessage) (descriptor.Descriptor, error) {
	trimmed := bytes.TrimLeft(raw, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '[' {
		var record descriptor.Record
		if err := decodeJSON(trimmed, &record); err != nil {
			return nil, err
		}
		return descriptor.FromRecord(record)
	}

	var number json.Number
	if err := decodeJSON(trimmed, &number); err != nil {
		return nil, fmt.Errorf("descriptor must be a record or an integer code: %w", err)
	}
	wide, err := numeric.Int64(number)
	if err != nil {
		return nil, fmt.Errorf("descriptor code: %w", err)
	}
	if wide < 0 || wide > int64(^uint32(0)) {
		return nil, fmt.Errorf("descriptor code %d out of range", wide)
	}
	code := descriptor.Code(wide)
	if _, err := descriptor.KindOf(code); err != nil {
		return nil, err
	}

	if d, ok := r.seen[code]; ok {
		return d, nil
	}
	if r.table == nil {
		return nil, fmt.Errorf("descriptor %s: %w", code, ErrNoTable)
	}
	d, err := r.table.Lookup(code)
	if err != nil {
		return nil, err
	}
	if r.seen == nil {
		r.seen = make(map[descriptor.Code]descriptor.Descriptor)
	}
	r.seen[code] = d
	return d, nil
}

// MarshalJSON writes the native form. Every descriptor, at the top
// level and at each leaf, is written as a full record of its strong
// form, so the output reads back without a table.
func (m *Message) MarshalJSON() ([]byte, error) {
	records := make([]descriptor.Record, len(m.Descriptors))
	for i, d := range m.Descriptors {
		strong, err := d.Strong()
		if err != nil {
			return nil, err
		}
		record, err := descriptor.ToRecord(strong)
		if err != nil {
			return nil, err
		}
		records[i] = record
	}

	data, err := nodeWire(m.Data, nil)
	if err != nil {
		return nil, err
	}

	return json.Marshal(struct {
		Descriptors []descriptor.Record `json:"descriptors"`
		Data        any                 `json:"data"`
	}{records, data})
}

func nodeWire(node value.Node, path []int) (any, error) {
	if node.IsLeaf() {
		leaf := node.Value()
		if leaf.Descriptor == nil {
			return nil, fmt.Errorf("data%v: leaf has no descriptor", path)
		}
		strong, err := leaf.Descriptor.Strong()
		if err != nil {
			return nil, fmt.Errorf("data%v: %w", path, err)
		}
		record, err := descriptor.ToRecord(strong)
		if err != nil {
			return nil, fmt.Errorf("data%v: %w", path, err)
		}
		return struct {
			Descriptor descriptor.Record `json:"descriptor"`
			Raw        any               `json:"raw"`
			Value      any               `json:"value"`
		}{record, leaf.Raw, leaf.Decoded}, nil
	}

	children := node.Children()
	result := make([]any, len(children))
	for i, child := range children {
		wire, err := nodeWire(child, append(path, i))
		if err != nil {
			return nil, err
		}
		result[i] = wire
	}
	return result, nil
}

// Document flattens the message. See [bufrjson.Encode].
func (m *Message) Document() (*bufrjson.Document, error) {
	return bufrjson.Encode(m.Descriptors, m.Data)
}

// FromDocument rebuilds a message from a flattened document. See
// [bufrjson.Decode].
func FromDocument(document *bufrjson.Document, valueCodec value.Codec) (*Message, error) {
	descriptors, data, err := bufrjson.Decode(document, valueCodec)
	if err != nil {
		return nil, err
	}
	return &Message{Descriptors: descriptors, Data: data}, nil
}

func decodeJSON(data []byte, target any) error {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	return decoder.Decode(target)
}
