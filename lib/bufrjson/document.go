// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bufrjson

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/bureau-foundation/bufrjson/lib/codec"
	"github.com/bureau-foundation/bufrjson/lib/descriptor"
)

// Document is the flattened, self-describing form of a message. It is
// a snapshot: built once by [Encode], read once by [Decode].
type Document struct {
	// Descriptors are the message's top-level descriptors in their
	// original order, each serialized as a self-contained record with
	// sequence children inlined.
	Descriptors []descriptor.Record `json:"descriptors"`

	// Data mirrors the value tree with each leaf replaced by its
	// position in the flattened descriptor index and its raw payload.
	Data DataNode `json:"data"`
}

// DataNode is a node of the document's value tree: a group of nodes
// (serialized as an array) or an indexed leaf (serialized as
// {"desc": index, "val": payload}).
type DataNode struct {
	leaf     *IndexedValue
	children []DataNode
}

// IndexedValue is a document leaf.
type IndexedValue struct {
	// Desc is the position of the leaf's descriptor in the flattened
	// index.
	Desc int `json:"desc"`

	// Val is the raw payload, copied unchanged from the value.
	Val any `json:"val"`
}

// LeafData returns a leaf node.
func LeafData(index int, payload any) DataNode {
	return DataNode{leaf: &IndexedValue{Desc: index, Val: payload}}
}

// GroupData returns a group node.
func GroupData(children ...DataNode) DataNode {
	if children == nil {
		children = []DataNode{}
	}
	return DataNode{children: children}
}

// IsLeaf reports whether the node is a leaf.
func (n DataNode) IsLeaf() bool { return n.leaf != nil }

// Leaf returns the leaf's index and payload, or the zero value for a
// group.
func (n DataNode) Leaf() IndexedValue {
	if n.leaf == nil {
		return IndexedValue{}
	}
	return *n.leaf
}

// Children returns the children of a group.
func (n DataNode) Children() []DataNode { return n.children }

// Leaves counts the leaves under the node.
func (n DataNode) Leaves() int {
	if n.leaf != nil {
		return 1
	}
	count := 0
	for _, child := range n.children {
		count += child.Leaves()
	}
	return count
}

// Depth returns 0 for a leaf and one more than the deepest child for a
// group.
func (n DataNode) Depth() int {
	if n.leaf != nil {
		return 0
	}
	deepest := 0
	for _, child := range n.children {
		deepest = max(deepest, child.Depth())
	}
	return deepest + 1
}

// leafWire is the serialized leaf. Desc is a pointer so that a leaf
// without an index is rejected instead of silently pointing at
// position zero.
type leafWire struct {
	Desc *int `json:"desc"`
	Val  any  `json:"val"`
}

func (n DataNode) wire() any {
	if n.leaf != nil {
		return leafWire{Desc: &n.leaf.Desc, Val: n.leaf.Val}
	}
	if n.children == nil {
		return []DataNode{}
	}
	return n.children
}

func (n *DataNode) setLeaf(wire leafWire) error {
	if wire.Desc == nil {
		return errors.New("data leaf has no \"desc\" index")
	}
	*n = LeafData(*wire.Desc, wire.Val)
	return nil
}

// MarshalJSON implements json.Marshaler.
func (n DataNode) MarshalJSON() ([]byte, error) {
	return json.Marshal(n.wire())
}

// UnmarshalJSON implements json.Unmarshaler. Leaf payloads are decoded
// with UseNumber so integer payloads keep full precision.
func (n *DataNode) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) == 0 {
		return errors.New("empty data node")
	}
	switch trimmed[0] {
	case '[':
		var children []DataNode
		if err := json.Unmarshal(trimmed, &children); err != nil {
			return err
		}
		*n = GroupData(children...)
		return nil
	case '{':
		decoder := json.NewDecoder(bytes.NewReader(trimmed))
		decoder.UseNumber()
		var wire leafWire
		if err := decoder.Decode(&wire); err != nil {
			return fmt.Errorf("data leaf: %w", err)
		}
		return n.setLeaf(wire)
	default:
		return fmt.Errorf("data node must be an array or an object, got %q", trimmed[:1])
	}
}

// CBOR major types of the two node shapes.
const (
	cborMajorArray = 4
	cborMajorMap   = 5
)

// MarshalCBOR implements cbor.Marshaler.
func (n DataNode) MarshalCBOR() ([]byte, error) {
	return codec.Marshal(n.wire())
}

// UnmarshalCBOR implements cbor.Unmarshaler.
func (n *DataNode) UnmarshalCBOR(data []byte) error {
	if len(data) == 0 {
		return errors.New("empty data node")
	}
	switch data[0] >> 5 {
	case cborMajorArray:
		var children []DataNode
		if err := codec.Unmarshal(data, &children); err != nil {
			return err
		}
		*n = GroupData(children...)
		return nil
	case cborMajorMap:
		var wire leafWire
		if err := codec.Unmarshal(data, &wire); err != nil {
			return fmt.Errorf("data leaf: %w", err)
		}
		return n.setLeaf(wire)
	default:
		return fmt.Errorf("data node must be an array or a map, got CBOR major type %d", data[0]>>5)
	}
}

// EncodeJSON serializes the document as JSON, optionally indented.
func (d *Document) EncodeJSON(indent bool) ([]byte, error) {
	if indent {
		return json.MarshalIndent(d, "", "  ")
	}
	return json.Marshal(d)
}

// EncodeCBOR serializes the document as deterministic CBOR.
func (d *Document) EncodeCBOR() ([]byte, error) {
	return codec.Marshal(d)
}

// documentWire is the decoding shape of a [Document]. Data is a
// pointer so that an absent or null tree is caught.
type documentWire struct {
	Descriptors []descriptor.Record `json:"descriptors"`
	Data        *DataNode           `json:"data"`
}

func (w *documentWire) document() (*Document, error) {
	if w.Data == nil {
		return nil, ErrMissingData
	}
	return &Document{Descriptors: w.Descriptors, Data: *w.Data}, nil
}

// ParseJSON reads a document from its JSON form.
func ParseJSON(data []byte) (*Document, error) {
	decoder := json.NewDecoder(bytes.NewReader(data))
	decoder.UseNumber()
	var wire documentWire
	if err := decoder.Decode(&wire); err != nil {
		return nil, fmt.Errorf("parsing JSON document: %w", err)
	}
	document, err := wire.document()
	if err != nil {
		return nil, fmt.Errorf("parsing JSON document: %w", err)
	}
	return document, nil
}

// ParseCBOR reads a document from its CBOR form.
func ParseCBOR(data []byte) (*Document, error) {
	var wire documentWire
	if err := codec.Unmarshal(data, &wire); err != nil {
		return nil, fmt.Errorf("parsing CBOR document: %w", err)
	}
	document, err := wire.document()
	if err != nil {
		return nil, fmt.Errorf("parsing CBOR document: %w", err)
	}
	return document, nil
}

// Format names a serialization of a [Document].
type Format string

const (
	FormatJSON Format = "json"
	FormatCBOR Format = "cbor"
)

// DetectFormat guesses the serialization of data: a JSON document
// starts with '{' after optional whitespace, anything else is taken to
// be CBOR.
func DetectFormat(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if len(trimmed) > 0 && trimmed[0] == '{' {
		return FormatJSON
	}
	return FormatCBOR
}

// Parse reads a document in whichever format [DetectFormat] reports.
func Parse(data []byte) (*Document, error) {
	if DetectFormat(data) == FormatJSON {
		return ParseJSON(data)
	}
	return ParseCBOR(data)
}

// Serialize writes the document in the given format. indent only
// affects JSON.
func (d *Document) Serialize(format Format, indent bool) ([]byte, error) {
	switch format {
	case FormatJSON:
		return d.EncodeJSON(indent)
	case FormatCBOR:
		return d.EncodeCBOR()
	default:
		return nil, fmt.Errorf("unknown document format %q", format)
	}
}
