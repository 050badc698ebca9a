// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bufrjson

import (
	"errors"

	"github.com/bureau-foundation/bufrjson/lib/descriptor"
	"github.com/bureau-foundation/bufrjson/lib/value"
)

// Decode rebuilds the descriptors and value tree of a [Document].
//
// Records are turned back into strong descriptors (sequence children
// first), then flattened to regenerate the index the encoder used.
// Every leaf's index is checked against that table and its payload is
// handed to valueCodec together with the descriptor. A nil valueCodec
// means [value.StandardCodec].
//
// Failures: [*descriptor.UnknownKindError] or
// [*descriptor.RecordError] for bad records, [*LookupError] for an
// index outside the table, and whatever valueCodec returns, unchanged.
func Decode(document *Document, valueCodec value.Codec) ([]descriptor.Descriptor, value.Node, error) {
	if document == nil {
		return nil, value.Node{}, errors.New("nil document")
	}
	if valueCodec == nil {
		valueCodec = value.StandardCodec{}
	}

	descriptors, err := descriptor.FromRecords(document.Descriptors)
	if err != nil {
		return nil, value.Node{}, err
	}

	flat, err := Flatten(descriptors)
	if err != nil {
		return nil, value.Node{}, err
	}

	data, err := decodeNode(document.Data, flat, valueCodec, nil)
	if err != nil {
		return nil, value.Node{}, err
	}
	return descriptors, data, nil
}

func decodeNode(node DataNode, flat []descriptor.Descriptor, valueCodec value.Codec, path []int) (value.Node, error) {
	if node.IsLeaf() {
		leaf := node.Leaf()
		if leaf.Desc < 0 || leaf.Desc >= len(flat) {
			return value.Node{}, indexOutOfRange(path, leaf.Desc, len(flat))
		}
		decoded, err := valueCodec.Decode(leaf.Val, flat[leaf.Desc])
		if err != nil {
			return value.Node{}, err
		}
		return value.Leaf(decoded), nil
	}

	children := node.Children()
	decoded := make([]value.Node, len(children))
	for i, child := range children {
		var err error
		decoded[i], err = decodeNode(child, flat, valueCodec, append(path, i))
		if err != nil {
			return value.Node{}, err
		}
	}
	return value.Group(decoded...), nil
}
