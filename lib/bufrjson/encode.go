// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bufrjson

import (
	"github.com/bureau-foundation/bufrjson/lib/descriptor"
	"github.com/bureau-foundation/bufrjson/lib/value"
)

// Encode flattens a message into a [Document].
//
// Every descriptor is strengthened first, so lazy sequences are
// resolved through their tables exactly once and the document no
// longer depends on any table. The strong descriptors (not the
// flattened list) become the document's records, which keeps sequence
// grouping intact. Each leaf of data is replaced by its descriptor's
// position in the flattened index and its raw payload.
//
// A leaf whose descriptor code is not reachable from descriptors fails
// with [*LookupError].
func Encode(descriptors []descriptor.Descriptor, data value.Node) (*Document, error) {
	strong := make([]descriptor.Descriptor, len(descriptors))
	for i, d := range descriptors {
		resolved, err := d.Strong()
		if err != nil {
			return nil, err
		}
		strong[i] = resolved
	}

	flat, err := Flatten(strong)
	if err != nil {
		return nil, err
	}
	positions := Index(flat)

	records, err := descriptor.ToRecords(strong)
	if err != nil {
		return nil, err
	}

	encoded, err := encodeNode(data, positions, nil)
	if err != nil {
		return nil, err
	}

	return &Document{Descriptors: records, Data: encoded}, nil
}

func encodeNode(node value.Node, positions map[descriptor.Code]int, path []int) (DataNode, error) {
	if node.IsLeaf() {
		leaf := node.Value()
		if leaf.Descriptor == nil {
			return DataNode{}, missingDescriptor(path, len(positions))
		}
		position, ok := positions[leaf.Descriptor.Code()]
		if !ok {
			return DataNode{}, missingCode(path, leaf.Descriptor.Code(), len(positions))
		}
		return LeafData(position, leaf.Raw), nil
	}

	children := node.Children()
	encoded := make([]DataNode, len(children))
	for i, child := range children {
		var err error
		encoded[i], err = encodeNode(child, positions, append(path, i))
		if err != nil {
			return DataNode{}, err
		}
	}
	return GroupData(encoded...), nil
}
