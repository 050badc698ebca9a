// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"github.com/bureau-foundation/bufrjson/lib/descriptor"
)

// Value is one decoded field of a message: the raw payload read from
// the data section, the descriptor that gives it meaning, and the
// decoded form of the payload under that descriptor.
type Value struct {
	Descriptor descriptor.Descriptor

	// Raw is the opaque payload: nil when missing, int64 for numeric
	// fields, string for CCITT IA5 text.
	Raw any

	// Decoded is the physical value: nil when missing, int64 or
	// float64 for numeric fields depending on scale, string for text.
	Decoded any
}

// Missing reports whether the field carries no value.
func (v Value) Missing() bool {
	return v.Decoded == nil
}

// Node is one position in a value tree: either a leaf holding a
// [Value] or a group of child nodes produced by replication or
// sequence expansion. The zero Node is an empty group.
type Node struct {
	leaf     *Value
	children []Node
}

// Leaf returns a leaf node.
func Leaf(v Value) Node {
	return Node{leaf: &v}
}

// Group returns a group node with the given children in order.
func Group(children ...Node) Node {
	if children == nil {
		children = []Node{}
	}
	return Node{children: children}
}

// IsLeaf reports whether the node is a leaf.
func (n Node) IsLeaf() bool {
	return n.leaf != nil
}

// Value returns the leaf's value. It returns the zero Value for
// groups.
func (n Node) Value() Value {
	if n.leaf == nil {
		return Value{}
	}
	return *n.leaf
}

// Children returns the children of a group, or nil for a leaf.
func (n Node) Children() []Node {
	return n.children
}

// Depth returns the nesting depth: 0 for a leaf, 1 for a group of
// leaves (or an empty group), and one more than the deepest child
// otherwise.
func (n Node) Depth() int {
	if n.leaf != nil {
		return 0
	}
	deepest := 0
	for _, child := range n.children {
		if depth := child.Depth(); depth > deepest {
			deepest = depth
		}
	}
	return deepest + 1
}

// Leaves returns the number of leaves under the node.
func (n Node) Leaves() int {
	if n.leaf != nil {
		return 1
	}
	count := 0
	for _, child := range n.children {
		count += child.Leaves()
	}
	return count
}

// Walk calls visit for every leaf in depth-first order. path holds the
// child index at each level; it is reused between calls and must be
// copied if retained. Walk stops at the first error.
func (n Node) Walk(visit func(path []int, v Value) error) error {
	return n.walk(nil, visit)
}

func (n Node) walk(path []int, visit func(path []int, v Value) error) error {
	if n.leaf != nil {
		return visit(path, *n.leaf)
	}
	for i, child := range n.children {
		if err := child.walk(append(path, i), visit); err != nil {
			return err
		}
	}
	return nil
}
