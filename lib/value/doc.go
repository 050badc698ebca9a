// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package value holds the data side of a decoded BUFR message.
//
// A [Value] pairs a raw payload with the descriptor that defines it.
// Values are arranged in a tree of [Node]s: leaves hold values, groups
// hold the nested lists produced by replication and sequence
// expansion. Whether a node is a leaf or a group is fixed when it is
// built with [Leaf] or [Group].
//
// [Codec] reconstructs a Value from a payload and a descriptor.
// [StandardCodec] implements the usual BUFR rules (missing-value
// detection, scale and reference, CCITT IA5 text) from the fields the
// descriptor carries, without any external table.
package value
