// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package descriptor models BUFR descriptors.
//
// A descriptor identifies what a field in a BUFR message means and
// what structural role it plays. Its packed FXY [Code] carries the
// kind in the F field (bits 14-15):
//
//   - F=0 [*Element] -- a leaf field with bit width, scale, reference
//     value and unit
//   - F=1 [*Replication] -- repeats the following descriptors
//   - F=2 [*Operator] -- modifies how later descriptors are read
//   - F=3 [*Sequence] / [*LazySequence] -- expands to child descriptors
//
// The variant set is closed. Code that needs kind-specific behavior
// switches on the concrete type or on [Descriptor.Kind].
//
// Sequences come in two strengths. A [*LazySequence] knows only its
// child codes and resolves them through a [Table] when asked. A
// [*Sequence] holds the resolved children. [Descriptor.Strong] turns
// any descriptor into its strong form in one eager pass; everything
// downstream of that call works on strong descriptors only.
//
// [Record] is the self-contained tuple form used in serialized
// documents. [ToRecord] and [FromRecord] convert in both directions;
// FromRecord is the single place where a kind tag read from untrusted
// input is dispatched.
//
// [MapTable] is a small in-memory table, loadable from YAML or JSONC
// files with [LoadTable]. Full WMO table management is outside this
// package.
package descriptor
