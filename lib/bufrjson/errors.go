// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bufrjson

import (
	"errors"
	"fmt"

	"github.com/bureau-foundation/bufrjson/lib/descriptor"
)

// ErrLookup matches [*LookupError].
var ErrLookup = errors.New("descriptor lookup failed")

// ErrMissingData is returned by [ParseJSON] and [ParseCBOR] for a
// document without a "data" tree. An empty message has "data": [].
var ErrMissingData = errors.New("document has no \"data\"")

// LookupError reports a leaf that cannot be matched against the
// flattened descriptor index: on encode, a leaf whose descriptor code
// is not in the index; on decode, an index outside the table. Either
// way the input is malformed or the caller broke the contract that the
// descriptor list covers the value tree.
type LookupError struct {
	// Path is the child index at each level from the root to the leaf.
	Path []int

	// Code is the leaf's descriptor code (encode side).
	Code descriptor.Code

	// Index is the out-of-range position (decode side).
	Index int

	// Size is the number of entries in the index table.
	Size int

	reason string
}

func (err *LookupError) Error() string {
	return fmt.Sprintf("data%v: %s", err.Path, err.reason)
}

func (err *LookupError) Is(target error) bool {
	return target == ErrLookup
}

func missingCode(path []int, code descriptor.Code, size int) *LookupError {
	return &LookupError{
		Path:   clonePath(path),
		Code:   code,
		Index:  -1,
		Size:   size,
		reason: fmt.Sprintf("descriptor %s is not in the index table (%d entries)", code, size),
	}
}

func missingDescriptor(path []int, size int) *LookupError {
	return &LookupError{
		Path:   clonePath(path),
		Index:  -1,
		Size:   size,
		reason: "leaf has no descriptor",
	}
}

func indexOutOfRange(path []int, index, size int) *LookupError {
	return &LookupError{
		Path:   clonePath(path),
		Index:  index,
		Size:   size,
		reason: fmt.Sprintf("descriptor index %d is outside the index table (%d entries)", index, size),
	}
}

func clonePath(path []int) []int {
	return append([]int{}, path...)
}
