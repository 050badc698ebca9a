// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package descriptor

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownKind matches [*UnknownKindError].
	ErrUnknownKind = errors.New("unknown descriptor kind")

	// ErrMalformedRecord matches [*RecordError].
	ErrMalformedRecord = errors.New("malformed descriptor record")

	// ErrNotFound is returned by tables for codes they do not define.
	ErrNotFound = errors.New("descriptor not found")
)

// UnknownKindError reports a code whose kind tag is outside the four
// descriptor kinds.
type UnknownKindError struct {
	Code Code
	Tag  uint32
}

func (err *UnknownKindError) Error() string {
	return fmt.Sprintf("descriptor %s: kind tag %d is not element, replication, operator, or sequence", err.Code, err.Tag)
}

func (err *UnknownKindError) Is(target error) bool {
	return target == ErrUnknownKind
}

// RecordError reports a serialized descriptor record that cannot be
// turned back into a descriptor.
type RecordError struct {
	// Path locates the record: the top-level position followed by
	// child positions inside enclosing sequence records.
	Path []int

	// Reason describes what is wrong with the record.
	Reason string
}

func (err *RecordError) Error() string {
	return fmt.Sprintf("descriptor record %v: %s", err.Path, err.Reason)
}

func (err *RecordError) Is(target error) bool {
	return target == ErrMalformedRecord
}
