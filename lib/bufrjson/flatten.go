// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package bufrjson

import (
	"fmt"
	"slices"

	"github.com/bureau-foundation/bufrjson/lib/descriptor"
)

// Flatten returns every non-sequence descriptor reachable from
// descriptors, one per code, sorted by ascending code. Sequences are
// expanded and never appear in the result themselves: only the
// descriptors a leaf can refer to get a position.
//
// The result depends only on the set of codes reachable from the
// input, not on their order or on how often they repeat, so flattening
// the descriptors rebuilt from a document reproduces the index the
// encoder used. When a code occurs more than once the first descriptor
// seen is kept.
//
// Errors come from a lazy sequence whose children cannot be resolved
// or that contains itself; strong input never fails.
func Flatten(descriptors []descriptor.Descriptor) ([]descriptor.Descriptor, error) {
	byCode := make(map[descriptor.Code]descriptor.Descriptor)
	if err := collect(descriptors, byCode, nil); err != nil {
		return nil, err
	}

	codes := make([]descriptor.Code, 0, len(byCode))
	for code := range byCode {
		codes = append(codes, code)
	}
	slices.Sort(codes)

	flat := make([]descriptor.Descriptor, len(codes))
	for i, code := range codes {
		flat[i] = byCode[code]
	}
	return flat, nil
}

// collect gathers leaf-capable descriptors into byCode. enclosing holds
// the codes of the sequences being expanded.
func collect(descriptors []descriptor.Descriptor, byCode map[descriptor.Code]descriptor.Descriptor, enclosing []descriptor.Code) error {
	for _, d := range descriptors {
		if sequence, ok := d.(descriptor.SequenceDescriptor); ok {
			if slices.Contains(enclosing, sequence.Code()) {
				return fmt.Errorf("sequence %s contains itself", sequence.Code())
			}
			children, err := sequence.Children()
			if err != nil {
				return err
			}
			if err := collect(children, byCode, append(enclosing, sequence.Code())); err != nil {
				return err
			}
			continue
		}
		if _, seen := byCode[d.Code()]; !seen {
			byCode[d.Code()] = d
		}
	}
	return nil
}

// Index maps each code in a flattened list to its position.
func Index(flat []descriptor.Descriptor) map[descriptor.Code]int {
	positions := make(map[descriptor.Code]int, len(flat))
	for i, d := range flat {
		positions[d.Code()] = i
	}
	return positions
}
