// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package descriptor

import (
	"fmt"
	"math"

	"github.com/bureau-foundation/bufrjson/internal/numeric"
)

// Record is the self-contained serialized form of a descriptor: an
// ordered tuple whose first element is the code. The remaining
// elements depend on the kind:
//
//	element:     [code, length, scale, reference, significance, unit]
//	replication: [code, length, fields, count, significance]
//	operator:    [code, length, operation, operand, significance]
//	sequence:    [code, length, [codes...], significance, [records...]]
//
// Records marshal as plain arrays in both JSON and CBOR.
type Record []any

const (
	elementArity     = 6
	replicationArity = 5
	operatorArity    = 5
	sequenceArity    = 5
)

// ToRecord serializes a strong descriptor. Sequence records inline
// their children recursively. Lazy sequences must be strengthened
// first.
func ToRecord(d Descriptor) (Record, error) {
	switch typed := d.(type) {
	case *Element:
		return Record{int(typed.code), typed.Length, typed.Scale, typed.Reference, typed.Significance, typed.Unit}, nil
	case *Replication:
		return Record{int(typed.code), typed.Length, typed.Fields, typed.Count, typed.Significance}, nil
	case *Operator:
		return Record{int(typed.code), typed.Length, typed.Operation, typed.Operand, typed.Significance}, nil
	case *Sequence:
		codes := make([]any, len(typed.Codes))
		for i, code := range typed.Codes {
			codes[i] = int(code)
		}
		children := make([]any, len(typed.Descriptors))
		for i, child := range typed.Descriptors {
			record, err := ToRecord(child)
			if err != nil {
				return nil, err
			}
			children[i] = record
		}
		return Record{int(typed.code), typed.Length, codes, typed.Significance, children}, nil
	case *LazySequence:
		return nil, fmt.Errorf("descriptor %s: lazy sequence must be strengthened before serialization", typed.code)
	default:
		return nil, fmt.Errorf("descriptor %T: unsupported variant", d)
	}
}

// ToRecords serializes a list of strong descriptors.
func ToRecords(descriptors []Descriptor) ([]Record, error) {
	records := make([]Record, len(descriptors))
	for i, d := range descriptors {
		record, err := ToRecord(d)
		if err != nil {
			return nil, err
		}
		records[i] = record
	}
	return records, nil
}

// FromRecord rebuilds a descriptor from its record, dispatching on the
// kind tag in the code. Sequence children are decoded first and the
// result is always a strong [*Sequence].
func FromRecord(record Record) (Descriptor, error) {
	return fromRecord(record, []int{0})
}

// FromRecords rebuilds a list of descriptors.
func FromRecords(records []Record) ([]Descriptor, error) {
	descriptors := make([]Descriptor, len(records))
	for i, record := range records {
		d, err := fromRecord(record, []int{i})
		if err != nil {
			return nil, err
		}
		descriptors[i] = d
	}
	return descriptors, nil
}

func fromRecord(record Record, path []int) (Descriptor, error) {
	fields := recordFields{record: record, path: path}
	if len(record) == 0 {
		return nil, fields.fail("empty record")
	}
	rawCode, err := numeric.Int64(record[0])
	if err != nil {
		return nil, fields.fail(fmt.Sprintf("code: %v", err))
	}
	if rawCode < 0 || rawCode > math.MaxUint32 {
		return nil, fields.fail(fmt.Sprintf("code %d out of range", rawCode))
	}
	code := Code(rawCode)
	kind, err := KindOf(code)
	if err != nil {
		return nil, err
	}

	switch kind {
	case KindElement:
		if err := fields.arity(elementArity); err != nil {
			return nil, err
		}
		element := NewElement(code,
			fields.intAt(1, "length"),
			fields.intAt(2, "scale"),
			fields.intAt(3, "reference"),
			fields.stringAt(4, "significance"),
			fields.stringAt(5, "unit"),
		)
		if fields.err != nil {
			return nil, fields.err
		}
		return element, nil

	case KindReplication:
		if err := fields.arity(replicationArity); err != nil {
			return nil, err
		}
		replication := NewReplication(code,
			fields.intAt(1, "length"),
			fields.intAt(2, "fields"),
			fields.intAt(3, "count"),
			fields.stringAt(4, "significance"),
		)
		if fields.err != nil {
			return nil, fields.err
		}
		return replication, nil

	case KindOperator:
		if err := fields.arity(operatorArity); err != nil {
			return nil, err
		}
		operator := NewOperator(code,
			fields.intAt(1, "length"),
			fields.intAt(2, "operation"),
			fields.intAt(3, "operand"),
			fields.stringAt(4, "significance"),
		)
		if fields.err != nil {
			return nil, fields.err
		}
		return operator, nil

	case KindSequence:
		if err := fields.arity(sequenceArity); err != nil {
			return nil, err
		}
		length := fields.intAt(1, "length")
		codes := fields.codes(2)
		significance := fields.stringAt(3, "significance")
		childRecords := fields.list(4, "children")
		if fields.err != nil {
			return nil, fields.err
		}
		children := make([]Descriptor, len(childRecords))
		for i, childRecord := range childRecords {
			nested, ok := asRecord(childRecord)
			if !ok {
				return nil, (&recordFields{path: childPath(path, i)}).fail(fmt.Sprintf("expected a record, got %T", childRecord))
			}
			child, err := fromRecord(nested, childPath(path, i))
			if err != nil {
				return nil, err
			}
			children[i] = child
		}
		return NewSequence(code, length, codes, significance, children), nil
	}

	// KindOf only returns the four kinds above.
	return nil, &UnknownKindError{Code: code, Tag: uint32(kind)}
}

func childPath(path []int, index int) []int {
	child := make([]int, len(path)+1)
	copy(child, path)
	child[len(path)] = index
	return child
}

func asRecord(v any) (Record, bool) {
	switch typed := v.(type) {
	case Record:
		return typed, true
	case []any:
		return Record(typed), true
	default:
		return nil, false
	}
}

// recordFields extracts typed tuple elements, remembering the first
// failure so that constructors can be called with every field inline.
type recordFields struct {
	record Record
	path   []int
	err    error
}

func (f *recordFields) fail(reason string) error {
	if f.err == nil {
		f.err = &RecordError{Path: f.path, Reason: reason}
	}
	return f.err
}

func (f *recordFields) arity(want int) error {
	if len(f.record) != want {
		return f.fail(fmt.Sprintf("want %d elements, got %d", want, len(f.record)))
	}
	return nil
}

func (f *recordFields) intAt(index int, name string) int {
	value, err := numeric.Int(f.record[index])
	if err != nil {
		f.fail(fmt.Sprintf("%s: %v", name, err))
		return 0
	}
	return value
}

func (f *recordFields) stringAt(index int, name string) string {
	switch value := f.record[index].(type) {
	case string:
		return value
	case nil:
		return ""
	default:
		f.fail(fmt.Sprintf("%s: expected a string, got %T", name, value))
		return ""
	}
}

func (f *recordFields) list(index int, name string) []any {
	switch value := f.record[index].(type) {
	case []any:
		return value
	case Record:
		return value
	case []Record:
		list := make([]any, len(value))
		for i, record := range value {
			list[i] = record
		}
		return list
	case nil:
		return nil
	default:
		f.fail(fmt.Sprintf("%s: expected a list, got %T", name, value))
		return nil
	}
}

func (f *recordFields) codes(index int) []Code {
	var elements []any
	switch value := f.record[index].(type) {
	case []Code:
		return value
	case []int:
		codes := make([]Code, len(value))
		for i, code := range value {
			codes[i] = Code(code)
		}
		return codes
	default:
		elements = f.list(index, "codes")
	}
	codes := make([]Code, len(elements))
	for i, element := range elements {
		code, err := numeric.Int64(element)
		if err != nil || code < 0 || code > math.MaxUint32 {
			f.fail(fmt.Sprintf("codes[%d]: expected a descriptor code, got %v", i, element))
			return nil
		}
		codes[i] = Code(code)
	}
	return codes
}
