// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package descriptor

import "fmt"

// Descriptor is one of the closed set of descriptor variants:
// [*Element], [*Replication], [*Operator], [*Sequence], and
// [*LazySequence]. The variant is fixed at construction and reported
// by Kind; nothing re-derives it from the code afterwards.
type Descriptor interface {
	// Code returns the packed FXY code. Two descriptors with the same
	// code are the same descriptor within a message.
	Code() Code

	// Kind returns the structural role of the descriptor.
	Kind() Kind

	// Strong returns a fully materialized form of the descriptor. For
	// everything except sequences this is the receiver. Lazy sequences
	// resolve their children through their table, recursively.
	Strong() (Descriptor, error)

	sealed()
}

// SequenceDescriptor is the read capability shared by lazy and strong
// sequences.
type SequenceDescriptor interface {
	Descriptor

	// Children returns the descriptors the sequence expands to, in
	// order. Strong sequences return their stored slice; lazy ones
	// look each child up in their table.
	Children() ([]Descriptor, error)
}

type header struct {
	code Code
}

func (h header) Code() Code { return h.code }

func (header) sealed() {}

// Element is a leaf descriptor (F=0). Length is the bit width of the
// raw value; Scale and Reference turn the raw integer into a physical
// value.
type Element struct {
	header
	Length       int
	Scale        int
	Reference    int
	Significance string
	Unit         string
}

// NewElement returns an element descriptor.
func NewElement(code Code, length, scale, reference int, significance, unit string) *Element {
	return &Element{
		header:       header{code: code},
		Length:       length,
		Scale:        scale,
		Reference:    reference,
		Significance: significance,
		Unit:         unit,
	}
}

func (*Element) Kind() Kind { return KindElement }

func (e *Element) Strong() (Descriptor, error) { return e, nil }

// Replication is a repetition marker (F=1). Fields is the number of
// following descriptors replicated and Count the repetition count,
// zero for delayed replication.
type Replication struct {
	header
	Length       int
	Fields       int
	Count        int
	Significance string
}

// NewReplication returns a replication descriptor.
func NewReplication(code Code, length, fields, count int, significance string) *Replication {
	return &Replication{
		header:       header{code: code},
		Length:       length,
		Fields:       fields,
		Count:        count,
		Significance: significance,
	}
}

func (*Replication) Kind() Kind { return KindReplication }

func (r *Replication) Strong() (Descriptor, error) { return r, nil }

// Operator modifies how later descriptors are interpreted (F=2).
type Operator struct {
	header
	Length       int
	Operation    int
	Operand      int
	Significance string
}

// NewOperator returns an operator descriptor.
func NewOperator(code Code, length, operation, operand int, significance string) *Operator {
	return &Operator{
		header:       header{code: code},
		Length:       length,
		Operation:    operation,
		Operand:      operand,
		Significance: significance,
	}
}

func (*Operator) Kind() Kind { return KindOperator }

func (o *Operator) Strong() (Descriptor, error) { return o, nil }

// Sequence is a sequence descriptor (F=3) whose children are already
// materialized.
type Sequence struct {
	header
	Length       int
	Codes        []Code
	Significance string
	Descriptors  []Descriptor
}

// NewSequence returns a strong sequence descriptor. When codes is nil
// it is filled in from the children.
func NewSequence(code Code, length int, codes []Code, significance string, children []Descriptor) *Sequence {
	if codes == nil {
		codes = make([]Code, len(children))
		for i, child := range children {
			codes[i] = child.Code()
		}
	}
	return &Sequence{
		header:       header{code: code},
		Length:       length,
		Codes:        codes,
		Significance: significance,
		Descriptors:  children,
	}
}

func (*Sequence) Kind() Kind { return KindSequence }

func (s *Sequence) Children() ([]Descriptor, error) { return s.Descriptors, nil }

// Strong returns the receiver when every descendant is already strong,
// and a copy with strengthened children otherwise.
func (s *Sequence) Strong() (Descriptor, error) {
	return strengthen(s, nil)
}

// LazySequence is a sequence descriptor whose children are looked up
// in a [Table] on demand.
type LazySequence struct {
	header
	Length       int
	Codes        []Code
	Significance string
	table        Table
}

// NewLazySequence returns a sequence descriptor bound to table.
func NewLazySequence(code Code, length int, codes []Code, significance string, table Table) *LazySequence {
	return &LazySequence{
		header:       header{code: code},
		Length:       length,
		Codes:        codes,
		Significance: significance,
		table:        table,
	}
}

func (*LazySequence) Kind() Kind { return KindSequence }

// Children looks up every child code in the bound table. The returned
// descriptors may themselves be lazy.
func (s *LazySequence) Children() ([]Descriptor, error) {
	if s.table == nil {
		return nil, fmt.Errorf("lazy sequence %s has no table", s.code)
	}
	children := make([]Descriptor, len(s.Codes))
	for i, code := range s.Codes {
		child, err := s.table.Lookup(code)
		if err != nil {
			return nil, fmt.Errorf("sequence %s child %d: %w", s.code, i, err)
		}
		children[i] = child
	}
	return children, nil
}

// Strong resolves the whole subtree once and returns a [*Sequence].
func (s *LazySequence) Strong() (Descriptor, error) {
	return strengthen(s, nil)
}

// strengthen materializes a sequence and its descendants. path holds
// the codes of the enclosing sequences so that a table which makes a
// sequence contain itself fails instead of recursing forever.
func strengthen(sequence SequenceDescriptor, path []Code) (Descriptor, error) {
	for _, enclosing := range path {
		if enclosing == sequence.Code() {
			return nil, fmt.Errorf("sequence %s contains itself", sequence.Code())
		}
	}
	path = append(path, sequence.Code())

	children, err := sequence.Children()
	if err != nil {
		return nil, err
	}

	changed := false
	strong := make([]Descriptor, len(children))
	for i, child := range children {
		strong[i] = child
		nested, ok := child.(SequenceDescriptor)
		if !ok {
			continue
		}
		resolved, err := strengthen(nested, path)
		if err != nil {
			return nil, err
		}
		if resolved != child {
			changed = true
		}
		strong[i] = resolved
	}

	switch typed := sequence.(type) {
	case *Sequence:
		if !changed {
			return typed, nil
		}
		return NewSequence(typed.code, typed.Length, typed.Codes, typed.Significance, strong), nil
	case *LazySequence:
		return NewSequence(typed.code, typed.Length, typed.Codes, typed.Significance, strong), nil
	default:
		return nil, fmt.Errorf("sequence %s: unsupported variant %T", sequence.Code(), sequence)
	}
}
