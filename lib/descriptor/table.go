// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package descriptor

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/tidwall/jsonc"
	"gopkg.in/yaml.v3"
)

// Table resolves descriptor codes. Sequence codes resolve to
// [*LazySequence] values bound to the table; callers strengthen them
// when they need the children.
type Table interface {
	Lookup(code Code) (Descriptor, error)
}

// MapTable is an in-memory [Table]. Elements and sequences must be
// added explicitly. Replication and operator codes that were not added
// are synthesized from their FXY fields, which fully determine them.
type MapTable struct {
	elements  map[Code]*Element
	sequences map[Code]sequenceEntry
}

type sequenceEntry struct {
	codes        []Code
	significance string
}

// NewMapTable returns an empty table.
func NewMapTable() *MapTable {
	return &MapTable{
		elements:  make(map[Code]*Element),
		sequences: make(map[Code]sequenceEntry),
	}
}

// AddElement registers an element descriptor.
func (t *MapTable) AddElement(element *Element) {
	t.elements[element.Code()] = element
}

// AddSequence registers a sequence by its child codes.
func (t *MapTable) AddSequence(code Code, significance string, codes ...Code) {
	t.sequences[code] = sequenceEntry{codes: codes, significance: significance}
}

// Len returns the number of registered elements and sequences.
func (t *MapTable) Len() int {
	return len(t.elements) + len(t.sequences)
}

// Lookup implements [Table].
func (t *MapTable) Lookup(code Code) (Descriptor, error) {
	kind, err := KindOf(code)
	if err != nil {
		return nil, err
	}
	switch kind {
	case KindElement:
		if element, ok := t.elements[code]; ok {
			return element, nil
		}
	case KindReplication:
		return NewReplication(code, 0, code.X(), code.Y(), ""), nil
	case KindOperator:
		return NewOperator(code, 0, code.X(), code.Y(), ""), nil
	case KindSequence:
		if entry, ok := t.sequences[code]; ok {
			return NewLazySequence(code, 0, entry.codes, entry.significance, t), nil
		}
	}
	return nil, fmt.Errorf("%s %s: %w", kind, code, ErrNotFound)
}

// tableFile is the on-disk layout read by [LoadTable].
type tableFile struct {
	Elements []struct {
		Code         string `yaml:"code"`
		Length       int    `yaml:"length"`
		Scale        int    `yaml:"scale"`
		Reference    int    `yaml:"reference"`
		Unit         string `yaml:"unit"`
		Significance string `yaml:"significance"`
	} `yaml:"elements"`

	Sequences []struct {
		Code         string   `yaml:"code"`
		Significance string   `yaml:"significance"`
		Descriptors  []string `yaml:"descriptors"`
	} `yaml:"sequences"`
}

// LoadTable reads a descriptor table file. Files ending in .json or
// .jsonc may contain // and /* */ comments and trailing commas; every
// other extension is parsed as YAML.
func LoadTable(path string) (*MapTable, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading descriptor table: %w", err)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json", ".jsonc":
		// YAML is a superset of JSON, so one decoder serves both once
		// the comments are gone.
		data = jsonc.ToJSON(data)
	}
	table, err := ParseTable(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return table, nil
}

// ParseTable parses the YAML (or plain JSON) form of a table file.
func ParseTable(data []byte) (*MapTable, error) {
	var file tableFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("parsing descriptor table: %w", err)
	}

	table := NewMapTable()
	for i, entry := range file.Elements {
		code, err := ParseCode(entry.Code)
		if err != nil {
			return nil, fmt.Errorf("elements[%d]: %w", i, err)
		}
		if code.F() != int(KindElement) {
			return nil, fmt.Errorf("elements[%d]: %s is not an element code", i, code)
		}
		table.AddElement(NewElement(code, entry.Length, entry.Scale, entry.Reference, entry.Significance, entry.Unit))
	}
	for i, entry := range file.Sequences {
		code, err := ParseCode(entry.Code)
		if err != nil {
			return nil, fmt.Errorf("sequences[%d]: %w", i, err)
		}
		if code.F() != int(KindSequence) {
			return nil, fmt.Errorf("sequences[%d]: %s is not a sequence code", i, code)
		}
		children := make([]Code, len(entry.Descriptors))
		for j, text := range entry.Descriptors {
			child, err := ParseCode(text)
			if err != nil {
				return nil, fmt.Errorf("sequences[%d].descriptors[%d]: %w", i, j, err)
			}
			children[j] = child
		}
		table.AddSequence(code, entry.Significance, children...)
	}
	return table, nil
}
