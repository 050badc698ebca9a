// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package descriptor

import (
	"fmt"
	"strconv"
)

// Code is a BUFR descriptor code in its packed FXY form: F occupies
// bits 14-15, X bits 8-13, and Y bits 0-7. Valid codes fit in 16
// bits; anything larger carries a kind tag outside the four known
// kinds and is rejected by [KindOf].
type Code uint32

// MaxCode is the largest code with a valid FXY layout.
const MaxCode Code = 0xFFFF

// FXY packs the three descriptor fields into a Code. The caller is
// responsible for keeping f within 0-3, x within 0-63 and y within
// 0-255; out-of-range inputs are masked.
func FXY(f, x, y int) Code {
	return Code(f&0x3)<<14 | Code(x&0x3F)<<8 | Code(y&0xFF)
}

// F returns the two-bit F field, which is also the descriptor kind.
func (c Code) F() int { return int(c>>14) & 0x3 }

// X returns the six-bit X field (class, replicated descriptor count,
// or operator number depending on F).
func (c Code) X() int { return int(c>>8) & 0x3F }

// Y returns the eight-bit Y field.
func (c Code) Y() int { return int(c) & 0xFF }

// String renders the code in the conventional six-digit FXY form,
// e.g. "301001". Codes above [MaxCode] render as a hex literal since
// they have no FXY spelling.
func (c Code) String() string {
	if c > MaxCode {
		return fmt.Sprintf("0x%X", uint32(c))
	}
	return fmt.Sprintf("%d%02d%03d", c.F(), c.X(), c.Y())
}

// ParseCode parses a six-digit FXY string such as "301001".
func ParseCode(text string) (Code, error) {
	if len(text) != 6 {
		return 0, fmt.Errorf("descriptor code %q: want 6 digits (FXXYYY)", text)
	}
	f, err := strconv.Atoi(text[0:1])
	if err != nil {
		return 0, fmt.Errorf("descriptor code %q: F: %w", text, err)
	}
	x, err := strconv.Atoi(text[1:3])
	if err != nil {
		return 0, fmt.Errorf("descriptor code %q: X: %w", text, err)
	}
	y, err := strconv.Atoi(text[3:6])
	if err != nil {
		return 0, fmt.Errorf("descriptor code %q: Y: %w", text, err)
	}
	if f > 3 || x > 63 || y > 255 {
		return 0, fmt.Errorf("descriptor code %q: field out of range (F<=3, X<=63, Y<=255)", text)
	}
	return FXY(f, x, y), nil
}

// Kind is the structural role of a descriptor, taken from the F field.
type Kind uint8

const (
	// KindElement is a leaf field carrying a value.
	KindElement Kind = 0

	// KindReplication repeats the following descriptors.
	KindReplication Kind = 1

	// KindOperator modifies the interpretation of later descriptors.
	KindOperator Kind = 2

	// KindSequence expands to a fixed list of child descriptors.
	KindSequence Kind = 3
)

// String returns the lower-case kind name.
func (k Kind) String() string {
	switch k {
	case KindElement:
		return "element"
	case KindReplication:
		return "replication"
	case KindOperator:
		return "operator"
	case KindSequence:
		return "sequence"
	default:
		return fmt.Sprintf("unknown(%d)", uint8(k))
	}
}

// KindOf extracts the kind tag from the high bits of code. Codes
// beyond [MaxCode] shift out a tag above 3 and fail with
// [*UnknownKindError].
func KindOf(code Code) (Kind, error) {
	tag := code >> 14
	if tag > Code(KindSequence) {
		return 0, &UnknownKindError{Code: code, Tag: uint32(tag)}
	}
	return Kind(tag), nil
}
