// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package value

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/bureau-foundation/bufrjson/internal/numeric"
	"github.com/bureau-foundation/bufrjson/lib/descriptor"
)

// UnitText is the element unit that marks character data.
const UnitText = "CCITT IA5"

// Codec turns an opaque payload back into a [Value] under a
// descriptor.
type Codec interface {
	Decode(payload any, d descriptor.Descriptor) (Value, error)
}

// ErrMalformedPayload matches [*PayloadError].
var ErrMalformedPayload = errors.New("malformed payload")

// PayloadError reports a payload that cannot be decoded under its
// descriptor.
type PayloadError struct {
	Code    descriptor.Code
	Payload any
	Reason  string
}

func (err *PayloadError) Error() string {
	return fmt.Sprintf("descriptor %s: payload %v: %s", err.Code, err.Payload, err.Reason)
}

func (err *PayloadError) Is(target error) bool {
	return target == ErrMalformedPayload
}

// StandardCodec applies the standard BUFR decoding rules using only
// what the descriptor itself carries:
//
//   - a nil payload is a missing value
//   - CCITT IA5 elements take a string and decode to it with trailing
//     spaces and NULs removed
//   - other elements take an integer; all bits set over the element's
//     width means missing, otherwise the value is
//     (raw + reference) * 10^-scale
//   - replication and operator payloads are integers decoded as-is
//
// Numeric payloads are accepted in every integer shape JSON and CBOR
// decoders produce and normalized to int64.
type StandardCodec struct{}

// Decode implements [Codec].
func (StandardCodec) Decode(payload any, d descriptor.Descriptor) (Value, error) {
	result := Value{Descriptor: d}
	if payload == nil {
		return result, nil
	}

	switch typed := d.(type) {
	case *descriptor.Element:
		if typed.Unit == UnitText {
			text, ok := payload.(string)
			if !ok {
				return Value{}, &PayloadError{Code: d.Code(), Payload: payload, Reason: fmt.Sprintf("text element wants a string, got %T", payload)}
			}
			result.Raw = text
			result.Decoded = strings.TrimRight(text, " \x00")
			return result, nil
		}
		raw, err := numeric.Int64(payload)
		if err != nil {
			return Value{}, &PayloadError{Code: d.Code(), Payload: payload, Reason: err.Error()}
		}
		result.Raw = raw
		if isAllOnes(raw, typed.Length) {
			return result, nil
		}
		decoded, err := physical(raw, typed.Scale, typed.Reference)
		if err != nil {
			return Value{}, &PayloadError{Code: d.Code(), Payload: payload, Reason: err.Error()}
		}
		result.Decoded = decoded
		return result, nil

	case *descriptor.Replication, *descriptor.Operator:
		raw, err := numeric.Int64(payload)
		if err != nil {
			return Value{}, &PayloadError{Code: d.Code(), Payload: payload, Reason: err.Error()}
		}
		result.Raw = raw
		result.Decoded = raw
		return result, nil

	case descriptor.SequenceDescriptor:
		return Value{}, &PayloadError{Code: d.Code(), Payload: payload, Reason: "sequence descriptors carry no values"}

	default:
		return Value{}, &PayloadError{Code: d.Code(), Payload: payload, Reason: fmt.Sprintf("unsupported descriptor %T", d)}
	}
}

// isAllOnes reports whether raw has every bit of a width-bit field
// set, the BUFR encoding of a missing value. Widths outside 1..63
// never mark missing.
func isAllOnes(raw int64, width int) bool {
	if width <= 0 || width >= 64 {
		return false
	}
	return raw == int64(1)<<width-1
}

// physical applies reference and scale. Integral results that do not
// fit an int64 are errors.
func physical(raw int64, scale, reference int) (any, error) {
	base := raw + int64(reference)
	if (reference > 0 && base < raw) || (reference < 0 && base > raw) {
		return nil, fmt.Errorf("raw %d plus reference %d overflows int64", raw, reference)
	}
	if scale > 0 {
		return float64(base) / math.Pow10(scale), nil
	}
	if base == 0 {
		return int64(0), nil
	}
	for i := 0; i < -scale; i++ {
		if base > math.MaxInt64/10 || base < math.MinInt64/10 {
			return nil, fmt.Errorf("value %d at scale %d overflows int64", raw, scale)
		}
		base *= 10
	}
	return base, nil
}
