// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package numeric normalizes the integer shapes that JSON and CBOR
// decoders produce when the target is any: float64 from
// encoding/json, json.Number when UseNumber is set, and uint64/int64
// from fxamacker/cbor. In-memory values built by Go code arrive as
// plain int.
package numeric

import (
	"encoding/json"
	"fmt"
	"math"
)

// Int64 converts v to an int64. Floats must be integral, unsigned
// values must fit, and anything non-numeric is an error.
func Int64(v any) (int64, error) {
	switch number := v.(type) {
	case int:
		return int64(number), nil
	case int8:
		return int64(number), nil
	case int16:
		return int64(number), nil
	case int32:
		return int64(number), nil
	case int64:
		return number, nil
	case uint:
		return fromUnsigned(uint64(number))
	case uint8:
		return int64(number), nil
	case uint16:
		return int64(number), nil
	case uint32:
		return int64(number), nil
	case uint64:
		return fromUnsigned(number)
	case float32:
		return fromFloat(float64(number))
	case float64:
		return fromFloat(number)
	case json.Number:
		integer, err := number.Int64()
		if err != nil {
			return 0, fmt.Errorf("number %s is not an integer", number)
		}
		return integer, nil
	default:
		return 0, fmt.Errorf("expected an integer, got %T", v)
	}
}

// Int is [Int64] narrowed to int.
func Int(v any) (int, error) {
	integer, err := Int64(v)
	if err != nil {
		return 0, err
	}
	if integer < math.MinInt || integer > math.MaxInt {
		return 0, fmt.Errorf("integer %d overflows int", integer)
	}
	return int(integer), nil
}

func fromUnsigned(number uint64) (int64, error) {
	if number > math.MaxInt64 {
		return 0, fmt.Errorf("integer %d overflows int64", number)
	}
	return int64(number), nil
}

func fromFloat(number float64) (int64, error) {
	if math.IsNaN(number) || math.IsInf(number, 0) || number != math.Trunc(number) {
		return 0, fmt.Errorf("number %v is not an integer", number)
	}
	if number < math.MinInt64 || number >= math.MaxInt64 {
		return 0, fmt.Errorf("number %v overflows int64", number)
	}
	return int64(number), nil
}
