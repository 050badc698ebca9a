// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package codec holds the CBOR configuration shared by every package
// that reads or writes the binary form of a flattened document.
//
// Documents have two serializations with the same structure: JSON,
// the canonical self-describing form, and CBOR, for storage and
// transfer where size matters. Both are produced from the same Go
// types. fxamacker/cbor reads `json` struct tags when no `cbor` tag is
// present, so document types carry `json` tags only and one tag
// controls field naming in both formats.
//
// The encoder uses Core Deterministic Encoding (RFC 8949 §4.2), so
// equal documents encode to equal bytes:
//
//	data, err := codec.Marshal(document)
//	err = codec.Unmarshal(data, &document)
//
// The decoder accepts the deepest nesting and longest arrays the CBOR
// library allows, matching the encoder, which has no limits.
// [Diagnose] renders CBOR input for `bufrjson inspect --diag`.
package codec
