// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package bufrjson converts a decoded BUFR message between its native
// nested form and a flattened, self-describing document.
//
// In the native form every value in the data section carries its full
// descriptor. The flattened [Document] instead lists the message's
// descriptors once, as self-contained records, and each value refers
// to its descriptor by position in a deduplicated index:
//
//	{
//	  "descriptors": [[1, 7, 0, 0, "WMO block number", "Numeric"], ...],
//	  "data": [{"desc": 0, "val": 12}, [{"desc": 0, "val": 5}, {"desc": 1, "val": 7}]]
//	}
//
// The index is never stored. [Flatten] derives it from the set of
// descriptor codes alone (non-sequence descriptors, ascending by
// code), so [Decode] regenerates exactly the table [Encode] used from
// the records in the document.
//
// Documents serialize as JSON ([Document.EncodeJSON], [ParseJSON]) or
// deterministic CBOR ([Document.EncodeCBOR], [ParseCBOR]) with the same
// structure.
//
// Errors are never retried or logged here. A leaf that cannot be
// matched against the index is a [*LookupError]; descriptor record
// and payload errors come from the descriptor and value packages
// unchanged.
//
// All functions are pure and safe for concurrent use on independent
// inputs.
package bufrjson
