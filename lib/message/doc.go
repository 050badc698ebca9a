// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package message reads and writes the native, unflattened JSON form
// of a decoded BUFR message, in which every leaf carries its own
// descriptor:
//
//	{
//	  "descriptors": [[49153, 0, [1, 2], "Station", [...]], 1],
//	  "data": [
//	    {"descriptor": [1, 7, 0, 0, "WMO block number", "Numeric"], "raw": 2, "value": 2},
//	    [{"descriptor": 1, "raw": 5, "value": 5}]
//	  ]
//	}
//
// A descriptor is written either as a full record or as a bare integer
// code. [Parse] resolves bare codes through a [descriptor.Table]; the
// output of [Message.MarshalJSON] always uses full records and so never
// needs a table to read back.
//
// This is the form that producers of decoded messages emit and the
// input to [Message.Document], which flattens it into the compact
// [bufrjson.Document].
package message
