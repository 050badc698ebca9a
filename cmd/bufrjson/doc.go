// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Bufrjson converts decoded BUFR weather-observation messages between
// their native JSON form and the flattened, self-describing document
// form.
//
//	bufrjson flatten [--table T] [--format json|cbor] [--compress none|lz4|zstd] [file]
//	bufrjson expand [file]
//	bufrjson inspect [--json] [--diag] [--check DIGEST] [file]
//	bufrjson version
//
// Configuration comes from the file named by --config or
// BUFRJSON_CONFIG; flags override it. See package
// github.com/bureau-foundation/bufrjson/lib/config.
package main
