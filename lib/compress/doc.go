// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package compress wraps serialized documents in a small self-describing
// frame:
//
//	"BUFZ" | tag (1 byte) | uncompressed length (uvarint) | payload
//
// The tag selects [None], [LZ4] (block mode) or [Zstd]. Readers sniff
// the magic with [IsFramed], so framed and plain documents can be mixed
// freely on input. [Compress] falls back to [None] when the chosen
// algorithm does not shrink the input.
package compress
