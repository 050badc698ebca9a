// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

// Package digest computes BLAKE3 keyed fingerprints of descriptor sets
// and serialized documents. Each kind of input hashes under its own
// domain key, so identical bytes in different roles never collide.
package digest
