// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package digest

import (
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"

	"github.com/bureau-foundation/bufrjson/lib/codec"
	"github.com/bureau-foundation/bufrjson/lib/descriptor"
)

// Hash is a 32-byte BLAKE3 digest.
type Hash [32]byte

// domainKey is a 32-byte BLAKE3 key: the ASCII domain name,
// zero-padded. Changing a key invalidates every hash in its domain.
type domainKey [32]byte

var (
	descriptorsDomainKey = newDomainKey("bufrjson.descriptors")
	documentDomainKey    = newDomainKey("bufrjson.document")
)

func newDomainKey(name string) domainKey {
	var key domainKey
	if len(name) > len(key) {
		panic("digest: domain name longer than 32 bytes: " + name)
	}
	copy(key[:], name)
	return key
}

// DescriptorSet fingerprints a descriptor list. Records are first
// rebuilt into descriptors and serialized again, so numbers read back
// as json.Number, float64 or uint64 all hash the same; the canonical
// records are then hashed in their deterministic CBOR encoding. Two
// documents share a fingerprint exactly when their descriptors are
// equal in content and order.
func DescriptorSet(records []descriptor.Record) (Hash, error) {
	descriptors, err := descriptor.FromRecords(records)
	if err != nil {
		return Hash{}, err
	}
	canonical, err := descriptor.ToRecords(descriptors)
	if err != nil {
		return Hash{}, err
	}
	encoded, err := codec.Marshal(canonical)
	if err != nil {
		return Hash{}, fmt.Errorf("encoding descriptor records: %w", err)
	}
	return keyedHash(descriptorsDomainKey, encoded), nil
}

// Document hashes serialized document bytes.
func Document(data []byte) Hash {
	return keyedHash(documentDomainKey, data)
}

func keyedHash(key domainKey, data []byte) Hash {
	hasher, err := blake3.NewKeyed(key[:])
	if err != nil {
		// NewKeyed only fails for keys that are not 32 bytes.
		panic("digest: BLAKE3 keyed hash initialization failed: " + err.Error())
	}
	hasher.Write(data)
	var result Hash
	copy(result[:], hasher.Sum(nil))
	return result
}

// String returns the hex form of the hash.
func (h Hash) String() string {
	return hex.EncodeToString(h[:])
}

// Short returns the first 12 hex characters, for display.
func (h Hash) Short() string {
	return h.String()[:12]
}

// Parse reads a 64-character hex string.
func Parse(text string) (Hash, error) {
	var hash Hash
	decoded, err := hex.DecodeString(text)
	if err != nil {
		return hash, fmt.Errorf("parsing digest: %w", err)
	}
	if len(decoded) != len(hash) {
		return hash, fmt.Errorf("parsing digest: got %d bytes, want %d", len(decoded), len(hash))
	}
	copy(hash[:], decoded)
	return hash, nil
}
