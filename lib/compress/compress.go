// Copyright 2026 The Bureau Authors
// SPDX-License-Identifier: Apache-2.0

package compress

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/pierrec/lz4/v4"
)

// Tag identifies the compression algorithm of a frame. Tags are stored
// in the frame header (1 byte); these values are format constants.
type Tag uint8

const (
	// None stores the payload as-is.
	None Tag = 0

	// LZ4 is LZ4 block compression. Fast, modest ratio.
	LZ4 Tag = 1

	// Zstd is zstd at the default level. Better ratio on JSON text.
	Zstd Tag = 2
)

// Magic opens every frame.
var Magic = []byte("BUFZ")

// MaxSize bounds the uncompressed length a frame may declare, so a
// corrupt header cannot force a huge allocation.
const MaxSize = 1 << 30

// ErrNotFramed is returned by [Decompress] for input without [Magic].
var ErrNotFramed = errors.New("not a compressed frame")

// String returns the name of a tag.
func (tag Tag) String() string {
	switch tag {
	case None:
		return "none"
	case LZ4:
		return "lz4"
	case Zstd:
		return "zstd"
	default:
		return fmt.Sprintf("unknown(%d)", tag)
	}
}

// ParseTag parses a tag from its name.
func ParseTag(name string) (Tag, error) {
	switch name {
	case "none", "":
		return None, nil
	case "lz4":
		return LZ4, nil
	case "zstd":
		return Zstd, nil
	default:
		return 0, fmt.Errorf("unknown compression %q (want none, lz4 or zstd)", name)
	}
}

// IsFramed reports whether data starts with [Magic].
func IsFramed(data []byte) bool {
	return bytes.HasPrefix(data, Magic)
}

// Compress wraps data in a frame compressed with tag. Input that does
// not shrink under the requested algorithm is stored with [None]; the
// returned tag reports what was actually used.
func Compress(data []byte, tag Tag) ([]byte, Tag, error) {
	if len(data) > MaxSize {
		return nil, 0, fmt.Errorf("input of %d bytes exceeds the %d byte frame limit", len(data), MaxSize)
	}

	var payload []byte
	var err error
	switch tag {
	case None:
		payload = data
	case LZ4:
		payload, err = compressLZ4(data)
	case Zstd:
		payload, err = compressZstd(data)
	default:
		return nil, 0, fmt.Errorf("unsupported compression tag: %d", tag)
	}
	if errors.Is(err, errIncompressible) {
		payload, tag, err = data, None, nil
	}
	if err != nil {
		return nil, 0, err
	}

	frame := make([]byte, 0, len(Magic)+1+binary.MaxVarintLen64+len(payload))
	frame = append(frame, Magic...)
	frame = append(frame, byte(tag))
	frame = binary.AppendUvarint(frame, uint64(len(data)))
	frame = append(frame, payload...)
	return frame, tag, nil
}

// Decompress unwraps a frame produced by [Compress] and returns the
// original bytes and the tag they were stored with. The declared
// uncompressed length is verified.
func Decompress(frame []byte) ([]byte, Tag, error) {
	if !IsFramed(frame) {
		return nil, 0, ErrNotFramed
	}
	rest := frame[len(Magic):]
	if len(rest) == 0 {
		return nil, 0, errors.New("truncated frame header")
	}
	tag := Tag(rest[0])
	rest = rest[1:]

	size, n := binary.Uvarint(rest)
	if n <= 0 {
		return nil, 0, errors.New("malformed frame length")
	}
	if size > MaxSize {
		return nil, 0, fmt.Errorf("frame declares %d bytes, over the %d byte limit", size, MaxSize)
	}
	payload := rest[n:]

	var data []byte
	var err error
	switch tag {
	case None:
		if len(payload) != int(size) {
			return nil, 0, fmt.Errorf("uncompressed frame: size %d does not match declared %d", len(payload), size)
		}
		data = payload
	case LZ4:
		data, err = decompressLZ4(payload, int(size))
	case Zstd:
		data, err = decompressZstd(payload, int(size))
	default:
		return nil, 0, fmt.Errorf("unsupported compression tag: %d", tag)
	}
	if err != nil {
		return nil, 0, err
	}
	return data, tag, nil
}

// Unwrap returns data decompressed if it is a frame and unchanged
// otherwise.
func Unwrap(data []byte) ([]byte, error) {
	if !IsFramed(data) {
		return data, nil
	}
	plain, _, err := Decompress(data)
	return plain, err
}

func compressLZ4(data []byte) ([]byte, error) {
	destination := make([]byte, lz4.CompressBlockBound(len(data)))
	written, err := lz4.CompressBlock(data, destination, nil)
	if err != nil {
		return nil, fmt.Errorf("lz4 compress: %w", err)
	}
	// CompressBlock returns 0 for incompressible input.
	if written == 0 || written >= len(data) {
		return nil, errIncompressible
	}
	return destination[:written], nil
}

func decompressLZ4(compressed []byte, size int) ([]byte, error) {
	destination := make([]byte, size)
	read, err := lz4.UncompressBlock(compressed, destination)
	if err != nil {
		return nil, fmt.Errorf("lz4 decompress: %w", err)
	}
	if read != size {
		return nil, fmt.Errorf("lz4 decompress: got %d bytes, expected %d", read, size)
	}
	return destination, nil
}

// zstd.Encoder and zstd.Decoder are safe for concurrent use.
var (
	zstdEncoder *zstd.Encoder
	zstdDecoder *zstd.Decoder
)

func init() {
	var err error
	zstdEncoder, err = zstd.NewWriter(nil, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		panic("compress: zstd encoder initialization failed: " + err.Error())
	}
	zstdDecoder, err = zstd.NewReader(nil)
	if err != nil {
		panic("compress: zstd decoder initialization failed: " + err.Error())
	}
}

func compressZstd(data []byte) ([]byte, error) {
	compressed := zstdEncoder.EncodeAll(data, nil)
	if len(compressed) >= len(data) {
		return nil, errIncompressible
	}
	return compressed, nil
}

func decompressZstd(compressed []byte, size int) ([]byte, error) {
	result, err := zstdDecoder.DecodeAll(compressed, make([]byte, 0, size))
	if err != nil {
		return nil, fmt.Errorf("zstd decompress: %w", err)
	}
	if len(result) != size {
		return nil, fmt.Errorf("zstd decompress: got %d bytes, expected %d", len(result), size)
	}
	return result, nil
}

var errIncompressible = errors.New("data is incompressible")
