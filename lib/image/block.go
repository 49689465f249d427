// Copyright 2026 The Tessera Authors
// SPDX-License-Identifier: Apache-2.0

package image

import (
	"bytes"
	"encoding/binary"
	"errors"
	"fmt"

	"github.com/klauspost/compress/zstd"
	"github.com/zeebo/blake3"

	"github.com/tessera-lang/tessera/lib/codec"
	"github.com/tessera-lang/tessera/lib/target"
)

// Target block format constants.
const (
	// blockVersion is the format version carried in the magic. Bump
	// on any incompatible layout change.
	blockVersion = 1

	// blockHeaderSize is the fixed header: 8-byte magic + 32-byte
	// BLAKE3 hash of the compressed body + 4-byte body length.
	blockHeaderSize = 8 + 32 + 4
)

// blockMagic is the 8-byte block signature: "TSIMG" + version byte +
// two reserved bytes.
var blockMagic = [8]byte{'T', 'S', 'I', 'M', 'G', blockVersion, 0, 0}

// ErrBadBlock is wrapped by every structural failure: truncated data,
// wrong magic or version, hash mismatch, undecodable body.
var ErrBadBlock = errors.New("image: malformed target block")

// zstd contexts are built once; EncodeAll/DecodeAll are safe for
// concurrent use.
var (
	zstdEncoder, _ = zstd.NewWriter(nil)
	zstdDecoder, _ = zstd.NewReader(nil)
)

// WriteBlock serializes the record list into a framed target block
// for embedding into a compiled image. Deterministic: the same record
// list always produces identical bytes.
func WriteBlock(records []target.Record) ([]byte, error) {
	if len(records) == 0 {
		return nil, fmt.Errorf("image: refusing to write an empty target block")
	}

	body, err := codec.Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("image: encoding target records: %w", err)
	}
	compressed := zstdEncoder.EncodeAll(body, nil)
	digest := blake3.Sum256(compressed)

	block := make([]byte, 0, blockHeaderSize+len(compressed))
	block = append(block, blockMagic[:]...)
	block = append(block, digest[:]...)
	block = binary.LittleEndian.AppendUint32(block, uint32(len(compressed)))
	block = append(block, compressed...)
	return block, nil
}

// ReadBlock parses a target block. Any structural defect returns an
// error wrapping ErrBadBlock; a valid block always yields at least
// one record.
func ReadBlock(block []byte) ([]target.Record, error) {
	if len(block) < blockHeaderSize {
		return nil, fmt.Errorf("%w: truncated header (%d bytes)", ErrBadBlock, len(block))
	}
	if !bytes.Equal(block[:8], blockMagic[:]) {
		return nil, fmt.Errorf("%w: bad magic or unsupported version", ErrBadBlock)
	}

	var digest [32]byte
	copy(digest[:], block[8:40])
	bodyLen := binary.LittleEndian.Uint32(block[40:44])
	body := block[blockHeaderSize:]
	if uint32(len(body)) != bodyLen {
		return nil, fmt.Errorf("%w: body length %d does not match header %d", ErrBadBlock, len(body), bodyLen)
	}
	if blake3.Sum256(body) != digest {
		return nil, fmt.Errorf("%w: integrity hash mismatch", ErrBadBlock)
	}

	decompressed, err := zstdDecoder.DecodeAll(body, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: decompressing body: %v", ErrBadBlock, err)
	}

	var records []target.Record
	if err := codec.Unmarshal(decompressed, &records); err != nil {
		return nil, fmt.Errorf("%w: decoding target records: %v", ErrBadBlock, err)
	}
	if len(records) == 0 {
		return nil, fmt.Errorf("%w: block contains no target records", ErrBadBlock)
	}
	return records, nil
}
