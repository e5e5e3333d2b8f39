// Copyright (c) 2025 The bsa-go Authors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of bsa-go.
//
// bsa-go is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// bsa-go is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with bsa-go.  If not, see <https://www.gnu.org/licenses/>.

package genc

import (
	"io"

	"github.com/Ryan-rsm-McKenzie/bsa-go/bsaerr"
	"github.com/Ryan-rsm-McKenzie/bsa-go/cursor"
	"github.com/Ryan-rsm-McKenzie/bsa-go/payload"
)

// sentinelWord trails every chunk record; its value carries no parsed
// meaning, but a corrupt archive that doesn't end a chunk record here is
// almost always truncated somewhere upstream, so writers always emit it;
// readers consume the word without checking its value.
const sentinelWord = 0xBAADF00D

const chunkRecordSize = 8 + 4 + 4 + 2 + 2 + 4

func variantExtraSize(v HeaderVariant) int64 {
	switch v {
	case DX10:
		return 8
	case GNMF:
		return gnmfInfoSize
	default:
		return 0
	}
}

// Parse decodes a chunked archive from data, which must outlive the
// returned Archive: every Chunk's payload borrows directly into data unless
// compressed, in which case the borrowed span holds the compressed image
// until Decompress is called.
func Parse(data []byte) (*Archive, error) {
	r := cursor.NewReader(data)
	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	archive := New(h.Version, h.Format, h.CompressionFormat)

	type pending struct {
		key  Key
		file *File
	}
	files := make([]pending, h.FileCount)
	hashes := make([]uint64, h.FileCount)

	for i := uint32(0); i < h.FileCount; i++ {
		fileHash, err := r.Uint64LE("gen C file record: hash")
		if err != nil {
			return nil, err
		}
		hashes[i] = fileHash

		chunkCount, err := r.Uint32LE("gen C file record: chunk count")
		if err != nil {
			return nil, err
		}

		file := &File{Variant: h.Format}
		switch h.Format {
		case DX10:
			height, err := r.Uint16LE("gen C DX10 header: height")
			if err != nil {
				return nil, err
			}
			width, err := r.Uint16LE("gen C DX10 header: width")
			if err != nil {
				return nil, err
			}
			mipCount, err := r.Uint8("gen C DX10 header: mip count")
			if err != nil {
				return nil, err
			}
			format, err := r.Uint8("gen C DX10 header: format")
			if err != nil {
				return nil, err
			}
			tileMode, err := r.Uint8("gen C DX10 header: tile mode")
			if err != nil {
				return nil, err
			}
			dx10Flags, err := r.Uint8("gen C DX10 header: flags")
			if err != nil {
				return nil, err
			}
			file.DX10 = &DX10Info{Height: height, Width: width, MipCount: mipCount, Format: format, TileMode: tileMode, Flags: dx10Flags}
		case GNMF:
			blob, err := r.Bytes(gnmfInfoSize, "gen C GNMF header")
			if err != nil {
				return nil, err
			}
			file.GNMF = append([]byte(nil), blob...)
		case General:
			// no extra inline header data
		}

		chunks := make([]*Chunk, chunkCount)
		for j := uint32(0); j < chunkCount; j++ {
			dataOffset, err := r.Uint64LE("gen C chunk record: data offset")
			if err != nil {
				return nil, err
			}
			compressedSize, err := r.Uint32LE("gen C chunk record: compressed size")
			if err != nil {
				return nil, err
			}
			decompressedSize, err := r.Uint32LE("gen C chunk record: decompressed size")
			if err != nil {
				return nil, err
			}
			startMip, err := r.Uint16LE("gen C chunk record: start mip")
			if err != nil {
				return nil, err
			}
			endMip, err := r.Uint16LE("gen C chunk record: end mip")
			if err != nil {
				return nil, err
			}
			if _, err := r.Uint32LE("gen C chunk record: sentinel"); err != nil {
				return nil, err
			}

			compressed := compressedSize != 0
			size := compressedSize
			if !compressed {
				size = decompressedSize
			}
			if int64(dataOffset)+int64(size) > int64(len(data)) {
				return nil, bsaerr.AtOffset(bsaerr.ErrBadOffset, "gen C chunk payload", int64(dataOffset))
			}
			span := data[dataOffset : uint64(dataOffset)+uint64(size)]

			var body *payload.Body
			if compressed {
				body = payload.BorrowCompressed(span, archive.compressionAlgorithm(), int(decompressedSize))
			} else {
				body = payload.Borrow(span)
			}

			chunks[j] = &Chunk{
				Payload:          body,
				StartMip:         startMip,
				EndMip:           endMip,
				Compressed:       compressed,
				DecompressedSize: int(decompressedSize),
			}
		}
		file.Chunks = chunks
		files[i] = pending{file: file}
	}

	r.SeekAbsolute(int64(h.NameTableOffset))
	for i := uint32(0); i < h.FileCount; i++ {
		name, err := r.LengthPrefixedString(2, "gen C name table")
		if err != nil {
			return nil, err
		}
		if recomputed := NewKey(name).Hash; recomputed != hashes[i] {
			return nil, bsaerr.Mismatch(bsaerr.ErrHashMismatch, name, hashes[i], recomputed)
		}
		files[i].key = Key{Name: name, Hash: hashes[i]}
	}

	for _, p := range files {
		if err := archive.Insert(p.key, p.file); err != nil {
			return nil, err
		}
	}

	return archive, nil
}

// Encode writes a to w: header, then per file its hash/chunk-count/optional
// sub-header and chunk records (DX10 files keep their original chunk
// order), then every chunk's payload back to back, then the name table
// (§4.8's write policy).
func Encode(w io.Writer, a *Archive) error {
	keys := a.Keys()

	h := header{
		Version:           a.Version,
		Format:            a.Format,
		FileCount:         uint32(len(keys)), //nolint:gosec // bounded by format
		CompressionFormat: a.CompressionFormat,
	}

	recordsSize := h.size()
	for _, k := range keys {
		file, _, _ := a.Get(k.Hash)
		recordsSize += 8 + 4 + variantExtraSize(file.Variant) + int64(len(file.Chunks))*chunkRecordSize
	}

	type chunkOut struct {
		offset           int64
		compressedSize   uint32
		decompressedSize uint32
		bytes            []byte
	}
	chunkPlan := make(map[*Chunk]chunkOut)

	payloadOffset := recordsSize
	for _, k := range keys {
		file, _, _ := a.Get(k.Hash)
		for _, c := range file.Chunks {
			if c.Compressed && !c.Payload.IsCompressed() {
				return bsaerr.NewDecodeError(bsaerr.ErrCompression, "chunk marked compressed but payload is not in compressed state: "+k.Name)
			}
			b := c.Payload.AsBytes()
			out := chunkOut{offset: payloadOffset, bytes: b}
			if c.Compressed {
				out.compressedSize = uint32(len(b))                         //nolint:gosec // payload sizes fit uint32 by format definition
				out.decompressedSize = uint32(c.Payload.DecompressedSize()) //nolint:gosec // payload sizes fit uint32 by format definition
			} else {
				out.compressedSize = 0
				out.decompressedSize = uint32(len(b)) //nolint:gosec // payload sizes fit uint32 by format definition
			}
			chunkPlan[c] = out
			payloadOffset += int64(len(b))
		}
	}
	h.NameTableOffset = uint64(payloadOffset) //nolint:gosec // archive sizes fit uint64 by format definition

	cw := cursor.NewWriter(w)
	if err := writeHeader(cw, h); err != nil {
		return err
	}

	for _, k := range keys {
		file, _, _ := a.Get(k.Hash)
		if err := cw.Uint64LE(k.Hash); err != nil {
			return err
		}
		if err := cw.Uint32LE(uint32(len(file.Chunks))); err != nil { //nolint:gosec // bounded by format
			return err
		}
		switch file.Variant {
		case DX10:
			d := file.DX10
			if err := cw.Uint16LE(d.Height); err != nil {
				return err
			}
			if err := cw.Uint16LE(d.Width); err != nil {
				return err
			}
			if err := cw.Uint8(d.MipCount); err != nil {
				return err
			}
			if err := cw.Uint8(d.Format); err != nil {
				return err
			}
			if err := cw.Uint8(d.TileMode); err != nil {
				return err
			}
			if err := cw.Uint8(d.Flags); err != nil {
				return err
			}
		case GNMF:
			if err := cw.Bytes(file.GNMF); err != nil {
				return err
			}
		case General:
			// no extra inline header data
		}

		for _, c := range file.Chunks {
			out := chunkPlan[c]
			if err := cw.Uint64LE(uint64(out.offset)); err != nil { //nolint:gosec // archive sizes fit uint64 by format definition
				return err
			}
			if err := cw.Uint32LE(out.compressedSize); err != nil {
				return err
			}
			if err := cw.Uint32LE(out.decompressedSize); err != nil {
				return err
			}
			if err := cw.Uint16LE(c.StartMip); err != nil {
				return err
			}
			if err := cw.Uint16LE(c.EndMip); err != nil {
				return err
			}
			if err := cw.Uint32LE(sentinelWord); err != nil {
				return err
			}
		}
	}

	for _, k := range keys {
		file, _, _ := a.Get(k.Hash)
		for _, c := range file.Chunks {
			if err := cw.Bytes(chunkPlan[c].bytes); err != nil {
				return err
			}
		}
	}

	for _, k := range keys {
		if err := cw.LengthPrefixedString(2, k.Name); err != nil {
			return err
		}
	}

	return nil
}
