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

package gena

import (
	"io"

	"github.com/Ryan-rsm-McKenzie/bsa-go/bsaerr"
	"github.com/Ryan-rsm-McKenzie/bsa-go/cursor"
	"github.com/Ryan-rsm-McKenzie/bsa-go/hash"
	"github.com/Ryan-rsm-McKenzie/bsa-go/payload"
)

// versionTag is the only value ever observed in the header's first field.
const versionTag = 0x100

const headerSize = 12

// Parse decodes a flat archive from data, which must outlive the returned
// Archive: every File's payload borrows directly into data.
func Parse(data []byte) (*Archive, error) {
	r := cursor.NewReader(data)

	version, err := r.Uint32LE("gena header: version")
	if err != nil {
		return nil, err
	}
	if version != versionTag {
		return nil, bsaerr.NewDecodeError(bsaerr.ErrUnsupportedVersion, "gena header: version")
	}

	hashTableOffset, err := r.Uint32LE("gena header: hash table offset")
	if err != nil {
		return nil, err
	}
	fileCount, err := r.Uint32LE("gena header: file count")
	if err != nil {
		return nil, err
	}

	type sizeOffset struct {
		size   uint32
		offset uint32
	}
	sizeOffsets := make([]sizeOffset, fileCount)
	for i := range sizeOffsets {
		size, err := r.Uint32LE("gena size/offset table: size")
		if err != nil {
			return nil, err
		}
		offset, err := r.Uint32LE("gena size/offset table: offset")
		if err != nil {
			return nil, err
		}
		sizeOffsets[i] = sizeOffset{size: size, offset: offset}
	}

	nameOffsets := make([]uint32, fileCount)
	for i := range nameOffsets {
		off, err := r.Uint32LE("gena name-offset table")
		if err != nil {
			return nil, err
		}
		nameOffsets[i] = off
	}

	namePoolStart := r.Position()
	hashTableAbsolute := int64(headerSize) + int64(hashTableOffset)
	namePoolLen := hashTableAbsolute - namePoolStart
	if namePoolLen < 0 {
		return nil, bsaerr.AtOffset(bsaerr.ErrBadOffset, "gena hash table offset precedes name pool", namePoolStart)
	}
	namePool, err := r.Bytes(int(namePoolLen), "gena name pool")
	if err != nil {
		return nil, err
	}

	r.SeekAbsolute(hashTableAbsolute)
	hashes := make([]uint64, fileCount)
	for i := range hashes {
		h, err := r.Uint64LE("gena hash table")
		if err != nil {
			return nil, err
		}
		hashes[i] = h
	}

	payloadBase := hashTableAbsolute + int64(fileCount)*8

	archive := New()
	for i := uint32(0); i < fileCount; i++ {
		name, err := cstringAt(namePool, nameOffsets[i])
		if err != nil {
			return nil, err
		}

		size := sizeOffsets[i].size
		offset := payloadBase + int64(sizeOffsets[i].offset)
		if offset < 0 || offset+int64(size) > int64(len(data)) {
			return nil, bsaerr.AtOffset(bsaerr.ErrBadOffset, "gena payload", offset)
		}
		span := data[offset : offset+int64(size)]

		if recomputed := hash.GenA(name); recomputed != hashes[i] {
			return nil, bsaerr.Mismatch(bsaerr.ErrHashMismatch, name, hashes[i], recomputed)
		}

		key := Key{Name: name, Hash: hashes[i]}
		file := &File{Payload: payload.Borrow(span), Size: int(size)}
		if err := archive.Insert(key, file); err != nil {
			return nil, err
		}
	}

	return archive, nil
}

func cstringAt(pool []byte, offset uint32) (string, error) {
	if int(offset) > len(pool) {
		return "", bsaerr.AtOffset(bsaerr.ErrBadOffset, "gena name pool offset", int64(offset))
	}
	for i := int(offset); i < len(pool); i++ {
		if pool[i] == 0 {
			return string(pool[offset:i]), nil
		}
	}
	return "", bsaerr.AtOffset(bsaerr.ErrTruncated, "gena name pool: unterminated name", int64(offset))
}

// Encode writes a to w in hash-ascending order: header, size/offset table,
// name-offset table, name pool, hash table, then payloads back to back with
// no inter-payload padding.
func Encode(w io.Writer, a *Archive) error {
	keys := a.Keys()
	fileCount := len(keys)

	namePool := make([]byte, 0, fileCount*16)
	nameOffsets := make([]uint32, fileCount)
	for i, k := range keys {
		nameOffsets[i] = uint32(len(namePool)) //nolint:gosec // archive sizes fit uint32 by format definition
		namePool = append(namePool, []byte(k.Name)...)
		namePool = append(namePool, 0)
	}

	sizes := make([]uint32, fileCount)
	payloadOffsets := make([]uint32, fileCount)
	var runningOffset uint32
	payloads := make([][]byte, fileCount)
	for i, k := range keys {
		file, _, _ := a.Get(k.Hash)
		b := file.Payload.AsBytes()
		payloads[i] = b
		sizes[i] = uint32(len(b)) //nolint:gosec // archive sizes fit uint32 by format definition
		payloadOffsets[i] = runningOffset
		runningOffset += sizes[i]
	}

	hashTableOffset := uint32(fileCount)*8 + uint32(fileCount)*4 + uint32(len(namePool)) //nolint:gosec // bounded by format

	cw := cursor.NewWriter(w)
	if err := cw.Uint32LE(versionTag); err != nil {
		return err
	}
	if err := cw.Uint32LE(hashTableOffset); err != nil {
		return err
	}
	if err := cw.Uint32LE(uint32(fileCount)); err != nil { //nolint:gosec // bounded by format
		return err
	}

	for i := range keys {
		if err := cw.Uint32LE(sizes[i]); err != nil {
			return err
		}
		if err := cw.Uint32LE(payloadOffsets[i]); err != nil {
			return err
		}
	}

	for _, off := range nameOffsets {
		if err := cw.Uint32LE(off); err != nil {
			return err
		}
	}

	if err := cw.Bytes(namePool); err != nil {
		return err
	}

	for _, k := range keys {
		if err := cw.Uint64LE(k.Hash); err != nil {
			return err
		}
	}

	for _, p := range payloads {
		if err := cw.Bytes(p); err != nil {
			return err
		}
	}

	return nil
}
