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

import "github.com/Ryan-rsm-McKenzie/bsa-go/payload"

// MipChunkingStrategy controls how SetChunks splits a single decompressed
// DDS payload into per-mip chunks for a DX10 file on write (supplement 3).
type MipChunkingStrategy int

const (
	// MipChunkSingle keeps the whole texture as one chunk spanning every
	// mip level.
	MipChunkSingle MipChunkingStrategy = iota
	// MipChunkPerLevel emits one chunk per mip level.
	MipChunkPerLevel
)

// SetChunks replaces f's chunk sequence from a single decompressed DDS
// payload, splitting according to strategy. mipOffsets gives the byte
// offset of each mip level within data, plus a trailing entry equal to
// len(data); len(mipOffsets) == mipCount+1.
func (f *File) SetChunks(data []byte, mipOffsets []int, strategy MipChunkingStrategy) {
	mipCount := len(mipOffsets) - 1
	if mipCount <= 0 {
		f.Chunks = nil
		return
	}

	switch strategy {
	case MipChunkPerLevel:
		chunks := make([]*Chunk, mipCount)
		for i := 0; i < mipCount; i++ {
			span := data[mipOffsets[i]:mipOffsets[i+1]]
			chunks[i] = &Chunk{
				Payload:  payload.Own(append([]byte(nil), span...)),
				StartMip: uint16(i), //nolint:gosec // mip counts fit uint16 by format definition
				EndMip:   uint16(i), //nolint:gosec // mip counts fit uint16 by format definition
			}
		}
		f.Chunks = chunks
	case MipChunkSingle:
		fallthrough
	default:
		f.Chunks = []*Chunk{{
			Payload:  payload.Own(append([]byte(nil), data...)),
			StartMip: 0,
			EndMip:   uint16(mipCount - 1), //nolint:gosec // mip counts fit uint16 by format definition
		}}
	}
}
