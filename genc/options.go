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

import "github.com/Ryan-rsm-McKenzie/bsa-go/compress"

// ArchiveOptions configures how a gen-C archive is written (§6).
type ArchiveOptions struct {
	Version           uint32
	Format            HeaderVariant
	CompressionFormat CompressionFormat
	StringsPresent    bool
}

// FileReadOptions configures how an individual chunk's payload is
// interpreted on read.
type FileReadOptions struct {
	CompressionFormat   CompressionFormat
	CompressionLevel    int
	MipChunkingStrategy MipChunkingStrategy
}

// FileWriteOptions mirrors FileReadOptions for the write path.
type FileWriteOptions struct {
	CompressionFormat   CompressionFormat
	CompressionLevel    int
	MipChunkingStrategy MipChunkingStrategy
}

// compressionAlgorithm picks the codec a given archive configuration uses
// for compressed chunks: the generic block compressor for the modern
// variant, LZ4 otherwise — matching §4.4's "LZ4 block (gen C, default)"
// versus "generic block compressor ... (gen C, modern variant)" split.
func (a *Archive) compressionAlgorithm() compress.Algorithm {
	if a.CompressionFormat == BlockFormat {
		return compress.Block
	}
	return compress.LZ4
}
