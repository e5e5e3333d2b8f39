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

package genb

import "github.com/Ryan-rsm-McKenzie/bsa-go/compress"

// ArchiveOptions configures how a gen-B archive is written (§6). Its
// zero value has no flags and no type mask; its Version of 0 is not one of
// the supported versions (103, 104, 105).
type ArchiveOptions struct {
	Version          uint32
	Flags            ArchiveFlags
	TypeMask         FileType
	CompressionCodec compress.Algorithm
}

// CompressionResult selects whether a parsed archive's payloads are left in
// their on-disk compressed form or eagerly decoded.
type CompressionResult int

const (
	// AsStored leaves every payload exactly as the archive stored it.
	AsStored CompressionResult = iota
	// Decompressed eagerly decodes every compressed payload at parse time.
	Decompressed
)

// FileReadOptions configures how an individual file's payload is
// interpreted on read.
type FileReadOptions struct {
	Compressed bool
	Version    uint32
}

// FileWriteOptions mirrors FileReadOptions for the write path.
type FileWriteOptions struct {
	Compressed bool
	Version    uint32
}

// ReadOptions configures Parse (§6). Its zero value keeps every payload in
// its on-disk compressed form (CompressionResult == AsStored).
type ReadOptions struct {
	CompressionResult CompressionResult
}

// compressionAlgorithm picks the codec a given archive configuration uses
// for compressed payloads: LZ4 for the Xbox-compressed hint or version 105
// (Skyrim Special Edition's LZ4-based archives), zlib otherwise — matching
// §4.4's "legacy deflate/zlib stream" versus "LZ4 block, newer version"
// split.
func (a *Archive) compressionAlgorithm() compress.Algorithm {
	if a.Flags.Has(FlagXboxCompressed) || a.Version >= 105 {
		return compress.LZ4
	}
	return compress.Zlib
}
