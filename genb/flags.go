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

// Package genb implements the directory/file generation-B archive (C7):
// Oblivion through Skyrim/Fallout, with flag-driven name storage and
// optional per-file compression.
package genb

// ArchiveFlags is the header's bitset governing parse and write layout.
type ArchiveFlags uint32

const (
	// FlagDirectoryStrings marks that directory records carry an inline
	// length-prefixed name.
	FlagDirectoryStrings ArchiveFlags = 1 << iota
	// FlagFileStrings marks that a trailing flat file-name pool is present.
	FlagFileStrings
	// FlagCompressed makes files default to the compressed state; a
	// per-file header bit inverts that default for that one file.
	FlagCompressed
	// FlagRetainDirectoryNames is a cosmetic flag preserved across round-trips.
	FlagRetainDirectoryNames
	// FlagRetainFileNames is a cosmetic flag preserved across round-trips.
	FlagRetainFileNames
	// FlagRetainStringsDuringStartup is a cosmetic flag preserved across round-trips.
	FlagRetainStringsDuringStartup
	// FlagXboxArchive switches multi-byte header fields to big-endian.
	FlagXboxArchive
	// FlagXboxCompressed routes compressed payloads through LZ4 instead of zlib.
	FlagXboxCompressed
	// FlagEmbeddedFileNames prefixes every payload with an inline
	// NUL-terminated full path.
	FlagEmbeddedFileNames
)

// Has reports whether every bit in flag is set.
func (f ArchiveFlags) Has(flag ArchiveFlags) bool {
	return f&flag == flag
}

// FileType is a bit in the archive's content-type mask, letting a caller
// query which broad categories of asset an archive claims to hold without
// walking every file's extension (supplement 1).
type FileType uint32

const (
	FileTypeMeshes FileType = 1 << iota
	FileTypeTextures
	FileTypeMenus
	FileTypeSounds
	FileTypeVoices
	FileTypeShaders
	FileTypeTrees
	FileTypeFonts
	FileTypeMiscellaneous
)

var allFileTypes = []FileType{
	FileTypeMeshes, FileTypeTextures, FileTypeMenus, FileTypeSounds,
	FileTypeVoices, FileTypeShaders, FileTypeTrees, FileTypeFonts,
	FileTypeMiscellaneous,
}

// HasFileType reports whether the archive's type mask claims category t.
func (a *Archive) HasFileType(t FileType) bool {
	return a.TypeMask&t == t
}

// FileTypes enumerates every category bit set in the archive's type mask.
func (a *Archive) FileTypes() []FileType {
	var out []FileType
	for _, t := range allFileTypes {
		if a.HasFileType(t) {
			out = append(out, t)
		}
	}
	return out
}
