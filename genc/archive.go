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

// Package genc implements the chunked, typed-file generation-C archive
// (C8): Fallout 4 through Starfield, with general, DX10 texture, and GNMF
// console-texture file-header variants.
package genc

import (
	"sort"

	"github.com/Ryan-rsm-McKenzie/bsa-go/bsaerr"
	"github.com/Ryan-rsm-McKenzie/bsa-go/hash"
	"github.com/Ryan-rsm-McKenzie/bsa-go/payload"
)

// HeaderVariant selects which of the three closed file-header cases a File
// carries (DESIGN NOTES: "flag-driven polymorphism, not a class hierarchy").
type HeaderVariant int

const (
	// General files carry no extra header data.
	General HeaderVariant = iota
	// DX10 files are textures: height, width, mip count, format, tile
	// mode, flags.
	DX10
	// GNMF files are console textures: a fixed-length opaque metadata blob.
	GNMF
)

func (v HeaderVariant) String() string {
	switch v {
	case General:
		return "GNRL"
	case DX10:
		return "DX10"
	case GNMF:
		return "GNMF"
	default:
		return "unknown"
	}
}

// DX10Info is the inline sub-header carried by DX10-variant files.
type DX10Info struct {
	Height   uint16
	Width    uint16
	MipCount uint8
	Format   uint8
	TileMode uint8
	Flags    uint8
}

// gnmfInfoSize is the fixed length of the GNMF opaque metadata blob.
const gnmfInfoSize = 32

// Chunk is a single contiguous sub-payload of a gen-C file. DX10/GNMF files
// additionally carry a mip-level range; GNRL files always report (0, 0).
type Chunk struct {
	Payload  *payload.Body
	StartMip uint16
	EndMip   uint16

	// Compressed reports whether the chunk's stored bytes are a
	// compressed image; a chunk is compressed iff its on-disk
	// compressed_size field is non-zero.
	Compressed       bool
	DecompressedSize int
}

// File is a gen-C archive entry: a header-variant tag plus an
// order-significant sequence of chunks.
type File struct {
	Variant HeaderVariant
	DX10    *DX10Info // non-nil iff Variant == DX10
	GNMF    []byte    // len == gnmfInfoSize iff Variant == GNMF

	Chunks []*Chunk
}

// Key identifies a file: the raw path as originally observed plus the hash
// used for ordering and equality.
type Key struct {
	Name string
	Hash uint64
}

// NewKey hashes a full archive-relative path with the generation-C hasher.
func NewKey(path string) Key {
	normalized := hash.NormalizeSeparators(path)
	folder, file := hash.SplitDirFile(normalized)
	stem := hash.Stem(file)
	ext := hash.Extension(file)
	return Key{Name: path, Hash: hash.GenC(folder, stem, ext)}
}

type entry struct {
	key  Key
	file *File
}

// CompressionFormat selects the codec used by the generation-C "modern"
// variant, or the legacy default.
type CompressionFormat int

const (
	// Zip is gen C's default LZ4-block codec (the "zip" container name is
	// the reference implementation's, not a literal deflate stream).
	Zip CompressionFormat = iota
	// BlockFormat is the modern, level-selectable block compressor.
	BlockFormat
)

// Archive is the gen-C archive DOM: an ordered, duplicate-free mapping from
// a file key to a file, hash-ascending, plus the header metadata needed to
// reproduce the wire format on write.
type Archive struct {
	Version           uint32
	Format            HeaderVariant
	CompressionFormat CompressionFormat

	entries []entry
}

// New returns an empty archive for the given version and file-header format.
func New(version uint32, format HeaderVariant, compressionFormat CompressionFormat) *Archive {
	return &Archive{Version: version, Format: format, CompressionFormat: compressionFormat}
}

// Len returns the number of files.
func (a *Archive) Len() int {
	return len(a.entries)
}

func (a *Archive) search(h uint64) int {
	return sort.Search(len(a.entries), func(i int) bool { return a.entries[i].key.Hash >= h })
}

// Get looks up a file by its key's hash.
func (a *Archive) Get(h uint64) (*File, Key, bool) {
	i := a.search(h)
	if i < len(a.entries) && a.entries[i].key.Hash == h {
		return a.entries[i].file, a.entries[i].key, true
	}
	return nil, Key{}, false
}

// Insert adds a file under key, maintaining hash-ascending order. A
// colliding hash is rejected with a DuplicateKeyError.
func (a *Archive) Insert(key Key, file *File) error {
	i := a.search(key.Hash)
	if i < len(a.entries) && a.entries[i].key.Hash == key.Hash {
		return bsaerr.DuplicateKeyError{Name: key.Name, Hash: key.Hash}
	}
	a.entries = append(a.entries, entry{})
	copy(a.entries[i+1:], a.entries[i:])
	a.entries[i] = entry{key: key, file: file}
	return nil
}

// Remove deletes the file with the given hash, reporting whether one was found.
func (a *Archive) Remove(h uint64) bool {
	i := a.search(h)
	if i < len(a.entries) && a.entries[i].key.Hash == h {
		a.entries = append(a.entries[:i], a.entries[i+1:]...)
		return true
	}
	return false
}

// Keys returns every key in hash-ascending order.
func (a *Archive) Keys() []Key {
	out := make([]Key, len(a.entries))
	for i, e := range a.entries {
		out[i] = e.key
	}
	return out
}

// Validate re-checks invariants 1, 2, 4, and 5 from §3 without mutating the
// archive.
func (a *Archive) Validate() []error {
	var errs []error
	for i := 1; i < len(a.entries); i++ {
		if a.entries[i-1].key.Hash >= a.entries[i].key.Hash {
			errs = append(errs, bsaerr.NewDecodeError(bsaerr.ErrHashMismatch, "sibling order violated"))
		}
	}
	for _, e := range a.entries {
		if recomputed := NewKey(e.key.Name).Hash; recomputed != e.key.Hash {
			errs = append(errs, bsaerr.Mismatch(bsaerr.ErrHashMismatch, e.key.Name, e.key.Hash, recomputed))
		}
		for _, c := range e.file.Chunks {
			if c.Compressed && c.Payload.IsCompressed() && c.Payload.DecompressedSize() != c.DecompressedSize {
				errs = append(errs, bsaerr.Mismatch(bsaerr.ErrSizeMismatch,
					e.key.Name, uint64(c.DecompressedSize), uint64(c.Payload.DecompressedSize()))) //nolint:gosec // sizes are bounded by archive format fields
			}
		}
	}
	return errs
}
