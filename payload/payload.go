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

// Package payload implements the tri-state payload body (C5) shared by
// every file and chunk leaf: bytes are either borrowed from a backing
// mapping or owned in a heap buffer, and either form may currently hold the
// compressed image of bytes not yet decompressed. A Body is never partially owned —
// mutation always implies taking ownership first.
package payload

import (
	"fmt"

	"github.com/Ryan-rsm-McKenzie/bsa-go/bsaerr"
	"github.com/Ryan-rsm-McKenzie/bsa-go/compress"
)

// decompressCache memoizes Decompress results across every Body in the
// process: a DOM's payloads are read-only once parsed, so re-decompressing
// the same borrowed span (e.g. re-reading a file after Validate walked the
// archive) is a cache hit rather than repeated work.
var decompressCache = compress.NewCachingDecompressor(256)

// Body is a payload's byte content. The zero value is an empty, owned,
// uncompressed body.
type Body struct {
	borrowed []byte // non-nil iff this body borrows from a provider
	owned    []byte // non-nil iff this body owns a heap buffer

	compressed       bool // current bytes are the compressed image
	decompressedSize int  // valid iff compressed
	alg              compress.Algorithm
}

// Borrow wraps span as a zero-copy borrowed body. span must lie within its
// provider's mapping and must outlive every Body built from it (invariant 3
// in §3); Borrow itself cannot enforce that — the caller's provider owns
// that discipline.
func Borrow(span []byte) *Body {
	return &Body{borrowed: span}
}

// Own wraps buf as an owned body, taking ownership of the slice.
func Own(buf []byte) *Body {
	return &Body{owned: buf}
}

// BorrowCompressed wraps span as a zero-copy borrowed body whose bytes are
// currently the compressed image of a decompressedSize-byte payload. Parsing
// a compressed gen-B file or gen-C chunk uses this so the compressed bytes
// are never copied out of the backing mapping until Decompress is called.
func BorrowCompressed(span []byte, alg compress.Algorithm, decompressedSize int) *Body {
	return &Body{borrowed: span, compressed: true, decompressedSize: decompressedSize, alg: alg}
}

// OwnCompressed wraps buf as an owned, currently-compressed body whose
// decompressed form is decompressedSize bytes long.
func OwnCompressed(buf []byte, alg compress.Algorithm, decompressedSize int) *Body {
	return &Body{owned: buf, compressed: true, decompressedSize: decompressedSize, alg: alg}
}

// AsBytes returns the body's current bytes in O(1): the borrowed span if
// present, otherwise the owned buffer. The returned slice must not be
// mutated by the caller unless IsOwned is true.
func (b *Body) AsBytes() []byte {
	if b.borrowed != nil {
		return b.borrowed
	}
	return b.owned
}

// Len returns len(AsBytes()).
func (b *Body) Len() int {
	return len(b.AsBytes())
}

// IsOwned reports whether the body currently holds a heap buffer rather
// than a borrowed span.
func (b *Body) IsOwned() bool {
	return b.borrowed == nil
}

// IsCompressed reports whether the current bytes are a compressed image.
func (b *Body) IsCompressed() bool {
	return b.compressed
}

// DecompressedSize returns the recorded decompressed size. It is only
// meaningful when IsCompressed is true.
func (b *Body) DecompressedSize() int {
	return b.decompressedSize
}

// TakeOwned returns an owned buffer with the body's current bytes, cloning
// a borrowed span if necessary. The body itself becomes owned as a result.
func (b *Body) TakeOwned() []byte {
	if b.borrowed != nil {
		buf := append([]byte(nil), b.borrowed...)
		b.owned = buf
		b.borrowed = nil
	}
	return b.owned
}

// Decompress replaces the body with the decompressed bytes produced by
// codec, verifying the result matches the recorded decompressed size
// (invariant 4 in §3). Fails if the body is not currently marked
// compressed.
func (b *Body) Decompress(codec compress.Codec, opts compress.Options) error {
	if !b.compressed {
		return bsaerr.NewDecodeError(bsaerr.ErrCompression, "payload is not compressed")
	}
	out, err := decompressCache.Decompress(codec, b.alg, b.AsBytes(), b.decompressedSize, opts)
	if err != nil {
		return fmt.Errorf("decompress payload: %w", err)
	}
	b.owned = out
	b.borrowed = nil
	b.compressed = false
	b.decompressedSize = 0
	return nil
}

// Compress replaces the body with the compressed bytes produced by codec,
// recording the pre-compression length as the decompressed size so a later
// Decompress can verify it. Fails if the body is already marked compressed.
func (b *Body) Compress(codec compress.Codec, alg compress.Algorithm, opts compress.Options) error {
	if b.compressed {
		return bsaerr.NewDecodeError(bsaerr.ErrCompression, "payload is already compressed")
	}
	src := b.AsBytes()
	decompressedSize := len(src)
	out, err := codec.Compress(src, opts)
	if err != nil {
		return fmt.Errorf("compress payload: %w", err)
	}
	b.owned = out
	b.borrowed = nil
	b.compressed = true
	b.decompressedSize = decompressedSize
	b.alg = alg
	return nil
}

// Algorithm returns the codec this body was last compressed/decompressed
// with. Only meaningful when IsCompressed is true.
func (b *Body) Algorithm() compress.Algorithm {
	return b.alg
}
