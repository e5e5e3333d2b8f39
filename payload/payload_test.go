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

package payload

import (
	"bytes"
	"testing"

	"github.com/Ryan-rsm-McKenzie/bsa-go/compress"
)

func TestBorrowIsZeroCopy(t *testing.T) {
	t.Parallel()

	span := []byte("hello world")
	b := Borrow(span)
	if b.IsOwned() {
		t.Fatalf("expected borrowed body to report IsOwned()==false")
	}
	if &b.AsBytes()[0] != &span[0] {
		t.Fatalf("expected AsBytes to alias the original span")
	}
}

func TestTakeOwnedClonesBorrowedSpan(t *testing.T) {
	t.Parallel()

	span := []byte("hello world")
	b := Borrow(span)
	owned := b.TakeOwned()
	if !b.IsOwned() {
		t.Fatalf("expected body to become owned")
	}
	if &owned[0] == &span[0] {
		t.Fatalf("expected TakeOwned to clone, not alias")
	}
	if !bytes.Equal(owned, span) {
		t.Fatalf("expected cloned bytes to match original")
	}
}

func TestCompressDecompressRoundTrip(t *testing.T) {
	t.Parallel()

	codec, err := compress.Get(compress.Zlib)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	original := bytes.Repeat([]byte("payload round trip "), 64)
	b := Own(append([]byte(nil), original...))

	if err := b.Compress(codec, compress.Zlib, compress.Options{}); err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if !b.IsCompressed() {
		t.Fatalf("expected IsCompressed()==true after Compress")
	}
	if b.DecompressedSize() != len(original) {
		t.Fatalf("expected DecompressedSize()==%d, got %d", len(original), b.DecompressedSize())
	}

	if err := b.Decompress(codec, compress.Options{}); err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	if b.IsCompressed() {
		t.Fatalf("expected IsCompressed()==false after Decompress")
	}
	if !bytes.Equal(b.AsBytes(), original) {
		t.Fatalf("round trip mismatch")
	}
}

func TestDecompressFailsWhenNotCompressed(t *testing.T) {
	t.Parallel()

	codec, _ := compress.Get(compress.Zlib)
	b := Own([]byte("not compressed"))
	if err := b.Decompress(codec, compress.Options{}); err == nil {
		t.Fatalf("expected error decompressing a non-compressed body")
	}
}

func TestCompressFailsWhenAlreadyCompressed(t *testing.T) {
	t.Parallel()

	codec, _ := compress.Get(compress.Zlib)
	b := Own([]byte("some data"))
	if err := b.Compress(codec, compress.Zlib, compress.Options{}); err != nil {
		t.Fatalf("Compress: %v", err)
	}
	if err := b.Compress(codec, compress.Zlib, compress.Options{}); err == nil {
		t.Fatalf("expected error compressing an already-compressed body")
	}
}
