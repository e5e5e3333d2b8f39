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

import (
	"bytes"
	"testing"

	"github.com/Ryan-rsm-McKenzie/bsa-go/compress"
	"github.com/Ryan-rsm-McKenzie/bsa-go/payload"
)

func singleFileArchive(t *testing.T, flags ArchiveFlags, data []byte, compressed bool) *Archive {
	t.Helper()

	a := New(104, flags, 0)
	dir := &Directory{}

	body := payload.Own(append([]byte(nil), data...))
	if compressed {
		codec, err := compress.Get(a.compressionAlgorithm())
		if err != nil {
			t.Fatalf("compress.Get: %v", err)
		}
		if err := body.Compress(codec, a.compressionAlgorithm(), compress.Options{}); err != nil {
			t.Fatalf("Compress: %v", err)
		}
	}

	fileKey := NewFileKey("t.dds")
	if err := dir.Insert(fileKey, &File{Payload: body, Compressed: compressed}); err != nil {
		t.Fatalf("dir.Insert: %v", err)
	}

	dirKey := NewDirectoryKey("textures")
	if err := a.Insert(dirKey, dir); err != nil {
		t.Fatalf("a.Insert: %v", err)
	}
	return a
}

func TestEncodeCompressedPayloadHasSizePrefix(t *testing.T) {
	t.Parallel()

	data := []byte("a texture's worth of uncompressed bytes, repeated for a compressible body.")
	a := singleFileArchive(t, FlagCompressed, data, true)

	var buf bytes.Buffer
	if err := Encode(&buf, a); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	parsed, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	dir, _, ok := parsed.Get(NewDirectoryKey("textures").Hash)
	if !ok {
		t.Fatalf("directory not found after round trip")
	}
	file, _, ok := dir.Get(NewFileKey("t.dds").Hash)
	if !ok {
		t.Fatalf("file not found after round trip")
	}
	if !file.Compressed {
		t.Fatalf("expected file to be read back as compressed")
	}
	if file.DecompressedSize != len(data) {
		t.Fatalf("DecompressedSize = %d, want %d", file.DecompressedSize, len(data))
	}
}

func TestParseInvertsPerFileCompressionBit(t *testing.T) {
	t.Parallel()

	data := []byte("stored raw, despite the archive defaulting to compressed")
	a := singleFileArchive(t, FlagCompressed, data, false)

	var buf bytes.Buffer
	if err := Encode(&buf, a); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	parsed, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	dir, _, _ := parsed.Get(NewDirectoryKey("textures").Hash)
	file, _, ok := dir.Get(NewFileKey("t.dds").Hash)
	if !ok {
		t.Fatalf("file not found after round trip")
	}
	if file.Compressed {
		t.Fatalf("expected the per-file top bit to invert the archive's default compressed state")
	}
	if !bytes.Equal(file.Payload.AsBytes(), data) {
		t.Fatalf("payload mismatch: got %q, want %q", file.Payload.AsBytes(), data)
	}
}

func TestEncodeParseRoundTripUncompressed(t *testing.T) {
	t.Parallel()

	data := []byte("plain uncompressed payload bytes")
	a := singleFileArchive(t, FlagDirectoryStrings|FlagFileStrings, data, false)

	var buf bytes.Buffer
	if err := Encode(&buf, a); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	parsed, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if errs := parsed.Validate(); len(errs) != 0 {
		t.Fatalf("Validate() = %v, want no errors", errs)
	}
	dir, dirKey, ok := parsed.Get(NewDirectoryKey("textures").Hash)
	if !ok {
		t.Fatalf("directory not found")
	}
	if dirKey.Name != "textures" {
		t.Fatalf("directory name = %q, want textures", dirKey.Name)
	}
	file, fileKey, ok := dir.Get(NewFileKey("t.dds").Hash)
	if !ok {
		t.Fatalf("file not found")
	}
	if fileKey.Name != "t.dds" {
		t.Fatalf("file name = %q, want t.dds", fileKey.Name)
	}
	if !bytes.Equal(file.Payload.AsBytes(), data) {
		t.Fatalf("payload mismatch")
	}
}

func TestHasFileTypeAndFileTypes(t *testing.T) {
	t.Parallel()

	a := New(104, 0, FileTypeTextures|FileTypeMeshes)
	if !a.HasFileType(FileTypeTextures) {
		t.Fatalf("expected FileTypeTextures to be set")
	}
	if a.HasFileType(FileTypeVoices) {
		t.Fatalf("expected FileTypeVoices to be unset")
	}
	types := a.FileTypes()
	if len(types) != 2 {
		t.Fatalf("FileTypes() = %v, want 2 entries", types)
	}
}

func TestParseWithCompressionResultDecompressedEagerlyDecodes(t *testing.T) {
	t.Parallel()

	data := []byte("a texture's worth of bytes, compressed on disk and decoded eagerly on read.")
	a := singleFileArchive(t, FlagCompressed, data, true)

	var buf bytes.Buffer
	if err := Encode(&buf, a); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	parsed, err := Parse(buf.Bytes(), ReadOptions{CompressionResult: Decompressed})
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	dir, _, _ := parsed.Get(NewDirectoryKey("textures").Hash)
	file, _, ok := dir.Get(NewFileKey("t.dds").Hash)
	if !ok {
		t.Fatalf("file not found after round trip")
	}
	if file.Payload.IsCompressed() {
		t.Fatalf("expected payload to already be decoded")
	}
	if !bytes.Equal(file.Payload.AsBytes(), data) {
		t.Fatalf("payload mismatch: got %q, want %q", file.Payload.AsBytes(), data)
	}
}

func TestParseRejectsBadMagic(t *testing.T) {
	t.Parallel()

	data := make([]byte, headerSize)
	copy(data, "NOPE")
	if _, err := Parse(data); err == nil {
		t.Fatalf("expected an error for a bad magic")
	}
}
