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
	"bytes"
	"testing"

	"github.com/Ryan-rsm-McKenzie/bsa-go/payload"
)

func TestEncodeParseRoundTripGeneralSingleChunk(t *testing.T) {
	t.Parallel()

	data := []byte("a loose general-purpose file's worth of bytes")
	a := New(1, General, Zip)
	key := NewKey("misc/thing.txt")
	file := &File{
		Variant: General,
		Chunks: []*Chunk{{
			Payload: payload.Own(append([]byte(nil), data...)),
		}},
	}
	if err := a.Insert(key, file); err != nil {
		t.Fatalf("Insert: %v", err)
	}

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

	got, gotKey, ok := parsed.Get(key.Hash)
	if !ok {
		t.Fatalf("file not found after round trip")
	}
	if gotKey.Name != key.Name {
		t.Fatalf("name = %q, want %q", gotKey.Name, key.Name)
	}
	if len(got.Chunks) != 1 {
		t.Fatalf("chunk count = %d, want 1", len(got.Chunks))
	}
	c := got.Chunks[0]
	if c.StartMip != 0 || c.EndMip != 0 {
		t.Fatalf("mip range = (%d, %d), want (0, 0)", c.StartMip, c.EndMip)
	}
	if c.Compressed {
		t.Fatalf("expected uncompressed chunk to report compressed_size == 0")
	}
	if !bytes.Equal(c.Payload.AsBytes(), data) {
		t.Fatalf("payload mismatch")
	}
}

func TestEncodeParseRoundTripDX10MipChunks(t *testing.T) {
	t.Parallel()

	mip0to3 := []byte("the first four mip levels of a texture, bundled as one chunk")
	mip4to10 := []byte("the remaining, smaller mip levels bundled as a second chunk")

	a := New(2, DX10, Zip)
	key := NewKey("textures/rock.dds")
	file := &File{
		Variant: DX10,
		DX10:    &DX10Info{Height: 512, Width: 512, MipCount: 11, Format: 71},
		Chunks: []*Chunk{
			{Payload: payload.Own(append([]byte(nil), mip0to3...)), StartMip: 0, EndMip: 3},
			{Payload: payload.Own(append([]byte(nil), mip4to10...)), StartMip: 4, EndMip: 10},
		},
	}
	if err := a.Insert(key, file); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, a); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	parsed, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	got, _, ok := parsed.Get(key.Hash)
	if !ok {
		t.Fatalf("file not found after round trip")
	}
	if got.Variant != DX10 {
		t.Fatalf("variant = %v, want DX10", got.Variant)
	}
	if got.DX10 == nil || got.DX10.Height != 512 || got.DX10.Width != 512 || got.DX10.MipCount != 11 {
		t.Fatalf("DX10 sub-header mismatch: %+v", got.DX10)
	}
	if len(got.Chunks) != 2 {
		t.Fatalf("chunk count = %d, want 2", len(got.Chunks))
	}
	if got.Chunks[0].StartMip != 0 || got.Chunks[0].EndMip != 3 {
		t.Fatalf("chunk 0 mip range = (%d, %d), want (0, 3)", got.Chunks[0].StartMip, got.Chunks[0].EndMip)
	}
	if got.Chunks[1].StartMip != 4 || got.Chunks[1].EndMip != 10 {
		t.Fatalf("chunk 1 mip range = (%d, %d), want (4, 10)", got.Chunks[1].StartMip, got.Chunks[1].EndMip)
	}
	if !bytes.Equal(got.Chunks[0].Payload.AsBytes(), mip0to3) {
		t.Fatalf("chunk 0 payload mismatch")
	}
	if !bytes.Equal(got.Chunks[1].Payload.AsBytes(), mip4to10) {
		t.Fatalf("chunk 1 payload mismatch")
	}
}

func TestInsertRejectsDuplicateHash(t *testing.T) {
	t.Parallel()

	a := New(1, General, Zip)
	key := NewKey("dup.txt")
	file := &File{Variant: General, Chunks: []*Chunk{{Payload: payload.Own([]byte("x"))}}}
	if err := a.Insert(key, file); err != nil {
		t.Fatalf("first Insert: %v", err)
	}
	if err := a.Insert(key, file); err == nil {
		t.Fatalf("expected duplicate-key error on second Insert")
	}
}

func TestParseRejectsBadMagic(t *testing.T) {
	t.Parallel()

	data := make([]byte, 20)
	copy(data, "NOPE")
	if _, err := Parse(data); err == nil {
		t.Fatalf("expected an error for a bad magic")
	}
}

func TestParseRejectsUnrecognizedFormatTag(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	buf.WriteString(magic)
	buf.Write([]byte{1, 0, 0, 0})
	buf.WriteString("ZZZZ")
	if _, err := Parse(buf.Bytes()); err == nil {
		t.Fatalf("expected an error for an unrecognized format tag")
	}
}
