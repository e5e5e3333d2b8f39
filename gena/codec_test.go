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
	"bytes"
	"testing"

	"github.com/Ryan-rsm-McKenzie/bsa-go/hash"
	"github.com/Ryan-rsm-McKenzie/bsa-go/payload"
)

func buildTwoFileArchive(t *testing.T) (*Archive, []byte, []byte) {
	t.Helper()

	a := New()
	data1 := []byte("mesh one data")
	data2 := []byte("mesh two data, longer")

	for _, f := range []struct {
		name string
		data []byte
	}{
		{`meshes\a.nif`, data1},
		{`meshes\b.nif`, data2},
	} {
		key := NewKey(f.name)
		if err := a.Insert(key, &File{Payload: payload.Borrow(f.data), Size: len(f.data)}); err != nil {
			t.Fatalf("Insert(%q): %v", f.name, err)
		}
	}
	return a, data1, data2
}

func TestEncodeHeaderAndFileCount(t *testing.T) {
	t.Parallel()

	a, _, _ := buildTwoFileArchive(t)

	var buf bytes.Buffer
	if err := Encode(&buf, a); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := buf.Bytes()

	if got := out[0:4]; !bytes.Equal(got, []byte{0x00, 0x01, 0x00, 0x00}) {
		t.Fatalf("version tag bytes = % x, want 00 01 00 00", got)
	}
	if got := out[8:12]; !bytes.Equal(got, []byte{0x02, 0x00, 0x00, 0x00}) {
		t.Fatalf("file count bytes = % x, want 02 00 00 00", got)
	}
}

func TestEncodeOrdersPayloadsByHash(t *testing.T) {
	t.Parallel()

	a, data1, data2 := buildTwoFileArchive(t)

	keyA := hash.GenA(`meshes\a.nif`)
	keyB := hash.GenA(`meshes\b.nif`)

	var wantFirst, wantSecond []byte
	if keyA < keyB {
		wantFirst, wantSecond = data1, data2
	} else {
		wantFirst, wantSecond = data2, data1
	}

	var buf bytes.Buffer
	if err := Encode(&buf, a); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := buf.Bytes()

	firstIdx := bytes.Index(out, wantFirst)
	secondIdx := bytes.Index(out, wantSecond)
	if firstIdx < 0 || secondIdx < 0 {
		t.Fatalf("payload bytes not found in encoded output")
	}
	if firstIdx >= secondIdx {
		t.Fatalf("payloads not emitted in hash-ascending order: first at %d, second at %d", firstIdx, secondIdx)
	}
}

func TestEncodeParseRoundTrip(t *testing.T) {
	t.Parallel()

	a, data1, data2 := buildTwoFileArchive(t)

	var buf bytes.Buffer
	if err := Encode(&buf, a); err != nil {
		t.Fatalf("Encode: %v", err)
	}

	parsed, err := Parse(buf.Bytes())
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if parsed.Len() != 2 {
		t.Fatalf("Len() = %d, want 2", parsed.Len())
	}

	fileA, keyA, ok := parsed.Get(hash.GenA(`meshes\a.nif`))
	if !ok {
		t.Fatalf("a.nif not found after round trip")
	}
	if keyA.Name != `meshes\a.nif` {
		t.Fatalf("name = %q, want meshes\\a.nif", keyA.Name)
	}
	if !bytes.Equal(fileA.Payload.AsBytes(), data1) {
		t.Fatalf("a.nif payload mismatch")
	}

	fileB, _, ok := parsed.Get(hash.GenA(`meshes\b.nif`))
	if !ok {
		t.Fatalf("b.nif not found after round trip")
	}
	if !bytes.Equal(fileB.Payload.AsBytes(), data2) {
		t.Fatalf("b.nif payload mismatch")
	}

	if errs := parsed.Validate(); len(errs) != 0 {
		t.Fatalf("Validate() = %v, want no errors", errs)
	}
}

func TestInsertRejectsDuplicateHash(t *testing.T) {
	t.Parallel()

	a := New()
	key := NewKey(`meshes\a.nif`)
	if err := a.Insert(key, &File{Payload: payload.Borrow([]byte("x")), Size: 1}); err != nil {
		t.Fatalf("first Insert: %v", err)
	}
	if err := a.Insert(key, &File{Payload: payload.Borrow([]byte("y")), Size: 1}); err == nil {
		t.Fatalf("expected duplicate-key error on second Insert")
	}
}

func TestParseRejectsTamperedNameHash(t *testing.T) {
	t.Parallel()

	a := New()
	key := NewKey(`meshes\a.nif`)
	if err := a.Insert(key, &File{Payload: payload.Borrow([]byte("x")), Size: 1}); err != nil {
		t.Fatalf("Insert: %v", err)
	}

	var buf bytes.Buffer
	if err := Encode(&buf, a); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	out := buf.Bytes()

	idx := bytes.Index(out, []byte(`meshes\a.nif`))
	if idx < 0 {
		t.Fatalf("name not found in encoded output")
	}
	out[idx] = 'A' // corrupt the stored name without touching its hash

	if _, err := Parse(out); err == nil {
		t.Fatalf("expected a hash-mismatch error for a tampered name")
	}
}

func TestParseRejectsWrongVersion(t *testing.T) {
	t.Parallel()

	data := make([]byte, 12)
	data[0] = 0x99 // not the 0x100 version tag
	if _, err := Parse(data); err == nil {
		t.Fatalf("expected an error for an unrecognized version tag")
	}
}
