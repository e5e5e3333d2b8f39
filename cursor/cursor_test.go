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

package cursor

import (
	"bytes"
	"errors"
	"testing"

	"github.com/Ryan-rsm-McKenzie/bsa-go/bsaerr"
)

func TestReaderWriterRoundTrip(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	w := NewWriter(&buf)
	if err := w.Uint8(0x7F); err != nil {
		t.Fatalf("Uint8: %v", err)
	}
	if err := w.Uint16LE(0x1234); err != nil {
		t.Fatalf("Uint16LE: %v", err)
	}
	if err := w.Uint32BE(0xDEADBEEF); err != nil {
		t.Fatalf("Uint32BE: %v", err)
	}
	if err := w.Uint64LE(0x0102030405060708); err != nil {
		t.Fatalf("Uint64LE: %v", err)
	}
	if err := w.CString("hello"); err != nil {
		t.Fatalf("CString: %v", err)
	}
	if err := w.LengthPrefixedString(2, "textures"); err != nil {
		t.Fatalf("LengthPrefixedString: %v", err)
	}

	r := NewReader(buf.Bytes())
	if v, err := r.Uint8("u8"); err != nil || v != 0x7F {
		t.Fatalf("Uint8 = %v, %v, want 0x7F", v, err)
	}
	if v, err := r.Uint16LE("u16le"); err != nil || v != 0x1234 {
		t.Fatalf("Uint16LE = %v, %v, want 0x1234", v, err)
	}
	if v, err := r.Uint32BE("u32be"); err != nil || v != 0xDEADBEEF {
		t.Fatalf("Uint32BE = %v, %v, want 0xDEADBEEF", v, err)
	}
	if v, err := r.Uint64LE("u64le"); err != nil || v != 0x0102030405060708 {
		t.Fatalf("Uint64LE = %v, %v, want 0x0102030405060708", v, err)
	}
	if v, err := r.CString("cstring"); err != nil || v != "hello" {
		t.Fatalf("CString = %q, %v, want hello", v, err)
	}
	if v, err := r.LengthPrefixedString(2, "lps"); err != nil || v != "textures" {
		t.Fatalf("LengthPrefixedString = %q, %v, want textures", v, err)
	}
	if r.Remaining() != 0 {
		t.Fatalf("Remaining() = %d, want 0", r.Remaining())
	}
}

func TestReaderRejectsTruncatedInput(t *testing.T) {
	t.Parallel()

	r := NewReader([]byte{0x01, 0x02})
	if _, err := r.Uint32LE("too short"); !errors.Is(err, bsaerr.ErrTruncated) {
		t.Fatalf("err = %v, want ErrTruncated", err)
	}
}

func TestAlignRejectsNonZeroPadding(t *testing.T) {
	t.Parallel()

	r := NewReader([]byte{0x01, 0xFF, 0xFF, 0xFF})
	if _, err := r.Uint8("first byte"); err != nil {
		t.Fatalf("Uint8: %v", err)
	}
	if err := r.Align(4, "align"); !errors.Is(err, bsaerr.ErrTruncated) {
		t.Fatalf("Align err = %v, want ErrTruncated for non-zero padding", err)
	}
}

func TestAlignAcceptsZeroPadding(t *testing.T) {
	t.Parallel()

	r := NewReader([]byte{0x01, 0x00, 0x00, 0x00})
	if _, err := r.Uint8("first byte"); err != nil {
		t.Fatalf("Uint8: %v", err)
	}
	if err := r.Align(4, "align"); err != nil {
		t.Fatalf("Align: %v", err)
	}
	if r.Position() != 4 {
		t.Fatalf("Position() = %d, want 4", r.Position())
	}
}
