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
	"encoding/binary"
	"fmt"
	"io"
)

// Writer is a cursor over a growable sink. It never panics on size; every
// method surfaces the sink's I/O errors directly.
type Writer struct {
	w   io.Writer
	pos int64
}

// NewWriter wraps w, tracking the number of bytes written so far.
func NewWriter(w io.Writer) *Writer {
	return &Writer{w: w}
}

// Position returns the number of bytes written so far.
func (w *Writer) Position() int64 {
	return w.pos
}

func (w *Writer) write(b []byte) error {
	n, err := w.w.Write(b)
	w.pos += int64(n)
	if err != nil {
		return fmt.Errorf("write: %w", err)
	}
	return nil
}

// Bytes writes b verbatim.
func (w *Writer) Bytes(b []byte) error {
	return w.write(b)
}

// Uint8 writes a single byte.
func (w *Writer) Uint8(v uint8) error {
	return w.write([]byte{v})
}

// Uint16LE writes a little-endian uint16.
func (w *Writer) Uint16LE(v uint16) error {
	var b [2]byte
	binary.LittleEndian.PutUint16(b[:], v)
	return w.write(b[:])
}

// Uint16BE writes a big-endian uint16 (gen B Xbox variant).
func (w *Writer) Uint16BE(v uint16) error {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	return w.write(b[:])
}

// Uint32LE writes a little-endian uint32.
func (w *Writer) Uint32LE(v uint32) error {
	var b [4]byte
	binary.LittleEndian.PutUint32(b[:], v)
	return w.write(b[:])
}

// Uint32BE writes a big-endian uint32 (gen B Xbox variant).
func (w *Writer) Uint32BE(v uint32) error {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return w.write(b[:])
}

// Uint64LE writes a little-endian uint64.
func (w *Writer) Uint64LE(v uint64) error {
	var b [8]byte
	binary.LittleEndian.PutUint64(b[:], v)
	return w.write(b[:])
}

// Uint64BE writes a big-endian uint64 (gen B Xbox variant).
func (w *Writer) Uint64BE(v uint64) error {
	var b [8]byte
	binary.BigEndian.PutUint64(b[:], v)
	return w.write(b[:])
}

// FixedString writes s verbatim with no length prefix or terminator.
func (w *Writer) FixedString(s string) error {
	return w.write([]byte(s))
}

// CString writes s followed by a single NUL terminator.
func (w *Writer) CString(s string) error {
	if err := w.write([]byte(s)); err != nil {
		return err
	}
	return w.Uint8(0)
}

// LengthPrefixedString writes an unsigned length of the given byte width
// (1, 2, or 4) followed by s's raw bytes.
func (w *Writer) LengthPrefixedString(prefixWidth int, s string) error {
	n := len(s)
	switch prefixWidth {
	case 1:
		if err := w.Uint8(uint8(n)); err != nil { //nolint:gosec // caller bounds n to the format's limit
			return err
		}
	case 2:
		if err := w.Uint16LE(uint16(n)); err != nil { //nolint:gosec // caller bounds n to the format's limit
			return err
		}
	case 4:
		if err := w.Uint32LE(uint32(n)); err != nil { //nolint:gosec // caller bounds n to the format's limit
			return err
		}
	default:
		return fmt.Errorf("unsupported length-prefix width %d", prefixWidth)
	}
	return w.FixedString(s)
}

// Align emits zero bytes until the cursor reaches the next multiple of m.
func (w *Writer) Align(m int) error {
	if m <= 0 {
		return nil
	}
	rem := w.pos % int64(m)
	if rem == 0 {
		return nil
	}
	n := int64(m) - rem
	return w.write(make([]byte, n))
}
