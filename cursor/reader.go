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

// Package cursor provides a bounds-checked, endian-aware byte cursor shared
// by every archive generation's decoder and encoder. A short read is always
// a recoverable *bsaerr.DecodeError, never a panic.
package cursor

import (
	"encoding/binary"

	"github.com/Ryan-rsm-McKenzie/bsa-go/bsaerr"
)

// Reader is a cursor over a borrowed byte span. It never copies the span;
// every returned []byte aliases the original backing array.
type Reader struct {
	data []byte
	pos  int64
}

// NewReader wraps span in a Reader starting at offset 0.
func NewReader(span []byte) *Reader {
	return &Reader{data: span}
}

// Position returns the current absolute offset.
func (r *Reader) Position() int64 {
	return r.pos
}

// Len returns the total length of the underlying span.
func (r *Reader) Len() int64 {
	return int64(len(r.data))
}

// Remaining returns the number of unread bytes.
func (r *Reader) Remaining() int64 {
	return r.Len() - r.pos
}

// SeekAbsolute moves the cursor to an absolute offset. It does not itself
// bounds-check against EOF; the next read will if the offset is out of range.
func (r *Reader) SeekAbsolute(offset int64) {
	r.pos = offset
}

func (r *Reader) require(n int64, context string) error {
	if r.pos < 0 || n < 0 || r.pos+n > r.Len() {
		return bsaerr.AtOffset(bsaerr.ErrTruncated, context, r.pos)
	}
	return nil
}

// Bytes returns the next n bytes as a zero-copy slice into the backing span
// and advances the cursor.
func (r *Reader) Bytes(n int, context string) ([]byte, error) {
	if err := r.require(int64(n), context); err != nil {
		return nil, err
	}
	out := r.data[r.pos : r.pos+int64(n)]
	r.pos += int64(n)
	return out, nil
}

// PeekBytes returns the next n bytes without advancing the cursor.
func (r *Reader) PeekBytes(n int, context string) ([]byte, error) {
	if err := r.require(int64(n), context); err != nil {
		return nil, err
	}
	return r.data[r.pos : r.pos+int64(n)], nil
}

// Uint8 reads a single byte.
func (r *Reader) Uint8(context string) (uint8, error) {
	b, err := r.Bytes(1, context)
	if err != nil {
		return 0, err
	}
	return b[0], nil
}

// Uint16LE reads a little-endian uint16.
func (r *Reader) Uint16LE(context string) (uint16, error) {
	b, err := r.Bytes(2, context)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint16(b), nil
}

// Uint16BE reads a big-endian uint16 (gen B Xbox variant).
func (r *Reader) Uint16BE(context string) (uint16, error) {
	b, err := r.Bytes(2, context)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint16(b), nil
}

// Uint32LE reads a little-endian uint32.
func (r *Reader) Uint32LE(context string) (uint32, error) {
	b, err := r.Bytes(4, context)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint32(b), nil
}

// Uint32BE reads a big-endian uint32 (gen B Xbox variant).
func (r *Reader) Uint32BE(context string) (uint32, error) {
	b, err := r.Bytes(4, context)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint32(b), nil
}

// Uint64LE reads a little-endian uint64.
func (r *Reader) Uint64LE(context string) (uint64, error) {
	b, err := r.Bytes(8, context)
	if err != nil {
		return 0, err
	}
	return binary.LittleEndian.Uint64(b), nil
}

// Uint64BE reads a big-endian uint64 (gen B Xbox variant).
func (r *Reader) Uint64BE(context string) (uint64, error) {
	b, err := r.Bytes(8, context)
	if err != nil {
		return 0, err
	}
	return binary.BigEndian.Uint64(b), nil
}

// FixedString reads n raw bytes and returns them as a string with no
// trimming of trailing NULs (callers that want NUL-trimmed fixed strings
// should use CString on a bounded sub-reader).
func (r *Reader) FixedString(n int, context string) (string, error) {
	b, err := r.Bytes(n, context)
	if err != nil {
		return "", err
	}
	return string(b), nil
}

// CString reads a NUL-terminated string, consuming the terminator.
func (r *Reader) CString(context string) (string, error) {
	start := r.pos
	for {
		if r.pos >= r.Len() {
			return "", bsaerr.AtOffset(bsaerr.ErrTruncated, context+": unterminated string", start)
		}
		if r.data[r.pos] == 0 {
			s := string(r.data[start:r.pos])
			r.pos++
			return s, nil
		}
		r.pos++
	}
}

// LengthPrefixedString reads a string prefixed by an unsigned length of the
// given width in bytes (1, 2, or 4 — the calling format decides which).
func (r *Reader) LengthPrefixedString(prefixWidth int, context string) (string, error) {
	var n uint64
	switch prefixWidth {
	case 1:
		v, err := r.Uint8(context)
		if err != nil {
			return "", err
		}
		n = uint64(v)
	case 2:
		v, err := r.Uint16LE(context)
		if err != nil {
			return "", err
		}
		n = uint64(v)
	case 4:
		v, err := r.Uint32LE(context)
		if err != nil {
			return "", err
		}
		n = uint64(v)
	default:
		return "", bsaerr.NewDecodeError(bsaerr.ErrEncoding, "unsupported length-prefix width")
	}
	return r.FixedString(int(n), context)
}

// Align advances the cursor to the next multiple of m, verifying that every
// skipped byte is zero. A non-zero pad byte is a truncated/corrupt error,
// matching the spec's "verify ... on read" rule.
func (r *Reader) Align(m int, context string) error {
	if m <= 0 {
		return nil
	}
	rem := r.pos % int64(m)
	if rem == 0 {
		return nil
	}
	n := int64(m) - rem
	pad, err := r.Bytes(int(n), context+": padding")
	if err != nil {
		return err
	}
	for _, b := range pad {
		if b != 0 {
			return bsaerr.AtOffset(bsaerr.ErrTruncated, context+": non-zero padding byte", r.pos-int64(len(pad)))
		}
	}
	return nil
}

// SkipAlign advances the cursor to the next multiple of m without verifying
// pad contents, for formats whose padding is not guaranteed to be zeroed.
func (r *Reader) SkipAlign(m int) {
	if m <= 0 {
		return
	}
	rem := r.pos % int64(m)
	if rem != 0 {
		r.pos += int64(m) - rem
	}
}
