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

package compress

import (
	"bytes"
	"io"

	"github.com/klauspost/compress/zstd"
)

// blockCodec is gen C's "modern" variant: a generic block compressor with
// a caller-selectable level, per §4.4 and the gen C ArchiveOptions in §6.
type blockCodec struct{}

// levelFor maps the archive's 1-based compression_level option onto the
// encoder's coarser speed/ratio buckets.
func levelFor(level int) zstd.EncoderLevel {
	switch {
	case level <= 1:
		return zstd.SpeedFastest
	case level <= 3:
		return zstd.SpeedDefault
	case level <= 6:
		return zstd.SpeedBetterCompression
	default:
		return zstd.SpeedBestCompression
	}
}

func (blockCodec) Compress(src []byte, opts Options) ([]byte, error) {
	var buf bytes.Buffer
	w, err := zstd.NewWriter(&buf, zstd.WithEncoderLevel(levelFor(opts.Level)))
	if err != nil {
		return nil, wrapCompress(Block, err)
	}
	if _, err := w.Write(src); err != nil {
		_ = w.Close()
		return nil, wrapCompress(Block, err)
	}
	if err := w.Close(); err != nil {
		return nil, wrapCompress(Block, err)
	}
	return buf.Bytes(), nil
}

func (blockCodec) Decompress(src []byte, expectedSize int, _ Options) ([]byte, error) {
	r, err := zstd.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, wrapDecompress(Block, err)
	}
	defer r.Close()

	dst := make([]byte, expectedSize)
	n, err := io.ReadFull(r, dst)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, wrapDecompress(Block, err)
	}
	if n != expectedSize {
		return nil, sizeMismatch(Block, expectedSize, n)
	}
	return dst, nil
}

func (blockCodec) Bound(n int) int {
	// Mirrors the standard zstd worst-case-expansion bound: source size
	// plus a small fixed framing overhead.
	return n + (n >> 8) + 64
}
