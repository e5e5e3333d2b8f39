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
	"github.com/pierrec/lz4/v4"
)

// lz4Codec is the raw LZ4 block codec shared by newer gen B archives and
// gen C's default format. Both generations frame an LZ4 block the same
// way: no header, no checksum, just the compressed bytes plus the
// separately-stored decompressed size.
type lz4Codec struct{}

func (lz4Codec) Compress(src []byte, _ Options) ([]byte, error) {
	dst := make([]byte, lz4.CompressBlockBound(len(src)))
	var c lz4.Compressor
	n, err := c.CompressBlock(src, dst)
	if err != nil {
		return nil, wrapCompress(LZ4, err)
	}
	if n == 0 {
		// Incompressible input: lz4 signals this by writing nothing.
		// Store a copy verbatim; callers that need to distinguish this
		// from a genuine empty block should check len(src) separately.
		return append([]byte(nil), src...), nil
	}
	return dst[:n], nil
}

func (lz4Codec) Decompress(src []byte, expectedSize int, _ Options) ([]byte, error) {
	dst := make([]byte, expectedSize)
	n, err := lz4.UncompressBlock(src, dst)
	if err != nil {
		return nil, wrapDecompress(LZ4, err)
	}
	if n != expectedSize {
		return nil, sizeMismatch(LZ4, expectedSize, n)
	}
	return dst, nil
}

func (lz4Codec) Bound(n int) int {
	return lz4.CompressBlockBound(n)
}
