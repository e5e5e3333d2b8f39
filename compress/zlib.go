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

	"github.com/klauspost/compress/zlib"
)

// zlibCodec is the legacy deflate/zlib stream codec used by older gen B
// archives.
type zlibCodec struct{}

func (zlibCodec) Compress(src []byte, _ Options) ([]byte, error) {
	var buf bytes.Buffer
	w := zlib.NewWriter(&buf)
	if _, err := w.Write(src); err != nil {
		return nil, wrapCompress(Zlib, err)
	}
	if err := w.Close(); err != nil {
		return nil, wrapCompress(Zlib, err)
	}
	return buf.Bytes(), nil
}

func (zlibCodec) Decompress(src []byte, expectedSize int, _ Options) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(src))
	if err != nil {
		return nil, wrapDecompress(Zlib, err)
	}
	defer func() { _ = r.Close() }()

	dst := make([]byte, expectedSize)
	n, err := io.ReadFull(r, dst)
	if err != nil && err != io.ErrUnexpectedEOF {
		return nil, wrapDecompress(Zlib, err)
	}
	if n != expectedSize {
		return nil, sizeMismatch(Zlib, expectedSize, n)
	}
	return dst, nil
}

func (zlibCodec) Bound(n int) int {
	// zlib's worst case expansion: source plus framing overhead.
	return n + n/1000 + 128
}
