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

// Package compress wraps the three codecs the archive generations use
// behind one uniform (compress, decompress, bound) contract, and memoizes
// decompression results so repeatedly reading the same borrowed payload
// doesn't repeatedly pay the codec's cost.
package compress

import "fmt"

// Algorithm names a supported codec. The set is closed: every generation's
// ArchiveOptions picks one of these by name, never an arbitrary string.
type Algorithm int

const (
	// Zlib is the legacy deflate/zlib stream used by older gen B archives.
	Zlib Algorithm = iota
	// LZ4 is the block codec used by newer gen B archives and gen C's
	// default format.
	LZ4
	// Block is the generic, level-selectable block compressor used by
	// gen C's modern variant.
	Block
)

func (a Algorithm) String() string {
	switch a {
	case Zlib:
		return "zlib"
	case LZ4:
		return "lz4"
	case Block:
		return "block"
	default:
		return fmt.Sprintf("Algorithm(%d)", int(a))
	}
}

// Options configures a single (de)compression call. Level is only
// meaningful for Block; the other codecs ignore it.
type Options struct {
	Level int
}

// Codec is the uniform contract every algorithm implements.
type Codec interface {
	// Compress returns the compressed form of src.
	Compress(src []byte, opts Options) ([]byte, error)

	// Decompress returns the decompressed form of src, verifying that the
	// result is exactly expectedSize bytes long — a mismatch is a hard
	// *bsaerr.DecodeError, per §4.4 and invariant 4 in §3.
	Decompress(src []byte, expectedSize int, opts Options) ([]byte, error)

	// Bound returns an upper bound on the compressed size of n
	// decompressed bytes, suitable for pre-sizing an output buffer.
	Bound(n int) int
}

// Get returns the Codec implementation for the named algorithm.
func Get(alg Algorithm) (Codec, error) {
	switch alg {
	case Zlib:
		return zlibCodec{}, nil
	case LZ4:
		return lz4Codec{}, nil
	case Block:
		return blockCodec{}, nil
	default:
		return nil, fmt.Errorf("compress: %w: unknown algorithm %v", errUnsupported, alg)
	}
}
