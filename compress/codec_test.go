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
	"errors"
	"strings"
	"testing"

	"github.com/Ryan-rsm-McKenzie/bsa-go/bsaerr"
)

func TestCodecRoundTrip(t *testing.T) {
	t.Parallel()

	src := []byte(strings.Repeat("the quick brown fox jumps over the lazy dog ", 64))

	for _, alg := range []Algorithm{Zlib, LZ4, Block} {
		alg := alg
		t.Run(alg.String(), func(t *testing.T) {
			t.Parallel()

			codec, err := Get(alg)
			if err != nil {
				t.Fatalf("Get: %v", err)
			}

			compressed, err := codec.Compress(src, Options{Level: 3})
			if err != nil {
				t.Fatalf("Compress: %v", err)
			}

			decompressed, err := codec.Decompress(compressed, len(src), Options{})
			if err != nil {
				t.Fatalf("Decompress: %v", err)
			}
			if !bytes.Equal(decompressed, src) {
				t.Fatalf("round trip mismatch for %v", alg)
			}
		})
	}
}

func TestDecompressRejectsSizeMismatch(t *testing.T) {
	t.Parallel()

	codec, err := Get(Zlib)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	src := []byte("some payload bytes")
	compressed, err := codec.Compress(src, Options{})
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	_, err = codec.Decompress(compressed, len(src)+1, Options{})
	if !errors.Is(err, bsaerr.ErrSizeMismatch) {
		t.Fatalf("Decompress err = %v, want ErrSizeMismatch", err)
	}
}

func TestGetRejectsUnknownAlgorithm(t *testing.T) {
	t.Parallel()

	if _, err := Get(Algorithm(99)); err == nil {
		t.Fatalf("expected an error for an unknown algorithm")
	}
}

func TestCachingDecompressorMemoizes(t *testing.T) {
	t.Parallel()

	codec, err := Get(LZ4)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}

	src := []byte("a payload worth memoizing across repeated decompress calls")
	compressed, err := codec.Compress(src, Options{})
	if err != nil {
		t.Fatalf("Compress: %v", err)
	}

	cache := NewCachingDecompressor(8)
	first, err := cache.Decompress(codec, LZ4, compressed, len(src), Options{})
	if err != nil {
		t.Fatalf("Decompress: %v", err)
	}
	second, err := cache.Decompress(codec, LZ4, compressed, len(src), Options{})
	if err != nil {
		t.Fatalf("Decompress (cached): %v", err)
	}
	if !bytes.Equal(first, second) {
		t.Fatalf("cached result mismatch")
	}
	if !bytes.Equal(first, src) {
		t.Fatalf("decompressed mismatch: got %q, want %q", first, src)
	}
}
