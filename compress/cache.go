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
	"sync"
	"unsafe"

	lru "github.com/hashicorp/golang-lru/v2"
)

// memoKey identifies a single decompress call by the identity of its
// compressed bytes, not their contents — callers re-decompressing the same
// borrowed span (the common case, since payload bodies are read-only once
// parsed) hit the cache without re-hashing the whole payload on every call.
type memoKey struct {
	alg    Algorithm
	ptr    uintptr
	length int
	size   int
}

// CachingDecompressor memoizes Codec.Decompress results. It is safe for
// concurrent use by multiple goroutines even though a single DOM is not
// (§5); the cache is shared, read-only infrastructure, not DOM state.
type CachingDecompressor struct {
	mu    sync.Mutex
	cache *lru.Cache[memoKey, []byte]
}

// NewCachingDecompressor builds a memoizing wrapper holding up to size
// decompressed payloads.
func NewCachingDecompressor(size int) *CachingDecompressor {
	cache, err := lru.New[memoKey, []byte](size)
	if err != nil {
		// Only returns an error for size <= 0; fall back to size 1 rather
		// than propagating a constructor error for a cache that is purely
		// an optimization.
		cache, _ = lru.New[memoKey, []byte](1)
	}
	return &CachingDecompressor{cache: cache}
}

// Decompress runs codec.Decompress(src, expectedSize, opts), memoizing the
// result by the identity (pointer, length) of src plus expectedSize so a
// second call against the same borrowed span is a cache hit.
func (c *CachingDecompressor) Decompress(codec Codec, alg Algorithm, src []byte, expectedSize int, opts Options) ([]byte, error) {
	key := identityKey(alg, src, expectedSize)

	c.mu.Lock()
	if cached, ok := c.cache.Get(key); ok {
		c.mu.Unlock()
		return cached, nil
	}
	c.mu.Unlock()

	out, err := codec.Decompress(src, expectedSize, opts)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.cache.Add(key, out)
	c.mu.Unlock()
	return out, nil
}

func identityKey(alg Algorithm, src []byte, expectedSize int) memoKey {
	var ptr uintptr
	if len(src) > 0 {
		ptr = uintptr(unsafe.Pointer(&src[0]))
	}
	return memoKey{alg: alg, ptr: ptr, length: len(src), size: expectedSize}
}
