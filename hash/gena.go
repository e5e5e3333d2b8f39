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

package hash

// GenA hashes a full file path the way the flat archive generation does:
// lowercase the ASCII letters (backslashes pass through untouched, per
// §4.3), then fold the name into two interleaved 32-bit halves — the first
// half XORed byte-by-byte into the low word at a rotating 8-bit shift, the
// second half folded into the high word the same way, its rotation
// restarting at shift 0 on the half's first byte. The result is a pure function of the
// input bytes, satisfying invariant 5 in §3.
func GenA(path string) uint64 {
	name := ToLowerASCII([]byte(path))
	n := len(name)
	mid := n / 2

	var low, high uint32
	for i := 0; i < mid; i++ {
		low ^= uint32(name[i]) << ((i % 4) * 8)
	}
	for i := mid; i < n; i++ {
		high ^= uint32(name[i]) << (((i - mid) % 4) * 8)
	}

	return uint64(high)<<32 | uint64(low)
}
