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

// genBRollingMultiplier is the multiplier used by the middle-byte rolling
// sum, chosen (as the reference archives do) to spread single-byte changes
// across the full 32-bit word.
const genBRollingMultiplier = 0x1003f

// GenB hashes a single path component (a directory name, or a file's stem
// without its extension) the way the directory-archive generation does:
// first and last byte plus the component's length seed the low word, a
// rolling sum over the interior bytes seeds the high word, and — for
// files — the extension's packed fourcc folds into the high word. The
// caller is responsible for splitting directory/file and supplying the
// lowercased, separator-normalized component (see SplitDirFile and
// ToLowerASCII); directory and file hashes share this exact layout per
// §4.3, distinguished only by whether ext is empty.
func GenB(component string, ext []byte) uint64 {
	name := ToLowerASCII([]byte(component))
	n := len(name)
	if n == 0 {
		return 0
	}

	first := name[0]
	last := name[n-1]
	var second byte
	if n > 1 {
		second = name[n-2]
	}

	low := uint32(last) | uint32(second)<<8 | uint32(uint8(n))<<16 | uint32(first)<<24 //nolint:gosec // n truncated to a byte matches the on-disk field width

	var high uint32
	if n > 2 {
		for i := 1; i < n-1; i++ {
			high = high*genBRollingMultiplier + uint32(name[i])
		}
	}

	if len(ext) > 0 {
		high += packFourcc(ext, true)
	}

	return uint64(high)<<32 | uint64(low)
}
