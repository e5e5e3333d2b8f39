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

import "encoding/binary"

// packFourcc assembles up to 4 extension bytes into a 32-bit word, padding
// short extensions with zero bytes on the right. msbFirst selects gen B's
// MSB-first packing (ext[0] becomes the high byte) versus gen C's LSB-first
// packing (ext[0] becomes the low byte).
func packFourcc(ext []byte, msbFirst bool) uint32 {
	var octets [4]byte
	copy(octets[:], ext)

	if msbFirst {
		return binary.BigEndian.Uint32(octets[:])
	}
	return binary.LittleEndian.Uint32(octets[:])
}

// unpackFourcc is the inverse of packFourcc, returning up to 4 extension
// bytes (trailing zero bytes dropped) from a packed 32-bit fourcc.
func unpackFourcc(v uint32, msbFirst bool) []byte {
	var octets [4]byte
	if msbFirst {
		binary.BigEndian.PutUint32(octets[:], v)
	} else {
		binary.LittleEndian.PutUint32(octets[:], v)
	}

	out := octets[:]
	for len(out) > 0 && out[len(out)-1] == 0 {
		out = out[:len(out)-1]
	}
	return out
}
