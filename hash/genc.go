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

import "hash/crc32"

// genCTable is the generation-C polynomial (CRC-32 IEEE 802.3), computed
// over lowercased, separator-normalized byte strings.
var genCTable = crc32.MakeTable(crc32.IEEE)

// GenC hashes a chunked archive's (folder, stem, extension) triple: a CRC
// over the lowercased folder path, a CRC over the lowercased file stem
// (folded with the extension's LSB-first-packed fourcc), combined into one
// 64-bit value per §4.3.
func GenC(folder, stem string, ext []byte) uint64 {
	folderCRC := crc32.Checksum(ToLowerASCII([]byte(folder)), genCTable)
	stemCRC := crc32.Checksum(ToLowerASCII([]byte(stem)), genCTable)

	low := stemCRC
	if len(ext) > 0 {
		low ^= packFourcc(ext, false)
	}

	return uint64(folderCRC)<<32 | uint64(low)
}
