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

// Package hash implements the three generation-specific name-hashing
// functions (§4.3) and the byte-level normalization rules they share.
// Every function here is pure: equal input bytes always produce equal
// output, with no locale or OS dependence.
package hash

import (
	"strings"

	"golang.org/x/text/encoding/charmap"
)

// ToLowerASCII lowercases only bytes in [A-Z]; every other byte, including
// non-ASCII, passes through unchanged. This is deliberately not
// strings.ToLower, which would apply Unicode case folding the reference
// archives never used.
func ToLowerASCII(b []byte) []byte {
	out := make([]byte, len(b))
	for i, c := range b {
		if c >= 'A' && c <= 'Z' {
			c += 0x20
		}
		out[i] = c
	}
	return out
}

// NormalizeSeparators rewrites forward slashes to backslashes, matching how
// every generation stores paths on disk.
func NormalizeSeparators(s string) string {
	return strings.ReplaceAll(s, "/", "\\")
}

// SplitDirFile splits a normalized path on its last backslash, as gen B
// directory records require. A path with no separator has an empty dir.
func SplitDirFile(normalized string) (dir, file string) {
	idx := strings.LastIndexByte(normalized, '\\')
	if idx < 0 {
		return "", normalized
	}
	return normalized[:idx], normalized[idx+1:]
}

// Stem returns name with its extension (the substring after the final '.')
// removed. A name with no '.' is returned unchanged.
func Stem(name string) string {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 {
		return name
	}
	return name[:idx]
}

// Extension returns up to the last 4 bytes of the substring after the final
// '.' in name, lowercased. Returns nil if name has no extension.
func Extension(name string) []byte {
	idx := strings.LastIndexByte(name, '.')
	if idx < 0 || idx == len(name)-1 {
		return nil
	}
	ext := ToLowerASCII([]byte(name[idx+1:]))
	if len(ext) > 4 {
		ext = ext[len(ext)-4:]
	}
	return ext
}

// DisplayName decodes raw archive name bytes for presentation purposes
// only. Hashing always operates on the raw bytes per §4.3; this helper
// exists because older generation-A/B archives sometimes carry non-ASCII
// bytes (Windows-1252) in otherwise-ASCII-normalized names, and callers
// building a UI want a readable string rather than mojibake. It never
// affects a computed hash.
func DisplayName(raw []byte) string {
	if isASCII(raw) {
		return string(raw)
	}
	decoded, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(decoded)
}

func isASCII(b []byte) bool {
	for _, c := range b {
		if c > 0x7F {
			return false
		}
	}
	return true
}
