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

package genb

import "github.com/Ryan-rsm-McKenzie/bsa-go/hash"

// Key identifies a directory or a file within its parent: the raw name as
// originally observed plus the hash used for ordering and equality.
type Key struct {
	Name string
	Hash uint64
}

// NewDirectoryKey hashes a directory component (no extension) with the
// generation-B hasher.
func NewDirectoryKey(component string) Key {
	normalized := hash.NormalizeSeparators(component)
	return Key{Name: component, Hash: hash.GenB(normalized, nil)}
}

// NewFileKey hashes a file's base name (stem + extension, no directory
// component) with the generation-B hasher.
func NewFileKey(name string) Key {
	stem := hash.Stem(name)
	ext := hash.Extension(name)
	return Key{Name: name, Hash: hash.GenB(stem, ext)}
}

// SplitPath splits a full archive-relative path into its directory and file
// components, normalizing separators first.
func SplitPath(path string) (dir, file string) {
	return hash.SplitDirFile(hash.NormalizeSeparators(path))
}
