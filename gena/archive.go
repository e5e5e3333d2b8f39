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

// Package gena implements the flat, name→file generation-A archive (C6):
// Morrowind's container, with its own 12-byte header and index layout.
package gena

import (
	"sort"

	"github.com/Ryan-rsm-McKenzie/bsa-go/bsaerr"
	"github.com/Ryan-rsm-McKenzie/bsa-go/hash"
	"github.com/Ryan-rsm-McKenzie/bsa-go/payload"
)

// Key identifies a file: the raw name bytes as originally observed or
// supplied (for round-trip re-emission) plus the hash used for ordering
// and equality.
type Key struct {
	Name string
	Hash uint64
}

// NewKey hashes name with the generation-A hasher and bundles it with the
// raw name.
func NewKey(name string) Key {
	return Key{Name: name, Hash: hash.GenA(name)}
}

// File is a single flat-archive entry: a payload body plus the
// decompressed (on gen A, simply "true") size recorded at parse time.
type File struct {
	Payload *payload.Body
	Size    int
}

type entry struct {
	key  Key
	file *File
}

// Archive is an ordered, duplicate-free mapping from Key to File,
// iterating hash-ascending (invariants 1 and 2 in §3).
type Archive struct {
	entries []entry
}

// New returns an empty archive.
func New() *Archive {
	return &Archive{}
}

// Len returns the number of files.
func (a *Archive) Len() int {
	return len(a.entries)
}

func (a *Archive) search(h uint64) int {
	return sort.Search(len(a.entries), func(i int) bool { return a.entries[i].key.Hash >= h })
}

// Get looks up a file by its key's hash.
func (a *Archive) Get(h uint64) (*File, Key, bool) {
	i := a.search(h)
	if i < len(a.entries) && a.entries[i].key.Hash == h {
		return a.entries[i].file, a.entries[i].key, true
	}
	return nil, Key{}, false
}

// Insert adds a file under key, maintaining hash-ascending order. Inserting
// a hash that already exists is rejected with a DuplicateKeyError —
// siblings never share a key hash (invariant 1).
func (a *Archive) Insert(key Key, file *File) error {
	i := a.search(key.Hash)
	if i < len(a.entries) && a.entries[i].key.Hash == key.Hash {
		return bsaerr.DuplicateKeyError{Name: key.Name, Hash: key.Hash}
	}
	a.entries = append(a.entries, entry{})
	copy(a.entries[i+1:], a.entries[i:])
	a.entries[i] = entry{key: key, file: file}
	return nil
}

// Remove deletes the file with the given hash, reporting whether one was
// found.
func (a *Archive) Remove(h uint64) bool {
	i := a.search(h)
	if i < len(a.entries) && a.entries[i].key.Hash == h {
		a.entries = append(a.entries[:i], a.entries[i+1:]...)
		return true
	}
	return false
}

// Keys returns every key in hash-ascending order.
func (a *Archive) Keys() []Key {
	out := make([]Key, len(a.entries))
	for i, e := range a.entries {
		out[i] = e.key
	}
	return out
}

// Validate re-checks invariants 1, 2, 4, and 5 without mutating the
// archive, per SPEC_FULL's archive-level validation supplement.
func (a *Archive) Validate() []error {
	var errs []error
	for i := 1; i < len(a.entries); i++ {
		if a.entries[i-1].key.Hash >= a.entries[i].key.Hash {
			errs = append(errs, bsaerr.NewDecodeError(bsaerr.ErrHashMismatch, "sibling order violated"))
		}
	}
	for _, e := range a.entries {
		if recomputed := hash.GenA(e.key.Name); recomputed != e.key.Hash {
			errs = append(errs, bsaerr.Mismatch(bsaerr.ErrHashMismatch, e.key.Name, e.key.Hash, recomputed))
		}
	}
	return errs
}
