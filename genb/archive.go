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

import (
	"sort"

	"github.com/Ryan-rsm-McKenzie/bsa-go/bsaerr"
	"github.com/Ryan-rsm-McKenzie/bsa-go/hash"
	"github.com/Ryan-rsm-McKenzie/bsa-go/payload"
)

// File is a single gen-B archive entry: a payload body plus enough state to
// reproduce the wire format's per-file compression record on write.
type File struct {
	Payload *payload.Body

	// Compressed reports whether this file's wire representation is
	// compressed, which may differ from the archive's default
	// (FlagCompressed) when the per-file size-field top bit inverts it.
	Compressed bool
	// DecompressedSize is the size recorded in the wire format whenever
	// Compressed is true; meaningless otherwise.
	DecompressedSize int
}

type fileEntry struct {
	key  Key
	file *File
}

// Directory is an ordered, duplicate-free mapping from a file key to a
// file, hash-ascending.
type Directory struct {
	files []fileEntry
}

func (d *Directory) search(h uint64) int {
	return sort.Search(len(d.files), func(i int) bool { return d.files[i].key.Hash >= h })
}

// Len returns the number of files in the directory.
func (d *Directory) Len() int {
	return len(d.files)
}

// Get looks up a file by its key's hash.
func (d *Directory) Get(h uint64) (*File, Key, bool) {
	i := d.search(h)
	if i < len(d.files) && d.files[i].key.Hash == h {
		return d.files[i].file, d.files[i].key, true
	}
	return nil, Key{}, false
}

// Insert adds a file under key, maintaining hash-ascending order. A
// colliding hash is rejected with a DuplicateKeyError.
func (d *Directory) Insert(key Key, file *File) error {
	i := d.search(key.Hash)
	if i < len(d.files) && d.files[i].key.Hash == key.Hash {
		return bsaerr.DuplicateKeyError{Name: key.Name, Hash: key.Hash}
	}
	d.files = append(d.files, fileEntry{})
	copy(d.files[i+1:], d.files[i:])
	d.files[i] = fileEntry{key: key, file: file}
	return nil
}

// Remove deletes the file with the given hash, reporting whether one was found.
func (d *Directory) Remove(h uint64) bool {
	i := d.search(h)
	if i < len(d.files) && d.files[i].key.Hash == h {
		d.files = append(d.files[:i], d.files[i+1:]...)
		return true
	}
	return false
}

// Keys returns every file key in hash-ascending order.
func (d *Directory) Keys() []Key {
	out := make([]Key, len(d.files))
	for i, e := range d.files {
		out[i] = e.key
	}
	return out
}

type directoryEntry struct {
	key Key
	dir *Directory
}

// Archive is the gen-B archive DOM: an ordered, duplicate-free mapping from
// a directory key to a directory, hash-ascending, plus the header metadata
// needed to reproduce the wire format on write.
type Archive struct {
	Version  uint32
	Flags    ArchiveFlags
	TypeMask FileType

	dirs []directoryEntry
}

// New returns an empty archive for the given version and flags.
func New(version uint32, flags ArchiveFlags, typeMask FileType) *Archive {
	return &Archive{Version: version, Flags: flags, TypeMask: typeMask}
}

func (a *Archive) search(h uint64) int {
	return sort.Search(len(a.dirs), func(i int) bool { return a.dirs[i].key.Hash >= h })
}

// Len returns the number of directories.
func (a *Archive) Len() int {
	return len(a.dirs)
}

// Get looks up a directory by its key's hash.
func (a *Archive) Get(h uint64) (*Directory, Key, bool) {
	i := a.search(h)
	if i < len(a.dirs) && a.dirs[i].key.Hash == h {
		return a.dirs[i].dir, a.dirs[i].key, true
	}
	return nil, Key{}, false
}

// Insert adds a directory under key, maintaining hash-ascending order. A
// colliding hash is rejected with a DuplicateKeyError.
func (a *Archive) Insert(key Key, dir *Directory) error {
	i := a.search(key.Hash)
	if i < len(a.dirs) && a.dirs[i].key.Hash == key.Hash {
		return bsaerr.DuplicateKeyError{Name: key.Name, Hash: key.Hash}
	}
	a.dirs = append(a.dirs, directoryEntry{})
	copy(a.dirs[i+1:], a.dirs[i:])
	a.dirs[i] = directoryEntry{key: key, dir: dir}
	return nil
}

// Remove deletes the directory with the given hash, reporting whether one
// was found.
func (a *Archive) Remove(h uint64) bool {
	i := a.search(h)
	if i < len(a.dirs) && a.dirs[i].key.Hash == h {
		a.dirs = append(a.dirs[:i], a.dirs[i+1:]...)
		return true
	}
	return false
}

// Keys returns every directory key in hash-ascending order.
func (a *Archive) Keys() []Key {
	out := make([]Key, len(a.dirs))
	for i, e := range a.dirs {
		out[i] = e.key
	}
	return out
}

// Validate re-checks invariants 1, 2, 4, and 5 from §3 across both levels of
// the tree without mutating the archive.
func (a *Archive) Validate() []error {
	var errs []error
	for i := 1; i < len(a.dirs); i++ {
		if a.dirs[i-1].key.Hash >= a.dirs[i].key.Hash {
			errs = append(errs, bsaerr.NewDecodeError(bsaerr.ErrHashMismatch, "directory sibling order violated"))
		}
	}
	for _, d := range a.dirs {
		// A hash-only archive (FlagDirectoryStrings unset) never stores this
		// name, so there is nothing to recompute against.
		if d.key.Name != "" {
			if recomputed := hash.GenB(hash.NormalizeSeparators(d.key.Name), nil); recomputed != d.key.Hash {
				errs = append(errs, bsaerr.Mismatch(bsaerr.ErrHashMismatch, d.key.Name, d.key.Hash, recomputed))
			}
		}
		dir := d.dir
		for i := 1; i < len(dir.files); i++ {
			if dir.files[i-1].key.Hash >= dir.files[i].key.Hash {
				errs = append(errs, bsaerr.NewDecodeError(bsaerr.ErrHashMismatch, "file sibling order violated"))
			}
		}
		for _, f := range dir.files {
			// Likewise, a hash-only archive (FlagFileStrings unset and no
			// embedded name) leaves this empty.
			if f.key.Name != "" {
				stem := hash.Stem(f.key.Name)
				ext := hash.Extension(f.key.Name)
				if recomputed := hash.GenB(stem, ext); recomputed != f.key.Hash {
					errs = append(errs, bsaerr.Mismatch(bsaerr.ErrHashMismatch, f.key.Name, f.key.Hash, recomputed))
				}
			}
			if f.file.Compressed && f.file.Payload.IsCompressed() {
				if f.file.Payload.DecompressedSize() != f.file.DecompressedSize {
					errs = append(errs, bsaerr.Mismatch(bsaerr.ErrSizeMismatch,
						f.key.Name, uint64(f.file.DecompressedSize), uint64(f.file.Payload.DecompressedSize()))) //nolint:gosec // sizes are bounded by archive format fields
				}
			}
		}
	}
	return errs
}
