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

// Package provider implements the byte-range provider (C1): a shared,
// read-only span of bytes that every DOM node built from an archive
// borrows payload bodies out of. A Provider is either a memory-mapped file
// or a caller-supplied byte slice; no node ever writes through either.
package provider

import "fmt"

// Provider is a shared, read-only byte span. Dropping the last reference
// (calling Close) releases the mapping; every Body borrowed from it must
// already have been discarded or cloned to owned bytes by then.
type Provider interface {
	// Bytes returns the full backing span. Every DOM node borrows a
	// sub-slice of this span; the slice is never written to.
	Bytes() []byte

	// Close releases the underlying resource (the mmap, if any). It is a
	// no-op for a borrow-constructed Provider.
	Close() error
}

// borrowProvider wraps a caller-supplied slice with no ownership transfer.
type borrowProvider struct {
	data []byte
}

// FromBorrow wraps an existing byte slice as a Provider. The caller retains
// ownership; span must outlive every DOM node built from the returned
// Provider.
func FromBorrow(span []byte) Provider {
	return &borrowProvider{data: span}
}

func (p *borrowProvider) Bytes() []byte { return p.data }
func (*borrowProvider) Close() error    { return nil }

// fileProvider is a Provider backed by a memory-mapped regular file, or
// (when the underlying afero.Fs cannot be mapped, e.g. an in-memory test
// filesystem) by a plain heap buffer holding the whole file's contents.
type fileProvider struct {
	data   []byte
	closer func() error
}

func (p *fileProvider) Bytes() []byte { return p.data }

func (p *fileProvider) Close() error {
	if p.closer == nil {
		return nil
	}
	if err := p.closer(); err != nil {
		return fmt.Errorf("provider: close: %w", err)
	}
	return nil
}
