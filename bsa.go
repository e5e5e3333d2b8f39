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

// Package bsa loads Creation Engine archives of any generation: the loader
// opens a byte-range provider (provider), sniffs the leading bytes to pick
// a generation, and hands the backing span to that generation's parser,
// which constructs the DOM. Callers who already know the generation should
// call gena.Parse/genb.Parse/genc.Parse directly; this package exists for
// the common "I have a path or a blob and don't know which generation it
// is" case.
package bsa

import (
	"fmt"

	"github.com/spf13/afero"

	"github.com/Ryan-rsm-McKenzie/bsa-go/bsaerr"
	"github.com/Ryan-rsm-McKenzie/bsa-go/gena"
	"github.com/Ryan-rsm-McKenzie/bsa-go/genb"
	"github.com/Ryan-rsm-McKenzie/bsa-go/genc"
	"github.com/Ryan-rsm-McKenzie/bsa-go/provider"
)

// Generation identifies which archive family a span of bytes belongs to.
type Generation int

const (
	// GenA is the Morrowind-era flat archive.
	GenA Generation = iota
	// GenB is the Oblivion-through-Skyrim/Fallout directory archive.
	GenB
	// GenC is the Fallout4-through-Starfield chunked archive.
	GenC
)

func (g Generation) String() string {
	switch g {
	case GenA:
		return "gen A"
	case GenB:
		return "gen B"
	case GenC:
		return "gen C"
	default:
		return "unknown"
	}
}

// Archive holds a provider's backing span alongside the parsed DOM for
// whichever generation was detected. Exactly one of A, B, or C is non-nil.
type Archive struct {
	Generation Generation
	A          *gena.Archive
	B          *genb.Archive
	C          *genc.Archive

	provider provider.Provider
}

// Close releases the backing byte-range provider (the mmap, if any). Every
// Body borrowed from the DOM must already have been discarded or cloned to
// owned bytes before calling Close.
func (a *Archive) Close() error {
	if a.provider == nil {
		return nil
	}
	return a.provider.Close()
}

// DetectGeneration sniffs data's leading bytes and reports which archive
// generation it belongs to, without parsing the rest of the archive.
func DetectGeneration(data []byte) (Generation, error) {
	switch {
	case len(data) >= 4 && string(data[:4]) == "BSA\x00":
		return GenB, nil
	case len(data) >= 4 && string(data[:4]) == "BTDX":
		return GenC, nil
	case len(data) >= 4 && (data[0] == 0x00 && data[1] == 0x01 && data[2] == 0x00 && data[3] == 0x00):
		// version tag 0x100, little-endian.
		return GenA, nil
	default:
		return 0, bsaerr.NewDecodeError(bsaerr.ErrInvalidMagic, "unrecognized archive signature")
	}
}

// Parse detects the generation of data and parses it through that
// generation's codec. data must outlive the returned Archive: every leaf
// payload borrows directly into it unless later copied out.
func Parse(data []byte) (*Archive, error) {
	gen, err := DetectGeneration(data)
	if err != nil {
		return nil, err
	}

	archive := &Archive{Generation: gen}
	switch gen {
	case GenA:
		a, err := gena.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse gen A archive: %w", err)
		}
		archive.A = a
	case GenB:
		b, err := genb.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse gen B archive: %w", err)
		}
		archive.B = b
	case GenC:
		c, err := genc.Parse(data)
		if err != nil {
			return nil, fmt.Errorf("parse gen C archive: %w", err)
		}
		archive.C = c
	}
	return archive, nil
}

// Open opens path through fs (afero.NewOsFs() if fs is nil), maps it
// read-only, and parses the detected generation's archive from the
// mapping. The returned Archive's Close method releases the mapping.
func Open(fs afero.Fs, path string) (*Archive, error) {
	p, err := provider.FromPath(fs, path)
	if err != nil {
		return nil, fmt.Errorf("bsa: open %q: %w", path, err)
	}

	archive, err := Parse(p.Bytes())
	if err != nil {
		_ = p.Close()
		return nil, err
	}
	archive.provider = p
	return archive, nil
}
