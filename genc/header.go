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

package genc

import (
	"github.com/Ryan-rsm-McKenzie/bsa-go/bsaerr"
	"github.com/Ryan-rsm-McKenzie/bsa-go/cursor"
)

const magic = "BTDX"

var supportedVersions = map[uint32]bool{1: true, 2: true, 3: true, 7: true, 8: true}

func formatTagFor(v HeaderVariant) string {
	switch v {
	case General:
		return "GNRL"
	case DX10:
		return "DX10"
	case GNMF:
		return "GNMF"
	default:
		return ""
	}
}

func parseFormatTag(tag string) (HeaderVariant, error) {
	switch tag {
	case "GNRL":
		return General, nil
	case "DX10":
		return DX10, nil
	case "GNMF":
		return GNMF, nil
	default:
		return 0, bsaerr.NewDecodeError(bsaerr.ErrInvalidMagic, "gen C header: unrecognized format tag "+tag)
	}
}

type header struct {
	Version           uint32
	Format            HeaderVariant
	FileCount         uint32
	NameTableOffset   uint64
	CompressionFormat CompressionFormat
}

func readHeader(r *cursor.Reader) (header, error) {
	var h header

	magicBytes, err := r.FixedString(4, "gen C header: magic")
	if err != nil {
		return h, err
	}
	if magicBytes != magic {
		return h, bsaerr.NewDecodeError(bsaerr.ErrInvalidMagic, "gen C header: magic")
	}

	if h.Version, err = r.Uint32LE("gen C header: version"); err != nil {
		return h, err
	}
	if !supportedVersions[h.Version] {
		return h, bsaerr.NewDecodeError(bsaerr.ErrUnsupportedVersion, "gen C header: version")
	}

	tag, err := r.FixedString(4, "gen C header: format tag")
	if err != nil {
		return h, err
	}
	if h.Format, err = parseFormatTag(tag); err != nil {
		return h, err
	}

	if h.FileCount, err = r.Uint32LE("gen C header: file count"); err != nil {
		return h, err
	}
	if h.NameTableOffset, err = r.Uint64LE("gen C header: name table offset"); err != nil {
		return h, err
	}

	if h.Version >= 2 {
		cf, err := r.Uint32LE("gen C header: compression format")
		if err != nil {
			return h, err
		}
		h.CompressionFormat = CompressionFormat(cf)
	}

	return h, nil
}

func writeHeader(w *cursor.Writer, h header) error {
	if err := w.FixedString(magic); err != nil {
		return err
	}
	if err := w.Uint32LE(h.Version); err != nil {
		return err
	}
	if err := w.FixedString(formatTagFor(h.Format)); err != nil {
		return err
	}
	if err := w.Uint32LE(h.FileCount); err != nil {
		return err
	}
	if err := w.Uint64LE(h.NameTableOffset); err != nil {
		return err
	}
	if h.Version >= 2 {
		return w.Uint32LE(uint32(h.CompressionFormat))
	}
	return nil
}

func (h header) size() int64 {
	n := int64(4 + 4 + 4 + 4 + 8)
	if h.Version >= 2 {
		n += 4
	}
	return n
}
