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
	"github.com/Ryan-rsm-McKenzie/bsa-go/bsaerr"
	"github.com/Ryan-rsm-McKenzie/bsa-go/cursor"
)

const magic = "BSA\x00"

// headerSize is the fixed 36-byte header length; the header's own
// "directory records offset" field always equals this, since directory
// records immediately follow it.
const headerSize = 36

var supportedVersions = map[uint32]bool{103: true, 104: true, 105: true}

type header struct {
	Version                uint32
	DirectoryRecordsOffset uint32
	DirectoryCount         uint32
	FileCount              uint32
	TotalDirectoryNameLen  uint32
	TotalFileNameLen       uint32
	Flags                  ArchiveFlags
	TypeMask               FileType
}

func readHeader(r *cursor.Reader) (header, error) {
	var h header

	magicBytes, err := r.FixedString(4, "gen B header: magic")
	if err != nil {
		return h, err
	}
	if magicBytes != magic {
		return h, bsaerr.NewDecodeError(bsaerr.ErrInvalidMagic, "gen B header: magic")
	}

	if h.Version, err = r.Uint32LE("gen B header: version"); err != nil {
		return h, err
	}
	if !supportedVersions[h.Version] {
		return h, bsaerr.NewDecodeError(bsaerr.ErrUnsupportedVersion, "gen B header: version")
	}

	uintReader := r.Uint32LE
	if isXbox, err := peekXbox(r, h.Version); err == nil && isXbox {
		uintReader = r.Uint32BE
	}

	if h.DirectoryRecordsOffset, err = uintReader("gen B header: directory records offset"); err != nil {
		return h, err
	}
	if h.DirectoryCount, err = uintReader("gen B header: directory count"); err != nil {
		return h, err
	}
	if h.FileCount, err = uintReader("gen B header: file count"); err != nil {
		return h, err
	}
	if h.TotalDirectoryNameLen, err = uintReader("gen B header: total directory name length"); err != nil {
		return h, err
	}
	if h.TotalFileNameLen, err = uintReader("gen B header: total file name length"); err != nil {
		return h, err
	}
	var flags uint32
	if flags, err = uintReader("gen B header: flags"); err != nil {
		return h, err
	}
	h.Flags = ArchiveFlags(flags)
	var typeMask uint32
	if typeMask, err = uintReader("gen B header: type mask"); err != nil {
		return h, err
	}
	h.TypeMask = FileType(typeMask)

	return h, nil
}

// peekXbox looks one field's worth of bytes ahead to decide endianness: the
// directory-records offset is always headerSize regardless of byte order, so
// whichever endian reading produces headerSize identifies the archive's
// endianness without consuming the cursor.
func peekXbox(r *cursor.Reader, _ uint32) (bool, error) {
	b, err := r.PeekBytes(4, "gen B header: directory records offset (peek)")
	if err != nil {
		return false, err
	}
	le := uint32(b[0]) | uint32(b[1])<<8 | uint32(b[2])<<16 | uint32(b[3])<<24
	return le != headerSize, nil
}

func writeHeader(w *cursor.Writer, h header) error {
	uintWriter := w.Uint32LE
	if h.Flags.Has(FlagXboxArchive) {
		uintWriter = w.Uint32BE
	}

	if err := w.FixedString(magic); err != nil {
		return err
	}
	if err := w.Uint32LE(h.Version); err != nil {
		return err
	}
	if err := uintWriter(headerSize); err != nil {
		return err
	}
	if err := uintWriter(h.DirectoryCount); err != nil {
		return err
	}
	if err := uintWriter(h.FileCount); err != nil {
		return err
	}
	if err := uintWriter(h.TotalDirectoryNameLen); err != nil {
		return err
	}
	if err := uintWriter(h.TotalFileNameLen); err != nil {
		return err
	}
	if err := uintWriter(uint32(h.Flags)); err != nil {
		return err
	}
	return uintWriter(uint32(h.TypeMask))
}
