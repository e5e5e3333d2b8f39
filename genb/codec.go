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
	"io"
	"sort"

	"github.com/Ryan-rsm-McKenzie/bsa-go/bsaerr"
	"github.com/Ryan-rsm-McKenzie/bsa-go/compress"
	"github.com/Ryan-rsm-McKenzie/bsa-go/cursor"
	"github.com/Ryan-rsm-McKenzie/bsa-go/hash"
	"github.com/Ryan-rsm-McKenzie/bsa-go/payload"
)

const sizeFlagCompressedBit = uint32(1) << 31

type dirRecord struct {
	hash        uint64
	fileCount   uint32
	filesOffset uint32
}

type fileRecord struct {
	hash   uint64
	size   uint32
	offset uint32
}

// Parse decodes a directory archive from data, which must outlive the
// returned Archive: every File's payload borrows directly into data unless
// it is compressed, in which case the borrowed span holds the compressed
// image until Decompress is called — or, if opts requests
// CompressionResult == Decompressed, Parse itself decodes it eagerly and the
// returned File owns a heap buffer instead.
func Parse(data []byte, opts ...ReadOptions) (*Archive, error) {
	var opt ReadOptions
	if len(opts) > 0 {
		opt = opts[0]
	}

	r := cursor.NewReader(data)
	h, err := readHeader(r)
	if err != nil {
		return nil, err
	}

	xbox := h.Flags.Has(FlagXboxArchive)
	uint64Reader := r.Uint64LE
	uint32Reader := r.Uint32LE
	if xbox {
		uint64Reader = r.Uint64BE
		uint32Reader = r.Uint32BE
	}

	dirRecords := make([]dirRecord, h.DirectoryCount)
	for i := range dirRecords {
		hv, err := uint64Reader("gen B directory record: hash")
		if err != nil {
			return nil, err
		}
		fc, err := uint32Reader("gen B directory record: file count")
		if err != nil {
			return nil, err
		}
		off, err := uint32Reader("gen B directory record: files offset")
		if err != nil {
			return nil, err
		}
		dirRecords[i] = dirRecord{hash: hv, fileCount: fc, filesOffset: off}
	}

	archive := New(h.Version, h.Flags, h.TypeMask)
	var allFileRecords []fileRecord
	var fileDirIndex []int // parallel to allFileRecords: index into dirRecords

	for di, dr := range dirRecords {
		r.SeekAbsolute(int64(dr.filesOffset))

		dirName := ""
		if h.Flags.Has(FlagDirectoryStrings) {
			dirName, err = readPascalString(r)
			if err != nil {
				return nil, err
			}
		}

		// A hash-only archive (FlagDirectoryStrings unset) never stores this
		// name on disk, so there is nothing to recompute against.
		if dirName != "" {
			if recomputed := hash.GenB(hash.NormalizeSeparators(dirName), nil); recomputed != dr.hash {
				return nil, bsaerr.Mismatch(bsaerr.ErrHashMismatch, dirName, dr.hash, recomputed)
			}
		}

		dir := &Directory{}
		records := make([]fileRecord, dr.fileCount)
		for i := range records {
			hv, err := uint64Reader("gen B file record: hash")
			if err != nil {
				return nil, err
			}
			sz, err := uint32Reader("gen B file record: size")
			if err != nil {
				return nil, err
			}
			off, err := uint32Reader("gen B file record: offset")
			if err != nil {
				return nil, err
			}
			records[i] = fileRecord{hash: hv, size: sz, offset: off}
		}
		allFileRecords = append(allFileRecords, records...)
		for range records {
			fileDirIndex = append(fileDirIndex, di)
		}

		key := Key{Name: dirName, Hash: dr.hash}
		if err := archive.Insert(key, dir); err != nil {
			return nil, err
		}
	}

	var fileNames []string
	if h.Flags.Has(FlagFileStrings) {
		fileNames = make([]string, len(allFileRecords))
		for i := range fileNames {
			fileNames[i], err = r.CString("gen B file name pool")
			if err != nil {
				return nil, err
			}
		}
	}

	for idx, fr := range allFileRecords {
		dirKey := dirRecords[fileDirIndex[idx]]
		dir, _, _ := archive.Get(dirKey.hash)

		compressed := h.Flags.Has(FlagCompressed) != (fr.size&sizeFlagCompressedBit != 0)
		storedSize := fr.size &^ sizeFlagCompressedBit

		offset := int64(fr.offset)
		if offset < 0 || offset+int64(storedSize) > int64(len(data)) {
			return nil, bsaerr.AtOffset(bsaerr.ErrBadOffset, "gen B payload", offset)
		}
		region := data[offset : offset+int64(storedSize)]

		embeddedName := ""
		if h.Flags.Has(FlagEmbeddedFileNames) {
			nr := cursor.NewReader(region)
			embeddedName, err = nr.CString("gen B embedded file name")
			if err != nil {
				return nil, bsaerr.AtOffset(bsaerr.ErrTruncated, "gen B embedded file name", offset)
			}
			region = region[nr.Position():]
		}

		var body *payload.Body
		decompressedSize := 0
		if compressed {
			if len(region) < 4 {
				return nil, bsaerr.AtOffset(bsaerr.ErrTruncated, "gen B compressed payload: missing size prefix", offset)
			}
			nr := cursor.NewReader(region)
			sizeReader := nr.Uint32LE
			if xbox {
				sizeReader = nr.Uint32BE
			}
			dsz, err := sizeReader("gen B compressed payload: decompressed size")
			if err != nil {
				return nil, err
			}
			decompressedSize = int(dsz)
			body = payload.BorrowCompressed(region[4:], archive.compressionAlgorithm(), decompressedSize)
			if opt.CompressionResult == Decompressed {
				codec, err := compress.Get(archive.compressionAlgorithm())
				if err != nil {
					return nil, err
				}
				if err := body.Decompress(codec, compress.Options{}); err != nil {
					return nil, err
				}
			}
		} else {
			body = payload.Borrow(region)
		}

		var name string
		if fileNames != nil {
			name = fileNames[idx]
		}
		if embeddedName != "" {
			name = embeddedName
		}

		// Likewise, a hash-only archive (FlagFileStrings unset and no
		// embedded name) leaves this empty.
		if name != "" {
			stem := hash.Stem(name)
			ext := hash.Extension(name)
			if recomputed := hash.GenB(stem, ext); recomputed != fr.hash {
				return nil, bsaerr.Mismatch(bsaerr.ErrHashMismatch, name, fr.hash, recomputed)
			}
		}

		fileKey := Key{Name: name, Hash: fr.hash}
		file := &File{Payload: body, Compressed: compressed, DecompressedSize: decompressedSize}
		if err := dir.Insert(fileKey, file); err != nil {
			return nil, err
		}
	}

	return archive, nil
}

func readPascalString(r *cursor.Reader) (string, error) {
	n, err := r.Uint8("gen B directory name: length prefix")
	if err != nil {
		return "", err
	}
	if n == 0 {
		return "", nil
	}
	raw, err := r.FixedString(int(n), "gen B directory name")
	if err != nil {
		return "", err
	}
	// The length prefix counts the trailing NUL terminator.
	if len(raw) > 0 && raw[len(raw)-1] == 0 {
		raw = raw[:len(raw)-1]
	}
	return raw, nil
}

func writePascalString(w *cursor.Writer, s string) error {
	n := len(s) + 1
	if err := w.Uint8(uint8(n)); err != nil { //nolint:gosec // directory names fit a byte-length field by format definition
		return err
	}
	return w.CString(s)
}

// Encode writes a to w: header, directory-record table, then per directory
// its optional inline name and file records, then the file-name pool, then
// every payload in the same traversal order (§4.7's write policy).
func Encode(w io.Writer, a *Archive) error {
	dirKeys := a.Keys()

	type plannedFile struct {
		dirIdx int
		key    Key
		file   *File
	}
	var planned []plannedFile
	var totalDirNameLen, totalFileNameLen uint32
	for di, dk := range dirKeys {
		dir, _, _ := a.Get(dk.Hash)
		if a.Flags.Has(FlagDirectoryStrings) {
			totalDirNameLen += uint32(len(dk.Name)) + 1 //nolint:gosec // bounded by format
		}
		for _, fk := range dir.Keys() {
			f, _, _ := dir.Get(fk.Hash)
			planned = append(planned, plannedFile{dirIdx: di, key: fk, file: f})
			if a.Flags.Has(FlagFileStrings) {
				totalFileNameLen += uint32(len(fk.Name)) + 1 //nolint:gosec // bounded by format
			}
		}
	}
	sort.SliceStable(planned, func(i, j int) bool {
		if planned[i].dirIdx != planned[j].dirIdx {
			return planned[i].dirIdx < planned[j].dirIdx
		}
		return planned[i].key.Hash < planned[j].key.Hash
	})

	h := header{
		Version:                a.Version,
		DirectoryRecordsOffset: headerSize,
		DirectoryCount:         uint32(len(dirKeys)), //nolint:gosec // bounded by format
		FileCount:              uint32(len(planned)), //nolint:gosec // bounded by format
		TotalDirectoryNameLen:  totalDirNameLen,
		TotalFileNameLen:       totalFileNameLen,
		Flags:                  a.Flags,
		TypeMask:               a.TypeMask,
	}

	xbox := a.Flags.Has(FlagXboxArchive)

	// Pass 1: compute each directory's file-block layout and every payload's
	// final offset so the fixed-size record tables (written first) can
	// reference them.
	dirRecordsOut := make([]dirRecord, len(dirKeys))
	fileRecordsOut := make([]fileRecord, len(planned))

	dirBlockSize := func(dirIdx int) int64 {
		count := 0
		for _, pf := range planned {
			if pf.dirIdx == dirIdx {
				count++
			}
		}
		size := int64(count) * 16
		if a.Flags.Has(FlagDirectoryStrings) {
			size += int64(len(dirKeys[dirIdx].Name)) + 2
		}
		return size
	}

	filesBase := headerSize + int64(len(dirKeys))*16
	cursorOff := filesBase
	dirFirstFileBlock := make([]int64, len(dirKeys))
	for di := range dirKeys {
		dirFirstFileBlock[di] = cursorOff
		cursorOff += dirBlockSize(di)
	}

	fileNamePoolStart := cursorOff
	fileNamePoolSize := int64(0)
	if a.Flags.Has(FlagFileStrings) {
		for _, pf := range planned {
			fileNamePoolSize += int64(len(pf.key.Name)) + 1
		}
	}
	payloadBase := fileNamePoolStart + fileNamePoolSize

	payloadOffset := payloadBase
	payloadBytes := make([][]byte, len(planned))
	for i, pf := range planned {
		if pf.file.Compressed && !pf.file.Payload.IsCompressed() {
			return bsaerr.NewDecodeError(bsaerr.ErrCompression, "file marked compressed but payload is not in compressed state: "+pf.key.Name)
		}
		body := pf.file.Payload
		b := body.AsBytes()
		payloadBytes[i] = b

		size := len(b)
		invertBit := uint32(0)
		compressedDefault := a.Flags.Has(FlagCompressed)
		if pf.file.Compressed != compressedDefault {
			invertBit = sizeFlagCompressedBit
		}
		if pf.file.Compressed {
			size += 4
		}

		fileRecordsOut[i] = fileRecord{
			hash:   pf.key.Hash,
			size:   uint32(size) | invertBit, //nolint:gosec // payload sizes fit uint32 by format definition
			offset: uint32(payloadOffset),    //nolint:gosec // archive sizes fit uint32 by format definition
		}
		payloadOffset += int64(size)
	}

	for di := range dirKeys {
		count := 0
		for _, pf := range planned {
			if pf.dirIdx == di {
				count++
			}
		}
		dirRecordsOut[di] = dirRecord{
			hash:        dirKeys[di].Hash,
			fileCount:   uint32(count), //nolint:gosec // bounded by format
			filesOffset: uint32(dirFirstFileBlock[di]), //nolint:gosec // archive sizes fit uint32 by format definition
		}
	}

	cw := cursor.NewWriter(w)
	if err := writeHeader(cw, h); err != nil {
		return err
	}

	uint64Writer := cw.Uint64LE
	uint32Writer := cw.Uint32LE
	if xbox {
		uint64Writer = cw.Uint64BE
		uint32Writer = cw.Uint32BE
	}

	for _, dr := range dirRecordsOut {
		if err := uint64Writer(dr.hash); err != nil {
			return err
		}
		if err := uint32Writer(dr.fileCount); err != nil {
			return err
		}
		if err := uint32Writer(dr.filesOffset); err != nil {
			return err
		}
	}

	for di := range dirKeys {
		if a.Flags.Has(FlagDirectoryStrings) {
			if err := writePascalString(cw, dirKeys[di].Name); err != nil {
				return err
			}
		}
		for i, pf := range planned {
			if pf.dirIdx != di {
				continue
			}
			fr := fileRecordsOut[i]
			if err := uint64Writer(fr.hash); err != nil {
				return err
			}
			if err := uint32Writer(fr.size); err != nil {
				return err
			}
			if err := uint32Writer(fr.offset); err != nil {
				return err
			}
		}
	}

	if a.Flags.Has(FlagFileStrings) {
		for _, pf := range planned {
			if err := cw.CString(pf.key.Name); err != nil {
				return err
			}
		}
	}

	sizePrefixWriter := cw.Uint32LE
	if xbox {
		sizePrefixWriter = cw.Uint32BE
	}
	for i, pf := range planned {
		if pf.file.Compressed {
			if !pf.file.Payload.IsCompressed() {
				return bsaerr.NewDecodeError(bsaerr.ErrCompression, "file marked compressed but payload is not in compressed state: "+pf.key.Name)
			}
			if err := sizePrefixWriter(uint32(pf.file.Payload.DecompressedSize())); err != nil { //nolint:gosec // payload sizes fit uint32 by format definition
				return err
			}
		}
		if err := cw.Bytes(payloadBytes[i]); err != nil {
			return err
		}
	}

	return nil
}
