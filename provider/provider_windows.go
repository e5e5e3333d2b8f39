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

//go:build windows

package provider

import (
	"fmt"
	"os"
	"unsafe"

	"golang.org/x/sys/windows"
)

// mmapFile maps f read-only via CreateFileMapping/MapViewOfFile and returns
// the mapped span plus a closer that unmaps and closes everything.
func mmapFile(f *os.File) ([]byte, func() error, error) {
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("stat: %w", err)
	}
	size := info.Size()
	if size == 0 {
		_ = f.Close()
		return nil, nil, fmt.Errorf("mmap: empty file")
	}

	low := uint32(size & 0xFFFFFFFF)
	high := uint32(size >> 32)
	mapping, err := windows.CreateFileMapping(windows.Handle(f.Fd()), nil, windows.PAGE_READONLY, high, low, nil)
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("CreateFileMapping: %w", err)
	}

	addr, err := windows.MapViewOfFile(mapping, windows.FILE_MAP_READ, 0, 0, uintptr(size))
	if err != nil {
		_ = windows.CloseHandle(mapping)
		_ = f.Close()
		return nil, nil, fmt.Errorf("MapViewOfFile: %w", err)
	}

	data := unsafe.Slice((*byte)(unsafe.Pointer(addr)), size)

	closer := func() error {
		unmapErr := windows.UnmapViewOfFile(addr)
		handleErr := windows.CloseHandle(mapping)
		closeErr := f.Close()
		switch {
		case unmapErr != nil:
			return fmt.Errorf("UnmapViewOfFile: %w", unmapErr)
		case handleErr != nil:
			return fmt.Errorf("CloseHandle: %w", handleErr)
		case closeErr != nil:
			return fmt.Errorf("close: %w", closeErr)
		default:
			return nil
		}
	}
	return data, closer, nil
}
