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

//go:build unix

package provider

import (
	"fmt"
	"os"

	"golang.org/x/sys/unix"
)

// mmapFile maps f read-only and returns the mapped span plus a closer that
// unmaps it and closes f. The caller is responsible for never writing
// through the returned slice.
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

	data, err := unix.Mmap(int(f.Fd()), 0, int(size), unix.PROT_READ, unix.MAP_SHARED)
	if err != nil {
		_ = f.Close()
		return nil, nil, fmt.Errorf("mmap: %w", err)
	}

	closer := func() error {
		munmapErr := unix.Munmap(data)
		closeErr := f.Close()
		if munmapErr != nil {
			return fmt.Errorf("munmap: %w", munmapErr)
		}
		if closeErr != nil {
			return fmt.Errorf("close: %w", closeErr)
		}
		return nil
	}
	return data, closer, nil
}
