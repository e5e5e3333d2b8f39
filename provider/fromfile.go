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

package provider

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
)

// FromPath opens path through fs and maps it read-only. If fs is nil,
// afero.NewOsFs() is used (the common case). When the opened file is a
// real *os.File, its contents are memory-mapped directly; when fs is a
// non-OS filesystem (e.g. afero.NewMemMapFs() in tests), there is nothing
// to mmap, so the whole file is read into an owned heap buffer instead —
// behaviorally identical to a mapping from the DOM's point of view, just
// without the zero-copy benefit.
func FromPath(fs afero.Fs, path string) (Provider, error) {
	if fs == nil {
		fs = afero.NewOsFs()
	}

	f, err := fs.Open(path)
	if err != nil {
		return nil, fmt.Errorf("provider: open %q: %w", path, err)
	}

	if osFile, ok := f.(*os.File); ok {
		data, closer, mmapErr := mmapFile(osFile)
		if mmapErr == nil {
			return &fileProvider{data: data, closer: closer}, nil
		}
		// mmapFile already closed osFile on failure, so the whole-file
		// fallback below needs its own handle; mmap can fail for legitimate
		// reasons (zero-length file, filesystem that doesn't support it)
		// that don't warrant failing the whole open.
		f, err = fs.Open(path)
		if err != nil {
			return nil, fmt.Errorf("provider: reopen %q after mmap failure: %w", path, err)
		}
	}

	return readWholeFile(f)
}

func readWholeFile(f afero.File) (Provider, error) {
	defer func() { _ = f.Close() }()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, fmt.Errorf("provider: read %q: %w", f.Name(), err)
	}
	return &fileProvider{data: data}, nil
}
