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

package compress

import (
	"errors"
	"fmt"

	"github.com/Ryan-rsm-McKenzie/bsa-go/bsaerr"
)

var errUnsupported = errors.New("unsupported codec")

func wrapCompress(alg Algorithm, err error) error {
	return fmt.Errorf("%s compress: %w: %w", alg, bsaerr.ErrCompression, err)
}

func wrapDecompress(alg Algorithm, err error) error {
	return fmt.Errorf("%s decompress: %w: %w", alg, bsaerr.ErrCompression, err)
}

func sizeMismatch(alg Algorithm, expected, actual int) error {
	return bsaerr.Mismatch(bsaerr.ErrSizeMismatch, alg.String()+" decompressed size", uint64(expected), uint64(actual)) //nolint:gosec // sizes are bounded by archive format limits
}
