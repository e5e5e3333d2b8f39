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

package bsa

import (
	"bytes"
	"testing"

	"github.com/spf13/afero"

	"github.com/Ryan-rsm-McKenzie/bsa-go/genb"
)

func TestDetectGenerationGenB(t *testing.T) {
	t.Parallel()

	a := genb.New(104, 0, 0)
	var buf bytes.Buffer
	if err := genb.Encode(&buf, a); err != nil {
		t.Fatalf("genb.Encode: %v", err)
	}

	gen, err := DetectGeneration(buf.Bytes())
	if err != nil {
		t.Fatalf("DetectGeneration: %v", err)
	}
	if gen != GenB {
		t.Fatalf("gen = %v, want GenB", gen)
	}
}

func TestDetectGenerationRejectsUnknownSignature(t *testing.T) {
	t.Parallel()

	if _, err := DetectGeneration([]byte("NOPE")); err == nil {
		t.Fatalf("expected an error for an unrecognized signature")
	}
}

func TestOpenParsesGenBArchiveFromMemMapFs(t *testing.T) {
	t.Parallel()

	a := genb.New(104, 0, 0)
	var buf bytes.Buffer
	if err := genb.Encode(&buf, a); err != nil {
		t.Fatalf("genb.Encode: %v", err)
	}

	fs := afero.NewMemMapFs()
	if err := afero.WriteFile(fs, "test.bsa", buf.Bytes(), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	archive, err := Open(fs, "test.bsa")
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	defer func() { _ = archive.Close() }()

	if archive.Generation != GenB {
		t.Fatalf("Generation = %v, want GenB", archive.Generation)
	}
	if archive.B == nil {
		t.Fatalf("expected B to be populated")
	}
}
