// Copyright © 2025 Genome Research Limited
//
// Permission is hereby granted, free of charge, to any person obtaining a copy
// of this software and associated documentation files (the "Software"), to deal
// in the Software without restriction, including without limitation the rights
// to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
// copies of the Software, and to permit persons to whom the Software is
// furnished to do so, subject to the following conditions:
//
// The above copyright notice and this permission notice shall be included in
// all copies or substantial portions of the Software.
//
// THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
// IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
// FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
// AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
// LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
// OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN THE
// SOFTWARE.

package fileindex

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zlib"
)

// indexMagic identifies a sidecar index file. The sidecar format is this
// magic followed by the table as zlib-deflated CSV with a header row. There
// is no checksum beyond the deflate stream's own: a corrupt payload that
// still inflates and parses as a differently shaped table goes undetected.
var indexMagic = []byte("GWIP INDEX FILE")

// indexSuffix is appended to a source file's path to name its sidecar.
const indexSuffix = ".idx"

// IndexPath returns the sidecar index path for the given file: the absolute
// source path with ".idx" appended.
func IndexPath(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", err
	}

	return abs + indexSuffix, nil
}

// HasIndex reports whether a sidecar index exists for the given file.
func HasIndex(path string) bool {
	idx, err := IndexPath(path)
	if err != nil {
		return false
	}

	_, err = os.Stat(idx)

	return err == nil
}

// WriteIndex serializes the table to the given sidecar path. The write is
// all-or-nothing: the bytes go to a temporary file in the same directory
// which is only renamed into place once fully flushed, so a crash part way
// through can never leave a file that passes the magic check with a
// truncated payload.
func WriteIndex(path string, t *Table) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+".tmp*")
	if err != nil {
		return err
	}

	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	if err = writeIndexTo(tmp, t); err != nil {
		return err
	}

	if err = tmp.Close(); err != nil {
		return err
	}

	return os.Rename(tmp.Name(), path)
}

func writeIndexTo(w io.Writer, t *Table) error {
	if _, err := w.Write(indexMagic); err != nil {
		return err
	}

	zw := zlib.NewWriter(w)

	if err := t.encode(zw); err != nil {
		return err
	}

	return zw.Close()
}

// ReadIndex deserializes the sidecar index at the given path. A file whose
// leading bytes are not the index magic fails with ErrInvalidIndex; a
// payload that does not inflate or parse back into a table fails with
// ErrCorruptIndex. Neither triggers a rebuild: the user is told to reindex
// so that a corrupted cache is never papered over.
func ReadIndex(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	defer f.Close()

	lead := make([]byte, len(indexMagic))

	if _, err := io.ReadFull(f, lead); err != nil || !bytes.Equal(lead, indexMagic) {
		return nil, fmt.Errorf("%s: %w", path, ErrInvalidIndex)
	}

	zr, err := zlib.NewReader(f)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, ErrCorruptIndex)
	}

	defer zr.Close()

	t, err := decodeTable(zr)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}
