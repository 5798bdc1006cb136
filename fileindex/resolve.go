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
	"errors"
	"fmt"
	"io"
	"os"
)

// bgzipMagic is the 3-byte prefix shared by all gzip streams; files starting
// with it are treated as bgzip candidates and everything else as plain text.
var bgzipMagic = []byte{0x1F, 0x8B, 0x08}

// Resolve decides how the given file should be read by sniffing its leading
// bytes, returning an OpenFunc bound to the correct decompression behaviour
// and whether the file is block-compressed.
//
// A file with the gzip magic must be bgzip compressed: generic gzip streams
// share the prefix but cannot be seeked into, so they are rejected with
// ErrNotBgzf rather than mis-indexed. If the Indexer was built without block
// support, compressed files fail with ErrMissingBgzf.
func (ix *Indexer) Resolve(path string) (OpenFunc, bool, error) {
	compressed, err := sniff(path)
	if err != nil {
		return nil, false, err
	}

	if !compressed {
		return openPlain, false, nil
	}

	if ix.blockOpen == nil {
		return nil, true, fmt.Errorf("%s: %w", path, ErrMissingBgzf)
	}

	if err := ix.checkSeekable(path); err != nil {
		return nil, true, err
	}

	return ix.blockOpen, true, nil
}

// sniff reports whether the file starts with the gzip magic bytes. Files
// shorter than the magic are plain text, not an error.
func sniff(path string) (bool, error) {
	f, err := os.Open(path)
	if err != nil {
		return false, err
	}

	defer f.Close()

	lead := make([]byte, len(bgzipMagic))

	if _, err := io.ReadFull(f, lead); err != nil {
		if errors.Is(err, io.EOF) || errors.Is(err, io.ErrUnexpectedEOF) {
			return false, nil
		}

		return false, err
	}

	return bytes.Equal(lead, bgzipMagic), nil
}

// checkSeekable opens the file once with the block reader to confirm the
// stream really is made of seekable bgzip blocks.
func (ix *Indexer) checkSeekable(path string) error {
	r, err := ix.blockOpen(path)
	if err != nil {
		return fmt.Errorf("%s: %w", path, ErrNotBgzf)
	}

	return r.Close()
}
