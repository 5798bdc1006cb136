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
	"bufio"
	"io"
	"os"

	"github.com/biogo/hts/bgzf"
)

// A LineReader reads a delimited text file one line at a time and reports the
// position of its underlying stream as an opaque seek token. Tokens returned
// by Tell can later be passed to Seek on a fresh reader for the same file to
// resume reading at that exact line.
//
// For plain text files the token is the raw byte offset. For bgzip files it
// is the BGZF virtual offset (compressed block start << 16 | offset within
// the decompressed block), which is what makes O(1) seeks into compressed
// data possible.
type LineReader interface {
	// ReadLine returns the next line, including its terminator. At the end
	// of the file it returns io.EOF, possibly alongside a final
	// unterminated line.
	ReadLine() ([]byte, error)

	// Tell returns the seek token for the reader's current position.
	Tell() uint64

	// Seek repositions the reader at a token previously returned by Tell.
	Seek(tok uint64) error

	io.Closer
}

// OpenFunc opens the given file for line reading, with any decompression
// already bound in.
type OpenFunc func(path string) (LineReader, error)

// plainReader reads uncompressed files; seek tokens are raw byte offsets.
type plainReader struct {
	f   *os.File
	br  *bufio.Reader
	pos uint64
}

// openPlain is the OpenFunc for uncompressed files.
func openPlain(path string) (LineReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	return &plainReader{f: f, br: bufio.NewReader(f)}, nil
}

func (r *plainReader) ReadLine() ([]byte, error) {
	line, err := r.br.ReadBytes('\n')
	r.pos += uint64(len(line))

	return line, err
}

func (r *plainReader) Tell() uint64 {
	return r.pos
}

func (r *plainReader) Seek(tok uint64) error {
	if _, err := r.f.Seek(int64(tok), io.SeekStart); err != nil {
		return err
	}

	r.br.Reset(r.f)
	r.pos = tok

	return nil
}

func (r *plainReader) Close() error {
	return r.f.Close()
}

// bgzfReader reads bgzip files; seek tokens are BGZF virtual offsets.
type bgzfReader struct {
	f    *os.File
	bg   *bgzf.Reader
	line []byte
}

// openBgzf is the OpenFunc for bgzip files.
func openBgzf(path string) (LineReader, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}

	bg, err := bgzf.NewReader(f, 1)
	if err != nil {
		f.Close()

		return nil, err
	}

	return &bgzfReader{f: f, bg: bg}, nil
}

// ReadLine reads single bytes so that the reader's LastChunk always ends
// exactly at the line boundary, keeping Tell accurate.
func (r *bgzfReader) ReadLine() ([]byte, error) {
	r.line = r.line[:0]

	var buf [1]byte

	for {
		_, err := r.bg.Read(buf[:])
		if err != nil {
			return r.line, err
		}

		r.line = append(r.line, buf[0])

		if buf[0] == '\n' {
			return r.line, nil
		}
	}
}

func (r *bgzfReader) Tell() uint64 {
	end := r.bg.LastChunk().End

	return uint64(end.File)<<16 | uint64(end.Block)
}

func (r *bgzfReader) Seek(tok uint64) error {
	return r.bg.Seek(bgzf.Offset{File: int64(tok >> 16), Block: uint16(tok & 0xFFFF)})
}

func (r *bgzfReader) Close() error {
	err := r.bg.Close()

	if errc := r.f.Close(); err == nil {
		err = errc
	}

	return err
}
