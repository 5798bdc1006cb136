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
	"errors"
	"io"
)

// OffsetScanner steps through a file one line at a time, reporting the seek
// token at the start of every line. It is forward-only and tied to the
// position of the single reader it was created with; it cannot be restarted.
type OffsetScanner struct {
	r      LineReader
	line   []byte
	offset uint64
	next   uint64
	err    error
	done   bool
}

// NewOffsetScanner returns an OffsetScanner reading from the given reader's
// current position.
func NewOffsetScanner(r LineReader) *OffsetScanner {
	return &OffsetScanner{r: r, next: r.Tell()}
}

// Scan reads the next line, after which Line and Offset report its content
// and starting position. It returns false at the end of the file or on
// error; Err distinguishes the two.
func (s *OffsetScanner) Scan() bool {
	if s.err != nil || s.done {
		return false
	}

	line, err := s.r.ReadLine()

	switch {
	case errors.Is(err, io.EOF):
		s.done = true

		if len(line) == 0 {
			return false
		}
	case err != nil:
		s.err = err

		return false
	}

	s.line = line
	s.offset = s.next
	s.next = s.r.Tell()

	return true
}

// Line returns the last scanned line, including its terminator if present.
func (s *OffsetScanner) Line() []byte {
	return s.line
}

// Offset returns the seek token for the start of the last scanned line.
func (s *OffsetScanner) Offset() uint64 {
	return s.offset
}

// End returns the token for the position after the last scanned line; once
// scanning has finished this is the end-of-stream position. Together with
// the per-line Offsets, a file with n lines yields n+1 tokens, of which End
// is the dangling one that has no line to pair with.
func (s *OffsetScanner) End() uint64 {
	return s.next
}

// Err returns the first non-EOF error encountered, available after Scan
// returns false.
func (s *OffsetScanner) Err() error {
	return s.err
}
