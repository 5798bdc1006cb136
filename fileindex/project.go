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

import "bytes"

// Projector extracts a fixed selection of columns from delimited lines.
type Projector struct {
	cols   []int
	names  []string
	sep    byte
	maxCol int
}

// NewProjector returns a Projector keeping the given zero-based columns
// under the given names, for lines whose fields are separated by sep. The
// arguments are validated here, before any file is touched: cols and names
// must be the same non-zero length, names must be non-empty and must not use
// the reserved name "seek", and column indices must not be negative.
func NewProjector(cols []int, names []string, sep byte) (*Projector, error) {
	if len(cols) != len(names) {
		return nil, ErrMismatchedColumns
	}

	if len(cols) == 0 {
		return nil, ErrNoColumns
	}

	maxCol := 0

	for _, col := range cols {
		if col < 0 {
			return nil, ErrBadColumn
		}

		if col > maxCol {
			maxCol = col
		}
	}

	for _, name := range names {
		if name == "" {
			return nil, ErrEmptyName
		}

		if name == seekColumn {
			return nil, ErrReservedName
		}
	}

	return &Projector{cols: cols, names: names, sep: sep, maxCol: maxCol}, nil
}

// Names returns the output column names, in projection order.
func (p *Projector) Names() []string {
	return p.names
}

// Project splits the given line on the separator and returns the selected
// columns in order. Lines with fewer fields than the highest requested
// column fail with ErrTooFewColumns.
func (p *Projector) Project(line []byte) ([]string, error) {
	line = trimEOL(line)

	fields := bytes.Split(line, []byte{p.sep})
	if p.maxCol >= len(fields) {
		return nil, ErrTooFewColumns
	}

	values := make([]string, len(p.cols))
	for i, col := range p.cols {
		values[i] = string(fields[col])
	}

	return values, nil
}

// trimEOL removes a trailing LF or CRLF.
func trimEOL(line []byte) []byte {
	if n := len(line); n > 0 && line[n-1] == '\n' {
		line = line[:n-1]
	}

	if n := len(line); n > 0 && line[n-1] == '\r' {
		line = line[:n-1]
	}

	return line
}
