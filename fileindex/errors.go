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

// Error is the type of the constant Err* variables.
type Error string

// Error returns a string version of the error.
func (e Error) Error() string { return string(e) }

const (
	// caller contract violations, checked before any I/O.
	ErrMismatchedColumns = Error("columns and names must have the same length")
	ErrNoColumns         = Error("at least one column must be requested")
	ErrEmptyName         = Error("column names must not be empty")
	ErrBadColumn         = Error("column indices must not be negative")
	ErrReservedName      = Error("'seek' is a reserved column name")

	// source file problems.
	ErrMissingBgzf    = Error("no block-gzip support: cannot index a bgzip file")
	ErrNotBgzf        = Error("only bgzip compression is supported: recompress with bgzip")
	ErrTooFewColumns  = Error("invalid file format: too few columns")
	ErrUnexpectedSeek = Error("seek value is beyond the end of the file")

	// sidecar index file problems; none of these trigger an automatic
	// rebuild, the user has to reindex explicitly.
	ErrInvalidIndex = Error("not a valid index file: reindex")
	ErrCorruptIndex = Error("corrupt index file: reindex")
	ErrStaleIndex   = Error("index does not cover the requested columns: reindex")
)
