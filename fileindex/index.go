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

// Package fileindex builds and restores seek indexes over large delimited
// text files, which may be bgzip compressed. An index records, for selected
// columns of every line, the column values and a seek token at which the
// line starts, letting later readers jump straight to any line without
// rescanning the file. Indexes are persisted to a sidecar file next to the
// source and reused on subsequent requests.
//
// The subsystem is synchronous and does no locking of its own: two callers
// indexing the same file at once will both produce (and race to write) a
// valid sidecar, with the last writer winning. Callers that need exclusion
// must serialize builds themselves. A sidecar is also never invalidated when
// its source file changes after indexing; detecting that is the caller's
// responsibility.
package fileindex

import (
	"errors"
	"fmt"
	"io"

	"github.com/inconshreveable/log15"
)

// Indexer builds, persists and restores seek indexes.
type Indexer struct {
	logger    log15.Logger
	blockOpen OpenFunc
}

// Option configures an Indexer.
type Option func(*Indexer)

// WithLogger sets the logger used for informational messages on index build
// and retrieval. The default discards them.
func WithLogger(l log15.Logger) Option {
	return func(ix *Indexer) {
		ix.logger = l
	}
}

// WithBlockSupport replaces the OpenFunc used for block-compressed files.
// Passing nil removes block-gzip support entirely, making compressed files
// fail with ErrMissingBgzf.
func WithBlockSupport(open OpenFunc) Option {
	return func(ix *Indexer) {
		ix.blockOpen = open
	}
}

// New returns an Indexer with bgzip support enabled.
func New(opts ...Option) *Indexer {
	logger := log15.New()
	logger.SetHandler(log15.DiscardHandler())

	ix := &Indexer{logger: logger, blockOpen: openBgzf}

	for _, opt := range opts {
		opt(ix)
	}

	return ix
}

// Get returns the seek index for the given file, restoring it from an
// existing sidecar when one is present and building and persisting it
// otherwise. cols are the zero-based columns to keep, names their output
// names, and sep the field separator of the file.
//
// A restored index must contain the reserved seek column and cover all the
// requested names, or Get fails with an error wrapping ErrStaleIndex and the
// user has to reindex explicitly; a stale sidecar is never silently rebuilt,
// since that could mask schema drift or corruption. The returned table holds
// exactly the requested columns, in the requested order.
func (ix *Indexer) Get(path string, cols []int, names []string, sep byte) (*Table, error) {
	if _, err := NewProjector(cols, names, sep); err != nil {
		return nil, err
	}

	if !HasIndex(path) {
		return ix.Build(path, cols, names, sep)
	}

	ix.logger.Info("retrieving index", "file", path)

	idx, err := IndexPath(path)
	if err != nil {
		return nil, err
	}

	t, err := ReadIndex(idx)
	if err != nil {
		return nil, err
	}

	if t.noSeeks {
		return nil, fmt.Errorf("%s: index has no seek column: %w", path, ErrStaleIndex)
	}

	pt, err := t.Project(names...)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return pt, nil
}

// Build unconditionally builds the seek index for the given file and
// persists it as the file's sidecar, replacing any existing index. The
// source is read in a single pass that pairs each line's projected columns
// with the token at which the line starts.
func (ix *Indexer) Build(path string, cols []int, names []string, sep byte) (*Table, error) {
	proj, err := NewProjector(cols, names, sep)
	if err != nil {
		return nil, err
	}

	ix.logger.Info("generating index", "file", path)

	open, _, err := ix.Resolve(path)
	if err != nil {
		return nil, err
	}

	t, err := buildTable(path, open, proj)
	if err != nil {
		return nil, err
	}

	idx, err := IndexPath(path)
	if err != nil {
		return nil, err
	}

	if err := WriteIndex(idx, t); err != nil {
		return nil, err
	}

	return t, nil
}

func buildTable(path string, open OpenFunc, proj *Projector) (*Table, error) {
	r, err := open(path)
	if err != nil {
		return nil, err
	}

	defer r.Close()

	t := NewTable(proj.Names())
	s := NewOffsetScanner(r)

	for lineno := 1; s.Scan(); lineno++ {
		values, err := proj.Project(s.Line())
		if err != nil {
			return nil, fmt.Errorf("%s:%d: %w", path, lineno, err)
		}

		t.Rows = append(t.Rows, Row{Values: values, Seek: s.Offset()})
	}

	if err := s.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return t, nil
}

// ReadLineAt reopens the given file with the appropriate reader and returns
// the line, terminator stripped, starting at the given seek token. The token
// must have come from an index built over the same file.
func (ix *Indexer) ReadLineAt(path string, seek uint64) ([]byte, error) {
	open, _, err := ix.Resolve(path)
	if err != nil {
		return nil, err
	}

	r, err := open(path)
	if err != nil {
		return nil, err
	}

	defer r.Close()

	if err := r.Seek(seek); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	line, err := r.ReadLine()
	if len(line) > 0 {
		return trimEOL(line), nil
	}

	if err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	return nil, fmt.Errorf("%s: %w", path, ErrUnexpectedSeek)
}
