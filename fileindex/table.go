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
	"encoding/csv"
	"fmt"
	"io"
	"slices"
	"strconv"

	"github.com/hashicorp/go-multierror"
)

// seekColumn is the reserved name of the column holding seek tokens; it is
// always the last column of a serialized index.
const seekColumn = "seek"

// Row is one line of an indexed file: the projected column values plus the
// seek token at which the line starts.
type Row struct {
	Values []string
	Seek   uint64
}

// Table is a seek index over one file: one Row per source line, in file
// order, with strictly increasing seek tokens.
type Table struct {
	// Columns names the projected columns, not including the reserved
	// trailing seek column.
	Columns []string

	// Rows holds one entry per line of the source file.
	Rows []Row

	// noSeeks records that a deserialized index was missing its seek
	// column; such an index is unusable and has to be rebuilt.
	noSeeks bool
}

// NewTable returns an empty Table with the given projected column names.
func NewTable(columns []string) *Table {
	return &Table{Columns: columns}
}

// Header returns the serialization header: the projected column names with
// the reserved seek column appended.
func (t *Table) Header() []string {
	return append(slices.Clone(t.Columns), seekColumn)
}

// Column returns the position of the named projected column, or -1.
func (t *Table) Column(name string) int {
	return slices.Index(t.Columns, name)
}

// Project returns a Table containing exactly the named columns, in the given
// order, with the seek tokens carried over. Every requested column missing
// from the table contributes an error wrapping ErrStaleIndex.
func (t *Table) Project(names ...string) (*Table, error) {
	cols := make([]int, len(names))

	var errs *multierror.Error

	for i, name := range names {
		if cols[i] = t.Column(name); cols[i] < 0 {
			errs = multierror.Append(errs, fmt.Errorf("missing index column %q: %w", name, ErrStaleIndex))
		}
	}

	if err := errs.ErrorOrNil(); err != nil {
		return nil, err
	}

	out := &Table{Columns: slices.Clone(names), Rows: make([]Row, len(t.Rows))}

	for i, row := range t.Rows {
		values := make([]string, len(cols))
		for j, col := range cols {
			values[j] = row.Values[col]
		}

		out.Rows[i] = Row{Values: values, Seek: row.Seek}
	}

	return out, nil
}

// Find returns the first row whose named column has the given value.
func (t *Table) Find(column, value string) (Row, bool) {
	col := t.Column(column)
	if col < 0 {
		return Row{}, false
	}

	for _, row := range t.Rows {
		if row.Values[col] == value {
			return row, true
		}
	}

	return Row{}, false
}

// encode writes the table as CSV with a header row, seek tokens rendered as
// base-10 integers.
func (t *Table) encode(w io.Writer) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Header()); err != nil {
		return err
	}

	record := make([]string, len(t.Columns)+1)

	for _, row := range t.Rows {
		copy(record, row.Values)
		record[len(record)-1] = strconv.FormatUint(row.Seek, 10)

		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()

	return cw.Error()
}

// decodeTable parses CSV with a header row back into a Table. The seek
// column is located by name so that indexes written by other tools with a
// different column order still load. Unparseable or non-increasing seek
// tokens are treated as corruption; a missing seek column is tolerated here
// and rejected when the index is used.
func decodeTable(r io.Reader) (*Table, error) {
	cr := csv.NewReader(r)

	header, err := cr.Read()
	if err != nil {
		return nil, ErrCorruptIndex
	}

	seekCol := slices.Index(header, seekColumn)

	t := &Table{Columns: deleteColumn(header, seekCol), noSeeks: seekCol < 0}

	for {
		record, err := cr.Read()
		if err == io.EOF {
			return t, nil
		} else if err != nil {
			return nil, ErrCorruptIndex
		}

		row, err := t.decodeRow(record, seekCol)
		if err != nil {
			return nil, err
		}

		t.Rows = append(t.Rows, row)
	}
}

func (t *Table) decodeRow(record []string, seekCol int) (Row, error) {
	var row Row

	if seekCol < 0 {
		row.Values = record

		return row, nil
	}

	seek, err := strconv.ParseUint(record[seekCol], 10, 64)
	if err != nil {
		return row, ErrCorruptIndex
	}

	if n := len(t.Rows); n > 0 && seek <= t.Rows[n-1].Seek {
		return row, ErrCorruptIndex
	}

	row.Seek = seek
	row.Values = deleteColumn(record, seekCol)

	return row, nil
}

// deleteColumn returns record without the given column; col may be -1.
func deleteColumn(record []string, col int) []string {
	if col < 0 {
		return record
	}

	return slices.Delete(slices.Clone(record), col, col+1)
}
