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

package cmd

import (
	"errors"
	"os"
	"slices"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
	"github.com/wtsi-hgi/gwip-index/fileindex"
)

var infoPeek int

// infoCmd represents the info command.
var infoCmd = &cobra.Command{
	Use:   "info",
	Short: "Summarise the sidecar indexes of the given files",
	Long: `Summarise the sidecar indexes of the given files.

For each given source file, loads its .idx sidecar and prints the indexed
columns, the number of rows and the sidecar size. With --peek, also prints the
first few indexed rows.`,
	Run: func(_ *cobra.Command, args []string) {
		if err := indexInfo(args); err != nil {
			die("%s", err)
		}
	},
}

func init() {
	RootCmd.AddCommand(infoCmd)

	infoCmd.Flags().IntVarP(&infoPeek, "peek", "p", 0,
		"also show the first n indexed rows")
}

func indexInfo(paths []string) error {
	if len(paths) == 0 {
		return errors.New("at least 1 input file should be provided") //nolint:err113
	}

	for _, path := range paths {
		if err := printInfo(path); err != nil {
			return err
		}
	}

	return nil
}

func printInfo(path string) error {
	idx, err := fileindex.IndexPath(path)
	if err != nil {
		return err
	}

	table, err := fileindex.ReadIndex(idx)
	if err != nil {
		return err
	}

	st, err := os.Stat(idx)
	if err != nil {
		return err
	}

	cliPrint("%s\n", path)
	cliPrint("  index: %s (%s)\n", idx, humanize.IBytes(uint64(st.Size())))
	cliPrint("  columns: %s\n", strings.Join(table.Columns, ", "))
	cliPrint("  rows: %s\n", humanize.Comma(int64(len(table.Rows))))

	if len(table.Rows) > 0 {
		last := table.Rows[len(table.Rows)-1]
		cliPrint("  seek span: 0-%d\n", last.Seek)
	}

	if infoPeek > 0 {
		peekRows(table, infoPeek)
	}

	return nil
}

// peekRows prints the first n rows of the table to STDOUT.
func peekRows(t *fileindex.Table, n int) {
	tw := tablewriter.NewWriter(os.Stdout)
	tw.SetHeader(t.Header())

	for i, row := range t.Rows {
		if i == n {
			break
		}

		tw.Append(append(slices.Clone(row.Values), strconv.FormatUint(row.Seek, 10)))
	}

	tw.Render()
}
