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
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/wtsi-hgi/gwip-index/fileindex"
)

var (
	fetchCols  []int
	fetchNames []string
	fetchSep   string
	fetchWhere []string
	fetchLines []int
)

// fetchCmd represents the fetch command.
var fetchCmd = &cobra.Command{
	Use:   "fetch",
	Short: "Fetch lines from an indexed file without scanning it",
	Long: `Fetch lines from an indexed file without scanning it.

Loads (building it first if needed) the seek index of the given file and
prints the requested source lines, seeking straight to them. Lines can be
requested by value with --where column=value, or by 1-based line number with
--line. The --cols and --names flags describe the index as for 'index'.

Works on plain text and bgzip compressed files alike.`,
	Run: func(_ *cobra.Command, args []string) {
		if err := fetchRows(args); err != nil {
			die("%s", err)
		}
	},
}

func init() {
	RootCmd.AddCommand(fetchCmd)

	fetchCmd.Flags().IntSliceVarP(&fetchCols, "cols", "c", nil,
		"zero-based columns of the index, eg. -c 0,1")
	fetchCmd.Flags().StringSliceVarP(&fetchNames, "names", "n", nil,
		"names for the indexed columns, eg. -n chr,name")
	fetchCmd.Flags().StringVarP(&fetchSep, "sep", "s", " ",
		"field separator of the source file")
	fetchCmd.Flags().StringArrayVarP(&fetchWhere, "where", "w", nil,
		"fetch the first line where column=value, eg. -w name=rs123")
	fetchCmd.Flags().IntSliceVarP(&fetchLines, "line", "l", nil,
		"fetch the line with this 1-based number")
}

func fetchRows(args []string) error {
	if len(args) != 1 {
		return errors.New("exactly 1 input file should be provided") //nolint:err113
	}

	if len(fetchWhere) == 0 && len(fetchLines) == 0 {
		return errors.New("nothing to fetch: use --where or --line") //nolint:err113
	}

	sep, err := separatorByte(fetchSep)
	if err != nil {
		return err
	}

	path := args[0]
	ix := fileindex.New(fileindex.WithLogger(appLogger))

	table, err := ix.Get(path, fetchCols, fetchNames, sep)
	if err != nil {
		return err
	}

	seeks, err := collectSeeks(table)
	if err != nil {
		return err
	}

	for _, seek := range seeks {
		line, err := ix.ReadLineAt(path, seek)
		if err != nil {
			return err
		}

		cliPrint("%s\n", line)
	}

	return nil
}

// collectSeeks resolves the --where and --line requests against the table,
// in the order given.
func collectSeeks(t *fileindex.Table) ([]uint64, error) {
	seeks := make([]uint64, 0, len(fetchWhere)+len(fetchLines))

	for _, where := range fetchWhere {
		column, value, ok := strings.Cut(where, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --where %q: expected column=value", where) //nolint:err113
		}

		row, ok := t.Find(column, value)
		if !ok {
			return nil, fmt.Errorf("no row with %s=%s in the index", column, value) //nolint:err113
		}

		seeks = append(seeks, row.Seek)
	}

	for _, lineno := range fetchLines {
		if lineno < 1 || lineno > len(t.Rows) {
			return nil, fmt.Errorf("line %d outside the indexed range 1-%d", lineno, len(t.Rows)) //nolint:err113
		}

		seeks = append(seeks, t.Rows[lineno-1].Seek)
	}

	return seeks, nil
}
