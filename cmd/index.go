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

	"github.com/gofrs/flock"
	"github.com/hashicorp/go-multierror"
	"github.com/spf13/cobra"
	"github.com/wtsi-hgi/gwip-index/fileindex"
)

var (
	indexCols  []int
	indexNames []string
	indexSep   string
	indexForce bool
)

// indexCmd represents the index command.
var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build seek indexes for the given files",
	Long: `Build seek indexes for the given files.

For each given file, builds a seek index over the columns given with --cols,
named with --names, and stores it in a <file>.idx sidecar. With --force an
existing sidecar is rebuilt; without it, an existing sidecar is validated
against the requested columns instead.

Builds of the same sidecar are serialized with a <file>.idx.lock file, so
concurrent invocations don't waste work racing each other.`,
	Run: func(_ *cobra.Command, args []string) {
		if err := indexFiles(args); err != nil {
			die("%s", err)
		}
	},
}

func init() {
	RootCmd.AddCommand(indexCmd)

	indexCmd.Flags().IntSliceVarP(&indexCols, "cols", "c", nil,
		"zero-based columns to index, eg. -c 0,1")
	indexCmd.Flags().StringSliceVarP(&indexNames, "names", "n", nil,
		"names for the indexed columns, eg. -n chr,name")
	indexCmd.Flags().StringVarP(&indexSep, "sep", "s", " ",
		"field separator of the source files")
	indexCmd.Flags().BoolVarP(&indexForce, "force", "f", false,
		"rebuild even if a sidecar index already exists")
}

func indexFiles(paths []string) error {
	if len(paths) == 0 {
		return errors.New("at least 1 input file should be provided") //nolint:err113
	}

	sep, err := separatorByte(indexSep)
	if err != nil {
		return err
	}

	ix := fileindex.New(fileindex.WithLogger(appLogger))

	var errs *multierror.Error

	for _, path := range paths {
		if err := indexFile(ix, path, sep); err != nil {
			errs = multierror.Append(errs, err)

			continue
		}

		info("indexed %s", path)
	}

	return errs.ErrorOrNil()
}

// indexFile builds or checks the index for one file while holding its lock
// file, providing the caller-level serialization the indexing itself doesn't.
func indexFile(ix *fileindex.Indexer, path string, sep byte) error {
	idx, err := fileindex.IndexPath(path)
	if err != nil {
		return err
	}

	lock := flock.New(idx + ".lock")

	if err := lock.Lock(); err != nil {
		return err
	}

	defer lock.Unlock() //nolint:errcheck

	if indexForce {
		_, err = ix.Build(path, indexCols, indexNames, sep)
	} else {
		_, err = ix.Get(path, indexCols, indexNames, sep)
	}

	return err
}

// separatorByte converts the --sep flag to the single byte separator the
// indexer works with.
func separatorByte(sep string) (byte, error) {
	if len(sep) != 1 {
		return 0, errors.New("--sep must be a single character") //nolint:err113
	}

	return sep[0], nil
}
