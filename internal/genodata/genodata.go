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

// Package genodata creates delimited genotype-like test files in the plain,
// bgzip and (for negative tests) standard gzip encodings.
package genodata

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/biogo/hts/bgzf"
	"github.com/klauspost/pgzip"
)

// WritePlain writes the given lines to a new file under dir, returning its
// path. Each line is written with a trailing newline.
func WritePlain(dir, name string, lines []string) (string, error) {
	path := filepath.Join(dir, name)

	return path, os.WriteFile(path, []byte(join(lines)), 0600)
}

// WriteBgzf writes the given lines to a new bgzip-compressed file under dir,
// returning its path.
func WriteBgzf(dir, name string, lines []string) (string, error) {
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	w := bgzf.NewWriter(f, 1)

	if _, err := w.Write([]byte(join(lines))); err != nil {
		return "", err
	}

	if err := w.Close(); err != nil {
		return "", err
	}

	return path, f.Close()
}

// WriteGzip writes the given lines to a new file under dir compressed as a
// single standard gzip stream, which shares the bgzip magic bytes but cannot
// be seeked into.
func WriteGzip(dir, name string, lines []string) (string, error) {
	path := filepath.Join(dir, name)

	f, err := os.Create(path)
	if err != nil {
		return "", err
	}

	w := pgzip.NewWriter(f)

	if _, err := w.Write([]byte(join(lines))); err != nil {
		return "", err
	}

	if err := w.Close(); err != nil {
		return "", err
	}

	return path, f.Close()
}

// WriteBytes writes raw bytes to a new file under dir, returning its path.
func WriteBytes(dir, name string, data []byte) (string, error) {
	path := filepath.Join(dir, name)

	return path, os.WriteFile(path, data, 0600)
}

// Impute2Lines returns n lines shaped like impute2 genotype rows: a chromosome,
// a marker name, a position and three genotype probabilities, space separated.
func Impute2Lines(n int) []string {
	lines := make([]string, n)

	for i := 0; i < n; i++ {
		pos := strconv.Itoa(1000 + i*17)
		lines[i] = strings.Join([]string{"1", "rs" + pos, pos, "0", "0.5", "0.5"}, " ")
	}

	return lines
}

func join(lines []string) string {
	if len(lines) == 0 {
		return ""
	}

	return strings.Join(lines, "\n") + "\n"
}
