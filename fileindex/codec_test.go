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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/klauspost/compress/zlib"
	. "github.com/smartystreets/goconvey/convey"
)

func TestIndexPath(t *testing.T) {
	Convey("IndexPath is the absolute source path plus .idx", t, func() {
		idx, err := IndexPath("/some/dir/data.txt")
		So(err, ShouldBeNil)
		So(idx, ShouldEqual, "/some/dir/data.txt.idx")

		wd, err := os.Getwd()
		So(err, ShouldBeNil)

		idx, err = IndexPath("data.txt")
		So(err, ShouldBeNil)
		So(idx, ShouldEqual, filepath.Join(wd, "data.txt.idx"))
	})
}

func TestIndexRoundTrip(t *testing.T) {
	Convey("Given a table written to a sidecar file", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "data.txt.idx")
		table := testTable()

		So(WriteIndex(path, table), ShouldBeNil)

		Convey("the sidecar starts with the magic bytes", func() {
			data, err := os.ReadFile(path)
			So(err, ShouldBeNil)
			So(bytes.HasPrefix(data, []byte("GWIP INDEX FILE")), ShouldBeTrue)
		})

		Convey("no temporary files are left behind", func() {
			entries, err := os.ReadDir(dir)
			So(err, ShouldBeNil)
			So(len(entries), ShouldEqual, 1)
			So(entries[0].Name(), ShouldEqual, "data.txt.idx")
		})

		Convey("reading it back reconstructs the table", func() {
			got, err := ReadIndex(path)
			So(err, ShouldBeNil)
			So(got.Columns, ShouldResemble, table.Columns)
			So(got.Rows, ShouldResemble, table.Rows)
		})
	})
}

func TestReadIndexFailures(t *testing.T) {
	Convey("ReadIndex rejects", t, func() {
		dir := t.TempDir()

		Convey("a file with the wrong magic, whatever follows", func() {
			path := filepath.Join(dir, "bad.idx")
			So(os.WriteFile(path, []byte("GWIP INDEX PILF"+strings.Repeat("x", 100)), 0600), ShouldBeNil)

			_, err := ReadIndex(path)
			So(err, ShouldWrap, ErrInvalidIndex)
			So(err.Error(), ShouldContainSubstring, path)
		})

		Convey("a file shorter than the magic", func() {
			path := filepath.Join(dir, "short.idx")
			So(os.WriteFile(path, []byte("GWIP"), 0600), ShouldBeNil)

			_, err := ReadIndex(path)
			So(err, ShouldWrap, ErrInvalidIndex)
		})

		Convey("a payload that is not a zlib stream", func() {
			path := filepath.Join(dir, "raw.idx")
			writeRawIndexAt(path, []byte("not zlib at all"))

			_, err := ReadIndex(path)
			So(err, ShouldWrap, ErrCorruptIndex)
		})

		Convey("a payload with ragged rows", func() {
			path := filepath.Join(dir, "ragged.idx")
			writeCSVIndexAt(path, "name,seek\nrs1,0,extra\n")

			_, err := ReadIndex(path)
			So(err, ShouldWrap, ErrCorruptIndex)
		})

		Convey("a payload with a non-numeric seek", func() {
			path := filepath.Join(dir, "nonnum.idx")
			writeCSVIndexAt(path, "name,seek\nrs1,zero\n")

			_, err := ReadIndex(path)
			So(err, ShouldWrap, ErrCorruptIndex)
		})

		Convey("a payload with non-increasing seeks", func() {
			path := filepath.Join(dir, "backwards.idx")
			writeCSVIndexAt(path, "name,seek\nrs1,5\nrs2,5\n")

			_, err := ReadIndex(path)
			So(err, ShouldWrap, ErrCorruptIndex)
		})
	})

	Convey("ReadIndex tolerates a missing seek column, flagging the table", t, func() {
		dir := t.TempDir()
		path := filepath.Join(dir, "noseek.idx")
		writeCSVIndexAt(path, "name,chr\nrs1,1\n")

		table, err := ReadIndex(path)
		So(err, ShouldBeNil)
		So(table.noSeeks, ShouldBeTrue)
		So(table.Columns, ShouldResemble, []string{"name", "chr"})
	})
}

// writeRawIndexAt writes a sidecar at path with a valid magic and the given
// raw payload bytes.
func writeRawIndexAt(path string, payload []byte) {
	err := os.WriteFile(path, append([]byte("GWIP INDEX FILE"), payload...), 0600)
	So(err, ShouldBeNil)
}

// writeCSVIndexAt writes a sidecar at path with a valid magic and the given
// CSV text zlib-compressed as its payload.
func writeCSVIndexAt(path, csv string) {
	var buf bytes.Buffer

	zw := zlib.NewWriter(&buf)

	_, err := zw.Write([]byte(csv))
	So(err, ShouldBeNil)
	So(zw.Close(), ShouldBeNil)

	writeRawIndexAt(path, buf.Bytes())
}
