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
	"testing"

	. "github.com/smartystreets/goconvey/convey"
	"github.com/wtsi-hgi/gwip-index/internal/genodata"
)

func TestSniff(t *testing.T) {
	Convey("Given files with assorted leading bytes", t, func() {
		dir := t.TempDir()

		Convey("a file shorter than the magic is plain text", func() {
			path, err := genodata.WriteBytes(dir, "short", []byte{0x1F, 0x8B})
			So(err, ShouldBeNil)

			compressed, err := sniff(path)
			So(err, ShouldBeNil)
			So(compressed, ShouldBeFalse)
		})

		Convey("an empty file is plain text", func() {
			path, err := genodata.WriteBytes(dir, "empty", nil)
			So(err, ShouldBeNil)

			compressed, err := sniff(path)
			So(err, ShouldBeNil)
			So(compressed, ShouldBeFalse)
		})

		Convey("a file with exactly the magic bytes is block-compressed", func() {
			path, err := genodata.WriteBytes(dir, "magic", []byte{0x1F, 0x8B, 0x08})
			So(err, ShouldBeNil)

			compressed, err := sniff(path)
			So(err, ShouldBeNil)
			So(compressed, ShouldBeTrue)
		})

		Convey("any other 3 bytes are plain text", func() {
			path, err := genodata.WriteBytes(dir, "other", []byte{0x1F, 0x8B, 0x09})
			So(err, ShouldBeNil)

			compressed, err := sniff(path)
			So(err, ShouldBeNil)
			So(compressed, ShouldBeFalse)
		})
	})
}

func TestResolve(t *testing.T) {
	lines := []string{"1 rs1 1000 0 0.5 0.5", "1 rs2 1017 1 0 0"}

	Convey("Given an Indexer", t, func() {
		dir := t.TempDir()
		ix := New()

		Convey("plain text files resolve to the plain reader", func() {
			path, err := genodata.WritePlain(dir, "data.txt", lines)
			So(err, ShouldBeNil)

			open, compressed, err := ix.Resolve(path)
			So(err, ShouldBeNil)
			So(compressed, ShouldBeFalse)

			r, err := open(path)
			So(err, ShouldBeNil)

			defer r.Close()

			line, err := r.ReadLine()
			So(err, ShouldBeNil)
			So(string(line), ShouldEqual, lines[0]+"\n")
		})

		Convey("bgzip files resolve to the block reader", func() {
			path, err := genodata.WriteBgzf(dir, "data.txt.gz", lines)
			So(err, ShouldBeNil)

			open, compressed, err := ix.Resolve(path)
			So(err, ShouldBeNil)
			So(compressed, ShouldBeTrue)

			r, err := open(path)
			So(err, ShouldBeNil)

			defer r.Close()

			line, err := r.ReadLine()
			So(err, ShouldBeNil)
			So(string(line), ShouldEqual, lines[0]+"\n")
		})

		Convey("standard gzip files are rejected", func() {
			path, err := genodata.WriteGzip(dir, "data.txt.gz", lines)
			So(err, ShouldBeNil)

			_, compressed, err := ix.Resolve(path)
			So(compressed, ShouldBeTrue)
			So(err, ShouldWrap, ErrNotBgzf)
			So(err.Error(), ShouldContainSubstring, path)
		})

		Convey("compressed files fail without block support", func() {
			path, err := genodata.WriteBgzf(dir, "data.txt.gz", lines)
			So(err, ShouldBeNil)

			noBlock := New(WithBlockSupport(nil))

			_, compressed, err := noBlock.Resolve(path)
			So(compressed, ShouldBeTrue)
			So(err, ShouldWrap, ErrMissingBgzf)
		})
	})
}
