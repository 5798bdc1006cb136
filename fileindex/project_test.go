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
)

func TestNewProjector(t *testing.T) {
	Convey("NewProjector validates its arguments before any I/O", t, func() {
		_, err := NewProjector([]int{0, 1}, []string{"a"}, ' ')
		So(err, ShouldEqual, ErrMismatchedColumns)

		_, err = NewProjector(nil, nil, ' ')
		So(err, ShouldEqual, ErrNoColumns)

		_, err = NewProjector([]int{0}, []string{""}, ' ')
		So(err, ShouldEqual, ErrEmptyName)

		_, err = NewProjector([]int{-1}, []string{"a"}, ' ')
		So(err, ShouldEqual, ErrBadColumn)

		_, err = NewProjector([]int{0}, []string{"seek"}, ' ')
		So(err, ShouldEqual, ErrReservedName)

		p, err := NewProjector([]int{1, 0}, []string{"name", "chr"}, ' ')
		So(err, ShouldBeNil)
		So(p.Names(), ShouldResemble, []string{"name", "chr"})
	})
}

func TestProject(t *testing.T) {
	Convey("Given a projector for columns 1 and 0", t, func() {
		p, err := NewProjector([]int{1, 0}, []string{"name", "chr"}, ' ')
		So(err, ShouldBeNil)

		Convey("it extracts the fields in the requested order", func() {
			values, err := p.Project([]byte("1 rs1234 5678 0 0.5 0.5\n"))
			So(err, ShouldBeNil)
			So(values, ShouldResemble, []string{"rs1234", "1"})
		})

		Convey("it handles unterminated and CRLF lines", func() {
			values, err := p.Project([]byte("1 rs1234"))
			So(err, ShouldBeNil)
			So(values, ShouldResemble, []string{"rs1234", "1"})

			values, err = p.Project([]byte("1 rs1234\r\n"))
			So(err, ShouldBeNil)
			So(values, ShouldResemble, []string{"rs1234", "1"})
		})

		Convey("a line with too few fields is malformed", func() {
			_, err := p.Project([]byte("lonely\n"))
			So(err, ShouldEqual, ErrTooFewColumns)
		})
	})
}
