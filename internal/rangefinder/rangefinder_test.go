package rangefinder

import (
	"testing"

	. "github.com/smartystreets/goconvey/convey"
)

func TestPageToRange(t *testing.T) {
	Convey("Given a finder with the native page size", t, func() {
		f := New(20)

		Convey("Page 1 starts at index 0 and maps to native page 1 only", func() {
			r, pages := f.Pagination(1)
			So(r, ShouldResemble, Range{StartIndex: 0, EndIndex: 19})
			So(pages, ShouldResemble, []int{1})
		})

		Convey("Page 4 maps to native page 4", func() {
			_, pages := f.Pagination(4)
			So(pages, ShouldResemble, []int{4})
		})

		Convey("Pages below 1 are treated as page 1", func() {
			So(f.PageToRange(0), ShouldResemble, f.PageToRange(1))
			So(f.PageToRange(-3), ShouldResemble, f.PageToRange(1))
		})
	})

	Convey("Given a page size that straddles native pages", t, func() {
		f := New(15)

		Convey("Page 2 (indices 15..29) needs native pages 1 and 2", func() {
			r, pages := f.Pagination(2)
			So(r, ShouldResemble, Range{StartIndex: 15, EndIndex: 29})
			So(pages, ShouldResemble, []int{1, 2})
		})
	})

	Convey("Given a page size larger than a native page", t, func() {
		f := New(50)

		Convey("Page 2 (indices 50..99) needs native pages 3, 4 and 5", func() {
			_, pages := f.Pagination(2)
			So(pages, ShouldResemble, []int{3, 4, 5})
		})
	})

	Convey("A non-positive size falls back to the native size", t, func() {
		So(New(0).PageSize, ShouldEqual, NativePageSize)
		So(New(-1).PageSize, ShouldEqual, NativePageSize)
	})
}

func TestCoverage(t *testing.T) {
	Convey("For every page and size the native pages are contiguous and cover the window", t, func() {
		for size := 1; size <= 64; size++ {
			f := New(size)
			for page := 1; page <= 40; page++ {
				r, pages := f.Pagination(page)
				So(pages, ShouldNotBeEmpty)

				for i := 1; i < len(pages); i++ {
					So(pages[i], ShouldEqual, pages[i-1]+1)
				}

				covered := len(pages) * NativePageSize
				offset, length := f.Window(r, pages[0])
				So(length, ShouldEqual, size)
				So(offset+length, ShouldBeLessThanOrEqualTo, covered)
				So((pages[0]-1)*NativePageSize, ShouldBeLessThanOrEqualTo, r.StartIndex)
			}
		}
	})
}

func TestClamp(t *testing.T) {
	Convey("Pages past the last known page are dropped", t, func() {
		So(Clamp([]int{3, 4, 5}, 4), ShouldResemble, []int{3, 4})
		So(Clamp([]int{7, 8}, 4), ShouldBeEmpty)
	})

	Convey("An unknown last page keeps everything", t, func() {
		So(Clamp([]int{1, 2}, 0), ShouldResemble, []int{1, 2})
	})
}

func TestSlice(t *testing.T) {
	Convey("Merged native results are trimmed to the logical window", t, func() {
		f := New(15)
		items := make([]int, 40)
		for i := range items {
			items[i] = i
		}

		r, pages := f.Pagination(2)
		got := Slice(f, items, r, pages[0])
		So(len(got), ShouldEqual, 15)
		So(got[0], ShouldEqual, 15)
		So(got[14], ShouldEqual, 29)
	})

	Convey("Short results are returned as far as they go", t, func() {
		f := New(15)
		r, pages := f.Pagination(2)
		got := Slice(f, []int{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11, 12, 13, 14, 15, 16}, r, pages[0])
		So(got, ShouldResemble, []int{15, 16})
	})

	Convey("A window past the results is empty", t, func() {
		f := New(15)
		r, pages := f.Pagination(3)
		So(Slice(f, []int{1, 2}, r, pages[0]), ShouldBeEmpty)
	})
}
