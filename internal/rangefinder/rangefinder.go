// Package rangefinder maps a caller's page/size request onto the source's
// own fixed-size pages.
package rangefinder

// NativePageSize is how many results the source lists per page.
const NativePageSize = 20

// Range is an inclusive, 0-based span of logical result indices.
type Range struct {
	StartIndex int `json:"startIndex"`
	EndIndex   int `json:"endIndex"`
}

// Len is the number of logical results the range covers.
func (r Range) Len() int {
	return r.EndIndex - r.StartIndex + 1
}

type Finder struct {
	PageSize   int
	NativeSize int
}

// New returns a Finder for the given logical page size over the source's
// native page size. Non-positive sizes fall back to NativePageSize.
func New(pageSize int) Finder {
	f := Finder{PageSize: pageSize, NativeSize: NativePageSize}
	return f.normalized()
}

func (f Finder) normalized() Finder {
	if f.NativeSize < 1 {
		f.NativeSize = NativePageSize
	}
	if f.PageSize < 1 {
		f.PageSize = f.NativeSize
	}

	return f
}

// PageToRange returns the logical indices of the 1-based page.
func (f Finder) PageToRange(page int) Range {
	f = f.normalized()
	if page < 1 {
		page = 1
	}

	start := (page - 1) * f.PageSize
	return Range{StartIndex: start, EndIndex: start + f.PageSize - 1}
}

// RangeToPagination lists the 1-based native pages whose union covers
// [start, end], in ascending order.
func (f Finder) RangeToPagination(start, end int) []int {
	f = f.normalized()
	if start < 0 {
		start = 0
	}
	if end < start {
		end = start
	}

	first := start/f.NativeSize + 1
	last := end/f.NativeSize + 1

	pages := make([]int, 0, last-first+1)
	for p := first; p <= last; p++ {
		pages = append(pages, p)
	}

	return pages
}

// Pagination is PageToRange followed by RangeToPagination.
func (f Finder) Pagination(page int) (Range, []int) {
	r := f.PageToRange(page)
	return r, f.RangeToPagination(r.StartIndex, r.EndIndex)
}

// Clamp drops native pages past lastPage. A lastPage below 1 means the
// total is not known yet and nothing is dropped.
func Clamp(pages []int, lastPage int) []int {
	if lastPage < 1 {
		return pages
	}

	out := make([]int, 0, len(pages))
	for _, p := range pages {
		if p <= lastPage {
			out = append(out, p)
		}
	}

	return out
}

// Window locates r inside the results of consecutive native pages starting
// at firstNative: the logical range begins at offset and spans length items.
func (f Finder) Window(r Range, firstNative int) (offset, length int) {
	f = f.normalized()
	if firstNative < 1 {
		firstNative = 1
	}

	offset = r.StartIndex - (firstNative-1)*f.NativeSize
	if offset < 0 {
		offset = 0
	}

	return offset, r.Len()
}

// Slice trims merged native results down to the logical window of r.
func Slice[T any](f Finder, items []T, r Range, firstNative int) []T {
	offset, length := f.Window(r, firstNative)
	if offset >= len(items) {
		return items[:0]
	}

	end := offset + length
	if end > len(items) {
		end = len(items)
	}

	return items[offset:end]
}
