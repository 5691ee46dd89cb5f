// Package feed slices a result list into fixed-size pages for progressive
// rendering.
package feed

import (
	"github.com/mmcdole/anidex/internal/domain"
)

// DefaultPageSize is the number of entries per page
const DefaultPageSize = 24

// Page is one chunk of a result list
type Page struct {
	Items []*domain.Entry
	Start int
	Next  int

	// Fresh marks the first page of a result set; renderers discard what
	// they drew before.
	Fresh bool

	// Exhausted is set when no entries remain after this page
	Exhausted bool
}

// GetPage returns list[start:start+size], clamped to the list bounds.
// The page is exhausted when start+size reaches the end of the list.
func GetPage(list []*domain.Entry, start, size int) Page {
	if size <= 0 {
		size = DefaultPageSize
	}
	if start < 0 {
		start = 0
	}

	p := Page{Start: start, Fresh: start == 0}
	if start < len(list) {
		end := min(start+size, len(list))
		p.Items = list[start:end]
	}
	p.Next = start + len(p.Items)
	p.Exhausted = start+size >= len(list)
	return p
}

// Feed walks a result list page by page. The cursor only moves forward;
// Reset is the only way back to the first page.
type Feed struct {
	list      []*domain.Entry
	size      int
	cursor    int
	exhausted bool
	renderer  domain.Renderer
}

// New creates a feed with the given page size (DefaultPageSize when <= 0)
func New(size int) *Feed {
	if size <= 0 {
		size = DefaultPageSize
	}
	return &Feed{size: size}
}

// Attach sets the renderer that receives every page produced by Next
func (f *Feed) Attach(r domain.Renderer) {
	f.renderer = r
}

// PageSize returns the configured page size
func (f *Feed) PageSize() int {
	return f.size
}

// Reset replaces the list and rewinds to the first page
func (f *Feed) Reset(list []*domain.Entry) {
	f.list = list
	f.cursor = 0
	f.exhausted = false
}

// Next returns the next page and pushes it to the renderer. It reports
// false once the list is exhausted; further calls are no-ops until Reset.
func (f *Feed) Next() (Page, bool) {
	if f.exhausted {
		return Page{Start: f.cursor, Next: f.cursor, Exhausted: true}, false
	}

	p := GetPage(f.list, f.cursor, f.size)
	f.cursor = p.Next
	f.exhausted = p.Exhausted

	if f.renderer != nil {
		f.renderer.RenderPage(p.Items, p.Start, p.Fresh)
	}
	return p, true
}

// Cursor returns the index of the next entry to be paged out
func (f *Feed) Cursor() int {
	return f.cursor
}

// Exhausted reports whether every entry has been paged out
func (f *Feed) Exhausted() bool {
	return f.exhausted
}

// Len returns the length of the current list
func (f *Feed) Len() int {
	return len(f.list)
}
