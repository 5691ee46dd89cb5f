package feed

import (
	"strconv"
	"testing"

	"github.com/mmcdole/anidex/internal/domain"
)

func makeList(n int) []*domain.Entry {
	list := make([]*domain.Entry, n)
	for i := range list {
		list[i] = &domain.Entry{ID: domain.ID(strconv.Itoa(i)), Title: "T" + strconv.Itoa(i)}
	}
	return list
}

func TestGetPage(t *testing.T) {
	list := makeList(50)

	tests := []struct {
		name          string
		start, size   int
		wantLen       int
		wantExhausted bool
		wantFresh     bool
	}{
		{"first page", 0, 24, 24, false, true},
		{"second page", 24, 24, 24, false, false},
		{"tail", 48, 24, 2, true, false},
		{"exact end", 26, 24, 24, true, false},
		{"past end", 60, 24, 0, true, false},
		{"default size", 0, 0, 24, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := GetPage(list, tt.start, tt.size)
			if len(p.Items) != tt.wantLen {
				t.Errorf("len = %d, want %d", len(p.Items), tt.wantLen)
			}
			if p.Exhausted != tt.wantExhausted {
				t.Errorf("Exhausted = %v, want %v", p.Exhausted, tt.wantExhausted)
			}
			if p.Fresh != tt.wantFresh {
				t.Errorf("Fresh = %v, want %v", p.Fresh, tt.wantFresh)
			}
			if p.Next != p.Start+len(p.Items) {
				t.Errorf("Next = %d, want %d", p.Next, p.Start+len(p.Items))
			}
		})
	}
}

func TestGetPage_EmptyList(t *testing.T) {
	p := GetPage(nil, 0, 24)
	if len(p.Items) != 0 || !p.Exhausted || !p.Fresh {
		t.Errorf("GetPage(nil) = %+v", p)
	}
}

type recorder struct {
	starts []int
	fresh  []bool
	total  int
}

func (r *recorder) RenderPage(items []*domain.Entry, start int, fresh bool) {
	r.starts = append(r.starts, start)
	r.fresh = append(r.fresh, fresh)
	r.total += len(items)
}

func TestFeed_WalksWithoutDuplicates(t *testing.T) {
	list := makeList(50)
	f := New(24)
	rec := &recorder{}
	f.Attach(rec)
	f.Reset(list)

	seen := make(map[domain.ID]bool)
	pages := 0
	for {
		p, ok := f.Next()
		if !ok {
			break
		}
		pages++
		for _, e := range p.Items {
			if seen[e.ID] {
				t.Fatalf("entry %s paged twice", e.ID)
			}
			seen[e.ID] = true
		}
	}

	if pages != 3 || len(seen) != 50 {
		t.Fatalf("pages = %d, entries = %d; want 3, 50", pages, len(seen))
	}
	if rec.total != 50 || len(rec.starts) != 3 {
		t.Fatalf("renderer saw %d entries over %d pages", rec.total, len(rec.starts))
	}
	if !rec.fresh[0] || rec.fresh[1] || rec.fresh[2] {
		t.Errorf("fresh flags = %v, want only the first page fresh", rec.fresh)
	}
	if _, ok := f.Next(); ok {
		t.Errorf("Next after exhaustion should report false")
	}
	if len(rec.starts) != 3 {
		t.Errorf("exhausted feed should not render")
	}
}

func TestFeed_ResetRewinds(t *testing.T) {
	f := New(10)
	f.Reset(makeList(25))
	f.Next()
	f.Next()
	if f.Cursor() != 20 {
		t.Fatalf("Cursor = %d, want 20", f.Cursor())
	}

	f.Reset(makeList(5))
	p, ok := f.Next()
	if !ok || !p.Fresh || p.Start != 0 || len(p.Items) != 5 || !p.Exhausted {
		t.Errorf("after Reset got %+v, ok=%v", p, ok)
	}
	if !f.Exhausted() || f.Len() != 5 {
		t.Errorf("Exhausted = %v, Len = %d", f.Exhausted(), f.Len())
	}
}

func TestFeed_EmptyListRendersFreshOnce(t *testing.T) {
	f := New(0)
	rec := &recorder{}
	f.Attach(rec)
	f.Reset(nil)

	if _, ok := f.Next(); !ok {
		t.Fatalf("first Next on empty list should still render a fresh page")
	}
	if _, ok := f.Next(); ok {
		t.Errorf("second Next should report exhaustion")
	}
	if len(rec.fresh) != 1 || !rec.fresh[0] {
		t.Errorf("renderer calls = %v", rec.fresh)
	}
	if f.PageSize() != DefaultPageSize {
		t.Errorf("PageSize = %d", f.PageSize())
	}
}
