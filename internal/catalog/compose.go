// Package catalog composes the active result set from the collection and
// the current query, and owns the single session controller.
package catalog

import (
	"math/rand/v2"

	"github.com/mmcdole/anidex/internal/domain"
	"github.com/mmcdole/anidex/internal/filter"
	"github.com/mmcdole/anidex/internal/search"
)

// DefaultSampleSize is the number of random entries shown next to the
// featured one on the home view.
const DefaultSampleSize = 23

// Searcher ranks entries against a term. *search.Index satisfies it.
type Searcher interface {
	Search(entries []*domain.Entry, term string) []*domain.Entry
}

// Compose derives the ordered result list for a query.
//
// On the home view with an empty query the result is the featured entry
// followed by a random sample of the others. Otherwise it is the search
// result (or the whole collection) narrowed by the active filters.
func Compose(
	all []*domain.Entry,
	q domain.QueryState,
	featured *domain.Entry,
	view domain.View,
	rnd *rand.Rand,
	sampleSize int,
) []*domain.Entry {
	return compose(nil, all, q, featured, view, rnd, sampleSize)
}

func compose(
	s Searcher,
	all []*domain.Entry,
	q domain.QueryState,
	featured *domain.Entry,
	view domain.View,
	rnd *rand.Rand,
	sampleSize int,
) []*domain.Entry {
	if view == domain.ViewHome && q.IsEmpty() {
		return Home(all, featured, rnd, sampleSize)
	}

	results := all
	if q.HasSearch() {
		if s != nil {
			results = s.Search(all, q.SearchTerm())
		} else {
			results = search.Search(all, q.SearchTerm())
		}
	}
	return filter.Apply(results, q)
}

// Home builds the landing list: featured first (flagged IsFeatured), then
// min(sampleSize, pool) entries drawn without replacement from the rest.
// A nil rnd uses the global source.
func Home(all []*domain.Entry, featured *domain.Entry, rnd *rand.Rand, sampleSize int) []*domain.Entry {
	if sampleSize < 0 {
		sampleSize = 0
	}

	pool := make([]*domain.Entry, 0, len(all))
	for _, e := range all {
		if featured != nil && e.ID == featured.ID {
			continue
		}
		pool = append(pool, e)
	}

	n := min(sampleSize, len(pool))
	for i := 0; i < n; i++ {
		j := i + intN(rnd, len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}

	out := make([]*domain.Entry, 0, n+1)
	if featured != nil {
		featured.IsFeatured = true
		out = append(out, featured)
	}
	return append(out, pool[:n]...)
}

func intN(rnd *rand.Rand, n int) int {
	if rnd == nil {
		return rand.IntN(n)
	}
	return rnd.IntN(n)
}
