// Package filter evaluates the catalog's named filter predicates.
//
// Filters are independent and combine with AND. A filter holding several
// values matches when any one of them matches. An entry missing the field a
// filter looks at never matches that filter.
package filter

import (
	"strconv"
	"strings"

	"github.com/mmcdole/anidex/internal/domain"
	"github.com/mmcdole/anidex/internal/normalize"
)

// Predicate reports whether an entry satisfies one filter value
type Predicate func(e *domain.Entry, value string) bool

var predicates = map[domain.FilterKey]Predicate{
	domain.FilterCategory:    matchCategory,
	domain.FilterNationality: matchNationality,
	domain.FilterGenre:       func(e *domain.Entry, v string) bool { return e.Genres.Has(v) },
	domain.FilterStudio:      func(e *domain.Entry, v string) bool { return e.Studios.Has(v) },
	domain.FilterAuthor:      func(e *domain.Entry, v string) bool { return e.Authors.Has(v) },
	domain.FilterSeason:      matchSeason,
	domain.FilterYear:        matchYear,
	domain.FilterMediaType:   func(e *domain.Entry, v string) bool { return e.MediaType != "" && e.MediaType == v },
}

// Apply returns the entries satisfying every active filter of q, in their
// original relative order. The search term of q is ignored.
func Apply(entries []*domain.Entry, q domain.QueryState) []*domain.Entry {
	keys := q.ActiveKeys()
	if len(keys) == 0 {
		return entries
	}

	out := make([]*domain.Entry, 0, len(entries))
	for _, e := range entries {
		if matchesAll(e, q, keys) {
			out = append(out, e)
		}
	}
	return out
}

func matchesAll(e *domain.Entry, q domain.QueryState, keys []domain.FilterKey) bool {
	for _, key := range keys {
		if !MatchesAny(e, key, q.Filter(key)) {
			return false
		}
	}
	return true
}

// MatchesAny evaluates one filter: true when values is empty, otherwise true
// when any value matches. Unknown keys never match.
func MatchesAny(e *domain.Entry, key domain.FilterKey, values []string) bool {
	if len(values) == 0 {
		return true
	}
	pred, ok := predicates[key]
	if !ok || e == nil {
		return false
	}
	for _, v := range values {
		if pred(e, v) {
			return true
		}
	}
	return false
}

func matchCategory(e *domain.Entry, v string) bool {
	if strings.TrimSpace(e.Title) == "" {
		return false
	}
	v = strings.ToUpper(strings.TrimSpace(v))
	if v != normalize.CategoryOther && (len(v) != 1 || v[0] < 'A' || v[0] > 'Z') {
		return false
	}
	return normalize.Category(e.Title) == v
}

func matchNationality(e *domain.Entry, v string) bool {
	return (e.Nationality != "" && e.Nationality == v) ||
		(e.DubNationality != "" && e.DubNationality == v)
}

func matchSeason(e *domain.Entry, v string) bool {
	s := e.Season()
	return s != "" && s == v
}

func matchYear(e *domain.Entry, v string) bool {
	want, err := strconv.Atoi(strings.TrimSpace(v))
	if err != nil {
		return false
	}
	got, ok := e.Year()
	return ok && got == want
}
