package domain

import (
	"sort"
	"strings"
)

// FilterKey names one independent filter predicate
type FilterKey string

const (
	FilterCategory    FilterKey = "category"
	FilterNationality FilterKey = "nationality"
	FilterGenre       FilterKey = "genre"
	FilterStudio      FilterKey = "studio"
	FilterSeason      FilterKey = "season"
	FilterYear        FilterKey = "year"
	FilterMediaType   FilterKey = "mediaType"
	FilterAuthor      FilterKey = "author"
)

// FilterKeys returns every known filter key in display order
func FilterKeys() []FilterKey {
	return []FilterKey{
		FilterCategory,
		FilterGenre,
		FilterStudio,
		FilterYear,
		FilterSeason,
		FilterMediaType,
		FilterNationality,
		FilterAuthor,
	}
}

// filterAliases maps the names used by older exports and the CLI to keys
var filterAliases = map[string]FilterKey{
	"letter":     FilterCategory,
	"nat":        FilterNationality,
	"media_type": FilterMediaType,
	"type":       FilterMediaType,
	"authors":    FilterAuthor,
}

// ParseFilterKey resolves a key name or alias (case-insensitive)
func ParseFilterKey(s string) (FilterKey, bool) {
	s = strings.TrimSpace(s)
	for _, k := range FilterKeys() {
		if strings.EqualFold(string(k), s) {
			return k, true
		}
	}
	if k, ok := filterAliases[strings.ToLower(s)]; ok {
		return k, true
	}
	return "", false
}

// Label returns a human readable name for the key
func (k FilterKey) Label() string {
	switch k {
	case FilterCategory:
		return "Letter"
	case FilterNationality:
		return "Nationality"
	case FilterGenre:
		return "Genre"
	case FilterStudio:
		return "Studio"
	case FilterSeason:
		return "Season"
	case FilterYear:
		return "Year"
	case FilterMediaType:
		return "Type"
	case FilterAuthor:
		return "Author"
	default:
		return string(k)
	}
}

// View is the presentation context the result set is composed for
type View int

const (
	// ViewBrowse lists the full (filtered) catalog
	ViewBrowse View = iota
	// ViewHome is the landing page: featured entry plus a random sample
	ViewHome
)

// String returns the view name
func (v View) String() string {
	if v == ViewHome {
		return "home"
	}
	return "browse"
}

// QueryState is the active combination of filters and search term.
// The zero value is an empty query.
type QueryState struct {
	filters map[FilterKey][]string
	term    string
}

// SetFilter replaces the values of one filter. Blank values are dropped;
// no remaining values removes the constraint.
func (q *QueryState) SetFilter(key FilterKey, values ...string) {
	var kept []string
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			kept = append(kept, v)
		}
	}
	if len(kept) == 0 {
		delete(q.filters, key)
		return
	}
	if q.filters == nil {
		q.filters = make(map[FilterKey][]string)
	}
	q.filters[key] = kept
}

// Filter returns the selected values of one filter (nil = no constraint)
func (q QueryState) Filter(key FilterKey) []string {
	return q.filters[key]
}

// ActiveKeys returns the keys with a constraint, sorted for stable iteration
func (q QueryState) ActiveKeys() []FilterKey {
	keys := make([]FilterKey, 0, len(q.filters))
	for k := range q.filters {
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// HasFilters reports whether any filter is active
func (q QueryState) HasFilters() bool {
	return len(q.filters) > 0
}

// SetSearchTerm replaces the free-text term
func (q *QueryState) SetSearchTerm(term string) {
	q.term = term
}

// SearchTerm returns the free-text term as entered
func (q QueryState) SearchTerm() string {
	return q.term
}

// HasSearch reports whether a non-blank term is set
func (q QueryState) HasSearch() bool {
	return strings.TrimSpace(q.term) != ""
}

// IsEmpty reports whether neither filters nor search are active
func (q QueryState) IsEmpty() bool {
	return !q.HasFilters() && !q.HasSearch()
}

// Reset clears every field back to the empty state
func (q *QueryState) Reset() {
	q.filters = nil
	q.term = ""
}

// Clone returns an independent copy
func (q QueryState) Clone() QueryState {
	c := QueryState{term: q.term}
	if len(q.filters) > 0 {
		c.filters = make(map[FilterKey][]string, len(q.filters))
		for k, v := range q.filters {
			c.filters[k] = append([]string(nil), v...)
		}
	}
	return c
}
