// Package search ranks catalog entries against a free-text term.
//
// Matching is a plain substring test on normalized keys (see
// normalize.SearchKey). Each entry scores the highest priority among its
// matching fields; entries with no matching field are dropped.
package search

import (
	"sort"
	"strings"

	"github.com/mmcdole/anidex/internal/domain"
	"github.com/mmcdole/anidex/internal/normalize"
)

// Field priorities
const (
	PriorityTitle    = 4
	PrioritySynonym  = 3
	PriorityEnglish  = 2
	PriorityJapanese = 1
)

// Result is an entry with its match score
type Result struct {
	Entry *domain.Entry
	Score int
}

// field is one normalized search target
type field struct {
	key      string
	priority int
}

// Index caches normalized search keys per entry so repeated searches over
// the same collection do not renormalize every title.
type Index struct {
	fields map[*domain.Entry][]field
}

// NewIndex precomputes search keys for entries
func NewIndex(entries []*domain.Entry) *Index {
	idx := &Index{fields: make(map[*domain.Entry][]field, len(entries))}
	for _, e := range entries {
		idx.fields[e] = buildFields(e)
	}
	return idx
}

// Len returns the number of indexed entries
func (idx *Index) Len() int {
	if idx == nil {
		return 0
	}
	return len(idx.fields)
}

func (idx *Index) fieldsOf(e *domain.Entry) []field {
	if idx != nil {
		if f, ok := idx.fields[e]; ok {
			return f
		}
	}
	return buildFields(e)
}

// buildFields lists the entry's searchable fields in priority order,
// skipping absent ones.
func buildFields(e *domain.Entry) []field {
	var fields []field
	add := func(s string, p int) {
		if strings.TrimSpace(s) == "" {
			return
		}
		if k := normalize.SearchKey(s); k != "" {
			fields = append(fields, field{key: k, priority: p})
		}
	}

	add(e.Title, PriorityTitle)
	if alt := e.AlternateTitles; alt != nil {
		for _, s := range alt.Synonyms {
			add(s, PrioritySynonym)
		}
		add(alt.En, PriorityEnglish)
		add(alt.Ja, PriorityJapanese)
	}
	return fields
}

// Search returns the entries matching term, best first. Equal scores keep
// their original relative order. A blank term returns entries unchanged.
func Search(entries []*domain.Entry, term string) []*domain.Entry {
	return (*Index)(nil).Search(entries, term)
}

// Search ranks like the package-level Search, reading cached keys where available
func (idx *Index) Search(entries []*domain.Entry, term string) []*domain.Entry {
	key := normalize.SearchKey(term)
	if key == "" {
		return entries
	}

	ranked := idx.rank(entries, key)
	out := make([]*domain.Entry, len(ranked))
	for i, r := range ranked {
		out[i] = r.Entry
	}
	return out
}

// Rank is like Search but keeps the scores. A blank term yields nil.
func (idx *Index) Rank(entries []*domain.Entry, term string) []Result {
	key := normalize.SearchKey(term)
	if key == "" {
		return nil
	}
	return idx.rank(entries, key)
}

func (idx *Index) rank(entries []*domain.Entry, key string) []Result {
	results := make([]Result, 0)
	for _, e := range entries {
		if score := scoreFields(idx.fieldsOf(e), key); score > 0 {
			results = append(results, Result{Entry: e, Score: score})
		}
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].Score > results[j].Score
	})
	return results
}

// Score returns the best priority among fields of e containing term, 0 if none
func Score(e *domain.Entry, term string) int {
	key := normalize.SearchKey(term)
	if key == "" {
		return 0
	}
	return scoreFields(buildFields(e), key)
}

func scoreFields(fields []field, key string) int {
	best := 0
	for _, f := range fields {
		if f.priority > best && strings.Contains(f.key, key) {
			best = f.priority
		}
	}
	return best
}
