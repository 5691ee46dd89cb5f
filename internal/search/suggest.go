package search

import (
	"sort"

	"github.com/lithammer/fuzzysearch/fuzzy"

	"github.com/mmcdole/anidex/internal/domain"
	"github.com/mmcdole/anidex/internal/normalize"
)

// maxSuggestDistance bounds the edit distance of the Levenshtein fallback
const maxSuggestDistance = 3

// Suggest returns up to n titles close to term, for "did you mean" hints
// after a search found nothing. Candidates whose title contains the term's
// characters in order come first (fewest extra characters first); when none
// do, titles within a small edit distance are offered instead.
func Suggest(entries []*domain.Entry, term string, n int) []string {
	key := normalize.SearchKey(term)
	if key == "" || n <= 0 || len(entries) == 0 {
		return nil
	}

	titles := make([]string, 0, len(entries))
	keys := make([]string, 0, len(entries))
	seen := make(map[string]bool, len(entries))
	for _, e := range entries {
		if e.Title == "" || seen[e.Title] {
			continue
		}
		seen[e.Title] = true
		titles = append(titles, e.Title)
		keys = append(keys, normalize.SearchKey(e.Title))
	}

	ranks := fuzzy.RankFindNormalizedFold(key, keys)
	if len(ranks) > 0 {
		sort.Stable(ranks)
		out := make([]string, 0, min(n, len(ranks)))
		for _, r := range ranks {
			if len(out) == n {
				break
			}
			out = append(out, titles[r.OriginalIndex])
		}
		return out
	}

	type candidate struct {
		title string
		dist  int
	}
	var cands []candidate
	for i, k := range keys {
		if d := fuzzy.LevenshteinDistance(key, k); d <= maxSuggestDistance {
			cands = append(cands, candidate{title: titles[i], dist: d})
		}
	}
	sort.SliceStable(cands, func(i, j int) bool { return cands[i].dist < cands[j].dist })

	out := make([]string, 0, min(n, len(cands)))
	for _, c := range cands {
		if len(out) == n {
			break
		}
		out = append(out, c.title)
	}
	return out
}
