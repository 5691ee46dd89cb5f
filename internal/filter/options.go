package filter

import (
	"sort"
	"strconv"

	"github.com/mmcdole/anidex/internal/domain"
	"github.com/mmcdole/anidex/internal/normalize"
)

// Option is one selectable value of a filter
type Option struct {
	Value string
	Label string
	Count int
}

var labels = map[domain.FilterKey]map[string]string{
	domain.FilterSeason: {
		domain.SeasonWinter: "Winter",
		domain.SeasonSpring: "Spring",
		domain.SeasonSummer: "Summer",
		domain.SeasonFall:   "Fall",
	},
	domain.FilterMediaType: {
		"tv":      "TV",
		"movie":   "Movie",
		"ova":     "OVA",
		"ona":     "ONA",
		"special": "Special",
		"manga":   "Manga",
	},
	domain.FilterNationality: {
		"JP": "Japan",
		"CN": "China",
		"KR": "Korea",
		"BR": "Brazil",
		"US": "United States",
	},
}

var seasonOrder = map[string]int{
	domain.SeasonWinter: 0,
	domain.SeasonSpring: 1,
	domain.SeasonSummer: 2,
	domain.SeasonFall:   3,
}

// Label returns the display label for a filter value
func Label(key domain.FilterKey, value string) string {
	if l, ok := labels[key][value]; ok {
		return l
	}
	return value
}

// Options lists the distinct values of a filter present in entries, with
// the number of entries carrying each. Years sort newest first, seasons in
// calendar order, everything else alphabetically.
func Options(entries []*domain.Entry, key domain.FilterKey) []Option {
	counts := make(map[string]int)
	var order []string
	add := func(v string) {
		if v == "" {
			return
		}
		if _, seen := counts[v]; !seen {
			order = append(order, v)
		}
		counts[v]++
	}

	for _, e := range entries {
		for _, v := range extract(e, key) {
			add(v)
		}
	}

	opts := make([]Option, len(order))
	for i, v := range order {
		opts[i] = Option{Value: v, Label: Label(key, v), Count: counts[v]}
	}

	sort.SliceStable(opts, func(i, j int) bool {
		return less(key, opts[i].Value, opts[j].Value)
	})
	return opts
}

// extract returns the distinct filter values one entry contributes
func extract(e *domain.Entry, key domain.FilterKey) []string {
	switch key {
	case domain.FilterCategory:
		if e.Title == "" {
			return nil
		}
		return []string{normalize.Category(e.Title)}
	case domain.FilterGenre:
		return uniqueNames(e.Genres)
	case domain.FilterStudio:
		return uniqueNames(e.Studios)
	case domain.FilterAuthor:
		return uniqueNames(e.Authors)
	case domain.FilterYear:
		if y, ok := e.Year(); ok {
			return []string{strconv.Itoa(y)}
		}
	case domain.FilterSeason:
		if s := e.Season(); s != "" {
			return []string{s}
		}
	case domain.FilterMediaType:
		if e.MediaType != "" {
			return []string{e.MediaType}
		}
	case domain.FilterNationality:
		if e.Nationality != "" && e.DubNationality != "" && e.Nationality != e.DubNationality {
			return []string{e.Nationality, e.DubNationality}
		}
		if e.Nationality != "" {
			return []string{e.Nationality}
		}
		if e.DubNationality != "" {
			return []string{e.DubNationality}
		}
	}
	return nil
}

func uniqueNames(tags domain.Tags) []string {
	seen := make(map[string]bool, len(tags))
	var out []string
	for _, t := range tags {
		if t.Name == "" || seen[t.Name] {
			continue
		}
		seen[t.Name] = true
		out = append(out, t.Name)
	}
	return out
}

func less(key domain.FilterKey, a, b string) bool {
	switch key {
	case domain.FilterYear:
		ai, _ := strconv.Atoi(a)
		bi, _ := strconv.Atoi(b)
		return ai > bi
	case domain.FilterSeason:
		ao, aok := seasonOrder[a]
		bo, bok := seasonOrder[b]
		if aok && bok {
			return ao < bo
		}
		if aok != bok {
			return aok
		}
		return a < b
	case domain.FilterCategory:
		// "#" first, then A–Z
		if a == normalize.CategoryOther || b == normalize.CategoryOther {
			return a == normalize.CategoryOther && b != normalize.CategoryOther
		}
		return a < b
	default:
		na, nb := normalize.Normalize(a), normalize.Normalize(b)
		if na != nb {
			return na < nb
		}
		return a < b
	}
}
