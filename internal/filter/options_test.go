package filter

import (
	"testing"

	"github.com/mmcdole/anidex/internal/domain"
)

func values(opts []Option) []string {
	out := make([]string, len(opts))
	for i, o := range opts {
		out[i] = o.Value
	}
	return out
}

func equalStrings(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

func TestOptions(t *testing.T) {
	a := entry("a", "Zeta")
	a.Genres = tags("Drama", "Action", "Drama")
	a.StartSeason = &domain.StartSeason{Season: "fall", Year: 2018}
	a.MediaType = "tv"

	b := entry("b", "Alpha")
	b.Genres = tags("Action")
	b.StartSeason = &domain.StartSeason{Season: "winter", Year: 2021}
	b.MediaType = "movie"

	c := entry("c", "1999")
	c.StartSeason = &domain.StartSeason{Season: "summer", Year: 2018}

	entries := []*domain.Entry{a, b, c}

	tests := []struct {
		key  domain.FilterKey
		want []string
	}{
		{domain.FilterGenre, []string{"Action", "Drama"}},
		{domain.FilterYear, []string{"2021", "2018"}},
		{domain.FilterSeason, []string{"winter", "summer", "fall"}},
		{domain.FilterMediaType, []string{"movie", "tv"}},
		{domain.FilterCategory, []string{"#", "A", "Z"}},
		{domain.FilterStudio, []string{}},
	}
	for _, tt := range tests {
		t.Run(string(tt.key), func(t *testing.T) {
			got := values(Options(entries, tt.key))
			if !equalStrings(got, tt.want) {
				t.Errorf("Options(%s) = %v, want %v", tt.key, got, tt.want)
			}
		})
	}
}

func TestOptions_CountsAndLabels(t *testing.T) {
	a := entry("a", "A")
	a.Genres = tags("Action", "Action")
	b := entry("b", "B")
	b.Genres = tags("Action")
	b.MediaType = "ova"

	opts := Options([]*domain.Entry{a, b}, domain.FilterGenre)
	if len(opts) != 1 || opts[0].Count != 2 {
		t.Fatalf("Options(genre) = %+v, want one option counted twice", opts)
	}

	types := Options([]*domain.Entry{a, b}, domain.FilterMediaType)
	if len(types) != 1 || types[0].Label != "OVA" {
		t.Errorf("Options(mediaType) = %+v", types)
	}
	if Label(domain.FilterSeason, "fall") != "Fall" || Label(domain.FilterGenre, "Mecha") != "Mecha" {
		t.Errorf("Label mapping mismatch")
	}
}
