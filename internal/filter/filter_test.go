package filter

import (
	"testing"

	"github.com/mmcdole/anidex/internal/domain"
)

func entry(id, title string) *domain.Entry {
	return &domain.Entry{ID: domain.ID(id), Title: title}
}

func tags(names ...string) domain.Tags {
	ts := make(domain.Tags, len(names))
	for i, n := range names {
		ts[i] = domain.Tag{Name: n}
	}
	return ts
}

func query(kv ...string) domain.QueryState {
	var q domain.QueryState
	for i := 0; i+1 < len(kv); i += 2 {
		q.SetFilter(domain.FilterKey(kv[i]), kv[i+1])
	}
	return q
}

func idsOf(entries []*domain.Entry) []domain.ID {
	out := make([]domain.ID, len(entries))
	for i, e := range entries {
		out[i] = e.ID
	}
	return out
}

func sameIDs(got []*domain.Entry, want ...domain.ID) bool {
	if len(got) != len(want) {
		return false
	}
	for i := range want {
		if got[i].ID != want[i] {
			return false
		}
	}
	return true
}

func TestApply_NoFiltersIsIdentity(t *testing.T) {
	entries := []*domain.Entry{entry("1", "B"), entry("2", "A"), entry("3", "")}
	got := Apply(entries, domain.QueryState{})
	if !sameIDs(got, "1", "2", "3") {
		t.Fatalf("Apply with no filters = %v", idsOf(got))
	}
}

func TestApply_GenreAndYear(t *testing.T) {
	a := entry("a", "Alpha")
	a.Genres = tags("Comedy")
	a.StartSeason = &domain.StartSeason{Season: "spring", Year: 2019}

	b := entry("b", "Beta")
	b.Genres = tags("Comedy", "Drama")
	b.StartSeason = &domain.StartSeason{Season: "fall", Year: 2020}

	c := entry("c", "Gamma")
	c.Genres = tags("Drama")
	c.StartSeason = &domain.StartSeason{Season: "fall", Year: 2020}

	got := Apply([]*domain.Entry{a, b, c}, query("genre", "Comedy", "year", "2020"))
	if !sameIDs(got, "b") {
		t.Fatalf("got %v, want [b]", idsOf(got))
	}
}

func TestApply_Category(t *testing.T) {
	entries := []*domain.Entry{
		entry("1", "Akira"),
		entry("2", "86"),
		entry("3", "ángel"),
		entry("4", "Bleach"),
		entry("5", "!Exclaim"),
		entry("6", ""),
	}

	tests := []struct {
		value string
		want  []domain.ID
	}{
		{"A", []domain.ID{"1", "3"}},
		{"a", []domain.ID{"1", "3"}},
		{"#", []domain.ID{"2", "5"}},
		{"B", []domain.ID{"4"}},
		{"Z", nil},
		{"AB", nil},
	}
	for _, tt := range tests {
		t.Run(tt.value, func(t *testing.T) {
			got := Apply(entries, query("category", tt.value))
			if !sameIDs(got, tt.want...) {
				t.Errorf("category %q = %v, want %v", tt.value, idsOf(got), tt.want)
			}
		})
	}
}

func TestApply_MissingFieldNeverMatches(t *testing.T) {
	bare := entry("bare", "Bare")
	tests := []struct {
		key, value string
	}{
		{"season", "fall"},
		{"year", "2020"},
		{"mediaType", "tv"},
		{"nationality", "JP"},
		{"genre", "Action"},
		{"studio", "Madhouse"},
		{"author", "Someone"},
	}
	for _, tt := range tests {
		if got := Apply([]*domain.Entry{bare}, query(tt.key, tt.value)); len(got) != 0 {
			t.Errorf("%s=%s matched an entry without that field", tt.key, tt.value)
		}
	}
}

func TestApply_InvalidValuesSilentlyMatchNothing(t *testing.T) {
	e := entry("1", "Akira")
	e.StartSeason = &domain.StartSeason{Season: "summer", Year: 1988}

	if got := Apply([]*domain.Entry{e}, query("year", "nineteen")); len(got) != 0 {
		t.Errorf("non-numeric year should never match")
	}
	if got := Apply([]*domain.Entry{e}, query("rating", "10")); len(got) != 0 {
		t.Errorf("unknown key should never match")
	}
	if got := Apply([]*domain.Entry{e}, query("year", "1988")); len(got) != 1 {
		t.Errorf("numeric year should match")
	}
}

func TestApply_Nationality(t *testing.T) {
	jp := entry("jp", "A")
	jp.Nationality = "JP"
	dub := entry("dub", "B")
	dub.Nationality = "KR"
	dub.DubNationality = "BR"

	got := Apply([]*domain.Entry{jp, dub}, query("nationality", "BR"))
	if !sameIDs(got, "dub") {
		t.Errorf("dub nationality should match, got %v", idsOf(got))
	}
}

func TestApply_MultiValue(t *testing.T) {
	a := entry("a", "A")
	a.Studios = tags("Bones")
	a.MediaType = "tv"
	b := entry("b", "B")
	b.Studios = tags("Madhouse")
	b.MediaType = "movie"
	c := entry("c", "C")
	c.Studios = tags("Sunrise")
	c.MediaType = "tv"

	var q domain.QueryState
	q.SetFilter(domain.FilterStudio, "Bones", "Madhouse")
	got := Apply([]*domain.Entry{a, b, c}, q)
	if !sameIDs(got, "a", "b") {
		t.Fatalf("studio set = %v", idsOf(got))
	}

	q.SetFilter(domain.FilterMediaType, "tv", "ova")
	got = Apply([]*domain.Entry{a, b, c}, q)
	if !sameIDs(got, "a") {
		t.Fatalf("studio set AND type set = %v", idsOf(got))
	}
}

func TestApply_YearFromStartDate(t *testing.T) {
	m := entry("m", "Manga")
	m.StartDate = "2004-07-01"
	if got := Apply([]*domain.Entry{m}, query("year", "2004")); len(got) != 1 {
		t.Errorf("year should fall back to start_date")
	}
}

func TestApply_DoesNotMutate(t *testing.T) {
	e := entry("1", "Akira")
	e.Genres = tags("Action")
	before := *e
	Apply([]*domain.Entry{e}, query("genre", "Action", "category", "A"))
	if e.Title != before.Title || e.IsFeatured != before.IsFeatured || len(e.Genres) != 1 {
		t.Errorf("entry mutated by Apply")
	}
}
