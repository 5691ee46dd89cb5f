package domain

import "testing"

func TestQueryState_SetFilter(t *testing.T) {
	var q QueryState
	if !q.IsEmpty() {
		t.Fatalf("zero value should be empty")
	}

	q.SetFilter(FilterGenre, "Comedy", " ", "")
	if got := q.Filter(FilterGenre); len(got) != 1 || got[0] != "Comedy" {
		t.Fatalf("Filter(genre) = %v", got)
	}

	q.SetFilter(FilterGenre)
	if q.HasFilters() {
		t.Fatalf("clearing the only filter should leave no constraints")
	}
}

func TestQueryState_ResetAndClone(t *testing.T) {
	var q QueryState
	q.SetFilter(FilterYear, "2020")
	q.SetSearchTerm("naruto")

	c := q.Clone()
	q.SetFilter(FilterYear, "2021")
	if got := c.Filter(FilterYear); got[0] != "2020" {
		t.Errorf("clone shares filter storage: %v", got)
	}

	q.Reset()
	if !q.IsEmpty() || q.SearchTerm() != "" {
		t.Errorf("Reset left state behind: %+v", q)
	}
	if c.IsEmpty() {
		t.Errorf("Reset must not affect clones")
	}
}

func TestQueryState_BlankTermIsNoSearch(t *testing.T) {
	var q QueryState
	q.SetSearchTerm("   ")
	if q.HasSearch() {
		t.Errorf("blank term should not count as a search")
	}
}

func TestParseFilterKey(t *testing.T) {
	tests := []struct {
		in   string
		want FilterKey
		ok   bool
	}{
		{"genre", FilterGenre, true},
		{"MediaType", FilterMediaType, true},
		{"media_type", FilterMediaType, true},
		{"nat", FilterNationality, true},
		{"letter", FilterCategory, true},
		{"rating", "", false},
	}
	for _, tt := range tests {
		got, ok := ParseFilterKey(tt.in)
		if got != tt.want || ok != tt.ok {
			t.Errorf("ParseFilterKey(%q) = (%q, %v), want (%q, %v)", tt.in, got, ok, tt.want, tt.ok)
		}
	}
}

func TestQueryState_ActiveKeysSorted(t *testing.T) {
	var q QueryState
	q.SetFilter(FilterYear, "2020")
	q.SetFilter(FilterGenre, "Action")
	keys := q.ActiveKeys()
	if len(keys) != 2 || keys[0] != FilterGenre || keys[1] != FilterYear {
		t.Errorf("ActiveKeys() = %v", keys)
	}
}
