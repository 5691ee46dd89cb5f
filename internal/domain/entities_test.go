package domain

import (
	"encoding/json"
	"testing"
)

func TestEntry_UnmarshalLooseShapes(t *testing.T) {
	raw := `{
		"id": 5114,
		"title": "Fullmetal Alchemist: Brotherhood",
		"alternative_titles": {"synonyms": ["FMA:B"], "en": "Fullmetal Alchemist: Brotherhood", "ja": "鋼の錬金術師"},
		"genres": [{"id": 1, "name": "Action"}, "Drama"],
		"authors": "Hiromu Arakawa",
		"start_season": {"season": "spring", "year": 2009},
		"url": "?path=/FMA"
	}`

	var e Entry
	if err := json.Unmarshal([]byte(raw), &e); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if e.ID != "5114" {
		t.Errorf("ID = %q, want 5114", e.ID)
	}
	if got := e.Genres.Names(); len(got) != 2 || got[0] != "Action" || got[1] != "Drama" {
		t.Errorf("Genres = %v", got)
	}
	if !e.Genres.Has("Drama") || e.Genres.Has("drama") {
		t.Errorf("Has should match exact names only")
	}
	if len(e.Authors) != 1 || e.Authors[0].Name != "Hiromu Arakawa" {
		t.Errorf("Authors = %v", e.Authors)
	}
	if e.AlternateTitles == nil || len(e.AlternateTitles.Synonyms) != 1 {
		t.Errorf("AlternateTitles = %+v", e.AlternateTitles)
	}
	if !e.IsAvailable() {
		t.Errorf("entry with relative url should be available")
	}
}

func TestID_Unmarshal(t *testing.T) {
	tests := []struct {
		in   string
		want ID
	}{
		{`"abc"`, "abc"},
		{`42`, "42"},
		{`null`, ""},
	}
	for _, tt := range tests {
		var id ID
		if err := json.Unmarshal([]byte(tt.in), &id); err != nil {
			t.Fatalf("%s: unexpected error: %v", tt.in, err)
		}
		if id != tt.want {
			t.Errorf("%s: got %q, want %q", tt.in, id, tt.want)
		}
	}
}

func TestEntry_IsAvailable(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"", false},
		{"#", false},
		{" # ", false},
		{"https://example.com/a", true},
		{"?path=/x", true},
	}
	for _, tt := range tests {
		e := Entry{URL: tt.url}
		if got := e.IsAvailable(); got != tt.want {
			t.Errorf("IsAvailable(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestEntry_Year(t *testing.T) {
	tests := []struct {
		name   string
		entry  Entry
		want   int
		wantOK bool
	}{
		{"season", Entry{StartSeason: &StartSeason{Season: "fall", Year: 2020}}, 2020, true},
		{"start date fallback", Entry{StartDate: "1999-04-01"}, 1999, true},
		{"bad start date", Entry{StartDate: "soon"}, 0, false},
		{"nothing", Entry{}, 0, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := tt.entry.Year()
			if got != tt.want || ok != tt.wantOK {
				t.Errorf("Year() = (%d, %v), want (%d, %v)", got, ok, tt.want, tt.wantOK)
			}
		})
	}
}
