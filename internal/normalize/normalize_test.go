package normalize

import "testing"

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Pokémon", "pokemon"},
		{"ÁÉÍÓÚ çã", "aeiou ca"},
		{"Re:Zero", "re:zero"},
		{"NARUTO", "naruto"},
	}
	for _, tt := range tests {
		if got := Normalize(tt.in); got != tt.want {
			t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestSearchKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"", ""},
		{"Re:Zero", "rezero"},
		{"re zero", "rezero"},
		{"Re-Zero_kara. Hajimeru", "rezerokarahajimeru"},
		{"  Café\tLatte ", "cafelatte"},
	}
	for _, tt := range tests {
		if got := SearchKey(tt.in); got != tt.want {
			t.Errorf("SearchKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestCategory(t *testing.T) {
	tests := []struct {
		title string
		want  string
	}{
		{"Akira", "A"},
		{"akira", "A"},
		{"Ángel Beats!", "A"},
		{"  Bleach", "B"},
		{"86", "#"},
		{".hack//Sign", "#"},
		{"進撃の巨人", "#"},
		{"", "#"},
		{"   ", "#"},
	}
	for _, tt := range tests {
		if got := Category(tt.title); got != tt.want {
			t.Errorf("Category(%q) = %q, want %q", tt.title, got, tt.want)
		}
	}
}

func TestCategories(t *testing.T) {
	cats := Categories()
	if len(cats) != 27 || cats[0] != "#" || cats[1] != "A" || cats[26] != "Z" {
		t.Errorf("Categories() = %v", cats)
	}
}
