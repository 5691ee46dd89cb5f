package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"strings"
)

// UnavailableURL is the sentinel the catalog exporter writes for entries
// that have no resource behind them.
const UnavailableURL = "#"

// Season names used by StartSeason.Season
const (
	SeasonWinter = "winter"
	SeasonSpring = "spring"
	SeasonSummer = "summer"
	SeasonFall   = "fall"
)

// ID is the opaque identifier of an entry. Exporters emit it either as a
// JSON number or a string; both decode to the same textual form.
type ID string

// UnmarshalJSON accepts strings, numbers and null
func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*id = ""
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*id = ID(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*id = ID(n.String())
	return nil
}

// String returns the textual form of the ID
func (id ID) String() string { return string(id) }

// Tag is a named label (genre, studio, author).
type Tag struct {
	ID   ID     `json:"id,omitempty"`
	Name string `json:"name"`
}

// UnmarshalJSON accepts either {"name": "..."} or a bare string
func (t *Tag) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		*t = Tag{Name: s}
		return nil
	}
	type plain Tag
	var p plain
	if err := json.Unmarshal(data, &p); err != nil {
		return err
	}
	*t = Tag(p)
	return nil
}

// Tags is an ordered tag list. Order is kept for display only.
type Tags []Tag

// UnmarshalJSON accepts a list of tags or a single string
// (some manga exports write "authors": "Name").
func (ts *Tags) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	switch {
	case len(data) == 0 || bytes.Equal(data, []byte("null")):
		*ts = nil
		return nil
	case data[0] == '"':
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		if s == "" {
			*ts = nil
			return nil
		}
		*ts = Tags{{Name: s}}
		return nil
	}
	var list []Tag
	if err := json.Unmarshal(data, &list); err != nil {
		return err
	}
	*ts = list
	return nil
}

// Has reports whether a tag with exactly this name is present
func (ts Tags) Has(name string) bool {
	for _, t := range ts {
		if t.Name == name {
			return true
		}
	}
	return false
}

// Names returns tag names in order
func (ts Tags) Names() []string {
	names := make([]string, 0, len(ts))
	for _, t := range ts {
		names = append(names, t.Name)
	}
	return names
}

// AlternateTitles holds extra search targets that are not displayed by default
type AlternateTitles struct {
	Synonyms []string `json:"synonyms,omitempty"`
	En       string   `json:"en,omitempty"`
	Ja       string   `json:"ja,omitempty"`
}

// StartSeason is the airing season of an entry
type StartSeason struct {
	Season string `json:"season"`
	Year   int    `json:"year"`
}

// Entry is one catalog item (anime, manga, ...).
type Entry struct {
	ID              ID               `json:"id"`
	Title           string           `json:"title"`
	AlternateTitles *AlternateTitles `json:"alternative_titles,omitempty"`
	Genres          Tags             `json:"genres,omitempty"`
	Studios         Tags             `json:"studios,omitempty"`
	Authors         Tags             `json:"authors,omitempty"`
	Nationality     string           `json:"nat,omitempty"`
	DubNationality  string           `json:"dub_nat,omitempty"`
	MediaType       string           `json:"media_type,omitempty"`
	StartSeason     *StartSeason     `json:"start_season,omitempty"`
	StartDate       string           `json:"start_date,omitempty"`
	NumEpisodes     int              `json:"num_episodes,omitempty"`
	Synopsis        string           `json:"synopsis,omitempty"`
	Image           string           `json:"image,omitempty"`
	URL             string           `json:"url,omitempty"`
	FallbackURL     string           `json:"fallbackUrl,omitempty"`

	// IsFeatured is set by composition on the landing-page highlight.
	// It is not part of the source data.
	IsFeatured bool `json:"-"`
}

// IsAvailable reports whether the entry points at a resource
func (e *Entry) IsAvailable() bool {
	u := strings.TrimSpace(e.URL)
	return u != "" && u != UnavailableURL
}

// Year returns the start year, falling back to the YYYY prefix of StartDate
// (manga exports carry no start_season).
func (e *Entry) Year() (int, bool) {
	if e.StartSeason != nil && e.StartSeason.Year != 0 {
		return e.StartSeason.Year, true
	}
	if len(e.StartDate) >= 4 {
		if y, err := strconv.Atoi(e.StartDate[:4]); err == nil {
			return y, true
		}
	}
	return 0, false
}

// Season returns the start season name, or "" when unknown
func (e *Entry) Season() string {
	if e.StartSeason == nil {
		return ""
	}
	return e.StartSeason.Season
}

// Description returns secondary info for display (e.g. "TV · 2020 · 12 ep")
func (e *Entry) Description() string {
	var parts []string
	if e.MediaType != "" {
		parts = append(parts, strings.ToUpper(e.MediaType))
	}
	if y, ok := e.Year(); ok {
		parts = append(parts, strconv.Itoa(y))
	}
	if e.NumEpisodes > 0 {
		parts = append(parts, strconv.Itoa(e.NumEpisodes)+" ep")
	}
	return strings.Join(parts, " · ")
}
