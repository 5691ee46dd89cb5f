// Package normalize canonicalizes strings for case and accent insensitive
// comparison in search and category bucketing.
package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// combiningDiacriticals is the Combining Diacritical Marks block (U+0300–U+036F).
// Other nonspacing marks (e.g. kana voicing marks) are kept so that distinct
// Japanese titles do not collapse into each other.
var combiningDiacriticals = &unicode.RangeTable{
	R16: []unicode.Range16{{Lo: 0x0300, Hi: 0x036f, Stride: 1}},
}

// searchPunctuation is removed from search keys so "Re:Zero", "re zero"
// and "re-zero" compare equal.
var searchPunctuation = map[rune]bool{
	':': true,
	'-': true,
	'_': true,
	'.': true,
}

// Normalize lowercases s, decomposes it and strips combining diacritics.
// Never fails; on a transform error the lowercased input is returned.
func Normalize(s string) string {
	if s == "" {
		return ""
	}
	lower := strings.ToLower(s)
	t := transform.Chain(norm.NFD, runes.Remove(runes.In(combiningDiacriticals)))
	out, _, err := transform.String(t, lower)
	if err != nil {
		return lower
	}
	return out
}

// SearchKey is Normalize followed by removal of separators and whitespace
func SearchKey(s string) string {
	n := Normalize(s)
	if n == "" {
		return ""
	}
	var b strings.Builder
	b.Grow(len(n))
	for _, r := range n {
		if unicode.IsSpace(r) || searchPunctuation[r] {
			continue
		}
		b.WriteRune(r)
	}
	return b.String()
}

// CategoryOther is the bucket for titles that do not start with A–Z
const CategoryOther = "#"

// Categories returns the category buckets in menu order: "#", then A–Z
func Categories() []string {
	cats := make([]string, 0, 27)
	cats = append(cats, CategoryOther)
	for c := 'A'; c <= 'Z'; c++ {
		cats = append(cats, string(c))
	}
	return cats
}

// Category returns the alphabetical bucket of a title: the first character
// after leading whitespace, accent-stripped and uppercased, or "#" when that
// is not an ASCII letter.
func Category(title string) string {
	title = strings.TrimLeftFunc(title, unicode.IsSpace)
	if title == "" {
		return CategoryOther
	}
	n := Normalize(title)
	for _, r := range n {
		r = unicode.ToUpper(r)
		if r >= 'A' && r <= 'Z' {
			return string(r)
		}
		return CategoryOther
	}
	return CategoryOther
}
