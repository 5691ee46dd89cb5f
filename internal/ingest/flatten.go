package ingest

import (
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/mmcdole/anidex/internal/domain"
)

// Strategy selects how the featured entry is found when the payload has no
// reserved history bucket.
type Strategy string

const (
	// StrategyMarker picks the first entry carrying the marker genre
	StrategyMarker Strategy = "marker"
	// StrategyLast picks the last entry of the flattened list (older exports)
	StrategyLast Strategy = "last"
)

// DefaultMarker is the genre label that flags the featured entry
const DefaultMarker = "history"

// ParseStrategy maps a config value to a Strategy, defaulting to StrategyMarker
func ParseStrategy(s string) Strategy {
	if Strategy(strings.ToLower(strings.TrimSpace(s))) == StrategyLast {
		return StrategyLast
	}
	return StrategyMarker
}

// Options tunes Flatten
type Options struct {
	Strategy Strategy
	Marker   string
}

// Collection is the canonical in-memory catalog
type Collection struct {
	Entries  []*domain.Entry
	Featured *domain.Entry

	Shape        Shape
	BucketCounts map[string]int
	Skipped      int
}

// entryNamespace seeds synthetic IDs for entries exported without one
var entryNamespace = uuid.NewSHA1(uuid.NameSpaceURL, []byte("https://github.com/mmcdole/anidex/entry"))

// Parse decodes and flattens a catalog document
func Parse(data []byte, opts Options) (Collection, error) {
	p, err := Decode(data)
	if err != nil {
		return Collection{}, err
	}
	return Flatten(p, opts), nil
}

// Flatten resolves a payload into a single ordered collection.
// A featured entry that is not part of the list is prepended to it.
func Flatten(p RawPayload, opts Options) Collection {
	col := Collection{Shape: p.Shape, Skipped: p.Skipped}

	switch p.Shape {
	case ShapeBuckets:
		col.BucketCounts = make(map[string]int)
		seen := make(map[string]int)
		for _, key := range BucketKeys() {
			bucket, ok := p.Buckets[key]
			if !ok {
				continue
			}
			col.BucketCounts[key] = len(bucket)
			col.Entries = appendEntries(col.Entries, seen, bucket)
		}
		if len(p.History) > 0 {
			// A fresh counter so an id-less history entry gets the same
			// ID as its first copy in the letter buckets
			history := appendEntries(nil, make(map[string]int), p.History[:1])
			col.Featured = history[0]
		}
	default:
		col.Entries = appendEntries(nil, make(map[string]int), p.List)
	}

	if col.Featured == nil {
		col.Featured = pickFeatured(col.Entries, opts)
	}

	if col.Featured != nil {
		if existing, ok := col.ByID()[col.Featured.ID]; ok {
			col.Featured = existing
		} else {
			col.Entries = append([]*domain.Entry{col.Featured}, col.Entries...)
		}
	}

	return col
}

// appendEntries copies entries into dst, assigning synthetic IDs where
// missing. seen counts titles already given an ID so that id-less entries
// sharing a title stay distinct.
func appendEntries(dst []*domain.Entry, seen map[string]int, src []domain.Entry) []*domain.Entry {
	for i := range src {
		e := src[i]
		if strings.TrimSpace(string(e.ID)) == "" {
			title := strings.TrimSpace(e.Title)
			e.ID = syntheticID(title, seen[title])
			seen[title]++
		}
		dst = append(dst, &e)
	}
	return dst
}

// syntheticID derives an ID from the title and its occurrence among
// id-less entries, independent of the bucket the entry was found in
func syntheticID(title string, occurrence int) domain.ID {
	name := fmt.Sprintf("%s#%d", title, occurrence)
	return domain.ID(uuid.NewSHA1(entryNamespace, []byte(name)).String())
}

func pickFeatured(entries []*domain.Entry, opts Options) *domain.Entry {
	if len(entries) == 0 {
		return nil
	}

	if opts.Strategy == StrategyLast {
		return entries[len(entries)-1]
	}

	marker := strings.ToLower(strings.TrimSpace(opts.Marker))
	if marker == "" {
		marker = DefaultMarker
	}
	for _, e := range entries {
		for _, g := range e.Genres {
			if strings.Contains(strings.ToLower(g.Name), marker) {
				return e
			}
		}
	}
	return nil
}

// ByID indexes the collection. Later duplicates do not replace earlier ones.
func (c Collection) ByID() map[domain.ID]*domain.Entry {
	idx := make(map[domain.ID]*domain.Entry, len(c.Entries))
	for _, e := range c.Entries {
		if _, ok := idx[e.ID]; !ok {
			idx[e.ID] = e
		}
	}
	return idx
}
