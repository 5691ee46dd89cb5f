// Package ingest turns the exported catalog JSON into one flat, ordered
// collection plus the entry pinned to the landing page.
package ingest

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mmcdole/anidex/internal/domain"
)

// Shape identifies which layout the exporter produced
type Shape int

const (
	// ShapeList is a flat JSON array of entries
	ShapeList Shape = iota
	// ShapeBuckets is an object keyed by first letter ("#", "0".."9", "A".."Z")
	ShapeBuckets
)

// String returns the shape name
func (s Shape) String() string {
	if s == ShapeBuckets {
		return "buckets"
	}
	return "list"
}

// HistoryBucket is the reserved key holding the featured entry in bucketed exports.
const HistoryBucket = "history"

// legacyFeaturedBuckets are accepted in place of HistoryBucket, in order
var legacyFeaturedBuckets = []string{HistoryBucket, "featured"}

// ErrUnsupportedShape is returned when the document is neither an array nor an object
var ErrUnsupportedShape = errors.New("catalog must be a JSON array or object")

// BucketKeys returns the fixed bucket iteration order
func BucketKeys() []string {
	keys := make([]string, 0, 37)
	keys = append(keys, "#")
	for c := '0'; c <= '9'; c++ {
		keys = append(keys, string(c))
	}
	for c := 'A'; c <= 'Z'; c++ {
		keys = append(keys, string(c))
	}
	return keys
}

// RawPayload is the decoded document, resolved once into one of two shapes.
// Only the fields of the active shape are populated.
type RawPayload struct {
	Shape Shape

	// ShapeList
	List []domain.Entry

	// ShapeBuckets
	Buckets map[string][]domain.Entry
	History []domain.Entry

	// Skipped counts array elements that were not entry objects
	Skipped int
}

// Decode parses a catalog document. Buckets that are missing or not arrays
// are skipped silently; elements that are not objects are counted in Skipped.
func Decode(data []byte) (RawPayload, error) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 {
		return RawPayload{}, fmt.Errorf("empty document: %w", ErrUnsupportedShape)
	}

	switch data[0] {
	case '[':
		list, skipped, err := decodeEntries(data)
		if err != nil {
			return RawPayload{}, err
		}
		return RawPayload{Shape: ShapeList, List: list, Skipped: skipped}, nil

	case '{':
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(data, &obj); err != nil {
			return RawPayload{}, fmt.Errorf("failed to parse catalog object: %w", err)
		}

		p := RawPayload{Shape: ShapeBuckets, Buckets: make(map[string][]domain.Entry)}
		for _, key := range BucketKeys() {
			raw, ok := obj[key]
			if !ok || !isArray(raw) {
				continue
			}
			list, skipped, err := decodeEntries(raw)
			if err != nil {
				return RawPayload{}, fmt.Errorf("bucket %q: %w", key, err)
			}
			p.Buckets[key] = list
			p.Skipped += skipped
		}

		for _, key := range legacyFeaturedBuckets {
			raw, ok := obj[key]
			if !ok || !isArray(raw) {
				continue
			}
			list, skipped, err := decodeEntries(raw)
			if err != nil {
				return RawPayload{}, fmt.Errorf("bucket %q: %w", key, err)
			}
			p.Skipped += skipped
			if len(list) > 0 {
				p.History = list
				break
			}
		}
		return p, nil

	default:
		return RawPayload{}, ErrUnsupportedShape
	}
}

func isArray(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '['
}

// decodeEntries decodes an array element by element so one bad element
// does not reject the whole catalog.
func decodeEntries(data []byte) ([]domain.Entry, int, error) {
	var elems []json.RawMessage
	if err := json.Unmarshal(data, &elems); err != nil {
		return nil, 0, fmt.Errorf("failed to parse entry array: %w", err)
	}

	entries := make([]domain.Entry, 0, len(elems))
	skipped := 0
	for _, raw := range elems {
		raw = bytes.TrimSpace(raw)
		if len(raw) == 0 || raw[0] != '{' {
			skipped++
			continue
		}
		e, ok := decodeEntry(raw)
		if !ok {
			skipped++
			continue
		}
		entries = append(entries, e)
	}
	return entries, skipped, nil
}

// decodeEntry decodes one entry object. When a field has the wrong type
// (e.g. "num_episodes": "24") the object is decoded field by field and the
// offending fields are left at their zero value.
func decodeEntry(raw json.RawMessage) (domain.Entry, bool) {
	var e domain.Entry
	if err := json.Unmarshal(raw, &e); err == nil {
		return e, true
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(raw, &fields); err != nil {
		return domain.Entry{}, false
	}

	e = domain.Entry{}
	for name, value := range fields {
		one, err := json.Marshal(map[string]json.RawMessage{name: value})
		if err != nil {
			continue
		}
		next := e
		if err := json.Unmarshal(one, &next); err != nil {
			continue
		}
		e = next
	}
	return e, true
}
