package catalog

import (
	"log/slog"
	"math/rand/v2"
	"strings"

	"github.com/mmcdole/anidex/internal/domain"
	"github.com/mmcdole/anidex/internal/feed"
	"github.com/mmcdole/anidex/internal/ingest"
	"github.com/mmcdole/anidex/internal/normalize"
	"github.com/mmcdole/anidex/internal/search"
)

// Options configures a Controller
type Options struct {
	PageSize   int
	SampleSize int
	View       domain.View
	Rand       *rand.Rand
}

// Controller owns the collection, the query state and the feed for one
// session. Every mutation recomposes the result set from scratch and pushes
// a fresh first page to the attached renderer.
//
// A Controller is not safe for concurrent use.
type Controller struct {
	all      []*domain.Entry
	featured *domain.Entry
	index    *search.Index

	query   domain.QueryState
	view    domain.View
	results []*domain.Entry

	feed       *feed.Feed
	attached   bool
	rnd        *rand.Rand
	sampleSize int
	logger     *slog.Logger
}

// NewController builds a controller over a flattened collection. The
// result set is composed immediately but nothing is rendered until Attach.
func NewController(col ingest.Collection, opts Options, logger *slog.Logger) *Controller {
	if logger == nil {
		logger = slog.Default()
	}
	if opts.SampleSize <= 0 {
		opts.SampleSize = DefaultSampleSize
	}

	c := &Controller{
		all:        col.Entries,
		featured:   col.Featured,
		index:      search.NewIndex(col.Entries),
		view:       opts.View,
		feed:       feed.New(opts.PageSize),
		rnd:        opts.Rand,
		sampleSize: opts.SampleSize,
		logger:     logger,
	}
	c.recompose()
	c.feed.Reset(c.results)
	return c
}

// Attach sets the renderer and pushes the first page of the current results.
// Without a renderer the first page is returned by RequestNextPage instead.
func (c *Controller) Attach(r domain.Renderer) {
	c.feed.Attach(r)
	c.attached = r != nil
	c.feed.Reset(c.results)
	if c.attached {
		c.feed.Next()
	}
}

// SetFilter replaces the values of one filter (none clears it)
func (c *Controller) SetFilter(key domain.FilterKey, values ...string) {
	c.query.SetFilter(key, values...)
	c.logger.Debug("filter changed", "key", key, "values", values)
	c.refresh()
}

// SetCategory selects an alphabetical bucket ("#", "A".."Z"); "" clears it
func (c *Controller) SetCategory(letter string) {
	letter = strings.ToUpper(strings.TrimSpace(letter))
	if letter == "" {
		c.SetFilter(domain.FilterCategory)
		return
	}
	c.SetFilter(domain.FilterCategory, letter)
}

// SetSearchTerm replaces the free-text term
func (c *Controller) SetSearchTerm(term string) {
	c.query.SetSearchTerm(term)
	c.logger.Debug("search submitted", "term", term)
	c.refresh()
}

// SetView switches between the home and browse contexts
func (c *Controller) SetView(v domain.View) {
	c.view = v
	c.refresh()
}

// ResetAll clears the query and returns to the home view. The featured
// entry stays pinned; the random sample is drawn again.
func (c *Controller) ResetAll() {
	c.query.Reset()
	c.view = domain.ViewHome
	c.logger.Debug("query reset")
	c.refresh()
}

// RequestNextPage pages out the next chunk of results. It reports false
// once the results are exhausted.
func (c *Controller) RequestNextPage() (feed.Page, bool) {
	return c.feed.Next()
}

// Results returns the full current result list
func (c *Controller) Results() []*domain.Entry {
	return c.results
}

// Query returns a copy of the active query
func (c *Controller) Query() domain.QueryState {
	return c.query.Clone()
}

// View returns the active view
func (c *Controller) View() domain.View {
	return c.view
}

// Featured returns the pinned entry, or nil
func (c *Controller) Featured() *domain.Entry {
	return c.featured
}

// Entries returns the whole collection in ingestion order
func (c *Controller) Entries() []*domain.Entry {
	return c.all
}

// Exhausted reports whether every result has been paged out
func (c *Controller) Exhausted() bool {
	return c.feed.Exhausted()
}

// Suggestions offers up to n close titles when the active search found
// nothing. It returns nil otherwise.
func (c *Controller) Suggestions(n int) []string {
	if !c.query.HasSearch() || len(c.results) > 0 {
		return nil
	}
	return search.Suggest(c.all, c.query.SearchTerm(), n)
}

// Categories returns the category buckets with at least one entry
func (c *Controller) Categories() []string {
	present := make(map[string]bool)
	for _, e := range c.all {
		// Untitled entries match no category
		if strings.TrimSpace(e.Title) == "" {
			continue
		}
		present[normalize.Category(e.Title)] = true
	}
	var out []string
	for _, cat := range normalize.Categories() {
		if present[cat] {
			out = append(out, cat)
		}
	}
	return out
}

func (c *Controller) refresh() {
	c.recompose()
	c.feed.Reset(c.results)
	if c.attached {
		c.feed.Next()
	}
}

func (c *Controller) recompose() {
	c.results = compose(c.index, c.all, c.query, c.featured, c.view, c.rnd, c.sampleSize)
	c.logger.Debug("results composed",
		"view", c.view.String(),
		"count", len(c.results),
		"term", c.query.SearchTerm(),
		"filters", len(c.query.ActiveKeys()))
}
