package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/mmcdole/anidex/internal/catalog"
	"github.com/mmcdole/anidex/internal/cloud"
	"github.com/mmcdole/anidex/internal/domain"
	"github.com/mmcdole/anidex/internal/feed"
	"github.com/mmcdole/anidex/internal/filter"
)

// listFilterFlags maps repeatable list flags to filter keys
var listFilterFlags = []struct {
	name  string
	key   domain.FilterKey
	usage string
}{
	{"genre", domain.FilterGenre, "Genre name (repeatable, any match)"},
	{"studio", domain.FilterStudio, "Studio name (repeatable)"},
	{"author", domain.FilterAuthor, "Author name (repeatable)"},
	{"year", domain.FilterYear, "Start year (repeatable)"},
	{"season", domain.FilterSeason, "Start season: winter, spring, summer, fall (repeatable)"},
	{"type", domain.FilterMediaType, "Media type, e.g. tv, movie, manga (repeatable)"},
	{"nat", domain.FilterNationality, "Nationality code, e.g. jp (repeatable)"},
}

func addListFlags(cmd *cobra.Command) {
	cmd.Flags().String("search", "", "Free-text search over titles and alternate titles")
	for _, f := range listFilterFlags {
		cmd.Flags().StringSlice(f.name, nil, f.usage)
	}
	cmd.Flags().String("category", "", "Title category: a letter A-Z or # for everything else")
	cmd.Flags().Bool("home", false, "Show the landing page (featured entry plus a random sample)")
	cmd.Flags().Int("page", 1, "Page number, starting at 1")
	cmd.Flags().Bool("json", false, "Output JSON")
}

type entryOut struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description,omitempty"`
	Genres      []string `json:"genres,omitempty"`
	Link        string   `json:"link"`
	Available   bool     `json:"available"`
	Featured    bool     `json:"featured,omitempty"`
}

type listOut struct {
	Query       map[string][]string `json:"query,omitempty"`
	Total       int                 `json:"total"`
	Page        int                 `json:"page"`
	Exhausted   bool                `json:"exhausted"`
	Entries     []entryOut          `json:"entries"`
	Suggestions []string            `json:"suggestions,omitempty"`
}

func (a *app) runList(cmd *cobra.Command) error {
	col, err := a.load()
	if err != nil {
		return err
	}

	home, _ := cmd.Flags().GetBool("home")
	view := domain.ViewBrowse
	if home {
		view = domain.ViewHome
	}
	ctrl := catalog.NewController(col, a.catalogOptions(view), a.logger)

	if term, _ := cmd.Flags().GetString("search"); term != "" {
		ctrl.SetSearchTerm(term)
	}
	for _, f := range listFilterFlags {
		if values, _ := cmd.Flags().GetStringSlice(f.name); len(values) > 0 {
			ctrl.SetFilter(f.key, values...)
		}
	}
	if letter, _ := cmd.Flags().GetString("category"); letter != "" {
		ctrl.SetCategory(letter)
	}

	pageNum, _ := cmd.Flags().GetInt("page")
	if pageNum < 1 {
		return fmt.Errorf("page must be at least 1, got %d", pageNum)
	}
	size := a.cfg.Feed.PageSize
	page := feed.GetPage(ctrl.Results(), (pageNum-1)*size, size)

	settings := a.openSettings()
	defer settings.Close()
	resolver := a.cloudService(settings).Resolver()

	out := listOut{
		Total:     len(ctrl.Results()),
		Page:      pageNum,
		Exhausted: page.Exhausted,
		Entries:   make([]entryOut, 0, len(page.Items)),
	}
	q := ctrl.Query()
	if !q.IsEmpty() {
		out.Query = make(map[string][]string)
		if q.HasSearch() {
			out.Query["search"] = []string{q.SearchTerm()}
		}
		for _, k := range q.ActiveKeys() {
			out.Query[string(k)] = q.Filter(k)
		}
	}
	for _, e := range page.Items {
		out.Entries = append(out.Entries, toEntryOut(e, resolver))
	}
	if out.Total == 0 && q.HasSearch() {
		out.Suggestions = ctrl.Suggestions(maxSuggestions)
	}

	if jsonMode, _ := cmd.Flags().GetBool("json"); jsonMode {
		return writeJSON(cmd.OutOrStdout(), out)
	}
	return writeList(cmd.OutOrStdout(), out, size)
}

const maxSuggestions = 3

func toEntryOut(e *domain.Entry, r cloud.Resolver) entryOut {
	return entryOut{
		ID:          e.ID.String(),
		Title:       e.Title,
		Description: e.Description(),
		Genres:      e.Genres.Names(),
		Link:        r.Resolve(e),
		Available:   e.IsAvailable(),
		Featured:    e.IsFeatured,
	}
}

func writeList(w io.Writer, out listOut, size int) error {
	if out.Total == 0 {
		fmt.Fprintln(w, "No results.")
		if len(out.Suggestions) > 0 {
			fmt.Fprintf(w, "Did you mean: %s?\n", strings.Join(out.Suggestions, ", "))
		}
		return nil
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	for _, e := range out.Entries {
		mark := " "
		switch {
		case e.Featured:
			mark = "★"
		case !e.Available:
			mark = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\n", mark, e.Title, e.Description, e.Link)
	}
	if err := tw.Flush(); err != nil {
		return err
	}

	pages := (out.Total + size - 1) / size
	fmt.Fprintf(w, "\npage %d of %d (%d results)\n", out.Page, pages, out.Total)
	return nil
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (a *app) runOptions(cmd *cobra.Command, name string) error {
	key, ok := domain.ParseFilterKey(name)
	if !ok {
		return fmt.Errorf("%w: %q", domain.ErrUnknownFilterKey, name)
	}

	col, err := a.load()
	if err != nil {
		return err
	}
	opts := filter.Options(col.Entries, key)

	if jsonMode, _ := cmd.Flags().GetBool("json"); jsonMode {
		return writeJSON(cmd.OutOrStdout(), opts)
	}

	tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	for _, o := range opts {
		fmt.Fprintf(tw, "%s\t%s\t%d\n", o.Value, o.Label, o.Count)
	}
	return tw.Flush()
}
