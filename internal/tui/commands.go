package tui

import (
	"context"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/anidex/internal/ingest"
)

// Command factories for async operations

// statusTimeout is how long transient status messages stay visible
const statusTimeout = 4 * time.Second

// CatalogLoader fetches and flattens the catalog. *adapter.Loader satisfies it.
type CatalogLoader interface {
	Load(ctx context.Context) (ingest.Collection, error)
}

// LinkOpener hands a URL to an external program. *adapter.Opener satisfies it.
type LinkOpener interface {
	Open(url string) error
}

// LoadCatalogCmd performs the single startup load
func LoadCatalogCmd(loader CatalogLoader, timeout time.Duration) tea.Cmd {
	return func() tea.Msg {
		ctx := context.Background()
		if timeout > 0 {
			var cancel context.CancelFunc
			ctx, cancel = context.WithTimeout(ctx, timeout)
			defer cancel()
		}

		col, err := loader.Load(ctx)
		if err != nil {
			return LoadFailedMsg{Err: err}
		}
		return CatalogLoadedMsg{Collection: col}
	}
}

// OpenLinkCmd opens url outside the terminal
func OpenLinkCmd(opener LinkOpener, title, url string) tea.Cmd {
	return func() tea.Msg {
		return OpenedMsg{Title: title, URL: url, Err: opener.Open(url)}
	}
}

// clearStatusCmd schedules removal of status message seq
func clearStatusCmd(seq int) tea.Cmd {
	return tea.Tick(statusTimeout, func(time.Time) tea.Msg {
		return ClearStatusMsg{Seq: seq}
	})
}
