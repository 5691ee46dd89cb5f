package tui

import (
	"github.com/mmcdole/anidex/internal/ingest"
)

// Message types for the TUI

// CatalogLoadedMsg signals that the catalog was fetched and flattened
type CatalogLoadedMsg struct {
	Collection ingest.Collection
}

// LoadFailedMsg signals that the catalog could not be loaded. The session
// stays in the failed state until restart.
type LoadFailedMsg struct {
	Err error
}

// OpenedMsg reports the outcome of opening an entry link
type OpenedMsg struct {
	Title string
	URL   string
	Err   error
}

// ClearStatusMsg clears the status line if it still shows the message
// with this sequence number
type ClearStatusMsg struct {
	Seq int
}
