package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/anidex/internal/domain"
	"github.com/mmcdole/anidex/internal/tui/styles"
)

// Layout constants for cards
const (
	// Border adds 1 char on each side
	BorderWidth  = 2
	BorderHeight = 2

	// Padding inside the border (Padding(0,1) = 1 left + 1 right)
	HorizontalPadding = 2

	// Title line, description line, badge line
	CardContentLines = 3

	CardHeight   = CardContentLines + BorderHeight
	MinCardWidth = 16
)

// CardGrid shows paged entries as a grid of cards. Pages are appended as
// they arrive; a fresh page replaces everything.
type CardGrid struct {
	items []*domain.Entry

	columns int
	cursor  int
	offset  int // first visible row

	width  int
	height int
}

// NewCardGrid creates a grid with the given column count
func NewCardGrid(columns int) *CardGrid {
	if columns < 1 {
		columns = 1
	}
	return &CardGrid{columns: columns}
}

// RenderPage implements domain.Renderer
func (g *CardGrid) RenderPage(items []*domain.Entry, start int, fresh bool) {
	if fresh || start == 0 {
		g.items = append([]*domain.Entry(nil), items...)
		g.cursor = 0
		g.offset = 0
		return
	}
	// Pages never overlap; guard against a stale append after a reset.
	if start != len(g.items) {
		return
	}
	g.items = append(g.items, items...)
}

// SetSize updates the component dimensions
func (g *CardGrid) SetSize(width, height int) {
	g.width = width
	g.height = height
	g.ensureVisible()
}

// Len returns the number of rendered entries
func (g *CardGrid) Len() int {
	return len(g.items)
}

// Cursor returns the selected index
func (g *CardGrid) Cursor() int {
	return g.cursor
}

// Columns returns the column count
func (g *CardGrid) Columns() int {
	return g.columns
}

// Selected returns the entry under the cursor, or nil when empty
func (g *CardGrid) Selected() *domain.Entry {
	if g.cursor < 0 || g.cursor >= len(g.items) {
		return nil
	}
	return g.items[g.cursor]
}

// VisibleRows returns how many card rows fit in the current height
func (g *CardGrid) VisibleRows() int {
	rows := g.height / CardHeight
	if rows < 1 {
		rows = 1
	}
	return rows
}

// Capacity returns the number of cards that fit on screen
func (g *CardGrid) Capacity() int {
	return g.VisibleRows() * g.columns
}

// NearEnd reports whether the cursor sits on the last rendered row,
// the signal to fetch the next page.
func (g *CardGrid) NearEnd() bool {
	if len(g.items) == 0 {
		return false
	}
	lastRow := (len(g.items) - 1) / g.columns
	return g.cursor/g.columns >= lastRow
}

// Update handles navigation keys
func (g *CardGrid) Update(msg tea.Msg) tea.Cmd {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || len(g.items) == 0 {
		return nil
	}

	switch {
	case key.Matches(keyMsg, GridKeys.Up):
		g.move(-g.columns)
	case key.Matches(keyMsg, GridKeys.Down):
		g.move(g.columns)
	case key.Matches(keyMsg, GridKeys.Left):
		g.move(-1)
	case key.Matches(keyMsg, GridKeys.Right):
		g.move(1)
	case key.Matches(keyMsg, GridKeys.Home):
		g.cursor = 0
	case key.Matches(keyMsg, GridKeys.End):
		g.cursor = len(g.items) - 1
	case key.Matches(keyMsg, GridKeys.PageDown):
		g.move(g.Capacity())
	case key.Matches(keyMsg, GridKeys.PageUp):
		g.move(-g.Capacity())
	}
	g.ensureVisible()
	return nil
}

func (g *CardGrid) move(delta int) {
	next := g.cursor + delta
	if next < 0 {
		next = 0
	}
	if next >= len(g.items) {
		next = len(g.items) - 1
	}
	g.cursor = next
}

func (g *CardGrid) ensureVisible() {
	row := g.cursor / g.columns
	rows := g.VisibleRows()
	if row < g.offset {
		g.offset = row
	}
	if row >= g.offset+rows {
		g.offset = row - rows + 1
	}
	if g.offset < 0 {
		g.offset = 0
	}
}

// View renders the visible rows
func (g *CardGrid) View() string {
	if len(g.items) == 0 {
		return ""
	}

	cardWidth := g.cardWidth()
	rows := g.VisibleRows()

	var lines []string
	for r := g.offset; r < g.offset+rows; r++ {
		start := r * g.columns
		if start >= len(g.items) {
			break
		}
		end := min(start+g.columns, len(g.items))

		cells := make([]string, 0, g.columns)
		for i := start; i < end; i++ {
			cells = append(cells, g.renderCard(g.items[i], i == g.cursor, cardWidth))
		}
		lines = append(lines, lipgloss.JoinHorizontal(lipgloss.Top, cells...))
	}
	return strings.Join(lines, "\n")
}

func (g *CardGrid) cardWidth() int {
	w := g.width/g.columns - BorderWidth - HorizontalPadding
	if w < MinCardWidth {
		w = MinCardWidth
	}
	return w
}

func (g *CardGrid) renderCard(e *domain.Entry, selected bool, width int) string {
	title := e.Title
	if title == "" {
		title = "(untitled)"
	}

	badge := ""
	switch {
	case e.IsFeatured:
		badge = styles.FeaturedBadgeStyle.Render("★ featured")
	case !e.IsAvailable():
		badge = styles.DimStyle.Render("unavailable")
	case len(e.Genres) > 0:
		badge = styles.DimStyle.Render(styles.Truncate(strings.Join(e.Genres.Names(), ", "), width))
	}

	body := lipgloss.JoinVertical(lipgloss.Left,
		styles.TitleStyle.Render(styles.Truncate(title, width)),
		styles.SubtitleStyle.Render(styles.Truncate(e.Description(), width)),
		badge,
	)

	style := styles.CardStyle
	switch {
	case selected:
		style = styles.CardSelectedStyle
	case !e.IsAvailable():
		style = styles.CardUnavailableStyle
	}
	return style.Width(width + HorizontalPadding).Height(CardContentLines).Render(body)
}
