package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/anidex/internal/domain"
	"github.com/mmcdole/anidex/internal/tui/styles"
)

// View renders the application
func (m Model) View() string {
	if m.Width == 0 {
		return ""
	}

	switch m.State {
	case StateLoading:
		msg := fmt.Sprintf("%s Loading catalog from %s", m.spinner.View(), m.opts.Source)
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, msg)
	case StateLoadFailed:
		return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, m.renderLoadFailed())
	}

	view := lipgloss.JoinVertical(lipgloss.Left,
		m.renderHeader(),
		m.categories.View(),
		m.renderBody(),
		m.renderDetails(),
		m.renderFooter(),
	)

	// Overlays, at most one at a time
	switch {
	case m.showHelp:
		view = m.overlay(m.renderHelp())
	case m.searchModal.IsVisible():
		view = m.overlay(m.searchModal.View())
	case m.cloudModal.IsVisible():
		view = m.overlay(m.cloudModal.View())
	case m.filterModal.IsVisible():
		view = m.overlay(m.filterModal.View())
	}

	return view
}

func (m Model) overlay(content string) string {
	return lipgloss.Place(m.Width, m.Height, lipgloss.Center, lipgloss.Center, content)
}

func (m Model) renderLoadFailed() string {
	lines := []string{
		styles.ErrorStyle.Render("Could not load the catalog"),
		"",
		styles.DimStyle.Render(styles.Truncate(fmt.Sprint(m.loadErr), max(m.Width-8, 20))),
		"",
		styles.DimStyle.Render("Restart to retry · q to quit"),
	}
	return styles.ModalStyle.Render(lipgloss.JoinVertical(lipgloss.Center, lines...))
}

func (m Model) renderHeader() string {
	title := styles.TitleStyle.Render("anidex")

	mode := "browse"
	if m.ctrl.View() == domain.ViewHome && m.ctrl.Query().IsEmpty() {
		mode = "home"
	}
	parts := m.querySummary()
	parts = append(parts, fmt.Sprintf("%d/%d", len(m.ctrl.Results()), len(m.ctrl.Entries())))

	sub := styles.SubtitleStyle.Render(strings.Join(parts, " · "))
	return styles.HeaderStyle.Width(m.Width).Render(title + "  " + styles.AccentStyle.Render(mode) + "  " + sub)
}

// querySummary describes the active search and filters
func (m Model) querySummary() []string {
	q := m.ctrl.Query()
	var out []string
	if q.HasSearch() {
		out = append(out, fmt.Sprintf("%q", q.SearchTerm()))
	}
	for _, k := range q.ActiveKeys() {
		out = append(out, k.Label()+": "+strings.Join(q.Filter(k), ", "))
	}
	return out
}

func (m Model) renderBody() string {
	if m.grid.Len() > 0 {
		return m.grid.View()
	}

	height := max(m.Height-chromeHeight, 1)
	var msg string
	if q := m.ctrl.Query(); q.HasSearch() {
		msg = fmt.Sprintf("No results for %q", q.SearchTerm())
		if s := m.ctrl.Suggestions(maxSuggestions); len(s) > 0 {
			msg += "\nDid you mean: " + strings.Join(s, ", ") + "?"
		}
	} else {
		msg = "No entries match the active filters"
	}
	return lipgloss.Place(m.Width, height, lipgloss.Center, lipgloss.Center, styles.DimStyle.Render(msg))
}

func (m Model) renderDetails() string {
	e := m.grid.Selected()
	if e == nil {
		return ""
	}

	parts := []string{e.Title}
	if e.AlternateTitles != nil && e.AlternateTitles.En != "" && e.AlternateTitles.En != e.Title {
		parts = append(parts, e.AlternateTitles.En)
	}
	if names := e.Studios.Names(); len(names) > 0 {
		parts = append(parts, strings.Join(names, ", "))
	}
	if names := e.Authors.Names(); len(names) > 0 {
		parts = append(parts, strings.Join(names, ", "))
	}
	if e.NumEpisodes > 0 {
		parts = append(parts, fmt.Sprintf("%d eps", e.NumEpisodes))
	}

	line := styles.Truncate(strings.Join(parts, " · "), max(m.Width-2, 1))
	if !e.IsAvailable() {
		return styles.ErrorStyle.Render(line)
	}
	return styles.DimStyle.Render(line)
}

func (m Model) renderFooter() string {
	var left string
	if m.statusMsg != "" {
		if m.statusIsErr {
			left = styles.ErrorStyle.Render(m.statusMsg)
		} else {
			left = styles.SuccessStyle.Render(m.statusMsg)
		}
	} else if m.ctrl.Exhausted() {
		left = styles.DimStyle.Render(fmt.Sprintf("%d shown", m.grid.Len()))
	} else {
		left = styles.DimStyle.Render(fmt.Sprintf("%d shown, more below", m.grid.Len()))
	}

	right := m.help.ShortHelpView(keys.ShortHelp())
	gap := m.Width - lipgloss.Width(left) - lipgloss.Width(right)
	if gap < 1 {
		return styles.StatusStyle.Width(m.Width).Render(left)
	}
	return styles.StatusStyle.Width(m.Width).Render(left + strings.Repeat(" ", gap) + right)
}

func (m Model) renderHelp() string {
	h := m.help
	h.ShowAll = true
	content := lipgloss.JoinVertical(lipgloss.Left,
		styles.ModalTitleStyle.Render("Keys"),
		h.View(keys),
		"",
		styles.DimStyle.Render("arrows/hjkl move · g/G first/last · pgup/pgdn page"),
		"",
		styles.DimStyle.Render("press any key to close"),
	)
	return styles.ModalStyle.Render(content)
}
