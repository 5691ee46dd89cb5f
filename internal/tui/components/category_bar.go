package components

import (
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/anidex/internal/tui/styles"
)

// allCategories is the leading pseudo-bucket that clears the letter filter
const allCategories = "All"

// CategoryBar is a one-line letter picker ("All", "#", "A".."Z")
type CategoryBar struct {
	focused bool
	items   []string
	cursor  int
	active  string // currently applied letter, "" for all
}

// NewCategoryBar creates a bar over the given buckets
func NewCategoryBar(buckets []string) CategoryBar {
	return CategoryBar{items: append([]string{allCategories}, buckets...)}
}

// Focus gives the bar keyboard control and moves the cursor to the active letter
func (c *CategoryBar) Focus(active string) {
	c.focused = true
	c.active = active
	c.cursor = 0
	for i, it := range c.items {
		if it == active {
			c.cursor = i
			break
		}
	}
}

// Blur releases keyboard control
func (c *CategoryBar) Blur() {
	c.focused = false
}

// Focused reports whether the bar has keyboard control
func (c CategoryBar) Focused() bool {
	return c.focused
}

// SetActive records the applied letter
func (c *CategoryBar) SetActive(letter string) {
	c.active = letter
}

// Update handles keys while focused. done is true when the bar released
// focus; chosen is non-nil when a bucket was picked ("" means all).
func (c CategoryBar) Update(msg tea.Msg) (bar CategoryBar, chosen *string, done bool) {
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok || !c.focused {
		return c, nil, false
	}

	// Upper-case letters always jump, even where they double as grid keys
	if s := keyMsg.String(); len(s) == 1 && (s == "#" || (s >= "A" && s <= "Z")) {
		c.jump(s)
		return c, nil, false
	}

	switch {
	case key.Matches(keyMsg, GridKeys.Left):
		if c.cursor > 0 {
			c.cursor--
		}
	case key.Matches(keyMsg, GridKeys.Right):
		if c.cursor < len(c.items)-1 {
			c.cursor++
		}
	case key.Matches(keyMsg, GridKeys.Home):
		c.cursor = 0
	case key.Matches(keyMsg, GridKeys.End):
		c.cursor = len(c.items) - 1
	case key.Matches(keyMsg, PickerKeys.Escape):
		c.focused = false
		return c, nil, true
	case key.Matches(keyMsg, PickerKeys.Enter):
		letter := c.items[c.cursor]
		if letter == allCategories {
			letter = ""
		}
		c.active = letter
		c.focused = false
		return c, &letter, true
	default:
		// Typing a letter jumps straight to its bucket
		c.jump(strings.ToUpper(keyMsg.String()))
	}
	return c, nil, false
}

func (c *CategoryBar) jump(bucket string) {
	for i, it := range c.items {
		if it == bucket {
			c.cursor = i
			return
		}
	}
}

// View renders the bar
func (c CategoryBar) View() string {
	parts := make([]string, 0, len(c.items))
	for i, it := range c.items {
		label := " " + it + " "
		isActive := it == c.active || (it == allCategories && c.active == "")
		switch {
		case c.focused && i == c.cursor:
			parts = append(parts, styles.CategoryCursorStyle.Render(label))
		case isActive:
			parts = append(parts, styles.CategoryActiveStyle.Render(label))
		default:
			parts = append(parts, styles.CategoryStyle.Render(label))
		}
	}
	return strings.Join(parts, "")
}
