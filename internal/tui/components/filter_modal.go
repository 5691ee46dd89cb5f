package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/sahilm/fuzzy"

	"github.com/mmcdole/anidex/internal/domain"
	"github.com/mmcdole/anidex/internal/filter"
	"github.com/mmcdole/anidex/internal/tui/styles"
)

const (
	filterModalWidth = 40
	filterMaxRows    = 12
)

// FilterSelection is the outcome of the filter modal
type FilterSelection struct {
	Key    domain.FilterKey
	Values []string // empty clears the filter
}

// OptionsFunc lists the selectable values of a filter key
type OptionsFunc func(domain.FilterKey) []filter.Option

// optionSource adapts option labels to fuzzy.Source
type optionSource []filter.Option

func (s optionSource) String(i int) string { return s[i].Label }
func (s optionSource) Len() int            { return len(s) }

// FilterModal picks a filter key, then one or more of its values.
// Long value lists are narrowed by typing.
type FilterModal struct {
	visible bool

	keys      []domain.FilterKey
	keyCursor int

	// value stage
	key      domain.FilterKey
	options  []filter.Option
	matches  []int // indices into options, in display order
	cursor   int
	offset   int
	checked  map[string]bool
	input    textinput.Model
	choosing bool

	optionsFor OptionsFunc
}

// NewFilterModal creates a filter modal offering keys
func NewFilterModal(keys []domain.FilterKey, optionsFor OptionsFunc) FilterModal {
	ti := textinput.New()
	ti.Placeholder = "type to narrow..."
	ti.CharLimit = 60
	ti.Width = filterModalWidth - 4
	ti.Prompt = "/ "
	ti.PromptStyle = styles.PromptStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return FilterModal{keys: keys, optionsFor: optionsFor, input: ti}
}

// Show opens the modal on the key list
func (m *FilterModal) Show() {
	m.visible = true
	m.choosing = false
	m.keyCursor = 0
	m.input.Blur()
}

// Hide dismisses the modal
func (m *FilterModal) Hide() {
	m.visible = false
	m.choosing = false
	m.input.Blur()
}

// IsVisible returns whether the modal is shown
func (m FilterModal) IsVisible() bool {
	return m.visible
}

// openKey switches to the value list of key, pre-checking current values
func (m *FilterModal) openKey(k domain.FilterKey, current []string) {
	m.key = k
	m.choosing = true
	m.options = nil
	if m.optionsFor != nil {
		m.options = m.optionsFor(k)
	}
	m.checked = make(map[string]bool, len(current))
	for _, v := range current {
		m.checked[v] = true
	}
	m.input.SetValue("")
	m.input.Focus()
	m.narrow()
}

// narrow recomputes matches for the typed text
func (m *FilterModal) narrow() {
	q := strings.TrimSpace(m.input.Value())
	m.cursor = 0
	m.offset = 0
	if q == "" {
		m.matches = make([]int, len(m.options))
		for i := range m.options {
			m.matches[i] = i
		}
		return
	}
	found := fuzzy.FindFrom(q, optionSource(m.options))
	m.matches = make([]int, len(found))
	for i, f := range found {
		m.matches[i] = f.Index
	}
}

// Update handles a message. current returns the active values of a key.
// A non-nil selection means the user applied a choice.
func (m FilterModal) Update(msg tea.Msg, current func(domain.FilterKey) []string) (FilterModal, tea.Cmd, *FilterSelection) {
	if !m.visible {
		return m, nil, nil
	}
	keyMsg, ok := msg.(tea.KeyMsg)
	if !ok {
		if m.choosing {
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			return m, cmd, nil
		}
		return m, nil, nil
	}

	if !m.choosing {
		switch {
		case key.Matches(keyMsg, PickerKeys.Escape):
			m.Hide()
		case key.Matches(keyMsg, PickerKeys.Up), keyMsg.String() == "k":
			if m.keyCursor > 0 {
				m.keyCursor--
			}
		case key.Matches(keyMsg, PickerKeys.Down), keyMsg.String() == "j":
			if m.keyCursor < len(m.keys)-1 {
				m.keyCursor++
			}
		case key.Matches(keyMsg, PickerKeys.Clear):
			if len(m.keys) > 0 {
				k := m.keys[m.keyCursor]
				m.Hide()
				return m, nil, &FilterSelection{Key: k}
			}
		case key.Matches(keyMsg, PickerKeys.Enter), key.Matches(keyMsg, PickerKeys.Toggle):
			if len(m.keys) > 0 {
				k := m.keys[m.keyCursor]
				var cur []string
				if current != nil {
					cur = current(k)
				}
				m.openKey(k, cur)
				return m, textinput.Blink, nil
			}
		}
		return m, nil, nil
	}

	switch {
	case key.Matches(keyMsg, PickerKeys.Escape):
		m.Hide()
		return m, nil, nil
	case key.Matches(keyMsg, PickerKeys.Back) && m.input.Value() == "":
		m.choosing = false
		m.input.Blur()
		return m, nil, nil
	case key.Matches(keyMsg, PickerKeys.Up):
		if m.cursor > 0 {
			m.cursor--
		}
		m.scroll()
		return m, nil, nil
	case key.Matches(keyMsg, PickerKeys.Down):
		if m.cursor < len(m.matches)-1 {
			m.cursor++
		}
		m.scroll()
		return m, nil, nil
	case key.Matches(keyMsg, PickerKeys.Toggle):
		if opt, ok := m.highlighted(); ok {
			m.checked[opt.Value] = !m.checked[opt.Value]
		}
		return m, nil, nil
	case key.Matches(keyMsg, PickerKeys.Clear):
		k := m.key
		m.Hide()
		return m, nil, &FilterSelection{Key: k}
	case key.Matches(keyMsg, PickerKeys.Enter):
		sel := &FilterSelection{Key: m.key, Values: m.checkedValues()}
		if len(sel.Values) == 0 {
			if opt, ok := m.highlighted(); ok {
				sel.Values = []string{opt.Value}
			}
		}
		m.Hide()
		return m, nil, sel
	}

	before := m.input.Value()
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	if m.input.Value() != before {
		m.narrow()
	}
	return m, cmd, nil
}

func (m *FilterModal) scroll() {
	if m.cursor < m.offset {
		m.offset = m.cursor
	}
	if m.cursor >= m.offset+filterMaxRows {
		m.offset = m.cursor - filterMaxRows + 1
	}
}

func (m FilterModal) highlighted() (filter.Option, bool) {
	if m.cursor < 0 || m.cursor >= len(m.matches) {
		return filter.Option{}, false
	}
	return m.options[m.matches[m.cursor]], true
}

// checkedValues returns the checked values in option order
func (m FilterModal) checkedValues() []string {
	var out []string
	for _, opt := range m.options {
		if m.checked[opt.Value] {
			out = append(out, opt.Value)
		}
	}
	return out
}

// View renders the modal
func (m FilterModal) View() string {
	if !m.visible {
		return ""
	}

	var lines []string
	title := "Filter by"
	if !m.choosing {
		for i, k := range m.keys {
			lines = append(lines, renderPickerLine(k.Label(), i == m.keyCursor, false))
		}
	} else {
		title = "Filter by " + m.key.Label()
		lines = append(lines, m.input.View(), "")
		if len(m.matches) == 0 {
			lines = append(lines, styles.DimStyle.Render("no values"))
		}
		end := min(m.offset+filterMaxRows, len(m.matches))
		for i := m.offset; i < end; i++ {
			opt := m.options[m.matches[i]]
			label := fmt.Sprintf("%s (%d)", opt.Label, opt.Count)
			lines = append(lines, renderPickerLine(label, i == m.cursor, m.checked[opt.Value]))
		}
		if len(m.matches) > end {
			lines = append(lines, styles.DimStyle.Render(fmt.Sprintf("↓ %d more", len(m.matches)-end)))
		}
	}

	content := styles.ModalTitleStyle.Render(title) + "\n" + strings.Join(lines, "\n")
	return styles.ModalStyle.Width(filterModalWidth).Render(content)
}

func renderPickerLine(label string, selected, checked bool) string {
	prefix := "  "
	if checked {
		prefix = "✓ "
	}
	text := styles.Pad(styles.Truncate(prefix+label, filterModalWidth-4), filterModalWidth-4)
	switch {
	case selected:
		return styles.SelectedItemStyle.Render(text)
	case checked:
		return styles.CheckedItemStyle.Render(text)
	default:
		return styles.NormalItemStyle.Render(text)
	}
}
