package components

import (
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/anidex/internal/tui/styles"
)

const inputModalWidth = 56

// InputModal is a single-line prompt used for the search term and the
// cloud link. It can show a hint and a validation error under the input.
type InputModal struct {
	visible bool
	title   string
	hint    string
	err     string
	input   textinput.Model
}

// NewInputModal creates a new input modal
func NewInputModal(charLimit int) InputModal {
	ti := textinput.New()
	ti.CharLimit = charLimit
	ti.Width = inputModalWidth - 4
	ti.Prompt = "> "
	ti.PromptStyle = styles.PromptStyle
	ti.TextStyle = lipgloss.NewStyle().Foreground(styles.White)
	ti.PlaceholderStyle = styles.DimStyle

	return InputModal{input: ti}
}

// Show displays the modal with a title, initial value and hint line
func (m *InputModal) Show(title, value, placeholder, hint string) tea.Cmd {
	m.visible = true
	m.title = title
	m.hint = hint
	m.err = ""
	m.input.Placeholder = placeholder
	m.input.SetValue(value)
	m.input.CursorEnd()
	return m.input.Focus()
}

// Hide dismisses the modal
func (m *InputModal) Hide() {
	m.visible = false
	m.err = ""
	m.input.Blur()
}

// SetError shows a validation error and keeps the modal open
func (m *InputModal) SetError(msg string) {
	m.err = msg
}

// IsVisible returns whether the modal is shown
func (m InputModal) IsVisible() bool {
	return m.visible
}

// Value returns the current input value
func (m InputModal) Value() string {
	return m.input.Value()
}

// Update handles input events, returns (modal, cmd, submitted)
func (m InputModal) Update(msg tea.Msg) (InputModal, tea.Cmd, bool) {
	if !m.visible {
		return m, nil, false
	}

	if keyMsg, ok := msg.(tea.KeyMsg); ok {
		switch keyMsg.String() {
		case "enter":
			return m, nil, true
		case "esc":
			m.Hide()
			return m, nil, false
		}
		m.err = ""
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd, false
}

// View renders the input modal
func (m InputModal) View() string {
	if !m.visible {
		return ""
	}

	lines := []string{
		styles.ModalTitleStyle.Render(m.title),
		m.input.View(),
	}
	if m.err != "" {
		lines = append(lines, "", styles.ErrorStyle.Render(m.err))
	}
	if m.hint != "" {
		lines = append(lines, "", styles.DimStyle.Render(m.hint))
	}

	return styles.ModalStyle.Width(inputModalWidth).Render(lipgloss.JoinVertical(lipgloss.Left, lines...))
}
