package styles

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Color palette
var (
	Accent     = lipgloss.Color("#E5A00D")
	SlateDark  = lipgloss.Color("#1F2937")
	SlateLight = lipgloss.Color("#374151")
	DimGray    = lipgloss.Color("#6B7280")
	LightGray  = lipgloss.Color("#9CA3AF")
	White      = lipgloss.Color("#F9FAFB")
	Green      = lipgloss.Color("#10B981")
	Red        = lipgloss.Color("#EF4444")
	Blue       = lipgloss.Color("#3B82F6")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(Accent)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)
)

// Header and status bar
var (
	HeaderStyle = lipgloss.NewStyle().
			Foreground(White).
			Background(SlateDark).
			Padding(0, 1)

	StatusStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 1)
)

// Card styles
var (
	CardStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(DimGray).
			Padding(0, 1)

	CardSelectedStyle = lipgloss.NewStyle().
				Border(lipgloss.RoundedBorder()).
				BorderForeground(Accent).
				Padding(0, 1)

	CardUnavailableStyle = lipgloss.NewStyle().
				Border(lipgloss.HiddenBorder()).
				Foreground(DimGray).
				Faint(true).
				Padding(0, 1)

	FeaturedBadgeStyle = lipgloss.NewStyle().
				Foreground(SlateDark).
				Background(Accent).
				Bold(true).
				Padding(0, 1)
)

// Category bar
var (
	CategoryStyle = lipgloss.NewStyle().
			Foreground(LightGray).
			Padding(0, 0)

	CategoryActiveStyle = lipgloss.NewStyle().
				Foreground(SlateDark).
				Background(Accent).
				Bold(true)

	CategoryCursorStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight)
)

// Modal styles
var (
	ModalStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(Accent).
			Padding(1, 2).
			Background(SlateDark)

	ModalTitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true).
			MarginBottom(1)

	SelectedItemStyle = lipgloss.NewStyle().
				Foreground(White).
				Background(SlateLight)

	NormalItemStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	CheckedItemStyle = lipgloss.NewStyle().
				Foreground(Accent)
)

// Spinner style
var (
	SpinnerStyle = lipgloss.NewStyle().
			Foreground(Accent)
)

// Prompt styles
var (
	PromptStyle = lipgloss.NewStyle().
			Foreground(Accent).
			Bold(true)
)

// Truncate shortens s to width runes, ending with an ellipsis when cut
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	r := []rune(s)
	if len(r) <= width {
		return s
	}
	if width <= 1 {
		return string(r[:width])
	}
	return string(r[:width-1]) + "…"
}

// Pad right-pads s with spaces to width cells
func Pad(s string, width int) string {
	w := lipgloss.Width(s)
	if w >= width {
		return s
	}
	return s + strings.Repeat(" ", width-w)
}
