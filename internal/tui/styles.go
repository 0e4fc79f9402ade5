package tui

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/sites/internal/model"
)

// Styles holds all lipgloss styles for the TUI.
type Styles struct {
	App          lipgloss.Style
	Header       lipgloss.Style
	Pane         lipgloss.Style
	PaneActive   lipgloss.Style
	Title        lipgloss.Style
	Chip         lipgloss.Style
	ChipActive   lipgloss.Style
	ChipCursor   lipgloss.Style
	Card         lipgloss.Style
	CardSelected lipgloss.Style
	Favorite     lipgloss.Style
	URL          lipgloss.Style
	Description  lipgloss.Style
	Tag          lipgloss.Style
	Help         lipgloss.Style
	Empty        lipgloss.Style
	HintKey      lipgloss.Style // Key portion of hints (e.g., "enter", "j/k")
	HintDesc     lipgloss.Style // Description portion of hints (e.g., "open", "move")
	HintLabel    lipgloss.Style // Row label in the help bar ("Local", "Global")
	Error        lipgloss.Style
	Success      lipgloss.Style
}

// palette pairs the light and dark variant of each color.
type palette struct {
	primary, subtle, accent, border, onAccent, err, ok [2]string
}

// Industrial design: grayscale with single desaturated teal accent.
var industrial = palette{
	primary:  [2]string{"#505050", "#A0A0A0"},
	subtle:   [2]string{"#888888", "#606060"},
	accent:   [2]string{"#4A7070", "#5F8787"},
	border:   [2]string{"#888888", "#505050"},
	onAccent: [2]string{"#F5F5F5", "#1A1A1A"},
	err:      [2]string{"#CC3333", "#FF6666"},
	ok:       [2]string{"#338833", "#66CC66"},
}

// color resolves a palette entry for the theme. Auto defers to the
// terminal background; light and dark pin one side.
func color(theme model.Theme, c [2]string) lipgloss.TerminalColor {
	switch theme {
	case model.ThemeLight:
		return lipgloss.Color(c[0])
	case model.ThemeDark:
		return lipgloss.Color(c[1])
	default:
		return lipgloss.AdaptiveColor{Light: c[0], Dark: c[1]}
	}
}

// DefaultStyles returns the styles for the auto theme.
func DefaultStyles() Styles {
	return NewStyles(model.ThemeAuto)
}

// NewStyles returns the style configuration for a theme.
func NewStyles(theme model.Theme) Styles {
	primary := color(theme, industrial.primary)   // main text
	subtle := color(theme, industrial.subtle)     // secondary text
	accent := color(theme, industrial.accent)     // desaturated teal
	border := color(theme, industrial.border)     // inactive borders
	onAccent := color(theme, industrial.onAccent) // text on accent background

	return Styles{
		App: lipgloss.NewStyle().
			PaddingTop(1).
			PaddingLeft(2).
			PaddingRight(2),

		Header: lipgloss.NewStyle().
			Foreground(subtle).
			PaddingLeft(1),

		Pane: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(border).
			Padding(0, 1),

		PaneActive: lipgloss.NewStyle().
			Border(lipgloss.ThickBorder()).
			BorderForeground(accent).
			Padding(0, 1),

		Title: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		Chip: lipgloss.NewStyle().
			Foreground(subtle),

		ChipActive: lipgloss.NewStyle().
			Bold(true).
			Foreground(accent),

		ChipCursor: lipgloss.NewStyle().
			Background(accent).
			Foreground(onAccent),

		Card: lipgloss.NewStyle().
			Foreground(primary).
			PaddingLeft(1),

		CardSelected: lipgloss.NewStyle().
			PaddingLeft(1).
			Background(accent).
			Foreground(onAccent),

		Favorite: lipgloss.NewStyle().
			Foreground(accent),

		URL: lipgloss.NewStyle().
			Foreground(subtle),

		Description: lipgloss.NewStyle().
			Foreground(primary),

		Tag: lipgloss.NewStyle().
			Foreground(subtle),

		Help: lipgloss.NewStyle().
			Foreground(subtle).
			Padding(1, 0),

		Empty: lipgloss.NewStyle().
			Foreground(subtle),

		HintKey: lipgloss.NewStyle().
			Foreground(subtle),

		HintDesc: lipgloss.NewStyle().
			Foreground(subtle),

		HintLabel: lipgloss.NewStyle().
			Foreground(border),

		Error: lipgloss.NewStyle().
			Foreground(color(theme, industrial.err)).
			Bold(true),

		Success: lipgloss.NewStyle().
			Foreground(color(theme, industrial.ok)).
			Bold(true),
	}
}
