package picker

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/sites/internal/model"
	"github.com/nikbrunner/sites/internal/search"
	"github.com/nikbrunner/sites/internal/tui/layout"
)

// Header (2) + footer (2) lines around the result list; each result takes up to 3 lines.
const (
	chromeLines    = 4
	linesPerResult = 3
)

var (
	selectedStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("212")).
			Bold(true)

	normalStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("252"))

	matchStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("214")).
			Bold(true)

	urlStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("244")).
			Italic(true)

	descStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("246"))

	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("99")).
			Bold(true).
			MarginBottom(1)
)

type keyMap struct {
	Up     key.Binding
	Down   key.Binding
	Open   key.Binding
	Cancel key.Binding
}

var keys = keyMap{
	Up:     key.NewBinding(key.WithKeys("k", "up", "ctrl+p")),
	Down:   key.NewBinding(key.WithKeys("j", "down", "ctrl+n")),
	Open:   key.NewBinding(key.WithKeys("enter")),
	Cancel: key.NewBinding(key.WithKeys("q", "esc", "ctrl+c")),
}

// Picker is a simple TUI for selecting from search results.
type Picker struct {
	results   []search.SearchResult
	query     string
	cursor    int
	selected  bool
	cancelled bool
	width     int
	height    int
}

// New creates a new Picker over quick-search results.
func New(results []search.SearchResult, query string) Picker {
	return Picker{
		results: results,
		query:   query,
		cursor:  0,
		width:   80,
		height:  24,
	}
}

// Init implements tea.Model.
func (p Picker) Init() tea.Cmd {
	return nil
}

// Update implements tea.Model.
func (p Picker) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		p.width = msg.Width
		p.height = msg.Height
		return p, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, keys.Cancel):
			p.cancelled = true
			return p, tea.Quit

		case key.Matches(msg, keys.Open):
			p.selected = true
			return p, tea.Quit

		case key.Matches(msg, keys.Down):
			p.moveDown()

		case key.Matches(msg, keys.Up):
			p.moveUp()
		}
	}

	return p, nil
}

func (p *Picker) moveDown() {
	if p.cursor < len(p.results)-1 {
		p.cursor++
	}
}

func (p *Picker) moveUp() {
	if p.cursor > 0 {
		p.cursor--
	}
}

// View implements tea.Model.
func (p Picker) View() string {
	var b strings.Builder

	// Header
	b.WriteString(headerStyle.Render(fmt.Sprintf("Search: %s (%d results)", p.query, len(p.results))))
	b.WriteString("\n\n")

	// List items, scrolled to keep the cursor visible
	maxVisible := max((p.height-chromeLines)/linesPerResult, 1)
	start, end := layout.CalculateVisibleListItems(maxVisible, p.cursor, len(p.results))
	for i := start; i < end; i++ {
		result := p.results[i]
		cursor := "  "
		style := normalStyle
		if i == p.cursor {
			cursor = "> "
			style = selectedStyle
		}

		name := highlightMatches(result.Site.Name, result.MatchedIndexes, style)
		url := urlStyle.Render(result.Site.URL)

		b.WriteString(fmt.Sprintf("%s%s\n", cursor, name))
		b.WriteString(fmt.Sprintf("   %s\n", url))
		if result.Site.Description != "" {
			b.WriteString(fmt.Sprintf("   %s\n", descStyle.Render(result.Site.Description)))
		}
	}

	// Footer
	b.WriteString("\n")
	b.WriteString(lipgloss.NewStyle().Foreground(lipgloss.Color("244")).Render("j/k: move  Enter: open  q/Esc: cancel"))

	return b.String()
}

// highlightMatches renders name with the fuzzy-matched bytes emphasised.
func highlightMatches(name string, matched []int, base lipgloss.Style) string {
	if len(matched) == 0 {
		return base.Render(name)
	}

	hit := make(map[int]bool, len(matched))
	for _, i := range matched {
		hit[i] = true
	}

	var b strings.Builder
	for i, r := range name {
		if hit[i] {
			b.WriteString(matchStyle.Render(string(r)))
		} else {
			b.WriteString(base.Render(string(r)))
		}
	}
	return b.String()
}

// SelectedSite returns the selected site, or nil if cancelled.
func (p Picker) SelectedSite() *model.Site {
	if p.cancelled || !p.selected {
		return nil
	}
	if p.cursor < len(p.results) {
		return p.results[p.cursor].Site
	}
	return nil
}

// Cancelled returns true if the user cancelled the selection.
func (p Picker) Cancelled() bool {
	return p.cancelled
}
