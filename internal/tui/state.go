package tui

import (
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/nikbrunner/sites/internal/model"
	"github.com/nikbrunner/sites/internal/tui/layout"
)

// Mode is the input mode of the app.
type Mode int

const (
	ModeNormal Mode = iota
	ModeSearch
	ModeHelp
)

// Focus is the region that receives navigation keys in ModeNormal.
type Focus int

const (
	FocusSites Focus = iota
	FocusCategories
)

// MessageType styles the transient message line.
type MessageType int

const (
	MessageInfo MessageType = iota
	MessageSuccess
	MessageError
)

// SearchState holds the search box.
type SearchState struct {
	Input textinput.Model
}

// NewSearchState creates a new SearchState with an initialized input.
func NewSearchState(cfg layout.LayoutConfig) SearchState {
	input := textinput.New()
	input.Placeholder = "Search sites..."
	input.Prompt = "/"
	input.CharLimit = cfg.Input.SearchCharLimit
	input.Width = cfg.Input.SearchWidth

	return SearchState{Input: input}
}

// Reset clears the search box.
func (s *SearchState) Reset() {
	s.Input.Reset()
}

// ChipState holds the cursor over the category chip row.
type ChipState struct {
	Cursor int
}

// Move shifts the cursor by delta, clamped to [0, count).
func (c *ChipState) Move(delta, count int) {
	if count == 0 {
		c.Cursor = 0
		return
	}
	c.Cursor = min(max(c.Cursor+delta, 0), count-1)
}

// SiteList holds the visible cards and the card cursor.
type SiteList struct {
	Visible []model.Site
	Cursor  int
}

// SetVisible replaces the visible list, keeping the cursor in range.
func (l *SiteList) SetVisible(sites []model.Site) {
	l.Visible = sites
	l.Clamp()
}

// Clamp keeps the cursor inside the visible list.
func (l *SiteList) Clamp() {
	if l.Cursor >= len(l.Visible) {
		l.Cursor = len(l.Visible) - 1
	}
	if l.Cursor < 0 {
		l.Cursor = 0
	}
}

// Selected returns the site under the cursor, or nil when the list is empty.
func (l *SiteList) Selected() *model.Site {
	if len(l.Visible) == 0 || l.Cursor >= len(l.Visible) {
		return nil
	}
	return &l.Visible[l.Cursor]
}
