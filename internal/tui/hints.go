package tui

import "strings"

// Hint represents a single keybind hint for display.
type Hint struct {
	Key  string // Display key (e.g., "j/k", "enter")
	Desc string // Short description (e.g., "move", "open")
}

// renderHint renders a single hint as "key:desc" with styling.
func (a App) renderHint(h Hint) string {
	return a.styles.HintKey.Render(h.Key) + ":" + a.styles.HintDesc.Render(h.Desc)
}

// renderHints renders hints in horizontal format for bottom bar: "j/k:move enter:open"
func (a App) renderHints(hints HintSet) string {
	return a.renderHintSlice(hints.All())
}

// renderHintSlice renders a slice of hints in horizontal format.
func (a App) renderHintSlice(hints []Hint) string {
	if len(hints) == 0 {
		return ""
	}

	parts := make([]string, len(hints))
	for i, h := range hints {
		parts[i] = a.renderHint(h)
	}
	return strings.Join(parts, " ")
}

// HintSet is an ordered collection of hints by group.
type HintSet struct {
	Nav    []Hint // Navigation hints (j/k, h/l, etc.)
	Action []Hint // Action hints (enter, *, etc.)
	System []Hint // System hints (?, q, esc)
}

// All returns all hints flattened in display order: Nav + Action + System.
func (h HintSet) All() []Hint {
	result := make([]Hint, 0, len(h.Nav)+len(h.Action)+len(h.System))
	result = append(result, h.Nav...)
	result = append(result, h.Action...)
	result = append(result, h.System...)
	return result
}

// getContextualHints returns the appropriate hints for the current mode and focus.
func (a App) getContextualHints() HintSet {
	switch a.mode {
	case ModeNormal:
		if a.focus == FocusCategories {
			return a.getCategoryHints()
		}
		return a.getSiteHints()
	case ModeSearch:
		return a.getSearchModeHints()
	case ModeHelp:
		// Help overlay covers screen, minimal hints
		return HintSet{
			System: []Hint{{Key: "?/q/esc", Desc: "close"}},
		}
	default:
		return HintSet{}
	}
}

// getSiteHints returns hints while the site cards have focus.
func (a App) getSiteHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "j/k", Desc: "move"},
			{Key: "tab", Desc: "categories"},
		},
		Action: []Hint{
			{Key: "enter", Desc: "open"},
			{Key: "*", Desc: "fav"},
			{Key: "Y", Desc: "yank"},
		},
	}
}

// getCategoryHints returns hints while the category chips have focus.
func (a App) getCategoryHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "h/l", Desc: "move"},
			{Key: "tab", Desc: "sites"},
		},
		Action: []Hint{
			{Key: "space", Desc: "toggle"},
		},
	}
}

// getSearchModeHints returns hints while typing a search.
func (a App) getSearchModeHints() HintSet {
	return HintSet{
		Nav: []Hint{
			{Key: "type", Desc: "search"},
		},
		Action: []Hint{
			{Key: "ctrl+u", Desc: "clear"},
		},
		System: []Hint{
			{Key: "enter/esc", Desc: "done"},
		},
	}
}

// getGlobalHints returns hints available regardless of focus in ModeNormal.
func (a App) getGlobalHints() []Hint {
	return []Hint{
		{Key: "/", Desc: "search"},
		{Key: "o", Desc: "sort"},
		{Key: "f", Desc: "favs"},
		{Key: "t", Desc: "theme"},
		{Key: "?", Desc: "help"},
		{Key: "q", Desc: "quit"},
	}
}
