package model

// SortMode controls the order of visible sites.
type SortMode string

const (
	SortDefault SortMode = "default" // catalog order
	SortAZ      SortMode = "az"
	SortZA      SortMode = "za"
)

// ParseSortMode maps a selector value to a SortMode. Unknown values are default.
func ParseSortMode(s string) SortMode {
	switch SortMode(s) {
	case SortAZ:
		return SortAZ
	case SortZA:
		return SortZA
	default:
		return SortDefault
	}
}

// Next cycles default -> az -> za -> default.
func (m SortMode) Next() SortMode {
	switch m {
	case SortDefault:
		return SortAZ
	case SortAZ:
		return SortZA
	default:
		return SortDefault
	}
}

// Label returns a short display name.
func (m SortMode) Label() string {
	switch m {
	case SortAZ:
		return "A-Z"
	case SortZA:
		return "Z-A"
	default:
		return "default"
	}
}

// FilterState is the transient filter configuration. It is never persisted.
type FilterState struct {
	Search        string
	Categories    map[string]bool
	Sort          SortMode
	FavoritesOnly bool
}

// NewFilterState returns the initial state: no filters, catalog order.
func NewFilterState() FilterState {
	return FilterState{
		Categories: make(map[string]bool),
		Sort:       SortDefault,
	}
}

// HasCategoryFilter reports whether any category is selected.
func (f FilterState) HasCategoryFilter() bool {
	return len(f.Categories) > 0
}

// CategorySelected reports whether id is selected.
func (f FilterState) CategorySelected(id string) bool {
	return f.Categories[id]
}

// ToggleCategory flips the selection of id and returns whether it is now selected.
func (f *FilterState) ToggleCategory(id string) bool {
	if f.Categories == nil {
		f.Categories = make(map[string]bool)
	}
	if f.Categories[id] {
		delete(f.Categories, id)
		return false
	}
	f.Categories[id] = true
	return true
}
