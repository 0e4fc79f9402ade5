// Package filter computes the visible site list from the catalog, the
// favorite set and the transient filter state.
package filter

import (
	"slices"
	"strings"

	"github.com/nikbrunner/sites/internal/model"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"
)

// ComputeVisible returns the sites to show, in display order.
//
// A site is included when it passes every active filter: favorites-only,
// category selection (any overlap; sites without categories never match),
// and search text (case-insensitive substring of name, description and
// space-joined tags). Sort modes az/za apply a stable, locale-aware name
// sort; default keeps catalog order. The input slice is never modified.
func ComputeVisible(sites []model.Site, favorites *model.FavoriteSet, state model.FilterState) []model.Site {
	query := strings.ToLower(state.Search)
	hasCategoryFilter := state.HasCategoryFilter()

	visible := make([]model.Site, 0, len(sites))
	for _, site := range sites {
		if state.FavoritesOnly && !favorites.Has(site.ID) {
			continue
		}
		if hasCategoryFilter && !matchesCategory(site, state.Categories) {
			continue
		}
		if query != "" && !strings.Contains(haystack(site), query) {
			continue
		}
		visible = append(visible, site)
	}

	switch state.Sort {
	case model.SortAZ, model.SortZA:
		sortByName(visible, state.Sort == model.SortZA)
	}

	return visible
}

// haystack returns the lower-cased text searched for a site.
func haystack(site model.Site) string {
	return strings.ToLower(site.Name + " " + site.Description + " " + strings.Join(site.Tags, " "))
}

func matchesCategory(site model.Site, selected map[string]bool) bool {
	for _, id := range site.CategoryIDs {
		if selected[id] {
			return true
		}
	}
	return false
}

// sortByName sorts in place. Descending order reverses the comparison,
// so equal names keep catalog order in both directions.
func sortByName(sites []model.Site, descending bool) {
	c := collate.New(language.Und)
	slices.SortStableFunc(sites, func(a, b model.Site) int {
		if descending {
			return c.CompareString(b.Name, a.Name)
		}
		return c.CompareString(a.Name, b.Name)
	})
}
