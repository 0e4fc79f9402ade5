package search

import (
	"github.com/nikbrunner/sites/internal/model"
	"github.com/sahilm/fuzzy"
)

// SearchResult represents a fuzzy search match.
type SearchResult struct {
	Site           *model.Site
	MatchedIndexes []int
	Score          int
}

// siteNames implements fuzzy.Source for a site slice.
type siteNames []*model.Site

func (sn siteNames) String(i int) string {
	return sn[i].Name
}

func (sn siteNames) Len() int {
	return len(sn)
}

// FuzzySearchSites searches all catalog sites by name using fuzzy matching.
// Returns results sorted by match score (best first).
func FuzzySearchSites(c *model.Catalog, query string) []SearchResult {
	if query == "" {
		return nil
	}

	sites := make(siteNames, len(c.Sites))
	for i := range c.Sites {
		sites[i] = &c.Sites[i]
	}

	matches := fuzzy.FindFrom(query, sites)

	results := make([]SearchResult, len(matches))
	for i, m := range matches {
		results[i] = SearchResult{
			Site:           sites[m.Index],
			MatchedIndexes: m.MatchedIndexes,
			Score:          m.Score,
		}
	}

	return results
}
