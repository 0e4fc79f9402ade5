package filter_test

import (
	"testing"

	"github.com/nikbrunner/sites/internal/filter"
	"github.com/nikbrunner/sites/internal/model"
	"gotest.tools/v3/assert"
)

func ids(sites []model.Site) []string {
	out := make([]string, len(sites))
	for i, s := range sites {
		out[i] = s.ID
	}
	return out
}

func names(sites []model.Site) []string {
	out := make([]string, len(sites))
	for i, s := range sites {
		out[i] = s.Name
	}
	return out
}

func testSites() []model.Site {
	return []model.Site{
		{ID: "1", Name: "Foo", Tags: []string{"x"}, CategoryIDs: []string{"tools"}},
		{ID: "2", Name: "Bar", Tags: []string{"y"}, CategoryIDs: []string{"docs"}},
		{ID: "3", Name: "Alpha", Description: "First letter", Tags: []string{"beta"}, CategoryIDs: []string{"docs", "tools"}},
		{ID: "4", Name: "Zulu"},
	}
}

func TestComputeVisible_NoFilters(t *testing.T) {
	got := filter.ComputeVisible(testSites(), model.NewFavoriteSet(), model.NewFilterState())
	assert.DeepEqual(t, ids(got), []string{"1", "2", "3", "4"})
}

func TestComputeVisible_EndToEnd(t *testing.T) {
	sites := []model.Site{
		{ID: "1", Name: "Foo", Tags: []string{"x"}},
		{ID: "2", Name: "Bar", Tags: []string{"y"}},
	}
	favorites := model.NewFavoriteSet()
	state := model.NewFilterState()

	assert.DeepEqual(t, names(filter.ComputeVisible(sites, favorites, state)), []string{"Foo", "Bar"})

	state.Sort = model.SortAZ
	assert.DeepEqual(t, names(filter.ComputeVisible(sites, favorites, state)), []string{"Bar", "Foo"})

	state.Search = "y"
	assert.DeepEqual(t, names(filter.ComputeVisible(sites, favorites, state)), []string{"Bar"})

	favorites.Toggle("2")
	state.FavoritesOnly = true
	assert.DeepEqual(t, names(filter.ComputeVisible(sites, favorites, state)), []string{"Bar"})
}

func TestComputeVisible_SearchIsCaseInsensitiveAcrossFields(t *testing.T) {
	tests := []struct {
		query string
		want  []string
	}{
		{"ALP", []string{"3"}},
		{"bet", []string{"3"}},
		{"first LETTER", []string{"3"}},
		{"o", []string{"1"}},
		{"ZUL", []string{"4"}},
		{"nothing matches", []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			state := model.NewFilterState()
			state.Search = tt.query
			got := filter.ComputeVisible(testSites(), nil, state)
			assert.DeepEqual(t, ids(got), tt.want)
		})
	}
}

func TestComputeVisible_SearchSpansJoinedTags(t *testing.T) {
	sites := []model.Site{{ID: "1", Name: "Tool", Tags: []string{"go", "lang"}}}
	state := model.NewFilterState()
	state.Search = "go lang"

	assert.DeepEqual(t, ids(filter.ComputeVisible(sites, nil, state)), []string{"1"})
}

func TestComputeVisible_EmptyCategorySelectionIsNoop(t *testing.T) {
	state := model.NewFilterState()
	got := filter.ComputeVisible(testSites(), nil, state)
	assert.Equal(t, len(got), 4)
}

func TestComputeVisible_CategoryFilter(t *testing.T) {
	state := model.NewFilterState()
	state.ToggleCategory("docs")
	assert.DeepEqual(t, ids(filter.ComputeVisible(testSites(), nil, state)), []string{"2", "3"})

	state.ToggleCategory("tools")
	assert.DeepEqual(t, ids(filter.ComputeVisible(testSites(), nil, state)), []string{"1", "2", "3"})
}

func TestComputeVisible_SiteWithoutCategoriesExcludedUnderCategoryFilter(t *testing.T) {
	state := model.NewFilterState()
	state.ToggleCategory("tools")

	got := filter.ComputeVisible(testSites(), nil, state)
	for _, s := range got {
		assert.Assert(t, s.ID != "4", "site without categories should be excluded")
	}
}

func TestComputeVisible_UnknownCategoryNeverMatches(t *testing.T) {
	state := model.NewFilterState()
	state.ToggleCategory("missing")
	assert.Equal(t, len(filter.ComputeVisible(testSites(), nil, state)), 0)
}

func TestComputeVisible_FavoritesOnlyWithEmptySet(t *testing.T) {
	state := model.NewFilterState()
	state.FavoritesOnly = true

	assert.Equal(t, len(filter.ComputeVisible(testSites(), model.NewFavoriteSet(), state)), 0)

	state.Search = "foo"
	state.Sort = model.SortZA
	assert.Equal(t, len(filter.ComputeVisible(testSites(), nil, state)), 0)
}

func TestComputeVisible_FavoritesOnlyKeepsCatalogOrder(t *testing.T) {
	state := model.NewFilterState()
	state.FavoritesOnly = true
	favorites := model.NewFavoriteSet("4", "1")

	assert.DeepEqual(t, ids(filter.ComputeVisible(testSites(), favorites, state)), []string{"1", "4"})
}

func TestComputeVisible_SortModesAreMutuallyReversed(t *testing.T) {
	state := model.NewFilterState()

	state.Sort = model.SortAZ
	az := names(filter.ComputeVisible(testSites(), nil, state))
	assert.DeepEqual(t, az, []string{"Alpha", "Bar", "Foo", "Zulu"})

	state.Sort = model.SortZA
	za := names(filter.ComputeVisible(testSites(), nil, state))
	assert.DeepEqual(t, za, []string{"Zulu", "Foo", "Bar", "Alpha"})

	state.Sort = model.SortDefault
	assert.DeepEqual(t, names(filter.ComputeVisible(testSites(), nil, state)), []string{"Foo", "Bar", "Alpha", "Zulu"})
}

func TestComputeVisible_SortIsStable(t *testing.T) {
	sites := []model.Site{
		{ID: "a", Name: "Same"},
		{ID: "b", Name: "Other"},
		{ID: "c", Name: "Same"},
	}
	state := model.NewFilterState()

	state.Sort = model.SortAZ
	assert.DeepEqual(t, ids(filter.ComputeVisible(sites, nil, state)), []string{"b", "a", "c"})

	state.Sort = model.SortZA
	assert.DeepEqual(t, ids(filter.ComputeVisible(sites, nil, state)), []string{"a", "c", "b"})
}

func TestComputeVisible_LocaleAwareSort(t *testing.T) {
	sites := []model.Site{
		{ID: "1", Name: "Zeta"},
		{ID: "2", Name: "Émile"},
		{ID: "3", Name: "Eagle"},
	}
	state := model.NewFilterState()
	state.Sort = model.SortAZ

	// Accented E sorts with E, not after Z as a byte comparison would.
	assert.DeepEqual(t, ids(filter.ComputeVisible(sites, nil, state)), []string{"3", "2", "1"})
}

func TestComputeVisible_IsDeterministicAndPure(t *testing.T) {
	sites := testSites()
	favorites := model.NewFavoriteSet("3", "1")
	state := model.NewFilterState()
	state.Sort = model.SortZA
	state.Search = "a"

	first := filter.ComputeVisible(sites, favorites, state)
	second := filter.ComputeVisible(sites, favorites, state)
	assert.DeepEqual(t, first, second)

	// Input order untouched by sorting.
	assert.DeepEqual(t, ids(sites), []string{"1", "2", "3", "4"})
}

func TestComputeVisible_EmptyCatalog(t *testing.T) {
	got := filter.ComputeVisible(nil, nil, model.NewFilterState())
	assert.Assert(t, got != nil)
	assert.Equal(t, len(got), 0)
}
