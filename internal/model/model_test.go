package model_test

import (
	"encoding/json"
	"testing"

	"github.com/nikbrunner/sites/internal/model"
)

func TestCatalog_JSONDecoding(t *testing.T) {
	data := `{
		"categories": [{"id": "dev", "name": "Development"}],
		"sites": [
			{"id": "gh", "name": "GitHub", "url": "https://github.com", "tags": ["git"], "categoryIds": ["dev"]},
			{"id": "hn", "name": "Hacker News", "url": "https://news.ycombinator.com"}
		]
	}`

	var c model.Catalog
	if err := json.Unmarshal([]byte(data), &c); err != nil {
		t.Fatalf("failed to unmarshal: %v", err)
	}

	if len(c.Categories) != 1 || c.Categories[0].Name != "Development" {
		t.Errorf("unexpected categories: %+v", c.Categories)
	}
	if len(c.Sites) != 2 {
		t.Fatalf("expected 2 sites, got %d", len(c.Sites))
	}
	if !c.Sites[0].InCategory("dev") {
		t.Error("expected GitHub to be in dev")
	}
	if c.Sites[1].CategoryIDs != nil {
		t.Errorf("expected nil categoryIds for Hacker News, got %v", c.Sites[1].CategoryIDs)
	}
}

func TestCatalog_Lookups(t *testing.T) {
	c := model.Catalog{
		Categories: []model.Category{{ID: "dev", Name: "Development"}},
		Sites: []model.Site{
			{ID: "s1", Name: "One", CategoryIDs: []string{"dev"}},
			{ID: "s2", Name: "Two", CategoryIDs: []string{"unknown"}},
			{ID: "s3", Name: "Three"},
		},
	}

	if c.CategoryByID("dev") == nil {
		t.Error("expected to find category dev")
	}
	if c.CategoryByID("nope") != nil {
		t.Error("expected nil for unknown category")
	}
	if s := c.SiteByID("s2"); s == nil || s.Name != "Two" {
		t.Errorf("expected site Two, got %v", s)
	}

	if got := c.SitesInCategory("dev"); len(got) != 1 || got[0].ID != "s1" {
		t.Errorf("expected [s1] in dev, got %v", got)
	}
	if got := c.UncategorizedSites(); len(got) != 2 {
		t.Errorf("expected 2 uncategorized sites, got %d", len(got))
	}
}

func TestNewCatalog_IsEmpty(t *testing.T) {
	c := model.NewCatalog()
	if !c.Empty() {
		t.Error("expected new catalog to be empty")
	}
	if c.Categories == nil || c.Sites == nil {
		t.Error("expected initialized slices")
	}
}

func TestSite_IconURL(t *testing.T) {
	tests := []struct {
		name     string
		site     model.Site
		fallback string
		want     string
	}{
		{
			name: "explicit icon wins",
			site: model.Site{URL: "https://go.dev", Icon: "https://go.dev/favicon.ico"},
			want: "https://go.dev/favicon.ico",
		},
		{
			name: "default fallback uses host",
			site: model.Site{URL: "https://go.dev/doc/"},
			want: "https://www.google.com/s2/favicons?sz=64&domain=go.dev",
		},
		{
			name:     "custom fallback",
			site:     model.Site{URL: "https://example.com:8080/x"},
			fallback: "https://icons.example/%s.png",
			want:     "https://icons.example/example.com.png",
		},
		{
			name: "unparseable url has no icon",
			site: model.Site{URL: "::not a url"},
			want: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.site.IconURL(tt.fallback); got != tt.want {
				t.Errorf("IconURL() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFavoriteSet_ToggleTwiceRestores(t *testing.T) {
	f := model.NewFavoriteSet("a", "b")

	if on := f.Toggle("c"); !on {
		t.Error("expected c to be added")
	}
	if on := f.Toggle("c"); on {
		t.Error("expected c to be removed")
	}

	got := f.IDs()
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Errorf("expected [a b], got %v", got)
	}

	f.Toggle("a")
	f.Toggle("a")
	got = f.IDs()
	if len(got) != 2 || !f.Has("a") || !f.Has("b") {
		t.Errorf("expected a and b after double toggle, got %v", got)
	}
}

func TestFavoriteSet_DropsDuplicates(t *testing.T) {
	f := model.NewFavoriteSet("a", "a", "b")
	if f.Len() != 2 {
		t.Errorf("expected 2 favorites, got %d", f.Len())
	}
}

func TestFavoriteSet_RemoveKeepsOrder(t *testing.T) {
	f := model.NewFavoriteSet("a", "b", "c", "d")
	f.Toggle("b")

	got := f.IDs()
	want := []string{"a", "c", "d"}
	if len(got) != len(want) {
		t.Fatalf("expected %v, got %v", want, got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("IDs()[%d] = %q, want %q", i, got[i], want[i])
		}
	}
	if !f.Has("d") {
		t.Error("expected d to remain after removing b")
	}
	f.Toggle("d")
	if f.Has("d") {
		t.Error("expected d to be removed")
	}
}

func TestFavoriteSet_NilIsEmpty(t *testing.T) {
	var f *model.FavoriteSet
	if f.Has("a") || f.Len() != 0 || len(f.IDs()) != 0 {
		t.Error("nil favorite set should behave as empty")
	}
}

func TestTheme_CycleHasPeriodThree(t *testing.T) {
	for _, theme := range []model.Theme{model.ThemeAuto, model.ThemeLight, model.ThemeDark} {
		if got := theme.Next().Next().Next(); got != theme {
			t.Errorf("next^3(%s) = %s", theme, got)
		}
	}

	if model.ThemeAuto.Next() != model.ThemeLight {
		t.Error("auto should advance to light")
	}
	if model.ThemeLight.Next() != model.ThemeDark {
		t.Error("light should advance to dark")
	}
	if model.ThemeDark.Next() != model.ThemeAuto {
		t.Error("dark should advance to auto")
	}
}

func TestTheme_ParseAndAttribute(t *testing.T) {
	tests := []struct {
		stored    string
		want      model.Theme
		attribute string
	}{
		{"", model.ThemeAuto, ""},
		{"auto", model.ThemeAuto, ""},
		{"light", model.ThemeLight, "light"},
		{"dark", model.ThemeDark, "dark"},
		{"solarized", model.ThemeAuto, ""},
	}

	for _, tt := range tests {
		got := model.ParseTheme(tt.stored)
		if got != tt.want {
			t.Errorf("ParseTheme(%q) = %s, want %s", tt.stored, got, tt.want)
		}
		if got.Attribute() != tt.attribute {
			t.Errorf("Attribute(%s) = %q, want %q", got, got.Attribute(), tt.attribute)
		}
	}
}

func TestSortMode_Cycle(t *testing.T) {
	m := model.SortDefault
	m = m.Next()
	if m != model.SortAZ {
		t.Errorf("expected az, got %s", m)
	}
	m = m.Next()
	if m != model.SortZA {
		t.Errorf("expected za, got %s", m)
	}
	if m.Next() != model.SortDefault {
		t.Errorf("expected default, got %s", m.Next())
	}
	if model.ParseSortMode("bogus") != model.SortDefault {
		t.Error("unknown sort mode should parse as default")
	}
}

func TestFilterState_ToggleCategory(t *testing.T) {
	f := model.NewFilterState()
	if f.HasCategoryFilter() {
		t.Error("new filter state should have no category filter")
	}

	if !f.ToggleCategory("dev") {
		t.Error("expected dev to be selected")
	}
	if !f.CategorySelected("dev") || !f.HasCategoryFilter() {
		t.Error("expected dev filter to be active")
	}
	if f.ToggleCategory("dev") {
		t.Error("expected dev to be deselected")
	}
	if f.HasCategoryFilter() {
		t.Error("expected no category filter after second toggle")
	}
}

func TestFilterState_ZeroValueToggle(t *testing.T) {
	var f model.FilterState
	f.ToggleCategory("x")
	if !f.CategorySelected("x") {
		t.Error("zero value filter state should accept toggles")
	}
}
