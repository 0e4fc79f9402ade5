package exporter

import (
	"fmt"
	"html"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nikbrunner/sites/internal/model"
)

// DefaultExportPath returns the default export file path.
// Format: ~/Downloads/sites-export-YYYY-MM-DD.html
func DefaultExportPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	filename := fmt.Sprintf("sites-export-%s.html", time.Now().Format("2006-01-02"))
	return filepath.Join(home, "Downloads", filename), nil
}

// Favorites returns a catalog reduced to the favorite sites and the
// categories they use, in catalog order.
func Favorites(c *model.Catalog, favorites *model.FavoriteSet) *model.Catalog {
	out := model.NewCatalog()
	used := make(map[string]bool)
	for _, s := range c.Sites {
		if !favorites.Has(s.ID) {
			continue
		}
		out.Sites = append(out.Sites, s)
		for _, id := range s.CategoryIDs {
			used[id] = true
		}
	}
	for _, cat := range c.Categories {
		if used[cat.ID] {
			out.Categories = append(out.Categories, cat)
		}
	}
	return out
}

// ExportHTML exports the catalog to Netscape bookmark HTML format.
// Each category becomes a folder; a site in several categories appears in
// each of them. Sites without a known category are written at the root.
func ExportHTML(c *model.Catalog) string {
	var b strings.Builder

	// Header
	b.WriteString("<!DOCTYPE NETSCAPE-Bookmark-file-1>\n")
	b.WriteString("<META HTTP-EQUIV=\"Content-Type\" CONTENT=\"text/html; charset=UTF-8\">\n")
	b.WriteString("<TITLE>Bookmarks</TITLE>\n")
	b.WriteString("<H1>Bookmarks</H1>\n")
	b.WriteString("<DL><p>\n")

	prefix := "    "
	for _, cat := range c.Categories {
		fmt.Fprintf(&b, "%s<DT><H3>%s</H3>\n", prefix, html.EscapeString(cat.Name))
		fmt.Fprintf(&b, "%s<DL><p>\n", prefix)
		writeSites(&b, c.SitesInCategory(cat.ID), prefix+"    ")
		fmt.Fprintf(&b, "%s</DL><p>\n", prefix)
	}
	writeSites(&b, c.UncategorizedSites(), prefix)

	// Footer
	b.WriteString("</DL><p>\n")

	return b.String()
}

func writeSites(b *strings.Builder, sites []model.Site, prefix string) {
	for _, s := range sites {
		var attrs strings.Builder
		fmt.Fprintf(&attrs, " HREF=\"%s\"", html.EscapeString(s.URL))
		if s.Icon != "" {
			fmt.Fprintf(&attrs, " ICON_URI=\"%s\"", html.EscapeString(s.Icon))
		}
		if len(s.Tags) > 0 {
			fmt.Fprintf(&attrs, " TAGS=\"%s\"", html.EscapeString(strings.Join(s.Tags, ",")))
		}

		fmt.Fprintf(b, "%s<DT><A%s>%s</A>\n", prefix, attrs.String(), html.EscapeString(s.Name))
		if s.Description != "" {
			fmt.Fprintf(b, "%s<DD>%s\n", prefix, html.EscapeString(s.Description))
		}
	}
}
