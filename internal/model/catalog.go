package model

// Catalog holds all categories and sites for one session. It is read-only
// once loaded.
type Catalog struct {
	Categories []Category `json:"categories"`
	Sites      []Site     `json:"sites"`
}

// NewCatalog creates an empty Catalog with initialized slices.
func NewCatalog() *Catalog {
	return &Catalog{
		Categories: []Category{},
		Sites:      []Site{},
	}
}

// Empty reports whether the catalog has nothing to show.
func (c *Catalog) Empty() bool {
	return len(c.Categories) == 0 && len(c.Sites) == 0
}

// CategoryByID finds a category by ID, returns nil if not found.
func (c *Catalog) CategoryByID(id string) *Category {
	for i := range c.Categories {
		if c.Categories[i].ID == id {
			return &c.Categories[i]
		}
	}
	return nil
}

// SiteByID finds a site by ID, returns nil if not found.
func (c *Catalog) SiteByID(id string) *Site {
	for i := range c.Sites {
		if c.Sites[i].ID == id {
			return &c.Sites[i]
		}
	}
	return nil
}

// SitesInCategory returns the sites that list the category, in catalog order.
func (c *Catalog) SitesInCategory(id string) []Site {
	var result []Site
	for _, s := range c.Sites {
		if s.InCategory(id) {
			result = append(result, s)
		}
	}
	return result
}

// UncategorizedSites returns sites whose categoryIds match no known category.
func (c *Catalog) UncategorizedSites() []Site {
	var result []Site
	for _, s := range c.Sites {
		known := false
		for _, id := range s.CategoryIDs {
			if c.CategoryByID(id) != nil {
				known = true
				break
			}
		}
		if !known {
			result = append(result, s)
		}
	}
	return result
}
