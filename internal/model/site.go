package model

import (
	"fmt"
	"net/url"
	"strings"
)

// DefaultFaviconURL is the fallback icon service. %s is replaced with the site host.
const DefaultFaviconURL = "https://www.google.com/s2/favicons?sz=64&domain=%s"

// Site is a single directory entry.
type Site struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	URL         string   `json:"url"`
	Description string   `json:"description,omitempty"`
	Icon        string   `json:"icon,omitempty"`
	Tags        []string `json:"tags,omitempty"`
	CategoryIDs []string `json:"categoryIds,omitempty"`
}

// NewSiteParams holds parameters for creating a new Site.
type NewSiteParams struct {
	Name        string
	URL         string
	Description string
	Icon        string
	Tags        []string
	CategoryIDs []string
}

// NewSite creates a Site with a generated UUID.
func NewSite(params NewSiteParams) Site {
	tags := params.Tags
	if tags == nil {
		tags = []string{}
	}

	return Site{
		ID:          GenerateUUID(),
		Name:        params.Name,
		URL:         params.URL,
		Description: params.Description,
		Icon:        params.Icon,
		Tags:        tags,
		CategoryIDs: params.CategoryIDs,
	}
}

// Host returns the hostname of the site URL, or "" if it cannot be parsed.
func (s Site) Host() string {
	u, err := url.Parse(s.URL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}

// IconURL returns the explicit icon, or the fallback service URL for the
// site host. fallback is a format string with a single %s for the host;
// an empty fallback uses DefaultFaviconURL.
func (s Site) IconURL(fallback string) string {
	if s.Icon != "" {
		return s.Icon
	}
	host := s.Host()
	if host == "" {
		return ""
	}
	if fallback == "" {
		fallback = DefaultFaviconURL
	}
	if !strings.Contains(fallback, "%s") {
		return fallback
	}
	return fmt.Sprintf(fallback, url.QueryEscape(host))
}

// InCategory reports whether the site belongs to the category.
func (s Site) InCategory(id string) bool {
	for _, c := range s.CategoryIDs {
		if c == id {
			return true
		}
	}
	return false
}
