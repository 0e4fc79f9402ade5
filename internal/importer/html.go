package importer

import (
	"io"
	"strings"

	"github.com/nikbrunner/sites/internal/model"
	"golang.org/x/net/html"
)

// ParseHTMLBookmarks parses Netscape bookmark HTML into a catalog.
//
// Folders become categories. Nested folders are flattened into one
// category each, named by their path ("Dev / Go"). Links become sites in
// the category of their enclosing folder; TAGS, ICON_URI and a following
// <DD> description are carried over.
func ParseHTMLBookmarks(r io.Reader) (*model.Catalog, error) {
	doc, err := html.Parse(r)
	if err != nil {
		return nil, err
	}

	c := model.NewCatalog()

	// Track current folder stack for hierarchy
	type frame struct {
		id   string
		path string
	}
	var folderStack []frame
	var pending *frame // folder waiting to be pushed on next DL
	lastSite := -1     // index of the site a <DD> would describe

	var parse func(*html.Node)
	parse = func(n *html.Node) {
		if n.Type == html.ElementNode {
			switch strings.ToLower(n.Data) {
			case "h3":
				name := getTextContent(n)
				if name != "" {
					path := name
					if len(folderStack) > 0 {
						path = folderStack[len(folderStack)-1].path + " / " + name
					}
					cat := model.NewCategory(path)
					c.Categories = append(c.Categories, cat)
					pending = &frame{id: cat.ID, path: path}
				}
				lastSite = -1
				return // Don't recurse into H3

			case "a":
				href := getAttr(n, "href")
				if href == "" {
					// Skip bookmarks without URL
					lastSite = -1
					return
				}

				name := getTextContent(n)
				if name == "" {
					name = href // fallback to URL as name
				}

				var categoryIDs []string
				if len(folderStack) > 0 {
					categoryIDs = []string{folderStack[len(folderStack)-1].id}
				}

				c.Sites = append(c.Sites, model.NewSite(model.NewSiteParams{
					Name:        name,
					URL:         href,
					Icon:        iconURI(n),
					Tags:        parseTags(getAttr(n, "tags")),
					CategoryIDs: categoryIDs,
				}))
				lastSite = len(c.Sites) - 1
				return // Don't recurse into A

			case "dd":
				// Description for the preceding link. The parser nests the
				// following DT elements inside an unclosed DD, so only the
				// leading text is taken and children are still walked.
				if lastSite >= 0 {
					c.Sites[lastSite].Description = leadingText(n)
					lastSite = -1
				}

			case "dl":
				// Definition list - marks folder contents
				pushed := false
				if pending != nil {
					folderStack = append(folderStack, *pending)
					pending = nil
					pushed = true
				}

				for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
					parse(ch)
				}

				if pushed {
					folderStack = folderStack[:len(folderStack)-1]
				}
				lastSite = -1
				return // Don't recurse further, we handled children
			}
		}

		// Recurse into children
		for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
			parse(ch)
		}
	}

	parse(doc)
	return c, nil
}

// parseTags splits a comma-separated TAGS attribute.
func parseTags(raw string) []string {
	tags := []string{}
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

// iconURI returns ICON_URI when it is a fetchable URL. Inline ICON data
// URIs are dropped; the favicon fallback covers them.
func iconURI(n *html.Node) string {
	uri := getAttr(n, "icon_uri")
	if strings.HasPrefix(uri, "http://") || strings.HasPrefix(uri, "https://") {
		return uri
	}
	return ""
}

// leadingText returns the text nodes directly under n, up to its first element child.
func leadingText(n *html.Node) string {
	var text strings.Builder
	for ch := n.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode {
			break
		}
		if ch.Type == html.TextNode {
			text.WriteString(ch.Data)
		}
	}
	return strings.TrimSpace(text.String())
}

// getTextContent returns the text content of a node.
func getTextContent(n *html.Node) string {
	var text strings.Builder
	var extract func(*html.Node)
	extract = func(n *html.Node) {
		if n.Type == html.TextNode {
			text.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			extract(c)
		}
	}
	extract(n)
	return strings.TrimSpace(text.String())
}

// getAttr returns the value of an attribute, case-insensitive.
func getAttr(n *html.Node, key string) string {
	key = strings.ToLower(key)
	for _, attr := range n.Attr {
		if strings.ToLower(attr.Key) == key {
			return attr.Val
		}
	}
	return ""
}
