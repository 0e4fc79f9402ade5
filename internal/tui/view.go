package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/nikbrunner/sites/internal/model"
	"github.com/nikbrunner/sites/internal/tui/layout"
)

// Card markers.
const (
	markerFavorite    = "★"
	markerNotFavorite = "☆"
)

// renderView creates the complete view: header, chip row, card list with
// preview, help bar.
func (a App) renderView() string {
	if a.mode == ModeHelp {
		return a.renderHelpOverlay()
	}
	if !a.loaded {
		return a.renderLoading()
	}

	paneHeight := layout.CalculatePaneHeight(a.height, a.layoutConfig.Pane)
	split := layout.CalculateSplit(a.width, a.layoutConfig.Pane)

	columns := lipgloss.JoinHorizontal(
		lipgloss.Top,
		a.renderSitesPane(split.ListWidth, paneHeight),
		a.renderPreviewPane(split.PreviewWidth, paneHeight),
	)

	content := a.styles.App.Render(
		lipgloss.JoinVertical(lipgloss.Left,
			a.renderHeader(),
			a.renderCategories(a.catalog.Categories, a.filter),
			columns,
			a.renderHelpBar(),
		),
	)

	// Use Place to ensure exact terminal dimensions and prevent overflow
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderLoading is shown until the catalog load completes.
func (a App) renderLoading() string {
	content := a.styles.App.Render(
		a.styles.Title.Render("sites") + "\n\n" + a.styles.Empty.Render("Loading sites..."),
	)
	return lipgloss.Place(a.width, a.height, lipgloss.Left, lipgloss.Top, content)
}

// renderHeader renders the title, search box and filter indicators.
func (a App) renderHeader() string {
	var header strings.Builder

	header.WriteString(a.styles.Title.Render("sites") + "  ")

	if a.mode == ModeSearch {
		header.WriteString(a.search.Input.View() + "  ")
	} else if a.filter.Search != "" {
		header.WriteString(a.styles.Tag.Render("/"+a.filter.Search) + "  ")
	}

	favs := "off"
	if a.filter.FavoritesOnly {
		favs = "on"
	}
	header.WriteString(a.styles.Header.Render(fmt.Sprintf(
		"[sort:%s] [favs:%s] [theme:%s]  %d/%d",
		a.filter.Sort.Label(), favs, a.theme, len(a.list.Visible), len(a.catalog.Sites),
	)))

	return header.String()
}

// renderCategories renders one chip per category in catalog order. Active
// chips are marked and styled ChipActive; the chip cursor is shown while
// the chip row has focus.
func (a App) renderCategories(categories []model.Category, state model.FilterState) string {
	if len(categories) == 0 {
		return a.styles.Empty.Render("(no categories)")
	}

	chips := make([]string, len(categories))
	for i, cat := range categories {
		label := "[ ] " + cat.Name
		style := a.styles.Chip
		if state.CategorySelected(cat.ID) {
			label = "[x] " + cat.Name
			style = a.styles.ChipActive
		}
		if a.focus == FocusCategories && a.mode == ModeNormal && i == a.chips.Cursor {
			style = a.styles.ChipCursor
		}
		chips[i] = style.Render(label)
	}

	// Wrap onto further lines rather than overflow the terminal.
	return lipgloss.NewStyle().
		Width(max(a.width-4, 1)).
		Render(strings.Join(chips, "  "))
}

// renderSitesPane renders the scrolled card list in a bordered pane.
func (a App) renderSitesPane(width, height int) string {
	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)
	visibleCards := layout.CalculateVisibleCards(height, 0, a.layoutConfig.Pane)

	content := a.renderSites(a.list.Visible, a.favorites, visibleCards, itemWidth)

	// Use active style when the cards are focused
	style := a.styles.Pane
	if a.focus == FocusSites {
		style = a.styles.PaneActive
	}
	return style.
		Width(width).
		Height(height).
		Render(content)
}

// renderSites renders one card per visible site, scrolled so the card
// cursor stays in view.
func (a App) renderSites(sites []model.Site, favorites *model.FavoriteSet, maxCards, width int) string {
	if len(sites) == 0 {
		return a.styles.Empty.Render("(no sites)")
	}

	offset := layout.CalculateViewportOffset(a.list.Cursor, len(sites), maxCards)
	end := min(offset+maxCards, len(sites))

	cards := make([]string, 0, end-offset)
	for i := offset; i < end; i++ {
		selected := a.focus == FocusSites && i == a.list.Cursor
		cards = append(cards, a.renderCard(sites[i], favorites.Has(sites[i].ID), selected, width))
	}
	return strings.Join(cards, "\n\n")
}

// renderCard renders a site card: favorite marker and name, host,
// description, tags in original order.
func (a App) renderCard(site model.Site, favorite, selected bool, width int) string {
	marker := markerNotFavorite
	if favorite {
		marker = markerFavorite
	}

	cfg := a.layoutConfig.Text
	title, _ := layout.TruncateText(marker+" "+site.Name, width, cfg)
	host, _ := layout.TruncateText(site.Host(), width, cfg)
	desc, _ := layout.TruncateText(site.Description, width, cfg)
	tags, _ := layout.TruncateText(layout.FormatTags(site.Tags), width, cfg)

	if selected {
		lines := []string{title, host, desc, tags}
		for i, line := range lines {
			lines[i] = a.styles.CardSelected.Render(layout.PadRight(line, width))
		}
		return strings.Join(lines, "\n")
	}

	if favorite {
		title = a.styles.Favorite.Render(marker) + " " + strings.TrimPrefix(title, marker+" ")
	}
	return a.styles.Card.Render(strings.Join([]string{
		title,
		a.styles.URL.Render(host),
		a.styles.Description.Render(desc),
		a.styles.Tag.Render(tags),
	}, "\n"))
}

// renderPreviewPane renders details of the selected site. The icon
// reference is resolved only for this site.
func (a App) renderPreviewPane(width, height int) string {
	var content strings.Builder

	itemWidth := layout.CalculateItemWidth(width, a.layoutConfig.Pane)
	wrap := lipgloss.NewStyle().Width(itemWidth)

	site := a.list.Selected()
	if site == nil {
		content.WriteString(a.styles.Empty.Render("(nothing selected)"))
	} else {
		content.WriteString(a.styles.Title.Render(site.Name) + "\n\n")

		url, _ := layout.TruncateText(site.URL, itemWidth, a.layoutConfig.Text)
		content.WriteString(a.styles.URL.Render(url) + "\n")

		if icon := site.IconURL(a.faviconURL); icon != "" {
			icon, _ = layout.TruncateText("icon: "+icon, itemWidth, a.layoutConfig.Text)
			content.WriteString(a.styles.URL.Render(icon) + "\n")
		}
		content.WriteString("\n")

		if site.Description != "" {
			content.WriteString(wrap.Render(a.styles.Description.Render(site.Description)) + "\n\n")
		}

		if len(site.Tags) > 0 {
			content.WriteString(wrap.Render(a.styles.Tag.Render(layout.FormatTags(site.Tags))) + "\n\n")
		}

		if names := a.categoryNames(site.CategoryIDs); len(names) > 0 {
			content.WriteString(wrap.Render(a.styles.Tag.Render("in: "+strings.Join(names, ", "))) + "\n")
		}

		if a.favorites.Has(site.ID) {
			content.WriteString(a.styles.Favorite.Render(markerFavorite + " favorite"))
		} else {
			content.WriteString(a.styles.Empty.Render(markerNotFavorite + " not a favorite"))
		}
	}

	return a.styles.Pane.
		Width(width).
		Height(height).
		Render(strings.TrimRight(content.String(), "\n"))
}

// categoryNames resolves category IDs to names, skipping unknown IDs.
func (a App) categoryNames(ids []string) []string {
	var names []string
	for _, id := range ids {
		if cat := a.catalog.CategoryByID(id); cat != nil {
			names = append(names, cat.Name)
		}
	}
	return names
}

// renderHelpBar renders the message line and keyboard hints.
func (a App) renderHelpBar() string {
	var lines []string

	// Line 1: Empty spacer OR message (message replaces the gap)
	if a.messageText != "" {
		lines = append(lines, a.renderMessageLine())
	} else {
		lines = append(lines, "")
	}

	// Line 2: Local (contextual) keyboard hints
	localHints := a.renderHints(a.getContextualHints())
	if localHints != "" {
		lines = append(lines, a.styles.HintLabel.Render("Local  ")+localHints)
	}

	// Line 3: Global keyboard hints (only in normal mode)
	if a.mode == ModeNormal {
		globalHints := a.renderHintSlice(a.getGlobalHints())
		lines = append(lines, a.styles.HintLabel.Render("Global ")+globalHints)
	}

	return strings.Join(lines, "\n")
}

// renderMessageLine renders the styled message with prefix icon based on type.
func (a App) renderMessageLine() string {
	switch a.messageType {
	case MessageError:
		return a.styles.Error.Render("✗ " + a.messageText)
	case MessageSuccess:
		return a.styles.Success.Render("✓ " + a.messageText)
	default:
		return a.styles.Title.Render(a.messageText)
	}
}

// renderHelpOverlay renders the key reference.
func (a App) renderHelpOverlay() string {
	// Brutalist style: no border, just raw columns
	modalStyle := lipgloss.NewStyle().
		Padding(1, 2)

	// Left column: navigation + filtering
	var left strings.Builder
	left.WriteString(a.styles.Title.Render("nav") + "\n")
	left.WriteString("j/k    move\n")
	left.WriteString("gg     top\n")
	left.WriteString("G      bottom\n")
	left.WriteString("tab    sites/categories\n")
	left.WriteString("h/l    prev/next chip\n")
	left.WriteString("\n")
	left.WriteString(a.styles.Title.Render("filter") + "\n")
	left.WriteString("/      search\n")
	left.WriteString("ctrl+u clear search\n")
	left.WriteString("space  toggle chip\n")
	left.WriteString("o      sort mode\n")
	left.WriteString("f      favorites only\n")

	// Right column: site actions + system
	var right strings.Builder
	right.WriteString(a.styles.Title.Render("site") + "\n")
	right.WriteString("enter  open\n")
	right.WriteString("*      favorite\n")
	right.WriteString("space  favorite\n")
	right.WriteString("Y      yank URL\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Title.Render("app") + "\n")
	right.WriteString("t      cycle theme\n")
	right.WriteString("?      help\n")
	right.WriteString("q      quit\n")
	right.WriteString("\n")
	right.WriteString(a.styles.Help.Render("[?/esc] close"))

	// Join columns
	leftCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpLeftColumnWidth).Render(left.String())
	rightCol := lipgloss.NewStyle().Width(a.layoutConfig.Modal.HelpRightColumnWidth).Render(right.String())
	cols := lipgloss.JoinHorizontal(lipgloss.Top, leftCol, "  ", rightCol)

	// Top-left aligned, brutalist style
	return lipgloss.Place(
		a.width,
		a.height,
		lipgloss.Left,
		lipgloss.Top,
		modalStyle.Render(cols),
	)
}
