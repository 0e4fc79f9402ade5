package layout

// SplitLayout holds calculated widths of the card list and preview pane.
type SplitLayout struct {
	ListWidth    int
	PreviewWidth int
}

// CalculatePaneHeight computes the content height for panes.
// Returns at least MinHeight.
func CalculatePaneHeight(terminalHeight int, cfg PaneConfig) int {
	height := terminalHeight - cfg.HeightReduction
	if height < cfg.MinHeight {
		return cfg.MinHeight
	}
	return height
}

// CalculateSplit divides the terminal width between the card list and the
// preview pane, honouring both minimum widths.
func CalculateSplit(terminalWidth int, cfg PaneConfig) SplitLayout {
	usable := terminalWidth - cfg.WidthOffset
	if usable < 0 {
		usable = 0
	}

	list := usable * cfg.ListWidthPercent / 100
	if list < cfg.MinListWidth {
		list = cfg.MinListWidth
	}

	preview := usable - list
	if preview < cfg.MinPreviewWidth {
		preview = cfg.MinPreviewWidth
	}

	return SplitLayout{
		ListWidth:    list,
		PreviewWidth: preview,
	}
}

// CalculateItemWidth computes the width available for card content.
func CalculateItemWidth(paneWidth int, cfg PaneConfig) int {
	width := paneWidth - cfg.ContentPadding
	if width < 1 {
		return 1
	}
	return width
}

// CalculateVisibleCards computes how many cards fit in a pane after
// headerLines. At least one card is always shown.
func CalculateVisibleCards(paneHeight, headerLines int, cfg PaneConfig) int {
	if cfg.CardHeight <= 0 {
		return 1
	}
	count := (paneHeight - headerLines) / cfg.CardHeight
	if count < 1 {
		return 1
	}
	return count
}

// CalculateViewportOffset calculates the scroll offset needed to keep the
// selected item visible within the viewport.
func CalculateViewportOffset(selected, total, viewportHeight int) int {
	if total <= viewportHeight {
		return 0
	}

	// Keep selection roughly centered, but clamp to valid range
	offset := selected - viewportHeight/2
	if offset < 0 {
		offset = 0
	}

	maxOffset := total - viewportHeight
	if offset > maxOffset {
		offset = maxOffset
	}

	return offset
}
