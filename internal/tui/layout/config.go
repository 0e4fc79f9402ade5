package layout

// LayoutConfig holds all layout-related configuration values.
type LayoutConfig struct {
	Pane  PaneConfig
	Modal ModalConfig
	Input InputConfig
	Text  TextConfig
}

// PaneConfig holds pane dimension configuration.
type PaneConfig struct {
	// HeightReduction is subtracted from terminal height for pane content.
	// Accounts for: app padding (1) + header (1) + chip row (1) + pane borders (2) + help bar (3) = 8
	HeightReduction int

	// MinHeight is the minimum pane height.
	MinHeight int

	// ListWidthPercent is the share of the usable width given to the card list.
	// The preview pane takes the rest.
	ListWidthPercent int

	// WidthOffset is subtracted before splitting.
	// Accounts for borders and padding of both panes.
	WidthOffset int

	// MinListWidth is the minimum width of the card list.
	MinListWidth int

	// MinPreviewWidth is the minimum width of the preview pane.
	MinPreviewWidth int

	// ContentPadding is subtracted from pane width for card rendering.
	// Accounts for pane border/padding on each side.
	ContentPadding int

	// CardHeight is the number of lines one card occupies, spacing included.
	CardHeight int
}

// ModalConfig holds overlay configuration.
type ModalConfig struct {
	// HelpLeftColumnWidth: width for help overlay left column.
	HelpLeftColumnWidth int

	// HelpRightColumnWidth: width for help overlay right column.
	HelpRightColumnWidth int
}

// InputConfig holds text input configuration.
type InputConfig struct {
	SearchCharLimit int
	SearchWidth     int
}

// TextConfig holds text truncation configuration.
type TextConfig struct {
	// Ellipsis is the string used to indicate truncation.
	Ellipsis string
}

// DefaultConfig returns the default layout configuration.
func DefaultConfig() LayoutConfig {
	return LayoutConfig{
		Pane: PaneConfig{
			HeightReduction:  8, // app padding (1) + header (1) + chips (1) + pane borders (2) + help bar (3)
			MinHeight:        5,
			ListWidthPercent: 55,
			WidthOffset:      8,
			MinListWidth:     24,
			MinPreviewWidth:  20,
			ContentPadding:   4,
			CardHeight:       5,
		},
		Modal: ModalConfig{
			HelpLeftColumnWidth:  26,
			HelpRightColumnWidth: 22,
		},
		Input: InputConfig{
			SearchCharLimit: 100,
			SearchWidth:     40,
		},
		Text: TextConfig{
			Ellipsis: "...",
		},
	}
}
