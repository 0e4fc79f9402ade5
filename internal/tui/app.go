package tui

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/nikbrunner/sites/internal/catalog"
	"github.com/nikbrunner/sites/internal/filter"
	"github.com/nikbrunner/sites/internal/model"
	"github.com/nikbrunner/sites/internal/tui/layout"
)

// ErrNoOpener is reported when a site is opened without an opener configured.
var ErrNoOpener = errors.New("no URL opener configured")

// CatalogLoader loads the site catalog once at start-up.
type CatalogLoader interface {
	Load(ctx context.Context) catalog.Result
}

// PreferenceStore persists the favorite set and the theme.
type PreferenceStore interface {
	GetFavorites() []string
	SetFavorites(ids []string) error
	GetTheme() model.Theme
	SetTheme(theme model.Theme) error
}

// catalogLoadedMsg delivers the result of the start-up load.
type catalogLoadedMsg struct {
	result catalog.Result
}

// App is the main bubbletea model for the site directory.
type App struct {
	loader       CatalogLoader
	prefs        PreferenceStore
	logger       *slog.Logger
	keys         KeyMap
	styles       Styles
	layoutConfig layout.LayoutConfig
	faviconURL   string
	opener       func(url string) error
	clipboard    func(text string) error
	loadTimeout  time.Duration

	// Data
	catalog   *model.Catalog
	loaded    bool
	status    catalog.Status
	favorites *model.FavoriteSet
	filter    model.FilterState
	theme     model.Theme

	// UI state
	mode   Mode
	focus  Focus
	search SearchState
	chips  ChipState
	list   SiteList

	// For gg command
	lastKeyWasG bool

	messageText string
	messageType MessageType

	// Window dimensions
	width  int
	height int
}

// AppParams holds parameters for creating a new App.
type AppParams struct {
	Loader       CatalogLoader
	Preferences  PreferenceStore
	Logger       *slog.Logger            // optional, discards if nil
	FaviconURL   string                  // optional, model.DefaultFaviconURL if empty
	Opener       func(url string) error  // opens a URL in the browser
	Clipboard    func(text string) error // writes to the system clipboard
	LoadTimeout  time.Duration           // optional, catalog.DefaultTimeout if zero
	DefaultSort  model.SortMode          // optional, catalog order if empty
	Keys         *KeyMap                 // optional, uses default if nil
	LayoutConfig *layout.LayoutConfig    // optional, uses default if nil
}

// NewApp creates a new App with the given parameters. Theme and favorites
// are read from the preference store; the catalog is loaded by Init.
func NewApp(params AppParams) App {
	keys := DefaultKeyMap()
	if params.Keys != nil {
		keys = *params.Keys
	}

	layoutCfg := layout.DefaultConfig()
	if params.LayoutConfig != nil {
		layoutCfg = *params.LayoutConfig
	}

	logger := params.Logger
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}

	prefs := params.Preferences
	if prefs == nil {
		prefs = defaultPreferences{}
	}

	loadTimeout := params.LoadTimeout
	if loadTimeout <= 0 {
		loadTimeout = catalog.DefaultTimeout
	}

	theme := prefs.GetTheme()

	filterState := model.NewFilterState()
	if params.DefaultSort != "" {
		filterState.Sort = params.DefaultSort
	}

	return App{
		loader:       params.Loader,
		prefs:        prefs,
		logger:       logger,
		keys:         keys,
		styles:       NewStyles(theme),
		layoutConfig: layoutCfg,
		faviconURL:   params.FaviconURL,
		opener:       params.Opener,
		clipboard:    params.Clipboard,
		loadTimeout:  loadTimeout,
		catalog:      model.NewCatalog(),
		status:       catalog.Unavailable,
		favorites:    model.NewFavoriteSet(prefs.GetFavorites()...),
		filter:       filterState,
		theme:        theme,
		search:       NewSearchState(layoutCfg),
		width:        80,
		height:       24,
	}
}

// WithDimensions returns a copy of the app with fixed terminal dimensions.
func (a App) WithDimensions(width, height int) App {
	a.width = width
	a.height = height
	return a
}

// Init implements tea.Model. It starts the single catalog load.
func (a App) Init() tea.Cmd {
	return a.loadCatalog
}

// loadCatalog runs the catalog load and reports it as a catalogLoadedMsg.
func (a App) loadCatalog() tea.Msg {
	if a.loader == nil {
		return catalogLoadedMsg{result: catalog.Result{
			Status:  catalog.Unavailable,
			Catalog: model.NewCatalog(),
			Err:     errors.New("no catalog loader configured"),
		}}
	}

	ctx, cancel := context.WithTimeout(context.Background(), a.loadTimeout)
	defer cancel()
	return catalogLoadedMsg{result: a.loader.Load(ctx)}
}

// Update implements tea.Model.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		return a, nil

	case catalogLoadedMsg:
		a.applyCatalog(msg.result)
		return a, nil

	case tea.KeyMsg:
		switch a.mode {
		case ModeSearch:
			return a.updateSearch(msg)
		case ModeHelp:
			return a.updateHelp(msg)
		default:
			return a.updateNormal(msg)
		}
	}

	return a, nil
}

// applyCatalog installs a load result. An unavailable catalog renders as empty.
func (a *App) applyCatalog(result catalog.Result) {
	a.loaded = true
	a.status = result.Status
	a.catalog = result.Catalog
	if a.catalog == nil {
		a.catalog = model.NewCatalog()
	}

	if !result.Available() {
		a.logger.Debug("showing empty catalog", "status", result.Status, "err", result.Err)
		a.setMessage(MessageError, "catalog unavailable")
	}

	a.chips.Move(0, len(a.catalog.Categories))
	a.recompute()
}

// updateNormal handles keys while browsing.
func (a App) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	a.clearMessage()

	// Handle gg sequence
	if key.Matches(msg, a.keys.Top) {
		if a.lastKeyWasG {
			a.list.Cursor = 0
			a.lastKeyWasG = false
			return a, nil
		}
		a.lastKeyWasG = true
		return a, nil
	}
	a.lastKeyWasG = false

	switch {
	case key.Matches(msg, a.keys.Quit):
		return a, tea.Quit

	case key.Matches(msg, a.keys.Help):
		a.mode = ModeHelp

	case key.Matches(msg, a.keys.Search):
		a.mode = ModeSearch
		return a, a.search.Input.Focus()

	case key.Matches(msg, a.keys.Sort):
		a.filter.Sort = a.filter.Sort.Next()
		a.recompute()

	case key.Matches(msg, a.keys.FavoritesOnly):
		a.filter.FavoritesOnly = !a.filter.FavoritesOnly
		a.recompute()

	case key.Matches(msg, a.keys.Theme):
		a.cycleTheme()

	case key.Matches(msg, a.keys.Focus):
		if a.focus == FocusSites {
			a.focus = FocusCategories
		} else {
			a.focus = FocusSites
		}

	case key.Matches(msg, a.keys.YankURL):
		a.yankURL()

	case key.Matches(msg, a.keys.Down):
		if a.list.Cursor < len(a.list.Visible)-1 {
			a.list.Cursor++
		}

	case key.Matches(msg, a.keys.Up):
		if a.list.Cursor > 0 {
			a.list.Cursor--
		}

	case key.Matches(msg, a.keys.Bottom):
		if len(a.list.Visible) > 0 {
			a.list.Cursor = len(a.list.Visible) - 1
		}

	default:
		if a.focus == FocusCategories {
			a.updateCategories(msg)
		} else {
			a.updateSites(msg)
		}
	}

	return a, nil
}

// updateCategories handles keys while the chip row has focus.
func (a *App) updateCategories(msg tea.KeyMsg) {
	count := len(a.catalog.Categories)

	switch {
	case key.Matches(msg, a.keys.Left):
		a.chips.Move(-1, count)

	case key.Matches(msg, a.keys.Right):
		a.chips.Move(1, count)

	case key.Matches(msg, a.keys.Toggle), key.Matches(msg, a.keys.Open):
		if count == 0 {
			return
		}
		a.filter.ToggleCategory(a.catalog.Categories[a.chips.Cursor].ID)
		a.recompute()
	}
}

// updateSites handles keys while the site cards have focus.
func (a *App) updateSites(msg tea.KeyMsg) {
	switch {
	case key.Matches(msg, a.keys.Favorite), key.Matches(msg, a.keys.Toggle):
		a.toggleFavorite()

	case key.Matches(msg, a.keys.Open):
		a.openSelected()
	}
}

// updateSearch feeds keys to the search box. Every edit recomputes the
// visible list; enter and esc leave search mode keeping the text.
func (a App) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return a, tea.Quit

	case key.Matches(msg, a.keys.Cancel), key.Matches(msg, a.keys.Open):
		a.mode = ModeNormal
		a.search.Input.Blur()
		return a, nil

	case key.Matches(msg, a.keys.ClearSearch):
		a.search.Reset()
		a.applySearch()
		return a, nil
	}

	var cmd tea.Cmd
	a.search.Input, cmd = a.search.Input.Update(msg)
	a.applySearch()
	return a, cmd
}

// updateHelp closes the help overlay.
func (a App) updateHelp(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case msg.Type == tea.KeyCtrlC:
		return a, tea.Quit
	case key.Matches(msg, a.keys.Help), key.Matches(msg, a.keys.Quit), key.Matches(msg, a.keys.Cancel):
		a.mode = ModeNormal
	}
	return a, nil
}

// applySearch copies the trimmed search box value into the filter state.
func (a *App) applySearch() {
	a.filter.Search = strings.TrimSpace(a.search.Input.Value())
	a.recompute()
}

// recompute rebuilds the visible list from catalog, favorites and filter
// state, and moves the card cursor to the top.
func (a *App) recompute() {
	a.list.SetVisible(filter.ComputeVisible(a.catalog.Sites, a.favorites, a.filter))
	a.list.Cursor = 0
}

// toggleFavorite flips the selected site's favorite state and persists the
// full set. The visible list is left as is; only the card marker changes.
func (a *App) toggleFavorite() {
	site := a.list.Selected()
	if site == nil {
		return
	}

	a.favorites.Toggle(site.ID)
	if err := a.prefs.SetFavorites(a.favorites.IDs()); err != nil {
		a.logger.Warn("failed to save favorites", "err", err)
	}
}

// cycleTheme advances the theme, persists it and restyles.
func (a *App) cycleTheme() {
	a.theme = a.theme.Next()
	a.styles = NewStyles(a.theme)
	if err := a.prefs.SetTheme(a.theme); err != nil {
		a.logger.Warn("failed to save theme", "err", err)
	}
}

// openSelected opens the selected site's URL. Only the URL is handed to
// the opener.
func (a *App) openSelected() {
	site := a.list.Selected()
	if site == nil {
		return
	}

	err := ErrNoOpener
	if a.opener != nil {
		err = a.opener(site.URL)
	}
	if err != nil {
		a.logger.Error("failed to open site", "url", site.URL, "err", err)
		a.setMessage(MessageError, "could not open "+site.Name)
		return
	}
	a.setMessage(MessageSuccess, "opened "+site.Name)
}

// yankURL copies the selected site's URL to the clipboard.
func (a *App) yankURL() {
	site := a.list.Selected()
	if site == nil || a.clipboard == nil {
		return
	}

	if err := a.clipboard(site.URL); err != nil {
		a.logger.Error("failed to copy URL", "err", err)
		a.setMessage(MessageError, "clipboard unavailable")
		return
	}
	a.setMessage(MessageSuccess, "copied "+site.URL)
}

func (a *App) setMessage(t MessageType, text string) {
	a.messageType = t
	a.messageText = text
}

func (a *App) clearMessage() {
	a.messageText = ""
	a.messageType = MessageInfo
}

// Cursor returns the card cursor position.
func (a App) Cursor() int {
	return a.list.Cursor
}

// Visible returns the sites currently shown, in display order.
func (a App) Visible() []model.Site {
	return a.list.Visible
}

// Selected returns the site under the card cursor, or nil.
func (a App) Selected() *model.Site {
	return a.list.Selected()
}

// Favorites returns the current favorite IDs in insertion order.
func (a App) Favorites() []string {
	return a.favorites.IDs()
}

// IsFavorite reports whether the site is a favorite.
func (a App) IsFavorite(id string) bool {
	return a.favorites.Has(id)
}

// Filter returns the current filter state.
func (a App) Filter() model.FilterState {
	return a.filter
}

// Theme returns the current theme.
func (a App) Theme() model.Theme {
	return a.theme
}

// ThemeAttribute returns the presentation signal for the theme: "" for
// auto, "light" or "dark" otherwise.
func (a App) ThemeAttribute() string {
	return a.theme.Attribute()
}

// Mode returns the current input mode.
func (a App) Mode() Mode {
	return a.mode
}

// Focus returns the region receiving navigation keys.
func (a App) Focus() Focus {
	return a.focus
}

// ChipCursor returns the category chip cursor position.
func (a App) ChipCursor() int {
	return a.chips.Cursor
}

// Loaded reports whether the catalog load has completed.
func (a App) Loaded() bool {
	return a.loaded
}

// CatalogStatus returns the status of the catalog load.
func (a App) CatalogStatus() catalog.Status {
	return a.status
}

// Message returns the transient status message.
func (a App) Message() string {
	return a.messageText
}

// View implements tea.Model.
func (a App) View() string {
	return a.renderView()
}

// defaultPreferences is used when no store is configured: defaults are
// read and writes are dropped.
type defaultPreferences struct{}

func (defaultPreferences) GetFavorites() []string      { return []string{} }
func (defaultPreferences) SetFavorites([]string) error { return nil }
func (defaultPreferences) GetTheme() model.Theme       { return model.ThemeAuto }
func (defaultPreferences) SetTheme(model.Theme) error  { return nil }
