package storage

import (
	"encoding/json"
	"io"
	"log/slog"

	"github.com/nikbrunner/sites/internal/model"
)

// Preference keys. Values carry no schema version.
const (
	KeyFavorites = "favorites" // JSON array of site IDs
	KeyTheme     = "theme"     // literal theme name
)

// Preferences reads and writes the favorite set and the theme.
// Reads never fail: missing or unreadable values yield defaults.
type Preferences struct {
	kv     KV
	logger *slog.Logger
}

// NewPreferences wraps kv. A nil logger discards output.
func NewPreferences(kv KV, logger *slog.Logger) *Preferences {
	if logger == nil {
		logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return &Preferences{kv: kv, logger: logger}
}

// GetFavorites returns the stored favorite IDs, or an empty slice when the
// value is absent or cannot be parsed.
func (p *Preferences) GetFavorites() []string {
	raw, ok, err := p.kv.Get(KeyFavorites)
	if err != nil {
		p.logger.Warn("read favorites", "err", err)
		return []string{}
	}
	if !ok {
		return []string{}
	}

	var ids []string
	if err := json.Unmarshal([]byte(raw), &ids); err != nil {
		p.logger.Warn("parse favorites", "err", err)
		return []string{}
	}
	if ids == nil {
		return []string{}
	}
	return ids
}

// SetFavorites overwrites the stored favorites with ids.
func (p *Preferences) SetFavorites(ids []string) error {
	if ids == nil {
		ids = []string{}
	}
	data, err := json.Marshal(ids)
	if err != nil {
		return err
	}
	return p.kv.Set(KeyFavorites, string(data))
}

// GetTheme returns the stored theme, or auto when absent or unknown.
func (p *Preferences) GetTheme() model.Theme {
	raw, ok, err := p.kv.Get(KeyTheme)
	if err != nil {
		p.logger.Warn("read theme", "err", err)
		return model.ThemeAuto
	}
	if !ok {
		return model.ThemeAuto
	}
	return model.ParseTheme(raw)
}

// SetTheme overwrites the stored theme.
func (p *Preferences) SetTheme(theme model.Theme) error {
	return p.kv.Set(KeyTheme, string(theme))
}
