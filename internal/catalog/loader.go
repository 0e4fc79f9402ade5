// Package catalog loads the static category/site document once at start-up.
//
// Loading never returns an error to the caller. Every failure (network,
// non-2xx response, unreadable file, bad JSON) collapses into an
// Unavailable result carrying an empty catalog, so the UI degrades to
// "nothing to show" instead of failing.
package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/nikbrunner/sites/internal/model"
)

// DefaultSource is the catalog path relative to the working directory.
const DefaultSource = "assets/data.json"

// DefaultTimeout bounds the single load attempt.
const DefaultTimeout = 10 * time.Second

// Status is the outcome of a load.
type Status int

const (
	Available Status = iota
	Unavailable
)

func (s Status) String() string {
	if s == Available {
		return "available"
	}
	return "unavailable"
}

// Result is the typed outcome of Load. Catalog is never nil; it is empty
// when Status is Unavailable. Err holds the diagnostic cause.
type Result struct {
	Status  Status
	Catalog *model.Catalog
	Err     error
}

// Available reports whether the catalog was loaded.
func (r Result) Available() bool {
	return r.Status == Available
}

// Loader fetches the catalog document from a file path or an http(s) URL.
type Loader struct {
	source  string
	client  *http.Client
	logger  *slog.Logger
	timeout time.Duration
}

// Option configures a Loader.
type Option func(*Loader)

// WithHTTPClient sets the client used for http(s) sources.
func WithHTTPClient(c *http.Client) Option {
	return func(l *Loader) {
		l.client = c
	}
}

// WithLogger sets the logger used to report load failures.
func WithLogger(logger *slog.Logger) Option {
	return func(l *Loader) {
		l.logger = logger
	}
}

// WithTimeout bounds the load attempt.
// Defaults to DefaultTimeout if not specified.
func WithTimeout(d time.Duration) Option {
	return func(l *Loader) {
		l.timeout = d
	}
}

// NewLoader creates a Loader for source. An empty source uses DefaultSource.
func NewLoader(source string, opts ...Option) *Loader {
	if source == "" {
		source = DefaultSource
	}
	l := &Loader{
		source:  source,
		timeout: DefaultTimeout,
	}
	for _, opt := range opts {
		opt(l)
	}
	if l.client == nil {
		l.client = &http.Client{}
	}
	if l.logger == nil {
		l.logger = slog.New(slog.NewTextHandler(io.Discard, nil))
	}
	return l
}

// Source returns the configured catalog location.
func (l *Loader) Source() string {
	return l.source
}

// Load makes a single attempt to read and decode the catalog.
func (l *Loader) Load(ctx context.Context) Result {
	begin := time.Now()

	if l.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, l.timeout)
		defer cancel()
	}

	data, err := l.read(ctx)
	if err == nil {
		var c *model.Catalog
		c, err = Decode(data)
		if err == nil {
			l.logger.Debug("catalog loaded",
				"source", l.source,
				"categories", len(c.Categories),
				"sites", len(c.Sites),
				"duration", time.Since(begin))
			return Result{Status: Available, Catalog: c}
		}
	}

	l.logger.Error("catalog unavailable", "source", l.source, "err", err)
	return Result{Status: Unavailable, Catalog: model.NewCatalog(), Err: err}
}

func (l *Loader) read(ctx context.Context) ([]byte, error) {
	if isURL(l.source) {
		return l.fetch(ctx)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	return os.ReadFile(l.source)
}

func (l *Loader) fetch(ctx context.Context) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, l.source, nil)
	if err != nil {
		return nil, err
	}
	// Always observe the latest document.
	req.Header.Set("Cache-Control", "no-cache")
	req.Header.Set("Pragma", "no-cache")
	req.Header.Set("Accept", "application/json")

	resp, err := l.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, fmt.Errorf("HTTP %d for %s", resp.StatusCode, l.source)
	}

	return io.ReadAll(resp.Body)
}

// Decode parses a catalog document. Missing collections decode as empty.
func Decode(data []byte) (*model.Catalog, error) {
	var c model.Catalog
	if err := json.NewDecoder(bytes.NewReader(data)).Decode(&c); err != nil {
		return nil, fmt.Errorf("decode catalog: %w", err)
	}
	if c.Categories == nil {
		c.Categories = []model.Category{}
	}
	if c.Sites == nil {
		c.Sites = []model.Site{}
	}
	return &c, nil
}

// Encode writes a catalog document with stable indentation.
func Encode(w io.Writer, c *model.Catalog) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(c)
}

func isURL(source string) bool {
	lower := strings.ToLower(source)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
