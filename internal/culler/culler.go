// Package culler checks catalog URLs for dead or unreachable sites.
package culler

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/nikbrunner/sites/internal/model"
	"golang.org/x/sync/errgroup"
)

// Default check settings.
const (
	DefaultConcurrency = 10
	DefaultTimeout     = 10 * time.Second
	maxRedirects       = 10
)

// Status represents the health status of a URL.
type Status int

const (
	Healthy     Status = iota // 2xx or 3xx response
	Dead                      // 404 or 410 Gone
	Unreachable               // timeout, DNS failure, connection refused, etc.
)

func (s Status) String() string {
	switch s {
	case Healthy:
		return "healthy"
	case Dead:
		return "dead"
	default:
		return "unreachable"
	}
}

// Result holds the check result for a single site.
type Result struct {
	Site       model.Site
	Status     Status
	StatusCode int    // 0 if the connection failed
	Error      string // readable reason for unreachable sites
}

// ProgressFunc is called after each URL is checked.
type ProgressFunc func(completed, total int)

// Checker checks site URLs with a bounded worker pool.
type Checker struct {
	client      *http.Client
	concurrency int
	exclude     map[string]bool
	logger      *slog.Logger
	onProgress  ProgressFunc
	limiter     *domainLimiter
}

// Option configures a Checker.
type Option func(*Checker)

// WithConcurrency sets the number of workers. Values below 1 are ignored.
func WithConcurrency(n int) Option {
	return func(c *Checker) {
		if n > 0 {
			c.concurrency = n
		}
	}
}

// WithHTTPClient replaces the client used for checks.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Checker) {
		c.client = client
	}
}

// WithTimeout sets the per-request timeout of the default client.
func WithTimeout(d time.Duration) Option {
	return func(c *Checker) {
		c.client.Timeout = d
	}
}

// WithExcludeDomains marks domains whose 404s usually mean "private"
// (auth required) rather than dead.
func WithExcludeDomains(domains []string) Option {
	return func(c *Checker) {
		for _, d := range domains {
			c.exclude[strings.ToLower(d)] = true
		}
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		c.logger = logger
	}
}

// WithRateLimit caps requests per second to any single host. Zero or
// negative disables limiting.
func WithRateLimit(rps float64) Option {
	return func(c *Checker) {
		if rps > 0 {
			c.limiter = newDomainLimiter(rps)
		} else {
			c.limiter = nil
		}
	}
}

// WithProgress sets a callback invoked after each URL is checked.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Checker) {
		c.onProgress = fn
	}
}

// NewChecker creates a Checker.
func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		client: &http.Client{
			Timeout: DefaultTimeout,
			CheckRedirect: func(req *http.Request, via []*http.Request) error {
				if len(via) >= maxRedirects {
					return http.ErrUseLastResponse
				}
				return nil
			},
		},
		concurrency: DefaultConcurrency,
		exclude:     make(map[string]bool),
		logger:      slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Check checks all site URLs concurrently. Results are in input order.
// Sites not yet checked when ctx is cancelled report Unreachable.
func (c *Checker) Check(ctx context.Context, sites []model.Site) []Result {
	if len(sites) == 0 {
		return nil
	}

	results := make([]Result, len(sites))

	var progressMu sync.Mutex
	completed := 0

	var g errgroup.Group
	g.SetLimit(c.concurrency)

	for i, site := range sites {
		g.Go(func() error {
			results[i] = c.checkURL(ctx, site)

			if c.onProgress != nil {
				progressMu.Lock()
				completed++
				c.onProgress(completed, len(sites))
				progressMu.Unlock()
			}
			return nil
		})
	}

	_ = g.Wait()
	return results
}

// checkURL checks a single URL, HEAD first with a GET fallback for
// servers that reject HEAD.
func (c *Checker) checkURL(ctx context.Context, site model.Site) Result {
	result := Result{Site: site}

	if c.limiter != nil {
		if err := c.limiter.Wait(ctx, hostname(site.URL)); err != nil {
			result.Status = Unreachable
			result.Error = normalizeError(err.Error())
			return result
		}
	}

	resp, err := c.do(ctx, http.MethodHead, site.URL)
	if err != nil || resp.StatusCode == http.StatusMethodNotAllowed {
		if resp != nil {
			resp.Body.Close()
		}
		resp, err = c.do(ctx, http.MethodGet, site.URL)
		if err != nil {
			result.Status = Unreachable
			result.Error = normalizeError(err.Error())
			c.logger.Debug("site unreachable", "url", site.URL, "err", err)
			return result
		}
	}
	defer resp.Body.Close()

	result.StatusCode = resp.StatusCode

	switch {
	case resp.StatusCode >= 200 && resp.StatusCode < 400:
		result.Status = Healthy
	case resp.StatusCode == http.StatusNotFound || resp.StatusCode == http.StatusGone:
		if c.isExcludedDomain(site.URL) {
			result.Status = Unreachable
			result.Error = "Possibly private (auth required)"
		} else {
			result.Status = Dead
		}
	default:
		// 403, 5xx and friends may be temporary or auth walls.
		result.Status = Unreachable
		result.Error = http.StatusText(resp.StatusCode)
	}

	c.logger.Debug("site checked", "url", site.URL, "status", result.Status, "code", result.StatusCode)
	return result
}

func (c *Checker) do(ctx context.Context, method, rawURL string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, method, rawURL, nil)
	if err != nil {
		return nil, err
	}
	return c.client.Do(req)
}

// isExcludedDomain reports whether the URL's host is an excluded domain
// or one of its subdomains.
func (c *Checker) isExcludedDomain(rawURL string) bool {
	host := hostname(rawURL)
	if host == "" {
		return false
	}
	if c.exclude[host] {
		return true
	}
	for domain := range c.exclude {
		if strings.HasSuffix(host, "."+domain) {
			return true
		}
	}
	return false
}

// hostname returns the lowercased host of rawURL, or "" if it doesn't parse.
func hostname(rawURL string) string {
	parsed, err := url.Parse(rawURL)
	if err != nil {
		return ""
	}
	return strings.ToLower(parsed.Hostname())
}

// Filter returns the results with the given status.
func Filter(results []Result, status Status) []Result {
	var out []Result
	for _, r := range results {
		if r.Status == status {
			out = append(out, r)
		}
	}
	return out
}

// normalizeError simplifies verbose error messages into readable categories.
func normalizeError(errStr string) string {
	lower := strings.ToLower(errStr)

	switch {
	case strings.Contains(lower, "no such host"):
		return "DNS failure"
	case strings.Contains(lower, "context deadline exceeded"),
		strings.Contains(lower, "timeout"):
		return "Timeout"
	case strings.Contains(lower, "context canceled"):
		return "Cancelled"
	case strings.Contains(lower, "connection refused"):
		return "Connection refused"
	case strings.Contains(lower, "certificate"):
		return "TLS/certificate error"
	case strings.Contains(lower, "network is unreachable"):
		return "Network unreachable"
	case strings.Contains(lower, "tls:"):
		return "TLS error"
	case strings.Contains(lower, "unsupported protocol scheme"):
		return "Invalid URL"
	default:
		return errStr
	}
}
