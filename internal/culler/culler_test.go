package culler

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/nikbrunner/sites/internal/model"
	"gotest.tools/v3/assert"
	is "gotest.tools/v3/assert/cmp"
)

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/gone", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusGone)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/get-only", func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodHead {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func sitesFor(base string, paths ...string) []model.Site {
	sites := make([]model.Site, len(paths))
	for i, p := range paths {
		sites[i] = model.Site{ID: p, Name: p, URL: base + p}
	}
	return sites
}

func TestCheck_ClassifiesResponses(t *testing.T) {
	srv := newTestServer(t)
	sites := sitesFor(srv.URL, "/ok", "/missing", "/gone", "/broken", "/get-only")

	results := NewChecker(WithConcurrency(2)).Check(context.Background(), sites)

	assert.Assert(t, is.Len(results, 5))
	want := []Status{Healthy, Dead, Dead, Unreachable, Healthy}
	for i, r := range results {
		assert.Equal(t, r.Site.ID, sites[i].ID, "results keep input order")
		assert.Equal(t, r.Status, want[i], r.Site.URL)
	}
	assert.Equal(t, results[1].StatusCode, http.StatusNotFound)
	assert.Equal(t, results[3].Error, "Internal Server Error")
}

func TestCheck_ExcludedDomainIsPossiblyPrivate(t *testing.T) {
	srv := newTestServer(t)
	sites := sitesFor(srv.URL, "/missing")

	results := NewChecker(WithExcludeDomains([]string{"127.0.0.1"})).Check(context.Background(), sites)

	assert.Equal(t, results[0].Status, Unreachable)
	assert.Equal(t, results[0].Error, "Possibly private (auth required)")
}

func TestCheck_ConnectionRefused(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	url := srv.URL
	srv.Close()

	results := NewChecker(WithTimeout(2*time.Second)).Check(context.Background(), []model.Site{{ID: "x", URL: url}})

	assert.Equal(t, results[0].Status, Unreachable)
	assert.Equal(t, results[0].StatusCode, 0)
	assert.Equal(t, results[0].Error, "Connection refused")
}

func TestCheck_ReportsProgress(t *testing.T) {
	srv := newTestServer(t)
	sites := sitesFor(srv.URL, "/ok", "/ok", "/ok")

	var mu sync.Mutex
	var seen []int
	NewChecker(WithProgress(func(completed, total int) {
		mu.Lock()
		defer mu.Unlock()
		assert.Equal(t, total, 3)
		seen = append(seen, completed)
	})).Check(context.Background(), sites)

	assert.DeepEqual(t, seen, []int{1, 2, 3})
}

func TestCheck_CancelledContext(t *testing.T) {
	srv := newTestServer(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	for _, opts := range [][]Option{nil, {WithRateLimit(100)}} {
		results := NewChecker(opts...).Check(ctx, sitesFor(srv.URL, "/ok", "/ok"))
		for _, r := range results {
			assert.Equal(t, r.Status, Unreachable)
			assert.Equal(t, r.Error, "Cancelled")
		}
	}
}

func TestCheck_RateLimitPerHost(t *testing.T) {
	srv := newTestServer(t)
	sites := sitesFor(srv.URL, "/ok", "/ok", "/ok")

	start := time.Now()
	results := NewChecker(WithConcurrency(3), WithRateLimit(20)).Check(context.Background(), sites)
	elapsed := time.Since(start)

	for _, r := range results {
		assert.Equal(t, r.Status, Healthy)
	}
	// Burst of one, then a token every 50ms.
	assert.Assert(t, elapsed >= 90*time.Millisecond, "elapsed %s", elapsed)
}

func TestDomainLimiter_SeparateBucketsPerHost(t *testing.T) {
	d := newDomainLimiter(1)
	ctx := context.Background()

	start := time.Now()
	assert.NilError(t, d.Wait(ctx, "a.example"))
	assert.NilError(t, d.Wait(ctx, "b.example"))
	assert.Assert(t, time.Since(start) < 500*time.Millisecond)
	assert.Equal(t, len(d.limiters), 2)
}

func TestCheck_Empty(t *testing.T) {
	assert.Assert(t, is.Nil(NewChecker().Check(context.Background(), nil)))
}

func TestFilter(t *testing.T) {
	results := []Result{
		{Site: model.Site{ID: "a"}, Status: Healthy},
		{Site: model.Site{ID: "b"}, Status: Dead},
		{Site: model.Site{ID: "c"}, Status: Dead},
	}

	dead := Filter(results, Dead)
	assert.Assert(t, is.Len(dead, 2))
	assert.Equal(t, dead[0].Site.ID, "b")
	assert.Assert(t, is.Len(Filter(results, Unreachable), 0))
}

func TestIsExcludedDomain(t *testing.T) {
	c := NewChecker(WithExcludeDomains([]string{"GitHub.com"}))

	tests := []struct {
		url  string
		want bool
	}{
		{"https://github.com/private/repo", true},
		{"https://api.github.com/x", true},
		{"https://github.com:443/x", true},
		{"https://notgithub.com", false},
		{"https://gitlab.com", false},
	}
	for _, tt := range tests {
		assert.Equal(t, c.isExcludedDomain(tt.url), tt.want, tt.url)
	}
}

func TestNormalizeError(t *testing.T) {
	tests := map[string]string{
		"dial tcp: lookup nope.invalid: no such host":        "DNS failure",
		"Get x: context deadline exceeded":                   "Timeout",
		"dial tcp 127.0.0.1:1: connect: connection refused":  "Connection refused",
		"x509: certificate signed by unknown authority":      "TLS/certificate error",
		"Get \"ftp://x\": unsupported protocol scheme \"ftp\"": "Invalid URL",
		"something else": "something else",
	}
	for in, want := range tests {
		assert.Equal(t, normalizeError(in), want, in)
	}
}

func TestStatusString(t *testing.T) {
	assert.Equal(t, Healthy.String(), "healthy")
	assert.Equal(t, Dead.String(), "dead")
	assert.Equal(t, Unreachable.String(), "unreachable")
}
