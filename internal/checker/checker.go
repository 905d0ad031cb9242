package checker

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/nao1215/urlsweep/internal/config"
	"github.com/nao1215/urlsweep/internal/model"
	"golang.org/x/sync/errgroup"
)

// ProgressFunc is called after each completed check with the running
// checked/total counter and the individual result. It is called from worker
// goroutines; implementations must be safe for concurrent use. Progress is a
// side effect only and carries no correctness obligation.
type ProgressFunc func(checked, total int, result model.CheckResult)

// Checker verifies canonical URLs concurrently.
//
// Design decision: We require an external http.Client rather than creating
// one internally because the per-request timeout lives on the client, and
// tests need to substitute transports.
type Checker struct {
	// client performs the requests. Its Timeout field is the per-request
	// bound; a hung worker is limited only by it.
	client *http.Client

	// userAgent is sent with every request.
	userAgent string

	// workers is the fixed pool size bounding concurrent requests.
	workers int

	// onProgress, when set, receives the running counter.
	onProgress ProgressFunc

	// logger is used for debug-level per-URL logging.
	logger *slog.Logger
}

// Option configures a Checker.
type Option func(*Checker)

// WithWorkers sets the worker-pool size. Non-positive values are ignored.
func WithWorkers(n int) Option {
	return func(c *Checker) {
		if n > 0 {
			c.workers = n
		}
	}
}

// WithUserAgent sets the User-Agent header for check requests.
func WithUserAgent(ua string) Option {
	return func(c *Checker) {
		c.userAgent = ua
	}
}

// WithProgress sets the progress callback.
func WithProgress(fn ProgressFunc) Option {
	return func(c *Checker) {
		c.onProgress = fn
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *Checker) {
		c.logger = logger
	}
}

// New creates a Checker using the given HTTP client.
func New(client *http.Client, opts ...Option) *Checker {
	c := &Checker{
		client:    client,
		userAgent: config.DefaultUserAgent,
		workers:   config.DefaultWorkers,
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.logger == nil {
		c.logger = slog.Default()
	}
	return c
}

// Check verifies every URL and returns one result per URL.
//
// The pool admits at most the configured number of concurrent tasks. The
// returned slice is in completion order; callers needing determinism sort it.
// Check itself never fails: per-URL failures become results, and context
// cancellation simply leaves the remaining URLs unchecked.
func (c *Checker) Check(ctx context.Context, urls []string) []model.CheckResult {
	total := len(urls)
	results := make([]model.CheckResult, 0, total)

	var (
		mu      sync.Mutex
		checked atomic.Int64
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.workers)

	for _, url := range urls {
		g.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			result := c.checkOne(ctx, url)

			mu.Lock()
			results = append(results, result)
			mu.Unlock()

			if c.onProgress != nil {
				c.onProgress(int(checked.Add(1)), total, result)
			}

			c.logger.Debug("checked URL",
				"url", result.URL,
				"ok", result.OK,
				"status", result.Status,
			)
			return nil
		})
	}

	// The only possible error is context cancellation; partial results
	// are still returned.
	if err := g.Wait(); err != nil {
		c.logger.Warn("checking cancelled", "reason", err)
	}

	return results
}

// checkOne performs the single bounded-timeout attempt for one URL.
// Any failure, expected or not, is downgraded to a result value.
func (c *Checker) checkOne(ctx context.Context, url string) (result model.CheckResult) {
	result = model.CheckResult{URL: url}

	// A panic inside the request path must not kill the run; it becomes a
	// generic finding for this URL.
	defer func() {
		if r := recover(); r != nil {
			result.OK = false
			result.Status = 0
			result.Detail = fmt.Sprintf("Error: %v", r)
		}
	}()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		result.Detail = fmt.Sprintf("Error: %v", err)
		return result
	}
	req.Header.Set("User-Agent", c.userAgent)
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	req.Header.Set("Connection", "close")

	resp, err := c.client.Do(req)
	if err != nil {
		// Connection refused, DNS failure, or timeout: no response,
		// status stays 0.
		result.Detail = fmt.Sprintf("URL Error: %v", err)
		return result
	}
	defer resp.Body.Close() //nolint:errcheck // Nothing useful to do on close failure

	result.Status = resp.StatusCode
	if resp.StatusCode >= 200 && resp.StatusCode < 400 {
		result.OK = true
		return result
	}

	result.Detail = fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	return result
}
