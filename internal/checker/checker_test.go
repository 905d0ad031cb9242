package checker

import (
	"context"
	"net/http"
	"net/http/httptest"
	"reflect"
	"sort"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/nao1215/urlsweep/internal/model"
)

// newTestServer serves a small set of fixed behaviors for checks.
func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/ok", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	mux.HandleFunc("/moved", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/ok", http.StatusFound)
	})
	mux.HandleFunc("/missing", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})
	mux.HandleFunc("/broken", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/slow", func(w http.ResponseWriter, _ *http.Request) {
		time.Sleep(2 * time.Second)
		w.WriteHeader(http.StatusOK)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	return srv
}

func TestCheckerCheck(t *testing.T) {
	t.Parallel()

	t.Run("classifies statuses", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t)
		c := New(srv.Client(), WithWorkers(4))

		results := c.Check(context.Background(), []string{
			srv.URL + "/ok",
			srv.URL + "/moved",
			srv.URL + "/missing",
			srv.URL + "/broken",
		})

		byURL := make(map[string]model.CheckResult, len(results))
		for _, r := range results {
			byURL[r.URL] = r
		}

		if r := byURL[srv.URL+"/ok"]; !r.OK || r.Status != 200 {
			t.Errorf("expected 200 OK, got %+v", r)
		}
		// Redirects are followed; the final status counts.
		if r := byURL[srv.URL+"/moved"]; !r.OK || r.Status != 200 {
			t.Errorf("expected redirect to succeed, got %+v", r)
		}
		if r := byURL[srv.URL+"/missing"]; r.OK || r.Status != 404 || !strings.Contains(r.Detail, "HTTP 404") {
			t.Errorf("expected 404 failure, got %+v", r)
		}
		if r := byURL[srv.URL+"/broken"]; r.OK || r.Status != 500 {
			t.Errorf("expected 500 failure, got %+v", r)
		}
	})

	t.Run("connection failure yields status zero", func(t *testing.T) {
		t.Parallel()

		// A server that is already closed refuses connections.
		srv := httptest.NewServer(http.NotFoundHandler())
		url := srv.URL
		srv.Close()

		c := New(&http.Client{Timeout: 2 * time.Second})
		results := c.Check(context.Background(), []string{url + "/x"})

		if len(results) != 1 {
			t.Fatalf("expected 1 result, got %d", len(results))
		}
		r := results[0]
		if r.OK || r.Status != 0 || !strings.Contains(r.Detail, "URL Error") {
			t.Errorf("expected network failure with status 0, got %+v", r)
		}
	})

	t.Run("timeout yields status zero", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t)
		c := New(&http.Client{Timeout: 100 * time.Millisecond})

		results := c.Check(context.Background(), []string{srv.URL + "/slow"})
		if len(results) != 1 {
			t.Fatalf("expected 1 result, got %d", len(results))
		}
		if results[0].OK || results[0].Status != 0 {
			t.Errorf("expected timeout failure, got %+v", results[0])
		}
	})

	t.Run("result partition is invariant under pool size", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t)
		urls := []string{
			srv.URL + "/ok",
			srv.URL + "/missing",
			srv.URL + "/moved",
			srv.URL + "/broken",
		}

		var baseline []model.CheckResult
		for _, workers := range []int{1, 2, 4, 8} {
			c := New(srv.Client(), WithWorkers(workers))
			results := c.Check(context.Background(), urls)
			sort.Slice(results, func(i, j int) bool { return results[i].URL < results[j].URL })

			if baseline == nil {
				baseline = results
				continue
			}
			if !reflect.DeepEqual(results, baseline) {
				t.Errorf("workers=%d: results differ from baseline:\n%v\nvs\n%v", workers, results, baseline)
			}
		}
	})

	t.Run("progress counter reaches total", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t)

		var (
			mu   sync.Mutex
			seen []int
		)
		c := New(srv.Client(), WithWorkers(3), WithProgress(func(checked, total int, _ model.CheckResult) {
			mu.Lock()
			defer mu.Unlock()
			if total != 3 {
				t.Errorf("expected total 3, got %d", total)
			}
			seen = append(seen, checked)
		}))

		c.Check(context.Background(), []string{srv.URL + "/ok", srv.URL + "/missing", srv.URL + "/moved"})

		mu.Lock()
		defer mu.Unlock()
		sort.Ints(seen)
		if !reflect.DeepEqual(seen, []int{1, 2, 3}) {
			t.Errorf("expected progress 1..3, got %v", seen)
		}
	})

	t.Run("cancelled context returns partial results without error", func(t *testing.T) {
		t.Parallel()

		srv := newTestServer(t)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		c := New(srv.Client(), WithWorkers(2))
		results := c.Check(ctx, []string{srv.URL + "/ok", srv.URL + "/moved"})

		// Everything after cancellation is simply unchecked.
		if len(results) > 2 {
			t.Errorf("unexpected result count: %d", len(results))
		}
	})
}
