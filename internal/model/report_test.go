package model

import (
	"reflect"
	"testing"
)

// TestFileCategoryString verifies category names used in logs and reports.
func TestFileCategoryString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		category FileCategory
		want     string
	}{
		{CategoryMarkdown, "markdown"},
		{CategoryHTML, "html"},
		{CategoryGeneric, "generic"},
		{FileCategory(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.category.String(); got != tt.want {
			t.Errorf("expected %q, got %q", tt.want, got)
		}
	}
}

// TestReportSortResults verifies that result order is normalized by URL,
// so the report does not depend on task completion order.
func TestReportSortResults(t *testing.T) {
	t.Parallel()

	r := NewReport(".")
	r.Results = []CheckResult{
		{URL: "https://c.test", OK: true, Status: 200},
		{URL: "https://a.test", OK: false, Status: 404},
		{URL: "https://b.test", OK: true, Status: 204},
	}
	r.SortResults()

	want := []string{"https://a.test", "https://b.test", "https://c.test"}
	got := make([]string, len(r.Results))
	for i, res := range r.Results {
		got[i] = res.URL
	}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("expected %v, got %v", want, got)
	}
}

// TestReportBroken verifies the broken-link partition and provenance join.
func TestReportBroken(t *testing.T) {
	t.Parallel()

	t.Run("joins failures with provenance", func(t *testing.T) {
		t.Parallel()

		r := NewReport(".")
		r.Links.Add("https://dead.test/z", "a.md")
		r.Links.Add("https://dead.test/z", "b.md")
		r.Results = []CheckResult{
			{URL: "https://good.test/y", OK: true, Status: 200},
			{URL: "https://dead.test/z", OK: false, Status: 0, Detail: "URL Error: connection refused"},
		}

		broken := r.Broken()
		if len(broken) != 1 {
			t.Fatalf("expected 1 broken link, got %d", len(broken))
		}
		if broken[0].URL != "https://dead.test/z" {
			t.Errorf("expected dead.test URL, got %q", broken[0].URL)
		}
		if !reflect.DeepEqual(broken[0].Sources, []string{"a.md", "b.md"}) {
			t.Errorf("unexpected sources: %v", broken[0].Sources)
		}
		if !r.HasBroken() {
			t.Error("expected HasBroken to be true")
		}
	})

	t.Run("empty when all checks pass", func(t *testing.T) {
		t.Parallel()

		r := NewReport(".")
		r.Results = []CheckResult{{URL: "https://good.test", OK: true, Status: 200}}

		if len(r.Broken()) != 0 {
			t.Errorf("expected no broken links, got %v", r.Broken())
		}
		if r.HasBroken() {
			t.Error("expected HasBroken to be false")
		}
	})
}
