package model

import (
	"sort"
	"time"
)

// CheckResult is the outcome of checking one canonical URL.
//
// Design decision: Failures are plain values, never errors crossing the
// worker boundary. A per-URL failure is a finding, not an exceptional
// condition, and must not abort other checks.
type CheckResult struct {
	// URL is the canonical URL that was checked.
	URL string `json:"url"`

	// OK is true when the final HTTP status was in [200, 400).
	OK bool `json:"ok"`

	// Status is the numeric HTTP status code, or 0 when no response was
	// received (connection, DNS, or timeout failure).
	Status int `json:"status"`

	// Detail is a human-readable failure description. Empty on success.
	Detail string `json:"detail,omitempty"`
}

// BrokenLink pairs a failed check with the files that reference the URL.
type BrokenLink struct {
	// URL is the canonical URL that failed.
	URL string `json:"url"`

	// Status is the numeric HTTP status, or 0 when no response was received.
	Status int `json:"status"`

	// Detail describes the failure.
	Detail string `json:"detail"`

	// Sources lists the files referencing the URL, in first-seen order.
	// Duplicates are retained.
	Sources []string `json:"sources"`
}

// Report accumulates the state of a full link-check run.
// It is passed through the pipeline, with each step filling in its part.
type Report struct {
	// Directory is the root directory that was scanned.
	Directory string `json:"directory"`

	// DateChecked is when the run started.
	DateChecked time.Time `json:"date_checked"`

	// Files holds the scanned files. Not serialized: content can be large
	// and the counts below carry what reports and history need.
	Files []ScannedFile `json:"-"`

	// Links is the canonical URL set with provenance.
	Links *LinkSet `json:"-"`

	// Results holds one entry per canonical URL after checking.
	Results []CheckResult `json:"results,omitempty"`

	// FilesScanned is the number of files read and extracted from.
	FilesScanned int `json:"files_scanned"`

	// UniqueURLs is the number of canonical URLs submitted for checking.
	UniqueURLs int `json:"unique_urls"`

	// PerformedSteps records which pipeline steps ran, in order.
	PerformedSteps []string `json:"performed_steps,omitempty"`
}

// NewReport creates an empty Report for the given root directory.
func NewReport(directory string) *Report {
	return &Report{
		Directory:   directory,
		DateChecked: time.Now(),
		Links:       NewLinkSet(),
	}
}

// SortResults orders Results by URL.
//
// Task completion order is unspecified, so the report must not depend on it:
// sorting here makes the final output identical for any worker-pool size.
func (r *Report) SortResults() {
	sort.Slice(r.Results, func(i, j int) bool {
		return r.Results[i].URL < r.Results[j].URL
	})
}

// Broken returns the failed checks, in Results order, each joined with its
// provenance from the link set.
func (r *Report) Broken() []BrokenLink {
	broken := make([]BrokenLink, 0)
	for _, res := range r.Results {
		if res.OK {
			continue
		}
		var sources []string
		if r.Links != nil {
			sources = r.Links.Sources(res.URL)
		}
		broken = append(broken, BrokenLink{
			URL:     res.URL,
			Status:  res.Status,
			Detail:  res.Detail,
			Sources: sources,
		})
	}
	return broken
}

// HasBroken reports whether any check failed.
func (r *Report) HasBroken() bool {
	for _, res := range r.Results {
		if !res.OK {
			return true
		}
	}
	return false
}
