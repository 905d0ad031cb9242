package pipeline

import (
	"context"
	"fmt"

	"github.com/nao1215/urlsweep/internal/checker"
	"github.com/nao1215/urlsweep/internal/extract"
	"github.com/nao1215/urlsweep/internal/model"
	"github.com/nao1215/urlsweep/internal/scanner"
)

// ScanStep discovers and reads documentation files.
type ScanStep struct {
	scanner *scanner.Scanner

	// quiet suppresses the human progress lines.
	quiet bool
}

// NewScanStep creates a ScanStep around the given scanner.
func NewScanStep(s *scanner.Scanner, quiet bool) *ScanStep {
	return &ScanStep{scanner: s, quiet: quiet}
}

// Name returns the step name.
func (s *ScanStep) Name() string { return "scan-files" }

// Do walks the root and stores the scanned files on the report.
// A missing root directory is fatal; individual unreadable files are not.
func (s *ScanStep) Do(ctx context.Context, report *model.Report) error {
	if !s.quiet {
		fmt.Printf("Scanning %s for files...\n", report.Directory)
	}

	files, err := s.scanner.Scan(ctx)
	if err != nil {
		return err
	}

	report.Files = files
	report.FilesScanned = len(files)

	if !s.quiet {
		fmt.Printf("Found %d files to scan\n\n", len(files))
	}
	return nil
}

// ExtractStep builds the canonical link set from the scanned files.
type ExtractStep struct {
	filter *extract.Filter

	quiet   bool
	workers int
}

// NewExtractStep creates an ExtractStep around the given filter.
func NewExtractStep(f *extract.Filter, quiet bool, workers int) *ExtractStep {
	return &ExtractStep{filter: f, quiet: quiet, workers: workers}
}

// Name returns the step name.
func (s *ExtractStep) Name() string { return "extract-links" }

// Do extracts, filters, rewrites, and deduplicates URLs.
func (s *ExtractStep) Do(_ context.Context, report *model.Report) error {
	report.Links = s.filter.Collect(report.Files)
	report.UniqueURLs = report.Links.Len()

	if !s.quiet {
		fmt.Printf("Found %d unique URLs to check (using %d workers)\n\n", report.UniqueURLs, s.workers)
	}
	return nil
}

// CheckStep verifies every canonical URL over the worker pool.
type CheckStep struct {
	checker *checker.Checker
}

// NewCheckStep creates a CheckStep around the given checker.
func NewCheckStep(c *checker.Checker) *CheckStep {
	return &CheckStep{checker: c}
}

// Name returns the step name.
func (s *CheckStep) Name() string { return "check-links" }

// Do runs the concurrent checks and normalizes result order.
func (s *CheckStep) Do(ctx context.Context, report *model.Report) error {
	report.Results = s.checker.Check(ctx, report.Links.URLs())
	report.SortResults()
	return nil
}
