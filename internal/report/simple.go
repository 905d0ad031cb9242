package report

import (
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/nao1215/urlsweep/internal/config"
	"github.com/nao1215/urlsweep/internal/model"
)

// SimpleWriter outputs human-readable text reports for terminal display.
//
// Design decision: Plain text with ASCII rules rather than ANSI colors:
// it works in every terminal and pipes cleanly into files and other tools.
type SimpleWriter struct {
	baseWriter

	// sourceLimit caps how many referencing files are listed per broken
	// link; the rest collapse into a count.
	sourceLimit int
}

// SimpleWriterOption configures a SimpleWriter.
type SimpleWriterOption func(*SimpleWriter)

// WithSourceLimit overrides the per-link provenance display cap.
func WithSourceLimit(n int) SimpleWriterOption {
	return func(w *SimpleWriter) {
		if n > 0 {
			w.sourceLimit = n
		}
	}
}

// NewSimpleWriter creates a SimpleWriter that outputs to the given writer.
func NewSimpleWriter(output io.Writer, opts ...SimpleWriterOption) *SimpleWriter {
	w := &SimpleWriter{
		baseWriter:  newBaseWriter(output),
		sourceLimit: config.SourceDisplayLimit,
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Write outputs the report block: one section per broken link, or a single
// success summary when everything resolved.
func (w *SimpleWriter) Write(report *model.Report) (int, error) {
	var sb strings.Builder

	rule := strings.Repeat("=", 80)
	broken := report.Broken()

	sb.WriteString("\n")
	if len(broken) > 0 {
		sb.WriteString(rule + "\n")
		fmt.Fprintf(&sb, "BROKEN LINKS FOUND: %d\n", len(broken))
		sb.WriteString(rule + "\n\n")

		for _, link := range broken {
			w.writeBrokenLink(&sb, report, link)
		}
	} else {
		sb.WriteString(rule + "\n")
		sb.WriteString("✓ ALL LINKS OK\n")
		sb.WriteString(rule + "\n")
		fmt.Fprintf(&sb, "Checked %d unique URLs across %d files\n", report.UniqueURLs, report.FilesScanned)
	}

	return w.output.Write([]byte(sb.String()))
}

// writeBrokenLink renders one broken link with its capped provenance list.
func (w *SimpleWriter) writeBrokenLink(sb *strings.Builder, report *model.Report, link model.BrokenLink) {
	fmt.Fprintf(sb, "✗ %s\n", link.URL)
	fmt.Fprintf(sb, "  Status: %s\n", link.Detail)
	sb.WriteString("  Found in:\n")

	sources := distinct(link.Sources)
	shown := sources
	if len(shown) > w.sourceLimit {
		shown = shown[:w.sourceLimit]
	}
	for _, source := range shown {
		fmt.Fprintf(sb, "    - %s\n", w.displayPath(report.Directory, source))
	}
	if rest := len(sources) - len(shown); rest > 0 {
		fmt.Fprintf(sb, "    ... and %d more files\n", rest)
	}
	sb.WriteString("\n")
}

// displayPath shows sources relative to the scanned root when possible.
func (w *SimpleWriter) displayPath(root, source string) string {
	if rel, err := filepath.Rel(root, source); err == nil && !strings.HasPrefix(rel, "..") {
		return rel
	}
	return source
}

// distinct removes duplicate entries, keeping first-seen order.
// Provenance retains duplicates for counting; display does not repeat them.
func distinct(list []string) []string {
	seen := make(map[string]bool, len(list))
	out := make([]string, 0, len(list))
	for _, v := range list {
		if !seen[v] {
			seen[v] = true
			out = append(out, v)
		}
	}
	return out
}
