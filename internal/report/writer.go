// Package report renders the outcome of a link-check run.
//
// Three formats are supported: a human-readable terminal block, JSON for
// tool integration, and GitHub Flavored Markdown for sharing. All writers
// consume the same model.Report; the partition into successes and failures
// never depends on check completion order because the report's results are
// sorted before rendering.
package report

import (
	"io"

	"github.com/nao1215/urlsweep/internal/model"
)

// Writer defines the interface for report output.
//
// Design decision: We use an interface to allow different output formats
// and destinations with the same API: files, stdout, or buffers in tests.
type Writer interface {
	// Write outputs the report to the configured destination.
	// Returns the number of bytes written and any error encountered.
	Write(report *model.Report) (int, error)
}

// baseWriter provides the shared output destination for report writers.
type baseWriter struct {
	output io.Writer
}

// newBaseWriter creates a baseWriter with the given output destination.
func newBaseWriter(output io.Writer) baseWriter {
	return baseWriter{output: output}
}
