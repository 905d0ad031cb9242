package report

import (
	"encoding/json"
	"io"
	"time"

	"github.com/nao1215/urlsweep/internal/model"
)

// JSONWriter outputs reports in JSON format for tool integration.
//
// Design decision: Standard encoding/json is sufficient here; the payload
// is small and we do not need streaming or custom tag behavior.
type JSONWriter struct {
	baseWriter

	// indent enables pretty-printed output.
	indent bool
}

// JSONWriterOption configures a JSONWriter.
type JSONWriterOption func(*JSONWriter)

// WithPrettyPrint enables two-space indented output.
func WithPrettyPrint() JSONWriterOption {
	return func(w *JSONWriter) {
		w.indent = true
	}
}

// NewJSONWriter creates a JSONWriter that outputs to the given writer.
func NewJSONWriter(output io.Writer, opts ...JSONWriterOption) *JSONWriter {
	w := &JSONWriter{baseWriter: newBaseWriter(output)}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// Payload is the serialized form of a run. It is shared with the history
// store so stored runs and emitted reports stay comparable.
type Payload struct {
	// Directory is the scanned root.
	Directory string `json:"directory"`

	// DateChecked is when the run started.
	DateChecked time.Time `json:"date_checked"`

	// FilesScanned and UniqueURLs are the run totals.
	FilesScanned int `json:"files_scanned"`
	UniqueURLs   int `json:"unique_urls"`

	// OK is true when no link is broken.
	OK bool `json:"ok"`

	// Broken lists every failed URL with provenance.
	Broken []model.BrokenLink `json:"broken"`
}

// NewPayload builds the serialized form of a report.
func NewPayload(report *model.Report) *Payload {
	return &Payload{
		Directory:    report.Directory,
		DateChecked:  report.DateChecked,
		FilesScanned: report.FilesScanned,
		UniqueURLs:   report.UniqueURLs,
		OK:           !report.HasBroken(),
		Broken:       report.Broken(),
	}
}

// Write outputs the report as a single JSON document.
func (w *JSONWriter) Write(report *model.Report) (int, error) {
	var (
		data []byte
		err  error
	)
	payload := NewPayload(report)
	if w.indent {
		data, err = json.MarshalIndent(payload, "", "  ")
	} else {
		data, err = json.Marshal(payload)
	}
	if err != nil {
		return 0, err
	}

	// Trailing newline for terminal friendliness.
	data = append(data, '\n')
	return w.output.Write(data)
}
