package report

import (
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"
	"github.com/nao1215/urlsweep/internal/model"
)

// MarkdownWriter outputs reports as GitHub Flavored Markdown, suitable for
// CI job summaries and issue bodies.
//
// Design decision: We use the nao1215/markdown library for fluent, type-safe
// markdown generation instead of hand-assembled strings.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{baseWriter: newBaseWriter(output)}
}

// Write outputs the report in Markdown format.
func (w *MarkdownWriter) Write(report *model.Report) (int, error) {
	md := markdown.NewMarkdown(w.output)

	md.H1("Link Check Report")
	md.PlainText("")

	broken := report.Broken()
	status := "✅ all links OK"
	if len(broken) > 0 {
		status = "❌ " + strconv.Itoa(len(broken)) + " broken link(s)"
	}

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Directory", "`" + report.Directory + "`"},
			{"Checked", report.DateChecked.Format("2006-01-02 15:04:05 MST")},
			{"Files Scanned", strconv.Itoa(report.FilesScanned)},
			{"Unique URLs", strconv.Itoa(report.UniqueURLs)},
			{"Result", status},
		},
	})
	md.PlainText("")

	if len(broken) > 0 {
		w.writeBrokenTable(md, broken)
	}

	return len(md.String()), md.Build()
}

// writeBrokenTable renders one row per broken link.
func (w *MarkdownWriter) writeBrokenTable(md *markdown.Markdown, broken []model.BrokenLink) {
	md.H2("Broken Links")
	md.PlainText("")

	rows := make([][]string, 0, len(broken))
	for _, link := range broken {
		rows = append(rows, []string{
			link.URL,
			link.Detail,
			strings.Join(distinct(link.Sources), "<br>"),
		})
	}

	md.Table(markdown.TableSet{
		Header: []string{"URL", "Status", "Found In"},
		Rows:   rows,
	})
	md.PlainText("")
}
