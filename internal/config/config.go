package config

import (
	"path/filepath"
	"time"

	"github.com/adrg/xdg"
	"github.com/nao1215/urlsweep/internal/model"
)

// Default configuration values.
const (
	// DefaultTimeout is the per-request timeout for URL checks.
	// 10 seconds is generous enough for slow documentation hosts while
	// keeping a run with a few hung URLs bounded.
	DefaultTimeout = 10 * time.Second

	// DefaultWorkers is the size of the checking worker pool. It bounds the
	// number of concurrent outstanding HTTP requests.
	DefaultWorkers = 8

	// DefaultUserAgent identifies urlsweep in HTTP requests.
	// Some hosts reject requests without a browser-like User-Agent, so we
	// use a compatible token rather than a bare product name.
	DefaultUserAgent = "Mozilla/5.0 (compatible; urlsweep/1.0; +https://github.com/nao1215/urlsweep)"

	// AppName is the application name used for XDG directory paths.
	AppName = "urlsweep"

	// SourceDisplayLimit caps how many provenance files are printed per
	// broken link; the remainder is summarized as a count.
	SourceDisplayLimit = 5
)

// Default extension pattern lists. A file is classified by the first list
// containing a matching suffix, markdown before html before generic.
var (
	// DefaultMarkdownPatterns are the suffixes treated as markdown.
	DefaultMarkdownPatterns = []string{".md", ".markdown"}

	// DefaultHTMLPatterns are the suffixes treated as HTML.
	DefaultHTMLPatterns = []string{".html", ".htm"}

	// DefaultFilePatterns are the suffixes for generic files, which run
	// both extractors. Empty by default: generic scanning is opt-in.
	DefaultFilePatterns = []string{}
)

// Config holds all configuration options for a urlsweep run.
// It is resolved once by Resolve, validated, and never mutated afterwards.
//
// Design decision: We use a single flat struct instead of nested structs
// because the number of options is manageable, and nesting would add
// complexity without significant benefit.
type Config struct {
	// Directory is the root directory to scan for documentation files.
	Directory string

	// Timeout is the per-request timeout for each URL check.
	// There is no separate global run budget: a hung worker is bounded
	// only by this per-request timeout.
	Timeout time.Duration

	// Workers is the fixed worker-pool size for concurrent URL checks.
	Workers int

	// Verbose also prints successful checks and enables debug logging.
	Verbose bool

	// Replacements are ordered substring rewrites applied to every URL
	// that passed validity filtering, in configuration order.
	Replacements model.Replacements

	// SkipDomains are lowercase substrings matched against the extracted
	// domain; matching URLs are never checked.
	SkipDomains []string

	// SkipURLs are substrings matched against the full URL; matching URLs
	// are never checked.
	SkipURLs []string

	// SkipFiles are basenames excluded from scanning outright.
	SkipFiles []string

	// MarkdownPatterns are the suffixes classified as markdown files.
	MarkdownPatterns []string

	// HTMLPatterns are the suffixes classified as HTML files.
	HTMLPatterns []string

	// FilePatterns are the suffixes classified as generic files.
	FilePatterns []string

	// UserAgent is sent with every check request.
	UserAgent string

	// JSONReport outputs the report as JSON instead of text.
	// Mutually exclusive with MarkdownReport.
	JSONReport bool

	// MarkdownReport outputs the report as GitHub Flavored Markdown.
	// Mutually exclusive with JSONReport.
	MarkdownReport bool

	// ReportFile writes the report to this path instead of stdout.
	ReportFile string

	// HistoryDir is the directory for the run-history SQLite database.
	// Empty disables persistence.
	HistoryDir string
}

// NewConfig creates a new Config with default values.
//
// Design decision: We use a constructor instead of relying on zero values
// because many defaults are non-zero. This also documents the defaults.
func NewConfig() *Config {
	return &Config{
		Directory:        ".",
		Timeout:          DefaultTimeout,
		Workers:          DefaultWorkers,
		MarkdownPatterns: append([]string(nil), DefaultMarkdownPatterns...),
		HTMLPatterns:     append([]string(nil), DefaultHTMLPatterns...),
		FilePatterns:     append([]string(nil), DefaultFilePatterns...),
		UserAgent:        DefaultUserAgent,
		HistoryDir:       XDGDataDir(),
	}
}

// XDGDataDir returns the XDG data directory for urlsweep.
// On Linux: ~/.local/share/urlsweep
func XDGDataDir() string {
	return filepath.Join(xdg.DataHome, AppName)
}

// Validate checks if the configuration is valid.
// It returns the first problem found; fixing one error often makes
// later ones irrelevant.
func (c *Config) Validate() error {
	if c.Directory == "" {
		return ErrNoDirectory
	}
	if c.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.Workers <= 0 {
		return ErrInvalidWorkers
	}
	if c.JSONReport && c.MarkdownReport {
		return ErrConflictingReportFormats
	}
	return nil
}
