package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/nao1215/urlsweep/internal/model"
)

// Environment variable names read during resolution.
const (
	EnvReplacements     = "URL_REPLACEMENTS"
	EnvSkipDomains      = "SKIP_DOMAINS"
	EnvSkipURLs         = "SKIP_URLS"
	EnvSkipFiles        = "SKIP_FILES"
	EnvMarkdownPatterns = "MARKDOWN_PATTERNS"
	EnvHTMLPatterns     = "HTML_PATTERNS"
	EnvFilePatterns     = "FILE_PATTERNS"
)

// Flags carries the raw command-line values into Resolve.
// String fields hold the literal flag values; empty means the flag was
// absent. Timeout and Workers carry a Changed marker because their zero
// values are not distinguishable from "not set".
type Flags struct {
	// Directory is the positional target directory ("" means absent).
	Directory string

	// Replacements is the raw --replacements JSON object.
	Replacements string

	// Timeout is the --timeout value; meaningful only when TimeoutChanged.
	Timeout time.Duration

	// TimeoutChanged reports whether --timeout was given.
	TimeoutChanged bool

	// Workers is the --workers value; meaningful only when WorkersChanged.
	Workers int

	// WorkersChanged reports whether --workers was given.
	WorkersChanged bool

	// Verbose is the --verbose flag.
	Verbose bool

	// SkipDomains, SkipURLs, and SkipFiles are raw CSV lists.
	SkipDomains string
	SkipURLs    string
	SkipFiles   string

	// MarkdownPatterns, HTMLPatterns, and FilePatterns are raw CSV lists.
	MarkdownPatterns string
	HTMLPatterns     string
	FilePatterns     string

	// JSON and Markdown select the report format.
	JSON     bool
	Markdown bool

	// Output is the --output report file path.
	Output string
}

// EnvSnapshot captures the process environment as a map.
//
// Design decision: Resolve takes an explicit snapshot rather than reading
// os.Getenv internally so that resolution is a pure function of its inputs
// and trivially testable. This is the only place the environment is read.
func EnvSnapshot() map[string]string {
	env := make(map[string]string)
	for _, kv := range os.Environ() {
		if k, v, ok := strings.Cut(kv, "="); ok {
			env[k] = v
		}
	}
	return env
}

// Resolve merges the three configuration sources into one immutable Config.
// Precedence per setting is file < environment < command line, with two
// deliberately different merge rules:
//
//   - Replacement mappings merge key-wise: each source's successfully parsed
//     keys override earlier values for the same key, in place.
//   - Skip lists (domains, URLs, files) are unioned across sources; an
//     environment entry stays unless it is literally absent.
//   - Extension pattern lists are replaced wholesale by the highest-priority
//     source that provides them.
//
// The union-versus-override asymmetry is a contract, not an accident.
// Malformed replacement JSON from any source is fatal and reported before
// any file is read.
func Resolve(file *File, env map[string]string, flags Flags) (*Config, error) {
	cfg := NewConfig()

	if flags.Directory != "" {
		cfg.Directory = flags.Directory
	}
	cfg.Verbose = flags.Verbose
	cfg.JSONReport = flags.JSON
	cfg.MarkdownReport = flags.Markdown
	cfg.ReportFile = flags.Output

	if file != nil {
		if file.Timeout > 0 {
			cfg.Timeout = time.Duration(file.Timeout) * time.Second
		}
		if file.Workers > 0 {
			cfg.Workers = file.Workers
		}
		for _, rep := range file.Replacements {
			cfg.Replacements = cfg.Replacements.Set(rep.From, rep.To)
		}
	}
	if flags.TimeoutChanged {
		cfg.Timeout = flags.Timeout
	}
	if flags.WorkersChanged {
		cfg.Workers = flags.Workers
	}

	var err error
	if cfg.Replacements, err = mergeReplacements(cfg.Replacements, env[EnvReplacements], EnvReplacements+" environment variable"); err != nil {
		return nil, err
	}
	if cfg.Replacements, err = mergeReplacements(cfg.Replacements, flags.Replacements, "--replacements argument"); err != nil {
		return nil, err
	}

	cfg.SkipDomains = unionCSV(nil, true, fileList(file, func(f *File) []string { return f.SkipDomains }), env[EnvSkipDomains], flags.SkipDomains)
	cfg.SkipURLs = unionCSV(nil, false, fileList(file, func(f *File) []string { return f.SkipURLs }), env[EnvSkipURLs], flags.SkipURLs)
	cfg.SkipFiles = unionCSV(nil, false, fileList(file, func(f *File) []string { return f.SkipFiles }), env[EnvSkipFiles], flags.SkipFiles)

	cfg.MarkdownPatterns = resolvePatterns(DefaultMarkdownPatterns, fileList(file, func(f *File) []string { return f.MarkdownPatterns }), env[EnvMarkdownPatterns], flags.MarkdownPatterns)
	cfg.HTMLPatterns = resolvePatterns(DefaultHTMLPatterns, fileList(file, func(f *File) []string { return f.HTMLPatterns }), env[EnvHTMLPatterns], flags.HTMLPatterns)
	cfg.FilePatterns = resolvePatterns(DefaultFilePatterns, fileList(file, func(f *File) []string { return f.FilePatterns }), env[EnvFilePatterns], flags.FilePatterns)

	return cfg, nil
}

// fileList extracts a list from the config file, tolerating a nil file.
func fileList(file *File, pick func(*File) []string) []string {
	if file == nil {
		return nil
	}
	return pick(file)
}

// mergeReplacements parses a JSON object of substring mappings and merges it
// into existing, key-wise and in document order.
//
// encoding/json decodes objects into maps, which lose key order, so we walk
// the token stream instead: replacement application order must follow the
// order keys appear in the configuration.
func mergeReplacements(existing model.Replacements, raw, source string) (model.Replacements, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return existing, nil
	}

	dec := json.NewDecoder(strings.NewReader(raw))
	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("%w: error parsing %s: %v", ErrInvalidReplacements, source, err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, fmt.Errorf("%w: error parsing %s: expected a JSON object", ErrInvalidReplacements, source)
	}

	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("%w: error parsing %s: %v", ErrInvalidReplacements, source, err)
		}
		key, ok := keyTok.(string)
		if !ok {
			return nil, fmt.Errorf("%w: error parsing %s: non-string key", ErrInvalidReplacements, source)
		}

		var value string
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("%w: error parsing %s: value for %q must be a string: %v", ErrInvalidReplacements, source, key, err)
		}

		existing = existing.Set(key, value)
	}

	// Consume the closing brace and require the document to end there.
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("%w: error parsing %s: %v", ErrInvalidReplacements, source, err)
	}
	if _, err := dec.Token(); err != io.EOF {
		return nil, fmt.Errorf("%w: error parsing %s: trailing data after object", ErrInvalidReplacements, source)
	}

	return existing, nil
}

// unionCSV merges list entries from the config file and two CSV sources into
// a set, preserving first-seen order. When lower is true entries are
// lowercased before insertion (skip-domains compare case-insensitively).
func unionCSV(dst []string, lower bool, fromFile []string, csvs ...string) []string {
	seen := make(map[string]bool, len(dst))
	for _, v := range dst {
		seen[v] = true
	}

	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		if lower {
			v = strings.ToLower(v)
		}
		if !seen[v] {
			seen[v] = true
			dst = append(dst, v)
		}
	}

	for _, v := range fromFile {
		add(v)
	}
	for _, csv := range csvs {
		for _, v := range splitCSV(csv) {
			add(v)
		}
	}
	return dst
}

// resolvePatterns picks the extension list from the highest-priority source
// that provides one: CLI, then environment, then config file, then default.
// Unlike skip lists, pattern lists replace wholesale.
func resolvePatterns(defaults, fromFile []string, envCSV, flagCSV string) []string {
	if patterns := splitCSV(flagCSV); len(patterns) > 0 {
		return patterns
	}
	if patterns := splitCSV(envCSV); len(patterns) > 0 {
		return patterns
	}
	if len(fromFile) > 0 {
		return append([]string(nil), fromFile...)
	}
	return append([]string(nil), defaults...)
}

// splitCSV splits a comma-separated list, trimming whitespace and dropping
// empty entries. An empty or blank input yields nil.
func splitCSV(s string) []string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
