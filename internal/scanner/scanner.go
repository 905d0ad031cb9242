package scanner

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/karrick/godirwalk"
	"github.com/nao1215/urlsweep/internal/model"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// ErrDirectoryNotFound is returned when the scan root does not exist.
// This is a fatal precondition: nothing is scanned.
var ErrDirectoryNotFound = errors.New("directory does not exist")

// excludedDirs are directory names pruned before descent. These hold
// dependencies, build output, or VCS metadata, none of which are
// documentation the checker should read.
var excludedDirs = map[string]bool{
	"node_modules": true,
	".git":         true,
	"__pycache__":  true,
	"target":       true,
	"dist":         true,
	"build":        true,
	".venv":        true,
	"venv":         true,
}

// Scanner walks a directory tree and collects classified documentation files.
type Scanner struct {
	// root is the directory to walk.
	root string

	// skipFiles excludes files by basename.
	skipFiles map[string]bool

	// markdownPatterns, htmlPatterns, and filePatterns are the ordered
	// suffix lists used for classification, in priority order.
	markdownPatterns []string
	htmlPatterns     []string
	filePatterns     []string

	// logger reports non-fatal read failures.
	logger *slog.Logger
}

// Option configures a Scanner.
type Option func(*Scanner)

// WithSkipFiles sets the basenames to exclude from scanning.
func WithSkipFiles(names []string) Option {
	return func(s *Scanner) {
		for _, name := range names {
			s.skipFiles[name] = true
		}
	}
}

// WithPatterns sets the three suffix lists used for classification.
func WithPatterns(markdown, html, generic []string) Option {
	return func(s *Scanner) {
		s.markdownPatterns = markdown
		s.htmlPatterns = html
		s.filePatterns = generic
	}
}

// WithLogger sets the logger for read warnings.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Scanner) {
		s.logger = logger
	}
}

// New creates a Scanner rooted at the given directory.
func New(root string, opts ...Option) *Scanner {
	s := &Scanner{
		root:      root,
		skipFiles: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Scan walks the root and returns every readable, classified file.
// The walk is deterministic: entries are visited in lexical order.
func (s *Scanner) Scan(ctx context.Context) ([]model.ScannedFile, error) {
	info, err := os.Stat(s.root)
	if err != nil || !info.IsDir() {
		return nil, fmt.Errorf("%w: %s", ErrDirectoryNotFound, s.root)
	}

	files := make([]model.ScannedFile, 0)

	err = godirwalk.Walk(s.root, &godirwalk.Options{
		Callback: func(path string, de *godirwalk.Dirent) error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
			}

			name := de.Name()
			if de.IsDir() {
				if path != s.root && excludedDirs[name] {
					return filepath.SkipDir
				}
				return nil
			}
			if !de.IsRegular() {
				return nil
			}
			if s.skipFiles[name] {
				return nil
			}

			category, ok := s.classify(name)
			if !ok {
				return nil
			}

			content, err := readPermissive(path)
			if err != nil {
				// Non-fatal: warn and keep scanning.
				s.logger.Warn("could not read file", "path", path, "error", err)
				fmt.Fprintf(os.Stderr, "Warning: Could not read %s: %v\n", path, err)
				return nil
			}

			files = append(files, model.ScannedFile{
				Path:     path,
				Content:  content,
				Category: category,
			})
			return nil
		},
		ErrorCallback: func(path string, err error) godirwalk.ErrorAction {
			s.logger.Warn("walk error", "path", path, "error", err)
			return godirwalk.SkipNode
		},
		// Sorted traversal keeps file order, and therefore provenance
		// order, stable across runs.
		Unsorted: false,
	})
	if err != nil {
		return nil, err
	}

	return files, nil
}

// classify assigns the category of the first pattern list whose entries
// include a matching suffix. Markdown is checked before html before generic;
// a file matching none of the three lists is not scanned.
func (s *Scanner) classify(name string) (model.FileCategory, bool) {
	if matchesSuffix(name, s.markdownPatterns) {
		return model.CategoryMarkdown, true
	}
	if matchesSuffix(name, s.htmlPatterns) {
		return model.CategoryHTML, true
	}
	if matchesSuffix(name, s.filePatterns) {
		return model.CategoryGeneric, true
	}
	return 0, false
}

// matchesSuffix reports whether name ends with any of the patterns.
func matchesSuffix(name string, patterns []string) bool {
	for _, p := range patterns {
		if p != "" && strings.HasSuffix(name, p) {
			return true
		}
	}
	return false
}

// readPermissive reads a file, replacing invalid UTF-8 byte sequences with
// U+FFFD rather than failing the read.
func readPermissive(path string) (string, error) {
	data, err := os.ReadFile(path) //nolint:gosec // Paths come from the user-requested walk
	if err != nil {
		return "", err
	}

	decoded, _, err := transform.Bytes(unicode.UTF8.NewDecoder(), data)
	if err != nil {
		// The replacement decoder does not error on malformed input, but
		// keep the file rather than drop it if it ever does.
		return string(data), nil
	}
	return string(decoded), nil
}
