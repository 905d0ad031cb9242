package config

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/nao1215/urlsweep/internal/model"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is the default configuration file name.
const DefaultConfigFile = ".urlsweep.yml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// File represents the structure of the .urlsweep.yml configuration file.
// It is the lowest-priority configuration source: every value here can be
// overridden by environment variables or command-line flags.
//
// Replacements are a YAML sequence rather than a mapping so that their
// order survives decoding; replacement application order is significant.
type File struct {
	// Replacements are ordered substring rewrites applied to checked URLs.
	Replacements []model.Replacement `yaml:"replacements,omitempty"`

	// SkipDomains, SkipURLs, and SkipFiles seed the corresponding skip sets.
	// Entries here are unioned with environment and flag entries.
	SkipDomains []string `yaml:"skipDomains,omitempty"`
	SkipURLs    []string `yaml:"skipUrls,omitempty"`
	SkipFiles   []string `yaml:"skipFiles,omitempty"`

	// MarkdownPatterns, HTMLPatterns, and FilePatterns replace the built-in
	// extension lists wholesale when present.
	MarkdownPatterns []string `yaml:"markdownPatterns,omitempty"`
	HTMLPatterns     []string `yaml:"htmlPatterns,omitempty"`
	FilePatterns     []string `yaml:"filePatterns,omitempty"`

	// Timeout is the per-request timeout in seconds, matching the
	// --timeout flag unit.
	Timeout int `yaml:"timeout,omitempty"`

	// Workers is the checking worker-pool size.
	Workers int `yaml:"workers,omitempty"`
}

// LoadConfigFile loads run configuration from a YAML file.
// If the file does not exist, it returns ErrConfigNotFound. Callers decide
// how to treat that based on whether the path was explicitly specified.
func LoadConfigFile(path string) (*File, error) {
	data, err := os.ReadFile(path) //nolint:gosec // User-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}

	var cf File
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}
	return &cf, nil
}

// FindConfigFile searches for the configuration file in the following order:
// 1. If configPath is specified, use it directly
// 2. Look for .urlsweep.yml in the current directory
// 3. Look for .urlsweep.yml in the user's home directory
//
// Returns the path if found, or empty string if not found.
func FindConfigFile(configPath string) string {
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil {
			return configPath
		}
		return ""
	}

	cwd, err := os.Getwd()
	if err == nil {
		cwdConfig := filepath.Join(cwd, DefaultConfigFile)
		if _, err := os.Stat(cwdConfig); err == nil {
			return cwdConfig
		}
	}

	home, err := os.UserHomeDir()
	if err == nil {
		homeConfig := filepath.Join(home, DefaultConfigFile)
		if _, err := os.Stat(homeConfig); err == nil {
			return homeConfig
		}
	}

	return ""
}
