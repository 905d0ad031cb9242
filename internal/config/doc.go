// Package config provides configuration structures and utilities for urlsweep.
// It resolves the final run configuration from three ranked sources
// (config file, environment variables, command-line flags) and defines the
// defaults for scanning, checking, and report generation.
package config
