package config

import "errors"

// Configuration errors.
//
// Design decision: We use package-level sentinel errors rather than creating
// new error instances at each call site. This allows callers to use
// errors.Is() for programmatic handling while keeping the messages
// human-readable.
var (
	// ErrNoDirectory is returned when the target directory is empty.
	ErrNoDirectory = errors.New("no directory specified")

	// ErrInvalidTimeout is returned when the timeout is not positive.
	ErrInvalidTimeout = errors.New("invalid timeout: must be positive")

	// ErrInvalidWorkers is returned when the worker count is not positive.
	// A pool of zero workers would never check anything.
	ErrInvalidWorkers = errors.New("invalid workers: must be positive")

	// ErrConflictingReportFormats is returned when both --json and
	// --markdown are specified. Only one output format can be used.
	ErrConflictingReportFormats = errors.New("conflicting report formats: --json and --markdown cannot be used together")

	// ErrInvalidReplacements is returned when a replacement mapping is not
	// valid JSON. This aborts the run before any file is read.
	ErrInvalidReplacements = errors.New("invalid replacement mapping")
)
