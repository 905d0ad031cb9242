// Package model defines the core data structures used throughout urlsweep.
//
// This package contains the following main types:
//   - ScannedFile: A documentation file discovered on disk with its content
//   - LinkSet: The canonical URL set with per-URL provenance
//   - CheckResult: The outcome of checking one canonical URL
//   - Report: The accumulated result of a full run
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (scanner, extract, checker, report, history)
// need to use these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON for report output and
// database storage.
package model
