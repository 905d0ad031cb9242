// Package checker verifies canonical URLs over a bounded worker pool.
//
// One task is created per canonical URL. Each task performs a single HTTP
// request with the configured per-request timeout; there is no retry and no
// global run budget. Task failures of any kind are converted into CheckResult
// values and never cross the pool boundary as errors.
//
// Completion order is unspecified and is a contract, not an accident: the
// caller must not derive anything from it. Results are collected under a
// mutex and normalized (sorted) before reporting.
package checker
