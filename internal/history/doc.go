// Package history provides SQLite-based storage for past check runs.
//
// Each completed check is stored as one row: the directory, run totals,
// broken-link count, and the full report as JSON. The stored rows power
// the history listing and the diff between consecutive runs.
//
// Design decision: We use SQLite (via modernc.org/sqlite) because:
// 1. No external dependencies - the database is a single file
// 2. CGO-free implementation allows easy cross-compilation
// 3. Sufficient performance for our use case
// 4. WAL mode provides good concurrent read performance
package history
