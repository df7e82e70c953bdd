// Package sqlite provides a BundleStore that exports bundle outputs to SQLite.
//
// This adapter uses modernc.org/sqlite, a pure Go SQLite implementation that requires
// no CGO, enabling easy cross-compilation.
//
// # Schema
//
// The database schema is managed through versioned migrations stored in the
// migrations/ directory. Each migration is a pair of .up.sql and .down.sql files.
//
//   - chapters, verses: the aggregated dataset
//   - index_entries: the chapter index, in index order
//   - bundle_runs, run_file_errors: one row per run and its skipped files
//
// Every save replaces the previous contents of its tables inside a single
// transaction. Run history is kept.
package sqlite
