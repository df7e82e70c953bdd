// Package domain defines the core entities of the chapter bundler.
//
// This package is the innermost layer of the hexagonal architecture.
// It has NO external dependencies and defines the fundamental types:
//
//   - Chapter: A normalised chapter record with its verses
//   - Verse: One numbered verse carrying Arabic, English and Bengali text
//   - Dataset: All chapters keyed by their filename-derived number
//   - IndexEntry: Verse-free summary metadata for one chapter
//   - RunReport: The outcome of one bundling run
//
// # Architectural Position
//
// Domain is at the centre of the hexagon. It may only import
// the Go standard library. All other packages depend on domain,
// never the reverse.
//
// # Import Rules
//
//   - Can Import: Standard library only
//   - Cannot Import: Any internal/ package, any external dependency
package domain
