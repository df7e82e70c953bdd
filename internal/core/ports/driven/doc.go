// Package driven defines the interfaces that core calls OUT to infrastructure.
//
// These are the "driven" or "secondary" ports in hexagonal architecture.
// Core services depend on these interfaces, and infrastructure adapters
// implement them.
//
// # Required Interfaces
//
//   - ChapterSource: Discovers and reads per-chapter files and the consolidated index
//   - ChapterNormaliser: Turns raw chapter JSON into domain records
//   - BundleStore: Writes the aggregated dataset and the index
//   - ConfigStore: Application configuration
//
// # Optional Interfaces
//
// These can be nil or unimplemented - the application degrades gracefully:
//
//   - ProgressReporter: Receives per-file progress. Nil means silent.
//   - RunRecorder: Implemented by stores that keep a history of runs.
//
// # Import Rules
//
//   - Can Import: domain package only
//   - Cannot Import: Any adapter, connector, or normaliser package
package driven
