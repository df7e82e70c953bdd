package domain

import (
	"fmt"
	"time"
)

// FileError records why a single input file was skipped.
type FileError struct {
	// File is the base name of the failing file.
	File string

	// Err is the underlying cause.
	Err error
}

// Error implements the error interface.
func (e FileError) Error() string {
	return fmt.Sprintf("%s: %v", e.File, e.Err)
}

// Unwrap returns the underlying cause.
func (e FileError) Unwrap() error {
	return e.Err
}

// RunReport summarises one bundling run.
type RunReport struct {
	// RunID uniquely identifies the run.
	RunID string

	StartedAt  time.Time
	FinishedAt time.Time

	// FilesFound is the number of chapter files discovered.
	FilesFound int

	// Chapters is the number of chapters in the written dataset.
	Chapters int

	// IndexEntries is the number of entries in the written index.
	IndexEntries int

	// IndexFromFile is true when the index came from the consolidated index file.
	IndexFromFile bool

	// FileErrors lists the chapter files the aggregator skipped.
	FileErrors []FileError

	// IndexErr is set when index construction was aborted.
	IndexErr error

	// Outputs lists every location written, in write order.
	Outputs []string
}

// Duration returns how long the run took.
func (r *RunReport) Duration() time.Duration {
	return r.FinishedAt.Sub(r.StartedAt)
}

// HasErrors returns true if any file was skipped or the index was aborted.
func (r *RunReport) HasErrors() bool {
	return len(r.FileErrors) > 0 || r.IndexErr != nil
}
