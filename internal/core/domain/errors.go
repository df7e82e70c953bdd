package domain

import "errors"

// Domain errors represent bundling failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidInput indicates malformed or invalid input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotImplemented indicates functionality is not available in this configuration.
	ErrNotImplemented = errors.New("not implemented")

	// ErrInputDirMissing indicates the input directory could not be listed.
	// This is the only fatal error of a run.
	ErrInputDirMissing = errors.New("input directory missing")

	// ErrMalformedChapter indicates a chapter file holds a value of the wrong JSON type.
	// Absent or null fields are defaulted and never produce this error.
	ErrMalformedChapter = errors.New("malformed chapter")

	// ErrIndexAborted indicates index construction stopped early.
	// Entries built before the failure are still returned.
	ErrIndexAborted = errors.New("index construction aborted")
)
