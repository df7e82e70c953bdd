package driven

import "github.com/custodia-labs/chapter-bundler/internal/core/domain"

// ProgressReporter receives progress events from the aggregator.
type ProgressReporter interface {
	// Started is called once with the number of chapter files found.
	Started(total int)

	// Processing is called before each file is read. Position is 1-based.
	Processing(file domain.ChapterFile, position, total int)

	// Failed is called when a file is skipped.
	Failed(err domain.FileError)
}
