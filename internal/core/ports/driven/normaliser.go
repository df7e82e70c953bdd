package driven

import (
	"context"

	"github.com/custodia-labs/chapter-bundler/internal/core/domain"
)

// ChapterNormaliser transforms raw chapter JSON into domain records.
// Missing fields are defaulted; values of the wrong JSON type are
// reported as domain.ErrMalformedChapter.
type ChapterNormaliser interface {
	// NormaliseChapter builds the full chapter record for a file.
	NormaliseChapter(ctx context.Context, file domain.ChapterFile, raw []byte) (*domain.Chapter, error)

	// SummariseChapter builds the index entry for a file, numbered by the file name.
	SummariseChapter(ctx context.Context, file domain.ChapterFile, raw []byte) (*domain.IndexEntry, error)

	// NormaliseIndex parses a consolidated index file.
	// Entries are numbered by position. On error the entries built before
	// the failing element are returned alongside it.
	NormaliseIndex(ctx context.Context, raw []byte) ([]domain.IndexEntry, error)
}
