package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/chapter-bundler/internal/core/domain"
	"github.com/custodia-labs/chapter-bundler/internal/core/ports/driven"
	"github.com/custodia-labs/chapter-bundler/internal/logger"
)

// IndexResult is the outcome of an index pass.
type IndexResult struct {
	// Entries is the index in chapter order. Never nil.
	Entries []domain.IndexEntry

	// FromFile is true when the consolidated index file was used.
	FromFile bool
}

// IndexBuilder builds the chapter index.
//
// Unlike the Aggregator, the rebuild path does not isolate per-file failures:
// the first failure stops the pass and the entries built so far are kept.
type IndexBuilder struct {
	source     driven.ChapterSource
	normaliser driven.ChapterNormaliser
}

// NewIndexBuilder creates an index builder.
func NewIndexBuilder(source driven.ChapterSource, normaliser driven.ChapterNormaliser) *IndexBuilder {
	return &IndexBuilder{
		source:     source,
		normaliser: normaliser,
	}
}

// Build returns the index. When construction aborts, the partial result is
// returned together with an error wrapping domain.ErrIndexAborted.
func (b *IndexBuilder) Build(ctx context.Context) (*IndexResult, error) {
	result := &IndexResult{Entries: []domain.IndexEntry{}}

	raw, ok, err := b.source.ReadIndex(ctx)
	if err != nil {
		return result, aborted(err)
	}
	if ok {
		result.FromFile = true
		entries, err := b.normaliser.NormaliseIndex(ctx, raw)
		result.Entries = append(result.Entries, entries...)
		if err != nil {
			return result, aborted(err)
		}
		logger.Info("index loaded from consolidated file: %d entries", len(result.Entries))
		return result, nil
	}

	logger.Debug("no consolidated index file, rebuilding from chapter files")
	files, err := b.source.List(ctx)
	if err != nil {
		return result, aborted(err)
	}
	for _, file := range files {
		if err := ctx.Err(); err != nil {
			return result, aborted(err)
		}
		raw, err := b.source.Read(ctx, file)
		if err != nil {
			return result, aborted(fmt.Errorf("%s: reading: %w", file.Name, err))
		}
		entry, err := b.normaliser.SummariseChapter(ctx, file, raw)
		if err != nil {
			return result, aborted(fmt.Errorf("%s: %w", file.Name, err))
		}
		result.Entries = append(result.Entries, *entry)
	}

	logger.Info("index rebuilt from %d chapter files", len(result.Entries))
	return result, nil
}

func aborted(err error) error {
	return fmt.Errorf("%w: %w", domain.ErrIndexAborted, err)
}
