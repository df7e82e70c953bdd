package services

import (
	"context"
	"fmt"

	"github.com/custodia-labs/chapter-bundler/internal/core/domain"
	"github.com/custodia-labs/chapter-bundler/internal/core/ports/driven"
	"github.com/custodia-labs/chapter-bundler/internal/logger"
)

// AggregateResult is the outcome of an aggregation pass.
type AggregateResult struct {
	// Dataset holds every chapter that was normalised successfully.
	Dataset *domain.Dataset

	// FilesFound is the number of chapter files discovered.
	FilesFound int

	// Errors lists the files that were skipped, in processing order.
	Errors []domain.FileError
}

// Aggregator builds the aggregated dataset from every chapter file.
// A failing file is recorded and skipped; it never stops the pass.
type Aggregator struct {
	source     driven.ChapterSource
	normaliser driven.ChapterNormaliser
	progress   driven.ProgressReporter
}

// NewAggregator creates an aggregator. progress may be nil.
func NewAggregator(
	source driven.ChapterSource,
	normaliser driven.ChapterNormaliser,
	progress driven.ProgressReporter,
) *Aggregator {
	return &Aggregator{
		source:     source,
		normaliser: normaliser,
		progress:   progress,
	}
}

// Aggregate reads, normalises and collects every chapter file in number order.
// Chapters are keyed by the number in their file name, whatever the file says.
// Only a failure to list the input is returned as an error.
func (a *Aggregator) Aggregate(ctx context.Context) (*AggregateResult, error) {
	files, err := a.source.List(ctx)
	if err != nil {
		return nil, err
	}

	result := &AggregateResult{
		Dataset:    domain.NewDataset(),
		FilesFound: len(files),
	}
	if a.progress != nil {
		a.progress.Started(len(files))
	}

	for i, file := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if a.progress != nil {
			a.progress.Processing(file, i+1, len(files))
		}

		chapter, err := a.normalise(ctx, file)
		if err != nil {
			fe := domain.FileError{File: file.Name, Err: err}
			result.Errors = append(result.Errors, fe)
			logger.Debug("skipping %s: %v", file.Name, err)
			if a.progress != nil {
				a.progress.Failed(fe)
			}
			continue
		}
		result.Dataset.Put(file.Number, *chapter)
	}

	logger.Info("aggregated %d of %d chapter files", result.Dataset.Len(), len(files))
	return result, nil
}

func (a *Aggregator) normalise(ctx context.Context, file domain.ChapterFile) (*domain.Chapter, error) {
	raw, err := a.source.Read(ctx, file)
	if err != nil {
		return nil, fmt.Errorf("reading: %w", err)
	}
	return a.normaliser.NormaliseChapter(ctx, file, raw)
}
