package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/custodia-labs/chapter-bundler/internal/core/domain"
	"github.com/custodia-labs/chapter-bundler/internal/core/ports/driven"
	"github.com/custodia-labs/chapter-bundler/internal/core/ports/driving"
	"github.com/custodia-labs/chapter-bundler/internal/logger"
)

// Ensure BundleService implements the interface.
var _ driving.BundleService = (*BundleService)(nil)

// BundleService runs the aggregation and index passes and writes their
// outputs to every configured store.
type BundleService struct {
	source     driven.ChapterSource
	aggregator *Aggregator
	indexer    *IndexBuilder
	stores     []driven.BundleStore
	now        func() time.Time
}

// NewBundleService creates a bundle service. Stores are written in order.
func NewBundleService(
	source driven.ChapterSource,
	normaliser driven.ChapterNormaliser,
	progress driven.ProgressReporter,
	stores ...driven.BundleStore,
) *BundleService {
	return &BundleService{
		source:     source,
		aggregator: NewAggregator(source, normaliser, progress),
		indexer:    NewIndexBuilder(source, normaliser),
		stores:     stores,
		now:        time.Now,
	}
}

// Run aggregates all chapters, builds the index and writes both outputs.
// Both passes finish before anything is written.
func (s *BundleService) Run(ctx context.Context) (*domain.RunReport, error) {
	report := s.newReport()

	logger.Section("Aggregating chapters")
	agg, err := s.aggregator.Aggregate(ctx)
	if err != nil {
		return nil, fmt.Errorf("aggregating chapters: %w", err)
	}
	report.FilesFound = agg.FilesFound
	report.Chapters = agg.Dataset.Len()
	report.FileErrors = agg.Errors

	logger.Section("Building index")
	index := s.buildIndex(ctx, report)

	logger.Section("Writing outputs")
	for _, store := range s.stores {
		locations, err := store.SaveDataset(ctx, agg.Dataset)
		if err != nil {
			return report, fmt.Errorf("writing dataset to %s: %w", store.Name(), err)
		}
		report.Outputs = append(report.Outputs, locations...)

		locations, err = store.SaveIndex(ctx, index.Entries)
		if err != nil {
			return report, fmt.Errorf("writing index to %s: %w", store.Name(), err)
		}
		report.Outputs = append(report.Outputs, locations...)
	}

	report.FinishedAt = s.now()
	if err := s.record(ctx, report); err != nil {
		return report, err
	}
	return report, nil
}

// RunIndex builds and writes only the index.
func (s *BundleService) RunIndex(ctx context.Context) (*domain.RunReport, error) {
	report := s.newReport()

	logger.Section("Building index")
	index := s.buildIndex(ctx, report)

	for _, store := range s.stores {
		locations, err := store.SaveIndex(ctx, index.Entries)
		if err != nil {
			return report, fmt.Errorf("writing index to %s: %w", store.Name(), err)
		}
		report.Outputs = append(report.Outputs, locations...)
	}

	report.FinishedAt = s.now()
	return report, nil
}

// List returns the chapter files a run would process, in order.
func (s *BundleService) List(ctx context.Context) ([]domain.ChapterFile, error) {
	return s.source.List(ctx)
}

func (s *BundleService) newReport() *domain.RunReport {
	return &domain.RunReport{
		RunID:     uuid.New().String(),
		StartedAt: s.now(),
	}
}

// buildIndex never fails the run; an aborted index is recorded on the report.
func (s *BundleService) buildIndex(ctx context.Context, report *domain.RunReport) *IndexResult {
	index, err := s.indexer.Build(ctx)
	if err != nil {
		logger.Warn("index incomplete after %d entries: %v", len(index.Entries), err)
		report.IndexErr = err
	}
	report.IndexEntries = len(index.Entries)
	report.IndexFromFile = index.FromFile
	return index
}

func (s *BundleService) record(ctx context.Context, report *domain.RunReport) error {
	for _, store := range s.stores {
		recorder, ok := store.(driven.RunRecorder)
		if !ok {
			continue
		}
		if err := recorder.RecordRun(ctx, report); err != nil {
			return fmt.Errorf("recording run in %s: %w", store.Name(), err)
		}
	}
	return nil
}
