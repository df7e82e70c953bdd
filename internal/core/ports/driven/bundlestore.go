package driven

import (
	"context"

	"github.com/custodia-labs/chapter-bundler/internal/core/domain"
)

// BundleStore persists the outputs of a run.
// Each call fully replaces what a previous run wrote.
type BundleStore interface {
	// Name identifies the store in logs and reports.
	Name() string

	// SaveDataset writes the aggregated dataset.
	// Returns the locations written.
	SaveDataset(ctx context.Context, dataset *domain.Dataset) ([]string, error)

	// SaveIndex writes the index collection.
	// Returns the locations written.
	SaveIndex(ctx context.Context, entries []domain.IndexEntry) ([]string, error)

	// Close releases any resources held by the store.
	Close() error
}

// RunRecorder is implemented by stores that keep a history of runs.
type RunRecorder interface {
	// RecordRun stores the summary of a finished run.
	RecordRun(ctx context.Context, report *domain.RunReport) error
}
