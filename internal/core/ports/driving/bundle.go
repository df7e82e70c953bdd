package driving

import (
	"context"

	"github.com/custodia-labs/chapter-bundler/internal/core/domain"
)

// BundleService runs the bundling passes.
type BundleService interface {
	// Run aggregates every chapter, builds the index and writes both outputs.
	// Per-file and index failures are recorded on the report; only fatal
	// errors (unlistable input, failed writes) are returned.
	Run(ctx context.Context) (*domain.RunReport, error)

	// RunIndex builds and writes only the index.
	RunIndex(ctx context.Context) (*domain.RunReport, error)

	// List returns the chapter files a run would process, in order.
	List(ctx context.Context) ([]domain.ChapterFile, error)
}
