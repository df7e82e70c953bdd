package driven

import (
	"context"

	"github.com/custodia-labs/chapter-bundler/internal/core/domain"
)

// ChapterSource discovers and reads chapter input files.
type ChapterSource interface {
	// List returns the chapter files sorted ascending by chapter number.
	// Files not matching "<prefix>_<number>.json" are ignored.
	// Returns domain.ErrInputDirMissing if the input cannot be listed.
	List(ctx context.Context) ([]domain.ChapterFile, error)

	// Read returns the full contents of one chapter file.
	Read(ctx context.Context, file domain.ChapterFile) ([]byte, error)

	// ReadIndex returns the consolidated index file contents.
	// The boolean is false when no such file exists.
	ReadIndex(ctx context.Context) ([]byte, bool, error)
}
