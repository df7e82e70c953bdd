package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	bundlefile "github.com/custodia-labs/chapter-bundler/internal/adapters/driven/bundle/file"
	"github.com/custodia-labs/chapter-bundler/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/chapter-bundler/internal/connectors/filesystem"
	"github.com/custodia-labs/chapter-bundler/internal/core/domain"
	"github.com/custodia-labs/chapter-bundler/internal/core/ports/driven"
	"github.com/custodia-labs/chapter-bundler/internal/core/ports/driving"
	"github.com/custodia-labs/chapter-bundler/internal/core/services"
	"github.com/custodia-labs/chapter-bundler/internal/logger"
	"github.com/custodia-labs/chapter-bundler/internal/normalisers/chapter"
)

// newBundleService builds the bundle service for settings. Output stores are
// opened only when withStores is set. The returned function closes every store.
// Tests may replace it.
var newBundleService = func(
	settings *domain.Settings,
	progress driven.ProgressReporter,
	withStores bool,
) (driving.BundleService, func() error, error) {
	var stores []driven.BundleStore
	if withStores {
		var err error
		if stores, err = openStores(settings); err != nil {
			return nil, nil, err
		}
	}

	source := filesystem.New(settings.Input.Dir, settings.Input.Prefix, settings.Input.IndexFile)
	logger.Debug("reading %s_<n>.json files from %s", settings.Input.Prefix, source.Dir())
	svc := services.NewBundleService(source, chapter.New(), progress, stores...)

	closeStores := func() error {
		var errs []error
		for _, s := range stores {
			if err := s.Close(); err != nil {
				errs = append(errs, fmt.Errorf("closing %s store: %w", s.Name(), err))
			}
		}
		return errors.Join(errs...)
	}
	return svc, closeStores, nil
}

// logClose calls closeFn and logs its error. The command has already
// reported its outcome by then.
func logClose(closeFn func() error) {
	if err := closeFn(); err != nil {
		logger.Error("%v", err)
	}
}

// openStores returns the JSON file store followed by the optional SQLite export.
func openStores(settings *domain.Settings) ([]driven.BundleStore, error) {
	stores := []driven.BundleStore{bundlefile.NewStore(settings.Output)}

	if settings.Output.SQLitePath != "" {
		db, err := sqlite.NewStore(settings.Output.SQLitePath)
		if err != nil {
			return nil, fmt.Errorf("opening sqlite export: %w", err)
		}
		stores = append(stores, db)
	}
	return stores, nil
}

// consoleProgress prints aggregation progress to the command output.
type consoleProgress struct {
	cmd    *cobra.Command
	prefix string
}

var _ driven.ProgressReporter = (*consoleProgress)(nil)

func newConsoleProgress(cmd *cobra.Command, prefix string) *consoleProgress {
	return &consoleProgress{cmd: cmd, prefix: prefix}
}

func (p *consoleProgress) Started(total int) {
	p.cmd.Printf("Found %d %s files to process\n", total, p.prefix)
}

func (p *consoleProgress) Processing(file domain.ChapterFile, position, total int) {
	p.cmd.Printf("Processing %s (%d/%d)...\n", file.Name, position, total)
}

func (p *consoleProgress) Failed(err domain.FileError) {
	p.cmd.Printf("Error processing %s: %v\n", err.File, err.Err)
}
