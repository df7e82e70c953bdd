package cli

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/chapter-bundler/internal/adapters/driven/storage/sqlite"
	"github.com/custodia-labs/chapter-bundler/internal/core/domain"
)

var runsCmd = &cobra.Command{
	Use:   "runs",
	Short: "Inspect runs recorded in the SQLite export",
	Long: `Inspect bundle runs recorded in the SQLite export.

Runs are only recorded when output.sqlite is set. Each run's ID is printed
at the end of a --verbose run.`,
}

var runsShowCmd = &cobra.Command{
	Use:   "show <run-id>",
	Short: "Show one recorded run and its skipped files",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunsShow,
}

func init() {
	runsCmd.AddCommand(runsShowCmd)
	rootCmd.AddCommand(runsCmd)
}

func runRunsShow(cmd *cobra.Command, args []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	path := settings.Output.SQLitePath
	if path == "" {
		return fmt.Errorf("%w: output.sqlite is not set, no runs are recorded", domain.ErrInvalidInput)
	}
	// Opening would create an empty database
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("no runs recorded: %s does not exist", path)
	}

	store, err := sqlite.NewStore(path)
	if err != nil {
		return fmt.Errorf("opening sqlite export: %w", err)
	}
	defer logClose(store.Close)

	run, err := store.GetRun(cmd.Context(), args[0])
	if errors.Is(err, domain.ErrNotFound) {
		return fmt.Errorf("run %s: %w", args[0], err)
	}
	if err != nil {
		return err
	}

	printRun(cmd, run)
	return nil
}

func printRun(cmd *cobra.Command, run *sqlite.Run) {
	status := "finished"
	if run.IndexError != "" || len(run.FileErrors) > 0 {
		status = "finished with errors"
	}
	cmd.Printf("Run %s %s\n", run.ID, status)
	cmd.Printf("  Started:       %s\n", run.StartedAt.Format(time.RFC3339))
	cmd.Printf("  Finished:      %s\n", run.FinishedAt.Format(time.RFC3339))
	cmd.Printf("  Duration:      %s\n", run.FinishedAt.Sub(run.StartedAt))
	cmd.Printf("  Files found:   %d\n", run.FilesFound)
	cmd.Printf("  Chapters:      %d\n", run.Chapters)
	cmd.Printf("  Index entries: %d", run.IndexEntries)
	if run.IndexFromFile {
		cmd.Print(" (from consolidated index)")
	}
	cmd.Println()
	if run.IndexError != "" {
		cmd.Printf("  Index error:   %s\n", run.IndexError)
	}
	cmd.Printf("  Skipped files: %d\n", len(run.FileErrors))
	for _, fe := range run.FileErrors {
		cmd.Printf("    %s: %v\n", fe.File, fe.Err)
	}
}
