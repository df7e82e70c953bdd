package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/chapter-bundler/internal/adapters/driven/config/file"
	"github.com/custodia-labs/chapter-bundler/internal/adapters/driven/storage/memory"
	"github.com/custodia-labs/chapter-bundler/internal/core/domain"
	"github.com/custodia-labs/chapter-bundler/internal/core/ports/driven"
	"github.com/custodia-labs/chapter-bundler/internal/core/ports/driving"
	"github.com/custodia-labs/chapter-bundler/internal/core/services"
	"github.com/custodia-labs/chapter-bundler/internal/logger"
)

// version is set at build time with -ldflags "-X ...cli.version=v1.2.3".
var version = "dev"

// configOptional marks commands that may run before the --config file exists.
const configOptional = "config-optional"

var errNoSettings = errors.New("settings service not configured")

var (
	configPath string
	verbose    bool

	// configStore and settingsService are resolved before every command.
	configStore     driven.ConfigStore
	settingsService driving.SettingsService
)

var rootCmd = &cobra.Command{
	Use:   "chapter-bundler",
	Short: "Bundle per-chapter JSON files into a dataset and an index",
	Long: `chapter-bundler reads a directory of per-chapter JSON files, normalises
every chapter into a consistent record and writes two outputs:

  quran_data.json    all chapters with their verses, keyed by chapter number
  surahs_index.json  verse-free chapter metadata in chapter order

A chapter file that cannot be read or parsed is reported and skipped.
Settings come from ./bundler.toml when present, or the file given with --config.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	RunE:              runBundle,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&configPath, "config", "",
		"path to a TOML config file (default ./"+configfile.DefaultConfigFile+" if it exists)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

// Execute runs the root command. It is called by main.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return rootCmd.ExecuteContext(ctx)
}

// setup configures logging and loads settings for the command being run.
func setup(cmd *cobra.Command, _ []string) error {
	logger.SetOutput(cmd.ErrOrStderr())
	logger.SetVerbose(verbose)

	if cmd == versionCmd {
		return nil
	}

	store, err := openConfigStore(configPath, cmd.Annotations[configOptional] == "true")
	if err != nil {
		return err
	}
	configStore = store
	settingsService = services.NewSettingsService(store)
	logger.Debug("config: %s", store.Path())
	return nil
}

// openConfigStore opens the TOML config at path. With no path, the default
// file is used when it exists and defaults apply otherwise. An explicit path
// must exist unless optional is set.
func openConfigStore(path string, optional bool) (driven.ConfigStore, error) {
	explicit := path != ""
	if !explicit {
		path = configfile.DefaultConfigFile
	}

	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		if explicit && !optional {
			return nil, fmt.Errorf("config file: %w", err)
		}
		return memory.NewConfigStore(nil), nil
	}
	return configfile.NewConfigStore(path)
}

// loadSettings returns the effective settings.
func loadSettings() (*domain.Settings, error) {
	if settingsService == nil {
		return nil, errNoSettings
	}
	settings, err := settingsService.Get()
	if err != nil {
		return nil, fmt.Errorf("invalid settings: %w", err)
	}
	return settings, nil
}

func runBundle(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	svc, closeStores, err := newBundleService(settings, newConsoleProgress(cmd, settings.Input.Prefix), true)
	if err != nil {
		return err
	}
	defer logClose(closeStores)

	cmd.Println("Starting JSON processing...")
	report, err := svc.Run(cmd.Context())
	if err != nil {
		return err
	}

	cmd.Printf("Creating %s index...\n", settings.Input.Prefix)
	printIndexError(cmd, report)

	cmd.Printf("\nProcessing complete! Files saved to %s\n", settings.Output.Dir)
	cmd.Printf("- %s: Contains all %s details\n", settings.Output.DatasetFile, settings.Input.Prefix)
	cmd.Printf("- %s: Contains index of all %ss\n", settings.Output.IndexFile, settings.Input.Prefix)
	printRunDetails(cmd, report)
	return nil
}

func printIndexError(cmd *cobra.Command, report *domain.RunReport) {
	if report.IndexErr != nil {
		cmd.Printf("Error creating index: %v\n", report.IndexErr)
	}
}

// printRunDetails prints the run summary in verbose mode.
func printRunDetails(cmd *cobra.Command, report *domain.RunReport) {
	if !verbose {
		return
	}
	status := "finished"
	if report.HasErrors() {
		status = "finished with errors"
	}
	cmd.Println()
	cmd.Printf("Run %s %s in %s\n", report.RunID, status, report.Duration())
	cmd.Printf("  Files found:   %d\n", report.FilesFound)
	cmd.Printf("  Chapters:      %d\n", report.Chapters)
	cmd.Printf("  Index entries: %d", report.IndexEntries)
	if report.IndexFromFile {
		cmd.Print(" (from consolidated index)")
	}
	cmd.Println()
	cmd.Printf("  Skipped files: %d\n", len(report.FileErrors))
	for _, out := range report.Outputs {
		cmd.Printf("  Wrote %s\n", out)
	}
}
