package cli

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	configfile "github.com/custodia-labs/chapter-bundler/internal/adapters/driven/config/file"
	"github.com/custodia-labs/chapter-bundler/internal/core/domain"
	"github.com/custodia-labs/chapter-bundler/internal/core/services"
)

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage bundler settings",
	Long: `View and configure input and output locations.

Settings are read from ./bundler.toml, or the file given with --config.
Keys not set in the file fall back to the built-in defaults.`,
	RunE: runSettingsShow,
}

var settingsShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show effective settings",
	RunE:  runSettingsShow,
}

var settingsInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write the effective settings to the config file",
	Annotations: map[string]string{
		configOptional: "true",
	},
	RunE: runSettingsInit,
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Set one setting in the config file",
	Long: `Set one setting in the config file, creating the file if needed.

Keys:
  input.dir            directory holding the chapter files
  input.prefix         chapter file name prefix (files are <prefix>_<n>.json)
  input.index_file     consolidated index file inside input.dir
  output.dir           directory the outputs are written to
  output.dataset_file  aggregated dataset file name
  output.index_file    index file name
  output.compress      also write zstd-compressed copies (true/false)
  output.sqlite        SQLite export path, empty to disable`,
	Args: cobra.ExactArgs(2),
	Annotations: map[string]string{
		configOptional: "true",
	},
	RunE: runSettingsSet,
}

var initForce bool

// settingKeys lists the keys accepted by settings set.
var settingKeys = map[string]bool{
	"input.dir":           false,
	"input.prefix":        false,
	"input.index_file":    false,
	"output.dir":          false,
	"output.dataset_file": false,
	"output.index_file":   false,
	"output.compress":     true,
	"output.sqlite":       false,
}

func init() {
	settingsInitCmd.Flags().BoolVarP(&initForce, "force", "f", false, "overwrite an existing config file")
	settingsCmd.AddCommand(settingsShowCmd)
	settingsCmd.AddCommand(settingsInitCmd)
	settingsCmd.AddCommand(settingsSetCmd)
	rootCmd.AddCommand(settingsCmd)
}

func runSettingsShow(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	cmd.Println("Current Settings")
	cmd.Println("================")
	cmd.Println()

	source := "(none, using defaults)"
	if configStore != nil && configStore.Path() != ":memory:" {
		source = configStore.Path()
	}
	cmd.Printf("Config file: %s\n", source)
	cmd.Println()

	cmd.Println("[Input]")
	cmd.Printf("  Directory:  %s\n", settings.Input.Dir)
	cmd.Printf("  Prefix:     %s\n", settings.Input.Prefix)
	cmd.Printf("  Index file: %s\n", settings.SourceIndexPath())
	cmd.Println()

	cmd.Println("[Output]")
	cmd.Printf("  Directory:  %s\n", settings.Output.Dir)
	cmd.Printf("  Dataset:    %s\n", settings.DatasetPath())
	cmd.Printf("  Index:      %s\n", settings.IndexPath())
	cmd.Printf("  Compress:   %s\n", yesNo(settings.Output.Compress))
	sqlitePath := settings.Output.SQLitePath
	if sqlitePath == "" {
		sqlitePath = "(disabled)"
	}
	cmd.Printf("  SQLite:     %s\n", sqlitePath)
	return nil
}

func runSettingsInit(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	path := targetConfigPath()
	if _, err := os.Stat(path); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	store, err := configfile.NewConfigStore(path)
	if err != nil {
		return err
	}
	if err := services.NewSettingsService(store).Save(settings); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Settings written to %s\n", path)
	return nil
}

func runSettingsSet(cmd *cobra.Command, args []string) error {
	key, raw := args[0], args[1]

	isBool, ok := settingKeys[key]
	if !ok {
		return fmt.Errorf("%w: unknown setting %q", domain.ErrInvalidInput, key)
	}

	var value any = raw
	if isBool {
		b, err := strconv.ParseBool(raw)
		if err != nil {
			return fmt.Errorf("%w: %s must be true or false", domain.ErrInvalidInput, key)
		}
		value = b
	}

	path := targetConfigPath()
	store, err := configfile.NewConfigStore(path)
	if err != nil {
		return err
	}
	if err := store.Set(key, value); err != nil {
		return err
	}

	// Reject values that would leave the file unusable
	if _, err := services.NewSettingsService(store).Get(); err != nil {
		return err
	}
	if err := store.Save(); err != nil {
		return fmt.Errorf("failed to save settings: %w", err)
	}

	cmd.Printf("Set %s = %v in %s\n", key, value, path)
	return nil
}

// targetConfigPath is the file settings commands write to.
func targetConfigPath() string {
	if configPath != "" {
		return configPath
	}
	return configfile.DefaultConfigFile
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
