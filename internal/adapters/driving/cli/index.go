package cli

import (
	"github.com/spf13/cobra"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build only the chapter index",
	Long: `Build the chapter index and write it, leaving the dataset untouched.

The consolidated index file in the input directory is used when present.
Otherwise the index is rebuilt from the chapter files, stopping at the first
file that cannot be read.`,
	RunE: runIndex,
}

func init() {
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	svc, closeStores, err := newBundleService(settings, nil, true)
	if err != nil {
		return err
	}
	defer logClose(closeStores)

	cmd.Printf("Creating %s index...\n", settings.Input.Prefix)
	report, err := svc.RunIndex(cmd.Context())
	if err != nil {
		return err
	}
	printIndexError(cmd, report)

	source := "chapter files"
	if report.IndexFromFile {
		source = settings.Input.IndexFile
	}
	cmd.Printf("Index of %d entries (from %s) saved to %s\n",
		report.IndexEntries, source, settings.IndexPath())
	return nil
}
