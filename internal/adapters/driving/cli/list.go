package cli

import (
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List chapter files in processing order",
	RunE:  runList,
}

func init() {
	rootCmd.AddCommand(listCmd)
}

func runList(cmd *cobra.Command, _ []string) error {
	settings, err := loadSettings()
	if err != nil {
		return err
	}

	svc, closeStores, err := newBundleService(settings, nil, false)
	if err != nil {
		return err
	}
	defer logClose(closeStores)

	files, err := svc.List(cmd.Context())
	if err != nil {
		return err
	}

	if len(files) == 0 {
		cmd.Printf("No %s files found in %s\n", settings.Input.Prefix, settings.Input.Dir)
		return nil
	}

	cmd.Printf("Found %d %s files in %s\n\n", len(files), settings.Input.Prefix, settings.Input.Dir)
	for _, f := range files {
		cmd.Printf("  %4d  %s\n", f.Number, f.Name)
	}
	return nil
}
