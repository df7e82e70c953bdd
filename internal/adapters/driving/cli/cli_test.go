package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chapter-bundler/internal/logger"
)

// execute runs the root command with args and returns everything it printed.
func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()

	buf := new(bytes.Buffer)
	rootCmd.SetOut(buf)
	rootCmd.SetErr(buf)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		configPath = ""
		verbose = false
		initForce = false
		configStore = nil
		settingsService = nil
		logger.SetVerbose(false)
		logger.SetOutput(os.Stderr)
	})

	err := rootCmd.Execute()
	return buf.String(), err
}

// workspace creates a temp working directory with an empty ./assets/data
// and changes into it.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "assets", "data"), 0755))
	t.Chdir(dir)
	return dir
}

func writeInput(t *testing.T, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join("assets", "data", name), []byte(content), 0644))
}

func readOutput(t *testing.T, name string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join("assets", "hive_data", name))
	require.NoError(t, err)
	return string(data)
}

const fatiha = `{
	"surahNo": 1,
	"surahName": "Al-Fatiha",
	"surahNameArabic": "الفاتحة",
	"surahNameTranslation": "The Opening",
	"revelationPlace": "Mecca",
	"totalAyah": 2,
	"ayahs": [
		{"number": 1, "arabic": "بِسْمِ", "english": "In the name", "bengali": "শুরু"},
		{"number": 2, "arabic": "الْحَمْدُ", "english": "Praise"}
	]
}`

const baqarah = `{
	"surahNo": 2,
	"surahName": "Al-Baqarah",
	"totalAyah": 2,
	"arabic1": ["a", "b"],
	"english": ["x"],
	"bengali": []
}`
