package domain

import (
	"fmt"
	"path/filepath"
	"strings"
)

// Default locations and names used when no configuration overrides them.
const (
	DefaultInputDir         = "./assets/data"
	DefaultChapterPrefix    = "surah"
	DefaultSourceIndexFile  = "surahs.json"
	DefaultOutputDir        = "./assets/hive_data"
	DefaultDatasetFile      = "quran_data.json"
	DefaultOutputIndexFile  = "surahs_index.json"
	CompressedFileExtension = ".zst"
)

// Settings holds the effective configuration of a run.
type Settings struct {
	Input  InputSettings
	Output OutputSettings
}

// InputSettings describes where chapter files are read from.
type InputSettings struct {
	// Dir is the directory holding the per-chapter files.
	Dir string

	// Prefix is the file name prefix before "_<number>.json".
	Prefix string

	// IndexFile is the name of the optional consolidated index file inside Dir.
	IndexFile string
}

// OutputSettings describes where bundle outputs are written.
type OutputSettings struct {
	// Dir is created, with parents, if absent.
	Dir string

	DatasetFile string
	IndexFile   string

	// Compress also writes zstd-compressed copies of both outputs.
	Compress bool

	// SQLitePath enables the SQLite export when non-empty.
	SQLitePath string
}

// DefaultSettings returns the settings used with no configuration file.
func DefaultSettings() Settings {
	return Settings{
		Input: InputSettings{
			Dir:       DefaultInputDir,
			Prefix:    DefaultChapterPrefix,
			IndexFile: DefaultSourceIndexFile,
		},
		Output: OutputSettings{
			Dir:         DefaultOutputDir,
			DatasetFile: DefaultDatasetFile,
			IndexFile:   DefaultOutputIndexFile,
		},
	}
}

// DatasetPath returns the full path of the aggregated dataset output.
func (s Settings) DatasetPath() string {
	return filepath.Join(s.Output.Dir, s.Output.DatasetFile)
}

// IndexPath returns the full path of the index output.
func (s Settings) IndexPath() string {
	return filepath.Join(s.Output.Dir, s.Output.IndexFile)
}

// SourceIndexPath returns the full path of the consolidated index input.
func (s Settings) SourceIndexPath() string {
	return filepath.Join(s.Input.Dir, s.Input.IndexFile)
}

// Validate checks that every required setting is present.
func (s Settings) Validate() error {
	required := map[string]string{
		"input.dir":           s.Input.Dir,
		"input.prefix":        s.Input.Prefix,
		"input.index_file":    s.Input.IndexFile,
		"output.dir":          s.Output.Dir,
		"output.dataset_file": s.Output.DatasetFile,
		"output.index_file":   s.Output.IndexFile,
	}
	for _, key := range []string{
		"input.dir", "input.prefix", "input.index_file",
		"output.dir", "output.dataset_file", "output.index_file",
	} {
		if strings.TrimSpace(required[key]) == "" {
			return fmt.Errorf("%w: %s is empty", ErrInvalidInput, key)
		}
	}
	if strings.ContainsAny(s.Input.Prefix, `/\`) {
		return fmt.Errorf("%w: input.prefix must not contain path separators", ErrInvalidInput)
	}
	if s.Output.DatasetFile == s.Output.IndexFile {
		return fmt.Errorf("%w: output.dataset_file and output.index_file must differ", ErrInvalidInput)
	}
	return nil
}
