// Package filesystem reads chapter files from a local directory.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"

	"github.com/custodia-labs/chapter-bundler/internal/core/domain"
	"github.com/custodia-labs/chapter-bundler/internal/core/ports/driven"
	"github.com/custodia-labs/chapter-bundler/internal/logger"
)

// Ensure Source implements the interface.
var _ driven.ChapterSource = (*Source)(nil)

// Source discovers "<prefix>_<number>.json" files in a directory.
type Source struct {
	dir       string
	indexFile string
	pattern   *regexp.Regexp
}

// New creates a filesystem source rooted at dir.
// indexFile is the name of the optional consolidated index inside dir.
func New(dir, prefix, indexFile string) *Source {
	return &Source{
		dir:       dir,
		indexFile: indexFile,
		pattern:   regexp.MustCompile(`^` + regexp.QuoteMeta(prefix) + `_(\d+)\.json$`),
	}
}

// Dir returns the directory the source reads from.
func (s *Source) Dir() string {
	return s.dir
}

// List returns the matching chapter files sorted by chapter number.
// Ties (e.g. "surah_1.json" and "surah_01.json") are broken by name.
func (s *Source) List(ctx context.Context) ([]domain.ChapterFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, fmt.Errorf("listing %s: %w: %w", s.dir, domain.ErrInputDirMissing, err)
	}

	files := make([]domain.ChapterFile, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		number, ok := s.parseNumber(entry.Name())
		if !ok {
			continue
		}
		files = append(files, domain.ChapterFile{
			Name:   entry.Name(),
			Path:   filepath.Join(s.dir, entry.Name()),
			Number: number,
		})
	}

	sort.SliceStable(files, func(i, j int) bool {
		if files[i].Number != files[j].Number {
			return files[i].Number < files[j].Number
		}
		return files[i].Name < files[j].Name
	})

	logger.Debug("found %d chapter files in %s", len(files), s.dir)
	return files, nil
}

// parseNumber extracts the chapter number from a file name.
func (s *Source) parseNumber(name string) (int, bool) {
	m := s.pattern.FindStringSubmatch(name)
	if m == nil {
		return 0, false
	}
	n, err := strconv.Atoi(m[1])
	if err != nil {
		logger.Warn("ignoring %s: chapter number out of range", name)
		return 0, false
	}
	return n, true
}

// Read returns the contents of a chapter file.
// The file is closed before Read returns.
func (s *Source) Read(ctx context.Context, file domain.ChapterFile) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	f, err := os.Open(file.Path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	return io.ReadAll(f)
}

// ReadIndex returns the consolidated index file, if present.
func (s *Source) ReadIndex(ctx context.Context) ([]byte, bool, error) {
	if err := ctx.Err(); err != nil {
		return nil, false, err
	}

	path := filepath.Join(s.dir, s.indexFile)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, false, nil
		}
		return nil, false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, true, err
	}
	return data, true, nil
}
