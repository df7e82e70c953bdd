package file

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/klauspost/compress/zstd"

	"github.com/custodia-labs/chapter-bundler/internal/core/domain"
	"github.com/custodia-labs/chapter-bundler/internal/core/ports/driven"
	"github.com/custodia-labs/chapter-bundler/internal/logger"
)

// Ensure Store implements the interface.
var _ driven.BundleStore = (*Store)(nil)

// Store writes the dataset and index as JSON files in one directory.
type Store struct {
	dir         string
	datasetFile string
	indexFile   string
	compress    bool
}

// NewStore creates a file store from output settings.
// The output directory is created on the first write.
func NewStore(output domain.OutputSettings) *Store {
	return &Store{
		dir:         output.Dir,
		datasetFile: output.DatasetFile,
		indexFile:   output.IndexFile,
		compress:    output.Compress,
	}
}

// Name returns "file".
func (s *Store) Name() string {
	return "file"
}

// SaveDataset writes the aggregated dataset as a JSON object.
func (s *Store) SaveDataset(ctx context.Context, dataset *domain.Dataset) ([]string, error) {
	return s.save(ctx, s.datasetFile, dataset)
}

// SaveIndex writes the index as a JSON array. A nil index is written as [].
func (s *Store) SaveIndex(ctx context.Context, entries []domain.IndexEntry) ([]string, error) {
	if entries == nil {
		entries = []domain.IndexEntry{}
	}
	return s.save(ctx, s.indexFile, entries)
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

func (s *Store) save(ctx context.Context, name string, payload any) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	data, err := encodeJSON(payload)
	if err != nil {
		return nil, fmt.Errorf("encoding %s: %w", name, err)
	}
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(s.dir, name)
	if err := writeAtomic(path, func(w io.Writer) error {
		_, err := w.Write(data)
		return err
	}); err != nil {
		return nil, err
	}
	logger.Debug("wrote %s (%d bytes)", path, len(data))
	locations := []string{path}

	if s.compress {
		zstPath := path + domain.CompressedFileExtension
		if err := writeAtomic(zstPath, func(w io.Writer) error {
			return writeZst(w, data)
		}); err != nil {
			return locations, err
		}
		logger.Debug("wrote %s", zstPath)
		locations = append(locations, zstPath)
	}
	return locations, nil
}

// encodeJSON encodes payload compactly, leaving non-ASCII text and HTML
// characters unescaped. No trailing newline is written.
func encodeJSON(payload any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(payload); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

func writeZst(w io.Writer, data []byte) error {
	zw, err := zstd.NewWriter(w, zstd.WithEncoderLevel(zstd.SpeedDefault))
	if err != nil {
		return err
	}
	if _, err := zw.Write(data); err != nil {
		zw.Close()
		return err
	}
	return zw.Close()
}

// writeAtomic writes to a temporary file in the target directory and renames
// it over path once write and close have succeeded.
func writeAtomic(path string, write func(io.Writer) error) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("creating temp file for %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			os.Remove(tmp.Name())
		}
	}()

	if err = write(tmp); err != nil {
		tmp.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err = os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err = os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing %s: %w", path, err)
	}
	return nil
}
