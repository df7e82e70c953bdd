package memory

import (
	"context"
	"sync"

	"github.com/custodia-labs/chapter-bundler/internal/core/domain"
	"github.com/custodia-labs/chapter-bundler/internal/core/ports/driven"
)

// Ensure BundleStore implements the interfaces.
var (
	_ driven.BundleStore = (*BundleStore)(nil)
	_ driven.RunRecorder = (*BundleStore)(nil)
)

// Location names returned by the memory store.
const (
	DatasetLocation = "memory:dataset"
	IndexLocation   = "memory:index"
)

// BundleStore is an in-memory implementation of driven.BundleStore.
// Each save replaces the previous output, as the file store does.
type BundleStore struct {
	mu      sync.RWMutex
	dataset *domain.Dataset
	index   []domain.IndexEntry
	runs    []domain.RunReport
	closed  bool
}

// NewBundleStore creates a new in-memory bundle store.
func NewBundleStore() *BundleStore {
	return &BundleStore{}
}

// Name returns "memory".
func (s *BundleStore) Name() string {
	return "memory"
}

// SaveDataset stores the dataset.
func (s *BundleStore) SaveDataset(_ context.Context, dataset *domain.Dataset) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, domain.ErrInvalidInput
	}
	s.dataset = dataset
	return []string{DatasetLocation}, nil
}

// SaveIndex stores a copy of the index.
func (s *BundleStore) SaveIndex(_ context.Context, entries []domain.IndexEntry) ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return nil, domain.ErrInvalidInput
	}
	s.index = append([]domain.IndexEntry{}, entries...)
	return []string{IndexLocation}, nil
}

// RecordRun appends a copy of the report.
func (s *BundleStore) RecordRun(_ context.Context, report *domain.RunReport) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.runs = append(s.runs, *report)
	return nil
}

// Dataset returns the last saved dataset, or nil.
func (s *BundleStore) Dataset() *domain.Dataset {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dataset
}

// Index returns the last saved index, or nil if none was saved.
func (s *BundleStore) Index() []domain.IndexEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.index
}

// Runs returns every recorded run in order.
func (s *BundleStore) Runs() []domain.RunReport {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]domain.RunReport(nil), s.runs...)
}

// Close marks the store closed. Later saves fail.
func (s *BundleStore) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.closed = true
	return nil
}
