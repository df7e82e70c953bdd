package services

import (
	"context"
	"errors"
	"fmt"

	"github.com/custodia-labs/chapter-bundler/internal/core/domain"
	"github.com/custodia-labs/chapter-bundler/internal/core/ports/driven"
)

// mockSource is an in-memory ChapterSource.
type mockSource struct {
	files    []domain.ChapterFile
	data     map[string][]byte
	readErrs map[string]error
	listErr  error

	index    []byte
	hasIndex bool
	indexErr error
}

func newMockSource() *mockSource {
	return &mockSource{
		data:     make(map[string][]byte),
		readErrs: make(map[string]error),
	}
}

// add registers surah_<n>.json with the given content. Files must be added in order.
func (m *mockSource) add(number int, content string) *mockSource {
	name := fmt.Sprintf("surah_%d.json", number)
	m.files = append(m.files, domain.ChapterFile{Name: name, Path: "/data/" + name, Number: number})
	m.data[name] = []byte(content)
	return m
}

func (m *mockSource) withIndex(content string) *mockSource {
	m.index = []byte(content)
	m.hasIndex = true
	return m
}

func (m *mockSource) List(ctx context.Context) ([]domain.ChapterFile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if m.listErr != nil {
		return nil, m.listErr
	}
	return append([]domain.ChapterFile(nil), m.files...), nil
}

func (m *mockSource) Read(_ context.Context, file domain.ChapterFile) ([]byte, error) {
	if err, ok := m.readErrs[file.Name]; ok {
		return nil, err
	}
	raw, ok := m.data[file.Name]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return raw, nil
}

func (m *mockSource) ReadIndex(_ context.Context) ([]byte, bool, error) {
	if m.indexErr != nil {
		return nil, false, m.indexErr
	}
	return m.index, m.hasIndex, nil
}

// mockProgress records progress events as strings.
type mockProgress struct {
	events []string
}

func (p *mockProgress) Started(total int) {
	p.events = append(p.events, fmt.Sprintf("started %d", total))
}

func (p *mockProgress) Processing(file domain.ChapterFile, position, total int) {
	p.events = append(p.events, fmt.Sprintf("processing %s %d/%d", file.Name, position, total))
}

func (p *mockProgress) Failed(err domain.FileError) {
	p.events = append(p.events, "failed "+err.File)
}

// failingStore is a BundleStore whose saves fail.
type failingStore struct {
	datasetErr error
	indexErr   error
}

var _ driven.BundleStore = (*failingStore)(nil)

func (f *failingStore) Name() string { return "failing" }

func (f *failingStore) SaveDataset(context.Context, *domain.Dataset) ([]string, error) {
	return nil, f.datasetErr
}

func (f *failingStore) SaveIndex(context.Context, []domain.IndexEntry) ([]string, error) {
	return nil, f.indexErr
}

func (f *failingStore) Close() error { return nil }

var errDiskFull = errors.New("disk full")

func chapterJSON(number int, name string) string {
	return fmt.Sprintf(`{
		"surahNo": %d,
		"surahName": %q,
		"surahNameArabic": "arabic-%d",
		"revelationPlace": "Mecca",
		"totalAyah": 2,
		"arabic1": ["a1", "a2"],
		"english": ["e1", "e2"],
		"bengali": ["b1", "b2"]
	}`, number, name, number)
}
