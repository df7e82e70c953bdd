package file

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zstd"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/chapter-bundler/internal/core/domain"
)

func newTestStore(t *testing.T, compress bool) (*Store, string) {
	t.Helper()
	dir := filepath.Join(t.TempDir(), "assets", "hive_data")
	output := domain.DefaultSettings().Output
	output.Dir = dir
	output.Compress = compress
	return NewStore(output), dir
}

func sampleDataset() *domain.Dataset {
	dataset := domain.NewDataset()
	dataset.Put(10, domain.Chapter{Number: 10, Name: "Yunus", Ayahs: []domain.Verse{}})
	dataset.Put(2, domain.Chapter{
		Number:     2,
		Name:       "Al-Baqarah",
		NameArabic: "البقرة",
		Ayahs: []domain.Verse{
			{Number: 1, Arabic: "الم", English: "Alif, Lam, Meem <1> & more", Bengali: "আলিফ"},
		},
	})
	return dataset
}

func TestStore_Name(t *testing.T) {
	store, _ := newTestStore(t, false)
	assert.Equal(t, "file", store.Name())
}

func TestStore_SaveDataset(t *testing.T) {
	store, dir := newTestStore(t, false)

	locations, err := store.SaveDataset(context.Background(), sampleDataset())

	require.NoError(t, err)
	path := filepath.Join(dir, domain.DefaultDatasetFile)
	assert.Equal(t, []string{path}, locations)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	content := string(data)

	assert.Regexp(t, `^\{"2":\{"surahNo":2,`, content)
	assert.Contains(t, content, `"surahNameArabic":"البقرة"`)
	assert.Contains(t, content, `Alif, Lam, Meem <1> & more`)
	assert.Contains(t, content, `"bengali":"আলিফ"`)
	assert.NotContains(t, content, `\u`)
	assert.NotEqual(t, byte('\n'), data[len(data)-1])

	var decoded map[string]domain.Chapter
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Len(t, decoded, 2)
	assert.Equal(t, "Yunus", decoded["10"].Name)
}

func TestStore_SaveIndex(t *testing.T) {
	store, dir := newTestStore(t, false)
	entries := []domain.IndexEntry{
		{Number: 1, Name: "Al-Fatiha", TotalAyah: 7},
		{Number: 2, Name: "Al-Baqarah", Members: []domain.Member{
			{Key: "surahName", Value: json.RawMessage(`"Al-Baqarah"`)},
			{Key: "juz", Value: json.RawMessage(`[1, 2]`)},
		}},
	}

	locations, err := store.SaveIndex(context.Background(), entries)

	require.NoError(t, err)
	path := filepath.Join(dir, domain.DefaultOutputIndexFile)
	assert.Equal(t, []string{path}, locations)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t,
		`[{"number":1,"name":"Al-Fatiha","nameArabic":"","nameArabicLong":"","nameTranslation":"","totalAyah":7,"revelationPlace":""},`+
			`{"surahName":"Al-Baqarah","juz":[1,2],"number":2}]`,
		string(data))
}

func TestStore_EmptyOutputs(t *testing.T) {
	store, dir := newTestStore(t, false)
	ctx := context.Background()

	_, err := store.SaveDataset(ctx, domain.NewDataset())
	require.NoError(t, err)
	_, err = store.SaveIndex(ctx, nil)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(dir, domain.DefaultDatasetFile))
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))

	data, err = os.ReadFile(filepath.Join(dir, domain.DefaultOutputIndexFile))
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestStore_RerunIsByteIdentical(t *testing.T) {
	store, dir := newTestStore(t, false)
	path := filepath.Join(dir, domain.DefaultDatasetFile)

	_, err := store.SaveDataset(context.Background(), sampleDataset())
	require.NoError(t, err)
	first, err := os.ReadFile(path)
	require.NoError(t, err)

	_, err = store.SaveDataset(context.Background(), sampleDataset())
	require.NoError(t, err)
	second, err := os.ReadFile(path)
	require.NoError(t, err)

	assert.Equal(t, first, second)
}

func TestStore_OverwritesPreviousOutput(t *testing.T) {
	store, dir := newTestStore(t, false)
	require.NoError(t, os.MkdirAll(dir, 0755))
	path := filepath.Join(dir, domain.DefaultOutputIndexFile)
	require.NoError(t, os.WriteFile(path, []byte("stale content that is longer than the new one"), 0644))

	_, err := store.SaveIndex(context.Background(), []domain.IndexEntry{})
	require.NoError(t, err)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "[]", string(data))
}

func TestStore_LeavesNoTempFiles(t *testing.T) {
	store, dir := newTestStore(t, true)
	ctx := context.Background()

	_, err := store.SaveDataset(ctx, sampleDataset())
	require.NoError(t, err)
	_, err = store.SaveIndex(ctx, nil)
	require.NoError(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	var names []string
	for _, e := range entries {
		names = append(names, e.Name())
	}
	assert.ElementsMatch(t, []string{
		"quran_data.json", "quran_data.json.zst",
		"surahs_index.json", "surahs_index.json.zst",
	}, names)
}

func TestStore_Compress(t *testing.T) {
	store, dir := newTestStore(t, true)

	locations, err := store.SaveDataset(context.Background(), sampleDataset())

	require.NoError(t, err)
	path := filepath.Join(dir, domain.DefaultDatasetFile)
	assert.Equal(t, []string{path, path + ".zst"}, locations)

	plain, err := os.ReadFile(path)
	require.NoError(t, err)
	compressed, err := os.ReadFile(path + ".zst")
	require.NoError(t, err)

	decoder, err := zstd.NewReader(nil)
	require.NoError(t, err)
	defer decoder.Close()
	decompressed, err := decoder.DecodeAll(compressed, nil)
	require.NoError(t, err)

	assert.Equal(t, plain, decompressed)
}

func TestStore_OutputDirIsAFile(t *testing.T) {
	parent := t.TempDir()
	blocker := filepath.Join(parent, "out")
	require.NoError(t, os.WriteFile(blocker, []byte("x"), 0644))

	output := domain.DefaultSettings().Output
	output.Dir = blocker
	store := NewStore(output)

	_, err := store.SaveDataset(context.Background(), domain.NewDataset())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "creating output directory")
}

func TestStore_Cancelled(t *testing.T) {
	store, dir := newTestStore(t, false)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := store.SaveDataset(ctx, domain.NewDataset())

	assert.ErrorIs(t, err, context.Canceled)
	_, statErr := os.Stat(dir)
	assert.True(t, os.IsNotExist(statErr))
}

func TestEncodeJSON(t *testing.T) {
	data, err := encodeJSON(map[string]string{"k": "<ä>"})
	require.NoError(t, err)
	assert.Equal(t, `{"k":"<ä>"}`, string(data))
}
