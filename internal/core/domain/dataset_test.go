package domain

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDataset_Empty(t *testing.T) {
	ds := NewDataset()

	assert.Equal(t, 0, ds.Len())
	assert.Empty(t, ds.Numbers())

	data, err := json.Marshal(ds)
	require.NoError(t, err)
	assert.Equal(t, "{}", string(data))
}

func TestDataset_PutAndGet(t *testing.T) {
	ds := NewDataset()
	ds.Put(2, Chapter{Number: 2, Name: "Al-Baqarah"})

	ch, ok := ds.Get(2)
	assert.True(t, ok)
	assert.Equal(t, "Al-Baqarah", ch.Name)

	_, ok = ds.Get(3)
	assert.False(t, ok)
}

func TestDataset_PutReplaces(t *testing.T) {
	ds := NewDataset()
	ds.Put(1, Chapter{Name: "first"})
	ds.Put(1, Chapter{Name: "second"})

	ch, ok := ds.Get(1)
	require.True(t, ok)
	assert.Equal(t, "second", ch.Name)
	assert.Equal(t, 1, ds.Len())
}

func TestDataset_KeysAreNumericallyOrdered(t *testing.T) {
	ds := NewDataset()
	for _, n := range []int{10, 2, 1, 114, 11} {
		ds.Put(n, Chapter{Number: n})
	}

	assert.Equal(t, []int{1, 2, 10, 11, 114}, ds.Numbers())
}

func TestDataset_MarshalJSON(t *testing.T) {
	ds := NewDataset()
	ds.Put(10, Chapter{Number: 10, Ayahs: []Verse{}})
	ds.Put(9, Chapter{
		Number:          9,
		Name:            "At-Tawbah",
		NameArabic:      "التوبة",
		RevelationPlace: "Madinah",
		TotalAyah:       1,
		Ayahs:           []Verse{{Number: 1, Arabic: "بَرَاءَةٌ", English: "A <declaration> & release", Bengali: "সম্পর্কচ্ছেদ"}},
	})

	data, err := marshalVerbatim(ds)
	require.NoError(t, err)

	out := string(data)
	assert.Less(t, strings.Index(out, `"9":`), strings.Index(out, `"10":`))
	assert.Contains(t, out, "التوبة")
	assert.Contains(t, out, "সম্পর্কচ্ছেদ")
	assert.Contains(t, out, "A <declaration> & release")
	assert.Contains(t, out, `"ayahs":[]`)

	var decoded map[string]Chapter
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "At-Tawbah", decoded["9"].Name)
	assert.Len(t, decoded["9"].Ayahs, 1)
}

func TestChapter_Summary(t *testing.T) {
	ch := Chapter{
		Number:          99,
		Name:            "Al-Fatiha",
		NameArabic:      "الفاتحة",
		NameArabicLong:  "سورة الفاتحة",
		NameTranslation: "The Opening",
		RevelationPlace: "Mecca",
		TotalAyah:       7,
	}

	entry := ch.Summary(1)

	assert.Equal(t, 1, entry.Number)
	assert.Equal(t, "Al-Fatiha", entry.Name)
	assert.Equal(t, "الفاتحة", entry.NameArabic)
	assert.Equal(t, "سورة الفاتحة", entry.NameArabicLong)
	assert.Equal(t, "The Opening", entry.NameTranslation)
	assert.Equal(t, 7, entry.TotalAyah)
	assert.Equal(t, "Mecca", entry.RevelationPlace)
	assert.Nil(t, entry.Verbatim)
	assert.Nil(t, entry.Members)
}

func TestChapter_SummaryCarriesVerbatim(t *testing.T) {
	ch := Chapter{
		Number:    3,
		TotalAyah: 7,
		Verbatim: map[string]json.RawMessage{
			"surahNo":         json.RawMessage(`"3"`),
			"surahName":       json.RawMessage(`5`),
			"totalAyah":       json.RawMessage(`7.5`),
			"revelationPlace": json.RawMessage(`["Mecca"]`),
		},
	}

	entry := ch.Summary(3)

	assert.Equal(t, map[string]json.RawMessage{
		"name":            json.RawMessage(`5`),
		"totalAyah":       json.RawMessage(`7.5`),
		"revelationPlace": json.RawMessage(`["Mecca"]`),
	}, entry.Verbatim)

	data, err := marshalVerbatim(entry)
	require.NoError(t, err)
	assert.Equal(t, `{"number":3,"name":5,"nameArabic":"","nameArabicLong":"",`+
		`"nameTranslation":"","totalAyah":7.5,"revelationPlace":["Mecca"]}`, string(data))
}

func TestChapter_MarshalJSON_Verbatim(t *testing.T) {
	ch := Chapter{
		Number:    1,
		Name:      "Al-Fatiha",
		TotalAyah: 7,
		Verbatim: map[string]json.RawMessage{
			"totalAyah": json.RawMessage(`7.5`),
			"surahNo":   json.RawMessage(`null`),
		},
		Ayahs: []Verse{{
			Number:   1,
			Arabic:   "1",
			Verbatim: map[string]json.RawMessage{"arabic": json.RawMessage(`1`)},
		}},
	}

	data, err := marshalVerbatim(ch)
	require.NoError(t, err)

	expected := `{"surahNo":null,"surahName":"Al-Fatiha","surahNameArabic":"",` +
		`"surahNameArabicLong":"","surahNameTranslation":"","revelationPlace":"",` +
		`"totalAyah":7.5,"ayahs":[{"number":1,"arabic":1,"english":"","bengali":""}]}`
	assert.Equal(t, expected, string(data))
}

func TestChapter_MarshalJSON_NilAyahs(t *testing.T) {
	data, err := json.Marshal(Chapter{})
	require.NoError(t, err)
	assert.Contains(t, string(data), `"ayahs":[]`)
}
