package domain

import "encoding/json"

// Verse is one numbered verse of a chapter in three languages.
type Verse struct {
	Number  int    `json:"number"`
	Arabic  string `json:"arabic"`
	English string `json:"english"`
	Bengali string `json:"bengali"`

	// Verbatim holds source values that do not fit the typed field of the
	// same key. They are written as found.
	Verbatim map[string]json.RawMessage `json:"-"`
}

// MarshalJSON writes the verse keys in fixed order.
func (v Verse) MarshalJSON() ([]byte, error) {
	return marshalMembers([]member{
		{"number", v.Number},
		{"arabic", v.Arabic},
		{"english", v.English},
		{"bengali", v.Bengali},
	}, v.Verbatim)
}

// Chapter is the normalised record written to the aggregated dataset.
// Field names match what the downstream reader expects.
type Chapter struct {
	Number          int     `json:"surahNo"`
	Name            string  `json:"surahName"`
	NameArabic      string  `json:"surahNameArabic"`
	NameArabicLong  string  `json:"surahNameArabicLong"`
	NameTranslation string  `json:"surahNameTranslation"`
	RevelationPlace string  `json:"revelationPlace"`
	TotalAyah       int     `json:"totalAyah"`
	Ayahs           []Verse `json:"ayahs"`

	// Verbatim holds source values that do not fit the typed field of the
	// same key, e.g. a fractional totalAyah. They are written as found.
	Verbatim map[string]json.RawMessage `json:"-"`
}

// MarshalJSON writes the chapter keys in fixed order. Ayahs is never null.
func (c Chapter) MarshalJSON() ([]byte, error) {
	ayahs := c.Ayahs
	if ayahs == nil {
		ayahs = []Verse{}
	}
	return marshalMembers([]member{
		{"surahNo", c.Number},
		{"surahName", c.Name},
		{"surahNameArabic", c.NameArabic},
		{"surahNameArabicLong", c.NameArabicLong},
		{"surahNameTranslation", c.NameTranslation},
		{"revelationPlace", c.RevelationPlace},
		{"totalAyah", c.TotalAyah},
		{"ayahs", ayahs},
	}, c.Verbatim)
}

// summaryKeys maps chapter keys to the index keys they are summarised as.
var summaryKeys = map[string]string{
	"surahName":            "name",
	"surahNameArabic":      "nameArabic",
	"surahNameArabicLong":  "nameArabicLong",
	"surahNameTranslation": "nameTranslation",
	"totalAyah":            "totalAyah",
	"revelationPlace":      "revelationPlace",
}

// Summary returns the index entry for this chapter, numbered by number.
// Verbatim values carry over under their index keys.
func (c *Chapter) Summary(number int) IndexEntry {
	entry := IndexEntry{
		Number:          number,
		Name:            c.Name,
		NameArabic:      c.NameArabic,
		NameArabicLong:  c.NameArabicLong,
		NameTranslation: c.NameTranslation,
		TotalAyah:       c.TotalAyah,
		RevelationPlace: c.RevelationPlace,
	}
	for key, raw := range c.Verbatim {
		if indexKey, ok := summaryKeys[key]; ok {
			if entry.Verbatim == nil {
				entry.Verbatim = make(map[string]json.RawMessage)
			}
			entry.Verbatim[indexKey] = raw
		}
	}
	return entry
}

// ChapterFile is a per-chapter input file discovered by a source.
type ChapterFile struct {
	// Name is the base file name, e.g. "surah_2.json".
	Name string

	// Path is the location the source reads the file from.
	Path string

	// Number is the chapter number parsed from Name.
	Number int
}
