// Package chapter normalises per-chapter JSON files and consolidated
// index files into domain records.
package chapter

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/chapter-bundler/internal/core/domain"
	"github.com/custodia-labs/chapter-bundler/internal/core/ports/driven"
	"github.com/custodia-labs/chapter-bundler/internal/logger"
)

// Ensure Normaliser implements the interface.
var _ driven.ChapterNormaliser = (*Normaliser)(nil)

// Input keys of a chapter file.
const (
	keyNumber          = "surahNo"
	keyName            = "surahName"
	keyNameArabic      = "surahNameArabic"
	keyNameArabicLong  = "surahNameArabicLong"
	keyNameTranslation = "surahNameTranslation"
	keyRevelationPlace = "revelationPlace"
	keyTotalAyah       = "totalAyah"
)

// Normaliser handles the chapter JSON shape.
type Normaliser struct {
	strategies []verseStrategy
}

// New creates a chapter normaliser.
// The verse list shape is preferred over parallel arrays.
func New() *Normaliser {
	return &Normaliser{
		strategies: []verseStrategy{verseListStrategy{}, parallelStrategy{}},
	}
}

// NormaliseChapter builds the full chapter record for a file.
// The record number falls back to the file number when surahNo is absent.
func (n *Normaliser) NormaliseChapter(_ context.Context, file domain.ChapterFile, raw []byte) (*domain.Chapter, error) {
	f, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	r := &fieldReader{f: f}
	ch := &domain.Chapter{
		Number:          r.num(keyNumber, file.Number),
		Name:            r.str(keyName),
		NameArabic:      r.str(keyNameArabic),
		NameArabicLong:  r.str(keyNameArabicLong),
		NameTranslation: r.str(keyNameTranslation),
		RevelationPlace: r.str(keyRevelationPlace),
		TotalAyah:       r.num(keyTotalAyah, 0),
	}
	ch.Verbatim = r.verbatim

	for _, s := range n.strategies {
		if !s.applies(f) {
			continue
		}
		ch.Ayahs, err = s.verses(f)
		if err != nil {
			return nil, err
		}
		logger.Debug("%s: %d verses via %s", file.Name, len(ch.Ayahs), s.name())
		break
	}
	if ch.Ayahs == nil {
		ch.Ayahs = []domain.Verse{}
	}

	if ch.Number != file.Number {
		logger.Warn("%s: surahNo %d differs from file number %d", file.Name, ch.Number, file.Number)
	}
	return ch, nil
}

// SummariseChapter builds the index entry for a file.
// Verse data is not inspected.
func (n *Normaliser) SummariseChapter(_ context.Context, file domain.ChapterFile, raw []byte) (*domain.IndexEntry, error) {
	f, err := decodeObject(raw)
	if err != nil {
		return nil, err
	}

	r := &fieldReader{f: f}
	ch := domain.Chapter{
		Name:            r.str(keyName),
		NameArabic:      r.str(keyNameArabic),
		NameArabicLong:  r.str(keyNameArabicLong),
		NameTranslation: r.str(keyNameTranslation),
		TotalAyah:       r.num(keyTotalAyah, 0),
		RevelationPlace: r.str(keyRevelationPlace),
	}
	ch.Verbatim = r.verbatim
	entry := ch.Summary(file.Number)
	return &entry, nil
}

// NormaliseIndex parses a consolidated index: a JSON array of objects.
// Each entry keeps its source object and is numbered 1 + its position,
// ignoring any stored number.
func (n *Normaliser) NormaliseIndex(_ context.Context, raw []byte) ([]domain.IndexEntry, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("parsing index: %w", err)
	}

	entries := make([]domain.IndexEntry, 0, len(items))
	for i, item := range items {
		entry, err := indexEntry(i+1, item)
		if err != nil {
			return entries, fmt.Errorf("index element %d: %w", i, err)
		}
		entries = append(entries, *entry)
	}
	return entries, nil
}

// indexEntry keeps the source members. The typed fields are read from the
// index spelling of each key, or the chapter file spelling when absent.
func indexEntry(number int, item json.RawMessage) (*domain.IndexEntry, error) {
	members, err := decodeMembers(item)
	if err != nil {
		return nil, err
	}

	f := make(fields, len(members))
	for _, m := range members {
		f[m.Key] = m.Value
	}
	key := func(indexKey, chapterKey string) string {
		if _, ok := f[indexKey]; ok {
			return indexKey
		}
		return chapterKey
	}

	r := &fieldReader{f: f}
	return &domain.IndexEntry{
		Number:          number,
		Name:            r.str(key("name", keyName)),
		NameArabic:      r.str(key("nameArabic", keyNameArabic)),
		NameArabicLong:  r.str(key("nameArabicLong", keyNameArabicLong)),
		NameTranslation: r.str(key("nameTranslation", keyNameTranslation)),
		TotalAyah:       r.num(keyTotalAyah, 0),
		RevelationPlace: r.str(keyRevelationPlace),
		Members:         members,
	}, nil
}
