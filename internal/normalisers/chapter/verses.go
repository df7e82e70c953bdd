package chapter

import (
	"encoding/json"
	"fmt"

	"github.com/custodia-labs/chapter-bundler/internal/core/domain"
)

// Input keys that carry verse text.
const (
	keyAyahs   = "ayahs"
	keyArabic  = "arabic1"
	keyEnglish = "english"
	keyBengali = "bengali"
)

// verseStrategy builds the verse sequence for one input shape.
type verseStrategy interface {
	name() string
	applies(f fields) bool
	verses(f fields) ([]domain.Verse, error)
}

// verseListStrategy reads an "ayahs" array of verse objects.
type verseListStrategy struct{}

func (verseListStrategy) name() string { return "verse-list" }

func (verseListStrategy) applies(f fields) bool {
	return f.isArray(keyAyahs)
}

func (verseListStrategy) verses(f fields) ([]domain.Verse, error) {
	var items []json.RawMessage
	if err := json.Unmarshal(f[keyAyahs], &items); err != nil {
		return nil, fmt.Errorf("field %q: %w", keyAyahs, err)
	}

	out := make([]domain.Verse, 0, len(items))
	for i, item := range items {
		obj, err := decodeObject(item)
		if err != nil {
			return nil, fmt.Errorf("%w: %s[%d] is not an object", domain.ErrMalformedChapter, keyAyahs, i)
		}
		r := &fieldReader{f: obj}
		v := domain.Verse{
			Number:  r.num("number", 0),
			Arabic:  r.str("arabic"),
			English: r.str("english"),
			Bengali: r.str("bengali"),
		}
		// read after the fields above have been decoded
		v.Verbatim = r.verbatim
		out = append(out, v)
	}
	return out, nil
}

// parallelStrategy zips three per-language arrays aligned by position.
// The verse count is the longest array; shorter arrays pad with "".
type parallelStrategy struct{}

func (parallelStrategy) name() string { return "parallel-arrays" }

func (parallelStrategy) applies(fields) bool { return true }

// languages maps each parallel array key to the verse key it fills.
var languages = []struct{ source, verse string }{
	{keyArabic, "arabic"},
	{keyEnglish, "english"},
	{keyBengali, "bengali"},
}

func (parallelStrategy) verses(f fields) ([]domain.Verse, error) {
	r := &fieldReader{f: f}
	lists := make([][]json.RawMessage, len(languages))
	count := 0
	for i, lang := range languages {
		items, err := r.list(lang.source)
		if err != nil {
			return nil, err
		}
		lists[i] = items
		count = max(count, len(items))
	}

	out := make([]domain.Verse, count)
	for i := range out {
		v := fields{}
		for j, lang := range languages {
			if i < len(lists[j]) {
				v[lang.verse] = lists[j][i]
			}
		}
		vr := &fieldReader{f: v}
		out[i] = domain.Verse{
			Number:  i + 1,
			Arabic:  vr.str("arabic"),
			English: vr.str("english"),
			Bengali: vr.str("bengali"),
		}
		out[i].Verbatim = vr.verbatim
	}
	return out, nil
}
