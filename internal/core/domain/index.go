package domain

import (
	"bytes"
	"encoding/json"
)

// IndexEntry is the verse-free summary of one chapter.
//
// An entry rebuilt from chapter files is written with the seven known keys.
// An entry read from a consolidated index file keeps the source object in
// Members and is written as that object with only "number" set; its typed
// fields are a reading of the same members.
type IndexEntry struct {
	Number          int
	Name            string
	NameArabic      string
	NameArabicLong  string
	NameTranslation string
	TotalAyah       int
	RevelationPlace string

	// Verbatim holds source values written in place of the typed field of
	// the same key.
	Verbatim map[string]json.RawMessage

	// Members is the source object in source order, or nil for rebuilt entries.
	Members []Member
}

// MarshalJSON encodes the entry. See IndexEntry for the two shapes.
func (e IndexEntry) MarshalJSON() ([]byte, error) {
	if e.Members != nil {
		return e.marshalSource()
	}
	return marshalMembers([]member{
		{"number", e.Number},
		{"name", e.Name},
		{"nameArabic", e.NameArabic},
		{"nameArabicLong", e.NameArabicLong},
		{"nameTranslation", e.NameTranslation},
		{"totalAyah", e.TotalAyah},
		{"revelationPlace", e.RevelationPlace},
	}, e.Verbatim)
}

// marshalSource writes Members in order. An existing "number" member keeps
// its position with the new value; otherwise "number" is appended.
func (e IndexEntry) marshalSource() ([]byte, error) {
	number, err := marshalVerbatim(e.Number)
	if err != nil {
		return nil, err
	}

	var buf bytes.Buffer
	buf.WriteByte('{')
	numbered := false
	for i, m := range e.Members {
		if i > 0 {
			buf.WriteByte(',')
		}
		writeKey(&buf, m.Key)
		if m.Key == "number" && !numbered {
			numbered = true
			buf.Write(number)
			continue
		}
		value, err := reencode(m.Value)
		if err != nil {
			return nil, err
		}
		buf.Write(value)
	}
	if !numbered {
		if len(e.Members) > 0 {
			buf.WriteByte(',')
		}
		writeKey(&buf, "number")
		buf.Write(number)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}
