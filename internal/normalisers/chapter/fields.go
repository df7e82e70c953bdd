package chapter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"

	"github.com/custodia-labs/chapter-bundler/internal/core/domain"
)

// fields is a decoded JSON object whose values are decoded lazily.
type fields map[string]json.RawMessage

// decodeObject parses raw as a JSON object.
func decodeObject(raw []byte) (fields, error) {
	trimmed := bytes.TrimSpace(raw)
	if err := checkObject(trimmed); err != nil {
		return nil, err
	}
	var f fields
	if err := json.Unmarshal(trimmed, &f); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return f, nil
}

// decodeMembers parses raw as a JSON object and returns its members in
// source order. A repeated key keeps its first position and its last value.
func decodeMembers(raw []byte) ([]domain.Member, error) {
	trimmed := bytes.TrimSpace(raw)
	if err := checkObject(trimmed); err != nil {
		return nil, err
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	members := []domain.Member{}
	seen := make(map[string]int)
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
		key, _ := tok.(string)
		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, fmt.Errorf("parsing JSON: %w", err)
		}
		if i, ok := seen[key]; ok {
			members[i].Value = value
			continue
		}
		seen[key] = len(members)
		members = append(members, domain.Member{Key: key, Value: value})
	}
	if _, err := dec.Token(); err != nil {
		return nil, fmt.Errorf("parsing JSON: %w", err)
	}
	return members, nil
}

// checkObject rejects input that is valid JSON but not an object.
func checkObject(trimmed []byte) error {
	if len(trimmed) > 0 && trimmed[0] != '{' {
		if !json.Valid(trimmed) {
			return fmt.Errorf("parsing JSON: %w", json.Unmarshal(trimmed, new(any)))
		}
		return fmt.Errorf("%w: top-level value is not an object", domain.ErrMalformedChapter)
	}
	return nil
}

// isArray reports whether key holds a JSON array.
func (f fields) isArray(key string) bool {
	v, ok := f[key]
	if !ok {
		return false
	}
	v = bytes.TrimSpace(v)
	return len(v) > 0 && v[0] == '['
}

// fieldReader reads typed values from fields. Absent keys yield the supplied
// default. A present value that does not fit the typed field, null included,
// is recorded in verbatim so it is written as found.
type fieldReader struct {
	f        fields
	verbatim map[string]json.RawMessage
}

func (r *fieldReader) keep(key string, raw json.RawMessage) {
	if r.verbatim == nil {
		r.verbatim = make(map[string]json.RawMessage)
	}
	r.verbatim[key] = raw
}

// str returns the string at key, or "" when absent.
func (r *fieldReader) str(key string) string {
	v, ok := r.f[key]
	if !ok {
		return ""
	}
	s, exact := text(v)
	if !exact {
		r.keep(key, v)
	}
	return s
}

// num returns the integer at key, or def when absent.
func (r *fieldReader) num(key string, def int) int {
	v, ok := r.f[key]
	if !ok {
		return def
	}
	if n, err := strconv.Atoi(string(bytes.TrimSpace(v))); err == nil {
		return n
	}
	r.keep(key, v)
	if n, ok := parseInt(v); ok {
		return n
	}
	return def
}

// list returns the elements of the array at key, or nil when absent.
// Any other present value, null included, is malformed.
func (r *fieldReader) list(key string) ([]json.RawMessage, error) {
	v, ok := r.f[key]
	if !ok {
		return nil, nil
	}
	var items []json.RawMessage
	if !r.f.isArray(key) || json.Unmarshal(v, &items) != nil {
		return nil, fmt.Errorf("%w: field %q is not an array", domain.ErrMalformedChapter, key)
	}
	return items, nil
}

// text returns the string held by v. For any other JSON value it returns
// the value's JSON text, or "" for null, and exact is false.
func text(v json.RawMessage) (s string, exact bool) {
	trimmed := bytes.TrimSpace(v)
	if len(trimmed) > 0 && trimmed[0] == '"' {
		if err := json.Unmarshal(trimmed, &s); err == nil {
			return s, true
		}
	}
	if bytes.Equal(trimmed, []byte("null")) {
		return "", false
	}
	return string(trimmed), false
}

// parseInt reads integers leniently: integral floats and numeric strings
// are accepted.
func parseInt(v json.RawMessage) (int, bool) {
	var number json.Number
	if err := json.Unmarshal(v, &number); err != nil {
		return 0, false
	}
	if n, err := strconv.Atoi(number.String()); err == nil {
		return n, true
	}
	f, err := number.Float64()
	if err != nil || f != math.Trunc(f) || math.Abs(f) > math.MaxInt32 {
		return 0, false
	}
	return int(f), true
}
