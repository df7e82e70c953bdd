package domain

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// marshalVerbatim encodes v without HTML escaping and without a trailing newline.
func marshalVerbatim(v any) ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return nil, err
	}
	return bytes.TrimRight(buf.Bytes(), "\n"), nil
}

// Member is one key of a JSON object together with its raw value.
type Member struct {
	Key   string
	Value json.RawMessage
}

// member is a typed object key written in a fixed position.
type member struct {
	key   string
	value any
}

// marshalMembers writes members as a JSON object in order. A value in
// verbatim replaces the typed value of the same key.
func marshalMembers(members []member, verbatim map[string]json.RawMessage) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, m := range members {
		if i > 0 {
			buf.WriteByte(',')
		}
		var (
			value []byte
			err   error
		)
		if raw, ok := verbatim[m.key]; ok {
			value, err = reencode(raw)
		} else {
			value, err = marshalVerbatim(m.value)
		}
		if err != nil {
			return nil, fmt.Errorf("encoding %q: %w", m.key, err)
		}
		writeKey(&buf, m.key)
		buf.Write(value)
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

func writeKey(buf *bytes.Buffer, key string) {
	name, _ := marshalVerbatim(key)
	buf.Write(name)
	buf.WriteByte(':')
}

// reencode rewrites a raw JSON value compactly, with strings written as
// UTF-8 rather than escapes. Object key order and number literals are kept.
func reencode(raw json.RawMessage) ([]byte, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()

	var buf bytes.Buffer
	if err := reencodeValue(dec, &buf); err != nil {
		return nil, err
	}
	if dec.More() {
		return nil, fmt.Errorf("trailing data after JSON value")
	}
	return buf.Bytes(), nil
}

func reencodeValue(dec *json.Decoder, buf *bytes.Buffer) error {
	tok, err := dec.Token()
	if err != nil {
		return err
	}

	switch t := tok.(type) {
	case json.Delim:
		closing := json.Delim('}')
		if t == '[' {
			closing = ']'
		}
		buf.WriteByte(byte(t))
		for i := 0; dec.More(); i++ {
			if i > 0 {
				buf.WriteByte(',')
			}
			if t == '{' {
				key, err := dec.Token()
				if err != nil {
					return err
				}
				name, _ := key.(string)
				writeKey(buf, name)
			}
			if err := reencodeValue(dec, buf); err != nil {
				return err
			}
		}
		end, err := dec.Token()
		if err != nil {
			return err
		}
		if end != closing {
			return fmt.Errorf("unexpected %v", end)
		}
		buf.WriteByte(byte(closing))
	case json.Number:
		buf.WriteString(t.String())
	case nil:
		buf.WriteString("null")
	default:
		value, err := marshalVerbatim(t)
		if err != nil {
			return err
		}
		buf.Write(value)
	}
	return nil
}
