package parser

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
)

// Body is a decoded JSON request object. Absent fields read as zero values.
type Body struct {
	fields map[string]json.RawMessage
}

// ParseBody decodes a request body. An empty body, or valid JSON that is not
// an object, yields a Body with no fields. Invalid JSON is an error.
func ParseBody(r io.Reader) (Body, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return Body{}, fmt.Errorf("read body: %w", err)
	}
	return ParseBodyBytes(data)
}

// ParseBodyBytes is ParseBody for an in-memory body.
func ParseBodyBytes(data []byte) (Body, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Body{}, nil
	}
	if !json.Valid(data) {
		return Body{}, fmt.Errorf("invalid JSON body")
	}

	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		// valid JSON, just not an object
		return Body{}, nil
	}
	return Body{fields: fields}, nil
}

// Has reports whether the field is present.
func (b Body) Has(key string) bool {
	_, ok := b.fields[key]
	return ok
}

func (b Body) value(key string) any {
	raw, ok := b.fields[key]
	if !ok {
		return nil
	}
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil
	}
	return v
}

// String returns a string field. Numbers and booleans are rendered as text.
func (b Body) String(key string) string {
	switch v := b.value(key).(type) {
	case string:
		return v
	case json.Number:
		if n, err := v.Int64(); err == nil {
			return strconv.FormatInt(n, 10)
		}
		f, _ := v.Float64()
		return strconv.FormatFloat(f, 'f', -1, 64)
	case bool:
		if v {
			return "1"
		}
		return ""
	default:
		return ""
	}
}

// Int returns an integer field, coerced with Int.
func (b Body) Int(key string) int {
	return Int(b.value(key))
}

// Order returns a position -> list id mapping. A JSON array maps index to
// element; a JSON object must have integer keys. Anything else is not a
// mapping and yields nil.
func (b Body) Order(key string) map[int]int64 {
	switch v := b.value(key).(type) {
	case []any:
		order := make(map[int]int64, len(v))
		for pos, id := range v {
			order[pos] = int64(Int(id))
		}
		return order
	case map[string]any:
		order := make(map[int]int64, len(v))
		for k, id := range v {
			pos, err := strconv.Atoi(k)
			if err != nil {
				return nil
			}
			order[pos] = int64(Int(id))
		}
		return order
	default:
		return nil
	}
}

// OrderFromIDs builds a mapping that places ids at positions 0..n-1.
func OrderFromIDs(ids []int64) map[int]int64 {
	order := make(map[int]int64, len(ids))
	for pos, id := range ids {
		order[pos] = id
	}
	return order
}
