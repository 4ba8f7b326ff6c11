// Package raw holds untyped server payloads as an explicit tagged union, so
// decoders branch on a shape tag instead of probing Go types.
package raw

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
)

// Shape tags a Value.
type Shape uint8

const (
	ShapeNull Shape = iota
	ShapeString
	ShapeNumber
	ShapeBool
	ShapeMapping
	ShapeSequence
)

// String returns the shape name
func (s Shape) String() string {
	switch s {
	case ShapeNull:
		return "null"
	case ShapeString:
		return "string"
	case ShapeNumber:
		return "number"
	case ShapeBool:
		return "bool"
	case ShapeMapping:
		return "mapping"
	case ShapeSequence:
		return "sequence"
	default:
		return fmt.Sprintf("shape(%d)", uint8(s))
	}
}

// Value is one JSON value. The zero Value is null.
type Value struct {
	shape Shape
	str   string
	num   json.Number
	b     bool
	rec   Record
	seq   []Value
}

// Record is one JSON object.
type Record struct {
	fields map[string]Value
}

// NewRecord builds a record from already-shaped values.
func NewRecord(fields map[string]Value) Record {
	return Record{fields: fields}
}

// String returns a string value
func String(s string) Value { return Value{shape: ShapeString, str: s} }

// Number returns a number value from its JSON text.
func Number(n json.Number) Value { return Value{shape: ShapeNumber, num: n} }

// Bool returns a boolean value
func Bool(b bool) Value { return Value{shape: ShapeBool, b: b} }

// Mapping wraps a record as a value
func Mapping(r Record) Value { return Value{shape: ShapeMapping, rec: r} }

// Sequence wraps values as an array value
func Sequence(items ...Value) Value { return Value{shape: ShapeSequence, seq: items} }

// Shape returns the tag.
func (v Value) Shape() Shape { return v.shape }

// IsNull reports whether v is JSON null.
func (v Value) IsNull() bool { return v.shape == ShapeNull }

// Str returns the string payload.
func (v Value) Str() (string, bool) { return v.str, v.shape == ShapeString }

// Num returns the number payload.
func (v Value) Num() (json.Number, bool) { return v.num, v.shape == ShapeNumber }

// Boolean returns the boolean payload.
func (v Value) Boolean() (bool, bool) { return v.b, v.shape == ShapeBool }

// Record returns the mapping payload.
func (v Value) Record() (Record, bool) { return v.rec, v.shape == ShapeMapping }

// Items returns the sequence payload.
func (v Value) Items() ([]Value, bool) { return v.seq, v.shape == ShapeSequence }

// Interface converts v back into plain Go values (map[string]any, []any,
// string, json.Number, bool, nil).
func (v Value) Interface() any {
	switch v.shape {
	case ShapeString:
		return v.str
	case ShapeNumber:
		return v.num
	case ShapeBool:
		return v.b
	case ShapeMapping:
		return v.rec.Interface()
	case ShapeSequence:
		out := make([]any, len(v.seq))
		for i, item := range v.seq {
			out[i] = item.Interface()
		}
		return out
	default:
		return nil
	}
}

// Get returns the value stored under key.
func (r Record) Get(key string) (Value, bool) {
	v, ok := r.fields[key]
	return v, ok
}

// Has reports whether key is present, including keys holding null.
func (r Record) Has(key string) bool {
	_, ok := r.fields[key]
	return ok
}

// Len returns the number of keys
func (r Record) Len() int { return len(r.fields) }

// Keys returns the keys in sorted order.
func (r Record) Keys() []string {
	keys := make([]string, 0, len(r.fields))
	for k := range r.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Interface converts r into a map[string]any.
func (r Record) Interface() map[string]any {
	out := make(map[string]any, len(r.fields))
	for k, v := range r.fields {
		out[k] = v.Interface()
	}
	return out
}

// Parse decodes JSON text. Numbers keep their textual form. An empty body
// parses as null.
func Parse(data []byte) (Value, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Value{}, nil
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return Value{}, fmt.Errorf("failed to parse JSON payload: %w", err)
	}
	if dec.More() {
		return Value{}, fmt.Errorf("failed to parse JSON payload: trailing data after top-level value")
	}
	return FromInterface(v)
}

// FromInterface shapes plain Go values as produced by encoding/json. Go
// numeric types are accepted as well, which keeps hand-built fixtures short.
func FromInterface(v any) (Value, error) {
	switch x := v.(type) {
	case nil:
		return Value{}, nil
	case string:
		return String(x), nil
	case json.Number:
		return Number(x), nil
	case bool:
		return Bool(x), nil
	case int:
		return Number(json.Number(fmt.Sprint(x))), nil
	case int64:
		return Number(json.Number(fmt.Sprint(x))), nil
	case float64:
		return Number(json.Number(fmt.Sprint(x))), nil
	case map[string]any:
		fields := make(map[string]Value, len(x))
		for k, item := range x {
			fv, err := FromInterface(item)
			if err != nil {
				return Value{}, fmt.Errorf("key %q: %w", k, err)
			}
			fields[k] = fv
		}
		return Mapping(Record{fields: fields}), nil
	case []any:
		items := make([]Value, len(x))
		for i, item := range x {
			iv, err := FromInterface(item)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = iv
		}
		return Sequence(items...), nil
	case []map[string]any:
		items := make([]Value, len(x))
		for i, item := range x {
			iv, err := FromInterface(item)
			if err != nil {
				return Value{}, fmt.Errorf("index %d: %w", i, err)
			}
			items[i] = iv
		}
		return Sequence(items...), nil
	default:
		return Value{}, fmt.Errorf("unsupported JSON value of type %T", v)
	}
}

// MustRecord shapes a map into a Record and panics on unsupported values.
// Intended for tests and static fixtures.
func MustRecord(m map[string]any) Record {
	v, err := FromInterface(m)
	if err != nil {
		panic(err)
	}
	r, _ := v.Record()
	return r
}
