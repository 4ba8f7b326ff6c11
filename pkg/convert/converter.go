// Package convert turns raw GitHub records into typed models according to an
// idl.Schema, and typed models back into update payloads.
package convert

import (
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github3/pkg/idl"
	"github3/pkg/raw"
)

// DateLayout is the only timestamp form GitHub dates are decoded from.
const DateLayout = "2006-01-02T15:04:05Z"

// Converter decodes records. The zero value is ready to use and logs nothing.
type Converter struct {
	log zerolog.Logger
}

// New returns a converter that reports degraded fields to log at debug level.
func New(log zerolog.Logger) *Converter {
	return &Converter{log: log}
}

// Decode decodes record with a zero Converter.
func Decode(schema *idl.Schema, record raw.Record) (idl.Model, error) {
	var c Converter
	return c.Decode(schema, record)
}

// Decode builds one model from record. Attributes missing from the record
// stay absent; attributes with an unexpected shape or a malformed date are
// left absent too. Only an unbound schema is an error.
func (c *Converter) Decode(schema *idl.Schema, record raw.Record) (idl.Model, error) {
	if !schema.Bound() {
		name := "<nil>"
		if schema != nil {
			name = schema.Name()
		}
		return nil, fmt.Errorf("decode %s: %w", name, idl.ErrMissingSchema)
	}

	model := schema.New()
	fields := model.Fields()

	for _, attr := range schema.Attributes() {
		value, ok := record.Get(attr.Name)
		if !ok {
			continue
		}
		field := fields[attr.Name]
		if field == nil {
			return nil, fmt.Errorf("decode %s: attribute %q: %w", schema.Name(), attr.Name, idl.ErrUnboundAttribute)
		}

		decoded, err := c.decodeAttribute(attr, value, field)
		if err != nil {
			return nil, fmt.Errorf("decode %s.%s: %w", schema.Name(), attr.Name, err)
		}
		if !decoded {
			c.log.Debug().
				Str("schema", schema.Name()).
				Str("attribute", attr.Name).
				Str("kind", attr.Kind.String()).
				Str("shape", value.Shape().String()).
				Msg("attribute left absent")
		}
	}

	return model, nil
}

// decodeAttribute reports whether the field received a value (set or null).
func (c *Converter) decodeAttribute(attr idl.Attribute, value raw.Value, field idl.Field) (bool, error) {
	switch attr.Kind {
	case idl.KindString, idl.KindInteger, idl.KindBoolean:
		if value.IsNull() {
			field.SetNull()
			return true, nil
		}
		v, ok := scalar(attr.Kind, value)
		if !ok {
			return false, nil
		}
		return field.Assign(v), nil

	case idl.KindDate:
		t, ok := ParseDate(value)
		if !ok {
			return false, nil
		}
		return field.Assign(t), nil

	case idl.KindObject:
		rec, ok := value.Record()
		if !ok {
			return false, nil
		}
		nested, err := c.Decode(attr.Schema, rec)
		if err != nil {
			return false, err
		}
		return field.Assign(nested), nil

	case idl.KindCollection:
		return c.decodeCollection(attr.Schema, value, field)
	}

	return false, nil
}

func (c *Converter) decodeCollection(schema *idl.Schema, value raw.Value, field idl.Field) (bool, error) {
	switch value.Shape() {
	case raw.ShapeMapping:
		rec, _ := value.Record()
		keyed := make(map[string]idl.Model, rec.Len())
		for _, key := range rec.Keys() {
			item, _ := rec.Get(key)
			itemRec, ok := item.Record()
			if !ok {
				continue
			}
			m, err := c.Decode(schema, itemRec)
			if err != nil {
				return false, err
			}
			keyed[key] = m
		}
		return field.Assign(keyed), nil

	case raw.ShapeSequence:
		items, _ := value.Items()
		models := make([]idl.Model, 0, len(items))
		for _, item := range items {
			itemRec, ok := item.Record()
			if !ok {
				continue
			}
			m, err := c.Decode(schema, itemRec)
			if err != nil {
				return false, err
			}
			models = append(models, m)
		}
		return field.Assign(models), nil
	}

	return false, nil
}

func scalar(kind idl.Kind, value raw.Value) (any, bool) {
	switch kind {
	case idl.KindString:
		return value.Str()
	case idl.KindBoolean:
		return value.Boolean()
	case idl.KindInteger:
		n, ok := value.Num()
		if !ok {
			return nil, false
		}
		i, err := n.Int64()
		if err != nil {
			return nil, false
		}
		return i, true
	}
	return nil, false
}

// ParseDate parses a YYYY-MM-DDTHH:MM:SSZ string value. Any other shape or
// format yields false.
func ParseDate(value raw.Value) (time.Time, bool) {
	s, ok := value.Str()
	if !ok || len(s) != len(DateLayout) {
		return time.Time{}, false
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate renders t in the layout ParseDate accepts.
func FormatDate(t time.Time) string {
	return t.UTC().Format(DateLayout)
}
