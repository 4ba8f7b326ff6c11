package convert

import (
	"fmt"
	"time"

	"github3/pkg/idl"
)

// Payload builds the body of an update request from the writeable attributes
// of model that are present. Null fields are sent as JSON null so that the
// server clears them; nested attributes are never sent.
func Payload(schema *idl.Schema, model idl.Model) (map[string]any, error) {
	if !schema.Bound() {
		return nil, fmt.Errorf("payload: %w", idl.ErrMissingSchema)
	}
	if model == nil {
		return nil, fmt.Errorf("payload %s: nil model", schema.Name())
	}

	fields := model.Fields()
	body := make(map[string]any)
	for _, attr := range schema.Attributes() {
		if !schema.Writeable(attr.Name) || attr.Kind.Nested() {
			continue
		}
		field, ok := fields[attr.Name]
		if !ok {
			return nil, fmt.Errorf("payload %s: attribute %q: %w", schema.Name(), attr.Name, idl.ErrUnboundAttribute)
		}
		v, present := field.Interface()
		if !present {
			continue
		}
		if t, isTime := v.(time.Time); isTime {
			v = FormatDate(t)
		}
		body[attr.Name] = v
	}
	return body, nil
}

// Document renders the present attributes of model as a JSON-ready map,
// recursing into nested objects and collections. Null fields render as nil.
// Keyed collections render as objects, ordered ones as arrays.
func Document(schema *idl.Schema, model idl.Model) (map[string]any, error) {
	if !schema.Bound() {
		return nil, fmt.Errorf("document: %w", idl.ErrMissingSchema)
	}
	if model == nil {
		return nil, nil
	}

	fields := model.Fields()
	doc := make(map[string]any, len(fields))
	for _, attr := range schema.Attributes() {
		field, ok := fields[attr.Name]
		if !ok {
			return nil, fmt.Errorf("document %s: attribute %q: %w", schema.Name(), attr.Name, idl.ErrUnboundAttribute)
		}
		v, present := field.Interface()
		if !present {
			continue
		}
		if v == nil {
			doc[attr.Name] = nil
			continue
		}

		switch attr.Kind {
		case idl.KindDate:
			if t, ok := v.(time.Time); ok {
				v = FormatDate(t)
			}
		case idl.KindObject:
			nested, ok := v.(idl.Model)
			if !ok {
				continue
			}
			sub, err := Document(attr.Schema, nested)
			if err != nil {
				return nil, err
			}
			v = sub
		case idl.KindCollection:
			coll, ok := field.(interface {
				Models() ([]string, []idl.Model)
			})
			if !ok {
				continue
			}
			rendered, err := collectionDocument(attr.Schema, coll.Models)
			if err != nil {
				return nil, err
			}
			v = rendered
		}
		doc[attr.Name] = v
	}
	return doc, nil
}

func collectionDocument(schema *idl.Schema, models func() ([]string, []idl.Model)) (any, error) {
	keys, items := models()
	docs := make([]map[string]any, 0, len(items))
	for _, m := range items {
		d, err := Document(schema, m)
		if err != nil {
			return nil, err
		}
		docs = append(docs, d)
	}
	if keys == nil {
		return docs, nil
	}
	keyed := make(map[string]any, len(keys))
	for i, k := range keys {
		keyed[k] = docs[i]
	}
	return keyed, nil
}
