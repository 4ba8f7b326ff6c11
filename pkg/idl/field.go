package idl

import (
	"encoding/json"
	"sort"
)

// Model is implemented by every decodable resource type. Fields returns the
// presence-tracking field for each schema attribute, keyed by attribute name.
type Model interface {
	Fields() map[string]Field
}

// Field is one attribute slot of a model.
type Field interface {
	// Assign stores v and reports whether v had the field's type.
	Assign(v any) bool
	// SetNull marks the field as present with a JSON null value.
	SetNull()
	// Reset returns the field to absent.
	Reset()
	// State reports absent, null or set.
	State() Presence
	// Interface returns the stored value. ok is false when the field is absent;
	// a null field returns (nil, true).
	Interface() (v any, ok bool)
}

// Presence is the three-way state of a field.
type Presence uint8

const (
	Absent Presence = iota
	Null
	Set
)

// String returns the presence name
func (p Presence) String() string {
	switch p {
	case Null:
		return "null"
	case Set:
		return "set"
	default:
		return "absent"
	}
}

// Opt holds an optional scalar or nested model value.
type Opt[T any] struct {
	v     T
	state Presence
}

// Some returns a set Opt
func Some[T any](v T) Opt[T] {
	return Opt[T]{v: v, state: Set}
}

// NullOf returns an Opt that is present with a JSON null value.
func NullOf[T any]() Opt[T] {
	return Opt[T]{state: Null}
}

// Get returns the value and whether it is set.
func (o Opt[T]) Get() (T, bool) {
	return o.v, o.state == Set
}

// Value returns the value, or the zero value when the field is not set.
func (o Opt[T]) Value() T {
	return o.v
}

// Or returns the value when set, def otherwise.
func (o Opt[T]) Or(def T) T {
	if o.state == Set {
		return o.v
	}
	return def
}

// IsSet reports whether a non-null value is held.
func (o Opt[T]) IsSet() bool { return o.state == Set }

// IsNull reports whether the value was present as JSON null.
func (o Opt[T]) IsNull() bool { return o.state == Null }

// IsAbsent reports whether the value was missing from the source.
func (o Opt[T]) IsAbsent() bool { return o.state == Absent }

// State implements Field.
func (o *Opt[T]) State() Presence { return o.state }

// Assign implements Field.
func (o *Opt[T]) Assign(v any) bool {
	t, ok := v.(T)
	if !ok {
		return false
	}
	o.v = t
	o.state = Set
	return true
}

// SetNull implements Field.
func (o *Opt[T]) SetNull() {
	var zero T
	o.v = zero
	o.state = Null
}

// Reset implements Field.
func (o *Opt[T]) Reset() {
	var zero T
	o.v = zero
	o.state = Absent
}

// Interface implements Field.
func (o *Opt[T]) Interface() (any, bool) {
	switch o.state {
	case Set:
		return o.v, true
	case Null:
		return nil, true
	default:
		return nil, false
	}
}

// MarshalJSON encodes a set value as itself and anything else as null.
func (o Opt[T]) MarshalJSON() ([]byte, error) {
	if o.state != Set {
		return []byte("null"), nil
	}
	return json.Marshal(o.v)
}

// Collection holds nested models decoded either from a JSON array (ordered)
// or from a JSON object (keyed).
type Collection[T Model] struct {
	items []T
	keys  []string
	keyed map[string]T
	state Presence
}

// List returns an ordered collection
func List[T Model](items ...T) Collection[T] {
	return Collection[T]{items: items, state: Set}
}

// Keyed returns a keyed collection
func Keyed[T Model](m map[string]T) Collection[T] {
	c := Collection[T]{keyed: m, state: Set}
	c.keys = make([]string, 0, len(m))
	for k := range m {
		c.keys = append(c.keys, k)
	}
	sort.Strings(c.keys)
	return c
}

// IsSet reports whether the collection was decoded.
func (c Collection[T]) IsSet() bool { return c.state == Set }

// IsKeyed reports whether the collection came from a JSON object.
func (c Collection[T]) IsKeyed() bool { return c.keyed != nil }

// Len returns the number of items
func (c Collection[T]) Len() int {
	if c.keyed != nil {
		return len(c.keyed)
	}
	return len(c.items)
}

// Items returns the items. Keyed collections are returned sorted by key.
func (c Collection[T]) Items() []T {
	if c.keyed == nil {
		return c.items
	}
	out := make([]T, 0, len(c.keyed))
	for _, k := range c.keys {
		out = append(out, c.keyed[k])
	}
	return out
}

// Keys returns the sorted keys of a keyed collection, nil otherwise.
func (c Collection[T]) Keys() []string { return c.keys }

// Lookup returns the item stored under key in a keyed collection.
func (c Collection[T]) Lookup(key string) (T, bool) {
	v, ok := c.keyed[key]
	return v, ok
}

// Models returns the items as plain models with their keys. keys is nil for
// ordered collections.
func (c *Collection[T]) Models() (keys []string, models []Model) {
	for _, item := range c.Items() {
		models = append(models, item)
	}
	return c.keys, models
}

// State implements Field.
func (c *Collection[T]) State() Presence { return c.state }

// Assign implements Field. It accepts []Model or map[string]Model whose
// elements all have type T.
func (c *Collection[T]) Assign(v any) bool {
	switch x := v.(type) {
	case []Model:
		items := make([]T, 0, len(x))
		for _, m := range x {
			t, ok := m.(T)
			if !ok {
				return false
			}
			items = append(items, t)
		}
		*c = List(items...)
		return true
	case map[string]Model:
		keyed := make(map[string]T, len(x))
		for k, m := range x {
			t, ok := m.(T)
			if !ok {
				return false
			}
			keyed[k] = t
		}
		*c = Keyed(keyed)
		return true
	case []T:
		*c = List(x...)
		return true
	case map[string]T:
		*c = Keyed(x)
		return true
	}
	return false
}

// SetNull implements Field. A null collection is stored as absent.
func (c *Collection[T]) SetNull() { c.Reset() }

// Reset implements Field.
func (c *Collection[T]) Reset() { *c = Collection[T]{} }

// Interface implements Field.
func (c *Collection[T]) Interface() (any, bool) {
	if c.state != Set {
		return nil, false
	}
	if c.keyed != nil {
		return c.keyed, true
	}
	return c.items, true
}

// MarshalJSON encodes keyed collections as objects and ordered ones as arrays.
func (c Collection[T]) MarshalJSON() ([]byte, error) {
	switch {
	case c.state != Set:
		return []byte("null"), nil
	case c.keyed != nil:
		return json.Marshal(c.keyed)
	default:
		return json.Marshal(c.items)
	}
}
