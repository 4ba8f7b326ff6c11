package idl

import (
	"errors"
	"fmt"
	"sort"
)

var (
	// ErrSchemaConflict is returned when one attribute name is declared under two kinds.
	ErrSchemaConflict = errors.New("schema conflict")
	// ErrMissingSchema is returned when a schema or its bound model is required but absent.
	ErrMissingSchema = errors.New("missing schema")
	// ErrUnknownAttribute is returned when a writeable name is not a declared attribute.
	ErrUnknownAttribute = errors.New("unknown attribute")
	// ErrUnboundAttribute is returned when the bound model does not expose a declared attribute.
	ErrUnboundAttribute = errors.New("unbound attribute")
)

// Kind is the decoding kind of a schema attribute.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindBoolean
	KindDate
	KindObject
	KindCollection
)

// String returns the kind name
func (k Kind) String() string {
	switch k {
	case KindString:
		return "string"
	case KindInteger:
		return "integer"
	case KindBoolean:
		return "boolean"
	case KindDate:
		return "date"
	case KindObject:
		return "object"
	case KindCollection:
		return "collection"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Nested reports whether attributes of this kind reference a sub-schema.
func (k Kind) Nested() bool {
	return k == KindObject || k == KindCollection
}

// Attribute is one declared schema entry.
type Attribute struct {
	Name   string
	Kind   Kind
	Schema *Schema // set for KindObject and KindCollection
}

// Groups lists attribute names by kind, the way a resource declares them.
type Groups struct {
	Strings     []string
	Integers    []string
	Booleans    []string
	Dates       []string
	Objects     map[string]*Schema
	Collections map[string]*Schema
	// Writeable names the attributes that may be sent back in update payloads.
	Writeable []string
}

// Schema is the immutable description of one resource kind.
type Schema struct {
	name      string
	attrs     []Attribute
	index     map[string]int
	writeable map[string]bool
	newModel  func() Model
}

// Define builds a schema from kinded attribute groups. newModel may be nil, in
// which case the schema describes a shape but cannot be decoded into.
func Define(name string, newModel func() Model, g Groups) (*Schema, error) {
	s := &Schema{
		name:      name,
		index:     make(map[string]int),
		writeable: make(map[string]bool),
		newModel:  newModel,
	}
	if err := s.add(g); err != nil {
		return nil, err
	}
	if err := s.bind(); err != nil {
		return nil, err
	}
	return s, nil
}

// MustDefine is like Define but panics on error. Intended for package-level schema variables.
func MustDefine(name string, newModel func() Model, g Groups) *Schema {
	s, err := Define(name, newModel, g)
	if err != nil {
		panic(err)
	}
	return s
}

// Extend derives a new schema from base. Attributes in g replace same-named
// attributes of the same kind; redeclaring a base attribute under another
// kind is a conflict. Writeable names are not inherited.
func Extend(base *Schema, name string, newModel func() Model, g Groups) (*Schema, error) {
	if base == nil {
		return nil, fmt.Errorf("extend %s: %w", name, ErrMissingSchema)
	}
	s := &Schema{
		name:      name,
		attrs:     append([]Attribute(nil), base.attrs...),
		index:     make(map[string]int, len(base.index)),
		writeable: make(map[string]bool),
		newModel:  newModel,
	}
	for k, v := range base.index {
		s.index[k] = v
	}
	if err := s.add(g); err != nil {
		return nil, err
	}
	if err := s.bind(); err != nil {
		return nil, err
	}
	return s, nil
}

// MustExtend is like Extend but panics on error.
func MustExtend(base *Schema, name string, newModel func() Model, g Groups) *Schema {
	s, err := Extend(base, name, newModel, g)
	if err != nil {
		panic(err)
	}
	return s
}

func (s *Schema) add(g Groups) error {
	for _, n := range g.Strings {
		if err := s.put(Attribute{Name: n, Kind: KindString}); err != nil {
			return err
		}
	}
	for _, n := range g.Integers {
		if err := s.put(Attribute{Name: n, Kind: KindInteger}); err != nil {
			return err
		}
	}
	for _, n := range g.Dates {
		if err := s.put(Attribute{Name: n, Kind: KindDate}); err != nil {
			return err
		}
	}
	for _, n := range g.Booleans {
		if err := s.put(Attribute{Name: n, Kind: KindBoolean}); err != nil {
			return err
		}
	}
	for _, n := range sortedKeys(g.Objects) {
		if err := s.put(Attribute{Name: n, Kind: KindObject, Schema: g.Objects[n]}); err != nil {
			return err
		}
	}
	for _, n := range sortedKeys(g.Collections) {
		if err := s.put(Attribute{Name: n, Kind: KindCollection, Schema: g.Collections[n]}); err != nil {
			return err
		}
	}
	for _, n := range g.Writeable {
		if _, ok := s.index[n]; !ok {
			return fmt.Errorf("schema %s: writeable %q: %w", s.name, n, ErrUnknownAttribute)
		}
		s.writeable[n] = true
	}
	return nil
}

func (s *Schema) put(a Attribute) error {
	if a.Name == "" {
		return fmt.Errorf("schema %s: empty attribute name", s.name)
	}
	if a.Kind.Nested() && a.Schema == nil {
		return fmt.Errorf("schema %s: attribute %q: %w", s.name, a.Name, ErrMissingSchema)
	}
	if i, ok := s.index[a.Name]; ok {
		if s.attrs[i].Kind != a.Kind {
			return fmt.Errorf("schema %s: attribute %q declared as %s and %s: %w",
				s.name, a.Name, s.attrs[i].Kind, a.Kind, ErrSchemaConflict)
		}
		s.attrs[i] = a
		return nil
	}
	s.index[a.Name] = len(s.attrs)
	s.attrs = append(s.attrs, a)
	return nil
}

// bind checks that the model exposes a field for every attribute.
func (s *Schema) bind() error {
	if s.newModel == nil {
		return nil
	}
	m := s.newModel()
	if m == nil {
		return fmt.Errorf("schema %s: model constructor returned nil: %w", s.name, ErrMissingSchema)
	}
	fields := m.Fields()
	for _, a := range s.attrs {
		if _, ok := fields[a.Name]; !ok {
			return fmt.Errorf("schema %s: attribute %q: %w", s.name, a.Name, ErrUnboundAttribute)
		}
	}
	return nil
}

// Name returns the schema name
func (s *Schema) Name() string { return s.name }

// Attributes returns the attributes in declaration order.
func (s *Schema) Attributes() []Attribute {
	return append([]Attribute(nil), s.attrs...)
}

// Attribute looks up one attribute by name.
func (s *Schema) Attribute(name string) (Attribute, bool) {
	i, ok := s.index[name]
	if !ok {
		return Attribute{}, false
	}
	return s.attrs[i], true
}

// Len returns the number of attributes.
func (s *Schema) Len() int { return len(s.attrs) }

// Writeable reports whether name may be sent in update payloads.
func (s *Schema) Writeable(name string) bool { return s.writeable[name] }

// Bound reports whether the schema can construct model instances.
func (s *Schema) Bound() bool { return s != nil && s.newModel != nil }

// New returns a fresh, empty model instance, or nil when the schema is unbound.
func (s *Schema) New() Model {
	if !s.Bound() {
		return nil
	}
	return s.newModel()
}

func sortedKeys(m map[string]*Schema) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
