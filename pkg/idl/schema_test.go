package idl

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testPlan struct {
	Name  Opt[string]
	Space Opt[int64]
}

func (p *testPlan) Fields() map[string]Field {
	return map[string]Field{"name": &p.Name, "space": &p.Space}
}

type testUser struct {
	Login     Opt[string]
	ID        Opt[int64]
	Hireable  Opt[bool]
	CreatedAt Opt[time.Time]
	Plan      Opt[*testPlan]
	Plans     Collection[*testPlan]
}

func (u *testUser) Fields() map[string]Field {
	return map[string]Field{
		"login":      &u.Login,
		"id":         &u.ID,
		"hireable":   &u.Hireable,
		"created_at": &u.CreatedAt,
		"plan":       &u.Plan,
		"plans":      &u.Plans,
	}
}

var testPlanSchema = MustDefine("plan", func() Model { return &testPlan{} }, Groups{
	Strings:  []string{"name"},
	Integers: []string{"space"},
})

func TestDefine(t *testing.T) {
	s, err := Define("user", func() Model { return &testUser{} }, Groups{
		Strings:     []string{"login"},
		Integers:    []string{"id"},
		Booleans:    []string{"hireable"},
		Dates:       []string{"created_at"},
		Objects:     map[string]*Schema{"plan": testPlanSchema},
		Collections: map[string]*Schema{"plans": testPlanSchema},
		Writeable:   []string{"hireable"},
	})
	require.NoError(t, err)

	assert.Equal(t, "user", s.Name())
	assert.Equal(t, 6, s.Len())
	assert.True(t, s.Bound())
	assert.True(t, s.Writeable("hireable"))
	assert.False(t, s.Writeable("login"))

	var names []string
	for _, a := range s.Attributes() {
		names = append(names, a.Name)
	}
	assert.Equal(t, []string{"login", "id", "created_at", "hireable", "plan", "plans"}, names)

	a, ok := s.Attribute("plan")
	require.True(t, ok)
	assert.Equal(t, KindObject, a.Kind)
	assert.Same(t, testPlanSchema, a.Schema)

	_, ok = s.Attribute("missing")
	assert.False(t, ok)
}

func TestDefineErrors(t *testing.T) {
	tests := []struct {
		name     string
		newModel func() Model
		groups   Groups
		wantErr  error
	}{
		{
			name:    "same name under two kinds",
			groups:  Groups{Strings: []string{"id"}, Integers: []string{"id"}},
			wantErr: ErrSchemaConflict,
		},
		{
			name:    "nested attribute without schema",
			groups:  Groups{Objects: map[string]*Schema{"plan": nil}},
			wantErr: ErrMissingSchema,
		},
		{
			name:    "writeable attribute not declared",
			groups:  Groups{Strings: []string{"login"}, Writeable: []string{"email"}},
			wantErr: ErrUnknownAttribute,
		},
		{
			name:     "model does not expose attribute",
			newModel: func() Model { return &testPlan{} },
			groups:   Groups{Strings: []string{"name", "color"}},
			wantErr:  ErrUnboundAttribute,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Define("test", tt.newModel, tt.groups)
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestDefineCollapsesSameKindDuplicates(t *testing.T) {
	s, err := Define("plan", nil, Groups{Strings: []string{"name", "name"}})
	require.NoError(t, err)
	assert.Equal(t, 1, s.Len())
	assert.False(t, s.Bound())
	assert.Nil(t, s.New())
}

func TestExtend(t *testing.T) {
	base := MustDefine("user", nil, Groups{
		Strings:  []string{"login"},
		Integers: []string{"id"},
	})

	ext, err := Extend(base, "auth_user", nil, Groups{
		Integers: []string{"id", "disk_usage"},
		Objects:  map[string]*Schema{"plan": testPlanSchema},
	})
	require.NoError(t, err)
	assert.Equal(t, 4, ext.Len())
	assert.Equal(t, 2, base.Len(), "base schema must stay untouched")

	_, err = Extend(base, "broken", nil, Groups{Booleans: []string{"login"}})
	assert.ErrorIs(t, err, ErrSchemaConflict)

	_, err = Extend(nil, "orphan", nil, Groups{})
	assert.ErrorIs(t, err, ErrMissingSchema)
}

func TestMustDefinePanics(t *testing.T) {
	assert.Panics(t, func() {
		MustDefine("bad", nil, Groups{Strings: []string{"x"}, Dates: []string{"x"}})
	})
}

func TestOpt(t *testing.T) {
	var o Opt[string]
	assert.True(t, o.IsAbsent())
	assert.Equal(t, "fallback", o.Or("fallback"))

	v, ok := o.Interface()
	assert.False(t, ok)
	assert.Nil(t, v)

	assert.False(t, o.Assign(42), "wrong type must be rejected")
	assert.True(t, o.IsAbsent())

	assert.True(t, o.Assign("octocat"))
	got, ok := o.Get()
	assert.True(t, ok)
	assert.Equal(t, "octocat", got)

	o.SetNull()
	assert.True(t, o.IsNull())
	v, ok = o.Interface()
	assert.True(t, ok)
	assert.Nil(t, v)

	o.Reset()
	assert.Equal(t, Absent, o.State())
}

func TestOptMarshalJSON(t *testing.T) {
	payload := struct {
		Login Opt[string] `json:"login"`
		ID    Opt[int64]  `json:"id"`
	}{Login: Some("octocat")}

	data, err := json.Marshal(payload)
	require.NoError(t, err)
	assert.JSONEq(t, `{"login":"octocat","id":null}`, string(data))
}

func TestCollectionAssign(t *testing.T) {
	a, b := &testPlan{Name: Some("a")}, &testPlan{Name: Some("b")}

	var ordered Collection[*testPlan]
	require.True(t, ordered.Assign([]Model{a, b}))
	assert.False(t, ordered.IsKeyed())
	assert.Equal(t, []*testPlan{a, b}, ordered.Items())

	var keyed Collection[*testPlan]
	require.True(t, keyed.Assign(map[string]Model{"y": b, "x": a}))
	assert.True(t, keyed.IsKeyed())
	assert.Equal(t, []string{"x", "y"}, keyed.Keys())
	assert.Equal(t, []*testPlan{a, b}, keyed.Items())
	got, ok := keyed.Lookup("y")
	assert.True(t, ok)
	assert.Same(t, b, got)

	var wrong Collection[*testPlan]
	assert.False(t, wrong.Assign([]Model{&testUser{}}))
	assert.False(t, wrong.IsSet())
	assert.False(t, wrong.Assign("scalar"))
}

func TestCollectionMarshalJSON(t *testing.T) {
	keyed := Keyed(map[string]*testPlan{"free": {Name: Some("free")}})
	data, err := json.Marshal(keyed)
	require.NoError(t, err)
	assert.JSONEq(t, `{"free":{"Name":"free","Space":null}}`, string(data))

	var empty Collection[*testPlan]
	data, err = json.Marshal(empty)
	require.NoError(t, err)
	assert.Equal(t, "null", string(data))
}
