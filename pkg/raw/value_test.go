package raw

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseShapes(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  Shape
	}{
		{name: "null", input: `null`, want: ShapeNull},
		{name: "empty body", input: ``, want: ShapeNull},
		{name: "string", input: `"octocat"`, want: ShapeString},
		{name: "number", input: `42`, want: ShapeNumber},
		{name: "bool", input: `true`, want: ShapeBool},
		{name: "mapping", input: `{"login":"octocat"}`, want: ShapeMapping},
		{name: "sequence", input: `[{"id":1},{"id":2}]`, want: ShapeSequence},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := Parse([]byte(tt.input))
			require.NoError(t, err)
			assert.Equal(t, tt.want, v.Shape())
		})
	}
}

func TestParseInvalid(t *testing.T) {
	_, err := Parse([]byte(`{"login":`))
	assert.Error(t, err)

	_, err = Parse([]byte(`{} {}`))
	assert.Error(t, err)
}

func TestParseKeepsNumberText(t *testing.T) {
	v, err := Parse([]byte(`{"id": 9007199254740993, "ratio": 1.5}`))
	require.NoError(t, err)

	rec, ok := v.Record()
	require.True(t, ok)

	id, _ := rec.Get("id")
	n, ok := id.Num()
	require.True(t, ok)
	assert.Equal(t, json.Number("9007199254740993"), n)

	ratio, _ := rec.Get("ratio")
	n, _ = ratio.Num()
	assert.Equal(t, json.Number("1.5"), n)
}

func TestRecordAccessors(t *testing.T) {
	rec := MustRecord(map[string]any{
		"login":   "octocat",
		"company": nil,
		"plan":    map[string]any{"name": "free"},
		"orgs":    []any{"github"},
	})

	assert.Equal(t, 4, rec.Len())
	assert.Equal(t, []string{"company", "login", "orgs", "plan"}, rec.Keys())
	assert.True(t, rec.Has("company"))
	assert.False(t, rec.Has("email"))

	company, ok := rec.Get("company")
	require.True(t, ok)
	assert.True(t, company.IsNull())

	login, _ := rec.Get("login")
	s, ok := login.Str()
	assert.True(t, ok)
	assert.Equal(t, "octocat", s)
	_, ok = login.Num()
	assert.False(t, ok)

	orgs, _ := rec.Get("orgs")
	items, ok := orgs.Items()
	require.True(t, ok)
	assert.Len(t, items, 1)

	assert.Equal(t, map[string]any{
		"login":   "octocat",
		"company": nil,
		"plan":    map[string]any{"name": "free"},
		"orgs":    []any{"github"},
	}, rec.Interface())
}

func TestFromInterfaceRejectsUnknownTypes(t *testing.T) {
	_, err := FromInterface(map[string]any{"ch": make(chan int)})
	assert.Error(t, err)
	assert.Panics(t, func() { MustRecord(map[string]any{"x": struct{}{}}) })
}
