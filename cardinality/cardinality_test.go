package cardinality

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/jolt/internal/testutil"
	"github.com/erraggy/jolt/jolterrors"
	"github.com/erraggy/jolt/node"
)

func TestTransform(t *testing.T) {
	tests := []struct {
		name  string
		spec  string
		input string
		want  string
	}{
		{
			name:  "one and many",
			spec:  `{"photos": "MANY", "review": {"rating": "ONE"}}`,
			input: `{"photos": "a.jpg", "review": {"rating": [5, 4]}}`,
			want:  `{"photos": ["a.jpg"], "review": {"rating": 5}}`,
		},
		{
			name:  "many keeps arrays",
			spec:  `{"a": "MANY"}`,
			input: `{"a": [1, 2]}`,
			want:  `{"a": [1, 2]}`,
		},
		{
			name:  "many turns null into an empty array",
			spec:  `{"a": "MANY"}`,
			input: `{"a": null}`,
			want:  `{"a": []}`,
		},
		{
			name:  "one keeps scalars",
			spec:  `{"a": "ONE"}`,
			input: `{"a": "x"}`,
			want:  `{"a": "x"}`,
		},
		{
			name:  "one on an empty array stores null",
			spec:  `{"a": "ONE"}`,
			input: `{"a": []}`,
			want:  `{"a": null}`,
		},
		{
			name:  "missing keys are untouched",
			spec:  `{"a": "MANY"}`,
			input: `{"b": 1}`,
			want:  `{"b": 1}`,
		},
		{
			name:  "at applies before children",
			spec:  `{"reviews": {"@": "MANY", "*": {"rating": "ONE"}}}`,
			input: `{"reviews": {"rating": [5, 4]}}`,
			want:  `{"reviews": [{"rating": 5}]}`,
		},
		{
			name:  "wildcard over array elements",
			spec:  `{"items": {"*": {"tags": "MANY"}}}`,
			input: `{"items": [{"tags": "a"}, {"tags": ["b"]}]}`,
			want:  `{"items": [{"tags": ["a"]}, {"tags": ["b"]}]}`,
		},
		{
			name:  "array index literal",
			spec:  `{"items": {"1": "ONE"}}`,
			input: `{"items": [[1, 2], [3, 4]]}`,
			want:  `{"items": [[1, 2], 3]}`,
		},
		{
			name:  "literal wins over wildcard",
			spec:  `{"a": "ONE", "*": "MANY"}`,
			input: `{"a": [1, 2], "b": 3}`,
			want:  `{"a": 1, "b": [3]}`,
		},
		{
			name:  "root at",
			spec:  `{"@": "MANY"}`,
			input: `{"a": 1}`,
			want:  `[{"a": 1}]`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(testutil.Object(t, tt.spec))
			require.NoError(t, err)
			testutil.AssertJSON(t, tt.want, c.Transform(testutil.Parse(t, tt.input)))
		})
	}
}

func TestTransformInPlace(t *testing.T) {
	c, err := New(testutil.Object(t, `{"tags": "ONE"}`))
	require.NoError(t, err)

	input := testutil.NewRatingDocument()
	out := c.Transform(input)
	assert.Same(t, input, out)
	tags, _ := input.Get("tags")
	assert.Equal(t, "new", tags)
}

func TestOneUndoesMany(t *testing.T) {
	many, err := New(testutil.Object(t, `{"v": "MANY"}`))
	require.NoError(t, err)
	one, err := New(testutil.Object(t, `{"v": "ONE"}`))
	require.NoError(t, err)

	for _, x := range []any{"s", int64(1), 2.5, true, node.ObjectOf("k", "v")} {
		t.Run(node.KindOf(x).String(), func(t *testing.T) {
			out := one.Transform(many.Transform(node.ObjectOf("v", node.Clone(x))))
			v, _ := out.(*node.Object).Get("v")
			assert.True(t, node.Equal(x, v), "ONE(MANY(x)) should be x, got %s", node.String(v))
		})
	}
}

func TestManyIsIdempotent(t *testing.T) {
	many, err := New(testutil.Object(t, `{"v": "MANY"}`))
	require.NoError(t, err)

	once := many.Transform(testutil.Parse(t, `{"v": 1}`))
	twice := many.Transform(node.Clone(once))
	assert.True(t, node.Equal(once, twice))
}

func TestParseRelationship(t *testing.T) {
	r, err := ParseRelationship("MANY")
	require.NoError(t, err)
	assert.Equal(t, Many, r)
	assert.Equal(t, "ONE", One.String())
	assert.Equal(t, "Relationship(7)", Relationship(7).String())

	_, err = ParseRelationship("many")
	assert.Error(t, err, "relationships are case sensitive")
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name string
		spec string
		path string
	}{
		{"unknown relationship", `{"a": "SOME"}`, "a"},
		{"number value", `{"a": {"b": 5}}`, "a.b"},
		{"empty object", `{"a": {}}`, "a"},
		{"at with children", `{"a": {"@": {"x": "ONE"}}}`, "a.@"},
		{"dollar key", `{"$": "ONE"}`, "$"},
		{"hash key", `{"a": {"#x": "ONE"}}`, "a.#x"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := New(testutil.Object(t, tt.spec))
			require.Error(t, err)

			var se *jolterrors.SpecError
			require.True(t, errors.As(err, &se))
			assert.Equal(t, tt.path, se.Path)
		})
	}

	_, err := New(nil)
	assert.ErrorIs(t, err, jolterrors.ErrSpec)
}
