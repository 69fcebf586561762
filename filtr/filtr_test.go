package filtr

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/erraggy/jolt/internal/testutil"
	"github.com/erraggy/jolt/jolterrors"
)

func TestTransform(t *testing.T) {
	tests := []struct {
		name  string
		spec  string
		input string
		want  string
	}{
		{
			name:  "remove array elements by field",
			spec:  `{"items": {"*": {"@": {"status": "^deleted$"}}}}`,
			input: `{"items": [{"status": "ok"}, {"status": "deleted"}, {"status": "deleted"}, {"status": "new"}]}`,
			want:  `{"items": [{"status": "ok"}, {"status": "new"}]}`,
		},
		{
			name:  "remove object members",
			spec:  `{"users": {"*": {"@": {"active": false}}}}`,
			input: `{"users": {"a": {"active": true}, "b": {"active": false}, "c": {}}}`,
			want:  `{"users": {"a": {"active": true}, "c": {}}}`,
		},
		{
			name:  "regex is unanchored",
			spec:  `{"tags": {"*": {"@": {"x": "tmp"}}}}`,
			input: `{"tags": ["a-tmp-b", "keep", 5]}`,
			want:  `{"tags": ["keep", 5]}`,
		},
		{
			name:  "regex ignores non strings",
			spec:  `{"*": {"@": {"v": "1"}}}`,
			input: `{"a": {"v": 1}, "b": {"v": "1"}}`,
			want:  `{"a": {"v": 1}}`,
		},
		{
			name:  "exact value filter is type strict",
			spec:  `{"*": {"@": {"v": 1}}}`,
			input: `{"a": {"v": 1}, "b": {"v": 1.0}, "c": {"v": "1"}}`,
			want:  `{"b": {"v": 1.0}, "c": {"v": "1"}}`,
		},
		{
			name:  "array filters by index",
			spec:  `{"rows": {"*": {"@": {"0": "^#"}}}}`,
			input: `{"rows": [["#comment", 1], ["data", 2], []]}`,
			want:  `{"rows": [["data", 2], []]}`,
		},
		{
			name:  "literal child",
			spec:  `{"a": {"@": {"drop": true}}, "b": {"@": {"drop": true}}}`,
			input: `{"a": {"drop": true}, "b": {"drop": false}}`,
			want:  `{"b": {"drop": false}}`,
		},
		{
			name:  "nested walk",
			spec:  `{"orders": {"*": {"lines": {"*": {"@": {"qty": 0}}}}}}`,
			input: `{"orders": [{"lines": [{"qty": 0}, {"qty": 2}]}, {"lines": [{"qty": 0}]}]}`,
			want:  `{"orders": [{"lines": [{"qty": 2}]}, {"lines": []}]}`,
		},
		{
			name:  "any filter matches",
			spec:  `{"*": {"@": {"a": 1, "b": 2}}}`,
			input: `{"x": {"a": 0, "b": 2}, "y": {"a": 0, "b": 0}}`,
			want:  `{"y": {"a": 0, "b": 0}}`,
		},
		{
			name:  "missing keys are ignored",
			spec:  `{"missing": {"@": {"a": 1}}}`,
			input: `{"a": 1}`,
			want:  `{"a": 1}`,
		},
		{
			name:  "root removed",
			spec:  `{"@": {"kind": "^junk$"}}`,
			input: `{"kind": "junk"}`,
			want:  `null`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f, err := New(testutil.Object(t, tt.spec))
			require.NoError(t, err)
			testutil.AssertJSON(t, tt.want, f.Transform(testutil.Parse(t, tt.input)))
		})
	}
}

func TestTransformInPlace(t *testing.T) {
	f, err := New(testutil.Object(t, `{"tags": {"*": {"@": {"x": "^new$"}}}}`))
	require.NoError(t, err)

	input := testutil.NewRatingDocument()
	out := f.Transform(input)
	assert.Same(t, input, out)
	tags, _ := input.Get("tags")
	testutil.AssertJSON(t, `["sale"]`, tags)
}

func TestNewErrors(t *testing.T) {
	tests := []struct {
		name string
		spec string
		path string
	}{
		{"bad regex", `{"a": {"@": {"f": "("}}}`, "a.@.f"},
		{"filters not object", `{"a": {"@": "x"}}`, "a.@"},
		{"leaf value", `{"a": "x"}`, "a"},
		{"empty object", `{"a": {}}`, "a"},
		{"hash key", `{"#x": {"@": {}}}`, "#x"},
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

func TestTransform_MatchTimeout(t *testing.T) {
	f, err := New(testutil.Object(t, `{"items": {"*": {"@": {"x": "^(a+)+$"}}}}`), WithMatchTimeout(50*time.Millisecond))
	require.NoError(t, err)

	input := testutil.Object(t, `{"items": [{"x": "`+strings.Repeat("a", 40)+`b"}, {"x": "aaa"}]}`)
	start := time.Now()
	out := f.Transform(input)
	assert.Less(t, time.Since(start), 10*time.Second)

	// The runaway match counts as no match, so only the second item goes.
	testutil.AssertJSON(t, `{"items": [{"x": "`+strings.Repeat("a", 40)+`b"}]}`, out)
}

func TestWithMatchTimeout_Invalid(t *testing.T) {
	_, err := New(testutil.Object(t, `{"a": {"@": {"x": "y"}}}`), WithMatchTimeout(0))
	assert.ErrorIs(t, err, jolterrors.ErrConfig)
}
