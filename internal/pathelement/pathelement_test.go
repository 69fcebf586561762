package pathelement

import (
	"errors"
	"testing"

	"github.com/erraggy/jolt/internal/traversr"
	"github.com/erraggy/jolt/jolterrors"
	"github.com/erraggy/jolt/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func parseOne(t *testing.T, key string) Matcher {
	t.Helper()
	ms, err := ParseKey(key)
	require.NoError(t, err)
	require.Len(t, ms, 1)
	return ms[0]
}

func TestParseKeyKinds(t *testing.T) {
	tests := []struct {
		key  string
		want any
	}{
		{"@", &At{}},
		{"*", &StarAll{}},
		{"[*]", &StarAll{}},
		{"[3]", &ArrayIndex{}},
		{"[&1]", &Reference{}},
		{"@(1,a.b)", &Transpose{}},
		{"@a", &Transpose{}},
		{"$", &Dollar{}},
		{"$(1,2)", &Dollar{}},
		{"&1-x", &Reference{}},
		{"rating-*", &Star{}},
		{"#yes", &Hash{}},
		{"plain", &Literal{}},
		{`\@escaped`, &Literal{}},
		{`a\*b`, &Literal{}},
	}
	for _, tt := range tests {
		t.Run(tt.key, func(t *testing.T) {
			assert.IsType(t, tt.want, parseOne(t, tt.key))
		})
	}
}

func TestParseKeyErrors(t *testing.T) {
	for _, key := range []string{"a@b", "&1*", "[x]", "[1][2]", "@(1,a", "@(1,@b)", "@a*", "$x", "a$", "&(1", "&(a)"} {
		t.Run(key, func(t *testing.T) {
			_, err := ParseKey(key)
			require.Error(t, err)
			assert.True(t, errors.Is(err, jolterrors.ErrSpec))
		})
	}
}

func TestParseKeyAlternatives(t *testing.T) {
	ms, err := ParseKey(`a|b*|c\|d`)
	require.NoError(t, err)
	require.Len(t, ms, 3)
	assert.Equal(t, "a", ms[0].Canonical())
	assert.Equal(t, "b*", ms[1].Canonical())
	assert.Equal(t, "c|d", ms[2].(*Literal).Key())
}

func TestEscapedLiteral(t *testing.T) {
	m := parseOne(t, `\@type`)
	assert.NotNil(t, m.Match("@type", nil))
	assert.Nil(t, m.Match(`\@type`, nil))
}

func TestStarMatch(t *testing.T) {
	tests := []struct {
		pattern  string
		key      string
		captures []string
	}{
		{"rating-*", "rating-primary", []string{"rating-primary", "primary"}},
		{"*-suffix", "a-suffix", []string{"a-suffix", "a"}},
		{"a*c", "abbc", []string{"abbc", "bb"}},
		{"*-*", "a-b-c", []string{"a-b-c", "a", "b-c"}},
		{"x*y*z", "xayybz", []string{"xayybz", "a", "yb"}},
		{"**", "ab", []string{"ab", "a", "b"}},
		{"é*", "éü", []string{"éü", "ü"}},
	}
	for _, tt := range tests {
		t.Run(tt.pattern+"/"+tt.key, func(t *testing.T) {
			m := parseOne(t, tt.pattern).Match(tt.key, nil)
			require.NotNil(t, m)
			for i, want := range tt.captures {
				got, ok := m.Capture(i)
				assert.True(t, ok)
				assert.Equal(t, want, got, "capture %d", i)
			}
			assert.Equal(t, len(tt.captures), m.Captures())
		})
	}
}

func TestStarNoMatch(t *testing.T) {
	for _, tt := range []struct{ pattern, key string }{
		{"rating-*", "rating-"},
		{"rating-*", "other"},
		{"*-x", "-x"},
		{"a*b*c", "abc"},
		{"**", "a"},
	} {
		t.Run(tt.pattern+"/"+tt.key, func(t *testing.T) {
			assert.Nil(t, parseOne(t, tt.pattern).Match(tt.key, nil))
		})
	}
	assert.Nil(t, parseOne(t, "*").Match("", nil), "bare * needs a non-empty key")
}

func TestReferenceMatchAndEvaluate(t *testing.T) {
	wp := NewWalkedPath(nil, "root")
	star := parseOne(t, "rating-*")
	pop := wp.Push(nil, star.Match("rating-quality", nil))
	defer pop()

	ref := parseOne(t, "&(0,1)")
	assert.NotNil(t, ref.Match("quality", wp))
	assert.Nil(t, ref.Match("rating-quality", wp))

	s, ok := ref.(*Reference).Evaluate(wp)
	assert.True(t, ok)
	assert.Equal(t, "quality", s)

	missing := parseOne(t, "&(0,5)").(*Reference)
	_, ok = missing.Evaluate(wp)
	assert.False(t, ok)

	tooHigh := parseOne(t, "&(4)").(*Reference)
	_, ok = tooHigh.Evaluate(wp)
	assert.False(t, ok)
}

func TestDollarAndHash(t *testing.T) {
	wp := NewWalkedPath(nil, "root")
	pop := wp.Push(nil, NewMatchedElement("outer"))
	defer pop()
	pop2 := wp.Push(nil, NewMatchedElement("inner"))
	defer pop2()

	m := parseOne(t, "$").Match("ignored", wp)
	require.NotNil(t, m)
	assert.Equal(t, "inner", m.RawKey())

	m = parseOne(t, "$1").Match("ignored", wp)
	require.NotNil(t, m)
	assert.Equal(t, "outer", m.RawKey())

	m = parseOne(t, "#fixed").Match("ignored", wp)
	require.NotNil(t, m)
	assert.Equal(t, "fixed", m.RawKey())
}

func TestTransposeLookup(t *testing.T) {
	input := node.MustDecode(`{"id":"x1","items":[{"n":7}]}`)
	wp := NewWalkedPath(input, "root")
	pop := wp.Push(int64(5), NewMatchedElement("leaf"))
	defer pop()

	tr := parseOne(t, "@(1,id)").(*Transpose)
	v, ok := tr.Lookup(wp)
	assert.True(t, ok)
	assert.Equal(t, "x1", v)

	tr = parseOne(t, "@(1,items[0].n)").(*Transpose)
	key, ok := tr.Evaluate(wp)
	assert.True(t, ok)
	assert.Equal(t, "7", key)

	tr, err := ParseTranspose("@")
	require.NoError(t, err)
	v, ok = tr.Lookup(wp)
	assert.True(t, ok)
	assert.Equal(t, int64(5), v)

	tr = parseOne(t, "@(1,items)").(*Transpose)
	_, ok = tr.Evaluate(wp)
	assert.False(t, ok, "containers can not be keys")

	tr = parseOne(t, "@(1,nope)").(*Transpose)
	_, ok = tr.Lookup(wp)
	assert.False(t, ok)

	_, err = ParseTranspose("name")
	assert.ErrorIs(t, err, jolterrors.ErrSpec)
}

func TestWritePath(t *testing.T) {
	wp := NewWalkedPath(nil, "root")
	pop := wp.Push(nil, parseOne(t, "rating-*").Match("rating-primary", nil))
	defer pop()

	p, err := ParseWritePath("ratings.&(0,1).values[].value")
	require.NoError(t, err)
	assert.Equal(t, "ratings.&(0,1).values[].value", p.String())

	keys, ok := p.Keys(wp)
	require.True(t, ok)
	assert.Equal(t, []traversr.Key{
		traversr.MapKey("ratings"),
		traversr.MapKey("primary"),
		traversr.MapKey("values"),
		traversr.IndexKey(traversr.Append),
		traversr.MapKey("value"),
	}, keys)

	out := node.NewObject()
	require.True(t, p.Write(out, nil, int64(3), wp, traversr.Shift))
	assert.True(t, node.Equal(node.MustDecode(`{"ratings":{"primary":{"values":[{"value":3}]}}}`), out))
}

func TestWritePathHashCount(t *testing.T) {
	wp := NewWalkedPath(nil, "root")
	parent := NewMatchedElement("list")
	parent.IncrementHashCount()
	parent.IncrementHashCount()
	pop := wp.Push(nil, parent)
	defer pop()
	pop2 := wp.Push(nil, NewMatchedElement("child"))
	defer pop2()

	p, err := ParseWritePath("out[#1].name")
	require.NoError(t, err)
	keys, ok := p.Keys(wp)
	require.True(t, ok)
	assert.Equal(t, traversr.IndexKey("2"), keys[1])
}

func TestWritePathEmptyIsRoot(t *testing.T) {
	p, err := ParseWritePath("")
	require.NoError(t, err)
	assert.Equal(t, 0, p.Len())
}

func TestWritePathErrors(t *testing.T) {
	for _, rhs := range []string{"a.*", "a.$", "a..b", "a.b@c", "a[x]", "a[1"} {
		t.Run(rhs, func(t *testing.T) {
			_, err := ParseWritePath(rhs)
			assert.ErrorIs(t, err, jolterrors.ErrSpec)
		})
	}
}

func TestReadPathRejectsAppend(t *testing.T) {
	_, err := ParseReadPath("a[]")
	assert.ErrorIs(t, err, jolterrors.ErrSpec)
}

func TestWalkedPathPushPop(t *testing.T) {
	wp := NewWalkedPath("root-input", "root")
	assert.Equal(t, 1, wp.Len())

	pop := wp.PushList("list", NewMatchedElement("k"), 3)
	assert.Equal(t, 2, wp.Len())
	last := wp.Last()
	assert.True(t, last.HasOrigSize)
	assert.Equal(t, 3, last.OrigSize)

	f, ok := wp.FromEnd(1)
	assert.True(t, ok)
	assert.Equal(t, "root-input", f.TreeRef)

	_, ok = wp.FromEnd(2)
	assert.False(t, ok)

	pop()
	assert.Equal(t, 1, wp.Len())
}

func TestSortBySpecificity(t *testing.T) {
	keys := []string{"*", "a*", "abc*", "&1", "a*b*", "ab*"}
	ms := make([]Matcher, len(keys))
	for i, k := range keys {
		ms[i] = parseOne(t, k)
	}
	SortBySpecificity(ms, func(m Matcher) Matcher { return m })

	got := make([]string, len(ms))
	for i, m := range ms {
		got[i] = m.Canonical()
	}
	assert.Equal(t, []string{"&(1,0)", "abc*", "ab*", "a*b*", "a*", "*"}, got)
}

func TestCanMatchLiteral(t *testing.T) {
	assert.True(t, CanMatchLiteral(parseOne(t, "a*"), "ab"))
	assert.False(t, CanMatchLiteral(parseOne(t, "a*"), "b"))
	assert.False(t, CanMatchLiteral(parseOne(t, "&1"), "b"))
}
