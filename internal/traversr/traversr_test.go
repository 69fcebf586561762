package traversr

import (
	"testing"

	"github.com/erraggy/jolt/node"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func keys(ks ...Key) []Key { return ks }

func TestGet(t *testing.T) {
	tree := node.MustDecode(`{"a":{"b":[10,{"c":null}]}}`)

	v, ok := Get(tree, keys(MapKey("a"), MapKey("b"), IndexKey("0")))
	assert.True(t, ok)
	assert.Equal(t, int64(10), v)

	v, ok = Get(tree, keys(MapKey("a"), MapKey("b"), IndexKey("1"), MapKey("c")))
	assert.True(t, ok, "null is present")
	assert.Nil(t, v)

	_, ok = Get(tree, keys(MapKey("a"), MapKey("b"), IndexKey("5")))
	assert.False(t, ok)

	_, ok = Get(tree, keys(MapKey("a"), IndexKey("0")))
	assert.False(t, ok, "index into an object")

	_, ok = Get(tree, keys(MapKey("a"), MapKey("b"), MapKey("0")))
	assert.False(t, ok, "map key into an array")

	_, ok = Get(tree, keys(MapKey("a"), MapKey("b"), IndexKey("x")))
	assert.False(t, ok)

	v, ok = Get(tree, nil)
	assert.True(t, ok)
	assert.Same(t, tree, v)
}

func TestGetDoesNotCreate(t *testing.T) {
	tree := node.NewObject()
	_, ok := Get(tree, keys(MapKey("a"), MapKey("b")))
	assert.False(t, ok)
	assert.Equal(t, 0, tree.Len())
}

func TestSetCreatesIntermediates(t *testing.T) {
	tree := node.NewObject()
	ok := Set(tree, keys(MapKey("a"), IndexKey("2"), MapKey("b")), "x", Simple)
	require.True(t, ok)
	assert.True(t, node.Equal(node.MustDecode(`{"a":[null,null,{"b":"x"}]}`), tree))
}

func TestSetReplacesNullIntermediate(t *testing.T) {
	tree := node.MustDecode(`{"a":null}`)
	require.True(t, Set(tree, keys(MapKey("a"), MapKey("b")), int64(1), Simple))
	assert.True(t, node.Equal(node.MustDecode(`{"a":{"b":1}}`), tree))
}

func TestSetTypeMismatch(t *testing.T) {
	tree := node.MustDecode(`{"a":"scalar","l":[1]}`)
	assert.False(t, Set(tree, keys(MapKey("a"), MapKey("b")), int64(1), Simple))
	assert.False(t, Set(tree, keys(MapKey("l"), MapKey("b")), int64(1), Simple))
	assert.False(t, Set(tree, keys(IndexKey("0")), int64(1), Simple))
	assert.False(t, Set(tree, keys(MapKey("l"), IndexKey("-1")), int64(1), Simple))
	assert.False(t, Set(tree, keys(MapKey("l"), IndexKey("abc")), int64(1), Simple))
	assert.True(t, node.Equal(node.MustDecode(`{"a":"scalar","l":[1]}`), tree))
}

func TestSetAppend(t *testing.T) {
	tree := node.NewObject()
	require.True(t, Set(tree, keys(MapKey("l"), IndexKey(Append)), "a", Simple))
	require.True(t, Set(tree, keys(MapKey("l"), IndexKey(Append)), "b", Simple))
	require.True(t, Set(tree, keys(MapKey("m"), IndexKey(Append), MapKey("k")), int64(1), Simple))
	require.True(t, Set(tree, keys(MapKey("m"), IndexKey(Append), MapKey("k")), int64(2), Simple))
	assert.True(t, node.Equal(node.MustDecode(`{"l":["a","b"],"m":[{"k":1},{"k":2}]}`), tree))
}

func TestSetAccumulate(t *testing.T) {
	tree := node.MustDecode(`{"n":null}`)
	path := keys(MapKey("v"))

	require.True(t, Set(tree, path, int64(1), Shift))
	require.True(t, Set(tree, path, int64(2), Shift))
	require.True(t, Set(tree, path, int64(3), Shift))
	require.True(t, Set(tree, keys(MapKey("n")), "x", Shift))

	assert.True(t, node.Equal(node.MustDecode(`{"n":"x","v":[1,2,3]}`), tree))
}

func TestSetAccumulateArraySlot(t *testing.T) {
	tree := node.MustDecode(`{"l":["a",null]}`)
	require.True(t, Set(tree, keys(MapKey("l"), IndexKey("0")), "b", Shift))
	require.True(t, Set(tree, keys(MapKey("l"), IndexKey("1")), "c", Shift))
	assert.True(t, node.Equal(node.MustDecode(`{"l":[["a","b"],"c"]}`), tree))
}

func TestRemove(t *testing.T) {
	tree := node.MustDecode(`{"a":{"b":1,"c":2},"l":[1,2,3]}`)

	v, ok := Remove(tree, keys(MapKey("a"), MapKey("b")))
	assert.True(t, ok)
	assert.Equal(t, int64(1), v)

	v, ok = Remove(tree, keys(MapKey("l"), IndexKey("0")))
	assert.True(t, ok)
	assert.Equal(t, int64(1), v)

	_, ok = Remove(tree, keys(MapKey("missing"), MapKey("x")))
	assert.False(t, ok)

	assert.True(t, node.Equal(node.MustDecode(`{"a":{"c":2},"l":[2,3]}`), tree))
}

func TestKeyString(t *testing.T) {
	assert.Equal(t, "a", MapKey("a").String())
	assert.Equal(t, "[3]", IndexKey("3").String())
	assert.Equal(t, "[]", IndexKey(Append).String())
}
