package mcpserver

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/erraggy/jolt/chainr"
	"github.com/erraggy/jolt/internal/testutil"
	"github.com/erraggy/jolt/jolterrors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const cardinalityChain = `[{"operation":"cardinality","spec":{"tags":"ONE"}}]`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestDocInput_ReadSources(t *testing.T) {
	path := writeFile(t, "doc.json", `{"a":1}`)

	data, err := docInput{File: path}.read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, `{"a":1}`, string(data))

	data, err = docInput{Content: "a: 1\n"}.read(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a: 1\n", string(data))
}

func TestDocInput_ExactlyOneSource(t *testing.T) {
	_, err := docInput{}.read(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "got 0")

	_, err = docInput{File: "a.json", Content: "{}"}.read(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "got 2")
}

func TestDocInput_SizeLimit(t *testing.T) {
	withConfig(t, func(c *serverConfig) { c.MaxInputSize = 4 })

	_, err := docInput{Content: `{"a":1}`}.read(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "JOLT_MAX_INPUT_SIZE")

	_, err = docInput{File: writeFile(t, "big.json", `{"a":1}`)}.read(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum")
}

func TestDocInput_Decode(t *testing.T) {
	v, format, err := docInput{Content: "a: 1\n"}.decode(context.Background())
	require.NoError(t, err)
	assert.Equal(t, chainr.SourceFormatYAML, format)
	testutil.AssertJSON(t, `{"a":1}`, v)

	_, _, err = docInput{Content: `{"a":`}.decode(context.Background())
	var pe *jolterrors.ParseError
	require.ErrorAs(t, err, &pe)
	assert.Equal(t, "<content>", pe.Path)
}

func TestDocInput_DecodeObject(t *testing.T) {
	obj, err := docInput{Content: `{"site":"eu"}`}.decodeObject(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, obj.Len())

	_, err = docInput{Content: `[1]`}.decodeObject(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "expected an object")
}

func TestResolveChain_CachesContent(t *testing.T) {
	chainCache.reset()
	t.Cleanup(chainCache.reset)

	in := docInput{Content: cardinalityChain}
	first, err := in.resolveChain(context.Background())
	require.NoError(t, err)
	second, err := in.resolveChain(context.Background())
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, chainCache.size())
}

func TestResolveChain_FileChangeInvalidates(t *testing.T) {
	chainCache.reset()
	t.Cleanup(chainCache.reset)

	path := writeFile(t, "chain.json", cardinalityChain)
	first, err := docInput{File: path}.resolveChain(context.Background())
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(path, []byte(`[]`), 0o600))
	later := time.Now().Add(time.Minute)
	require.NoError(t, os.Chtimes(path, later, later))

	second, err := docInput{File: path}.resolveChain(context.Background())
	require.NoError(t, err)
	assert.NotSame(t, first, second)
	assert.Equal(t, 0, second.Len())
}

func TestResolveChain_CacheDisabled(t *testing.T) {
	chainCache.reset()
	t.Cleanup(chainCache.reset)
	withConfig(t, func(c *serverConfig) { c.CacheEnabled = false })

	_, err := docInput{Content: cardinalityChain}.resolveChain(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, chainCache.size())
}

func TestResolveChain_InvalidNotCached(t *testing.T) {
	chainCache.reset()
	t.Cleanup(chainCache.reset)

	_, err := docInput{Content: `[{"operation":"nope","spec":{}}]`}.resolveChain(context.Background())
	assert.ErrorIs(t, err, jolterrors.ErrSpec)
	assert.Equal(t, 0, chainCache.size())
}

func TestChainCache_LRUEviction(t *testing.T) {
	store := &chainCacheStore{entries: make(map[string]*cacheEntry), maxSize: 2}
	c, err := chainr.New()
	require.NoError(t, err)

	store.putWithTTL("a", c, time.Minute)
	time.Sleep(time.Millisecond)
	store.putWithTTL("b", c, time.Minute)
	time.Sleep(time.Millisecond)
	require.NotNil(t, store.get("a"))
	time.Sleep(time.Millisecond)
	store.putWithTTL("c", c, time.Minute)

	assert.Equal(t, 2, store.size())
	assert.NotNil(t, store.get("a"))
	assert.Nil(t, store.get("b"))
	assert.NotNil(t, store.get("c"))
}

func TestChainCache_Expiry(t *testing.T) {
	store := &chainCacheStore{entries: make(map[string]*cacheEntry), maxSize: 4}
	c, err := chainr.New()
	require.NoError(t, err)

	store.putWithTTL("old", c, -time.Second)
	store.putWithTTL("new", c, time.Minute)
	store.sweep()

	assert.Equal(t, 1, store.size())
	assert.Nil(t, store.get("old"))
	assert.NotNil(t, store.get("new"))
}

func TestChainCache_Sweeper(t *testing.T) {
	store := &chainCacheStore{entries: make(map[string]*cacheEntry), maxSize: 4}
	c, err := chainr.New()
	require.NoError(t, err)
	store.putWithTTL("old", c, -time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	done := store.startSweeper(ctx, time.Millisecond)

	// A second sweeper is not started while the first runs.
	second := store.startSweeper(ctx, time.Millisecond)
	<-second

	assert.Eventually(t, func() bool { return store.size() == 0 }, time.Second, time.Millisecond)
	cancel()
	<-done
	assert.False(t, store.sweeperStarted.Load())
}

func TestMakeCacheKey(t *testing.T) {
	path := writeFile(t, "chain.json", "[]")

	assert.True(t, strings.HasPrefix(makeCacheKey(docInput{File: path}), "file:"))
	assert.True(t, strings.HasPrefix(makeCacheKey(docInput{Content: "[]"}), "content:"))
	assert.Equal(t, "url:https://example.com/c.json", makeCacheKey(docInput{URL: "https://example.com/c.json"}))
	assert.Empty(t, makeCacheKey(docInput{File: filepath.Join(t.TempDir(), "missing.json")}))
	assert.Empty(t, makeCacheKey(docInput{}))
}
