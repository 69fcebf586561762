package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"time"

	"github.com/erraggy/jolt/chainr"
	"github.com/erraggy/jolt/node"
)

// docInput represents the three ways a document can be provided to a tool.
// Exactly one of File, URL, or Content must be set.
type docInput struct {
	File    string `json:"file,omitempty"    jsonschema:"Path to a JSON or YAML file on disk"`
	URL     string `json:"url,omitempty"     jsonschema:"URL to fetch a JSON or YAML document from"`
	Content string `json:"content,omitempty" jsonschema:"Inline document content (JSON or YAML)"`
}

// isSet reports whether any source was provided.
func (d docInput) isSet() bool {
	return d.File != "" || d.URL != "" || d.Content != ""
}

func (d docInput) check() error {
	count := 0
	for _, s := range []string{d.File, d.URL, d.Content} {
		if s != "" {
			count++
		}
	}
	if count != 1 {
		return fmt.Errorf("exactly one of file, url, or content must be provided (got %d)", count)
	}
	return nil
}

// name returns the label used in decode errors.
func (d docInput) name() string {
	switch {
	case d.File != "":
		return d.File
	case d.URL != "":
		return d.URL
	default:
		return "<content>"
	}
}

// read returns the raw bytes of the document, enforcing cfg.MaxInputSize.
func (d docInput) read(ctx context.Context) ([]byte, error) {
	if err := d.check(); err != nil {
		return nil, err
	}
	switch {
	case d.File != "":
		info, err := os.Stat(d.File)
		if err != nil {
			return nil, err
		}
		if info.Size() > cfg.MaxInputSize {
			return nil, fmt.Errorf("file size %d bytes exceeds maximum %d bytes; set JOLT_MAX_INPUT_SIZE to increase", info.Size(), cfg.MaxInputSize)
		}
		return os.ReadFile(d.File)
	case d.URL != "":
		client := httpClient()
		defer client.CloseIdleConnections()
		return fetchURL(ctx, client, d.URL, cfg.MaxInputSize)
	default:
		if int64(len(d.Content)) > cfg.MaxInputSize {
			return nil, fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set JOLT_MAX_INPUT_SIZE to increase",
				len(d.Content), cfg.MaxInputSize)
		}
		return []byte(d.Content), nil
	}
}

// decode reads and decodes the document.
func (d docInput) decode(ctx context.Context) (any, chainr.SourceFormat, error) {
	data, err := d.read(ctx)
	if err != nil {
		return nil, chainr.SourceFormatUnknown, err
	}
	return chainr.DecodeInput(d.name(), data)
}

// decodeObject decodes the document and requires an object at its root.
func (d docInput) decodeObject(ctx context.Context) (*node.Object, error) {
	v, _, err := d.decode(ctx)
	if err != nil {
		return nil, err
	}
	obj, ok := v.(*node.Object)
	if !ok {
		return nil, fmt.Errorf("expected an object, got %s", node.KindOf(v))
	}
	return obj, nil
}

// resolveChain parses and builds the chain document, using the cache for
// repeated inputs.
func (d docInput) resolveChain(ctx context.Context) (*chainr.Chain, error) {
	if err := d.check(); err != nil {
		return nil, err
	}

	var key string
	var ttl time.Duration
	if cfg.CacheEnabled {
		key = makeCacheKey(d)
		switch {
		case d.File != "":
			ttl = cfg.CacheFileTTL
		case d.URL != "":
			ttl = cfg.CacheURLTTL
		default:
			ttl = cfg.CacheContentTTL
		}
	}
	if key != "" {
		if cached := chainCache.get(key); cached != nil {
			return cached, nil
		}
	}

	data, err := d.read(ctx)
	if err != nil {
		return nil, err
	}
	c, err := chainr.Parse(data)
	if err != nil {
		return nil, err
	}

	if key != "" {
		chainCache.putWithTTL(key, c, ttl)
	}
	return c, nil
}

// cacheEntry holds a built chain with LRU ordering and TTL expiry.
type cacheEntry struct {
	chain     *chainr.Chain
	insertAt  time.Time
	expiresAt time.Time
}

// chainCacheStore caches built chains for the lifetime of the server.
// File inputs are keyed by (absolutePath, modTime), content inputs by a
// SHA-256 hash, and URL inputs by the URL string. Built chains are
// immutable, so one entry may serve concurrent tool calls.
type chainCacheStore struct {
	mu             sync.Mutex
	entries        map[string]*cacheEntry
	maxSize        int
	sweeperStarted atomic.Bool
}

var chainCache = &chainCacheStore{
	entries: make(map[string]*cacheEntry),
	maxSize: cfg.CacheMaxSize,
}

// get returns a cached chain or nil. Expired entries are lazily removed.
func (c *chainCacheStore) get(key string) *chainr.Chain {
	c.mu.Lock()
	defer c.mu.Unlock()
	e, ok := c.entries[key]
	if !ok {
		return nil
	}
	if !e.expiresAt.IsZero() && time.Now().After(e.expiresAt) {
		delete(c.entries, key)
		return nil
	}
	e.insertAt = time.Now()
	return e.chain
}

// putWithTTL stores a chain, evicting the least recently used entry when full.
func (c *chainCacheStore) putWithTTL(key string, chain *chainr.Chain, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	entry := &cacheEntry{chain: chain, insertAt: now, expiresAt: now.Add(ttl)}

	if _, ok := c.entries[key]; !ok && len(c.entries) >= c.maxSize {
		var oldestKey string
		var oldestTime time.Time
		for k, e := range c.entries {
			if oldestKey == "" || e.insertAt.Before(oldestTime) {
				oldestKey = k
				oldestTime = e.insertAt
			}
		}
		delete(c.entries, oldestKey)
	}
	c.entries[key] = entry
}

// sweep removes all expired entries.
func (c *chainCacheStore) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, e := range c.entries {
		if !e.expiresAt.IsZero() && now.After(e.expiresAt) {
			delete(c.entries, k)
		}
	}
}

// startSweeper launches a goroutine that periodically removes expired
// entries until ctx is cancelled. Only the first concurrent call starts one.
// The returned channel is closed when the sweeper exits.
func (c *chainCacheStore) startSweeper(ctx context.Context, interval time.Duration) <-chan struct{} {
	done := make(chan struct{})
	if interval <= 0 || !c.sweeperStarted.CompareAndSwap(false, true) {
		close(done)
		return done
	}
	go func() {
		defer close(done)
		defer c.sweeperStarted.Store(false)
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.sweep()
			}
		}
	}()
	return done
}

// reset clears all cached entries. Used in tests.
func (c *chainCacheStore) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.entries = make(map[string]*cacheEntry)
}

func (c *chainCacheStore) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.entries)
}

// makeCacheKey returns the cache key for d, or "" when d cannot be cached.
func makeCacheKey(d docInput) string {
	switch {
	case d.File != "":
		absPath, err := filepath.Abs(d.File)
		if err != nil {
			return ""
		}
		info, err := os.Stat(absPath)
		if err != nil {
			return ""
		}
		return fmt.Sprintf("file:%s:%d", absPath, info.ModTime().UnixNano())
	case d.Content != "":
		h := sha256.Sum256([]byte(d.Content))
		return "content:" + hex.EncodeToString(h[:])
	case d.URL != "":
		return "url:" + d.URL
	default:
		return ""
	}
}
