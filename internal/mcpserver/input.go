package mcpserver

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/ramlo/ramlo/raml"
)

// specInput is the RAML document a tool works on. Exactly one of File or
// Content must be set.
type specInput struct {
	File    string `json:"file,omitempty"     jsonschema:"Path to a RAML 1.0 file on disk"`
	Content string `json:"content,omitempty"  jsonschema:"Inline RAML 1.0 document content"`
	BaseDir string `json:"base_dir,omitempty" jsonschema:"Directory that !include and uses paths of inline content resolve against (default: the server working directory)"`
}

// fileRefs matches the constructs that make a document read other files.
var fileRefs = regexp.MustCompile(`!include\s|(?m)^uses\s*:`)

// referencesFiles reports whether content pulls in other files, so that its
// load result depends on the directory it is resolved against.
func referencesFiles(content string) bool {
	return fileRefs.MatchString(content)
}

// docKey identifies a loaded document. File documents are keyed by path and
// modification time. Inline documents are keyed by content hash and, when they
// include other files, by the directory those files resolve against.
type docKey struct {
	file    string
	modTime int64
	hash    string
	baseDir string
}

// cachedDoc is a loaded document with LRU and TTL bookkeeping.
type cachedDoc struct {
	result    *raml.ParseResult
	usedAt    time.Time
	expiresAt time.Time
}

// docCache is the session-scoped cache of loaded documents. Cached results are
// shared between tool calls and must not be modified.
type docCache struct {
	mu             sync.Mutex
	docs           map[docKey]*cachedDoc
	maxSize        int
	sweeperStarted atomic.Bool
}

var specCache = &docCache{
	docs:    make(map[docKey]*cachedDoc),
	maxSize: cfg.CacheMaxSize,
}

// get returns the cached result for key, or nil. Expired entries are dropped.
func (c *docCache) get(key docKey) *raml.ParseResult {
	c.mu.Lock()
	defer c.mu.Unlock()
	d, ok := c.docs[key]
	if !ok {
		return nil
	}
	if time.Now().After(d.expiresAt) {
		delete(c.docs, key)
		return nil
	}
	d.usedAt = time.Now()
	return d.result
}

// put stores result under key for ttl, evicting the least recently used
// document when the cache is full.
func (c *docCache) put(key docKey, result *raml.ParseResult, ttl time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	if _, ok := c.docs[key]; !ok && len(c.docs) >= c.maxSize {
		c.evictLocked()
	}
	c.docs[key] = &cachedDoc{result: result, usedAt: now, expiresAt: now.Add(ttl)}
}

func (c *docCache) evictLocked() {
	var oldest docKey
	var oldestAt time.Time
	found := false
	for k, d := range c.docs {
		if !found || d.usedAt.Before(oldestAt) {
			oldest, oldestAt, found = k, d.usedAt, true
		}
	}
	if found {
		delete(c.docs, oldest)
	}
}

// sweep drops every expired document.
func (c *docCache) sweep() {
	c.mu.Lock()
	defer c.mu.Unlock()
	now := time.Now()
	for k, d := range c.docs {
		if now.After(d.expiresAt) {
			delete(c.docs, k)
		}
	}
}

// startSweeper runs sweep every interval until ctx is cancelled. Only the
// first of concurrent calls starts a sweeper.
func (c *docCache) startSweeper(ctx context.Context, interval time.Duration) {
	if interval <= 0 || !c.sweeperStarted.CompareAndSwap(false, true) {
		return
	}
	go func() {
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
}

// resize changes the capacity. Existing documents are kept until evicted.
func (c *docCache) resize(maxSize int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.maxSize = maxSize
}

// reset drops every cached document.
func (c *docCache) reset() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.docs = make(map[docKey]*cachedDoc)
}

func (c *docCache) size() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.docs)
}

// validate checks that the input names exactly one document source.
func (s specInput) validate() error {
	switch {
	case (s.File == "") == (s.Content == ""):
		n := 0
		if s.File != "" {
			n = 2
		}
		return fmt.Errorf("exactly one of file or content must be provided (got %d)", n)
	case s.File != "" && s.BaseDir != "":
		return errors.New("base_dir applies to content input only; includes of a file resolve against its directory")
	case int64(len(s.Content)) > cfg.MaxInlineSize:
		return fmt.Errorf("inline content size %d bytes exceeds maximum %d bytes; use file input instead, or set RAMLO_MCP_MAX_INLINE_SIZE to increase",
			len(s.Content), cfg.MaxInlineSize)
	}
	return nil
}

// includeDir returns the absolute directory inline content resolves !include
// and uses paths against.
func (s specInput) includeDir() (string, error) {
	dir := s.BaseDir
	if dir == "" {
		dir = "."
	}
	abs, err := filepath.Abs(dir)
	if err != nil {
		return "", fmt.Errorf("base_dir: %w", err)
	}
	if s.BaseDir != "" {
		info, err := os.Stat(abs)
		if err != nil {
			return "", fmt.Errorf("base_dir: %w", err)
		}
		if !info.IsDir() {
			return "", fmt.Errorf("base_dir: %s is not a directory", s.BaseDir)
		}
	}
	return abs, nil
}

// cacheKey returns the key of the input's document. ok is false when the
// document must not be cached: a file that cannot be stat'ed, or extra loader
// options that the key cannot capture.
func (s specInput) cacheKey(includeDir string, extraOpts []raml.Option) (key docKey, ok bool) {
	if len(extraOpts) > 0 {
		return docKey{}, false
	}
	if s.File != "" {
		abs, err := filepath.Abs(s.File)
		if err != nil {
			return docKey{}, false
		}
		info, err := os.Stat(abs)
		if err != nil {
			return docKey{}, false
		}
		return docKey{file: abs, modTime: info.ModTime().UnixNano()}, true
	}
	if s.Content == "" {
		return docKey{}, false
	}
	h := sha256.Sum256([]byte(s.Content))
	key = docKey{hash: hex.EncodeToString(h[:])}
	if referencesFiles(s.Content) {
		key.baseDir = includeDir
	}
	return key, true
}

// resolve loads the input's document, sharing results between calls through
// the document cache. extraOpts are appended to the loader options.
func (s specInput) resolve(extraOpts ...raml.Option) (*raml.ParseResult, error) {
	if err := s.validate(); err != nil {
		return nil, err
	}

	var opts []raml.Option
	var includeDir string
	if s.File != "" {
		opts = append(opts, raml.WithFilePath(s.File))
	} else {
		dir, err := s.includeDir()
		if err != nil {
			return nil, err
		}
		includeDir = dir
		opts = append(opts, raml.WithReader(strings.NewReader(s.Content)), raml.WithBaseDir(dir))
	}

	key, cacheable := s.cacheKey(includeDir, extraOpts)
	cacheable = cacheable && cfg.CacheEnabled
	if cacheable {
		if cached := specCache.get(key); cached != nil {
			return cached, nil
		}
	}

	result, err := raml.ParseWithOptions(append(opts, extraOpts...)...)
	if err != nil {
		return nil, err
	}
	if cacheable {
		ttl := cfg.CacheContentTTL
		if s.File != "" {
			ttl = cfg.CacheFileTTL
		}
		specCache.put(key, result, ttl)
	}
	return result, nil
}
