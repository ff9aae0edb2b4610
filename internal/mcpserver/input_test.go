package mcpserver

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ramlo/ramlo/internal/testutil"
	"github.com/ramlo/ramlo/raml"
)

func minimalRAML(title string) string {
	return "#%RAML 1.0\ntitle: " + title + "\n/items:\n  get:\n"
}

func TestSpecInput_ResolveFile(t *testing.T) {
	specCache.reset()
	input := specInput{File: testutil.WriteTempRAML(t, testutil.UsersAPI)}
	result, err := input.resolve()
	require.NoError(t, err)
	assert.Equal(t, "Users API", result.Document.Title)
}

func TestSpecInput_ResolveContent(t *testing.T) {
	specCache.reset()
	input := specInput{Content: minimalRAML("Test")}
	result, err := input.resolve()
	require.NoError(t, err)
	assert.Equal(t, "Test", result.Document.Title)
	assert.Equal(t, raml.RAML10, result.Document.RAMLVersion)
}

func TestSpecInput_ResolveNoneProvided(t *testing.T) {
	input := specInput{}
	_, err := input.resolve()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of file or content must be provided")
}

func TestSpecInput_ResolveMultipleProvided(t *testing.T) {
	input := specInput{File: "foo.raml", Content: "bar"}
	_, err := input.resolve()
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "exactly one of file or content must be provided")
}

func TestSpecInput_ResolveFileNotFound(t *testing.T) {
	specCache.reset()
	input := specInput{File: "/nonexistent/path.raml"}
	_, err := input.resolve()
	assert.Error(t, err)
}

func TestSpecInput_ResolveNotRAML(t *testing.T) {
	specCache.reset()
	_, err := specInput{Content: "openapi: 3.0.0\n"}.resolve()
	require.Error(t, err)
	assert.Equal(t, 0, specCache.size(), "failures are not cached")
}

func TestSpecInput_InlineSizeLimit(t *testing.T) {
	saved := cfg
	t.Cleanup(func() { cfg = saved })
	limited := *cfg
	limited.MaxInlineSize = 16
	cfg = &limited

	_, err := specInput{Content: minimalRAML(strings.Repeat("x", 32))}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "exceeds maximum 16 bytes")
}

func TestSpecCache_HitOnSameFile(t *testing.T) {
	specCache.reset()
	input := specInput{File: testutil.WriteTempRAML(t, testutil.UsersAPI)}

	// First call populates cache.
	result1, err := input.resolve()
	require.NoError(t, err)
	assert.Equal(t, 1, specCache.size())

	// Second call should return the same pointer (cache hit).
	result2, err := input.resolve()
	require.NoError(t, err)
	assert.Same(t, result1, result2, "expected same pointer from cache hit")
}

func TestSpecCache_MissOnModifiedFile(t *testing.T) {
	specCache.reset()

	path := filepath.Join(t.TempDir(), "api.raml")
	require.NoError(t, os.WriteFile(path, []byte(minimalRAML("Test V1")), 0o644))

	input := specInput{File: path}
	result1, err := input.resolve()
	require.NoError(t, err)
	assert.Equal(t, "Test V1", result1.Document.Title)

	require.NoError(t, os.WriteFile(path, []byte(minimalRAML("Test V2")), 0o644))

	// Ensure mtime differs from the first write on coarse-grained filesystems.
	future := time.Now().Add(2 * time.Second)
	require.NoError(t, os.Chtimes(path, future, future))

	result2, err := input.resolve()
	require.NoError(t, err)
	assert.NotSame(t, result1, result2)
	assert.Equal(t, "Test V2", result2.Document.Title)
}

func TestSpecCache_ContentHash(t *testing.T) {
	specCache.reset()
	input := specInput{Content: minimalRAML("Hash Test")}

	result1, err := input.resolve()
	require.NoError(t, err)

	// Same content should hit cache.
	result2, err := input.resolve()
	require.NoError(t, err)
	assert.Same(t, result1, result2)
}

func TestSpecCache_Disabled(t *testing.T) {
	saved := cfg
	t.Cleanup(func() { cfg = saved })
	disabled := *cfg
	disabled.CacheEnabled = false
	cfg = &disabled

	specCache.reset()
	input := specInput{Content: minimalRAML("Uncached")}
	result1, err := input.resolve()
	require.NoError(t, err)
	result2, err := input.resolve()
	require.NoError(t, err)
	assert.NotSame(t, result1, result2)
	assert.Equal(t, 0, specCache.size())
}

func TestSpecCache_LRUEviction(t *testing.T) {
	specCache.reset()
	specCache.resize(10)

	// Insert 11 documents into a cache of size 10.
	// Track the first content's cache key to verify it is evicted.
	var firstKey docKey
	for i := range 11 {
		content := minimalRAML("Spec " + string(rune('A'+i)))
		if i == 0 {
			var ok bool
			firstKey, ok = specInput{Content: content}.cacheKey("", nil)
			require.True(t, ok)
		}
		_, err := specInput{Content: content}.resolve()
		require.NoError(t, err)
	}

	// Cache should not exceed max size.
	assert.Equal(t, 10, specCache.size())

	// The first entry (oldest) should have been evicted.
	assert.Nil(t, specCache.get(firstKey), "expected oldest entry to be evicted")
}

func TestSpecCache_Sweep(t *testing.T) {
	specCache.reset()
	expired, fresh := docKey{hash: "expired"}, docKey{hash: "fresh"}
	specCache.put(expired, &raml.ParseResult{}, -time.Second)
	specCache.put(fresh, &raml.ParseResult{}, time.Hour)

	specCache.sweep()
	assert.Equal(t, 1, specCache.size())
	assert.NotNil(t, specCache.get(fresh))
	assert.Nil(t, specCache.get(expired))
}

func TestSpecInput_CacheKey(t *testing.T) {
	_, ok := specInput{}.cacheKey("", nil)
	assert.False(t, ok)
	_, ok = specInput{File: "/nonexistent/api.raml"}.cacheKey("", nil)
	assert.False(t, ok, "unstattable files are not cached")
	_, ok = specInput{Content: "x"}.cacheKey("/tmp", []raml.Option{raml.WithBaseDir(".")})
	assert.False(t, ok, "extra loader options are not part of the key")

	plain, ok := specInput{Content: minimalRAML("Plain")}.cacheKey("/a", nil)
	require.True(t, ok)
	other, _ := specInput{Content: minimalRAML("Plain")}.cacheKey("/b", nil)
	assert.Equal(t, plain, other, "documents without includes do not depend on the include directory")

	withInclude := "#%RAML 1.0\ntitle: x\ndescription: !include intro.md\n"
	inA, _ := specInput{Content: withInclude}.cacheKey("/a", nil)
	inB, _ := specInput{Content: withInclude}.cacheKey("/b", nil)
	assert.NotEqual(t, inA, inB)

	withUses := "#%RAML 1.0\ntitle: x\nuses:\n  lib: lib.raml\n"
	usesA, _ := specInput{Content: withUses}.cacheKey("/a", nil)
	usesB, _ := specInput{Content: withUses}.cacheKey("/b", nil)
	assert.NotEqual(t, usesA, usesB)
}

func TestSpecInput_ContentIncludesResolveAgainstBaseDir(t *testing.T) {
	specCache.reset()
	dirA, dirB := t.TempDir(), t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dirA, "intro.md"), []byte("from A"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dirB, "intro.md"), []byte("from B"), 0o644))
	content := "#%RAML 1.0\ntitle: Includes\ndescription: !include intro.md\n"

	a, err := specInput{Content: content, BaseDir: dirA}.resolve()
	require.NoError(t, err)
	assert.Equal(t, "from A", a.Document.Description)

	b, err := specInput{Content: content, BaseDir: dirB}.resolve()
	require.NoError(t, err)
	assert.Equal(t, "from B", b.Document.Description, "the same content in another directory is a different document")
	assert.Equal(t, 2, specCache.size())

	again, err := specInput{Content: content, BaseDir: dirA}.resolve()
	require.NoError(t, err)
	assert.Same(t, a, again)
}

func TestSpecInput_BaseDirErrors(t *testing.T) {
	specCache.reset()
	path := testutil.WriteTempRAML(t, testutil.UsersAPI)

	_, err := specInput{File: path, BaseDir: t.TempDir()}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_dir applies to content input only")

	_, err = specInput{Content: minimalRAML("x"), BaseDir: filepath.Join(t.TempDir(), "missing")}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "base_dir")

	_, err = specInput{Content: minimalRAML("x"), BaseDir: path}.resolve()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "is not a directory")
}
