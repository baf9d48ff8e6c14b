package internal

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	tt "github.com/oxlift/oxlift/internal/types"
)

func writeTestFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	filename := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(filename, []byte(content), 0644))
	return filename
}

func sampleAssists(filename string) []tt.Assist {
	return []tt.Assist{
		{
			ID:       "merge-match-arms",
			Kind:     tt.RefactorRewrite,
			Label:    "Merge match arms",
			Filename: filename,
			Start:    tt.Position{Line: 5, Column: 9},
			End:      tt.Position{Line: 6, Column: 19},
		},
	}
}

func TestCache(t *testing.T) {
	t.Parallel()
	tempDir := createTempDir(t, "cache_test")

	t.Run("SaveAndLoad", func(t *testing.T) {
		cache, err := NewCache(0)
		require.NoError(t, err)

		filename := writeTestFile(t, tempDir, "save_load.rs", "fn main() {}\n")
		want := sampleAssists(filename)
		require.NoError(t, cache.Set(filename, want))

		got, found := cache.Get(filename)
		assert.True(t, found)
		assert.Equal(t, want, got)
	})

	t.Run("NotFound", func(t *testing.T) {
		cache, err := NewCache(0)
		require.NoError(t, err)

		_, found := cache.Get(filepath.Join(tempDir, "missing.rs"))
		assert.False(t, found)
	})

	t.Run("FileModified", func(t *testing.T) {
		cache, err := NewCache(0)
		require.NoError(t, err)

		filename := writeTestFile(t, tempDir, "modified.rs", "fn main() {}\n")
		require.NoError(t, cache.Set(filename, sampleAssists(filename)))

		// Rewriting the file changes its content hash, so the entry
		// must be treated as stale even within the same second.
		require.NoError(t, os.WriteFile(filename, []byte("fn main() { todo!() }\n"), 0644))

		_, found := cache.Get(filename)
		assert.False(t, found)
	})

	t.Run("MaxAge", func(t *testing.T) {
		cache, err := NewCache(0)
		require.NoError(t, err)
		cache.SetMaxAge(time.Nanosecond)

		filename := writeTestFile(t, tempDir, "max_age.rs", "fn main() {}\n")
		require.NoError(t, cache.Set(filename, sampleAssists(filename)))
		time.Sleep(time.Millisecond)

		_, found := cache.Get(filename)
		assert.False(t, found)

		cache.SetMaxAge(0)
		require.NoError(t, cache.Set(filename, sampleAssists(filename)))
		time.Sleep(time.Millisecond)

		_, found = cache.Get(filename)
		assert.True(t, found)
	})

	t.Run("Eviction", func(t *testing.T) {
		cache, err := NewCache(2)
		require.NoError(t, err)

		first := writeTestFile(t, tempDir, "evict_a.rs", "fn a() {}\n")
		second := writeTestFile(t, tempDir, "evict_b.rs", "fn b() {}\n")
		third := writeTestFile(t, tempDir, "evict_c.rs", "fn c() {}\n")

		require.NoError(t, cache.Set(first, sampleAssists(first)))
		require.NoError(t, cache.Set(second, sampleAssists(second)))
		require.NoError(t, cache.Set(third, sampleAssists(third)))

		assert.Equal(t, 2, cache.Len())

		_, found := cache.Get(first)
		assert.False(t, found)
		_, found = cache.Get(third)
		assert.True(t, found)
	})

	t.Run("InvalidateAll", func(t *testing.T) {
		cache, err := NewCache(0)
		require.NoError(t, err)

		filename := writeTestFile(t, tempDir, "invalidate.rs", "fn main() {}\n")
		require.NoError(t, cache.Set(filename, sampleAssists(filename)))
		require.Equal(t, 1, cache.Len())

		cache.InvalidateAll()

		assert.Equal(t, 0, cache.Len())
		_, found := cache.Get(filename)
		assert.False(t, found)
	})
}

func TestCacheWithEngine(t *testing.T) {
	t.Parallel()
	tempDir := createTempDir(t, "cache_engine_test")

	engine, err := NewEngine(nil)
	require.NoError(t, err)

	filename := writeTestFile(t, tempDir, "sample.rs", mergeableSource)

	first, err := engine.ScanFile(context.Background(), filename)
	require.NoError(t, err)
	require.NotEmpty(t, first)

	second, err := engine.ScanFile(context.Background(), filename)
	require.NoError(t, err)
	assert.Equal(t, first, second)

	modified := `enum X { A, B, C }

fn f(x: X) -> i32 {
    match x {
        X::A => 1,
        X::B => 3,
        X::C => 2,
    }
}
`
	require.NoError(t, os.WriteFile(filename, []byte(modified), 0644))

	third, err := engine.ScanFile(context.Background(), filename)
	require.NoError(t, err)
	assert.Empty(t, third)
}

func TestCacheConcurrency(t *testing.T) {
	t.Parallel()
	tempDir := createTempDir(t, "cache_concurrency_test")

	cache, err := NewCache(0)
	require.NoError(t, err)

	filename := writeTestFile(t, tempDir, "concurrent.rs", "fn main() {}\n")

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			assists := []tt.Assist{{
				ID:       fmt.Sprintf("assist-%d", i),
				Filename: filename,
			}}
			assert.NoError(t, cache.Set(filename, assists))
			cache.Get(filename)
		}(i)
	}
	wg.Wait()

	got, found := cache.Get(filename)
	assert.True(t, found)
	assert.Len(t, got, 1)
}
