package internal

import (
	"crypto/md5"
	"fmt"
	"io"
	"os"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"

	tt "github.com/oxlift/oxlift/internal/types"
)

type fileMetadata struct {
	Hash         string
	LastModified time.Time
}

type CacheEntry struct {
	Metadata  fileMetadata
	Assists   []tt.Assist
	CreatedAt time.Time
}

// Cache remembers scan results per file until the file content changes.
// Entries live in a fixed-size LRU so long watch sessions over large
// trees do not grow without bound.
type Cache struct {
	entries *lru.Cache[string, CacheEntry]
	mutex   sync.Mutex
	maxAge  time.Duration
}

const defaultCacheSize = 512

func NewCache(size int) (*Cache, error) {
	if size <= 0 {
		size = defaultCacheSize
	}
	entries, err := lru.New[string, CacheEntry](size)
	if err != nil {
		return nil, fmt.Errorf("failed to create cache: %w", err)
	}
	return &Cache{entries: entries}, nil
}

func (c *Cache) Set(filename string, assists []tt.Assist) error {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	metadata, err := getFileMetadata(filename)
	if err != nil {
		return fmt.Errorf("failed to get file metadata: %w", err)
	}

	c.entries.Add(filename, CacheEntry{
		Metadata:  metadata,
		Assists:   assists,
		CreatedAt: time.Now(),
	})
	return nil
}

func (c *Cache) Get(filename string) ([]tt.Assist, bool) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	entry, exists := c.entries.Get(filename)
	if !exists {
		return nil, false
	}

	if c.isEntryInvalid(filename, entry) {
		c.entries.Remove(filename)
		return nil, false
	}

	return entry.Assists, true
}

func (c *Cache) isEntryInvalid(filename string, entry CacheEntry) bool {
	// maxAge of zero means entries never expire by age
	if c.maxAge > 0 && time.Since(entry.CreatedAt) > c.maxAge {
		return true
	}

	currentMetadata, err := getFileMetadata(filename)
	if err != nil || currentMetadata != entry.Metadata {
		return true
	}

	return false
}

func (c *Cache) SetMaxAge(duration time.Duration) {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.maxAge = duration
}

func (c *Cache) Len() int {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	return c.entries.Len()
}

func (c *Cache) InvalidateAll() {
	c.mutex.Lock()
	defer c.mutex.Unlock()

	c.entries.Purge()
}

func getFileMetadata(filename string) (fileMetadata, error) {
	file, err := os.Open(filename)
	if err != nil {
		return fileMetadata{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	hash := md5.New()
	if _, err := io.Copy(hash, file); err != nil {
		return fileMetadata{}, fmt.Errorf("failed to calculate hash: %w", err)
	}

	info, err := file.Stat()
	if err != nil {
		return fileMetadata{}, fmt.Errorf("failed to get file info: %w", err)
	}

	return fileMetadata{
		Hash:         fmt.Sprintf("%x", hash.Sum(nil)),
		LastModified: info.ModTime(),
	}, nil
}
