package cloud

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// CacheKey is the name of the snapshot in the local cache.
const CacheKey = "hisab_state"

// Cache holds the last known state as a single JSON blob.
//
// Load returns an error wrapping os.ErrNotExist when nothing has been stored yet.
type Cache interface {
	Load() ([]byte, error)
	Store(data []byte) error
}

// DefaultCacheDir returns the user cache directory for hisab.
func DefaultCacheDir() (string, error) {
	dir, err := os.UserCacheDir()
	if err != nil {
		return "", fmt.Errorf("cannot locate user cache dir: %w", err)
	}
	return filepath.Join(dir, "hisab"), nil
}

// FileCache stores the snapshot in a file of a directory.
type FileCache struct {
	dir string
}

// NewFileCache returns a cache in dir. An empty dir means DefaultCacheDir.
func NewFileCache(dir string) (*FileCache, error) {
	if dir == "" {
		d, err := DefaultCacheDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return &FileCache{dir: dir}, nil
}

// Path returns the file holding the snapshot.
func (c *FileCache) Path() string { return filepath.Join(c.dir, CacheKey+".json") }

func (c *FileCache) Load() ([]byte, error) {
	return os.ReadFile(c.Path())
}

// Store replaces the snapshot. The file is written aside then renamed, a reader never sees half a blob.
func (c *FileCache) Store(data []byte) error {
	if err := os.MkdirAll(c.dir, 0o700); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}
	tmp := c.Path() + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return fmt.Errorf("write temp cache file: %w", err)
	}
	if err := os.Rename(tmp, c.Path()); err != nil {
		return fmt.Errorf("replace cache file: %w", err)
	}
	return nil
}

// MemoryCache keeps the snapshot in memory.
type MemoryCache struct {
	mu   sync.Mutex
	data []byte
}

func (c *MemoryCache) Load() ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.data == nil {
		return nil, fmt.Errorf("memory cache: %w", os.ErrNotExist)
	}
	return slices.Clone(c.data), nil
}

func (c *MemoryCache) Store(data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = slices.Clone(data)
	return nil
}
