package cache

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"time"
)

// FileCache implements a file-based cache for CLI usage.
// Each value is stored as a blob next to a small JSON metadata file holding
// its expiry and checksum; a blob whose checksum no longer matches is
// treated as a miss and removed.
type FileCache struct {
	dir string
}

// NewFileCache creates a file-based cache in the given directory.
// The directory will be created if it doesn't exist.
func NewFileCache(dir string) (Cache, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, err
	}
	return &FileCache{dir: dir}, nil
}

// Dir returns the cache directory.
func (c *FileCache) Dir() string { return c.dir }

type entryMeta struct {
	Key       string    `json:"key"`
	Size      int       `json:"size"`
	Sum       string    `json:"sha256"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Get retrieves a value from the cache.
func (c *FileCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	blob, metaPath := c.paths(key)

	raw, err := os.ReadFile(metaPath)
	if os.IsNotExist(err) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}

	var meta entryMeta
	if err := json.Unmarshal(raw, &meta); err != nil || meta.Key != key {
		c.remove(blob, metaPath)
		return nil, false, nil
	}
	if !meta.ExpiresAt.IsZero() && time.Now().After(meta.ExpiresAt) {
		c.remove(blob, metaPath)
		return nil, false, nil
	}

	data, err := os.ReadFile(blob)
	if os.IsNotExist(err) {
		c.remove(blob, metaPath)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	if len(data) != meta.Size || Hash(data) != meta.Sum {
		c.remove(blob, metaPath)
		return nil, false, nil
	}
	return data, true, nil
}

// Set stores a value in the cache. The blob is written before its metadata
// so a reader never sees metadata for a partial blob.
func (c *FileCache) Set(ctx context.Context, key string, data []byte, ttl time.Duration) error {
	blob, metaPath := c.paths(key)
	if err := os.MkdirAll(filepath.Dir(blob), 0755); err != nil {
		return err
	}

	meta := entryMeta{Key: key, Size: len(data), Sum: Hash(data)}
	if ttl > 0 {
		meta.ExpiresAt = time.Now().Add(ttl)
	}
	raw, err := json.Marshal(meta)
	if err != nil {
		return err
	}

	if err := writeAtomic(blob, data); err != nil {
		return err
	}
	return writeAtomic(metaPath, raw)
}

// Delete removes a value from the cache.
func (c *FileCache) Delete(ctx context.Context, key string) error {
	blob, metaPath := c.paths(key)
	for _, p := range []string{metaPath, blob} {
		if err := os.Remove(p); err != nil && !os.IsNotExist(err) {
			return err
		}
	}
	return nil
}

// Close does nothing for file cache.
func (c *FileCache) Close() error {
	return nil
}

// paths converts a cache key to its blob and metadata file paths.
// The first two hash characters select a subdirectory.
func (c *FileCache) paths(key string) (blob, meta string) {
	hash := Hash([]byte(key))
	base := filepath.Join(c.dir, hash[:2], hash[2:])
	return base + ".bin", base + ".json"
}

func (c *FileCache) remove(paths ...string) {
	for _, p := range paths {
		_ = os.Remove(p)
	}
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".tmp-*")
	if err != nil {
		return err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return err
	}
	return os.Rename(tmp.Name(), path)
}

// Ensure FileCache implements Cache.
var _ Cache = (*FileCache)(nil)
