// Package imagecache stores downloaded images on disk keyed by URL.
package imagecache

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// Cache is a directory of downloaded images.
type Cache struct {
	dir string
}

// New returns a cache rooted at dir. An empty dir selects DefaultDir.
func New(dir string) (*Cache, error) {
	if dir == "" {
		d, err := DefaultDir()
		if err != nil {
			return nil, err
		}
		dir = d
	}
	return &Cache{dir: dir}, nil
}

// DefaultDir returns $XDG_CACHE_HOME/termtint/images or its platform
// equivalent.
func DefaultDir() (string, error) {
	cacheDir, err := os.UserCacheDir()
	if err != nil {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("failed to determine cache directory: %w", err)
		}
		return filepath.Join(home, ".cache", "termtint", "images"), nil
	}
	return filepath.Join(cacheDir, "termtint", "images"), nil
}

// Dir returns the cache directory.
func (c *Cache) Dir() string {
	return c.dir
}

// Path returns the file a URL is cached under: the first 16 bytes of the
// URL's SHA-256 in hex plus the URL's extension (".jpg" when it has none).
func (c *Cache) Path(url string) string {
	hash := sha256.Sum256([]byte(url))

	ext := filepath.Ext(url)
	if idx := strings.IndexAny(ext, "?#"); idx != -1 {
		ext = ext[:idx]
	}
	if ext == "" || len(ext) > 5 || strings.ContainsRune(ext, '/') {
		ext = ".jpg"
	}

	return filepath.Join(c.dir, fmt.Sprintf("%x", hash[:16])+strings.ToLower(ext))
}

// Get returns the cached bytes for url, if present.
func (c *Cache) Get(url string) ([]byte, bool) {
	data, err := os.ReadFile(c.Path(url))
	if err != nil || len(data) == 0 {
		return nil, false
	}
	return data, true
}

// Put stores data for url, creating the cache directory if needed.
func (c *Cache) Put(url string, data []byte) error {
	if err := os.MkdirAll(c.dir, 0o755); err != nil { // #nosec G301 - Cache directory needs standard permissions
		return fmt.Errorf("failed to create cache directory: %w", err)
	}

	// Write then rename so readers never see a partial file.
	tmp, err := os.CreateTemp(c.dir, ".download-*")
	if err != nil {
		return fmt.Errorf("failed to create cache file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("failed to write cached image: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to write cached image: %w", err)
	}
	if err := os.Rename(tmp.Name(), c.Path(url)); err != nil {
		return fmt.Errorf("failed to store cached image: %w", err)
	}
	return nil
}
