// Package image loads wallpapers and photos and turns them into pixel
// buffers for palette generation.
package image

import (
	"bytes"
	"context"
	"crypto/rand"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format
	_ "image/jpeg" // Register JPEG format
	_ "image/png"  // Register PNG format
	"io"
	"math/big"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/hashicorp/go-hclog"
	_ "golang.org/x/image/webp" // Register WebP format

	httputil "github.com/jmylchreest/termtint/internal/util/http"
	"github.com/jmylchreest/termtint/internal/util/imagecache"
)

// Loader handles loading images from various sources.
type Loader interface {
	// Load loads an image from the given path or URL.
	Load(ctx context.Context, path string) (image.Image, error)
}

// FileLoader loads images from the local filesystem.
type FileLoader struct{}

// NewFileLoader creates a new FileLoader instance.
func NewFileLoader() *FileLoader {
	return &FileLoader{}
}

// Load loads an image from a file path.
// Supported formats: JPEG, PNG, GIF, WebP.
func (l *FileLoader) Load(_ context.Context, path string) (image.Image, error) {
	if path == "" {
		return nil, fmt.Errorf("image path cannot be empty")
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("image file not found: %s", path)
		}
		return nil, fmt.Errorf("failed to stat image file: %w", err)
	}
	if info.IsDir() {
		return nil, fmt.Errorf("path is a directory, not a file: %s", path)
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return nil, fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	return decode(file)
}

// URLLoader fetches images over HTTP(S). Downloads are kept in cache when
// one is set; failing to cache never fails a load.
type URLLoader struct {
	opts   httputil.FetchOptions
	cache  *imagecache.Cache
	logger hclog.Logger
}

// NewURLLoader creates a URLLoader. cache and logger may be nil.
func NewURLLoader(opts httputil.FetchOptions, cache *imagecache.Cache, logger hclog.Logger) *URLLoader {
	if logger == nil {
		logger = hclog.NewNullLogger()
	}
	return &URLLoader{opts: opts, cache: cache, logger: logger}
}

// Load fetches and decodes the image at url.
func (l *URLLoader) Load(ctx context.Context, url string) (image.Image, error) {
	if l.cache != nil {
		if data, ok := l.cache.Get(url); ok {
			if img, err := decode(bytes.NewReader(data)); err == nil {
				l.logger.Debug("using cached image", "url", url, "path", l.cache.Path(url))
				return img, nil
			}
		}
	}

	data, err := httputil.Fetch(ctx, url, l.opts)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch image from URL: %w", err)
	}
	img, err := decode(bytes.NewReader(data))
	if err != nil {
		return nil, err
	}

	if l.cache != nil {
		if err := l.cache.Put(url, data); err != nil {
			l.logger.Warn("failed to cache downloaded image", "url", url, "error", err)
		}
	}
	return img, nil
}

// SmartLoader picks the file or URL loader based on the path.
type SmartLoader struct {
	file *FileLoader
	url  *URLLoader
}

// NewSmartLoader creates a new SmartLoader. cache may be nil to disable
// caching of downloads; logger may be nil.
func NewSmartLoader(cache *imagecache.Cache, logger hclog.Logger) *SmartLoader {
	return &SmartLoader{
		file: NewFileLoader(),
		url:  NewURLLoader(httputil.FetchOptions{}, cache, logger),
	}
}

// Load loads an image from either a local file path or HTTP(S) URL.
func (l *SmartLoader) Load(ctx context.Context, path string) (image.Image, error) {
	if IsURL(path) {
		return l.url.Load(ctx, path)
	}
	return l.file.Load(ctx, path)
}

func decode(r io.Reader) (image.Image, error) {
	img, format, err := image.Decode(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image (format: %s): %w", format, err)
	}
	return img, nil
}

// IsURL reports whether path is an HTTP(S) URL.
func IsURL(path string) bool {
	return strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://")
}

// ValidateImagePath checks that path is a URL, a directory, or a decodable
// image file. URLs are not fetched here.
func ValidateImagePath(path string) error {
	if path == "" {
		return fmt.Errorf("image path cannot be empty")
	}
	if IsURL(path) {
		return nil
	}

	info, err := os.Stat(path)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("image file or directory not found: %s", path)
		}
		return fmt.Errorf("failed to access image path: %w", err)
	}
	if info.IsDir() {
		return nil
	}

	file, err := os.Open(path) // #nosec G304 - User-specified image path, intended to be read
	if err != nil {
		return fmt.Errorf("failed to open image file: %w", err)
	}
	defer file.Close()

	if _, _, err := image.DecodeConfig(file); err != nil {
		return fmt.Errorf("unsupported or invalid image format: %w", err)
	}
	return nil
}

// SupportedImageExtensions returns a list of supported image file extensions.
func SupportedImageExtensions() []string {
	return []string{".jpg", ".jpeg", ".png", ".gif", ".webp"}
}

// ScanDirectoryForImages returns the supported image files directly inside
// dirPath, sorted by name. Symlinks are followed.
func ScanDirectoryForImages(dirPath string) ([]string, error) {
	entries, err := os.ReadDir(dirPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read directory: %w", err)
	}

	var images []string
	for _, entry := range entries {
		fullPath := filepath.Join(dirPath, entry.Name())
		info, err := os.Stat(fullPath)
		if err != nil || info.IsDir() {
			continue
		}
		if slices.Contains(SupportedImageExtensions(), strings.ToLower(filepath.Ext(entry.Name()))) {
			images = append(images, fullPath)
		}
	}

	if len(images) == 0 {
		return nil, fmt.Errorf("no supported image files found in directory: %s", dirPath)
	}
	return images, nil
}

// ResolveImagePath returns path unchanged for files and URLs, and a randomly
// chosen image for directories.
func ResolveImagePath(path string) (string, error) {
	if IsURL(path) {
		return path, nil
	}

	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to access path: %w", err)
	}
	if !info.IsDir() {
		return path, nil
	}

	images, err := ScanDirectoryForImages(path)
	if err != nil {
		return "", err
	}

	idx, err := rand.Int(rand.Reader, big.NewInt(int64(len(images))))
	if err != nil {
		return "", fmt.Errorf("failed to generate random number: %w", err)
	}
	return images[idx.Int64()], nil
}
