package infrastructure

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/rs/zerolog/log"
)

// defaultRetryAfter is used when a rate limited response has no usable retry-after header
const defaultRetryAfter = 5 * time.Minute

type Cache struct {
	cachePath string
	client    *http.Client

	// retryAfter holds, per cached file, the time before which the source must not be requested
	mu         sync.Mutex
	retryAfter map[string]time.Time
}

// NewCache initializes the cache folder
func NewCache(cachePath string) (*Cache, error) {
	if err := os.MkdirAll(cachePath, 0755); err != nil {
		return nil, fmt.Errorf("could not create cache directory: %w", err)
	}
	cachePath, err := filepath.Abs(cachePath)
	if err != nil {
		return nil, fmt.Errorf("could not resolve cache directory: %w", err)
	}
	log.Info().Str("path", cachePath).Msg("Using cache directory")

	return &Cache{
		cachePath:  cachePath,
		client:     &http.Client{Timeout: time.Minute},
		retryAfter: make(map[string]time.Time),
	}, nil
}

// GetCachedPath returns the full path from a filepath in the cache
func (c *Cache) GetCachedPath(filePath string) string {
	return filepath.Join(c.cachePath, filePath)
}

// IsCached returns true if a filepath is in the cache
func (c *Cache) IsCached(filePath string) bool {
	_, err := os.Stat(c.GetCachedPath(filePath))
	return err == nil
}

// CacheFile downloads sourceUrl to filePath in the cache folder, replacing the cached copy.
// Returns true if the URL returned a Status TooManyRequests (429): the current copy is left
// untouched and filePath is not requested again until the delay asked by the server has
// passed, calls made in the meantime return true without any request.
// Returns false if the file was immediately cached.
func (c *Cache) CacheFile(ctx context.Context, sourceUrl string, filePath string) (hasToWait bool, err error) {
	if c.isRateLimited(filePath) {
		return true, nil
	}

	// Create directories in the requested path if needed
	parent := c.GetCachedPath(filepath.Dir(filePath))
	if _, err := os.Stat(parent); errors.Is(err, os.ErrNotExist) {
		if err = os.MkdirAll(parent, 0755); err != nil {
			return false, err
		}
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceUrl, nil)
	if err != nil {
		return false, err
	}
	resp, err := c.client.Do(req)
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusTooManyRequests {
		wait := defaultRetryAfter
		if waitSeconds, err := strconv.Atoi(resp.Header.Get("retry-after")); err == nil {
			wait = time.Duration(waitSeconds) * time.Second
		}
		c.setRetryAfter(filePath, time.Now().Add(wait))
		log.Warn().Str("url", sourceUrl).Dur("wait", wait).Msg("Rate limited, not downloading until the delay has passed")
		return true, nil
	}
	if resp.StatusCode != http.StatusOK {
		return false, fmt.Errorf("could not fetch source file: %s", resp.Status)
	}

	// Write to a temporary file first so that readers never see a partial download
	out, err := os.CreateTemp(parent, ".download-*")
	if err != nil {
		return false, err
	}
	defer os.Remove(out.Name())
	n, err := io.Copy(out, resp.Body)
	if closeErr := out.Close(); err == nil {
		err = closeErr
	}
	if err != nil {
		return false, err
	}
	if err = os.Rename(out.Name(), c.GetCachedPath(filePath)); err != nil {
		return false, err
	}
	log.Debug().Str("url", sourceUrl).Int64("size", n).Msg("Cached file")

	return false, nil
}

func (c *Cache) isRateLimited(filePath string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	deadline, ok := c.retryAfter[filePath]
	if !ok {
		return false
	}
	if time.Now().Before(deadline) {
		return true
	}
	delete(c.retryAfter, filePath)
	return false
}

func (c *Cache) setRetryAfter(filePath string, deadline time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.retryAfter[filePath] = deadline
}

// OpenCachedFile opens a file from the cache
func (c *Cache) OpenCachedFile(filePath string) (*os.File, error) {
	return os.Open(c.GetCachedPath(filePath))
}
