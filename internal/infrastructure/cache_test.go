package infrastructure_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Agurato/costars/internal/infrastructure"
)

func TestCache(t *testing.T) {
	cachePath := t.TempDir()
	cache, err := infrastructure.NewCache(cachePath)
	require.NoError(t, err)

	var slowDownHits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/image.jpg":
			w.Write([]byte("not really a jpeg"))
		case "/slow-down":
			slowDownHits.Add(1)
			w.Header().Set("Retry-After", "3600")
			w.WriteHeader(http.StatusTooManyRequests)
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()

	t.Run("GetCachedPath", func(t *testing.T) {
		path := "/foo/bar"
		abs, err := filepath.Abs(cachePath + path)
		assert.NoError(t, err)
		assert.Equal(t, abs, cache.GetCachedPath(path))
	})

	t.Run("CacheFile", func(t *testing.T) {
		outputFile := "test/image.jpg"
		hasToWait, err := cache.CacheFile(context.Background(), srv.URL+"/image.jpg", outputFile)
		assert.NoError(t, err)
		assert.False(t, hasToWait)
		assert.True(t, cache.IsCached(outputFile))
		content, err := os.ReadFile(cache.GetCachedPath(outputFile))
		assert.NoError(t, err)
		assert.Equal(t, "not really a jpeg", string(content))
	})

	t.Run("TooManyRequests", func(t *testing.T) {
		hasToWait, err := cache.CacheFile(context.Background(), srv.URL+"/slow-down", "test/later.jpg")
		assert.NoError(t, err)
		assert.True(t, hasToWait)
		assert.False(t, cache.IsCached("test/later.jpg"))

		// The source is not requested again before the retry-after delay
		hasToWait, err = cache.CacheFile(context.Background(), srv.URL+"/slow-down", "test/later.jpg")
		assert.NoError(t, err)
		assert.True(t, hasToWait)
		assert.EqualValues(t, 1, slowDownHits.Load())
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := cache.CacheFile(context.Background(), srv.URL+"/missing.jpg", "test/missing.jpg")
		assert.Error(t, err)
		assert.False(t, cache.IsCached("test/missing.jpg"))
	})
}
