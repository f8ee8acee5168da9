package infrastructure

import (
	"context"

	"github.com/rs/zerolog/log"

	"github.com/Agurato/costars/internal/model"
)

// datasetCacheFile is where the downloaded dataset is kept in the cache folder
const datasetCacheFile = "dataset/latest_movies.json"

// HTTPDataset downloads the movie dataset from a URL on every read.
// The last downloaded copy is kept in the cache and used when the source cannot be reached.
type HTTPDataset struct {
	url   string
	cache *Cache
}

func NewHTTPDataset(url string, cache *Cache) *HTTPDataset {
	return &HTTPDataset{
		url:   url,
		cache: cache,
	}
}

func (hd HTTPDataset) GetMovies(ctx context.Context) []model.Movie {
	hasToWait, err := hd.cache.CacheFile(ctx, hd.url, datasetCacheFile)
	if err != nil || hasToWait {
		if !hd.cache.IsCached(datasetCacheFile) {
			log.Error().Err(err).Str("url", hd.url).Bool("rateLimited", hasToWait).Msg("Could not download movie dataset")
			return nil
		}
		log.Warn().Err(err).Str("url", hd.url).Bool("rateLimited", hasToWait).Msg("Could not download movie dataset, using cached copy")
	}

	f, err := hd.cache.OpenCachedFile(datasetCacheFile)
	if err != nil {
		log.Error().Err(err).Str("url", hd.url).Msg("Could not open cached movie dataset")
		return nil
	}
	defer f.Close()

	movies, err := DecodeMovies(f)
	if err != nil {
		log.Error().Err(err).Str("url", hd.url).Msg("Could not load movie dataset")
		return nil
	}
	return movies
}
