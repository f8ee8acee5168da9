package infrastructure

import (
	"os"
	"testing"

	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestReleaseYear(t *testing.T) {
	assert.Equal(t, 2019, releaseYear("2019-12-25"))
	assert.Equal(t, 0, releaseYear(""))
	assert.Equal(t, 0, releaseYear("20"))
	assert.Equal(t, 0, releaseYear("soon"))
}

func newTestMetadataWrapper(t *testing.T) *MetadataWrapper {
	godotenv.Load("../../.env")
	apiKey := os.Getenv("TMDB_API_KEY")
	if apiKey == "" {
		t.Skip("TMDB_API_KEY is not set")
	}
	mw, err := NewMetadataWrapper(apiKey)
	if err != nil {
		t.Fatal(err)
	}
	return mw
}

func TestGetMovieCast(t *testing.T) {
	mw := newTestMetadataWrapper(t)

	// 1917
	cast, err := mw.GetMovieCast(530915, 5)
	assert.NoError(t, err)
	assert.Len(t, cast, 5)
	assert.Contains(t, cast, "George MacKay")
}

func TestFetchMovies(t *testing.T) {
	mw := newTestMetadataWrapper(t)

	movies, err := mw.FetchMovies(ListPopular, 1, 3)
	assert.NoError(t, err)
	assert.NotEmpty(t, movies)
	for _, movie := range movies {
		assert.NotEmpty(t, movie.Title)
		assert.LessOrEqual(t, len(movie.Cast), 3)
	}

	_, err = mw.FetchMovies("upcoming_soon", 1, 3)
	assert.ErrorIs(t, err, ErrUnknownList)
}
