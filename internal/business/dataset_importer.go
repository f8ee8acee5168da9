package business

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/Agurato/costars/internal/model"
)

// ErrEmptyDataset is returned when the source has no movie to import
var ErrEmptyDataset = errors.New("dataset is empty")

// MovieReplacer stores a movie dataset, replacing the previous one
type MovieReplacer interface {
	ReplaceMovies(ctx context.Context, movies []model.Movie) error
}

// DatasetImporter copies the movies from a provider to a store
type DatasetImporter struct {
	MovieProvider
	MovieReplacer
}

func NewDatasetImporter(mp MovieProvider, mr MovieReplacer) *DatasetImporter {
	return &DatasetImporter{
		MovieProvider: mp,
		MovieReplacer: mr,
	}
}

// Import replaces the stored dataset with the provider's one and returns the number of
// imported movies.
// Providers return an empty dataset when they fail, so an empty dataset is never imported:
// the stored one is kept instead.
func (di DatasetImporter) Import(ctx context.Context) (int, error) {
	movies := di.MovieProvider.GetMovies(ctx)
	if len(movies) == 0 {
		return 0, ErrEmptyDataset
	}
	if err := di.MovieReplacer.ReplaceMovies(ctx, movies); err != nil {
		return 0, fmt.Errorf("could not store %d movies: %w", len(movies), err)
	}
	log.Info().Int("movies", len(movies)).Msg("Imported dataset")
	return len(movies), nil
}
