package infrastructure

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/goccy/go-json"
	"github.com/rs/zerolog/log"

	"github.com/Agurato/costars/internal/model"
)

// FileDataset reads the movie dataset from a JSON file on disk
type FileDataset struct {
	path string
}

func NewFileDataset(path string) *FileDataset {
	return &FileDataset{
		path: path,
	}
}

// GetMovies reads the dataset file. An unreadable file gives an empty dataset.
func (fd FileDataset) GetMovies(context.Context) []model.Movie {
	movies, err := ReadMoviesFile(fd.path)
	if err != nil {
		log.Error().Err(err).Str("path", fd.path).Msg("Could not load movie dataset")
		return nil
	}
	return movies
}

// ReadMoviesFile decodes a JSON array of movies from a file
func ReadMoviesFile(path string) ([]model.Movie, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	return DecodeMovies(f)
}

// DecodeMovies decodes a JSON array of movies, each one having at least a "cast" array of names
func DecodeMovies(r io.Reader) ([]model.Movie, error) {
	var movies []model.Movie
	if err := json.NewDecoder(r).Decode(&movies); err != nil {
		return nil, fmt.Errorf("could not decode movie dataset: %w", err)
	}
	return movies, nil
}

// WriteMoviesFile writes the movies as an indented JSON array
func WriteMoviesFile(path string, movies []model.Movie) error {
	data, err := json.MarshalIndent(movies, "", "  ")
	if err != nil {
		return fmt.Errorf("could not encode movie dataset: %w", err)
	}
	return os.WriteFile(path, data, 0644)
}
