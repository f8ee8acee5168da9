package infrastructure

import (
	"errors"
	"fmt"
	"strconv"

	tmdb "github.com/cyruzin/golang-tmdb"
	"github.com/rs/zerolog/log"

	"github.com/Agurato/costars/internal/model"
)

// Movie lists that can be fetched from TMDB
const (
	ListNowPlaying = "now_playing"
	ListPopular    = "popular"
)

var ErrUnknownList = errors.New("unknown movie list")

type MetadataWrapper struct {
	client *tmdb.Client
}

// NewMetadataWrapper initializes a MetadataWrapper
func NewMetadataWrapper(tmdbAPIKey string) (*MetadataWrapper, error) {
	client, err := tmdb.Init(tmdbAPIKey)
	if err != nil {
		return nil, err
	}
	return &MetadataWrapper{
		client: client,
	}, nil
}

type movieSummary struct {
	ID          int64
	Title       string
	ReleaseDate string
}

// FetchMovies builds a dataset from the first pages of a TMDB movie list.
// Only the castSize first credited actors of each movie are kept (all of them if castSize
// is not positive). A movie whose credits cannot be fetched is skipped.
func (mw MetadataWrapper) FetchMovies(list string, pages, castSize int) ([]model.Movie, error) {
	var movies []model.Movie
	for page := 1; page <= pages; page++ {
		summaries, err := mw.fetchListPage(list, page)
		if err != nil {
			return nil, fmt.Errorf("could not fetch page %d of %s movies: %w", page, list, err)
		}
		if len(summaries) == 0 {
			break
		}
		for _, summary := range summaries {
			cast, err := mw.GetMovieCast(int(summary.ID), castSize)
			if err != nil {
				log.Error().Err(err).Int64("tmdbID", summary.ID).Msg("Unable to fetch film credits from TMDB")
				continue
			}
			movies = append(movies, model.Movie{
				Title: summary.Title,
				Year:  releaseYear(summary.ReleaseDate),
				Cast:  cast,
			})
		}
		log.Debug().Int("page", page).Int("movies", len(movies)).Msg("Fetched TMDB movie list page")
	}
	return movies, nil
}

// GetMovieCast returns the names of the castSize first credited actors of a movie
func (mw MetadataWrapper) GetMovieCast(tmdbID, castSize int) ([]string, error) {
	credits, err := mw.client.GetMovieCredits(tmdbID, nil)
	if err != nil {
		return nil, err
	}
	var cast []string
	for _, c := range credits.Cast {
		if castSize > 0 && len(cast) >= castSize {
			break
		}
		cast = append(cast, c.Name)
	}
	return cast, nil
}

func (mw MetadataWrapper) fetchListPage(list string, page int) ([]movieSummary, error) {
	urlOptions := map[string]string{"page": strconv.Itoa(page)}
	var summaries []movieSummary
	switch list {
	case ListNowPlaying:
		res, err := mw.client.GetMovieNowPlaying(urlOptions)
		if err != nil {
			return nil, err
		}
		for _, r := range res.Results {
			summaries = append(summaries, movieSummary{ID: r.ID, Title: r.Title, ReleaseDate: r.ReleaseDate})
		}
	case ListPopular:
		res, err := mw.client.GetMoviePopular(urlOptions)
		if err != nil {
			return nil, err
		}
		for _, r := range res.Results {
			summaries = append(summaries, movieSummary{ID: r.ID, Title: r.Title, ReleaseDate: r.ReleaseDate})
		}
	default:
		return nil, fmt.Errorf("%w: %s", ErrUnknownList, list)
	}
	return summaries, nil
}

// releaseYear returns the year of a TMDB release date (YYYY-MM-DD), 0 if unknown
func releaseYear(releaseDate string) int {
	if len(releaseDate) < 4 {
		return 0
	}
	year, err := strconv.Atoi(releaseDate[:4])
	if err != nil {
		return 0
	}
	return year
}
