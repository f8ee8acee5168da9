package business

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/Agurato/costars/internal/model"
)

var (
	// ErrInvalidInput is returned when an actor name is missing
	ErrInvalidInput = errors.New("both actor names are required")
	// ErrActorNotFound is returned when an actor is not credited in any movie of the dataset
	ErrActorNotFound = errors.New("actor not found")
	// ErrNoPathFound is returned when both actors are known but not connected
	ErrNoPathFound = errors.New("no path found")
)

// ResultKind tells which outcome a search ended with
type ResultKind string

const (
	ResultPath          ResultKind = "path"
	ResultPaths         ResultKind = "paths"
	ResultInvalidInput  ResultKind = "invalid_input"
	ResultActorNotFound ResultKind = "actor_not_found"
	ResultNoPath        ResultKind = "no_path"
)

// SearchResult is the outcome of a search between two actors
type SearchResult struct {
	Kind        ResultKind          `json:"kind"`
	From        string              `json:"from"`
	To          string              `json:"to"`
	MaxHops     int                 `json:"maxHops,omitempty"`
	Path        model.Path          `json:"path,omitempty"`
	Paths       []model.Path        `json:"paths,omitempty"`
	Missing     []string            `json:"missing,omitempty"`
	Suggestions map[string][]string `json:"suggestions,omitempty"`
}

// MovieProvider supplies the movie dataset. Implementations never fail: a dataset that
// cannot be read is returned as an empty slice.
type MovieProvider interface {
	GetMovies(ctx context.Context) []model.Movie
}

type SearchManager struct {
	MovieProvider
	search BoundedSearch
}

func NewSearchManager(mp MovieProvider) *SearchManager {
	return &SearchManager{
		MovieProvider: mp,
		search:        NewBoundedSearch(DefaultMaxHops),
	}
}

// WithBoundedSearch replaces the settings used by BoundedPaths
func (sm *SearchManager) WithBoundedSearch(bs BoundedSearch) *SearchManager {
	sm.search = bs
	return sm
}

// ShortestPath searches for the path with the fewest hops between two actors
func (sm SearchManager) ShortestPath(ctx context.Context, from, to string) (SearchResult, error) {
	g, result, err := sm.prepare(ctx, from, to)
	if err != nil {
		return result, err
	}

	path := ShortestPath(g, result.From, result.To)
	if len(path) == 0 {
		result.Kind = ResultNoPath
		return result, fmt.Errorf("%w between '%s' and '%s'", ErrNoPathFound, result.From, result.To)
	}
	result.Kind = ResultPath
	result.Path = path
	return result, nil
}

// BoundedPaths searches for a few paths of at most DefaultMaxHops hops between two actors
func (sm SearchManager) BoundedPaths(ctx context.Context, from, to string) (SearchResult, error) {
	g, result, err := sm.prepare(ctx, from, to)
	if err != nil {
		return result, err
	}
	result.MaxHops = sm.search.MaxHops

	paths, err := sm.search.Find(ctx, g, result.From, result.To)
	if err != nil {
		return result, fmt.Errorf("search between '%s' and '%s' interrupted: %w", result.From, result.To, err)
	}
	if len(paths) == 0 {
		result.Kind = ResultNoPath
		return result, fmt.Errorf("%w between '%s' and '%s' with at most %d hops", ErrNoPathFound, result.From, result.To, sm.search.MaxHops)
	}
	result.Kind = ResultPaths
	result.Paths = paths
	return result, nil
}

// Actors returns the sorted actor names starting with prefix (case insensitive), at most limit of them
func (sm SearchManager) Actors(ctx context.Context, prefix string, limit int) []string {
	prefix = strings.ToLower(strings.TrimSpace(prefix))
	actors := lo.Filter(BuildGraph(sm.MovieProvider.GetMovies(ctx)).Actors(), func(actor string, _ int) bool {
		return strings.HasPrefix(strings.ToLower(actor), prefix)
	})
	if limit > 0 && len(actors) > limit {
		actors = actors[:limit]
	}
	return actors
}

// prepare validates the actor names, builds the graph and checks that both actors are in it
func (sm SearchManager) prepare(ctx context.Context, from, to string) (Graph, SearchResult, error) {
	result := SearchResult{
		From: strings.TrimSpace(from),
		To:   strings.TrimSpace(to),
	}
	if result.From == "" || result.To == "" {
		result.Kind = ResultInvalidInput
		return nil, result, ErrInvalidInput
	}

	movies := sm.MovieProvider.GetMovies(ctx)
	g := BuildGraph(movies)
	log.Debug().Int("movies", len(movies)).Int("actors", len(g)).Msg("Built actor graph")

	if missing := g.missingActors(result.From, result.To); len(missing) > 0 {
		result.Kind = ResultActorNotFound
		result.Missing = missing
		for _, actor := range missing {
			if suggestions := suggestActors(g, actor); len(suggestions) > 0 {
				if result.Suggestions == nil {
					result.Suggestions = make(map[string][]string)
				}
				result.Suggestions[actor] = suggestions
			}
		}
		return nil, result, fmt.Errorf("%w: %s", ErrActorNotFound, strings.Join(missing, ", "))
	}

	return g, result, nil
}
