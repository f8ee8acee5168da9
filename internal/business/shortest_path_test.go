package business_test

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Agurato/costars/internal/business"
	"github.com/Agurato/costars/internal/model"
)

func TestShortestPath(t *testing.T) {
	g := business.BuildGraph([]model.Movie{
		{Cast: []string{"A", "B"}},
		{Cast: []string{"B", "C"}},
	})

	assert.Equal(t, model.Path{"A", "B", "C"}, business.ShortestPath(g, "A", "C"))
	assert.Equal(t, model.Path{"C", "B", "A"}, business.ShortestPath(g, "C", "A"))
	assert.Equal(t, model.Path{"A", "B"}, business.ShortestPath(g, "A", "B"))
}

func TestShortestPathSameActor(t *testing.T) {
	g := business.BuildGraph([]model.Movie{
		{Cast: []string{"A", "B"}},
		{Cast: []string{"C"}},
	})
	for _, actor := range g.Actors() {
		assert.Equal(t, model.Path{actor}, business.ShortestPath(g, actor, actor))
	}
}

func TestShortestPathNotFound(t *testing.T) {
	g := business.BuildGraph([]model.Movie{
		{Cast: []string{"A", "B"}},
		{Cast: []string{"C", "D"}},
	})

	assert.Nil(t, business.ShortestPath(g, "A", "C"))
	assert.Nil(t, business.ShortestPath(g, "A", "Z"))
	assert.Nil(t, business.ShortestPath(g, "Z", "A"))
	assert.Nil(t, business.ShortestPath(g, "Z", "Z"))
}

func TestShortestPathTieBreak(t *testing.T) {
	g := business.BuildGraph([]model.Movie{
		{Cast: []string{"A", "B"}},
		{Cast: []string{"A", "C"}},
		{Cast: []string{"C", "D"}},
		{Cast: []string{"B", "D"}},
	})
	// B is queued before C, so D is discovered through B
	assert.Equal(t, model.Path{"A", "B", "D"}, business.ShortestPath(g, "A", "D"))
}

// hopDistances computes all pair hop distances with Floyd-Warshall, -1 meaning unreachable
func hopDistances(movies []model.Movie, actors []string) map[string]map[string]int {
	const inf = 1 << 20
	dist := make(map[string]map[string]int)
	for _, a := range actors {
		dist[a] = make(map[string]int)
		for _, b := range actors {
			dist[a][b] = inf
		}
		dist[a][a] = 0
	}
	for _, movie := range movies {
		for _, a := range movie.Cast {
			for _, b := range movie.Cast {
				if a != b {
					dist[a][b] = 1
				}
			}
		}
	}
	for _, k := range actors {
		for _, i := range actors {
			for _, j := range actors {
				if dist[i][k]+dist[k][j] < dist[i][j] {
					dist[i][j] = dist[i][k] + dist[k][j]
				}
			}
		}
	}
	for _, a := range actors {
		for _, b := range actors {
			if dist[a][b] == inf {
				dist[a][b] = -1
			}
		}
	}
	return dist
}

// randomMovies creates a small dataset with casts drawn from nbActors actors
func randomMovies(r *rand.Rand, nbMovies, nbActors, maxCast int) []model.Movie {
	movies := make([]model.Movie, nbMovies)
	for i := range movies {
		castSize := 1 + r.Intn(maxCast)
		for _, idx := range r.Perm(nbActors)[:castSize] {
			movies[i].Cast = append(movies[i].Cast, fmt.Sprintf("actor%02d", idx))
		}
	}
	return movies
}

// sharesMovie returns true if both actors are credited in one of the movies
func sharesMovie(g business.Graph, a, b string) bool {
	for _, movie := range g[a].Children {
		for _, castMember := range movie.Cast {
			if castMember == b {
				return true
			}
		}
	}
	return false
}

func TestShortestPathIsMinimal(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for round := 0; round < 30; round++ {
		movies := randomMovies(r, 2+r.Intn(10), 12, 3)
		g := business.BuildGraph(movies)
		actors := g.Actors()
		dist := hopDistances(movies, actors)

		for _, a := range actors {
			for _, b := range actors {
				path := business.ShortestPath(g, a, b)
				if dist[a][b] < 0 {
					assert.Nil(t, path, "round %d: %s -> %s", round, a, b)
					continue
				}
				require.NotEmpty(t, path, "round %d: %s -> %s", round, a, b)
				assert.Equal(t, dist[a][b], path.Hops(), "round %d: %s -> %s", round, a, b)
				assert.Equal(t, a, path[0])
				assert.Equal(t, b, path[len(path)-1])
				for i := 1; i < len(path); i++ {
					assert.True(t, sharesMovie(g, path[i-1], path[i]), "round %d: %v", round, path)
				}
			}
		}
	}
}
