package business

import (
	"slices"

	"github.com/samber/lo"

	"github.com/Agurato/costars/internal/model"
)

// Graph indexes every credited actor to the movies they appeared in.
// Two actors are connected when they share at least one movie.
type Graph map[string]*model.ActorNode

// BuildGraph creates the actor graph from a movie dataset. Movies and casts are walked in
// order, so each actor's movies keep the dataset order.
func BuildGraph(movies []model.Movie) Graph {
	g := make(Graph)
	for i := range movies {
		movie := &movies[i]
		for _, actor := range movie.Cast {
			node, ok := g[actor]
			if !ok {
				node = &model.ActorNode{Actor: actor}
				g[actor] = node
			}
			node.Children = append(node.Children, movie)
		}
	}
	return g
}

// HasActor returns true if the actor is credited in at least one movie
func (g Graph) HasActor(actor string) bool {
	_, ok := g[actor]
	return ok
}

// Actors returns the sorted list of actor names
func (g Graph) Actors() []string {
	actors := lo.Keys(g)
	slices.Sort(actors)
	return actors
}

// missingActors returns the names that are not in the graph, without duplicates
func (g Graph) missingActors(actors ...string) []string {
	return lo.Uniq(lo.Filter(actors, func(actor string, _ int) bool {
		return !g.HasActor(actor)
	}))
}
