package business

import (
	"context"
	"maps"
	"slices"

	"github.com/samber/lo"

	"github.com/Agurato/costars/internal/model"
)

const (
	// DefaultMaxHops is the hop limit of the "six degrees" search
	DefaultMaxHops = 6
	// DefaultPathLimit is the number of paths after which the search stops
	DefaultPathLimit = 5
	// DefaultMaxSharedCast is the number of cast members a movie may share with the path
	// walked so far and still be expanded
	DefaultMaxSharedCast = 2
)

// BoundedSearch enumerates paths between two actors with a depth-first search.
//
// Paths through movies sharing more than MaxSharedCast already-visited cast members are not
// explored: this prunes big ensembles that would otherwise be walked again and again, at the
// cost of completeness. The search is also not guaranteed to return the shortest paths
// first, only paths of at most MaxHops hops.
type BoundedSearch struct {
	MaxHops       int
	Limit         int
	MaxSharedCast int
}

// NewBoundedSearch returns a BoundedSearch with the default path limit and pruning policy
func NewBoundedSearch(maxHops int) BoundedSearch {
	return BoundedSearch{
		MaxHops:       maxHops,
		Limit:         DefaultPathLimit,
		MaxSharedCast: DefaultMaxSharedCast,
	}
}

// BoundedPaths returns up to DefaultPathLimit paths of at most maxHops hops from source to target
func BoundedPaths(ctx context.Context, g Graph, source, target string, maxHops int) ([]model.Path, error) {
	return NewBoundedSearch(maxHops).Find(ctx, g, source, target)
}

// Find runs the search. Callers are expected to check that both actors are in the graph
// beforehand: an unknown source yields no path, an unknown target makes the search run
// until every branch is exhausted.
// The context is checked at every step and its error is returned if it is done, along
// with the paths found so far.
func (bs BoundedSearch) Find(ctx context.Context, g Graph, source, target string) ([]model.Path, error) {
	if bs.Limit <= 0 {
		bs.Limit = DefaultPathLimit
	}
	if !g.HasActor(source) {
		return nil, nil
	}

	run := &boundedRun{
		ctx:    ctx,
		graph:  g,
		target: target,
		opts:   bs,
	}
	run.visit(source, nil, 0, make(map[string]struct{}))
	return run.paths, run.err
}

// boundedRun holds the state of one search. paths is the only accumulator shared between
// branches, the visited set and the path are owned by each call.
type boundedRun struct {
	ctx    context.Context
	graph  Graph
	target string
	opts   BoundedSearch

	paths []model.Path
	err   error
}

// visit explores actor, reached at the given depth after walking path.
// path does not include actor and is never modified in place.
func (r *boundedRun) visit(actor string, path []string, depth int, visited map[string]struct{}) {
	if r.err != nil || depth > r.opts.MaxHops || len(r.paths) >= r.opts.Limit {
		return
	}
	if err := r.ctx.Err(); err != nil {
		r.err = err
		return
	}

	visited[actor] = struct{}{}

	if actor == r.target {
		r.paths = append(r.paths, append(model.Path(slices.Clone(path)), actor))
		return
	}

	next := append(slices.Clone(path), actor)
	// A co-star found in several movies is expanded once, otherwise the same actor
	// sequence would be reported for every shared movie.
	expanded := make(map[string]struct{})
	for _, movie := range r.graph[actor].Children {
		shared := lo.CountBy(movie.Cast, func(castMember string) bool {
			return lo.Contains(path, castMember)
		})
		if shared > r.opts.MaxSharedCast {
			continue
		}
		for _, costar := range movie.Cast {
			if _, ok := visited[costar]; ok {
				continue
			}
			if _, ok := expanded[costar]; ok {
				continue
			}
			expanded[costar] = struct{}{}
			r.visit(costar, next, depth+1, maps.Clone(visited))
		}
	}
}
