package business

import (
	"slices"

	"github.com/Agurato/costars/internal/model"
)

// ShortestPath returns a path with the fewest hops between source and target, using a
// breadth-first search over co-appearances.
// Co-stars are queued in movie then cast order, so among several shortest paths the first
// one discovered is returned.
// It returns nil if one of the actors is not in the graph or if they are not connected.
func ShortestPath(g Graph, source, target string) model.Path {
	if !g.HasActor(source) || !g.HasActor(target) {
		return nil
	}

	queue := []string{source}
	visited := map[string]bool{source: true}
	parent := make(map[string]string)

	for len(queue) > 0 {
		current := queue[0]
		queue = queue[1:]

		if current == target {
			return walkBack(parent, source, target)
		}

		for _, movie := range g[current].Children {
			for _, costar := range movie.Cast {
				if visited[costar] {
					continue
				}
				visited[costar] = true
				parent[costar] = current
				queue = append(queue, costar)
			}
		}
	}

	return nil
}

// walkBack follows the parent links from target up to source
func walkBack(parent map[string]string, source, target string) model.Path {
	path := model.Path{target}
	for node := target; node != source; {
		node = parent[node]
		path = append(path, node)
	}
	slices.Reverse(path)
	return path
}
