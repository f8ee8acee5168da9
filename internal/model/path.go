package model

import "strings"

// PathSeparator is used when a path is displayed as a single string
const PathSeparator = " -> "

// Path is a chain of actors where each consecutive pair shares a movie.
// The first element is the source actor, the last one the target actor.
type Path []string

// Hops returns the number of co-appearance steps in the path
func (p Path) Hops() int {
	if len(p) == 0 {
		return 0
	}
	return len(p) - 1
}

func (p Path) String() string {
	return strings.Join(p, PathSeparator)
}
