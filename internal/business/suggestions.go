package business

import (
	"slices"
	"strings"
	"unicode/utf8"

	"github.com/agnivade/levenshtein"
)

// maxSuggestions is the number of close names returned for an unknown actor
const maxSuggestions = 3

type suggestion struct {
	actor    string
	distance int
}

// suggestActors returns the actors whose name is close to the unknown one, closest first.
// A name is close when its case insensitive Levenshtein distance is at most a third of the
// searched name's length.
func suggestActors(g Graph, name string) []string {
	threshold := max(utf8.RuneCountInString(name)/3, 1)
	lowerName := strings.ToLower(name)

	var suggestions []suggestion
	for actor := range g {
		distance := levenshtein.ComputeDistance(lowerName, strings.ToLower(actor))
		if distance <= threshold {
			suggestions = append(suggestions, suggestion{actor: actor, distance: distance})
		}
	}
	slices.SortFunc(suggestions, func(a, b suggestion) int {
		if a.distance != b.distance {
			return a.distance - b.distance
		}
		return strings.Compare(a.actor, b.actor)
	})

	var actors []string
	for i := 0; i < len(suggestions) && i < maxSuggestions; i++ {
		actors = append(actors, suggestions[i].actor)
	}
	return actors
}
