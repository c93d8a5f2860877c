package domain

import "strings"

// GenreMapping ties a normalized Spanish genre word to its TMDB genre id.
type GenreMapping struct {
	Word string
	ID   int
}

// GenreMap is checked in order when a recommendation request mentions a
// genre; the first word contained in the message wins.
var GenreMap = []GenreMapping{
	{"accion", 28},
	{"terror", 27},
	{"comedia", 35},
	{"drama", 18},
	{"romance", 10749},
	{"suspenso", 53},
}

// FindGenre returns the first mapped genre whose word appears in text.
func FindGenre(text string) (GenreMapping, bool) {
	for _, g := range GenreMap {
		if strings.Contains(text, g.Word) {
			return g, true
		}
	}
	return GenreMapping{}, false
}
