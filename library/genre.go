package library

import "fmt"

// Genre is one of the fixed catalog genres.
type Genre string

const (
	GenreScienceFiction    Genre = "Science Fiction"
	GenreFantasy           Genre = "Fantasy"
	GenreThriller          Genre = "Thriller"
	GenreNonFiction        Genre = "Non-Fiction"
	GenreYoungAdult        Genre = "Young Adult"
	GenreClassicLiterature Genre = "Classic Literature"
	GenreTechnology        Genre = "Technology"
	GenreBusiness          Genre = "Business"
	GenreArtAndDesign      Genre = "Art & Design"
)

var allGenres = []Genre{
	GenreScienceFiction,
	GenreFantasy,
	GenreThriller,
	GenreNonFiction,
	GenreYoungAdult,
	GenreClassicLiterature,
	GenreTechnology,
	GenreBusiness,
	GenreArtAndDesign,
}

var validGenres = func() map[Genre]bool {
	m := make(map[Genre]bool, len(allGenres))
	for _, g := range allGenres {
		m[g] = true
	}
	return m
}()

// Genres lists the allowed genres in catalog order.
func Genres() []Genre {
	out := make([]Genre, len(allGenres))
	copy(out, allGenres)
	return out
}

// Valid reports whether g is one of the allowed genres. Matching is exact.
func (g Genre) Valid() bool { return validGenres[g] }

func (g Genre) String() string { return string(g) }

// ParseGenre converts caller input into a Genre.
func ParseGenre(s string) (Genre, error) {
	g := Genre(s)
	if !g.Valid() {
		return "", fmt.Errorf("%w: %q", ErrInvalidGenre, s)
	}
	return g, nil
}
