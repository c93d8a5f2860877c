package tmdb

// Status carries the two sentinel outcomes a lookup can produce instead of a
// payload. Err is a hard failure (bad key, network problem, unknown title) and
// Notice a soft "nothing found" (no providers, no trailer). Both strings are
// user-facing and final: the chat layer surfaces them verbatim. At most one of
// the two is set.
type Status struct {
	Err    string
	Notice string
}

// Failed reports whether the lookup ended in either sentinel.
func (s Status) Failed() bool {
	return s.Err != "" || s.Notice != ""
}

// Reply returns the sentinel text, hard failures first.
func (s Status) Reply() string {
	if s.Err != "" {
		return s.Err
	}
	return s.Notice
}

// Platform is a streaming provider offering a movie.
type Platform struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
	Logo string `json:"logo"`
}

// StreamingResult is the outcome of a streaming-availability lookup.
type StreamingResult struct {
	Status
	MovieID   int
	Platforms []Platform
}

// RatingResult is the outcome of a rating lookup.
type RatingResult struct {
	Status
	MovieID int
	Rating  float64
}

// SimilarMovie is one candidate from a similar-movies lookup.
type SimilarMovie struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
}

// SimilarResult is the outcome of a similar-movies lookup.
type SimilarResult struct {
	Status
	MovieID         int
	Recommendations []SimilarMovie
}

// TrailerResult is the outcome of a trailer lookup.
type TrailerResult struct {
	Status
	TrailerURL string
}

// Movie is an entry from the now-playing and discover listings.
type Movie struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	ReleaseDate string `json:"release_date"`
	Overview    string `json:"overview"`
	ImageURL    string `json:"image_url"`
}

// MovieListResult is the outcome of a now-playing or discover-by-genre lookup.
type MovieListResult struct {
	Status
	Movies []Movie
}

// Banner is a landing-page entry built from the popular listing.
type Banner struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
}
