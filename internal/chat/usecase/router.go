package usecase

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	authdomain "moviebot-backend/internal/auth/domain"
	chatdomain "moviebot-backend/internal/chat/domain"
	"moviebot-backend/pkg/tmdb"
)

const defaultReply = "Lo siento, no entendí tu mensaje."

// turn carries the state of one chat turn through the rule handlers: the
// normalized message, the dedup set read at turn start, and the
// recommendations registered while composing the reply. register mutates the
// set, so candidates surfaced later in the same turn are deduped against
// earlier ones too.
type turn struct {
	user        *authdomain.User
	original    string
	normalized  string
	recommended map[int]struct{}
	pending     []chatdomain.Recommendation
}

func (t *turn) seen(movieID int) bool {
	_, ok := t.recommended[movieID]
	return ok
}

func (t *turn) register(movieID int, title string) {
	if t.seen(movieID) {
		return
	}
	t.recommended[movieID] = struct{}{}
	t.pending = append(t.pending, chatdomain.Recommendation{
		UserID:     t.user.ID,
		MovieID:    movieID,
		MovieTitle: title,
	})
}

func (t *turn) region() string {
	if t.user.Region != "" {
		return t.user.Region
	}
	return "US"
}

// rule is one entry of the intent decision table. Phrases are checked in
// declared order; the first one contained in the normalized message decides
// both the match and the offset the argument is extracted from.
type rule struct {
	phrases []string
	handle  func(u *chatUsecase, ctx context.Context, t *turn, arg string) string
}

// The cascade is first-match-wins, so order matters: "recomiendame" also
// appears inside messages that earlier rules must claim first.
var rules = []rule{
	{
		phrases: []string{"donde puedo ver"},
		handle:  (*chatUsecase).handleStreaming,
	},
	{
		phrases: []string{"que evaluacion tiene", "que puntuacion tiene", "que rating tiene"},
		handle:  (*chatUsecase).handleRating,
	},
	{
		phrases: []string{"parecida a"},
		handle:  (*chatUsecase).handleSimilar,
	},
	{
		phrases: []string{"muestras el trailer de"},
		handle:  (*chatUsecase).handleTrailer,
	},
	{
		phrases: []string{"me recomiendas", "recomiendame"},
		handle:  (*chatUsecase).handleRecommend,
	},
	{
		phrases: []string{"peliculas mas recientes", "estrenos"},
		handle:  (*chatUsecase).handleNowPlaying,
	},
}

// route classifies the turn's message and composes the reply. Messages no
// rule claims go to the language-model fallback.
func (u *chatUsecase) route(ctx context.Context, t *turn) string {
	for _, r := range rules {
		for _, phrase := range r.phrases {
			idx := strings.Index(t.normalized, phrase)
			if idx < 0 {
				continue
			}
			arg := strings.TrimSpace(t.normalized[idx+len(phrase):])
			return r.handle(u, ctx, t, arg)
		}
	}
	return u.fallback(ctx, t)
}

// Rule 1: streaming availability for a named movie.
func (u *chatUsecase) handleStreaming(_ context.Context, t *turn, movieName string) string {
	result := u.gateway.StreamingPlatforms(movieName, t.region())
	if result.Failed() {
		return result.Reply()
	}

	names := make([]string, 0, len(result.Platforms))
	for _, p := range result.Platforms {
		names = append(names, p.Name)
	}
	return fmt.Sprintf("La película '%s' está disponible en: %s.", movieName, strings.Join(names, ", "))
}

// Rule 2: average rating for a named movie. Informational, never registered.
func (u *chatUsecase) handleRating(_ context.Context, t *turn, movieName string) string {
	result := u.gateway.MovieRating(movieName)
	if result.Failed() {
		return result.Reply()
	}
	return fmt.Sprintf("La película '%s' tiene una puntuación promedio de %s.", movieName, formatRating(result.Rating))
}

// Rule 3: movies similar to a named one. The reply lists every candidate not
// already in the ledger; at most the first 5 fresh candidates get registered.
func (u *chatUsecase) handleSimilar(_ context.Context, t *turn, movieName string) string {
	result := u.gateway.SimilarMovies(movieName)
	if result.Failed() {
		return result.Reply()
	}

	var lines []string
	for _, m := range result.Recommendations {
		if !t.seen(m.ID) {
			lines = append(lines, fmt.Sprintf("%s (estrenada el %s)", m.Title, m.ReleaseDate))
		}
	}
	if len(lines) == 0 {
		return fmt.Sprintf("No hay más similares a '%s' que no te haya recomendado.", movieName)
	}

	candidates := result.Recommendations
	if len(candidates) > 5 {
		candidates = candidates[:5]
	}
	for _, m := range candidates {
		t.register(m.ID, m.Title)
	}

	return fmt.Sprintf("Películas similares a '%s':\n%s", movieName, strings.Join(lines, "\n"))
}

// Rule 4: trailer for a named movie.
func (u *chatUsecase) handleTrailer(_ context.Context, t *turn, movieName string) string {
	result := u.gateway.MovieTrailer(movieName)
	if result.Failed() {
		return result.Reply()
	}
	return fmt.Sprintf("Aquí está el tráiler de '%s': %s", movieName, result.TrailerURL)
}

// Rule 5: open recommendation request. The trailing text decides the
// sub-flow: a known genre word, a generic ask, or a literal title.
func (u *chatUsecase) handleRecommend(ctx context.Context, t *turn, tail string) string {
	if genre, ok := chatdomain.FindGenre(tail); ok {
		result := u.gateway.DiscoverByGenre(genre.ID, listLimit, t.region(), u.language)
		if result.Failed() {
			return result.Reply()
		}
		return t.listAndRegister(result.Movies,
			fmt.Sprintf("Películas de %s que podrían gustarte:", genre.Word),
			fmt.Sprintf("Todas las de %s ya te las recomendé.", genre.Word),
			"No encontré películas de ese género en este momento.")
	}

	if tail == "" || strings.Contains(tail, "pelicula") ||
		strings.Contains(tail, "reciente") || strings.Contains(tail, "algo") {
		result := u.gateway.NowPlaying(listLimit, t.region(), u.language)
		if result.Failed() {
			return result.Reply()
		}
		return t.listAndRegister(result.Movies,
			"Aquí tienes algunas películas recientes en cartelera:",
			"Ya te recomendé todas las recientes.",
			"No encontré películas recientes en este momento.")
	}

	// Anything else reads as a literal title: answer with its rating but do
	// not register it, this is a question, not a suggestion.
	result := u.gateway.MovieRating(tail)
	if result.Failed() {
		return result.Reply()
	}
	return fmt.Sprintf("Para la película '%s', la puntuación promedio en TMDB es %s. ¿Te gustaría saber algo más?",
		tail, formatRating(result.Rating))
}

// Rule 6: latest releases without further qualification.
func (u *chatUsecase) handleNowPlaying(_ context.Context, t *turn, _ string) string {
	result := u.gateway.NowPlaying(listLimit, t.region(), u.language)
	if result.Failed() {
		return result.Reply()
	}
	return t.listAndRegister(result.Movies,
		"Aquí tienes algunas películas recientes en cartelera:",
		"Todas las recientes ya te las recomendé.",
		"No encontré películas recientes en este momento.")
}

const listLimit = 5

// listAndRegister composes a movie listing filtered against the ledger and
// registers exactly the movies shown, keeping displayed and persisted
// membership identical.
func (t *turn) listAndRegister(movies []tmdb.Movie, header, allSeenMsg, emptyMsg string) string {
	if len(movies) == 0 {
		return emptyMsg
	}

	var lines []string
	for _, m := range movies {
		if !t.seen(m.ID) {
			lines = append(lines, fmt.Sprintf("%s (Estreno: %s)", m.Title, m.ReleaseDate))
		}
	}
	if len(lines) == 0 {
		return allSeenMsg
	}

	for _, m := range movies {
		t.register(m.ID, m.Title)
	}
	return header + "\n" + strings.Join(lines, "\n")
}

func formatRating(rating float64) string {
	return strconv.FormatFloat(rating, 'f', -1, 64)
}
