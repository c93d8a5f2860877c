package usecase

import (
	"context"

	authdomain "moviebot-backend/internal/auth/domain"
	chatdomain "moviebot-backend/internal/chat/domain"
	"moviebot-backend/pkg/tmdb"
)

// ChatUsecase is the conversational core: one call per inbound chat turn.
type ChatUsecase interface {
	// HandleMessage persists the user message, routes it through the intent
	// rules and persists and returns the bot reply. The user message stays
	// saved even when a later step fails.
	HandleMessage(ctx context.Context, user *authdomain.User, message string) (string, error)
	Transcript(userID string) ([]*chatdomain.Message, error)
	ClearChat(userID string) error
	Landing() (popular, carousel []tmdb.Banner)
}

// MovieGateway is the movie-metadata boundary the router calls. Lookups
// report failures through the result's Status sentinels, never through
// panics or Go errors.
type MovieGateway interface {
	StreamingPlatforms(movieName, region string) tmdb.StreamingResult
	MovieRating(movieName string) tmdb.RatingResult
	SimilarMovies(movieName string) tmdb.SimilarResult
	MovieTrailer(movieName string) tmdb.TrailerResult
	NowPlaying(limit int, region, language string) tmdb.MovieListResult
	DiscoverByGenre(genreID, limit int, region, language string) tmdb.MovieListResult
	Popular(limit int, region, language string, page int) []tmdb.Banner
	CarouselBanners(limit int, region, language string, page int) []tmdb.Banner
}

// Completer is the language-model boundary used when no intent rule matches.
type Completer interface {
	ChatCompletion(ctx context.Context, systemPrompt, userMessage string) (string, error)
}
