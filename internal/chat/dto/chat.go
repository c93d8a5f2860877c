package dto

import (
	chatdomain "moviebot-backend/internal/chat/domain"
	"moviebot-backend/pkg/tmdb"
)

type SendMessageRequest struct {
	Message string `json:"message" binding:"required"`
}

type SendMessageResponse struct {
	Reply string `json:"reply"`
}

type TranscriptResponse struct {
	Messages []*chatdomain.Message `json:"messages"`
}

type LandingResponse struct {
	PopularMovies   []tmdb.Banner `json:"popular_movies"`
	CarouselBanners []tmdb.Banner `json:"carousel_banners"`
}
