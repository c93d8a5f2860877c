package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"regexp"
	"strings"

	"moviebot-backend/pkg/openai"
)

const personaName = "MovieBot"

// quotedTitle captures the first double-quoted substring of a completion,
// which is how the model is prompted to mention concrete movies.
var quotedTitle = regexp.MustCompile(`"([^"]+)"`)

// fallback asks the language model when no phrase rule matched. The reply is
// scanned for a quoted movie title; when one resolves against the metadata
// service and is not already in the ledger it gets registered. Completion
// failures degrade to fixed user-facing messages, the turn still completes.
func (u *chatUsecase) fallback(ctx context.Context, t *turn) string {
	titles, err := u.recRepo.Titles(t.user.ID)
	if err != nil {
		log.Printf("[FALLBACK] failed to load previous titles: %v", err)
	}
	noRepetir := strings.Join(titles, ", ")
	if noRepetir == "" {
		noRepetir = "ninguna"
	}

	systemPrompt := fmt.Sprintf(`Eres un bot recomendador de películas llamado %s.
Género favorito del usuario: %s.
Género que debe evitar: %s.
No recomiendes las siguientes películas otra vez: %s.
Responde de forma breve y clara.`,
		personaName,
		orUnspecified(t.user.FavoriteGenre),
		orUnspecified(t.user.DislikedGenre),
		noRepetir,
	)

	reply, err := u.completer.ChatCompletion(ctx, systemPrompt, t.original)
	if err != nil {
		return completionErrorReply(err)
	}

	if match := quotedTitle.FindStringSubmatch(reply); match != nil {
		title := match[1]
		rating := u.gateway.MovieRating(title)
		if !rating.Failed() && !t.seen(rating.MovieID) {
			t.register(rating.MovieID, title)
		}
	}

	return reply
}

func completionErrorReply(err error) string {
	switch {
	case errors.Is(err, openai.ErrAuth):
		log.Printf("[FALLBACK] OpenAI authentication failed")
		return "Error de autenticación con OpenAI. Verifica tu clave API."
	case errors.Is(err, openai.ErrRateLimit):
		log.Printf("[FALLBACK] OpenAI rate limit exceeded")
		return "Has excedido el límite de solicitudes a OpenAI. Intenta más tarde."
	default:
		var apiErr *openai.APIError
		if errors.As(err, &apiErr) {
			log.Printf("[FALLBACK] OpenAI API error: %v", apiErr)
			return fmt.Sprintf("Error general de OpenAI: %v", apiErr)
		}
		log.Printf("[FALLBACK] unexpected error: %v", err)
		return fmt.Sprintf("Error inesperado: %v", err)
	}
}

func orUnspecified(genre string) string {
	if genre == "" {
		return "No especificado"
	}
	return genre
}
