package delivery

import (
	"errors"
	"log"
	"net/http"

	authdelivery "moviebot-backend/internal/auth/delivery"
	chatdto "moviebot-backend/internal/chat/dto"
	"moviebot-backend/internal/chat/usecase"

	"github.com/gin-gonic/gin"
)

const internalErrorBody = "Ha ocurrido un error interno en el servidor."

type ChatHandler struct {
	chatUsecase usecase.ChatUsecase
}

func NewChatHandler(chatUsecase usecase.ChatUsecase) *ChatHandler {
	return &ChatHandler{chatUsecase: chatUsecase}
}

// GetTranscript returns the user's full conversation, oldest first.
func (h *ChatHandler) GetTranscript(c *gin.Context) {
	user := authdelivery.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	messages, err := h.chatUsecase.Transcript(user.ID)
	if err != nil {
		log.Printf("[CHAT] failed to load transcript for %s: %v", user.ID, err)
		c.String(http.StatusInternalServerError, internalErrorBody)
		return
	}

	c.JSON(http.StatusOK, chatdto.TranscriptResponse{Messages: messages})
}

// SendMessage handles one chat turn.
func (h *ChatHandler) SendMessage(c *gin.Context) {
	user := authdelivery.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req chatdto.SendMessageRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "El mensaje no puede estar vacío."})
		return
	}

	reply, err := h.chatUsecase.HandleMessage(c.Request.Context(), user, req.Message)
	if err != nil {
		if errors.Is(err, usecase.ErrEmptyMessage) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "El mensaje no puede estar vacío."})
			return
		}
		log.Printf("[CHAT] turn failed for %s: %v", user.ID, err)
		c.String(http.StatusInternalServerError, internalErrorBody)
		return
	}

	c.JSON(http.StatusOK, chatdto.SendMessageResponse{Reply: reply})
}

// ClearChat wipes the user's transcript and recommendation ledger.
func (h *ChatHandler) ClearChat(c *gin.Context) {
	user := authdelivery.CurrentUser(c)
	if user == nil {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	if err := h.chatUsecase.ClearChat(user.ID); err != nil {
		log.Printf("[CHAT] failed to clear chat for %s: %v", user.ID, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "No se pudo limpiar el chat. Inténtalo nuevamente."})
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "El chat ha sido limpiado."})
}

// Landing serves the public landing page data.
func (h *ChatHandler) Landing(c *gin.Context) {
	popular, carousel := h.chatUsecase.Landing()
	c.JSON(http.StatusOK, chatdto.LandingResponse{
		PopularMovies:   popular,
		CarouselBanners: carousel,
	})
}
