package api

import (
	"log"

	authUsecase "moviebot-backend/internal/auth/usecase"
	chatUsecase "moviebot-backend/internal/chat/usecase"
	"moviebot-backend/pkg/config"
	"moviebot-backend/pkg/ratelimit"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	authUsecase authUsecase.AuthUsecase
	chatUsecase chatUsecase.ChatUsecase
	config      *config.Config
	chatLimiter gin.HandlerFunc
}

func NewHandler(authUc authUsecase.AuthUsecase, chatUc chatUsecase.ChatUsecase, cfg *config.Config) *Handler {
	// Rate limiting is optional: without Redis the chat endpoints are
	// simply unlimited.
	var chatLimiter gin.HandlerFunc
	if cfg.RedisAddr != "" {
		rdb, err := ratelimit.NewRedisClient(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB)
		if err != nil {
			log.Printf("Warning: failed to connect to Redis, rate limiting disabled: %v", err)
		} else {
			chatLimiter = ratelimit.NewLimiter(rdb, cfg.RateLimitMax, cfg.RateLimitWindow).Middleware()
			log.Printf("Rate limiting enabled: %d requests per %ds", cfg.RateLimitMax, cfg.RateLimitWindow)
		}
	}

	return &Handler{
		authUsecase: authUc,
		chatUsecase: chatUc,
		config:      cfg,
		chatLimiter: chatLimiter,
	}
}

func (h *Handler) Start(addr string) error {
	r := gin.Default()
	gin.SetMode(gin.ReleaseMode)

	// CORS middleware
	r.Use(func(c *gin.Context) {
		origin := c.Request.Header.Get("Origin")
		if origin != "" {
			c.Writer.Header().Set("Access-Control-Allow-Origin", origin)
		} else {
			c.Writer.Header().Set("Access-Control-Allow-Origin", "*")
		}

		c.Writer.Header().Set("Access-Control-Allow-Credentials", "true")
		c.Writer.Header().Set("Access-Control-Allow-Headers", "Content-Type, Content-Length, Accept-Encoding, X-CSRF-Token, Authorization, accept, origin, Cache-Control, X-Requested-With")
		c.Writer.Header().Set("Access-Control-Allow-Methods", "POST, OPTIONS, GET, PUT, DELETE, PATCH")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	SetupRoutes(r, h.authUsecase, h.chatUsecase, h.chatLimiter)

	return r.Run(addr)
}
