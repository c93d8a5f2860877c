package api

import (
	"net/http"

	authdelivery "moviebot-backend/internal/auth/delivery"
	authUsecase "moviebot-backend/internal/auth/usecase"
	chatdelivery "moviebot-backend/internal/chat/delivery"
	chatUsecase "moviebot-backend/internal/chat/usecase"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUc authUsecase.AuthUsecase, chatUc chatUsecase.ChatUsecase, chatLimiter gin.HandlerFunc) {
	authHandler := authdelivery.NewAuthHandler(authUc)
	chatHandler := chatdelivery.NewChatHandler(chatUc)

	api := r.Group("/api")
	{
		// Health check (no auth required)
		api.GET("/health", func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		})

		// Landing page data (no auth required)
		api.GET("/landing", chatHandler.Landing)

		// Auth routes
		auth := api.Group("/auth")
		{
			auth.POST("/login", authHandler.Login)
			auth.POST("/register", authHandler.Register)
			auth.POST("/refresh", authHandler.RefreshToken)
			auth.POST("/logout", authHandler.Logout)
			auth.GET("/me", authdelivery.AuthMiddleware(authUc), authHandler.Me)
		}

		// Profile routes (protected)
		profile := api.Group("/profile")
		profile.Use(authdelivery.AuthMiddleware(authUc))
		{
			profile.GET("", authHandler.Me)
			profile.PUT("", authHandler.UpdateProfile)
		}

		// Chat routes (protected, rate limited when Redis is configured)
		chat := api.Group("/chat")
		chat.Use(authdelivery.AuthMiddleware(authUc))
		if chatLimiter != nil {
			chat.Use(chatLimiter)
		}
		{
			chat.GET("", chatHandler.GetTranscript)
			chat.POST("", chatHandler.SendMessage)
			chat.POST("/clear", chatHandler.ClearChat)
		}
	}
}
