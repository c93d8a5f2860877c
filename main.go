package main

import (
	"log"

	api "moviebot-backend/cmd/api"
	authdomain "moviebot-backend/internal/auth/domain"
	authRepo "moviebot-backend/internal/auth/repository"
	authUsecase "moviebot-backend/internal/auth/usecase"
	chatdomain "moviebot-backend/internal/chat/domain"
	chatRepo "moviebot-backend/internal/chat/repository"
	chatUsecase "moviebot-backend/internal/chat/usecase"
	"moviebot-backend/pkg/config"
	"moviebot-backend/pkg/database"
	"moviebot-backend/pkg/openai"
	"moviebot-backend/pkg/tmdb"
)

func main() {
	// Load configuration
	cfg := config.Load()

	// Initialize database
	db, err := database.NewConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}, &authdomain.RefreshToken{}, &chatdomain.Message{}, &chatdomain.Recommendation{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Initialize repositories (dependency injection)
	userRepo := authRepo.NewUserRepository(db)
	messageRepo := chatRepo.NewMessageRepository(db)
	recommendationRepo := chatRepo.NewRecommendationRepository(db)
	chatRepository := chatRepo.NewChatRepository(db)

	// External service clients
	if cfg.TMDBApiKey == "" {
		log.Printf("[WARN] TMDB_API_KEY not configured, movie lookups will fail")
	}
	movieGateway := tmdb.NewClient(cfg.TMDBApiKey, cfg.TMDBBaseURL)

	if cfg.OpenAIApiKey == "" {
		log.Printf("[WARN] OPENAI_API_KEY not configured, fallback replies will fail")
	}
	completer := openai.NewClient(cfg.OpenAIApiKey, cfg.OpenAIBaseURL, cfg.OpenAIModel)

	// Initialize use cases (dependency injection)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepo, cfg)
	chatUsecaseInstance := chatUsecase.NewChatUsecase(messageRepo, recommendationRepo, chatRepository, movieGateway, completer, cfg.DefaultRegion, cfg.DefaultLanguage)

	// Initialize HTTP handler
	handler := api.NewHandler(authUsecaseInstance, chatUsecaseInstance, cfg)

	// Start server
	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}
