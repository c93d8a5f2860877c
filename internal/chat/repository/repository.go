package repository

import chatdomain "moviebot-backend/internal/chat/domain"

// MessageRepository persists conversation turns.
type MessageRepository interface {
	Create(msg *chatdomain.Message) error
	FindByUserID(userID string) ([]*chatdomain.Message, error)
}

// RecommendationRepository is the per-user ledger of movies already shown.
type RecommendationRepository interface {
	Create(rec *chatdomain.Recommendation) error
	RecommendedIDs(userID string) (map[int]struct{}, error)
	Titles(userID string) ([]string, error)
}

// ChatRepository covers operations spanning both tables.
type ChatRepository interface {
	// ClearChat deletes the user's messages and recommendations as one
	// transaction; a failure leaves both untouched.
	ClearChat(userID string) error
}
