package repository

import (
	chatdomain "moviebot-backend/internal/chat/domain"

	"gorm.io/gorm"
)

// chatRepository implements ChatRepository interface
type chatRepository struct {
	db *gorm.DB
}

// NewChatRepository creates a new instance of chatRepository
func NewChatRepository(db *gorm.DB) ChatRepository {
	return &chatRepository{
		db: db,
	}
}

// ClearChat removes the user's transcript and recommendation ledger together.
// The two deletes share one transaction so a mid-way failure rolls both back.
func (r *chatRepository) ClearChat(userID string) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("user_id = ?", userID).Delete(&chatdomain.Message{}).Error; err != nil {
			return err
		}
		return tx.Where("user_id = ?", userID).Delete(&chatdomain.Recommendation{}).Error
	})
}
