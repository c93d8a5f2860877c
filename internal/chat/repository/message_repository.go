package repository

import (
	"time"

	chatdomain "moviebot-backend/internal/chat/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// messageRepository implements MessageRepository interface
type messageRepository struct {
	db *gorm.DB
}

// NewMessageRepository creates a new instance of messageRepository
func NewMessageRepository(db *gorm.DB) MessageRepository {
	return &messageRepository{
		db: db,
	}
}

func (r *messageRepository) Create(msg *chatdomain.Message) error {
	if msg.ID == "" {
		msg.ID = uuid.New().String()
	}
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}
	return r.db.Create(msg).Error
}

// FindByUserID returns the full transcript, oldest message first.
func (r *messageRepository) FindByUserID(userID string) ([]*chatdomain.Message, error) {
	var messages []*chatdomain.Message
	err := r.db.Where("user_id = ?", userID).
		Order("timestamp ASC").
		Find(&messages).Error
	return messages, err
}
