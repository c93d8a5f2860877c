package repository

import (
	"time"

	chatdomain "moviebot-backend/internal/chat/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// recommendationRepository implements RecommendationRepository interface
type recommendationRepository struct {
	db *gorm.DB
}

// NewRecommendationRepository creates a new instance of recommendationRepository
func NewRecommendationRepository(db *gorm.DB) RecommendationRepository {
	return &recommendationRepository{
		db: db,
	}
}

func (r *recommendationRepository) Create(rec *chatdomain.Recommendation) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}
	return r.db.Create(rec).Error
}

// RecommendedIDs returns the dedup membership set for one user.
func (r *recommendationRepository) RecommendedIDs(userID string) (map[int]struct{}, error) {
	var ids []int
	err := r.db.Model(&chatdomain.Recommendation{}).
		Where("user_id = ?", userID).
		Pluck("movie_id", &ids).Error
	if err != nil {
		return nil, err
	}

	set := make(map[int]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// Titles returns every recommended title in registration order, used to tell
// the fallback model what not to repeat.
func (r *recommendationRepository) Titles(userID string) ([]string, error) {
	var titles []string
	err := r.db.Model(&chatdomain.Recommendation{}).
		Where("user_id = ?", userID).
		Order("timestamp ASC").
		Pluck("movie_title", &titles).Error
	return titles, err
}
