package domain

import "time"

// Author identifies which side of the conversation wrote a message.
type Author string

const (
	AuthorUser      Author = "user"
	AuthorAssistant Author = "assistant"
)

// Message is one turn of a user's conversation with the bot.
type Message struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index;not null"`
	Author    Author    `json:"author" gorm:"not null"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Timestamp time.Time `json:"timestamp" gorm:"index;not null"`
}

// Recommendation records that one movie was already suggested to one user.
// The effective dedup key is (UserID, MovieID); callers check membership
// before inserting, the table itself carries no uniqueness constraint.
type Recommendation struct {
	ID         string    `json:"id" gorm:"primaryKey"`
	UserID     string    `json:"user_id" gorm:"index;not null"`
	MovieID    int       `json:"movie_id" gorm:"not null"` // TMDB id
	MovieTitle string    `json:"movie_title" gorm:"not null"`
	Timestamp  time.Time `json:"timestamp" gorm:"not null"`
}
