package domain

import "time"

// Genres the profile form offers. TMDB genre ids for these words live in the
// chat module's genre map.
var ValidGenres = []string{"accion", "comedia", "drama", "terror", "suspenso", "romance"}

// Regions supported for streaming-availability lookups.
var ValidRegions = []string{"US", "MX", "ES", "AR", "CL"}

type User struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	Email         string    `json:"email" gorm:"uniqueIndex;not null"`
	Password      string    `json:"-" gorm:"not null"` // Never return password in JSON
	FavoriteGenre string    `json:"favorite_genre,omitempty"`
	DislikedGenre string    `json:"disliked_genre,omitempty"`
	Region        string    `json:"region" gorm:"default:US"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

type RefreshToken struct {
	Token     string    `json:"token" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index"`
	ExpiresAt time.Time `json:"expires_at"`
}

func IsValidGenre(genre string) bool {
	for _, g := range ValidGenres {
		if g == genre {
			return true
		}
	}
	return false
}

func IsValidRegion(region string) bool {
	for _, r := range ValidRegions {
		if r == region {
			return true
		}
	}
	return false
}
