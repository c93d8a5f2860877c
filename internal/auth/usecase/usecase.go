package usecase

import (
	authdomain "moviebot-backend/internal/auth/domain"
	authdto "moviebot-backend/internal/auth/dto"
)

// AuthUsecase covers signup, login, token lifecycle and profile edits.
type AuthUsecase interface {
	Login(req *authdto.LoginRequest) (*authdto.TokenResponse, error)
	Register(req *authdto.RegisterRequest) (*authdto.TokenResponse, error)
	RefreshToken(refreshToken string) (*authdto.TokenResponse, error)
	Logout(refreshToken string) error
	ValidateToken(tokenString string) (*authdomain.User, error)
	UpdateProfile(userID string, req *authdto.UpdateProfileRequest) (*authdomain.User, error)
}
