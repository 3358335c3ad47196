package service

import (
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/w24010/Mapmoments/internal/config"
)

// TokenService issues signed access tokens.
type TokenService struct {
	config *config.Config
}

func NewTokenService(cfg *config.Config) *TokenService {
	return &TokenService{config: cfg}
}

// Generate signs an HS256 token for the user. maxAge is the token
// lifetime in seconds; guests get a shorter one than regular users.
func (s *TokenService) Generate(userID string, maxAge int) (string, error) {
	claims := jwt.MapClaims{
		"user_id": userID,
		"exp":     time.Now().Add(time.Duration(maxAge) * time.Second).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)

	signed, err := token.SignedString([]byte(s.config.JWTSecret))
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// MaxAgeFor returns the configured token lifetime for a user kind.
func (s *TokenService) MaxAgeFor(isGuest bool) int {
	if isGuest {
		return s.config.GuestTokenMaxAge
	}
	return s.config.TokenMaxAge
}
