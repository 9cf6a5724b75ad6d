package services

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/HammerMeetNail/minisocial/internal/models"
)

const defaultBcryptCost = 12

var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService hashes and verifies account secrets with bcrypt.
type AuthService struct {
	cost int
}

// NewAuthService returns a hasher using cost, or the default cost when cost is
// outside bcrypt's accepted range.
func NewAuthService(cost int) *AuthService {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = defaultBcryptCost
	}
	return &AuthService{cost: cost}
}

func (s *AuthService) Cost() int {
	return s.cost
}

// HashPassword bcrypt-hashes the digest of password, so secrets longer than
// 72 bytes are accepted and compared in full.
func (s *AuthService) HashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword(models.SecretDigest(password), s.cost)
	if err != nil {
		return "", fmt.Errorf("hashing password: %w", err)
	}
	return string(hash), nil
}
