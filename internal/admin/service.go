package admin

import (
	"context"
	"crypto/subtle"
	"errors"

	"golang.org/x/crypto/bcrypt"
)

var ErrInvalidCredentials = errors.New("invalid credentials")

// Service checks credentials against the single configured admin identity.
type Service struct {
	username     string
	passwordHash []byte
}

// NewService takes the admin username and its bcrypt password hash.
func NewService(username, passwordHash string) *Service {
	return &Service{username: username, passwordHash: []byte(passwordHash)}
}

// Authenticate returns the admin username when both username and password match.
func (s *Service) Authenticate(ctx context.Context, username, password string) (string, error) {
	if s.username == "" || subtle.ConstantTimeCompare([]byte(username), []byte(s.username)) != 1 {
		return "", ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(s.passwordHash, []byte(password)); err != nil {
		return "", ErrInvalidCredentials
	}
	return s.username, nil
}

// HashPassword produces a bcrypt hash suitable for ADMIN_PASSWORD_HASH.
func HashPassword(password string, cost int) (string, error) {
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	b, err := bcrypt.GenerateFromPassword([]byte(password), cost)
	if err != nil {
		return "", err
	}
	return string(b), nil
}
