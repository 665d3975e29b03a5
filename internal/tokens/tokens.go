package tokens

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Claims carried by admin access tokens.
type Claims struct {
	Username string `json:"username"`
	jwt.RegisteredClaims
}

// Issuer signs and verifies HS256 access tokens.
type Issuer struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewIssuer(secret string, ttl time.Duration) *Issuer {
	return &Issuer{secret: []byte(secret), ttl: ttl, now: time.Now}
}

// WithClock returns a copy of the issuer that reads time from now.
func (i *Issuer) WithClock(now func() time.Time) *Issuer {
	cp := *i
	cp.now = now
	return &cp
}

// TTL is the validity window of issued tokens.
func (i *Issuer) TTL() time.Duration { return i.ttl }

// GenerateAccessToken creates a signed JWT access token for the username
func (i *Issuer) GenerateAccessToken(username string) (string, error) {
	now := i.now()
	claims := Claims{
		Username: username,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   username,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(i.ttl)),
		},
	}
	jt := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return jt.SignedString(i.secret)
}

// Parse verifies signature, algorithm and expiry and returns the claims.
func (i *Issuer) Parse(raw string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(raw, claims, func(token *jwt.Token) (interface{}, error) {
		return i.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}), jwt.WithTimeFunc(i.now))
	if err != nil {
		return nil, err
	}
	if claims.Username == "" {
		return nil, errors.New("token has no username claim")
	}
	return claims, nil
}

// Verify implements middleware.Verifier and returns the token's username.
func (i *Issuer) Verify(ctx context.Context, raw string) (string, error) {
	claims, err := i.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("verify token: %w", err)
	}
	return claims.Username, nil
}

// Remaining reports how long a valid token has left before it expires.
func (i *Issuer) Remaining(raw string) (time.Duration, error) {
	claims, err := i.Parse(raw)
	if err != nil {
		return 0, err
	}
	if claims.ExpiresAt == nil {
		return 0, errors.New("token has no expiry")
	}
	return claims.ExpiresAt.Time.Sub(i.now()), nil
}
