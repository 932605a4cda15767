package services

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/jobtrackhq/jobtracker-api/internal/config"
	"github.com/jobtrackhq/jobtracker-api/internal/models"
)

// TokenIssuer signs short-lived access tokens for verified users. It holds
// no state beyond its configuration; revocation is out of scope.
type TokenIssuer struct {
	secret   []byte
	issuer   string
	audience string
	expiry   time.Duration
}

// NewTokenIssuer fails when the signing configuration is incomplete so a
// broken deployment dies at startup instead of on the first login.
func NewTokenIssuer(cfg *config.Config) (*TokenIssuer, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("token issuer config: %w", err)
	}
	return &TokenIssuer{
		secret:   []byte(cfg.JWTSecret),
		issuer:   cfg.JWTIssuer,
		audience: cfg.JWTAudience,
		expiry:   cfg.JWTExpiry,
	}, nil
}

// Issue signs an HS256 token for the user and returns it with its
// expiration instant.
func (t *TokenIssuer) Issue(user *models.User) (string, time.Time, error) {
	now := time.Now().UTC()
	expiration := now.Add(t.expiry)

	claims := jwt.MapClaims{
		"sub":         strconv.FormatUint(uint64(user.ID), 10),
		"email":       user.Email,
		"given_name":  user.FirstName,
		"family_name": user.LastName,
		"iss":         t.issuer,
		"aud":         t.audience,
		"iat":         now.Unix(),
		"exp":         expiration.Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", time.Time{}, fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, expiration, nil
}
