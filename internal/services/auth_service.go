package services

import (
	"errors"
	"time"

	"github.com/jobtrackhq/jobtracker-api/internal/apperr"
	"github.com/jobtrackhq/jobtracker-api/internal/dto"
	"github.com/jobtrackhq/jobtracker-api/internal/models"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthService struct {
	db     *gorm.DB
	issuer *TokenIssuer
}

func NewAuthService(db *gorm.DB, issuer *TokenIssuer) *AuthService {
	return &AuthService{db: db, issuer: issuer}
}

// Register creates a user and issues a first token. Password/confirmation
// equality is checked at the request boundary, not here.
func (s *AuthService) Register(req *dto.RegisterRequest) (*dto.AuthResponse, error) {
	var existing models.User
	err := s.db.Where("email = ?", req.Email).First(&existing).Error
	if err == nil {
		return nil, apperr.Validation(map[string][]string{
			"Email": {"Email already exists"},
		})
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.Processing("Error processing registration", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperr.Processing("Error processing registration", err)
	}

	user := models.User{
		Email:        req.Email,
		PasswordHash: string(hash),
		FirstName:    req.FirstName,
		LastName:     req.LastName,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.db.Create(&user).Error; err != nil {
		return nil, apperr.Processing("Error creating user", err)
	}

	return s.respond(&user)
}

// Login verifies credentials. A missing user and a wrong password produce
// the same message so callers cannot probe which emails are registered.
func (s *AuthService) Login(req *dto.LoginRequest) (*dto.AuthResponse, error) {
	var user models.User
	if err := s.db.Where("email = ?", req.Email).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperr.Unauthorized("Invalid email or password")
		}
		return nil, apperr.Processing("Error processing login", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(req.Password)); err != nil {
		return nil, apperr.Unauthorized("Invalid email or password")
	}

	return s.respond(&user)
}

func (s *AuthService) respond(user *models.User) (*dto.AuthResponse, error) {
	token, expiration, err := s.issuer.Issue(user)
	if err != nil {
		return nil, apperr.Processing("Error issuing token", err)
	}
	return &dto.AuthResponse{Token: token, Expiration: expiration}, nil
}
