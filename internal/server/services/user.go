// Package services contains server-side business logic. This file implements
// UserService, which handles registration, login and issuing JWTs.
package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/reelist/reelist/internal/common"
	"github.com/reelist/reelist/internal/server/auth"
	"github.com/reelist/reelist/internal/server/config"
	"github.com/reelist/reelist/internal/server/models"
	"github.com/reelist/reelist/internal/server/repositories/users"
)

// UserService provides authentication-related operations:
//   - Register: validate credentials, hash the password, create the user
//   - Login: verify credentials and mint a token
type UserService struct {
	repo                  users.Repository
	jwtSecret             []byte
	tokenValidityDuration time.Duration
}

// NewUserService constructs a UserService using the credential store and
// server config.
func NewUserService(repo users.Repository, cfg *config.Config) *UserService {
	return &UserService{
		repo:                  repo,
		jwtSecret:             []byte(cfg.SecretKey),
		tokenValidityDuration: cfg.TokenValidityDuration,
	}
}

// Register creates a new user with the given email and password. The
// password is stored only as a bcrypt hash. A taken email yields
// common.ErrAlreadyExists; invalid input yields common.ErrValidation.
func (s *UserService) Register(ctx context.Context, email, password string) (*models.User, error) {
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: missing email or password", common.ErrValidation)
	}
	if len(password) < common.MinPasswordLength {
		return nil, fmt.Errorf("%w: password must be at least %d characters",
			common.ErrValidation, common.MinPasswordLength)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, common.ErrInternal
	}

	user := &models.User{
		ID:           uuid.New().String(),
		Email:        email,
		PasswordHash: string(hash),
		CreatedAt:    time.Now().UTC(),
	}

	created, err := s.repo.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrAlreadyExists) {
			return nil, common.ErrAlreadyExists
		}
		return nil, fmt.Errorf("error creating user: %w", err)
	}

	return created, nil
}

// Login verifies the email/password pair and, on success, returns a signed
// token. Unknown email and wrong password are indistinguishable: both yield
// common.ErrUnauthorized. A missing signing secret yields common.ErrConfig.
func (s *UserService) Login(ctx context.Context, email, password string) (string, error) {
	if email == "" || password == "" {
		return "", fmt.Errorf("%w: missing email or password", common.ErrValidation)
	}
	if len(s.jwtSecret) == 0 {
		return "", fmt.Errorf("%w: JWT secret is not set", common.ErrConfig)
	}

	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return "", common.ErrUnauthorized
		}
		return "", common.ErrInternal
	}

	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return "", common.ErrUnauthorized
	}

	token, err := auth.GenerateToken(user.ID, s.jwtSecret, s.tokenValidityDuration)
	if err != nil {
		return "", common.ErrInternal
	}

	return token, nil
}
