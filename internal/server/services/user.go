// Package services contains the server-side business logic. Each
// service wraps the repositories it needs and enforces validation and
// the authorization policy before touching storage.
package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/anvitha-acharya/DevOrgs/internal/common"
	"github.com/anvitha-acharya/DevOrgs/internal/logging"
	"github.com/anvitha-acharya/DevOrgs/internal/server/auth"
	"github.com/anvitha-acharya/DevOrgs/internal/server/config"
	"github.com/anvitha-acharya/DevOrgs/internal/server/models"
	"github.com/anvitha-acharya/DevOrgs/internal/server/repositories/users"
)

// UserService handles registration, login and the token lifecycle.
type UserService struct {
	users     users.Repository
	logger    logging.Logger
	jwtSecret []byte
	tokenTTL  time.Duration
}

func NewUserService(repo users.Repository, cfg *config.Config, logger logging.Logger) *UserService {
	return &UserService{
		users:     repo,
		logger:    logger.With("module", "user_service"),
		jwtSecret: []byte(cfg.SecretKey),
		tokenTTL:  cfg.TokenValidityDuration,
	}
}

// Register creates an account. The password must pass the strength rule
// before anything is persisted; the email must be globally unique.
// Accounts are usable immediately (no separate verification step).
func (s *UserService) Register(ctx context.Context, name, email, password string, role models.Role) (*models.User, error) {
	name = strings.TrimSpace(name)
	email = strings.ToLower(strings.TrimSpace(email))

	if name == "" || email == "" || password == "" {
		return nil, fmt.Errorf("%w: name, email and password are required", common.ErrValidation)
	}
	if err := auth.ValidatePassword(password); err != nil {
		return nil, err
	}

	if role == "" {
		role = models.RoleStudent
	}
	if !role.IsValid() {
		return nil, fmt.Errorf("%w: unknown role %q", common.ErrValidation, role)
	}

	_, err := s.users.GetByEmail(ctx, email)
	if err == nil {
		return nil, common.ErrDuplicateEmail
	}
	if !errors.Is(err, common.ErrNotFound) {
		return nil, common.ErrInternal
	}

	hash, err := auth.HashPassword(password)
	if err != nil {
		s.logger.Error(ctx, "password hashing failed", "error", err)
		return nil, common.ErrInternal
	}

	now := time.Now()
	user := &models.User{
		Name:         name,
		Email:        email,
		PasswordHash: hash,
		Role:         role,
		IsVerified:   true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	created, err := s.users.Create(ctx, user)
	if err != nil {
		if errors.Is(err, common.ErrDuplicateEmail) {
			return nil, common.ErrDuplicateEmail
		}
		s.logger.Error(ctx, "user insert failed", "error", err)
		return nil, common.ErrInternal
	}
	return created, nil
}

// Login verifies the credentials and returns the account. Unknown
// email, a record without a password hash and a wrong password all
// produce the same ErrInvalidCredentials; the distinction is only
// logged.
func (s *UserService) Login(ctx context.Context, email, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" || password == "" {
		return nil, fmt.Errorf("%w: email and password are required", common.ErrValidation)
	}

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			s.logger.Debug(ctx, "login for unknown email")
			return nil, common.ErrInvalidCredentials
		}
		s.logger.Error(ctx, "user lookup failed", "error", err)
		return nil, common.ErrInternal
	}

	if user.PasswordHash == "" {
		s.logger.Warn(ctx, "login against incomplete account", "user_id", user.ID.Hex())
		return nil, common.ErrInvalidCredentials
	}

	if !auth.CheckPassword(user.PasswordHash, password) {
		return nil, common.ErrInvalidCredentials
	}
	return user, nil
}

// IssueToken mints a bearer token embedding the user's identity claims.
func (s *UserService) IssueToken(user *models.User) (string, error) {
	token, err := auth.GenerateToken(user, s.jwtSecret, s.tokenTTL)
	if err != nil {
		return "", common.ErrInternal
	}
	return token, nil
}

// ResolveToken verifies a bearer token and loads the account it names.
// Any failure, including a subject that no longer exists, yields
// ErrInvalidToken so the caller responds uniformly.
func (s *UserService) ResolveToken(ctx context.Context, tokenString string) (*models.User, error) {
	claims, err := auth.ParseToken(tokenString, s.jwtSecret)
	if err != nil {
		return nil, err
	}

	id, err := primitive.ObjectIDFromHex(claims.UserID)
	if err != nil {
		return nil, common.ErrInvalidToken
	}

	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, common.ErrNotFound) {
			return nil, common.ErrInvalidToken
		}
		return nil, common.ErrInternal
	}
	return user, nil
}
