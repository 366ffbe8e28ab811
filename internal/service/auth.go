package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/foodgram/foodgram-server/internal/auth"
	"github.com/foodgram/foodgram-server/internal/domain"
	domainerrors "github.com/foodgram/foodgram-server/internal/errors"
	"github.com/foodgram/foodgram-server/internal/id"
	"github.com/foodgram/foodgram-server/internal/store"
	"github.com/foodgram/foodgram-server/internal/validation"
)

var usernameRe = regexp.MustCompile(`^[\w.@+-]+$`)

// AuthService handles registration, login, password changes and token verification.
type AuthService struct {
	store     store.Store
	tokens    *auth.TokenService
	hasher    *auth.PasswordHasher
	validator *validation.Validator
	logger    *slog.Logger
}

// NewAuthService creates a new authentication service.
func NewAuthService(
	store store.Store,
	tokens *auth.TokenService,
	hasher *auth.PasswordHasher,
	validator *validation.Validator,
	logger *slog.Logger,
) *AuthService {
	return &AuthService{
		store:     store,
		tokens:    tokens,
		hasher:    hasher,
		validator: validator,
		logger:    orDefaultLogger(logger),
	}
}

// RegisterRequest contains user registration data.
type RegisterRequest struct {
	Email     string `json:"email" validate:"required,email,max=254"`
	Username  string `json:"username" validate:"required,max=150"`
	FirstName string `json:"first_name" validate:"required,max=150"`
	LastName  string `json:"last_name" validate:"required,max=150"`
	Password  string `json:"password" validate:"required,min=8,max=1024"`
}

// LoginRequest contains user credentials.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// LoginResponse carries the issued bearer token.
type LoginResponse struct {
	Token     string       `json:"auth_token"`
	ExpiresAt time.Time    `json:"expires_at"`
	User      *domain.User `json:"user"`
}

// SetPasswordRequest changes the caller's password.
type SetPasswordRequest struct {
	CurrentPassword string `json:"current_password" validate:"required"`
	NewPassword     string `json:"new_password" validate:"required,min=8,max=1024"`
}

// Register creates a user account. Email and username must be unused.
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	req.Email = strings.TrimSpace(req.Email)
	req.Username = strings.TrimSpace(req.Username)

	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}
	if !usernameRe.MatchString(req.Username) {
		return nil, domainerrors.FieldError("username", "may contain only letters, digits and @.+-_")
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	userID, err := id.Generate(id.PrefixUser)
	if err != nil {
		return nil, fmt.Errorf("generate user ID: %w", err)
	}

	user := &domain.User{
		ID:           userID,
		Email:        req.Email,
		Username:     req.Username,
		FirstName:    strings.TrimSpace(req.FirstName),
		LastName:     strings.TrimSpace(req.LastName),
		PasswordHash: hash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := s.store.CreateUser(ctx, user); err != nil {
		if errors.Is(err, store.ErrAlreadyExists) {
			return nil, domainerrors.AlreadyExists("email or username already in use").WithCause(err)
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	s.logger.Info("user registered", "user_id", user.ID, "username", user.Username)
	return user, nil
}

// Login verifies credentials and issues an access token.
// Unknown email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*LoginResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		return nil, err
	}

	user, err := s.store.GetUserByEmail(ctx, req.Email)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, domainerrors.InvalidCredentials("invalid email or password")
		}
		return nil, fmt.Errorf("get user by email: %w", err)
	}

	if !s.hasher.Verify(user.PasswordHash, req.Password) {
		s.logger.Warn("login failed", "user_id", user.ID)
		return nil, domainerrors.InvalidCredentials("invalid email or password")
	}

	token, err := s.tokens.GenerateAccessToken(user)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	s.logger.Info("user logged in", "user_id", user.ID)
	return &LoginResponse{
		Token:     token,
		ExpiresAt: time.Now().Add(s.tokens.Duration()),
		User:      user,
	}, nil
}

// SetPassword replaces the caller's password after checking the current one.
func (s *AuthService) SetPassword(ctx context.Context, userID string, req SetPasswordRequest) error {
	if err := s.validator.Validate(req); err != nil {
		return err
	}

	user, err := s.store.GetUser(ctx, userID)
	if err != nil {
		return notFoundAs(err, "get user", "user not found")
	}

	if !s.hasher.Verify(user.PasswordHash, req.CurrentPassword) {
		return domainerrors.FieldError("current_password", "is incorrect")
	}

	hash, err := s.hasher.Hash(req.NewPassword)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.store.UpdatePasswordHash(ctx, userID, hash); err != nil {
		return notFoundAs(err, "update password", "user not found")
	}

	s.logger.Info("password changed", "user_id", userID)
	return nil
}

// VerifyAccessToken validates a bearer token and loads its user.
func (s *AuthService) VerifyAccessToken(ctx context.Context, token string) (*domain.User, *auth.AccessClaims, error) {
	claims, err := s.tokens.VerifyAccessToken(token)
	if err != nil {
		return nil, nil, domainerrors.Unauthorized("invalid or expired token").WithCause(err)
	}

	user, err := s.store.GetUser(ctx, claims.UserID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, nil, domainerrors.Unauthorized("user no longer exists")
		}
		return nil, nil, fmt.Errorf("get user: %w", err)
	}

	return user, claims, nil
}
