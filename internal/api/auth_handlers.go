package api

import (
	"context"
	"net/http"
	"time"

	"github.com/danielgtaylor/huma/v2"

	"github.com/foodgram/foodgram-server/internal/service"
)

const (
	pathLogin = "/api/auth/token/login"
	pathUsers = "/api/users"
)

func (s *Server) registerAuthRoutes() {
	huma.Register(s.api, huma.Operation{
		OperationID: "login",
		Method:      http.MethodPost,
		Path:        pathLogin,
		Summary:     "Obtain token",
		Description: "Exchanges email and password for a bearer token",
		Tags:        []string{"Authentication"},
	}, s.handleLogin)

	huma.Register(s.api, huma.Operation{
		OperationID:   "logout",
		Method:        http.MethodPost,
		Path:          "/api/auth/token/logout",
		Summary:       "Logout",
		Description:   "Tokens are stateless; the client discards its token",
		Tags:          []string{"Authentication"},
		Security:      []map[string][]string{{"bearer": {}}},
		DefaultStatus: http.StatusNoContent,
	}, s.handleLogout)
}

// === DTOs ===

// LoginRequest is the request body for obtaining a token.
type LoginRequest struct {
	Email    string `json:"email" maxLength:"254" doc:"User email"`
	Password string `json:"password" maxLength:"1024" doc:"User password"`
}

// LoginInput wraps the login request for Huma.
type LoginInput struct {
	Body LoginRequest
}

// TokenResponse carries the issued bearer token.
type TokenResponse struct {
	AuthToken string    `json:"auth_token" doc:"PASETO access token"`
	TokenType string    `json:"token_type" doc:"Token type (Bearer)"`
	ExpiresAt time.Time `json:"expires_at" doc:"Token expiry"`
}

// TokenOutput wraps the token response for Huma.
type TokenOutput struct {
	Body TokenResponse
}

// AuthorizedInput carries only the Authorization header.
type AuthorizedInput struct {
	Authorization string `header:"Authorization"`
}

// === Handlers ===

func (s *Server) handleLogin(ctx context.Context, input *LoginInput) (*TokenOutput, error) {
	resp, err := s.services.Auth.Login(ctx, service.LoginRequest{
		Email:    input.Body.Email,
		Password: input.Body.Password,
	})
	if err != nil {
		return nil, err
	}

	return &TokenOutput{
		Body: TokenResponse{
			AuthToken: resp.Token,
			TokenType: "Bearer",
			ExpiresAt: resp.ExpiresAt,
		},
	}, nil
}

func (s *Server) handleLogout(ctx context.Context, input *AuthorizedInput) (*struct{}, error) {
	if _, err := s.authenticateRequest(ctx, input.Authorization); err != nil {
		return nil, err
	}
	return nil, nil
}
