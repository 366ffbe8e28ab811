package api

import (
	"context"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// authenticateRequest validates the Authorization header and returns the user ID.
func (s *Server) authenticateRequest(ctx context.Context, authHeader string) (string, error) {
	if authHeader == "" {
		return "", huma.Error401Unauthorized("Missing authorization header")
	}
	return s.verifyHeader(ctx, authHeader)
}

// optionalViewer returns the caller's user ID, or "" for an anonymous request.
// A header that is present but invalid is still rejected.
func (s *Server) optionalViewer(ctx context.Context, authHeader string) (string, error) {
	if authHeader == "" {
		return "", nil
	}
	return s.verifyHeader(ctx, authHeader)
}

func (s *Server) verifyHeader(ctx context.Context, authHeader string) (string, error) {
	scheme, token, ok := strings.Cut(authHeader, " ")
	if !ok || (scheme != "Bearer" && scheme != "Token") || token == "" {
		return "", huma.Error401Unauthorized("Invalid authorization header format")
	}

	user, _, err := s.services.Auth.VerifyAccessToken(ctx, token)
	if err != nil {
		return "", huma.Error401Unauthorized("Invalid or expired token")
	}

	return user.ID, nil
}
