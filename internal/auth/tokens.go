package auth

import (
	"errors"
	"fmt"
	"time"

	"aidanwoods.dev/go-paseto"
	"github.com/goccy/go-json"

	"github.com/foodgram/foodgram-server/internal/domain"
	"github.com/foodgram/foodgram-server/internal/id"
)

const (
	tokenIssuer   = "foodgram-server"
	tokenAudience = "foodgram-client"
)

// AccessClaims are the decrypted contents of an access token.
type AccessClaims struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`

	Issuer     string    `json:"iss"`
	Subject    string    `json:"sub"`
	Audience   string    `json:"aud"`
	Expiration time.Time `json:"exp"`
	NotBefore  time.Time `json:"nbf"`
	IssuedAt   time.Time `json:"iat"`
	TokenID    string    `json:"jti"`
}

// TokenService issues and verifies PASETO v4.local bearer tokens.
type TokenService struct {
	key      paseto.V4SymmetricKey
	duration time.Duration
	now      func() time.Time
}

// NewTokenService creates a token service from a 32-byte symmetric key.
func NewTokenService(key []byte, duration time.Duration) (*TokenService, error) {
	if len(key) != keyLength {
		return nil, fmt.Errorf("PASETO v4 key must be %d bytes, got %d", keyLength, len(key))
	}
	if duration <= 0 {
		return nil, errors.New("token duration must be positive")
	}

	sk, err := paseto.V4SymmetricKeyFromBytes(key)
	if err != nil {
		return nil, fmt.Errorf("create PASETO symmetric key: %w", err)
	}

	return &TokenService{key: sk, duration: duration, now: time.Now}, nil
}

// Duration returns the access token lifetime.
func (s *TokenService) Duration() time.Duration {
	return s.duration
}

// GenerateAccessToken encrypts a token identifying user.
func (s *TokenService) GenerateAccessToken(user *domain.User) (string, error) {
	now := s.now()

	tokenID, err := id.Generate(id.PrefixToken)
	if err != nil {
		return "", fmt.Errorf("generate token ID: %w", err)
	}

	token := paseto.NewToken()
	token.SetIssuer(tokenIssuer)
	token.SetSubject(user.ID)
	token.SetAudience(tokenAudience)
	token.SetIssuedAt(now)
	token.SetNotBefore(now)
	token.SetExpiration(now.Add(s.duration))
	token.SetJti(tokenID)
	//nolint:errcheck // Set only fails on values that cannot be marshalled
	_ = token.Set("user_id", user.ID)
	//nolint:errcheck // same
	_ = token.Set("email", user.Email)

	return token.V4Encrypt(s.key, nil), nil
}

// VerifyAccessToken decrypts and validates a token, returning its claims.
func (s *TokenService) VerifyAccessToken(tokenString string) (*AccessClaims, error) {
	parser := paseto.NewParser()
	parser.AddRule(paseto.ForAudience(tokenAudience))
	parser.AddRule(paseto.IssuedBy(tokenIssuer))
	parser.AddRule(paseto.NotExpired())
	parser.AddRule(paseto.ValidAt(s.now()))

	token, err := parser.ParseV4Local(s.key, tokenString, nil)
	if err != nil {
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	var claims AccessClaims
	if err := json.Unmarshal(token.ClaimsJSON(), &claims); err != nil {
		return nil, fmt.Errorf("parse claims: %w", err)
	}
	if claims.UserID == "" {
		return nil, errors.New("invalid token: missing user id")
	}

	return &claims, nil
}
