package security

import (
	"errors"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

const (
	TokenTypeAccess  = "access"
	TokenTypeRefresh = "refresh"

	claimType = "type"
)

// TokenIssuer signs and verifies the bearer credentials. The subject claim is
// the username; roles are always read from the store, never from the token.
type TokenIssuer struct {
	auth       *jwtauth.JWTAuth
	accessTTL  time.Duration
	refreshTTL time.Duration
}

func NewTokenIssuer(key []byte, accessTTL, refreshTTL time.Duration) *TokenIssuer {
	return &TokenIssuer{
		auth:       jwtauth.New("HS256", key, nil),
		accessTTL:  accessTTL,
		refreshTTL: refreshTTL,
	}
}

// JWTAuth exposes the verifier for router middleware.
func (t *TokenIssuer) JWTAuth() *jwtauth.JWTAuth {
	return t.auth
}

func (t *TokenIssuer) GenerateAccessToken(username string) (string, error) {
	return t.generate(username, TokenTypeAccess, t.accessTTL)
}

func (t *TokenIssuer) GenerateRefreshToken(username string) (string, error) {
	return t.generate(username, TokenTypeRefresh, t.refreshTTL)
}

func (t *TokenIssuer) generate(username, tokenType string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		"sub":     username,
		"jti":     uuid.NewString(),
		claimType: tokenType,
		"exp":     now.Add(ttl).Unix(),
		"iat":     now.Unix(),
	}
	_, tokenString, err := t.auth.Encode(claims)
	return tokenString, err
}

// ParseUsername validates a raw token string of the given type and returns its subject.
func (t *TokenIssuer) ParseUsername(tokenString, tokenType string) (string, error) {
	token, err := jwtauth.VerifyToken(t.auth, tokenString)
	if err != nil {
		return "", err
	}
	if kind, ok := token.Get(claimType); !ok || kind != tokenType {
		return "", errors.New("unexpected token type")
	}
	if token.Subject() == "" {
		return "", errors.New("sub claim is missing")
	}
	return token.Subject(), nil
}

// Helper functions to extract claims, used by the HTTP middleware.
func GetUsernameFromClaims(claims jwt.MapClaims) (string, error) {
	username, ok := claims["sub"].(string)
	if !ok || username == "" {
		return "", errors.New("sub claim is missing or not a string")
	}
	return username, nil
}

func GetTokenTypeFromClaims(claims jwt.MapClaims) (string, error) {
	kind, ok := claims[claimType].(string)
	if !ok {
		return "", errors.New("type claim is missing or not a string")
	}
	return kind, nil
}
