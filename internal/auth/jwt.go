// Package auth verifies Telegram WebApp logins and issues session tokens for
// the Mini App API.
package auth

import (
	"fmt"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/heartmarshall/fixnote-backend/internal/domain"
)

// JWTManager issues and checks the Mini App session tokens. A session
// carries the internal user id as subject and the Telegram id, so the API
// never has to look the user up again.
type JWTManager struct {
	secret    []byte
	issuer    string
	accessTTL time.Duration
	parser    *jwt.Parser
}

// NewJWTManager creates a new JWT manager. secret must be at least 32
// characters; config validation enforces it.
func NewJWTManager(secret string, issuer string, accessTTL time.Duration) *JWTManager {
	return &JWTManager{
		secret:    []byte(secret),
		issuer:    issuer,
		accessTTL: accessTTL,
		parser: jwt.NewParser(
			jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
			jwt.WithIssuer(issuer),
			jwt.WithExpirationRequired(),
			jwt.WithIssuedAt(),
		),
	}
}

type sessionClaims struct {
	jwt.RegisteredClaims
	TelegramID string `json:"tg"`
}

// GenerateAccessToken signs an HS256 session for the user.
func (m *JWTManager) GenerateAccessToken(userID uuid.UUID, telegramID int64) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			Issuer:    m.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.accessTTL)),
		},
		TelegramID: strconv.FormatInt(telegramID, 10),
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("sign session: %w", err)
	}
	return signed, nil
}

// AccessTTL returns the lifetime of issued tokens.
func (m *JWTManager) AccessTTL() time.Duration { return m.accessTTL }

// ValidateAccessToken returns the user id and Telegram id of a valid
// session. Every failure wraps domain.ErrUnauthorized.
func (m *JWTManager) ValidateAccessToken(raw string) (uuid.UUID, int64, error) {
	if raw == "" {
		return uuid.Nil, 0, fmt.Errorf("session token is empty: %w", domain.ErrUnauthorized)
	}

	var claims sessionClaims
	if _, err := m.parser.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}); err != nil {
		return uuid.Nil, 0, fmt.Errorf("parse session: %w: %w", domain.ErrUnauthorized, err)
	}

	userID, err := uuid.Parse(claims.Subject)
	if err != nil {
		return uuid.Nil, 0, fmt.Errorf("session subject: %w", domain.ErrUnauthorized)
	}
	telegramID, err := strconv.ParseInt(claims.TelegramID, 10, 64)
	if err != nil || telegramID == 0 {
		return uuid.Nil, 0, fmt.Errorf("session telegram id: %w", domain.ErrUnauthorized)
	}

	return userID, telegramID, nil
}
