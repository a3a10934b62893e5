package usecase

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/hostelconnect/hostel-service/internal/identity/domain"
)

// tokenTTL is the fixed lifetime of a session token.
const tokenTTL = 7 * 24 * time.Hour

// Claims is the JWT payload carried by every session token.
type Claims struct {
	UserID   string `json:"user_id"`
	UserType string `json:"user_type"`
	jwt.RegisteredClaims
}

// Session identifies an authenticated caller, decoded from a verified token.
type Session struct {
	UserID   string
	UserType string
}

// TokenManager signs and verifies HS256 session tokens.
type TokenManager struct {
	secret []byte
}

func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret)}
}

// Issue signs a token carrying the user's id and role, expiring in 7 days.
func (tm *TokenManager) Issue(userID, userType string) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID:   userID,
		UserType: userType,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(tokenTTL)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(tm.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token string. Any parse, signature or expiry
// failure collapses to ErrUnauthorized.
func (tm *TokenManager) Verify(tokenString string) (*Session, error) {
	if tokenString == "" {
		return nil, domain.ErrUnauthorized
	}

	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return tm.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, errors.Join(domain.ErrUnauthorized, err)
	}
	if claims.UserID == "" {
		return nil, domain.ErrUnauthorized
	}
	return &Session{UserID: claims.UserID, UserType: claims.UserType}, nil
}
