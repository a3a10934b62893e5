package usecase

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"

	"github.com/hostelconnect/hostel-service/internal/identity/domain"
)

func TestTokenManager_IssueAndVerify(t *testing.T) {
	tm := NewTokenManager("test-secret")

	token, err := tm.Issue("u1", "student")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)

	session, err := tm.Verify(token)
	assert.NoError(t, err)
	assert.Equal(t, "u1", session.UserID)
	assert.Equal(t, "student", session.UserType)
}

func TestTokenManager_Verify_RejectsWrongSecret(t *testing.T) {
	token, err := NewTokenManager("secret-a").Issue("u1", "owner")
	assert.NoError(t, err)

	_, err = NewTokenManager("secret-b").Verify(token)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenManager_Verify_RejectsEmptyAndGarbage(t *testing.T) {
	tm := NewTokenManager("test-secret")

	_, err := tm.Verify("")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)

	_, err = tm.Verify("not.a.token")
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenManager_Verify_RejectsExpired(t *testing.T) {
	secret := []byte("test-secret")
	claims := &Claims{
		UserID:   "u1",
		UserType: "owner",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-8 * 24 * time.Hour)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-24 * time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(secret)
	assert.NoError(t, err)

	_, err = NewTokenManager("test-secret").Verify(expired)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenManager_Verify_RejectsUnsignedAlgorithm(t *testing.T) {
	claims := &Claims{
		UserID:   "u1",
		UserType: "owner",
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	unsigned, err := jwt.NewWithClaims(jwt.SigningMethodNone, claims).SignedString(jwt.UnsafeAllowNoneSignatureType)
	assert.NoError(t, err)

	_, err = NewTokenManager("test-secret").Verify(unsigned)

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestTokenManager_TokenCarriesSevenDayExpiry(t *testing.T) {
	tm := NewTokenManager("test-secret")
	token, err := tm.Issue("u1", "owner")
	assert.NoError(t, err)

	claims := &Claims{}
	_, err = jwt.ParseWithClaims(token, claims, func(*jwt.Token) (interface{}, error) {
		return []byte("test-secret"), nil
	})
	assert.NoError(t, err)

	ttl := claims.ExpiresAt.Sub(claims.IssuedAt.Time)
	assert.Equal(t, 7*24*time.Hour, ttl)
}
