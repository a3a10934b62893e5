package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"

	identityusecase "github.com/hostelconnect/hostel-service/internal/identity/usecase"
	"github.com/hostelconnect/hostel-service/internal/platform/logger"
)

func authTestHandler(t *testing.T, wantUserID, wantUserType string) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, userType, ok := SessionFromContext(r.Context())
		assert.True(t, ok)
		assert.Equal(t, wantUserID, userID)
		assert.Equal(t, wantUserType, userType)
		w.WriteHeader(http.StatusOK)
	})
}

func TestJWTAuth_ValidTokenPassesSession(t *testing.T) {
	tokens := identityusecase.NewTokenManager("test-secret")
	token, err := tokens.Issue("u1", "owner")
	assert.NoError(t, err)

	handler := JWTAuth(tokens, logger.NewLogger())(authTestHandler(t, "u1", "owner"))

	r := httptest.NewRequest("GET", "/api/auth/me", nil)
	r.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusOK, w.Code)
}

func TestJWTAuth_MissingHeader(t *testing.T) {
	tokens := identityusecase.NewTokenManager("test-secret")
	handler := JWTAuth(tokens, logger.NewLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	r := httptest.NewRequest("GET", "/api/auth/me", nil)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "message")
}

func TestJWTAuth_MalformedHeader(t *testing.T) {
	tokens := identityusecase.NewTokenManager("test-secret")
	handler := JWTAuth(tokens, logger.NewLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	for _, header := range []string{"Token abc", "Bearer", "Bearer a b"} {
		r := httptest.NewRequest("GET", "/api/auth/me", nil)
		r.Header.Set("Authorization", header)
		w := httptest.NewRecorder()
		handler.ServeHTTP(w, r)

		assert.Equal(t, http.StatusUnauthorized, w.Code, "header %q should be rejected", header)
	}
}

func TestJWTAuth_TokenSignedWithOtherSecret(t *testing.T) {
	forged, err := identityusecase.NewTokenManager("other-secret").Issue("u1", "owner")
	assert.NoError(t, err)

	tokens := identityusecase.NewTokenManager("test-secret")
	handler := JWTAuth(tokens, logger.NewLogger())(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {
		t.Fatal("handler should not be reached")
	}))

	r := httptest.NewRequest("GET", "/api/auth/me", nil)
	r.Header.Set("Authorization", "Bearer "+forged)
	w := httptest.NewRecorder()
	handler.ServeHTTP(w, r)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}
