package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	identityusecase "github.com/hostelconnect/hostel-service/internal/identity/usecase"
	"github.com/hostelconnect/hostel-service/internal/platform/logger"
	"go.uber.org/zap"
)

// JWTAuth validates the Authorization bearer token and stores the session's
// user id and role in the request context. Requests without a valid token get
// 401 before reaching any handler.
func JWTAuth(tokens *identityusecase.TokenManager, log *logger.Logger) func(http.Handler) http.Handler {
	authLog := log.Named("JWTAuth")
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				unauthorized(w, "Authorization token required")
				return
			}

			parts := strings.Fields(authHeader)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
				authLog.Warn("invalid authorization header format", zap.String("path", r.URL.Path))
				unauthorized(w, "Authorization token format is invalid, expected 'Bearer <token>'")
				return
			}

			session, err := tokens.Verify(parts[1])
			if err != nil {
				authLog.Warn("token verification failed", zap.String("path", r.URL.Path), zap.Error(err))
				unauthorized(w, "Invalid or expired token")
				return
			}

			ctx := context.WithValue(r.Context(), UserIDCtxKey, session.UserID)
			ctx = context.WithValue(ctx, UserTypeCtxKey, session.UserType)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// SessionFromContext extracts the authenticated caller placed by JWTAuth.
func SessionFromContext(ctx context.Context) (userID, userType string, ok bool) {
	userID, ok = ctx.Value(UserIDCtxKey).(string)
	if !ok || userID == "" {
		return "", "", false
	}
	userType, _ = ctx.Value(UserTypeCtxKey).(string)
	return userID, userType, true
}

func unauthorized(w http.ResponseWriter, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	json.NewEncoder(w).Encode(map[string]string{"message": message})
}
