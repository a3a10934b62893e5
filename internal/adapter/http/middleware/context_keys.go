package middleware

// ContextKey is a private key type for request-context values, avoiding
// collisions with other packages.
type ContextKey string

const (
	// UserIDCtxKey holds the authenticated user's id.
	UserIDCtxKey = ContextKey("user_id")
	// UserTypeCtxKey holds the authenticated user's role.
	UserTypeCtxKey = ContextKey("user_type")
)
