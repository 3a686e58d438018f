package auth

import "context"

type ctxKey string

const userIDKey ctxKey = "auth.userID"

// WithUserID returns a copy of ctx carrying the authenticated user ID
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user ID, if any
func UserIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(userIDKey).(string)
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// ContextIdentity reads the caller from the request context populated by
// the auth middleware.
type ContextIdentity struct{}

// CurrentUserID implements providers.IdentityProvider
func (ContextIdentity) CurrentUserID(ctx context.Context) (string, bool) {
	return UserIDFromContext(ctx)
}
