package providers

import "context"

// IdentityProvider exposes the authenticated caller, if any.
type IdentityProvider interface {
	CurrentUserID(ctx context.Context) (string, bool)
}
