package httpapi

import (
	"context"
	"time"

	"drivehub/internal/token"
)

type ctxKey int

const identityKey ctxKey = iota

// Identity is the authenticated caller attached to a request by the auth
// middleware. Handlers read it through IdentityFrom instead of pulling
// raw claims out of the context.
type Identity struct {
	UserID    int64
	Email     string
	Role      token.Role
	JTI       string
	ExpiresAt time.Time
}

func withIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the caller identity set by RequireAuth.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}
