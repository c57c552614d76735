package shared

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"github.com/stockroom-dev/stockroom-api/internal/service/auth"
)

type contextKey string

const (
	identityKey contextKey = "identity"
	traceIDKey  contextKey = "traceID"
)

// Identity is the authenticated caller of a request. It is created by the
// authentication middleware and is read-only afterwards.
type Identity struct {
	claims auth.Claims
}

// NewIdentity wraps verified claims.
func NewIdentity(claims auth.Claims) Identity {
	return Identity{claims: claims}
}

// AccountID returns the authenticated account id.
func (i Identity) AccountID() int64 { return i.claims.AccountID }

// Claims returns a copy of the verified claims.
func (i Identity) Claims() auth.Claims { return i.claims }

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFrom returns the identity attached by the authentication
// middleware. ok is false on routes that are not guarded.
func IdentityFrom(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// SetTraceID adds a fresh trace ID to the context.
func SetTraceID(ctx context.Context) context.Context {
	return context.WithValue(ctx, traceIDKey, newTraceID())
}

// GetTraceID retrieves the trace ID from the context, or "".
func GetTraceID(ctx context.Context) string {
	traceID, _ := ctx.Value(traceIDKey).(string)
	return traceID
}

// 32 hex characters.
func newTraceID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")
}
