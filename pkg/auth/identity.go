package auth

import (
	"context"

	"github.com/gin-gonic/gin"
)

// Identity is the authenticated caller of one request.
type Identity struct {
	UserID   uint
	Username string
}

type contextKey string

const identityKey contextKey = "identity"

// ginIdentityKey is the gin.Context key holding the Identity.
const ginIdentityKey = "auth.identity"

// WithIdentity returns a copy of ctx carrying id.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// FromContext returns the caller identity stored by the gateway.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(identityKey).(Identity)
	return id, ok
}

// Current returns the identity attached to a gin request.
func Current(c *gin.Context) (Identity, bool) {
	v, ok := c.Get(ginIdentityKey)
	if !ok {
		return Identity{}, false
	}
	id, ok := v.(Identity)
	return id, ok
}
