package middleware

import (
	"context"

	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/gin-gonic/gin"
)

// identityKey is the key used to store the authenticated identity in the request context.
const identityKey = contextKey("identity")

// WithIdentity returns a copy of ctx carrying the authenticated identity.
func WithIdentity(ctx context.Context, id domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

// IdentityFromCtx retrieves the authenticated identity from a request context.
func IdentityFromCtx(ctx context.Context) (domain.Identity, bool) {
	id, ok := ctx.Value(identityKey).(domain.Identity)
	return id, ok
}

// GetIdentityFromContext retrieves the authenticated identity from the Gin context.
// It returns the identity and a boolean indicating if it was found.
func GetIdentityFromContext(c *gin.Context) (domain.Identity, bool) {
	return IdentityFromCtx(c.Request.Context())
}
