package auth

import (
	"context"

	"github.com/labstack/echo/v4"

	"newsportal/internal/model"
)

type contextKey string

const (
	identityContextKey = "identity"
	claimsContextKey   = "user"

	ctxKeyIdentity contextKey = "identity"
)

// Identity is the authenticated caller resolved by the Guard.
type Identity struct {
	UserID string
	Role   model.Role
}

// IsAdmin reports whether the identity holds the admin role.
func (i Identity) IsAdmin() bool {
	return i.Role == model.RoleAdmin
}

// CanModify is the single ownership rule for editing and deleting articles:
// the author or any admin.
func CanModify(identity Identity, article *model.Article) bool {
	if article == nil || identity.UserID == "" {
		return false
	}
	return identity.UserID == article.AuthorID || identity.IsAdmin()
}

// WithIdentity stores identity in ctx.
func WithIdentity(ctx context.Context, identity Identity) context.Context {
	return context.WithValue(ctx, ctxKeyIdentity, identity)
}

// FromContext returns the identity stored by WithIdentity.
func FromContext(ctx context.Context) (Identity, bool) {
	identity, ok := ctx.Value(ctxKeyIdentity).(Identity)
	return identity, ok
}

// IdentityFrom returns the identity the Guard attached to c.
func IdentityFrom(c echo.Context) (Identity, bool) {
	identity, ok := c.Get(identityContextKey).(Identity)
	return identity, ok
}

// ClaimsFrom returns the validated token claims attached to c.
func ClaimsFrom(c echo.Context) (*Claims, bool) {
	claims, ok := c.Get(claimsContextKey).(*Claims)
	return claims, ok && claims != nil
}
