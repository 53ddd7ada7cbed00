package auth

import (
	"context"
	"errors"
	"fmt"

	echojwt "github.com/labstack/echo-jwt/v4"
	"github.com/labstack/echo/v4"

	apperrors "newsportal/internal/errors"
	"newsportal/internal/model"
	"newsportal/internal/repository"
)

// UserFinder resolves a user id to the stored record.
type UserFinder interface {
	FindByID(ctx context.Context, id string) (*model.User, error)
}

// Guard authenticates bearer tokens and attaches the caller's Identity.
type Guard struct {
	jwtService *JWTService
	users      UserFinder
	tokens     TokenStoreInterface
}

// NewGuard creates a guard. tokens may be nil when revocation is not used.
func NewGuard(jwtService *JWTService, users UserFinder, tokens TokenStoreInterface) *Guard {
	return &Guard{
		jwtService: jwtService,
		users:      users,
		tokens:     tokens,
	}
}

// Middleware rejects requests without a valid token for an existing user.
func (g *Guard) Middleware() echo.MiddlewareFunc {
	parse := echojwt.WithConfig(echojwt.Config{
		TokenLookup: "header:" + echo.HeaderAuthorization + ":Bearer ",
		ContextKey:  claimsContextKey,
		ParseTokenFunc: func(c echo.Context, token string) (interface{}, error) {
			return g.jwtService.ValidateToken(token)
		},
		ErrorHandler: func(c echo.Context, err error) error {
			return apperrors.Unauthenticated("Not authorized, token missing or invalid.")
		},
	})

	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return parse(g.resolve(next))
	}
}

func (g *Guard) resolve(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		claims, ok := ClaimsFrom(c)
		if !ok {
			return apperrors.Unauthenticated("Not authorized, token missing or invalid.")
		}
		ctx := c.Request().Context()

		if g.tokens != nil && claims.ID != "" {
			if revoked, _ := g.tokens.IsAccessTokenBlacklisted(ctx, claims.ID); revoked {
				return apperrors.Unauthenticated("Not authorized, token has been revoked.")
			}
		}

		user, err := g.users.FindByID(ctx, claims.UserID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return apperrors.Unauthenticated("Not authorized, user no longer exists.")
			}
			return fmt.Errorf("resolve identity: %w", err)
		}

		role := user.Role
		if !role.Valid() {
			role = model.RoleUser
		}
		identity := Identity{UserID: user.ID, Role: role}
		c.Set(identityContextKey, identity)
		c.SetRequest(c.Request().WithContext(WithIdentity(ctx, identity)))
		return next(c)
	}
}
