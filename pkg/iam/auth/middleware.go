package auth

import (
	"strings"

	"github.com/Abraxas-365/cvrelay/pkg/kernel"
	"github.com/gofiber/fiber/v2"
)

const authContextKey = "auth_context"

// AuthContext is stored in the request locals by TokenMiddleware.
type AuthContext struct {
	UserID kernel.UserID
	Email  string
	Scopes []string
}

func (a *AuthContext) HasScope(scope string) bool {
	return HasScope(a.Scopes, scope)
}

// TokenMiddleware validates the bearer token and stores the AuthContext.
func TokenMiddleware(tokens TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get(fiber.HeaderAuthorization)
		if header == "" {
			return ErrMissingToken()
		}

		// Format: "Bearer <token>"
		parts := strings.Fields(header)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			return ErrInvalidToken().WithDetail("reason", "invalid authorization format")
		}

		claims, err := tokens.ValidateAccessToken(parts[1])
		if err != nil {
			return err
		}

		c.Locals(authContextKey, &AuthContext{
			UserID: claims.UserID,
			Email:  claims.Email,
			Scopes: claims.Scopes,
		})
		return c.Next()
	}
}

// RequireScope rejects requests whose token lacks scope. It must run after
// TokenMiddleware.
func RequireScope(scope string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authCtx, ok := GetAuthContext(c)
		if !ok {
			return ErrMissingToken()
		}
		if !authCtx.HasScope(scope) {
			return ErrInsufficientScope().WithDetail("required", scope)
		}
		return c.Next()
	}
}

func GetAuthContext(c *fiber.Ctx) (*AuthContext, bool) {
	authCtx, ok := c.Locals(authContextKey).(*AuthContext)
	return authCtx, ok
}
