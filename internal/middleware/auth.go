// Package middleware provides authentication and request middleware for the
// application.
package middleware

import (
	"errors"
	"strings"

	"devconnector/internal/auth"
	"devconnector/internal/models"
	"devconnector/internal/observability"

	"github.com/gofiber/fiber/v2"
)

// IdentityKey is the fiber Locals key under which the authenticated identity
// is stored by AuthRequired.
const IdentityKey = "identity"

// AuthRequired returns a middleware that enforces a valid bearer token on
// protected routes. It puts the token's identity into the request Locals and
// nothing more; every ownership decision belongs to the service layer.
//
// The client always sees the same unauthenticated response. The internal
// failure classification (malformed, bad signature, expired) is logged and
// counted but never exposed.
func AuthRequired(tokens *auth.TokenService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			return rejectToken(c, "missing")
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			return rejectToken(c, "malformed_header")
		}

		identity, err := tokens.Validate(parts[1])
		if err != nil {
			return rejectToken(c, reasonFor(err))
		}

		c.Locals(IdentityKey, identity)
		return c.Next()
	}
}

// Identity returns the authenticated identity stored by AuthRequired.
func Identity(c *fiber.Ctx) (models.Identity, bool) {
	identity, ok := c.Locals(IdentityKey).(models.Identity)
	return identity, ok
}

func rejectToken(c *fiber.Ctx, reason string) error {
	observability.AuthLog(c.UserContext(), reason)
	observability.AuthRejections.WithLabelValues(reason).Inc()
	return models.RespondWithError(c, models.NewUnauthenticatedError("Authorization denied"))
}

func reasonFor(err error) string {
	switch {
	case errors.Is(err, auth.ErrTokenExpired):
		return "expired"
	case errors.Is(err, auth.ErrTokenMalformed):
		return "malformed"
	case errors.Is(err, auth.ErrTokenSignature):
		return "signature"
	default:
		return "invalid"
	}
}
