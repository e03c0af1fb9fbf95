package server

import (
	"errors"

	"devconnector/internal/middleware"
	"devconnector/internal/models"

	"github.com/gofiber/fiber/v2"
)

// errResponseWritten is a sentinel indicating the HTTP response was already
// committed by a helper. Handlers must return nil when they see it so the
// fiber ErrorHandler does not overwrite the response.
var errResponseWritten = errors.New("response already written")

// parseID extracts a route parameter by name as a positive uint. On failure
// it writes a 400 response and returns errResponseWritten.
func (s *Server) parseID(c *fiber.Ctx, param, label string) (uint, error) {
	id, err := c.ParamsInt(param)
	if err != nil || id <= 0 {
		_ = models.RespondWithError(c, models.NewValidationError("Invalid "+label))
		return 0, errResponseWritten
	}
	return uint(id), nil
}

// identity returns the authenticated identity placed in Locals by the auth
// middleware. Routes behind AuthRequired always have one; its absence means a
// route was wired without the middleware, which is responded to as
// unauthenticated rather than panicking.
func (s *Server) identity(c *fiber.Ctx) (models.Identity, error) {
	identity, ok := middleware.Identity(c)
	if !ok {
		_ = models.RespondWithError(c, models.NewUnauthenticatedError("Authorization denied"))
		return models.Identity{}, errResponseWritten
	}
	return identity, nil
}
