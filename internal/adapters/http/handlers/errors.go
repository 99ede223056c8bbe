package handlers

import (
	"biblio-backend/internal/core/domain"
	"biblio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// serviceError maps a service error onto the HTTP contract: 404 for
// missing resources, 400 for precondition failures with the domain
// message, 500 with a generic message for everything else.
func serviceError(c *fiber.Ctx, err error, fallback string) error {
	switch {
	case domain.IsNotFound(err):
		return response.NotFound(c, err.Error())
	case domain.IsValidation(err):
		return response.BadRequest(c, err.Error())
	default:
		return response.InternalServerError(c, fallback)
	}
}
