package handlers

import (
	"strconv"

	"biblio-backend/internal/adapters/persistence/models"
	"biblio-backend/internal/core/services"
	"biblio-backend/internal/pkg/pagination"
	"biblio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// PatronHandler handles patron registry endpoints
type PatronHandler struct {
	patronService *services.PatronService
}

// NewPatronHandler creates a new patron handler
func NewPatronHandler(patronService *services.PatronService) *PatronHandler {
	return &PatronHandler{patronService: patronService}
}

func patronResponses(patrons []*models.Patron) []*models.PatronResponse {
	result := make([]*models.PatronResponse, 0, len(patrons))
	for _, p := range patrons {
		result = append(result, p.ToResponse())
	}
	return result
}

// List handles GET /api/patrons
func (h *PatronHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	patrons, total, err := h.patronService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list patrons")
	}

	return response.Success(c, "Patrons retrieved successfully", pagination.Response{
		Data: patronResponses(patrons),
		Meta: pagination.GetMeta(params, total),
	})
}

// GetByID handles GET /api/patrons/:id
func (h *PatronHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid patron ID")
	}

	patron, err := h.patronService.GetByID(c.Context(), uint(id))
	if err != nil {
		return serviceError(c, err, "Failed to get patron")
	}

	return response.Success(c, "Patron retrieved successfully", patron.ToResponse())
}

// GetByEmail handles GET /api/patrons/by-email?email=
func (h *PatronHandler) GetByEmail(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return response.BadRequest(c, "Email is required")
	}

	patron, err := h.patronService.GetByEmail(c.Context(), email)
	if err != nil {
		return serviceError(c, err, "Failed to get patron")
	}

	return response.Success(c, "Patron retrieved successfully", patron.ToResponse())
}

// Create handles POST /api/patrons
func (h *PatronHandler) Create(c *fiber.Ctx) error {
	var input services.PatronInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Name == "" {
		return response.BadRequest(c, "Name is required")
	}

	patron, err := h.patronService.Register(c.Context(), &input)
	if err != nil {
		return serviceError(c, err, "Failed to create patron")
	}

	return response.Created(c, "Patron created successfully", patron.ToResponse())
}

// Update handles PUT /api/patrons/:id
func (h *PatronHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid patron ID")
	}

	var input services.PatronInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Name == "" {
		return response.BadRequest(c, "Name is required")
	}

	patron, err := h.patronService.Update(c.Context(), uint(id), &input)
	if err != nil {
		return serviceError(c, err, "Failed to update patron")
	}

	return response.Success(c, "Patron updated successfully", patron.ToResponse())
}

// Activate handles PUT /api/patrons/:id/activate
func (h *PatronHandler) Activate(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid patron ID")
	}

	patron, err := h.patronService.Activate(c.Context(), uint(id))
	if err != nil {
		return serviceError(c, err, "Failed to activate patron")
	}

	return response.Success(c, "Patron activated successfully", patron.ToResponse())
}

// Deactivate handles PUT /api/patrons/:id/deactivate
func (h *PatronHandler) Deactivate(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid patron ID")
	}

	patron, err := h.patronService.Deactivate(c.Context(), uint(id))
	if err != nil {
		return serviceError(c, err, "Failed to deactivate patron")
	}

	return response.Success(c, "Patron deactivated successfully", patron.ToResponse())
}

// Delete handles DELETE /api/patrons/:id
func (h *PatronHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid patron ID")
	}

	if err := h.patronService.Delete(c.Context(), uint(id)); err != nil {
		return serviceError(c, err, "Failed to delete patron")
	}

	return response.Success(c, "Patron deleted successfully", nil)
}

// Search handles GET /api/patrons/search?q=
func (h *PatronHandler) Search(c *fiber.Ctx) error {
	term := c.Query("q")
	if term == "" {
		return response.BadRequest(c, "Search term is required")
	}

	patrons, err := h.patronService.Search(c.Context(), term)
	if err != nil {
		return response.InternalServerError(c, "Failed to search patrons")
	}

	return response.Success(c, "Patrons retrieved successfully", patronResponses(patrons))
}

// ListActive handles GET /api/patrons/active
func (h *PatronHandler) ListActive(c *fiber.Ctx) error {
	patrons, err := h.patronService.ListActive(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list patrons")
	}

	return response.Success(c, "Patrons retrieved successfully", patronResponses(patrons))
}

// ListInactive handles GET /api/patrons/inactive
func (h *PatronHandler) ListInactive(c *fiber.Ctx) error {
	patrons, err := h.patronService.ListInactive(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list patrons")
	}

	return response.Success(c, "Patrons retrieved successfully", patronResponses(patrons))
}

// ListWithOpenLoans handles GET /api/patrons/with-open-loans
func (h *PatronHandler) ListWithOpenLoans(c *fiber.Ctx) error {
	patrons, err := h.patronService.ListWithOpenLoans(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list patrons")
	}

	return response.Success(c, "Patrons retrieved successfully", patronResponses(patrons))
}

// ListWithOverdueLoans handles GET /api/patrons/with-overdue-loans
func (h *PatronHandler) ListWithOverdueLoans(c *fiber.Ctx) error {
	patrons, err := h.patronService.ListWithOverdueLoans(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list patrons")
	}

	return response.Success(c, "Patrons retrieved successfully", patronResponses(patrons))
}

// CanBorrow handles GET /api/patrons/:id/can-borrow
func (h *PatronHandler) CanBorrow(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid patron ID")
	}

	status, err := h.patronService.CanBorrow(c.Context(), uint(id))
	if err != nil {
		return serviceError(c, err, "Failed to check borrowing status")
	}

	return response.Success(c, "Borrowing status retrieved successfully", status)
}

// Stats handles GET /api/patrons/stats
func (h *PatronHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.patronService.Stats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get registry stats")
	}

	return response.Success(c, "Registry stats retrieved successfully", stats)
}
