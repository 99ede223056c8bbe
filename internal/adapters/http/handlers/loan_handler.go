package handlers

import (
	"strconv"

	"biblio-backend/internal/adapters/persistence/models"
	"biblio-backend/internal/core/services"
	"biblio-backend/internal/pkg/pagination"
	"biblio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// LoanHandler handles loan ledger endpoints
type LoanHandler struct {
	loanService *services.LoanService
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService *services.LoanService) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

func loanResponses(loans []*models.Loan) []*models.LoanResponse {
	result := make([]*models.LoanResponse, 0, len(loans))
	for _, l := range loans {
		result = append(result, l.ToResponse())
	}
	return result
}

// List handles GET /api/loans
func (h *LoanHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	loans, total, err := h.loanService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully", pagination.Response{
		Data: loanResponses(loans),
		Meta: pagination.GetMeta(params, total),
	})
}

// GetByID handles GET /api/loans/:id
func (h *LoanHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.GetByID(c.Context(), uint(id))
	if err != nil {
		return serviceError(c, err, "Failed to get loan")
	}

	return response.Success(c, "Loan retrieved successfully", loan.ToResponse())
}

// Issue handles POST /api/loans
func (h *LoanHandler) Issue(c *fiber.Ctx) error {
	var input services.IssueInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.PatronID == 0 {
		return response.BadRequest(c, "Patron ID is required")
	}
	if input.BookID == 0 {
		return response.BadRequest(c, "Book ID is required")
	}

	loan, err := h.loanService.Issue(c.Context(), &input)
	if err != nil {
		return serviceError(c, err, "Failed to issue loan")
	}

	return response.Created(c, "Loan issued successfully", loan.ToResponse())
}

// Return handles PUT /api/loans/:id/return
func (h *LoanHandler) Return(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	loan, err := h.loanService.Return(c.Context(), uint(id))
	if err != nil {
		return serviceError(c, err, "Failed to return loan")
	}

	return response.Success(c, "Loan returned successfully", loan.ToResponse())
}

type renewRequest struct {
	AdditionalDays int `json:"additional_days"`
}

// Renew handles PUT /api/loans/:id/renew
func (h *LoanHandler) Renew(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid loan ID")
	}

	// Body is optional; an empty one renews for the default period.
	var req renewRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return response.BadRequest(c, "Invalid request body")
		}
	}

	loan, err := h.loanService.Renew(c.Context(), uint(id), req.AdditionalDays)
	if err != nil {
		return serviceError(c, err, "Failed to renew loan")
	}

	return response.Success(c, "Loan renewed successfully", loan.ToResponse())
}

// RefreshOverdue handles POST /api/loans/refresh-overdue
func (h *LoanHandler) RefreshOverdue(c *fiber.Ctx) error {
	refreshed, err := h.loanService.RefreshOverdue(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to refresh overdue loans")
	}

	return response.Success(c, "Overdue loans refreshed successfully", fiber.Map{
		"refreshed": refreshed,
	})
}

// ListActive handles GET /api/loans/active
func (h *LoanHandler) ListActive(c *fiber.Ctx) error {
	loans, err := h.loanService.ListOpen(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully", loanResponses(loans))
}

// ListOverdue handles GET /api/loans/overdue
func (h *LoanHandler) ListOverdue(c *fiber.Ctx) error {
	loans, err := h.loanService.ListOverdue(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully", loanResponses(loans))
}

// ListByStatus handles GET /api/loans/by-status?status=
func (h *LoanHandler) ListByStatus(c *fiber.Ctx) error {
	status := c.Query("status")
	if status == "" {
		return response.BadRequest(c, "Status is required")
	}

	loans, err := h.loanService.ListByStatus(c.Context(), status)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully", loanResponses(loans))
}

// ListByPatron handles GET /api/loans/by-patron/:patronId
func (h *LoanHandler) ListByPatron(c *fiber.Ctx) error {
	patronID, err := strconv.ParseUint(c.Params("patronId"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid patron ID")
	}

	loans, err := h.loanService.ListByPatron(c.Context(), uint(patronID))
	if err != nil {
		return serviceError(c, err, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully", loanResponses(loans))
}

// ListDueToday handles GET /api/loans/due-today
func (h *LoanHandler) ListDueToday(c *fiber.Ctx) error {
	loans, err := h.loanService.ListDueToday(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully", loanResponses(loans))
}

// ListDueWithin handles GET /api/loans/due-within?days=
func (h *LoanHandler) ListDueWithin(c *fiber.Ctx) error {
	days, err := strconv.Atoi(c.Query("days"))
	if err != nil || days < 1 {
		return response.BadRequest(c, "Invalid number of days")
	}

	loans, err := h.loanService.ListDueWithin(c.Context(), days)
	if err != nil {
		return response.InternalServerError(c, "Failed to list loans")
	}

	return response.Success(c, "Loans retrieved successfully", loanResponses(loans))
}

// Stats handles GET /api/loans/stats
func (h *LoanHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.loanService.Stats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get ledger stats")
	}

	return response.Success(c, "Ledger stats retrieved successfully", stats)
}
