package handlers

import (
	"strconv"

	"biblio-backend/internal/adapters/persistence/models"
	"biblio-backend/internal/core/services"
	"biblio-backend/internal/pkg/pagination"
	"biblio-backend/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// BookHandler handles catalog endpoints
type BookHandler struct {
	bookService *services.BookService
}

// NewBookHandler creates a new book handler
func NewBookHandler(bookService *services.BookService) *BookHandler {
	return &BookHandler{bookService: bookService}
}

func bookResponses(books []*models.Book) []*models.BookResponse {
	result := make([]*models.BookResponse, 0, len(books))
	for _, b := range books {
		result = append(result, b.ToResponse())
	}
	return result
}

// List handles GET /api/books
func (h *BookHandler) List(c *fiber.Ctx) error {
	params := pagination.GetParams(c)

	books, total, err := h.bookService.List(c.Context(), params.Offset, params.Limit)
	if err != nil {
		return response.InternalServerError(c, "Failed to list books")
	}

	return response.Success(c, "Books retrieved successfully", pagination.Response{
		Data: bookResponses(books),
		Meta: pagination.GetMeta(params, total),
	})
}

// GetByID handles GET /api/books/:id
func (h *BookHandler) GetByID(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	book, err := h.bookService.GetByID(c.Context(), uint(id))
	if err != nil {
		return serviceError(c, err, "Failed to get book")
	}

	return response.Success(c, "Book retrieved successfully", book.ToResponse())
}

// GetByISBN handles GET /api/books/isbn/:isbn
func (h *BookHandler) GetByISBN(c *fiber.Ctx) error {
	book, err := h.bookService.GetByISBN(c.Context(), c.Params("isbn"))
	if err != nil {
		return serviceError(c, err, "Failed to get book")
	}

	return response.Success(c, "Book retrieved successfully", book.ToResponse())
}

// Create handles POST /api/books
func (h *BookHandler) Create(c *fiber.Ctx) error {
	var input services.BookInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Title == "" {
		return response.BadRequest(c, "Title is required")
	}
	if input.Author == "" {
		return response.BadRequest(c, "Author is required")
	}

	book, err := h.bookService.Create(c.Context(), &input)
	if err != nil {
		return serviceError(c, err, "Failed to create book")
	}

	return response.Created(c, "Book created successfully", book.ToResponse())
}

// Update handles PUT /api/books/:id
func (h *BookHandler) Update(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	var input services.BookInput
	if err := c.BodyParser(&input); err != nil {
		return response.BadRequest(c, "Invalid request body")
	}

	if input.Title == "" {
		return response.BadRequest(c, "Title is required")
	}
	if input.Author == "" {
		return response.BadRequest(c, "Author is required")
	}

	book, err := h.bookService.Update(c.Context(), uint(id), &input)
	if err != nil {
		return serviceError(c, err, "Failed to update book")
	}

	return response.Success(c, "Book updated successfully", book.ToResponse())
}

// Delete handles DELETE /api/books/:id
func (h *BookHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	if err := h.bookService.Delete(c.Context(), uint(id)); err != nil {
		return serviceError(c, err, "Failed to delete book")
	}

	return response.Success(c, "Book deleted successfully", nil)
}

// Search handles GET /api/books/search?q=
func (h *BookHandler) Search(c *fiber.Ctx) error {
	term := c.Query("q")
	if term == "" {
		return response.BadRequest(c, "Search term is required")
	}

	books, err := h.bookService.Search(c.Context(), term)
	if err != nil {
		return response.InternalServerError(c, "Failed to search books")
	}

	return response.Success(c, "Books retrieved successfully", bookResponses(books))
}

// ListAvailable handles GET /api/books/available
func (h *BookHandler) ListAvailable(c *fiber.Ctx) error {
	books, err := h.bookService.ListAvailable(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to list available books")
	}

	return response.Success(c, "Books retrieved successfully", bookResponses(books))
}

// ListByAuthor handles GET /api/books/by-author?author=
func (h *BookHandler) ListByAuthor(c *fiber.Ctx) error {
	author := c.Query("author")
	if author == "" {
		return response.BadRequest(c, "Author is required")
	}

	books, err := h.bookService.ListByAuthor(c.Context(), author)
	if err != nil {
		return response.InternalServerError(c, "Failed to list books")
	}

	return response.Success(c, "Books retrieved successfully", bookResponses(books))
}

// ListByGenre handles GET /api/books/by-genre?genre=
func (h *BookHandler) ListByGenre(c *fiber.Ctx) error {
	genre := c.Query("genre")
	if genre == "" {
		return response.BadRequest(c, "Genre is required")
	}

	books, err := h.bookService.ListByGenre(c.Context(), genre)
	if err != nil {
		return response.InternalServerError(c, "Failed to list books")
	}

	return response.Success(c, "Books retrieved successfully", bookResponses(books))
}

// ListByYear handles GET /api/books/by-year?year=
func (h *BookHandler) ListByYear(c *fiber.Ctx) error {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		return response.BadRequest(c, "Invalid year")
	}

	books, err := h.bookService.ListByYear(c.Context(), year)
	if err != nil {
		return response.InternalServerError(c, "Failed to list books")
	}

	return response.Success(c, "Books retrieved successfully", bookResponses(books))
}

// CheckAvailability handles GET /api/books/:id/available
func (h *BookHandler) CheckAvailability(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid book ID")
	}

	available, err := h.bookService.IsAvailable(c.Context(), uint(id))
	if err != nil {
		return serviceError(c, err, "Failed to check availability")
	}

	return response.Success(c, "Availability retrieved successfully", fiber.Map{
		"available": available,
	})
}

// Stats handles GET /api/books/stats
func (h *BookHandler) Stats(c *fiber.Ctx) error {
	stats, err := h.bookService.Stats(c.Context())
	if err != nil {
		return response.InternalServerError(c, "Failed to get catalog stats")
	}

	return response.Success(c, "Catalog stats retrieved successfully", stats)
}
