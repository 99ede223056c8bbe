package routes

import (
	"time"

	"biblio-backend/internal/adapters/http/handlers"
	"biblio-backend/internal/adapters/http/middleware"
	"biblio-backend/internal/adapters/persistence/repositories"
	"biblio-backend/internal/config"
	"biblio-backend/internal/core/services"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// Setup configures all routes for the application
func Setup(app *fiber.App, db *gorm.DB, cfg *config.Config) {
	// Initialize repositories
	bookRepo := repositories.NewBookRepository(db)
	patronRepo := repositories.NewPatronRepository(db)
	loanRepo := repositories.NewLoanRepository(db)

	// Initialize services
	bookService := services.NewBookService(bookRepo, loanRepo)
	patronService := services.NewPatronService(patronRepo, loanRepo)
	loanService := services.NewLoanService(db)
	dashboardService := services.NewDashboardService(db)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler()
	bookHandler := handlers.NewBookHandler(bookService)
	patronHandler := handlers.NewPatronHandler(patronService)
	loanHandler := handlers.NewLoanHandler(loanService)
	dashboardHandler := handlers.NewDashboardHandler(dashboardService)

	// Health check & root routes. Health reflects live DB state and
	// must never be served from a cache.
	app.Get("/", healthHandler.Root)
	app.Get("/health", middleware.NoCacheHeaders(), healthHandler.HealthCheck)

	// API group
	api := app.Group("/api")

	setupBookRoutes(api, bookHandler)
	setupPatronRoutes(api, patronHandler)
	setupLoanRoutes(api, loanHandler)

	api.Get("/dashboard", middleware.NoCacheHeaders(), dashboardHandler.GetDashboard)
}

// setupBookRoutes configures catalog routes.
// Static paths register before the :id wildcard.
func setupBookRoutes(router fiber.Router, h *handlers.BookHandler) {
	books := router.Group("/books")

	catalogCache := middleware.CacheControl(1 * time.Minute)

	books.Get("/", h.List)
	books.Get("/search", h.Search)
	books.Get("/available", catalogCache, h.ListAvailable)
	books.Get("/by-author", catalogCache, h.ListByAuthor)
	books.Get("/by-genre", catalogCache, h.ListByGenre)
	books.Get("/by-year", catalogCache, h.ListByYear)
	books.Get("/stats", h.Stats)
	books.Get("/isbn/:isbn", h.GetByISBN)
	books.Get("/:id", h.GetByID)
	books.Get("/:id/available", h.CheckAvailability)

	books.Post("/", h.Create)
	books.Put("/:id", h.Update)
	books.Delete("/:id", h.Delete)
}

// setupPatronRoutes configures registry routes
func setupPatronRoutes(router fiber.Router, h *handlers.PatronHandler) {
	patrons := router.Group("/patrons")

	patrons.Get("/", h.List)
	patrons.Get("/search", h.Search)
	patrons.Get("/active", h.ListActive)
	patrons.Get("/inactive", h.ListInactive)
	patrons.Get("/with-open-loans", h.ListWithOpenLoans)
	patrons.Get("/with-overdue-loans", h.ListWithOverdueLoans)
	patrons.Get("/by-email", h.GetByEmail)
	patrons.Get("/stats", h.Stats)
	patrons.Get("/:id", h.GetByID)
	patrons.Get("/:id/can-borrow", h.CanBorrow)

	patrons.Post("/", h.Create)
	patrons.Put("/:id", h.Update)
	patrons.Put("/:id/activate", h.Activate)
	patrons.Put("/:id/deactivate", h.Deactivate)
	patrons.Delete("/:id", h.Delete)
}

// setupLoanRoutes configures ledger routes. Mutating lifecycle
// endpoints get the stricter write limiter.
func setupLoanRoutes(router fiber.Router, h *handlers.LoanHandler) {
	loans := router.Group("/loans")

	writeLimiter := middleware.WriteRateLimiter()

	loans.Get("/", h.List)
	loans.Get("/active", h.ListActive)
	loans.Get("/overdue", h.ListOverdue)
	loans.Get("/by-status", h.ListByStatus)
	loans.Get("/due-today", h.ListDueToday)
	loans.Get("/due-within", h.ListDueWithin)
	loans.Get("/stats", h.Stats)
	loans.Get("/by-patron/:patronId", h.ListByPatron)
	loans.Get("/:id", h.GetByID)

	loans.Post("/", writeLimiter, h.Issue)
	loans.Post("/refresh-overdue", h.RefreshOverdue)
	loans.Put("/:id/return", writeLimiter, h.Return)
	loans.Put("/:id/renew", writeLimiter, h.Renew)
}
