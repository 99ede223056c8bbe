package services

import (
	"context"
	"errors"
	"strings"

	"biblio-backend/internal/adapters/persistence/models"
	"biblio-backend/internal/adapters/persistence/repositories"
	"biblio-backend/internal/core/domain"

	"gorm.io/gorm"
)

// BookService handles catalog business logic
type BookService struct {
	bookRepo *repositories.BookRepository
	loanRepo *repositories.LoanRepository
}

// NewBookService creates a new book service
func NewBookService(bookRepo *repositories.BookRepository, loanRepo *repositories.LoanRepository) *BookService {
	return &BookService{
		bookRepo: bookRepo,
		loanRepo: loanRepo,
	}
}

// BookInput represents create/update book input
type BookInput struct {
	Title           string `json:"title"`
	Author          string `json:"author"`
	ISBN            string `json:"isbn"`
	PublicationYear int    `json:"publication_year"`
	Genre           string `json:"genre,omitempty"`
}

func (s *BookService) validate(input *BookInput) error {
	if !domain.ValidISBN(input.ISBN) {
		return domain.ErrInvalidISBN
	}
	if !domain.ValidPublicationYear(input.PublicationYear) {
		return domain.ErrInvalidYear
	}
	return nil
}

// Create adds a book to the catalog
func (s *BookService) Create(ctx context.Context, input *BookInput) (*models.Book, error) {
	if err := s.validate(input); err != nil {
		return nil, err
	}

	isbn := domain.NormalizeISBN(input.ISBN)
	exists, err := s.bookRepo.ExistsByISBN(ctx, isbn, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateISBN
	}

	book := &models.Book{
		Title:           strings.TrimSpace(input.Title),
		Author:          strings.TrimSpace(input.Author),
		ISBN:            isbn,
		PublicationYear: input.PublicationYear,
		Genre:           strings.TrimSpace(input.Genre),
		Available:       true,
	}

	if err := s.bookRepo.Create(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// GetByID gets a book by ID
func (s *BookService) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	book, err := s.bookRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

// GetByISBN gets a book by ISBN
func (s *BookService) GetByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	book, err := s.bookRepo.GetByISBN(ctx, domain.NormalizeISBN(isbn))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrBookNotFound
		}
		return nil, err
	}
	return book, nil
}

// Update modifies a book. Availability is owned by the loan lifecycle
// and never changes here.
func (s *BookService) Update(ctx context.Context, id uint, input *BookInput) (*models.Book, error) {
	book, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := s.validate(input); err != nil {
		return nil, err
	}

	isbn := domain.NormalizeISBN(input.ISBN)
	exists, err := s.bookRepo.ExistsByISBN(ctx, isbn, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateISBN
	}

	book.Title = strings.TrimSpace(input.Title)
	book.Author = strings.TrimSpace(input.Author)
	book.ISBN = isbn
	book.PublicationYear = input.PublicationYear
	book.Genre = strings.TrimSpace(input.Genre)

	if err := s.bookRepo.Update(ctx, book); err != nil {
		return nil, err
	}
	return book, nil
}

// Delete removes a book. Refused while the book has an open loan.
func (s *BookService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	open, err := s.loanRepo.CountOpenByBook(ctx, id)
	if err != nil {
		return err
	}
	if open > 0 {
		return domain.ErrBookHasOpenLoan
	}

	return s.bookRepo.Delete(ctx, id)
}

// List lists books with pagination
func (s *BookService) List(ctx context.Context, offset, limit int) ([]*models.Book, int64, error) {
	return s.bookRepo.List(ctx, offset, limit)
}

// Search finds books matching a free-text term
func (s *BookService) Search(ctx context.Context, term string) ([]*models.Book, error) {
	return s.bookRepo.Search(ctx, term)
}

// ListAvailable lists books available for loan
func (s *BookService) ListAvailable(ctx context.Context) ([]*models.Book, error) {
	return s.bookRepo.ListAvailable(ctx)
}

// ListByAuthor lists books by author
func (s *BookService) ListByAuthor(ctx context.Context, author string) ([]*models.Book, error) {
	return s.bookRepo.ListByAuthor(ctx, author)
}

// ListByGenre lists books by genre
func (s *BookService) ListByGenre(ctx context.Context, genre string) ([]*models.Book, error) {
	return s.bookRepo.ListByGenre(ctx, genre)
}

// ListByYear lists books by publication year
func (s *BookService) ListByYear(ctx context.Context, year int) ([]*models.Book, error) {
	return s.bookRepo.ListByYear(ctx, year)
}

// IsAvailable reports whether a book can be loaned right now
func (s *BookService) IsAvailable(ctx context.Context, id uint) (bool, error) {
	book, err := s.GetByID(ctx, id)
	if err != nil {
		return false, err
	}
	return book.Available, nil
}

// BookStats represents catalog statistics
type BookStats struct {
	TotalBooks     int64 `json:"total_books"`
	AvailableBooks int64 `json:"available_books"`
	LoanedBooks    int64 `json:"loaned_books"`
}

// Stats computes catalog statistics
func (s *BookService) Stats(ctx context.Context) (*BookStats, error) {
	total, err := s.bookRepo.CountTotal(ctx)
	if err != nil {
		return nil, err
	}
	available, err := s.bookRepo.CountAvailable(ctx)
	if err != nil {
		return nil, err
	}

	return &BookStats{
		TotalBooks:     total,
		AvailableBooks: available,
		LoanedBooks:    total - available,
	}, nil
}
