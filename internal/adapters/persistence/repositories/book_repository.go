package repositories

import (
	"context"

	"biblio-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// BookRepository handles catalog data access
type BookRepository struct {
	db *gorm.DB
}

// NewBookRepository creates a new book repository
func NewBookRepository(db *gorm.DB) *BookRepository {
	return &BookRepository{db: db}
}

// Create creates a new book
func (r *BookRepository) Create(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

// GetByID gets a book by ID
func (r *BookRepository) GetByID(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).First(&book, id).Error
	return &book, err
}

// GetByISBN gets a book by its normalized ISBN
func (r *BookRepository) GetByISBN(ctx context.Context, isbn string) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).Where("isbn = ?", isbn).First(&book).Error
	return &book, err
}

// List lists books with pagination
func (r *BookRepository) List(ctx context.Context, offset, limit int) ([]*models.Book, int64, error) {
	var books []*models.Book
	var total int64

	r.db.WithContext(ctx).Model(&models.Book{}).Count(&total)

	err := r.db.WithContext(ctx).
		Order("title ASC").
		Offset(offset).
		Limit(limit).
		Find(&books).Error

	return books, total, err
}

// Search finds books whose title, author or ISBN contains term
func (r *BookRepository) Search(ctx context.Context, term string) ([]*models.Book, error) {
	var books []*models.Book
	like := "%" + term + "%"
	err := r.db.WithContext(ctx).
		Where("title LIKE ? OR author LIKE ? OR isbn LIKE ?", like, like, like).
		Order("title ASC").
		Find(&books).Error
	return books, err
}

// ListAvailable lists books currently available for loan
func (r *BookRepository) ListAvailable(ctx context.Context) ([]*models.Book, error) {
	var books []*models.Book
	err := r.db.WithContext(ctx).
		Where("available = ?", true).
		Order("title ASC").
		Find(&books).Error
	return books, err
}

// ListByAuthor lists books by author (contains match)
func (r *BookRepository) ListByAuthor(ctx context.Context, author string) ([]*models.Book, error) {
	var books []*models.Book
	err := r.db.WithContext(ctx).
		Where("author LIKE ?", "%"+author+"%").
		Order("title ASC").
		Find(&books).Error
	return books, err
}

// ListByGenre lists books by genre (contains match)
func (r *BookRepository) ListByGenre(ctx context.Context, genre string) ([]*models.Book, error) {
	var books []*models.Book
	err := r.db.WithContext(ctx).
		Where("genre LIKE ?", "%"+genre+"%").
		Order("title ASC").
		Find(&books).Error
	return books, err
}

// ListByYear lists books published in a given year
func (r *BookRepository) ListByYear(ctx context.Context, year int) ([]*models.Book, error) {
	var books []*models.Book
	err := r.db.WithContext(ctx).
		Where("publication_year = ?", year).
		Order("title ASC").
		Find(&books).Error
	return books, err
}

// Update updates a book
func (r *BookRepository) Update(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Save(book).Error
}

// Delete removes a book
func (r *BookRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Book{}, id).Error
}

// ExistsByISBN checks whether another book already uses this ISBN.
// excludeID is ignored when zero.
func (r *BookRepository) ExistsByISBN(ctx context.Context, isbn string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Book{}).Where("isbn = ?", isbn)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// CountTotal counts all books
func (r *BookRepository) CountTotal(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Book{}).Count(&count).Error
	return count, err
}

// CountAvailable counts available books
func (r *BookRepository) CountAvailable(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Book{}).Where("available = ?", true).Count(&count).Error
	return count, err
}
