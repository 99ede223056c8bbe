package repositories

import (
	"context"
	"time"

	"biblio-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// LoanRepository handles loan ledger data access
type LoanRepository struct {
	db *gorm.DB
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB) *LoanRepository {
	return &LoanRepository{db: db}
}

// Create creates a new loan
func (r *LoanRepository) Create(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Create(loan).Error
}

// GetByID gets a loan by ID with relations
func (r *LoanRepository) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	var loan models.Loan
	err := r.db.WithContext(ctx).
		Preload("Patron").
		Preload("Book").
		First(&loan, id).Error
	return &loan, err
}

// List lists loans with pagination
func (r *LoanRepository) List(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error) {
	var loans []*models.Loan
	var total int64

	r.db.WithContext(ctx).Model(&models.Loan{}).Count(&total)

	err := r.db.WithContext(ctx).
		Preload("Patron").
		Preload("Book").
		Order("loaned_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&loans).Error

	return loans, total, err
}

// ListByStatus lists loans in a single status
func (r *LoanRepository) ListByStatus(ctx context.Context, status string) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("Patron").
		Preload("Book").
		Where("status = ?", status).
		Order("loaned_at DESC").
		Find(&loans).Error
	return loans, err
}

// ListOpen lists loans in any open status
func (r *LoanRepository) ListOpen(ctx context.Context) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("Patron").
		Preload("Book").
		Where("status IN ?", models.OpenLoanStatuses).
		Order("due_at ASC").
		Find(&loans).Error
	return loans, err
}

// ListByPatron lists all loans of a patron
func (r *LoanRepository) ListByPatron(ctx context.Context, patronID uint) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("Book").
		Where("patron_id = ?", patronID).
		Order("loaned_at DESC").
		Find(&loans).Error
	return loans, err
}

// ListExpired lists non-returned loans whose due date has passed
func (r *LoanRepository) ListExpired(ctx context.Context, now time.Time) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Where("status <> ? AND due_at < ?", models.LoanStatusReturned, now).
		Order("due_at ASC").
		Find(&loans).Error
	return loans, err
}

// ListDueBetween lists open loans due in the half-open interval [from, to)
func (r *LoanRepository) ListDueBetween(ctx context.Context, from, to time.Time) ([]*models.Loan, error) {
	var loans []*models.Loan
	err := r.db.WithContext(ctx).
		Preload("Patron").
		Preload("Book").
		Where("status IN ? AND due_at >= ? AND due_at < ?", models.OpenLoanStatuses, from, to).
		Order("due_at ASC").
		Find(&loans).Error
	return loans, err
}

// Update updates a loan
func (r *LoanRepository) Update(ctx context.Context, loan *models.Loan) error {
	return r.db.WithContext(ctx).Save(loan).Error
}

// CountOpenByPatron counts a patron's open loans
func (r *LoanRepository) CountOpenByPatron(ctx context.Context, patronID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Loan{}).
		Where("patron_id = ? AND status IN ?", patronID, models.OpenLoanStatuses).
		Count(&count).Error
	return count, err
}

// CountOpenByBook counts a book's open loans (0 or 1 by invariant)
func (r *LoanRepository) CountOpenByBook(ctx context.Context, bookID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Loan{}).
		Where("book_id = ? AND status IN ?", bookID, models.OpenLoanStatuses).
		Count(&count).Error
	return count, err
}

// CountByStatus counts loans in a single status
func (r *LoanRepository) CountByStatus(ctx context.Context, status string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Loan{}).
		Where("status = ?", status).
		Count(&count).Error
	return count, err
}

// CountTotal counts all loans
func (r *LoanRepository) CountTotal(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Loan{}).Count(&count).Error
	return count, err
}

// SumFines sums accrued fines over the whole ledger
func (r *LoanRepository) SumFines(ctx context.Context) (float64, error) {
	var total float64
	err := r.db.WithContext(ctx).Model(&models.Loan{}).
		Select("COALESCE(SUM(fine), 0)").
		Scan(&total).Error
	return total, err
}
