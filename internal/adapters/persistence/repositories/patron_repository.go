package repositories

import (
	"context"

	"biblio-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// PatronRepository handles patron registry data access
type PatronRepository struct {
	db *gorm.DB
}

// NewPatronRepository creates a new patron repository
func NewPatronRepository(db *gorm.DB) *PatronRepository {
	return &PatronRepository{db: db}
}

// Create creates a new patron
func (r *PatronRepository) Create(ctx context.Context, patron *models.Patron) error {
	return r.db.WithContext(ctx).Create(patron).Error
}

// GetByID gets a patron by ID
func (r *PatronRepository) GetByID(ctx context.Context, id uint) (*models.Patron, error) {
	var patron models.Patron
	err := r.db.WithContext(ctx).First(&patron, id).Error
	return &patron, err
}

// GetByEmail gets a patron by email
func (r *PatronRepository) GetByEmail(ctx context.Context, email string) (*models.Patron, error) {
	var patron models.Patron
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&patron).Error
	return &patron, err
}

// List lists patrons with pagination
func (r *PatronRepository) List(ctx context.Context, offset, limit int) ([]*models.Patron, int64, error) {
	var patrons []*models.Patron
	var total int64

	r.db.WithContext(ctx).Model(&models.Patron{}).Count(&total)

	err := r.db.WithContext(ctx).
		Order("name ASC").
		Offset(offset).
		Limit(limit).
		Find(&patrons).Error

	return patrons, total, err
}

// Search finds patrons whose name or email contains term
func (r *PatronRepository) Search(ctx context.Context, term string) ([]*models.Patron, error) {
	var patrons []*models.Patron
	like := "%" + term + "%"
	err := r.db.WithContext(ctx).
		Where("name LIKE ? OR email LIKE ?", like, like).
		Order("name ASC").
		Find(&patrons).Error
	return patrons, err
}

// ListByActive lists patrons filtered by the active flag
func (r *PatronRepository) ListByActive(ctx context.Context, active bool) ([]*models.Patron, error) {
	var patrons []*models.Patron
	err := r.db.WithContext(ctx).
		Where("active = ?", active).
		Order("name ASC").
		Find(&patrons).Error
	return patrons, err
}

// ListWithLoanStatus lists distinct patrons holding at least one loan
// in any of the given statuses
func (r *PatronRepository) ListWithLoanStatus(ctx context.Context, statuses []string) ([]*models.Patron, error) {
	var patrons []*models.Patron
	err := r.db.WithContext(ctx).
		Joins("JOIN loans ON loans.patron_id = patrons.id").
		Where("loans.status IN ?", statuses).
		Distinct("patrons.*").
		Order("patrons.name ASC").
		Find(&patrons).Error
	return patrons, err
}

// Update updates a patron
func (r *PatronRepository) Update(ctx context.Context, patron *models.Patron) error {
	return r.db.WithContext(ctx).Save(patron).Error
}

// Delete removes a patron
func (r *PatronRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&models.Patron{}, id).Error
}

// ExistsByEmail checks whether another patron already uses this email.
// excludeID is ignored when zero.
func (r *PatronRepository) ExistsByEmail(ctx context.Context, email string, excludeID uint) (bool, error) {
	var count int64
	query := r.db.WithContext(ctx).Model(&models.Patron{}).Where("email = ?", email)
	if excludeID != 0 {
		query = query.Where("id <> ?", excludeID)
	}
	err := query.Count(&count).Error
	return count > 0, err
}

// CountTotal counts all patrons
func (r *PatronRepository) CountTotal(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Patron{}).Count(&count).Error
	return count, err
}

// CountByActive counts patrons by active flag
func (r *PatronRepository) CountByActive(ctx context.Context, active bool) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&models.Patron{}).Where("active = ?", active).Count(&count).Error
	return count, err
}
