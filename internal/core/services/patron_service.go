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

// PatronService handles patron registry business logic
type PatronService struct {
	patronRepo *repositories.PatronRepository
	loanRepo   *repositories.LoanRepository
}

// NewPatronService creates a new patron service
func NewPatronService(patronRepo *repositories.PatronRepository, loanRepo *repositories.LoanRepository) *PatronService {
	return &PatronService{
		patronRepo: patronRepo,
		loanRepo:   loanRepo,
	}
}

// PatronInput represents create/update patron input
type PatronInput struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Phone   string `json:"phone,omitempty"`
	Address string `json:"address,omitempty"`
}

// Register adds a patron to the registry
func (s *PatronService) Register(ctx context.Context, input *PatronInput) (*models.Patron, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !domain.ValidEmail(email) {
		return nil, domain.ErrInvalidEmail
	}

	exists, err := s.patronRepo.ExistsByEmail(ctx, email, 0)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	patron := &models.Patron{
		Name:    strings.TrimSpace(input.Name),
		Email:   email,
		Phone:   strings.TrimSpace(input.Phone),
		Address: strings.TrimSpace(input.Address),
		Active:  true,
	}

	if err := s.patronRepo.Create(ctx, patron); err != nil {
		return nil, err
	}
	return patron, nil
}

// GetByID gets a patron by ID
func (s *PatronService) GetByID(ctx context.Context, id uint) (*models.Patron, error) {
	patron, err := s.patronRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPatronNotFound
		}
		return nil, err
	}
	return patron, nil
}

// GetByEmail gets a patron by email
func (s *PatronService) GetByEmail(ctx context.Context, email string) (*models.Patron, error) {
	patron, err := s.patronRepo.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPatronNotFound
		}
		return nil, err
	}
	return patron, nil
}

// Update modifies a patron's contact data
func (s *PatronService) Update(ctx context.Context, id uint, input *PatronInput) (*models.Patron, error) {
	patron, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	email := strings.ToLower(strings.TrimSpace(input.Email))
	if !domain.ValidEmail(email) {
		return nil, domain.ErrInvalidEmail
	}

	exists, err := s.patronRepo.ExistsByEmail(ctx, email, id)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, domain.ErrDuplicateEmail
	}

	patron.Name = strings.TrimSpace(input.Name)
	patron.Email = email
	patron.Phone = strings.TrimSpace(input.Phone)
	patron.Address = strings.TrimSpace(input.Address)

	if err := s.patronRepo.Update(ctx, patron); err != nil {
		return nil, err
	}
	return patron, nil
}

// Activate re-enables a patron
func (s *PatronService) Activate(ctx context.Context, id uint) (*models.Patron, error) {
	patron, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patron.Active = true
	if err := s.patronRepo.Update(ctx, patron); err != nil {
		return nil, err
	}
	return patron, nil
}

// Deactivate disables a patron. Refused while the patron holds open loans.
func (s *PatronService) Deactivate(ctx context.Context, id uint) (*models.Patron, error) {
	patron, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	open, err := s.loanRepo.CountOpenByPatron(ctx, id)
	if err != nil {
		return nil, err
	}
	if open > 0 {
		return nil, domain.ErrPatronHasOpenLoans
	}

	patron.Active = false
	if err := s.patronRepo.Update(ctx, patron); err != nil {
		return nil, err
	}
	return patron, nil
}

// Delete removes a patron. Refused while the patron holds open loans.
func (s *PatronService) Delete(ctx context.Context, id uint) error {
	if _, err := s.GetByID(ctx, id); err != nil {
		return err
	}

	open, err := s.loanRepo.CountOpenByPatron(ctx, id)
	if err != nil {
		return err
	}
	if open > 0 {
		return domain.ErrPatronHasOpenLoans
	}

	return s.patronRepo.Delete(ctx, id)
}

// List lists patrons with pagination
func (s *PatronService) List(ctx context.Context, offset, limit int) ([]*models.Patron, int64, error) {
	return s.patronRepo.List(ctx, offset, limit)
}

// Search finds patrons matching a free-text term
func (s *PatronService) Search(ctx context.Context, term string) ([]*models.Patron, error) {
	return s.patronRepo.Search(ctx, term)
}

// ListActive lists active patrons
func (s *PatronService) ListActive(ctx context.Context) ([]*models.Patron, error) {
	return s.patronRepo.ListByActive(ctx, true)
}

// ListInactive lists inactive patrons
func (s *PatronService) ListInactive(ctx context.Context) ([]*models.Patron, error) {
	return s.patronRepo.ListByActive(ctx, false)
}

// ListWithOpenLoans lists patrons currently holding a loan
func (s *PatronService) ListWithOpenLoans(ctx context.Context) ([]*models.Patron, error) {
	return s.patronRepo.ListWithLoanStatus(ctx, models.OpenLoanStatuses)
}

// ListWithOverdueLoans lists patrons with at least one overdue loan
func (s *PatronService) ListWithOverdueLoans(ctx context.Context) ([]*models.Patron, error) {
	return s.patronRepo.ListWithLoanStatus(ctx, []string{models.LoanStatusOverdue})
}

// BorrowingStatus represents a patron's borrowing eligibility
type BorrowingStatus struct {
	CanBorrow bool  `json:"can_borrow"`
	OpenLoans int64 `json:"open_loans"`
	Limit     int   `json:"limit"`
}

// CanBorrow checks whether a patron may take out another loan
func (s *PatronService) CanBorrow(ctx context.Context, id uint) (*BorrowingStatus, error) {
	patron, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	open, err := s.loanRepo.CountOpenByPatron(ctx, id)
	if err != nil {
		return nil, err
	}

	return &BorrowingStatus{
		CanBorrow: patron.Active && open < domain.MaxOpenLoans,
		OpenLoans: open,
		Limit:     domain.MaxOpenLoans,
	}, nil
}

// PatronStats represents registry statistics
type PatronStats struct {
	TotalPatrons    int64 `json:"total_patrons"`
	ActivePatrons   int64 `json:"active_patrons"`
	InactivePatrons int64 `json:"inactive_patrons"`
}

// Stats computes registry statistics
func (s *PatronService) Stats(ctx context.Context) (*PatronStats, error) {
	total, err := s.patronRepo.CountTotal(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.patronRepo.CountByActive(ctx, true)
	if err != nil {
		return nil, err
	}

	return &PatronStats{
		TotalPatrons:    total,
		ActivePatrons:   active,
		InactivePatrons: total - active,
	}, nil
}
