package services

import (
	"context"
	"errors"
	"fmt"
	"time"

	"biblio-backend/internal/adapters/persistence/models"
	"biblio-backend/internal/adapters/persistence/repositories"
	"biblio-backend/internal/core/domain"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LoanService handles the loan lifecycle: issuance, return, renewal
// and the overdue refresh sweep. Issue and Return mutate the loan row
// and the book availability flag together, so both run inside one
// database transaction.
type LoanService struct {
	db         *gorm.DB
	loanRepo   *repositories.LoanRepository
	bookRepo   *repositories.BookRepository
	patronRepo *repositories.PatronRepository

	now func() time.Time
}

// NewLoanService creates a new loan service
func NewLoanService(db *gorm.DB) *LoanService {
	return &LoanService{
		db:         db,
		loanRepo:   repositories.NewLoanRepository(db),
		bookRepo:   repositories.NewBookRepository(db),
		patronRepo: repositories.NewPatronRepository(db),
		now:        time.Now,
	}
}

// IssueInput represents loan issuance input
type IssueInput struct {
	PatronID   uint       `json:"patron_id"`
	BookID     uint       `json:"book_id"`
	DueAt      *time.Time `json:"due_at,omitempty"`
	PeriodDays int        `json:"period_days,omitempty"`
}

// Issue creates a loan after checking patron and book eligibility.
// Precondition order: patron exists, patron active, loan limit, book
// exists, book available. The loan row and the availability flip
// commit atomically.
func (s *LoanService) Issue(ctx context.Context, input *IssueInput) (*models.Loan, error) {
	var loan *models.Loan

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		loanRepo := repositories.NewLoanRepository(tx)
		bookRepo := repositories.NewBookRepository(tx)
		patronRepo := repositories.NewPatronRepository(tx)

		patron, err := patronRepo.GetByID(ctx, input.PatronID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrPatronNotFound
			}
			return err
		}
		if !patron.Active {
			return domain.ErrPatronInactive
		}

		open, err := loanRepo.CountOpenByPatron(ctx, patron.ID)
		if err != nil {
			return err
		}
		if open >= domain.MaxOpenLoans {
			return fmt.Errorf("%w (%d)", domain.ErrLoanLimitReached, domain.MaxOpenLoans)
		}

		book, err := bookRepo.GetByID(ctx, input.BookID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrBookNotFound
			}
			return err
		}
		if !book.Available {
			return domain.ErrBookUnavailable
		}

		now := s.now()
		loan = &models.Loan{
			Reference: uuid.NewString(),
			PatronID:  patron.ID,
			BookID:    book.ID,
			LoanedAt:  now,
			DueAt:     domain.DueDate(now, input.DueAt, input.PeriodDays),
			Status:    models.LoanStatusActive,
			Fine:      0,
		}
		if err := loanRepo.Create(ctx, loan); err != nil {
			return err
		}

		book.Available = false
		return bookRepo.Update(ctx, book)
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, loan.ID)
}

// Return finalizes a loan: stamps the actual return time, computes the
// authoritative fine from it, marks the loan returned and frees the
// book, all in one transaction.
func (s *LoanService) Return(ctx context.Context, id uint) (*models.Loan, error) {
	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		loanRepo := repositories.NewLoanRepository(tx)
		bookRepo := repositories.NewBookRepository(tx)

		loan, err := loanRepo.GetByID(ctx, id)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrLoanNotFound
			}
			return err
		}
		if loan.IsReturned() {
			return domain.ErrLoanAlreadyReturned
		}

		now := s.now()
		loan.ReturnedAt = &now
		loan.Fine = domain.FineAmount(loan.DueAt, now)
		loan.Status = models.LoanStatusReturned
		// Save through a relation-free copy so Preload results don't
		// get written back.
		bare := *loan
		bare.Patron = nil
		bare.Book = nil
		if err := loanRepo.Update(ctx, &bare); err != nil {
			return err
		}

		book, err := bookRepo.GetByID(ctx, loan.BookID)
		if err != nil {
			return err
		}
		book.Available = true
		return bookRepo.Update(ctx, book)
	})
	if err != nil {
		return nil, err
	}

	return s.GetByID(ctx, id)
}

// Renew extends a loan's due date. Only loans that are Active or
// Renewed and not yet past due are eligible. The fine is untouched.
func (s *LoanService) Renew(ctx context.Context, id uint, additionalDays int) (*models.Loan, error) {
	loan, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !domain.StatusAllowsRenewal(loan.Status) {
		return nil, fmt.Errorf("%w: status %s", domain.ErrLoanNotRenewable, loan.Status)
	}
	if domain.IsOverdue(loan.DueAt, s.now()) {
		return nil, fmt.Errorf("%w: status %s", domain.ErrLoanOverdue, loan.Status)
	}

	loan.DueAt = loan.DueAt.AddDate(0, 0, domain.RenewalDays(additionalDays))
	loan.Status = models.LoanStatusRenewed

	bare := *loan
	bare.Patron = nil
	bare.Book = nil
	if err := s.loanRepo.Update(ctx, &bare); err != nil {
		return nil, err
	}
	return s.GetByID(ctx, id)
}

// RefreshOverdue marks every expired non-returned loan Overdue and
// refreshes its estimated fine using "now" as reference. Idempotent:
// re-running re-asserts Overdue and the fine only grows with elapsed
// time. Returns the number of loans touched.
func (s *LoanService) RefreshOverdue(ctx context.Context) (int, error) {
	now := s.now()
	expired, err := s.loanRepo.ListExpired(ctx, now)
	if err != nil {
		return 0, err
	}

	refreshed := 0
	for _, loan := range expired {
		loan.Status = models.LoanStatusOverdue
		loan.Fine = domain.FineAmount(loan.DueAt, now)
		if err := s.loanRepo.Update(ctx, loan); err != nil {
			return refreshed, err
		}
		refreshed++
	}
	return refreshed, nil
}

// GetByID gets a loan by ID with patron and book preloaded
func (s *LoanService) GetByID(ctx context.Context, id uint) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrLoanNotFound
		}
		return nil, err
	}
	return loan, nil
}

// List lists loans with pagination
func (s *LoanService) List(ctx context.Context, offset, limit int) ([]*models.Loan, int64, error) {
	return s.loanRepo.List(ctx, offset, limit)
}

// ListOpen lists loans in any open status
func (s *LoanService) ListOpen(ctx context.Context) ([]*models.Loan, error) {
	return s.loanRepo.ListOpen(ctx)
}

// ListOverdue lists loans currently marked overdue
func (s *LoanService) ListOverdue(ctx context.Context) ([]*models.Loan, error) {
	return s.loanRepo.ListByStatus(ctx, models.LoanStatusOverdue)
}

// ListByStatus lists loans in a given status
func (s *LoanService) ListByStatus(ctx context.Context, status string) ([]*models.Loan, error) {
	return s.loanRepo.ListByStatus(ctx, status)
}

// ListByPatron lists a patron's loans. The patron must exist.
func (s *LoanService) ListByPatron(ctx context.Context, patronID uint) ([]*models.Loan, error) {
	if _, err := s.patronRepo.GetByID(ctx, patronID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, domain.ErrPatronNotFound
		}
		return nil, err
	}
	return s.loanRepo.ListByPatron(ctx, patronID)
}

// ListDueToday lists open loans whose due date falls on the current day
func (s *LoanService) ListDueToday(ctx context.Context) ([]*models.Loan, error) {
	now := s.now()
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	return s.loanRepo.ListDueBetween(ctx, start, start.AddDate(0, 0, 1))
}

// ListDueWithin lists open loans due within the next days
func (s *LoanService) ListDueWithin(ctx context.Context, days int) ([]*models.Loan, error) {
	now := s.now()
	return s.loanRepo.ListDueBetween(ctx, now, now.AddDate(0, 0, days))
}

// LoanStats represents ledger statistics
type LoanStats struct {
	TotalLoans    int64   `json:"total_loans"`
	OpenLoans     int64   `json:"open_loans"`
	OverdueLoans  int64   `json:"overdue_loans"`
	ReturnedLoans int64   `json:"returned_loans"`
	TotalFines    float64 `json:"total_fines"`
}

// Stats computes ledger statistics
func (s *LoanService) Stats(ctx context.Context) (*LoanStats, error) {
	total, err := s.loanRepo.CountTotal(ctx)
	if err != nil {
		return nil, err
	}
	active, err := s.loanRepo.CountByStatus(ctx, models.LoanStatusActive)
	if err != nil {
		return nil, err
	}
	renewed, err := s.loanRepo.CountByStatus(ctx, models.LoanStatusRenewed)
	if err != nil {
		return nil, err
	}
	overdue, err := s.loanRepo.CountByStatus(ctx, models.LoanStatusOverdue)
	if err != nil {
		return nil, err
	}
	returned, err := s.loanRepo.CountByStatus(ctx, models.LoanStatusReturned)
	if err != nil {
		return nil, err
	}
	fines, err := s.loanRepo.SumFines(ctx)
	if err != nil {
		return nil, err
	}

	return &LoanStats{
		TotalLoans:    total,
		OpenLoans:     active + renewed + overdue,
		OverdueLoans:  overdue,
		ReturnedLoans: returned,
		TotalFines:    fines,
	}, nil
}
