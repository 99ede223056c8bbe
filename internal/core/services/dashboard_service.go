package services

import (
	"context"
	"time"

	"biblio-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// DashboardService aggregates library-wide figures for the front page
type DashboardService struct {
	db *gorm.DB
}

// NewDashboardService creates a new dashboard service
func NewDashboardService(db *gorm.DB) *DashboardService {
	return &DashboardService{db: db}
}

// DashboardData represents the aggregated library snapshot
type DashboardData struct {
	// Catalog
	TotalBooks     int64 `json:"total_books"`
	AvailableBooks int64 `json:"available_books"`
	LoanedBooks    int64 `json:"loaned_books"`

	// Registry
	TotalPatrons  int64 `json:"total_patrons"`
	ActivePatrons int64 `json:"active_patrons"`

	// Ledger
	TotalLoans   int64   `json:"total_loans"`
	OpenLoans    int64   `json:"open_loans"`
	OverdueLoans int64   `json:"overdue_loans"`
	TotalFines   float64 `json:"total_fines"`

	// Recent activity
	RecentLoans []LoanSummary `json:"recent_loans"`
}

// LoanSummary represents a recent-loan row on the dashboard
type LoanSummary struct {
	ID         uint      `json:"id"`
	BookTitle  string    `json:"book_title"`
	PatronName string    `json:"patron_name"`
	Status     string    `json:"status"`
	DueAt      time.Time `json:"due_at"`
	LoanedAt   time.Time `json:"loaned_at"`
}

// GetDashboard builds the aggregated snapshot
func (s *DashboardService) GetDashboard(ctx context.Context) (*DashboardData, error) {
	data := &DashboardData{}
	db := s.db.WithContext(ctx)

	if err := db.Model(&models.Book{}).Count(&data.TotalBooks).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Book{}).Where("available = ?", true).Count(&data.AvailableBooks).Error; err != nil {
		return nil, err
	}
	data.LoanedBooks = data.TotalBooks - data.AvailableBooks

	if err := db.Model(&models.Patron{}).Count(&data.TotalPatrons).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Patron{}).Where("active = ?", true).Count(&data.ActivePatrons).Error; err != nil {
		return nil, err
	}

	if err := db.Model(&models.Loan{}).Count(&data.TotalLoans).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Loan{}).Where("status IN ?", models.OpenLoanStatuses).Count(&data.OpenLoans).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Loan{}).Where("status = ?", models.LoanStatusOverdue).Count(&data.OverdueLoans).Error; err != nil {
		return nil, err
	}
	if err := db.Model(&models.Loan{}).Select("COALESCE(SUM(fine), 0)").Scan(&data.TotalFines).Error; err != nil {
		return nil, err
	}

	var recent []*models.Loan
	if err := db.
		Preload("Patron").
		Preload("Book").
		Order("loaned_at DESC").
		Limit(5).
		Find(&recent).Error; err != nil {
		return nil, err
	}

	data.RecentLoans = make([]LoanSummary, 0, len(recent))
	for _, loan := range recent {
		summary := LoanSummary{
			ID:       loan.ID,
			Status:   loan.Status,
			DueAt:    loan.DueAt,
			LoanedAt: loan.LoanedAt,
		}
		if loan.Book != nil {
			summary.BookTitle = loan.Book.Title
		}
		if loan.Patron != nil {
			summary.PatronName = loan.Patron.Name
		}
		data.RecentLoans = append(data.RecentLoans, summary)
	}

	return data, nil
}
