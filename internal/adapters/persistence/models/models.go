package models

import (
	"time"

	"gorm.io/gorm"
)

// ============================================================
// Catalog
// ============================================================

// Book represents the books table
type Book struct {
	ID              uint      `gorm:"primaryKey" json:"id"`
	Title           string    `gorm:"size:200;not null" json:"title"`
	Author          string    `gorm:"size:150;not null" json:"author"`
	ISBN            string    `gorm:"size:20;uniqueIndex;not null" json:"isbn"`
	PublicationYear int       `gorm:"not null" json:"publication_year"`
	Genre           string    `gorm:"size:100" json:"genre,omitempty"`
	Available       bool      `gorm:"not null;default:true" json:"available"`
	CreatedAt       time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt       time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Book) TableName() string {
	return "books"
}

// BookResponse DTO
type BookResponse struct {
	ID              uint      `json:"id"`
	Title           string    `json:"title"`
	Author          string    `json:"author"`
	ISBN            string    `json:"isbn"`
	PublicationYear int       `json:"publication_year"`
	Genre           string    `json:"genre,omitempty"`
	Available       bool      `json:"available"`
	UpdatedAt       time.Time `json:"updated_at"`
}

func (b *Book) ToResponse() *BookResponse {
	return &BookResponse{
		ID:              b.ID,
		Title:           b.Title,
		Author:          b.Author,
		ISBN:            b.ISBN,
		PublicationYear: b.PublicationYear,
		Genre:           b.Genre,
		Available:       b.Available,
		UpdatedAt:       b.UpdatedAt,
	}
}

// ============================================================
// Patron registry
// ============================================================

// Patron represents the patrons table
type Patron struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Name         string    `gorm:"size:150;not null" json:"name"`
	Email        string    `gorm:"size:120;uniqueIndex;not null" json:"email"`
	Phone        string    `gorm:"size:20" json:"phone,omitempty"`
	Address      string    `gorm:"type:text" json:"address,omitempty"`
	Active       bool      `gorm:"not null;default:true" json:"active"`
	RegisteredAt time.Time `gorm:"autoCreateTime" json:"registered_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Patron) TableName() string {
	return "patrons"
}

// PatronResponse DTO
type PatronResponse struct {
	ID           uint      `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	Phone        string    `json:"phone,omitempty"`
	Address      string    `json:"address,omitempty"`
	Active       bool      `json:"active"`
	RegisteredAt time.Time `json:"registered_at"`
}

func (p *Patron) ToResponse() *PatronResponse {
	return &PatronResponse{
		ID:           p.ID,
		Name:         p.Name,
		Email:        p.Email,
		Phone:        p.Phone,
		Address:      p.Address,
		Active:       p.Active,
		RegisteredAt: p.RegisteredAt,
	}
}

// ============================================================
// Loan ledger
// ============================================================

// Loan statuses
const (
	LoanStatusActive   = "ACTIVE"
	LoanStatusReturned = "RETURNED"
	LoanStatusOverdue  = "OVERDUE"
	LoanStatusRenewed  = "RENEWED"
)

// OpenLoanStatuses are the statuses that keep a book out of the
// catalog and count against the patron loan limit.
var OpenLoanStatuses = []string{LoanStatusActive, LoanStatusOverdue, LoanStatusRenewed}

// Loan represents the loans table
type Loan struct {
	ID         uint       `gorm:"primaryKey" json:"id"`
	Reference  string     `gorm:"size:36;uniqueIndex;not null" json:"reference"`
	PatronID   uint       `gorm:"not null;index" json:"patron_id"`
	BookID     uint       `gorm:"not null;index" json:"book_id"`
	LoanedAt   time.Time  `gorm:"not null" json:"loaned_at"`
	DueAt      time.Time  `gorm:"not null;index" json:"due_at"`
	ReturnedAt *time.Time `json:"returned_at"`
	Status     string     `gorm:"size:20;not null;default:'ACTIVE';index" json:"status"`
	Fine       float64    `gorm:"type:decimal(10,2);not null;default:0" json:"fine"`
	CreatedAt  time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt  time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relations
	Patron *Patron `gorm:"foreignKey:PatronID" json:"patron,omitempty"`
	Book   *Book   `gorm:"foreignKey:BookID" json:"book,omitempty"`
}

func (Loan) TableName() string {
	return "loans"
}

// IsReturned reports whether the loan has been finalized.
func (l *Loan) IsReturned() bool {
	return l.Status == LoanStatusReturned
}

// LoanResponse DTO
type LoanResponse struct {
	ID         uint       `json:"id"`
	Reference  string     `json:"reference"`
	PatronID   uint       `json:"patron_id"`
	BookID     uint       `json:"book_id"`
	LoanedAt   time.Time  `json:"loaned_at"`
	DueAt      time.Time  `json:"due_at"`
	ReturnedAt *time.Time `json:"returned_at"`
	Status     string     `json:"status"`
	Fine       float64    `json:"fine"`

	PatronName  string `json:"patron_name,omitempty"`
	PatronEmail string `json:"patron_email,omitempty"`
	BookTitle   string `json:"book_title,omitempty"`
	BookAuthor  string `json:"book_author,omitempty"`
	BookISBN    string `json:"book_isbn,omitempty"`
}

func (l *Loan) ToResponse() *LoanResponse {
	resp := &LoanResponse{
		ID:         l.ID,
		Reference:  l.Reference,
		PatronID:   l.PatronID,
		BookID:     l.BookID,
		LoanedAt:   l.LoanedAt,
		DueAt:      l.DueAt,
		ReturnedAt: l.ReturnedAt,
		Status:     l.Status,
		Fine:       l.Fine,
	}

	if l.Patron != nil {
		resp.PatronName = l.Patron.Name
		resp.PatronEmail = l.Patron.Email
	}
	if l.Book != nil {
		resp.BookTitle = l.Book.Title
		resp.BookAuthor = l.Book.Author
		resp.BookISBN = l.Book.ISBN
	}

	return resp
}

// ============================================================
// Auto Migration
// ============================================================

// AutoMigrate creates or updates all tables
func AutoMigrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&Book{},
		&Patron{},
		&Loan{},
	)
}
