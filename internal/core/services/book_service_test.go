package services

import (
	"context"
	"testing"

	"biblio-backend/internal/adapters/persistence/repositories"
	"biblio-backend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func setupBookService(t *testing.T) (*BookService, *LoanService, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	bookRepo := repositories.NewBookRepository(db)
	loanRepo := repositories.NewLoanRepository(db)
	loanSvc, _ := newLoanServiceAt(db, baseTime)
	return NewBookService(bookRepo, loanRepo), loanSvc, db
}

func TestBookCreate(t *testing.T) {
	svc, _, _ := setupBookService(t)
	ctx := context.Background()

	book, err := svc.Create(ctx, &BookInput{
		Title:           "  The Name of the Rose ",
		Author:          "Umberto Eco",
		ISBN:            "978-0-15-600131-1",
		PublicationYear: 1980,
		Genre:           "Fiction",
	})
	require.NoError(t, err)

	assert.Equal(t, "The Name of the Rose", book.Title)
	assert.Equal(t, "9780156001311", book.ISBN)
	assert.True(t, book.Available)
}

func TestBookCreateValidation(t *testing.T) {
	svc, _, _ := setupBookService(t)
	ctx := context.Background()

	testCases := []struct {
		name     string
		input    BookInput
		expected error
	}{
		{"bad isbn", BookInput{Title: "T", Author: "A", ISBN: "12345", PublicationYear: 2000}, domain.ErrInvalidISBN},
		{"year too early", BookInput{Title: "T", Author: "A", ISBN: "1111111111", PublicationYear: 999}, domain.ErrInvalidYear},
		{"year too late", BookInput{Title: "T", Author: "A", ISBN: "1111111111", PublicationYear: 2031}, domain.ErrInvalidYear},
	}

	for _, tt := range testCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Create(ctx, &tt.input)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}

func TestBookDuplicateISBN(t *testing.T) {
	svc, _, _ := setupBookService(t)
	ctx := context.Background()

	input := &BookInput{Title: "First", Author: "A", ISBN: "9780306406157", PublicationYear: 2000}
	_, err := svc.Create(ctx, input)
	require.NoError(t, err)

	// Same digits with different separators still collide
	_, err = svc.Create(ctx, &BookInput{Title: "Second", Author: "B", ISBN: "978-0-306-40615-7", PublicationYear: 2001})
	assert.ErrorIs(t, err, domain.ErrDuplicateISBN)
}

func TestBookUpdateKeepsOwnISBN(t *testing.T) {
	svc, _, _ := setupBookService(t)
	ctx := context.Background()

	book, err := svc.Create(ctx, &BookInput{Title: "First", Author: "A", ISBN: "9780306406157", PublicationYear: 2000})
	require.NoError(t, err)

	// Re-submitting its own ISBN is not a duplicate
	updated, err := svc.Update(ctx, book.ID, &BookInput{Title: "Renamed", Author: "A", ISBN: "9780306406157", PublicationYear: 2000})
	require.NoError(t, err)
	assert.Equal(t, "Renamed", updated.Title)
}

func TestBookGetByISBNNormalizes(t *testing.T) {
	svc, _, _ := setupBookService(t)
	ctx := context.Background()

	_, err := svc.Create(ctx, &BookInput{Title: "T", Author: "A", ISBN: "9780306406157", PublicationYear: 2000})
	require.NoError(t, err)

	book, err := svc.GetByISBN(ctx, "978-0-306-40615-7")
	require.NoError(t, err)
	assert.Equal(t, "T", book.Title)
}

func TestBookDeleteBlockedByOpenLoan(t *testing.T) {
	svc, loanSvc, db := setupBookService(t)
	ctx := context.Background()

	book, err := svc.Create(ctx, &BookInput{Title: "T", Author: "A", ISBN: "9780306406157", PublicationYear: 2000})
	require.NoError(t, err)
	patron := createTestPatron(t, db, "ada@example.org", true)

	loan, err := loanSvc.Issue(ctx, &IssueInput{PatronID: patron.ID, BookID: book.ID})
	require.NoError(t, err)

	err = svc.Delete(ctx, book.ID)
	assert.ErrorIs(t, err, domain.ErrBookHasOpenLoan)

	// After the return the delete goes through
	_, err = loanSvc.Return(ctx, loan.ID)
	require.NoError(t, err)
	require.NoError(t, svc.Delete(ctx, book.ID))

	_, err = svc.GetByID(ctx, book.ID)
	assert.ErrorIs(t, err, domain.ErrBookNotFound)
}

func TestBookStats(t *testing.T) {
	svc, loanSvc, db := setupBookService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, &BookInput{Title: "T1", Author: "A", ISBN: "1111111111", PublicationYear: 2000})
	require.NoError(t, err)
	_, err = svc.Create(ctx, &BookInput{Title: "T2", Author: "A", ISBN: "2222222222", PublicationYear: 2000})
	require.NoError(t, err)

	patron := createTestPatron(t, db, "ada@example.org", true)
	_, err = loanSvc.Issue(ctx, &IssueInput{PatronID: patron.ID, BookID: first.ID})
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalBooks)
	assert.EqualValues(t, 1, stats.AvailableBooks)
	assert.EqualValues(t, 1, stats.LoanedBooks)
}
