package services

import (
	"context"
	"testing"
	"time"

	"biblio-backend/internal/adapters/persistence/models"
	"biblio-backend/internal/core/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var baseTime = time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

func TestIssueDefaults(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newLoanServiceAt(db, baseTime)
	ctx := context.Background()

	patron := createTestPatron(t, db, "ada@example.org", true)
	book := createTestBook(t, db, "9780306406157")

	loan, err := svc.Issue(ctx, &IssueInput{PatronID: patron.ID, BookID: book.ID})
	require.NoError(t, err)

	assert.Equal(t, models.LoanStatusActive, loan.Status)
	assert.NotEmpty(t, loan.Reference)
	assert.WithinDuration(t, baseTime, loan.LoanedAt, 0)
	assert.WithinDuration(t, baseTime.AddDate(0, 0, domain.DefaultLoanDays), loan.DueAt, 0)
	assert.Zero(t, loan.Fine)
	assert.Nil(t, loan.ReturnedAt)

	// Relations come preloaded
	require.NotNil(t, loan.Patron)
	require.NotNil(t, loan.Book)
	assert.Equal(t, patron.ID, loan.Patron.ID)

	// The book is no longer available
	var stored models.Book
	require.NoError(t, db.First(&stored, book.ID).Error)
	assert.False(t, stored.Available)
}

func TestIssueExplicitDueDate(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newLoanServiceAt(db, baseTime)
	ctx := context.Background()

	patron := createTestPatron(t, db, "ada@example.org", true)
	book := createTestBook(t, db, "9780306406157")

	due := baseTime.AddDate(0, 0, 3)
	loan, err := svc.Issue(ctx, &IssueInput{PatronID: patron.ID, BookID: book.ID, DueAt: &due})
	require.NoError(t, err)
	assert.WithinDuration(t, due, loan.DueAt, 0)
}

func TestIssueCustomPeriod(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newLoanServiceAt(db, baseTime)
	ctx := context.Background()

	patron := createTestPatron(t, db, "ada@example.org", true)
	book := createTestBook(t, db, "9780306406157")

	loan, err := svc.Issue(ctx, &IssueInput{PatronID: patron.ID, BookID: book.ID, PeriodDays: 7})
	require.NoError(t, err)
	assert.WithinDuration(t, baseTime.AddDate(0, 0, 7), loan.DueAt, 0)
}

func TestIssuePreconditions(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newLoanServiceAt(db, baseTime)
	ctx := context.Background()

	active := createTestPatron(t, db, "ada@example.org", true)
	inactive := createTestPatron(t, db, "edsger@example.org", false)
	book := createTestBook(t, db, "9780306406157")

	// Missing patron
	_, err := svc.Issue(ctx, &IssueInput{PatronID: 9999, BookID: book.ID})
	assert.ErrorIs(t, err, domain.ErrPatronNotFound)

	// Inactive patron
	_, err = svc.Issue(ctx, &IssueInput{PatronID: inactive.ID, BookID: book.ID})
	assert.ErrorIs(t, err, domain.ErrPatronInactive)

	// Missing book
	_, err = svc.Issue(ctx, &IssueInput{PatronID: active.ID, BookID: 9999})
	assert.ErrorIs(t, err, domain.ErrBookNotFound)

	// Unavailable book
	_, err = svc.Issue(ctx, &IssueInput{PatronID: active.ID, BookID: book.ID})
	require.NoError(t, err)
	other := createTestPatron(t, db, "grace@example.org", true)
	_, err = svc.Issue(ctx, &IssueInput{PatronID: other.ID, BookID: book.ID})
	assert.ErrorIs(t, err, domain.ErrBookUnavailable)
}

func TestIssueLoanLimit(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newLoanServiceAt(db, baseTime)
	ctx := context.Background()

	patron := createTestPatron(t, db, "ada@example.org", true)
	for i, isbn := range []string{"1111111111", "2222222222", "3333333333"} {
		book := createTestBook(t, db, isbn)
		_, err := svc.Issue(ctx, &IssueInput{PatronID: patron.ID, BookID: book.ID})
		require.NoError(t, err, "loan %d", i+1)
	}

	fourth := createTestBook(t, db, "4444444444")
	_, err := svc.Issue(ctx, &IssueInput{PatronID: patron.ID, BookID: fourth.ID})
	assert.ErrorIs(t, err, domain.ErrLoanLimitReached)

	// The rejected issuance left no trace
	var count int64
	db.Model(&models.Loan{}).Count(&count)
	assert.EqualValues(t, 3, count)

	var stored models.Book
	require.NoError(t, db.First(&stored, fourth.ID).Error)
	assert.True(t, stored.Available)
}

func TestReturnOnTime(t *testing.T) {
	db := setupTestDB(t)
	svc, clock := newLoanServiceAt(db, baseTime)
	ctx := context.Background()

	patron := createTestPatron(t, db, "ada@example.org", true)
	book := createTestBook(t, db, "9780306406157")
	loan, err := svc.Issue(ctx, &IssueInput{PatronID: patron.ID, BookID: book.ID})
	require.NoError(t, err)

	*clock = baseTime.AddDate(0, 0, 5)
	returned, err := svc.Return(ctx, loan.ID)
	require.NoError(t, err)

	assert.Equal(t, models.LoanStatusReturned, returned.Status)
	require.NotNil(t, returned.ReturnedAt)
	assert.WithinDuration(t, *clock, *returned.ReturnedAt, 0)
	assert.Zero(t, returned.Fine)

	var stored models.Book
	require.NoError(t, db.First(&stored, book.ID).Error)
	assert.True(t, stored.Available)
}

func TestReturnLate(t *testing.T) {
	db := setupTestDB(t)
	svc, clock := newLoanServiceAt(db, baseTime)
	ctx := context.Background()

	patron := createTestPatron(t, db, "ada@example.org", true)
	book := createTestBook(t, db, "9780306406157")
	loan, err := svc.Issue(ctx, &IssueInput{PatronID: patron.ID, BookID: book.ID})
	require.NoError(t, err)

	// Three whole days past due
	*clock = loan.DueAt.Add(72 * time.Hour)
	returned, err := svc.Return(ctx, loan.ID)
	require.NoError(t, err)

	assert.InDelta(t, 6.00, returned.Fine, 0.001)
	assert.Equal(t, models.LoanStatusReturned, returned.Status)
}

func TestReturnTwice(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newLoanServiceAt(db, baseTime)
	ctx := context.Background()

	patron := createTestPatron(t, db, "ada@example.org", true)
	book := createTestBook(t, db, "9780306406157")
	loan, err := svc.Issue(ctx, &IssueInput{PatronID: patron.ID, BookID: book.ID})
	require.NoError(t, err)

	_, err = svc.Return(ctx, loan.ID)
	require.NoError(t, err)

	_, err = svc.Return(ctx, loan.ID)
	assert.ErrorIs(t, err, domain.ErrLoanAlreadyReturned)
}

func TestReturnMissingLoan(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newLoanServiceAt(db, baseTime)

	_, err := svc.Return(context.Background(), 9999)
	assert.ErrorIs(t, err, domain.ErrLoanNotFound)
}

func TestRenew(t *testing.T) {
	db := setupTestDB(t)
	svc, clock := newLoanServiceAt(db, baseTime)
	ctx := context.Background()

	patron := createTestPatron(t, db, "ada@example.org", true)
	book := createTestBook(t, db, "9780306406157")
	loan, err := svc.Issue(ctx, &IssueInput{PatronID: patron.ID, BookID: book.ID})
	require.NoError(t, err)

	originalDue := loan.DueAt

	*clock = baseTime.AddDate(0, 0, 10)
	renewed, err := svc.Renew(ctx, loan.ID, 7)
	require.NoError(t, err)

	assert.Equal(t, models.LoanStatusRenewed, renewed.Status)
	assert.WithinDuration(t, originalDue.AddDate(0, 0, 7), renewed.DueAt, 0)
	assert.Zero(t, renewed.Fine)

	// A renewed loan can renew again
	renewed, err = svc.Renew(ctx, loan.ID, 0)
	require.NoError(t, err)
	assert.WithinDuration(t, originalDue.AddDate(0, 0, 7+domain.DefaultLoanDays), renewed.DueAt, 0)
}

func TestRenewOverdueLoan(t *testing.T) {
	db := setupTestDB(t)
	svc, clock := newLoanServiceAt(db, baseTime)
	ctx := context.Background()

	patron := createTestPatron(t, db, "ada@example.org", true)
	book := createTestBook(t, db, "9780306406157")
	loan, err := svc.Issue(ctx, &IssueInput{PatronID: patron.ID, BookID: book.ID})
	require.NoError(t, err)

	*clock = loan.DueAt.Add(time.Hour)
	_, err = svc.Renew(ctx, loan.ID, 7)
	assert.ErrorIs(t, err, domain.ErrLoanOverdue)
}

func TestRenewReturnedLoan(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newLoanServiceAt(db, baseTime)
	ctx := context.Background()

	patron := createTestPatron(t, db, "ada@example.org", true)
	book := createTestBook(t, db, "9780306406157")
	loan, err := svc.Issue(ctx, &IssueInput{PatronID: patron.ID, BookID: book.ID})
	require.NoError(t, err)
	_, err = svc.Return(ctx, loan.ID)
	require.NoError(t, err)

	_, err = svc.Renew(ctx, loan.ID, 7)
	assert.ErrorIs(t, err, domain.ErrLoanNotRenewable)
}

func TestRefreshOverdue(t *testing.T) {
	db := setupTestDB(t)
	svc, clock := newLoanServiceAt(db, baseTime)
	ctx := context.Background()

	patron := createTestPatron(t, db, "ada@example.org", true)
	early := createTestBook(t, db, "1111111111")
	late := createTestBook(t, db, "2222222222")

	short, err := svc.Issue(ctx, &IssueInput{PatronID: patron.ID, BookID: early.ID, PeriodDays: 2})
	require.NoError(t, err)
	long, err := svc.Issue(ctx, &IssueInput{PatronID: patron.ID, BookID: late.ID, PeriodDays: 30})
	require.NoError(t, err)

	// Four days in: only the short loan has expired
	*clock = baseTime.AddDate(0, 0, 4)
	refreshed, err := svc.RefreshOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshed)

	stored, err := svc.GetByID(ctx, short.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LoanStatusOverdue, stored.Status)
	assert.InDelta(t, 4.00, stored.Fine, 0.001)

	untouched, err := svc.GetByID(ctx, long.ID)
	require.NoError(t, err)
	assert.Equal(t, models.LoanStatusActive, untouched.Status)

	// Re-running at the same instant changes nothing
	refreshed, err = svc.RefreshOverdue(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, refreshed)
	stored, err = svc.GetByID(ctx, short.ID)
	require.NoError(t, err)
	assert.InDelta(t, 4.00, stored.Fine, 0.001)

	// The estimated fine grows with elapsed time
	*clock = baseTime.AddDate(0, 0, 7)
	_, err = svc.RefreshOverdue(ctx)
	require.NoError(t, err)
	stored, err = svc.GetByID(ctx, short.ID)
	require.NoError(t, err)
	assert.InDelta(t, 10.00, stored.Fine, 0.001)
}

func TestReturnAfterSweepUsesReturnTime(t *testing.T) {
	db := setupTestDB(t)
	svc, clock := newLoanServiceAt(db, baseTime)
	ctx := context.Background()

	patron := createTestPatron(t, db, "ada@example.org", true)
	book := createTestBook(t, db, "9780306406157")
	loan, err := svc.Issue(ctx, &IssueInput{PatronID: patron.ID, BookID: book.ID, PeriodDays: 2})
	require.NoError(t, err)

	*clock = baseTime.AddDate(0, 0, 4)
	_, err = svc.RefreshOverdue(ctx)
	require.NoError(t, err)

	// Returned a day later than the sweep saw it
	*clock = baseTime.AddDate(0, 0, 5)
	returned, err := svc.Return(ctx, loan.ID)
	require.NoError(t, err)

	assert.Equal(t, models.LoanStatusReturned, returned.Status)
	assert.InDelta(t, 6.00, returned.Fine, 0.001)
}

func TestListDueWithin(t *testing.T) {
	db := setupTestDB(t)
	svc, _ := newLoanServiceAt(db, baseTime)
	ctx := context.Background()

	patron := createTestPatron(t, db, "ada@example.org", true)
	soon := createTestBook(t, db, "1111111111")
	later := createTestBook(t, db, "2222222222")

	_, err := svc.Issue(ctx, &IssueInput{PatronID: patron.ID, BookID: soon.ID, PeriodDays: 2})
	require.NoError(t, err)
	_, err = svc.Issue(ctx, &IssueInput{PatronID: patron.ID, BookID: later.ID, PeriodDays: 20})
	require.NoError(t, err)

	loans, err := svc.ListDueWithin(ctx, 5)
	require.NoError(t, err)
	require.Len(t, loans, 1)
	assert.Equal(t, soon.ID, loans[0].BookID)
}

func TestLoanStats(t *testing.T) {
	db := setupTestDB(t)
	svc, clock := newLoanServiceAt(db, baseTime)
	ctx := context.Background()

	patron := createTestPatron(t, db, "ada@example.org", true)
	first := createTestBook(t, db, "1111111111")
	second := createTestBook(t, db, "2222222222")

	_, err := svc.Issue(ctx, &IssueInput{PatronID: patron.ID, BookID: first.ID, PeriodDays: 2})
	require.NoError(t, err)
	closed, err := svc.Issue(ctx, &IssueInput{PatronID: patron.ID, BookID: second.ID, PeriodDays: 2})
	require.NoError(t, err)

	*clock = baseTime.AddDate(0, 0, 4)
	_, err = svc.Return(ctx, closed.ID)
	require.NoError(t, err)
	_, err = svc.RefreshOverdue(ctx)
	require.NoError(t, err)

	stats, err := svc.Stats(ctx)
	require.NoError(t, err)
	assert.EqualValues(t, 2, stats.TotalLoans)
	assert.EqualValues(t, 1, stats.OpenLoans)
	assert.EqualValues(t, 1, stats.OverdueLoans)
	assert.EqualValues(t, 1, stats.ReturnedLoans)
	// Both loans came back two days late (4.00 each)
	assert.InDelta(t, 8.00, stats.TotalFines, 0.001)
}
