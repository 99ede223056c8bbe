package services

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"biblio-backend/internal/adapters/persistence/models"
	"biblio-backend/internal/adapters/persistence/repositories"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := filepath.Join(t.TempDir(), "biblio_test.db")
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                 logger.Default.LogMode(logger.Silent),
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)
	require.NoError(t, models.AutoMigrate(db))

	return db
}

func createTestBook(t *testing.T, db *gorm.DB, isbn string) *models.Book {
	t.Helper()

	book := &models.Book{
		Title:           "Test Book " + isbn,
		Author:          "Test Author",
		ISBN:            isbn,
		PublicationYear: 2001,
		Genre:           "Testing",
		Available:       true,
	}
	require.NoError(t, repositories.NewBookRepository(db).Create(context.Background(), book))
	return book
}

func createTestPatron(t *testing.T, db *gorm.DB, email string, active bool) *models.Patron {
	t.Helper()

	patron := &models.Patron{
		Name:   "Test Patron",
		Email:  email,
		Active: active,
	}
	require.NoError(t, repositories.NewPatronRepository(db).Create(context.Background(), patron))
	return patron
}

// newLoanServiceAt returns a loan service with a controllable clock.
// Reassign through the returned pointer to advance time.
func newLoanServiceAt(db *gorm.DB, at time.Time) (*LoanService, *time.Time) {
	clock := at
	svc := NewLoanService(db)
	svc.now = func() time.Time { return clock }
	return svc, &clock
}
