package config

import (
	"log"

	"biblio-backend/internal/adapters/persistence/models"

	"gorm.io/gorm"
)

// Seeder handles database seeding
type Seeder struct {
	db *gorm.DB
}

// NewSeeder creates a new seeder instance
func NewSeeder(db *gorm.DB) *Seeder {
	return &Seeder{db: db}
}

// Run executes all seeders. Each seeder is idempotent: it checks
// for existing rows before inserting anything.
func (s *Seeder) Run() error {
	log.Println("🌱 Running database seeders...")

	if err := s.seedBooks(); err != nil {
		log.Printf("⚠️ Book seeder skipped: %v", err)
	}
	if err := s.seedPatrons(); err != nil {
		log.Printf("⚠️ Patron seeder skipped: %v", err)
	}

	log.Println("✅ Database seeding completed")
	return nil
}

// seedBooks seeds a starter catalog for development
func (s *Seeder) seedBooks() error {
	var count int64
	s.db.Model(&models.Book{}).Count(&count)
	if count > 0 {
		return nil // Catalog already populated
	}

	books := []models.Book{
		{Title: "The Go Programming Language", Author: "Alan A. A. Donovan", ISBN: "9780134190440", PublicationYear: 2015, Genre: "Programming", Available: true},
		{Title: "Clean Architecture", Author: "Robert C. Martin", ISBN: "9780134494166", PublicationYear: 2017, Genre: "Software Engineering", Available: true},
		{Title: "Designing Data-Intensive Applications", Author: "Martin Kleppmann", ISBN: "9781449373320", PublicationYear: 2017, Genre: "Databases", Available: true},
		{Title: "The Name of the Rose", Author: "Umberto Eco", ISBN: "9780156001311", PublicationYear: 1980, Genre: "Fiction", Available: true},
		{Title: "One Hundred Years of Solitude", Author: "Gabriel Garcia Marquez", ISBN: "9780060883287", PublicationYear: 1967, Genre: "Fiction", Available: true},
	}

	return s.db.Create(&books).Error
}

// seedPatrons seeds sample patrons for development
func (s *Seeder) seedPatrons() error {
	var count int64
	s.db.Model(&models.Patron{}).Count(&count)
	if count > 0 {
		return nil // Registry already populated
	}

	patrons := []models.Patron{
		{Name: "Ada Lovelace", Email: "ada@example.org", Phone: "0801234567", Address: "12 Analytical St", Active: true},
		{Name: "Grace Hopper", Email: "grace@example.org", Phone: "0809876543", Address: "44 Compiler Ave", Active: true},
		{Name: "Edsger Dijkstra", Email: "edsger@example.org", Phone: "0805551234", Address: "1 Shortest Path", Active: false},
	}

	return s.db.Create(&patrons).Error
}
