package services

import (
	"testing"

	"github.com/softagon/gedhub/internal/models"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// openTestDB returns an isolated in-memory database with foreign keys
// enforced, the full schema migrated and the lookup rows seeded.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?_foreign_keys=on"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		t.Fatalf("failed to get sql.DB: %v", err)
	}
	// A single connection keeps the in-memory database alive for the whole test.
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() { sqlDB.Close() })

	if err := models.MigrateAll(db); err != nil {
		t.Fatalf("failed to migrate schema: %v", err)
	}
	if err := models.SeedLookups(db); err != nil {
		t.Fatalf("failed to seed lookups: %v", err)
	}

	return db
}

func createTestUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()

	user, err := NewUserService(db).Create(&CreateUserRequest{Email: email, Name: "Test User"})
	if err != nil {
		t.Fatalf("failed to create user %s: %v", email, err)
	}
	return user
}

func createTestDocument(t *testing.T, db *gorm.DB, ownerID string) *models.Document {
	t.Helper()

	doc, err := NewDocumentService(db).Create(&CreateDocumentRequest{
		Title:    "Test Document",
		FilePath: "/files/test.pdf",
		MimeType: "application/pdf",
		OwnerID:  ownerID,
	})
	if err != nil {
		t.Fatalf("failed to create document: %v", err)
	}
	return doc
}

func createTestOrg(t *testing.T, db *gorm.DB) (*models.Institution, *models.Department) {
	t.Helper()

	svc := NewOrganizationService(db)
	inst, err := svc.CreateInstitution("City Hall", "CH")
	if err != nil {
		t.Fatalf("failed to create institution: %v", err)
	}
	dept, err := svc.CreateDepartment(&CreateDepartmentRequest{
		InstitutionID: inst.ID,
		Name:          "IT",
	})
	if err != nil {
		t.Fatalf("failed to create department: %v", err)
	}
	return inst, dept
}

func lookupStatus(t *testing.T, db *gorm.DB, name string) *models.TicketStatus {
	t.Helper()

	var status models.TicketStatus
	if err := db.First(&status, "name = ?", name).Error; err != nil {
		t.Fatalf("failed to find status %q: %v", name, err)
	}
	return &status
}

func lookupPriority(t *testing.T, db *gorm.DB, name string) *models.TicketPriority {
	t.Helper()

	var priority models.TicketPriority
	if err := db.First(&priority, "name = ?", name).Error; err != nil {
		t.Fatalf("failed to find priority %q: %v", name, err)
	}
	return &priority
}
