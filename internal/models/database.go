package models

import (
	"fmt"
	"time"

	"github.com/softagon/gedhub/internal/config"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

func InitDB(cfg *config.DatabaseConfig) error {
	var dialector gorm.Dialector

	switch cfg.Driver {
	case "sqlite":
		dialector = sqlite.Open(cfg.ResolveDSN())
	case "postgres":
		dialector = postgres.Open(cfg.ResolveDSN())
	default:
		return fmt.Errorf("unsupported database driver: %s", cfg.Driver)
	}

	gormConfig := &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	}

	db, err := gorm.Open(dialector, gormConfig)
	if err != nil {
		return fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}
	if cfg.MaxIdleConns > 0 {
		sqlDB.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.MaxOpenConns > 0 {
		sqlDB.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		sqlDB.SetConnMaxLifetime(time.Duration(cfg.ConnMaxLifetime) * time.Second)
	}

	DB = db
	return nil
}

// CloseDB releases the connection pool. Call on shutdown.
func CloseDB() error {
	if DB == nil {
		return nil
	}
	sqlDB, err := DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

// AutoMigrate creates or updates every table of the data model. Parents come
// before children so foreign keys resolve on first run.
func AutoMigrate() error {
	return MigrateAll(DB)
}

// MigrateAll runs the schema migration against an explicit handle; tests use
// it with their own in-memory database.
func MigrateAll(db *gorm.DB) error {
	return db.AutoMigrate(
		&User{},
		&Institution{},
		&Department{},
		&UserDepartment{},
		&Document{},
		&DocumentVersion{},
		&SharedDocument{},
		&Attachment{},
		&FileMetadata{},
		&DigitalCertificate{},
		&Workflow{},
		&Task{},
		&AuditLog{},
		&Notification{},
		&TicketStatus{},
		&TicketPriority{},
		&HelpTopic{},
		&SLAPlan{},
		&CustomField{},
		&Ticket{},
		&TicketThread{},
		&TicketAttachment{},
		&TicketCollaborator{},
		&TicketCustomField{},
	)
}

func GetDB() *gorm.DB {
	return DB
}

// SeedDefaultData creates the helpdesk lookup rows if not exists
func SeedDefaultData() error {
	return SeedLookups(DB)
}

func SeedLookups(db *gorm.DB) error {
	statuses := []TicketStatus{
		{Name: "Open", State: "open", Sort: 1},
		{Name: "Pending", State: "open", Sort: 2},
		{Name: "Resolved", State: "closed", Sort: 3},
		{Name: "Closed", State: "closed", Sort: 4},
	}
	for _, s := range statuses {
		var count int64
		db.Model(&TicketStatus{}).Where("name = ?", s.Name).Count(&count)
		if count == 0 {
			if err := db.Create(&s).Error; err != nil {
				return err
			}
		}
	}

	priorities := []TicketPriority{
		{Name: "Low", Weight: 10},
		{Name: "Normal", Weight: 20},
		{Name: "High", Weight: 30},
		{Name: "Emergency", Weight: 40},
	}
	for _, p := range priorities {
		var count int64
		db.Model(&TicketPriority{}).Where("name = ?", p.Name).Count(&count)
		if count == 0 {
			if err := db.Create(&p).Error; err != nil {
				return err
			}
		}
	}

	var slaCount int64
	db.Model(&SLAPlan{}).Count(&slaCount)
	if slaCount == 0 {
		if err := db.Create(&SLAPlan{Name: "Default 48h", GracePeriodHours: 48, Active: true}).Error; err != nil {
			return err
		}
	}

	return nil
}
