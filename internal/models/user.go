package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User represents an account that owns documents, executes tasks and
// participates in tickets.
type User struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Name      string    `gorm:"size:200" json:"name"`
	Role      string    `gorm:"size:50;not null;default:user" json:"role"` // admin, manager, user
	APIUserID *string   `gorm:"size:100;uniqueIndex" json:"api_user_id"`
	CreatedAt time.Time `json:"created_at"`

	Documents    []Document           `gorm:"foreignKey:OwnerID" json:"documents,omitempty"`
	Certificates []DigitalCertificate `gorm:"foreignKey:UserID" json:"certificates,omitempty"`
	Departments  []UserDepartment     `gorm:"foreignKey:UserID" json:"departments,omitempty"`
}

func (u *User) BeforeCreate(_ *gorm.DB) error {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	return nil
}

// Notification is a message delivered to a single user.
type Notification struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string    `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"user,omitempty"`
	Message   string    `gorm:"type:text;not null" json:"message"`
	Read      bool      `gorm:"not null;default:false" json:"read"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`
}

func (n *Notification) BeforeCreate(_ *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}

// DigitalCertificate stores a user's signing certificate. Password holds the
// AES-GCM sealed passphrase, never cleartext; sealing happens in the
// certificate service before insert.
type DigitalCertificate struct {
	ID        string     `gorm:"type:uuid;primaryKey" json:"id"`
	UserID    string     `gorm:"type:uuid;not null;index" json:"user_id"`
	User      *User      `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"user,omitempty"`
	FilePath  string     `gorm:"size:500;not null" json:"file_path"`
	Password  string     `gorm:"size:500;not null" json:"-"`
	ExpiresAt *time.Time `json:"expires_at"`
	CreatedAt time.Time  `json:"created_at"`
}

func (c *DigitalCertificate) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

func (User) TableName() string               { return "users" }
func (Notification) TableName() string       { return "notifications" }
func (DigitalCertificate) TableName() string { return "digital_certificates" }
