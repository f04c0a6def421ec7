package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Institution is the top of the organizational hierarchy.
type Institution struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Acronym   string    `gorm:"size:50" json:"acronym"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Departments []Department `gorm:"foreignKey:InstitutionID" json:"departments,omitempty"`
}

func (i *Institution) BeforeCreate(_ *gorm.DB) error {
	if i.ID == "" {
		i.ID = uuid.NewString()
	}
	return nil
}

// Department belongs to an institution and may hang under a secretariat,
// forming an adjacency tree. The schema cannot forbid cycles; the
// organization service checks the parent chain on create and update.
type Department struct {
	ID                  string       `gorm:"type:uuid;primaryKey" json:"id"`
	InstitutionID       string       `gorm:"type:uuid;not null;index" json:"institution_id"`
	Institution         *Institution `gorm:"foreignKey:InstitutionID;constraint:OnDelete:RESTRICT" json:"institution,omitempty"`
	Name                string       `gorm:"size:255;not null" json:"name"`
	IsSecretariat       bool         `gorm:"not null;default:false" json:"is_secretariat"`
	ParentSecretariatID *string      `gorm:"type:uuid;index" json:"parent_secretariat_id"`
	ParentSecretariat   *Department  `gorm:"foreignKey:ParentSecretariatID;constraint:OnDelete:RESTRICT" json:"parent_secretariat,omitempty"`
	CreatedAt           time.Time    `json:"created_at"`
	UpdatedAt           time.Time    `json:"updated_at"`

	ChildDepartments []Department     `gorm:"foreignKey:ParentSecretariatID" json:"child_departments,omitempty"`
	Members          []UserDepartment `gorm:"foreignKey:DepartmentID" json:"members,omitempty"`
}

func (d *Department) BeforeCreate(_ *gorm.DB) error {
	if d.ID == "" {
		d.ID = uuid.NewString()
	}
	return nil
}

// UserDepartment is the membership join between users and departments.
type UserDepartment struct {
	ID           string      `gorm:"type:uuid;primaryKey" json:"id"`
	UserID       string      `gorm:"type:uuid;not null;uniqueIndex:idx_user_department" json:"user_id"`
	User         *User       `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"user,omitempty"`
	DepartmentID string      `gorm:"type:uuid;not null;uniqueIndex:idx_user_department" json:"department_id"`
	Department   *Department `gorm:"foreignKey:DepartmentID;constraint:OnDelete:RESTRICT" json:"department,omitempty"`
	Role         string      `gorm:"size:50;not null;default:member" json:"role"` // head, member
	CreatedAt    time.Time   `json:"created_at"`
}

func (m *UserDepartment) BeforeCreate(_ *gorm.DB) error {
	if m.ID == "" {
		m.ID = uuid.NewString()
	}
	return nil
}

func (Institution) TableName() string    { return "institutions" }
func (Department) TableName() string     { return "departments" }
func (UserDepartment) TableName() string { return "user_departments" }
