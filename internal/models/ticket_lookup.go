package models

import "time"

// Lookup tables for the helpdesk side. These are reference data joined by ID,
// so they keep plain auto-increment keys instead of UUIDs.

// TicketStatus names a life-cycle state. State groups statuses into the two
// coarse buckets the access layer cares about when closing tickets.
type TicketStatus struct {
	ID    uint   `gorm:"primaryKey" json:"id"`
	Name  string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	State string `gorm:"size:20;not null;default:open" json:"state"` // open, closed
	Sort  int    `gorm:"default:0" json:"sort"`
}

type TicketPriority struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	Name   string `gorm:"size:50;uniqueIndex;not null" json:"name"`
	Weight int    `gorm:"default:0" json:"weight"` // higher is more urgent
}

// HelpTopic categorizes incoming tickets and optionally hints at a target
// department.
type HelpTopic struct {
	ID           uint        `gorm:"primaryKey" json:"id"`
	Topic        string      `gorm:"size:200;uniqueIndex;not null" json:"topic"`
	DepartmentID *string     `gorm:"type:uuid" json:"department_id"`
	Department   *Department `gorm:"foreignKey:DepartmentID;constraint:OnDelete:RESTRICT" json:"department,omitempty"`
	Active       bool        `gorm:"not null;default:true" json:"active"`
	CreatedAt    time.Time   `json:"created_at"`
}

// SLAPlan defines the grace period granted for resolving a ticket.
type SLAPlan struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	Name             string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	GracePeriodHours int       `gorm:"not null" json:"grace_period_hours"`
	Active           bool      `gorm:"not null;default:true" json:"active"`
	CreatedAt        time.Time `json:"created_at"`
}

// CustomField declares an extra attribute tickets may carry a value for.
type CustomField struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:100;uniqueIndex;not null" json:"name"`
	FieldType string    `gorm:"size:20;not null" json:"field_type"` // text, number, date, bool
	CreatedAt time.Time `json:"created_at"`
}

func (TicketStatus) TableName() string   { return "ticket_statuses" }
func (TicketPriority) TableName() string { return "ticket_priorities" }
func (HelpTopic) TableName() string      { return "help_topics" }
func (SLAPlan) TableName() string        { return "sla_plans" }
func (CustomField) TableName() string    { return "custom_fields" }
