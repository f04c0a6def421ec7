package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Ticket is a helpdesk request routed to a department.
type Ticket struct {
	ID             string          `gorm:"type:uuid;primaryKey" json:"id"`
	Subject        string          `gorm:"size:300;not null" json:"subject"`
	Description    string          `gorm:"type:text" json:"description"`
	StatusID       uint            `gorm:"not null;index" json:"status_id"`
	Status         *TicketStatus   `gorm:"foreignKey:StatusID;constraint:OnDelete:RESTRICT" json:"status,omitempty"`
	PriorityID     uint            `gorm:"not null;index" json:"priority_id"`
	Priority       *TicketPriority `gorm:"foreignKey:PriorityID;constraint:OnDelete:RESTRICT" json:"priority,omitempty"`
	CreatedByID    string          `gorm:"type:uuid;not null;index" json:"created_by_id"`
	CreatedBy      *User           `gorm:"foreignKey:CreatedByID;constraint:OnDelete:RESTRICT" json:"created_by,omitempty"`
	AssignedToID   *string         `gorm:"type:uuid;index" json:"assigned_to_id"`
	AssignedTo     *User           `gorm:"foreignKey:AssignedToID;constraint:OnDelete:RESTRICT" json:"assigned_to,omitempty"`
	DepartmentID   string          `gorm:"type:uuid;not null;index" json:"department_id"`
	Department     *Department     `gorm:"foreignKey:DepartmentID;constraint:OnDelete:RESTRICT" json:"department,omitempty"`
	HelpTopicID    *uint           `gorm:"index" json:"help_topic_id"`
	HelpTopic      *HelpTopic      `gorm:"foreignKey:HelpTopicID;constraint:OnDelete:RESTRICT" json:"help_topic,omitempty"`
	SLAPlanID      *uint           `json:"sla_plan_id"`
	SLAPlan        *SLAPlan        `gorm:"foreignKey:SLAPlanID;constraint:OnDelete:RESTRICT" json:"sla_plan,omitempty"`
	DueDate        *time.Time      `gorm:"index" json:"due_date"`
	ClosedAt       *time.Time      `json:"closed_at"`
	LastResponseAt *time.Time      `json:"last_response_at"`
	CreatedAt      time.Time       `gorm:"index" json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`

	Threads       []TicketThread       `gorm:"foreignKey:TicketID" json:"threads,omitempty"`
	Collaborators []TicketCollaborator `gorm:"foreignKey:TicketID" json:"collaborators,omitempty"`
	CustomFields  []TicketCustomField  `gorm:"foreignKey:TicketID" json:"custom_fields,omitempty"`
}

func (t *Ticket) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TicketThread is one message in a ticket's conversation history.
type TicketThread struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	TicketID  string    `gorm:"type:uuid;not null;index" json:"ticket_id"`
	Ticket    *Ticket   `gorm:"foreignKey:TicketID;constraint:OnDelete:RESTRICT" json:"ticket,omitempty"`
	UserID    string    `gorm:"type:uuid;not null" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"user,omitempty"`
	Body      string    `gorm:"type:text;not null" json:"body"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Attachments []TicketAttachment `gorm:"foreignKey:ThreadID" json:"attachments,omitempty"`
}

func (t *TicketThread) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// TicketAttachment is a file attached to a thread entry (and through it to
// the ticket).
type TicketAttachment struct {
	ID        string        `gorm:"type:uuid;primaryKey" json:"id"`
	ThreadID  string        `gorm:"type:uuid;not null;index" json:"thread_id"`
	Thread    *TicketThread `gorm:"foreignKey:ThreadID;constraint:OnDelete:RESTRICT" json:"thread,omitempty"`
	FileName  string        `gorm:"size:255;not null" json:"file_name"`
	FilePath  string        `gorm:"size:500;not null" json:"file_path"`
	MimeType  string        `gorm:"size:100" json:"mime_type"`
	Size      int64         `json:"size"`
	CreatedAt time.Time     `json:"created_at"`
}

func (a *TicketAttachment) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

// TicketCollaborator joins extra users onto a ticket.
type TicketCollaborator struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	TicketID  string    `gorm:"type:uuid;not null;uniqueIndex:idx_ticket_collaborator" json:"ticket_id"`
	Ticket    *Ticket   `gorm:"foreignKey:TicketID;constraint:OnDelete:RESTRICT" json:"ticket,omitempty"`
	UserID    string    `gorm:"type:uuid;not null;uniqueIndex:idx_ticket_collaborator" json:"user_id"`
	User      *User     `gorm:"foreignKey:UserID;constraint:OnDelete:RESTRICT" json:"user,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

func (c *TicketCollaborator) BeforeCreate(_ *gorm.DB) error {
	if c.ID == "" {
		c.ID = uuid.NewString()
	}
	return nil
}

// TicketCustomField carries the value a ticket holds for a custom field.
type TicketCustomField struct {
	ID            string       `gorm:"type:uuid;primaryKey" json:"id"`
	TicketID      string       `gorm:"type:uuid;not null;uniqueIndex:idx_ticket_custom_field" json:"ticket_id"`
	Ticket        *Ticket      `gorm:"foreignKey:TicketID;constraint:OnDelete:RESTRICT" json:"ticket,omitempty"`
	CustomFieldID uint         `gorm:"not null;uniqueIndex:idx_ticket_custom_field" json:"custom_field_id"`
	CustomField   *CustomField `gorm:"foreignKey:CustomFieldID;constraint:OnDelete:RESTRICT" json:"custom_field,omitempty"`
	Value         string       `gorm:"type:text" json:"value"`
	CreatedAt     time.Time    `json:"created_at"`
}

func (f *TicketCustomField) BeforeCreate(_ *gorm.DB) error {
	if f.ID == "" {
		f.ID = uuid.NewString()
	}
	return nil
}

func (Ticket) TableName() string             { return "tickets" }
func (TicketThread) TableName() string       { return "ticket_threads" }
func (TicketAttachment) TableName() string   { return "ticket_attachments" }
func (TicketCollaborator) TableName() string { return "ticket_collaborators" }
func (TicketCustomField) TableName() string  { return "ticket_custom_fields" }
