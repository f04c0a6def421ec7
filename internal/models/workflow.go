package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Workflow is a BPM process instance grouping tasks. Status carries no
// default: callers must state it explicitly on create.
type Workflow struct {
	ID        string    `gorm:"type:uuid;primaryKey" json:"id"`
	Name      string    `gorm:"size:200;not null" json:"name"`
	Type      string    `gorm:"size:50;not null;default:sequential" json:"type"` // sequential, parallel
	Status    string    `gorm:"size:50;not null" json:"status"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Tasks     []Task     `gorm:"foreignKey:WorkflowID" json:"tasks,omitempty"`
	AuditLogs []AuditLog `gorm:"foreignKey:WorkflowID" json:"audit_logs,omitempty"`
}

func (w *Workflow) BeforeCreate(_ *gorm.DB) error {
	if w.ID == "" {
		w.ID = uuid.NewString()
	}
	return nil
}

// Task is a unit of work inside a workflow, optionally bound to a user and a
// document.
type Task struct {
	ID           string     `gorm:"type:uuid;primaryKey" json:"id"`
	WorkflowID   string     `gorm:"type:uuid;not null;index" json:"workflow_id"`
	Workflow     *Workflow  `gorm:"foreignKey:WorkflowID;constraint:OnDelete:RESTRICT" json:"workflow,omitempty"`
	AssignedToID *string    `gorm:"type:uuid;index" json:"assigned_to_id"`
	AssignedTo   *User      `gorm:"foreignKey:AssignedToID;constraint:OnDelete:RESTRICT" json:"assigned_to,omitempty"`
	DocumentID   *string    `gorm:"type:uuid;index" json:"document_id"`
	Document     *Document  `gorm:"foreignKey:DocumentID;constraint:OnDelete:RESTRICT" json:"document,omitempty"`
	Title        string     `gorm:"size:300" json:"title"`
	Status       string     `gorm:"size:50;not null" json:"status"` // pending, in_progress, completed, cancelled
	DueDate      *time.Time `json:"due_date"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	AuditLogs []AuditLog `gorm:"foreignKey:TaskID" json:"audit_logs,omitempty"`
}

func (t *Task) BeforeCreate(_ *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}

// AuditLog records who did what on a workflow or task. Rows are append-only;
// the service exposes no update or delete.
type AuditLog struct {
	ID         string    `gorm:"type:uuid;primaryKey" json:"id"`
	WorkflowID *string   `gorm:"type:uuid;index" json:"workflow_id"`
	Workflow   *Workflow `gorm:"foreignKey:WorkflowID;constraint:OnDelete:RESTRICT" json:"workflow,omitempty"`
	TaskID     *string   `gorm:"type:uuid;index" json:"task_id"`
	Task       *Task     `gorm:"foreignKey:TaskID;constraint:OnDelete:RESTRICT" json:"task,omitempty"`
	Action     string    `gorm:"size:200;not null" json:"action"`
	ActorID    string    `gorm:"type:uuid;not null" json:"actor_id"`
	Actor      *User     `gorm:"foreignKey:ActorID;constraint:OnDelete:RESTRICT" json:"actor,omitempty"`
	CreatedAt  time.Time `gorm:"index" json:"created_at"`
}

func (a *AuditLog) BeforeCreate(_ *gorm.DB) error {
	if a.ID == "" {
		a.ID = uuid.NewString()
	}
	return nil
}

func (Workflow) TableName() string { return "workflows" }
func (Task) TableName() string     { return "tasks" }
func (AuditLog) TableName() string { return "audit_logs" }
