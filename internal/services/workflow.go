package services

import (
	"time"

	"github.com/softagon/gedhub/internal/models"
	"gorm.io/gorm"
)

type WorkflowService struct {
	db *gorm.DB
}

func NewWorkflowService(db *gorm.DB) *WorkflowService {
	return &WorkflowService{db: db}
}

type CreateWorkflowRequest struct {
	Name   string `json:"name" binding:"required"`
	Type   string `json:"type" binding:"omitempty,oneof=sequential parallel"`
	Status string `json:"status" binding:"required"`
}

// CreateWorkflow inserts a workflow. Status has no default anywhere, so an
// empty one is rejected before reaching the database.
func (s *WorkflowService) CreateWorkflow(req *CreateWorkflowRequest) (*models.Workflow, error) {
	if req.Status == "" {
		return nil, ErrStatusRequired
	}
	if req.Type == "" {
		req.Type = "sequential"
	}

	wf := models.Workflow{
		Name:   req.Name,
		Type:   req.Type,
		Status: req.Status,
	}
	if err := s.db.Create(&wf).Error; err != nil {
		return nil, err
	}
	return &wf, nil
}

// GetWorkflow returns a workflow by ID
func (s *WorkflowService) GetWorkflow(id string) (*models.Workflow, error) {
	var wf models.Workflow
	if err := s.db.First(&wf, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &wf, nil
}

// UpdateStatus moves a workflow to a new status and records the change in the
// audit log.
func (s *WorkflowService) UpdateStatus(id, status, actorID string) error {
	if status == "" {
		return ErrStatusRequired
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Workflow{}).Where("id = ?", id).Update("status", status).Error; err != nil {
			return err
		}
		entry := models.AuditLog{
			WorkflowID: &id,
			Action:     "workflow.status:" + status,
			ActorID:    actorID,
		}
		return tx.Create(&entry).Error
	})
}

type CreateTaskRequest struct {
	WorkflowID   string     `json:"workflow_id" binding:"required"`
	Title        string     `json:"title"`
	Status       string     `json:"status" binding:"required"`
	AssignedToID *string    `json:"assigned_to_id"`
	DocumentID   *string    `json:"document_id"`
	DueDate      *time.Time `json:"due_date"`
}

// CreateTask inserts a task under a workflow.
func (s *WorkflowService) CreateTask(req *CreateTaskRequest) (*models.Task, error) {
	if req.Status == "" {
		return nil, ErrStatusRequired
	}

	task := models.Task{
		WorkflowID:   req.WorkflowID,
		Title:        req.Title,
		Status:       req.Status,
		AssignedToID: req.AssignedToID,
		DocumentID:   req.DocumentID,
		DueDate:      req.DueDate,
	}
	if err := s.db.Create(&task).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// GetTask returns a task by ID
func (s *WorkflowService) GetTask(id string) (*models.Task, error) {
	var task models.Task
	if err := s.db.First(&task, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &task, nil
}

// AssignTask hands a task to a user and audits the assignment.
func (s *WorkflowService) AssignTask(taskID, userID, actorID string) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).Where("id = ?", taskID).Update("assigned_to_id", userID).Error; err != nil {
			return err
		}
		entry := models.AuditLog{
			TaskID:  &taskID,
			Action:  "task.assign:" + userID,
			ActorID: actorID,
		}
		return tx.Create(&entry).Error
	})
}

// UpdateTaskStatus moves a task to a new status and audits the change.
func (s *WorkflowService) UpdateTaskStatus(taskID, status, actorID string) error {
	if status == "" {
		return ErrStatusRequired
	}
	return s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Task{}).Where("id = ?", taskID).Update("status", status).Error; err != nil {
			return err
		}
		entry := models.AuditLog{
			TaskID:  &taskID,
			Action:  "task.status:" + status,
			ActorID: actorID,
		}
		return tx.Create(&entry).Error
	})
}

// ListTasks returns the tasks of a workflow in creation order.
func (s *WorkflowService) ListTasks(workflowID string) ([]models.Task, error) {
	var tasks []models.Task
	err := s.db.Where("workflow_id = ?", workflowID).Order("created_at ASC").Find(&tasks).Error
	return tasks, err
}

// Append writes a free-form audit entry. The log is append-only: no update or
// delete exists on this service.
func (s *WorkflowService) Append(action, actorID string, workflowID, taskID *string) (*models.AuditLog, error) {
	entry := models.AuditLog{
		WorkflowID: workflowID,
		TaskID:     taskID,
		Action:     action,
		ActorID:    actorID,
	}
	if err := s.db.Create(&entry).Error; err != nil {
		return nil, err
	}
	return &entry, nil
}

type AuditListRequest struct {
	WorkflowID string `form:"workflow_id"`
	TaskID     string `form:"task_id"`
	ActorID    string `form:"actor_id"`
}

// ListAudit returns audit entries matching the filter, oldest first.
func (s *WorkflowService) ListAudit(req *AuditListRequest) ([]models.AuditLog, error) {
	query := s.db.Model(&models.AuditLog{})

	if req.WorkflowID != "" {
		query = query.Where("workflow_id = ?", req.WorkflowID)
	}
	if req.TaskID != "" {
		query = query.Where("task_id = ?", req.TaskID)
	}
	if req.ActorID != "" {
		query = query.Where("actor_id = ?", req.ActorID)
	}

	var entries []models.AuditLog
	err := query.Order("created_at ASC").Find(&entries).Error
	return entries, err
}
