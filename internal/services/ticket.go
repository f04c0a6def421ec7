package services

import (
	"errors"
	"time"

	"github.com/softagon/gedhub/internal/models"
	"gorm.io/gorm"
)

type TicketService struct {
	db *gorm.DB
}

func NewTicketService(db *gorm.DB) *TicketService {
	return &TicketService{db: db}
}

type TicketListRequest struct {
	Page         int    `form:"page" binding:"min=1"`
	PageSize     int    `form:"page_size" binding:"min=1,max=100"`
	StatusID     uint   `form:"status_id"`
	PriorityID   uint   `form:"priority_id"`
	DepartmentID string `form:"department_id"`
	AssignedToID string `form:"assigned_to_id"`
	OpenOnly     bool   `form:"open_only"`
}

type TicketListResponse struct {
	Total    int64           `json:"total"`
	Page     int             `json:"page"`
	PageSize int             `json:"page_size"`
	Items    []models.Ticket `json:"items"`
}

type CreateTicketRequest struct {
	Subject      string     `json:"subject" binding:"required"`
	Description  string     `json:"description"`
	StatusID     uint       `json:"status_id"`
	PriorityID   uint       `json:"priority_id" binding:"required"`
	CreatedByID  string     `json:"created_by_id" binding:"required"`
	DepartmentID string     `json:"department_id" binding:"required"`
	HelpTopicID  *uint      `json:"help_topic_id"`
	SLAPlanID    *uint      `json:"sla_plan_id"`
	DueDate      *time.Time `json:"due_date"`
}

// Create opens a ticket. A zero StatusID falls back to the seeded "Open"
// status. When an SLA plan is attached and no explicit due date given, the
// due date becomes now plus the plan's grace period.
func (s *TicketService) Create(req *CreateTicketRequest) (*models.Ticket, error) {
	var ticket models.Ticket
	err := s.db.Transaction(func(tx *gorm.DB) error {
		statusID := req.StatusID
		if statusID == 0 {
			var open models.TicketStatus
			if err := tx.First(&open, "name = ?", "Open").Error; err != nil {
				return err
			}
			statusID = open.ID
		}

		dueDate := req.DueDate
		if dueDate == nil && req.SLAPlanID != nil {
			var plan models.SLAPlan
			if err := tx.First(&plan, *req.SLAPlanID).Error; err != nil {
				return err
			}
			due := time.Now().Add(time.Duration(plan.GracePeriodHours) * time.Hour)
			dueDate = &due
		}

		ticket = models.Ticket{
			Subject:      req.Subject,
			Description:  req.Description,
			StatusID:     statusID,
			PriorityID:   req.PriorityID,
			CreatedByID:  req.CreatedByID,
			DepartmentID: req.DepartmentID,
			HelpTopicID:  req.HelpTopicID,
			SLAPlanID:    req.SLAPlanID,
			DueDate:      dueDate,
		}
		return tx.Create(&ticket).Error
	})
	if err != nil {
		return nil, err
	}
	return &ticket, nil
}

// GetByID returns a ticket with status and priority preloaded.
func (s *TicketService) GetByID(id string) (*models.Ticket, error) {
	var ticket models.Ticket
	if err := s.db.Preload("Status").Preload("Priority").First(&ticket, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &ticket, nil
}

// Assign hands a ticket to a user.
func (s *TicketService) Assign(ticketID, userID string) error {
	return s.db.Model(&models.Ticket{}).Where("id = ?", ticketID).
		Update("assigned_to_id", userID).Error
}

// Close moves a ticket into a closed-state status and stamps ClosedAt. A
// status whose state is not "closed" is rejected.
func (s *TicketService) Close(ticketID string, statusID uint) error {
	return s.db.Transaction(func(tx *gorm.DB) error {
		var status models.TicketStatus
		if err := tx.First(&status, statusID).Error; err != nil {
			return err
		}
		if status.State != "closed" {
			return ErrNotCloseStatus
		}

		now := time.Now()
		return tx.Model(&models.Ticket{}).Where("id = ?", ticketID).
			Updates(map[string]interface{}{
				"status_id": statusID,
				"closed_at": now,
			}).Error
	})
}

// Reply appends a thread entry (and its attachments) and refreshes the
// ticket's LastResponseAt in the same transaction.
func (s *TicketService) Reply(ticketID, userID, body string, attachments []models.TicketAttachment) (*models.TicketThread, error) {
	var thread models.TicketThread
	err := s.db.Transaction(func(tx *gorm.DB) error {
		thread = models.TicketThread{
			TicketID: ticketID,
			UserID:   userID,
			Body:     body,
		}
		if err := tx.Create(&thread).Error; err != nil {
			return err
		}

		for i := range attachments {
			attachments[i].ThreadID = thread.ID
			if err := tx.Create(&attachments[i]).Error; err != nil {
				return err
			}
		}

		return tx.Model(&models.Ticket{}).Where("id = ?", ticketID).
			Update("last_response_at", thread.CreatedAt).Error
	})
	if err != nil {
		return nil, err
	}
	thread.Attachments = attachments
	return &thread, nil
}

// ListThreads returns a ticket's conversation in order, attachments included.
func (s *TicketService) ListThreads(ticketID string) ([]models.TicketThread, error) {
	var threads []models.TicketThread
	err := s.db.Preload("Attachments").
		Where("ticket_id = ?", ticketID).
		Order("created_at ASC").
		Find(&threads).Error
	return threads, err
}

// AddCollaborator joins a user onto a ticket. The pair is unique.
func (s *TicketService) AddCollaborator(ticketID, userID string) (*models.TicketCollaborator, error) {
	collab := models.TicketCollaborator{
		TicketID: ticketID,
		UserID:   userID,
	}
	if err := s.db.Create(&collab).Error; err != nil {
		return nil, err
	}
	return &collab, nil
}

// RemoveCollaborator drops a user from a ticket.
func (s *TicketService) RemoveCollaborator(ticketID, userID string) error {
	return s.db.Where("ticket_id = ? AND user_id = ?", ticketID, userID).
		Delete(&models.TicketCollaborator{}).Error
}

// ListCollaborators returns a ticket's collaborators with users preloaded.
func (s *TicketService) ListCollaborators(ticketID string) ([]models.TicketCollaborator, error) {
	var collabs []models.TicketCollaborator
	err := s.db.Preload("User").Where("ticket_id = ?", ticketID).Find(&collabs).Error
	return collabs, err
}

// SetCustomField upserts the value a ticket carries for a custom field.
func (s *TicketService) SetCustomField(ticketID string, fieldID uint, value string) (*models.TicketCustomField, error) {
	var tcf models.TicketCustomField
	err := s.db.Transaction(func(tx *gorm.DB) error {
		err := tx.Where("ticket_id = ? AND custom_field_id = ?", ticketID, fieldID).First(&tcf).Error
		switch {
		case err == nil:
			tcf.Value = value
			return tx.Save(&tcf).Error
		case errors.Is(err, gorm.ErrRecordNotFound):
			tcf = models.TicketCustomField{
				TicketID:      ticketID,
				CustomFieldID: fieldID,
				Value:         value,
			}
			return tx.Create(&tcf).Error
		default:
			return err
		}
	})
	if err != nil {
		return nil, err
	}
	return &tcf, nil
}

// ListCustomFields returns a ticket's custom field values with definitions.
func (s *TicketService) ListCustomFields(ticketID string) ([]models.TicketCustomField, error) {
	var fields []models.TicketCustomField
	err := s.db.Preload("CustomField").Where("ticket_id = ?", ticketID).Find(&fields).Error
	return fields, err
}

// List returns paginated tickets
func (s *TicketService) List(req *TicketListRequest) (*TicketListResponse, error) {
	if req.Page == 0 {
		req.Page = 1
	}
	if req.PageSize == 0 {
		req.PageSize = 20
	}

	var tickets []models.Ticket
	var total int64

	query := s.db.Model(&models.Ticket{})

	if req.StatusID != 0 {
		query = query.Where("status_id = ?", req.StatusID)
	}
	if req.PriorityID != 0 {
		query = query.Where("priority_id = ?", req.PriorityID)
	}
	if req.DepartmentID != "" {
		query = query.Where("department_id = ?", req.DepartmentID)
	}
	if req.AssignedToID != "" {
		query = query.Where("assigned_to_id = ?", req.AssignedToID)
	}
	if req.OpenOnly {
		query = query.Where("closed_at IS NULL")
	}

	query.Count(&total)

	offset := (req.Page - 1) * req.PageSize
	if err := query.Preload("Status").Preload("Priority").
		Offset(offset).Limit(req.PageSize).
		Order("created_at DESC").
		Find(&tickets).Error; err != nil {
		return nil, err
	}

	return &TicketListResponse{
		Total:    total,
		Page:     req.Page,
		PageSize: req.PageSize,
		Items:    tickets,
	}, nil
}
