package services

import (
	"time"

	"github.com/softagon/gedhub/internal/models"
	"gorm.io/gorm"
)

type NotificationService struct {
	db *gorm.DB
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{db: db}
}

// Notify stores a message for a user.
func (s *NotificationService) Notify(userID, message string) (*models.Notification, error) {
	n := models.Notification{
		UserID:  userID,
		Message: message,
	}
	if err := s.db.Create(&n).Error; err != nil {
		return nil, err
	}
	return &n, nil
}

// MarkRead flags a notification as read.
func (s *NotificationService) MarkRead(id string) error {
	return s.db.Model(&models.Notification{}).Where("id = ?", id).Update("read", true).Error
}

// ListForUser returns a user's notifications, newest first. With unreadOnly
// set, read ones are filtered out.
func (s *NotificationService) ListForUser(userID string, unreadOnly bool) ([]models.Notification, error) {
	query := s.db.Where("user_id = ?", userID)
	if unreadOnly {
		query = query.Where("read = ?", false)
	}

	var items []models.Notification
	if err := query.Order("created_at DESC").Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

// PruneRead deletes read notifications older than retentionDays and returns
// how many rows went away. Unread notifications are never pruned.
func (s *NotificationService) PruneRead(retentionDays int) (int64, error) {
	if retentionDays <= 0 {
		return 0, nil
	}
	cutoff := time.Now().AddDate(0, 0, -retentionDays)
	result := s.db.Where("read = ? AND created_at < ?", true, cutoff).Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}
