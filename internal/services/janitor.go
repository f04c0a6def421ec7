package services

import (
	"github.com/robfig/cron/v3"
	"github.com/softagon/gedhub/pkg/logger"
	"gorm.io/gorm"
)

// StartJanitor schedules the daily retention sweep of read notifications and
// runs one sweep immediately. The returned scheduler should be stopped on
// shutdown.
func StartJanitor(db *gorm.DB, retentionDays int) *cron.Cron {
	service := NewNotificationService(db)

	runSweep(service, retentionDays)

	scheduler := cron.New()
	_, err := scheduler.AddFunc("@daily", func() {
		runSweep(service, retentionDays)
	})
	if err != nil {
		logger.Errorf("janitor: failed to schedule sweep: %v", err)
		return scheduler
	}

	scheduler.Start()
	logger.Infof("janitor: notification sweep scheduled (retention %d days)", retentionDays)
	return scheduler
}

func runSweep(service *NotificationService, retentionDays int) {
	if retentionDays <= 0 {
		logger.Debug().Msg("janitor: pruning disabled (retention <= 0)")
		return
	}

	deleted, err := service.PruneRead(retentionDays)
	if err != nil {
		logger.Errorf("janitor: failed to prune notifications: %v", err)
		return
	}
	if deleted > 0 {
		logger.Infof("janitor: pruned %d read notifications older than %d days", deleted, retentionDays)
	}
}
