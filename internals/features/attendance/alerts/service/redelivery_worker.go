package service

import (
	"context"
	"log"
	"time"

	"gorm.io/gorm"

	alertModel "schoolku_backend/internals/features/attendance/alerts/model"
	"schoolku_backend/internals/configs"
)

const (
	redeliveryInterval = 1 * time.Minute
	maxSendAttempts    = 5
)

// StartAlertRedeliveryWorker: loop background yang mengulang pengiriman
// alert outbox yang belum terkirim (at-least-once ke kolaborator pesan).
func StartAlertRedeliveryWorker(db *gorm.DB) {
	svc := NewAlertService(db, NewWebhookSender(configs.NotifyWebhookURL))

	go func() {
		ticker := time.NewTicker(redeliveryInterval)
		defer ticker.Stop()
		for range ticker.C {
			svc.redeliverPending()
		}
	}()
	log.Println("✅ Alert redelivery worker aktif.")
}

func (s *AlertService) redeliverPending() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	var pending []alertModel.AttendanceAlertModel
	err := s.DB.WithContext(ctx).
		Where("attendance_alert_sent_at IS NULL").
		Where("attendance_alert_attempts < ?", maxSendAttempts).
		Order("attendance_alert_created_at ASC").
		Limit(50).
		Find(&pending).Error
	if err != nil {
		log.Printf("[ERROR] scan alert pending: %v", err)
		return
	}

	for i := range pending {
		s.trySend(ctx, &pending[i])
	}
}
