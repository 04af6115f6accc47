package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"gorm.io/datatypes"
)

// State dedup per subject: panjang streak terakhir yang sudah dinotifikasi.
// Direset ke 0 saat streak putus, supaya streak baru bisa memicu alert lagi.
type AttendanceAlertStateModel struct {
	AttendanceAlertStateID        uuid.UUID `gorm:"column:attendance_alert_state_id;type:uuid;primaryKey" json:"attendance_alert_state_id"`
	AttendanceAlertStateSchoolID  uuid.UUID `gorm:"column:attendance_alert_state_school_id;type:uuid;not null;uniqueIndex:uq_alert_state_subject,priority:1" json:"attendance_alert_state_school_id"`
	AttendanceAlertStateSubjectID uuid.UUID `gorm:"column:attendance_alert_state_subject_id;type:uuid;not null;uniqueIndex:uq_alert_state_subject,priority:2" json:"attendance_alert_state_subject_id"`

	AttendanceAlertStateLastNotifiedStreak int        `gorm:"column:attendance_alert_state_last_notified_streak;not null;default:0" json:"attendance_alert_state_last_notified_streak"`
	AttendanceAlertStateUpdatedAt          *time.Time `gorm:"column:attendance_alert_state_updated_at;autoUpdateTime" json:"attendance_alert_state_updated_at,omitempty"`
}

func (AttendanceAlertStateModel) TableName() string {
	return "attendance_alert_states"
}

// Outbox event notifikasi: dikirim fire-and-forget ke kolaborator pesan
// eksternal; baris yang belum terkirim diulang oleh worker (at-least-once).
type AttendanceAlertModel struct {
	AttendanceAlertID        uuid.UUID `gorm:"column:attendance_alert_id;type:uuid;primaryKey" json:"attendance_alert_id"`
	AttendanceAlertSchoolID  uuid.UUID `gorm:"column:attendance_alert_school_id;type:uuid;not null;index:idx_alerts_school" json:"attendance_alert_school_id"`
	AttendanceAlertSubjectID uuid.UUID `gorm:"column:attendance_alert_subject_id;type:uuid;not null;index:idx_alerts_subject" json:"attendance_alert_subject_id"`

	AttendanceAlertTitle   string         `gorm:"column:attendance_alert_title;type:varchar(255);not null" json:"attendance_alert_title"`
	AttendanceAlertStreak  int            `gorm:"column:attendance_alert_streak;not null" json:"attendance_alert_streak"`
	AttendanceAlertPayload datatypes.JSON `gorm:"column:attendance_alert_payload;type:jsonb" json:"attendance_alert_payload"`
	AttendanceAlertTags    pq.StringArray `gorm:"column:attendance_alert_tags;type:text[]" json:"attendance_alert_tags"`

	AttendanceAlertAttempts  int        `gorm:"column:attendance_alert_attempts;not null;default:0" json:"attendance_alert_attempts"`
	AttendanceAlertSentAt    *time.Time `gorm:"column:attendance_alert_sent_at;index:idx_alerts_unsent" json:"attendance_alert_sent_at,omitempty"`
	AttendanceAlertCreatedAt time.Time  `gorm:"column:attendance_alert_created_at;autoCreateTime" json:"attendance_alert_created_at"`
}

func (AttendanceAlertModel) TableName() string {
	return "attendance_alerts"
}
