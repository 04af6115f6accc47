package model

import (
	"time"

	"github.com/google/uuid"
)

// Kebijakan kehadiran: singleton per sekolah (tenant).
// Dibaca oleh setiap resolusi status & agregasi; diubah hanya lewat operasi
// update eksplisit yang memvalidasi semua field sebelum commit.
type AttendanceRuleModel struct {
	AttendanceRuleID       uuid.UUID `gorm:"column:attendance_rule_id;type:uuid;primaryKey" json:"attendance_rule_id"`
	AttendanceRuleSchoolID uuid.UUID `gorm:"column:attendance_rule_school_id;type:uuid;not null;uniqueIndex:uq_attendance_rule_school" json:"attendance_rule_school_id"`

	AttendanceRuleLateThresholdMinutes         int     `gorm:"column:attendance_rule_late_threshold_minutes;not null;default:15" json:"attendance_rule_late_threshold_minutes"`
	AttendanceRuleMinimumAttendancePercentage  float64 `gorm:"column:attendance_rule_minimum_attendance_percentage;not null;default:75" json:"attendance_rule_minimum_attendance_percentage"`

	// Jam sekolah "HH:MM"; start < end dijaga oleh validasi update.
	AttendanceRuleSchoolStartTime string `gorm:"column:attendance_rule_school_start_time;type:varchar(5);not null;default:'07:00'" json:"attendance_rule_school_start_time"`
	AttendanceRuleSchoolEndTime   string `gorm:"column:attendance_rule_school_end_time;type:varchar(5);not null;default:'15:00'" json:"attendance_rule_school_end_time"`

	AttendanceRuleNotifyAfterAbsences int  `gorm:"column:attendance_rule_notify_after_absences;not null;default:3" json:"attendance_rule_notify_after_absences"`
	AttendanceRuleAutoNotifyParents   bool `gorm:"column:attendance_rule_auto_notify_parents;not null;default:true" json:"attendance_rule_auto_notify_parents"`
	AttendanceRuleEnablePeriodWise    bool `gorm:"column:attendance_rule_enable_period_wise;not null;default:false" json:"attendance_rule_enable_period_wise"`

	AttendanceRuleCreatedAt time.Time  `gorm:"column:attendance_rule_created_at;autoCreateTime" json:"attendance_rule_created_at"`
	AttendanceRuleUpdatedAt *time.Time `gorm:"column:attendance_rule_updated_at;autoUpdateTime" json:"attendance_rule_updated_at,omitempty"`
}

func (AttendanceRuleModel) TableName() string {
	return "attendance_rules"
}

// DefaultAttendanceRule: nilai provisioning awal untuk sekolah baru.
func DefaultAttendanceRule(schoolID uuid.UUID) AttendanceRuleModel {
	return AttendanceRuleModel{
		AttendanceRuleID:                          uuid.New(),
		AttendanceRuleSchoolID:                    schoolID,
		AttendanceRuleLateThresholdMinutes:        15,
		AttendanceRuleMinimumAttendancePercentage: 75,
		AttendanceRuleSchoolStartTime:             "07:00",
		AttendanceRuleSchoolEndTime:               "15:00",
		AttendanceRuleNotifyAfterAbsences:         3,
		AttendanceRuleAutoNotifyParents:           true,
		AttendanceRuleEnablePeriodWise:            false,
	}
}
