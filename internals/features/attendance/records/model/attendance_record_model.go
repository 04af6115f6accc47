package model

import (
	"time"

	"github.com/google/uuid"
)

/*
Status hadir (string enum di DB, selaras dengan payload UI):
present | absent | late | leave
*/
type AttendanceStatus string

const (
	AttendancePresent AttendanceStatus = "present"
	AttendanceAbsent  AttendanceStatus = "absent"
	AttendanceLate    AttendanceStatus = "late"
	AttendanceLeave   AttendanceStatus = "leave"
)

func (s AttendanceStatus) Valid() bool {
	switch s {
	case AttendancePresent, AttendanceAbsent, AttendanceLate, AttendanceLeave:
		return true
	}
	return false
}

// Jenis subject yang dicatat kehadirannya.
type SubjectKind string

const (
	SubjectStaff   SubjectKind = "staff"
	SubjectStudent SubjectKind = "student"
)

func (k SubjectKind) Valid() bool {
	return k == SubjectStaff || k == SubjectStudent
}

// Sumber status: ditandai manual oleh admin/guru, atau diturunkan dari check-in.
type RecordSource string

const (
	SourceManual  RecordSource = "manual"
	SourceCheckin RecordSource = "checkin"
)

// Satu fakta kehadiran per (school, subject, kind, date).
// Tulisan berikutnya untuk key yang sama MENGGANTI nilai lama (upsert, bukan append).
type AttendanceRecordModel struct {
	AttendanceRecordID uuid.UUID `gorm:"column:attendance_record_id;type:uuid;primaryKey" json:"attendance_record_id"`

	AttendanceRecordSchoolID    uuid.UUID   `gorm:"column:attendance_record_school_id;type:uuid;not null;uniqueIndex:uq_attendance_record_key,priority:1;index:idx_attendance_record_school_date,priority:1" json:"attendance_record_school_id"`
	AttendanceRecordSubjectID   uuid.UUID   `gorm:"column:attendance_record_subject_id;type:uuid;not null;uniqueIndex:uq_attendance_record_key,priority:2;index:idx_attendance_record_subject,priority:1" json:"attendance_record_subject_id"`
	AttendanceRecordSubjectKind SubjectKind `gorm:"column:attendance_record_subject_kind;type:varchar(10);not null;uniqueIndex:uq_attendance_record_key,priority:3" json:"attendance_record_subject_kind"`
	AttendanceRecordDate        time.Time   `gorm:"column:attendance_record_date;type:date;not null;uniqueIndex:uq_attendance_record_key,priority:4;index:idx_attendance_record_school_date,priority:2;index:idx_attendance_record_subject,priority:2" json:"attendance_record_date"`

	AttendanceRecordStatus AttendanceStatus `gorm:"column:attendance_record_status;type:varchar(10);not null" json:"attendance_record_status"`

	// Jam check-in "HH:MM" (nullable); dipertahankan supaya recompute eksplisit bisa
	// menurunkan ulang status dari aturan terbaru.
	AttendanceRecordCheckInTime *string      `gorm:"column:attendance_record_check_in_time;type:varchar(5)" json:"attendance_record_check_in_time,omitempty"`
	AttendanceRecordSource      RecordSource `gorm:"column:attendance_record_source;type:varchar(10);not null;default:manual" json:"attendance_record_source"`

	// Context: wajib untuk student (class), informasional untuk staff (department).
	AttendanceRecordClassID    *uuid.UUID `gorm:"column:attendance_record_class_id;type:uuid;index:idx_attendance_record_class" json:"attendance_record_class_id,omitempty"`
	AttendanceRecordSectionID  *uuid.UUID `gorm:"column:attendance_record_section_id;type:uuid" json:"attendance_record_section_id,omitempty"`
	AttendanceRecordDepartment *string    `gorm:"column:attendance_record_department;type:varchar(100)" json:"attendance_record_department,omitempty"`

	AttendanceRecordRecordedBy uuid.UUID `gorm:"column:attendance_record_recorded_by;type:uuid;not null" json:"attendance_record_recorded_by"`
	AttendanceRecordRecordedAt time.Time `gorm:"column:attendance_record_recorded_at;not null" json:"attendance_record_recorded_at"`
}

func (AttendanceRecordModel) TableName() string {
	return "attendance_records"
}
