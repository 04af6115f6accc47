package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StudentModel struct {
	StudentID        uuid.UUID      `gorm:"column:student_id;type:uuid;primaryKey" json:"student_id"`
	StudentSchoolID  uuid.UUID      `gorm:"column:student_school_id;type:uuid;not null;index:idx_students_school" json:"student_school_id"`
	StudentName      string         `gorm:"column:student_name;type:varchar(150);not null" json:"student_name"`
	StudentClassID   uuid.UUID      `gorm:"column:student_class_id;type:uuid;not null;index:idx_students_class" json:"student_class_id"`
	StudentSectionID *uuid.UUID     `gorm:"column:student_section_id;type:uuid" json:"student_section_id,omitempty"`
	StudentIsActive  bool           `gorm:"column:student_is_active;not null;default:true" json:"student_is_active"`
	StudentCreatedAt time.Time      `gorm:"column:student_created_at;autoCreateTime" json:"student_created_at"`
	StudentDeletedAt gorm.DeletedAt `gorm:"column:student_deleted_at;index" json:"-"`
}

func (StudentModel) TableName() string {
	return "students"
}
