package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ClassModel struct {
	ClassID       uuid.UUID      `gorm:"column:class_id;type:uuid;primaryKey" json:"class_id"`
	ClassSchoolID uuid.UUID      `gorm:"column:class_school_id;type:uuid;not null;index:idx_classes_school" json:"class_school_id"`
	ClassName     string         `gorm:"column:class_name;type:varchar(100);not null" json:"class_name"`
	ClassIsActive bool           `gorm:"column:class_is_active;not null;default:true" json:"class_is_active"`
	ClassCreatedAt time.Time     `gorm:"column:class_created_at;autoCreateTime" json:"class_created_at"`
	ClassDeletedAt gorm.DeletedAt `gorm:"column:class_deleted_at;index" json:"-"`
}

func (ClassModel) TableName() string {
	return "classes"
}

type SectionModel struct {
	SectionID       uuid.UUID      `gorm:"column:section_id;type:uuid;primaryKey" json:"section_id"`
	SectionSchoolID uuid.UUID      `gorm:"column:section_school_id;type:uuid;not null;index:idx_sections_school" json:"section_school_id"`
	SectionClassID  uuid.UUID      `gorm:"column:section_class_id;type:uuid;not null;index:idx_sections_class" json:"section_class_id"`
	SectionName     string         `gorm:"column:section_name;type:varchar(50);not null" json:"section_name"`
	SectionCreatedAt time.Time     `gorm:"column:section_created_at;autoCreateTime" json:"section_created_at"`
	SectionDeletedAt gorm.DeletedAt `gorm:"column:section_deleted_at;index" json:"-"`
}

func (SectionModel) TableName() string {
	return "sections"
}
