package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type StaffModel struct {
	StaffID         uuid.UUID      `gorm:"column:staff_id;type:uuid;primaryKey" json:"staff_id"`
	StaffSchoolID   uuid.UUID      `gorm:"column:staff_school_id;type:uuid;not null;index:idx_staff_school" json:"staff_school_id"`
	StaffName       string         `gorm:"column:staff_name;type:varchar(150);not null" json:"staff_name"`
	StaffDepartment *string        `gorm:"column:staff_department;type:varchar(100)" json:"staff_department,omitempty"`
	StaffIsActive   bool           `gorm:"column:staff_is_active;not null;default:true" json:"staff_is_active"`
	StaffCreatedAt  time.Time      `gorm:"column:staff_created_at;autoCreateTime" json:"staff_created_at"`
	StaffDeletedAt  gorm.DeletedAt `gorm:"column:staff_deleted_at;index" json:"-"`
}

func (StaffModel) TableName() string {
	return "staff_members"
}
