package dto

import (
	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/staff/model"
)

type CreateStaffRequest struct {
	StaffName       string  `json:"staff_name" validate:"required,min=1,max=150"`
	StaffDepartment *string `json:"staff_department,omitempty" validate:"omitempty,max=100"`
}

type StaffResponse struct {
	StaffID         uuid.UUID `json:"staff_id"`
	StaffName       string    `json:"staff_name"`
	StaffDepartment *string   `json:"staff_department,omitempty"`
	StaffIsActive   bool      `json:"staff_is_active"`
}

func FromStaffModel(m model.StaffModel) StaffResponse {
	return StaffResponse{
		StaffID:         m.StaffID,
		StaffName:       m.StaffName,
		StaffDepartment: m.StaffDepartment,
		StaffIsActive:   m.StaffIsActive,
	}
}

func FromStaffModels(ms []model.StaffModel) []StaffResponse {
	out := make([]StaffResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromStaffModel(m))
	}
	return out
}
