package dto

import (
	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/students/model"
)

type CreateStudentRequest struct {
	StudentName      string     `json:"student_name" validate:"required,min=1,max=150"`
	StudentClassID   uuid.UUID  `json:"student_class_id" validate:"required"`
	StudentSectionID *uuid.UUID `json:"student_section_id,omitempty"`
}

type StudentResponse struct {
	StudentID        uuid.UUID  `json:"student_id"`
	StudentName      string     `json:"student_name"`
	StudentClassID   uuid.UUID  `json:"student_class_id"`
	StudentSectionID *uuid.UUID `json:"student_section_id,omitempty"`
	StudentIsActive  bool       `json:"student_is_active"`
}

func FromStudentModel(m model.StudentModel) StudentResponse {
	return StudentResponse{
		StudentID:        m.StudentID,
		StudentName:      m.StudentName,
		StudentClassID:   m.StudentClassID,
		StudentSectionID: m.StudentSectionID,
		StudentIsActive:  m.StudentIsActive,
	}
}

func FromStudentModels(ms []model.StudentModel) []StudentResponse {
	out := make([]StudentResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromStudentModel(m))
	}
	return out
}
