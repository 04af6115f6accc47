package dto

import (
	"github.com/google/uuid"

	"schoolku_backend/internals/features/school/classes/model"
)

type CreateClassRequest struct {
	ClassName string `json:"class_name" validate:"required,min=1,max=100"`
}

type CreateSectionRequest struct {
	SectionClassID uuid.UUID `json:"section_class_id" validate:"required"`
	SectionName    string    `json:"section_name" validate:"required,min=1,max=50"`
}

type ClassResponse struct {
	ClassID       uuid.UUID `json:"class_id"`
	ClassName     string    `json:"class_name"`
	ClassIsActive bool      `json:"class_is_active"`
}

type SectionResponse struct {
	SectionID      uuid.UUID `json:"section_id"`
	SectionClassID uuid.UUID `json:"section_class_id"`
	SectionName    string    `json:"section_name"`
}

func FromClassModel(m model.ClassModel) ClassResponse {
	return ClassResponse{
		ClassID:       m.ClassID,
		ClassName:     m.ClassName,
		ClassIsActive: m.ClassIsActive,
	}
}

func FromClassModels(ms []model.ClassModel) []ClassResponse {
	out := make([]ClassResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromClassModel(m))
	}
	return out
}

func FromSectionModel(m model.SectionModel) SectionResponse {
	return SectionResponse{
		SectionID:      m.SectionID,
		SectionClassID: m.SectionClassID,
		SectionName:    m.SectionName,
	}
}

func FromSectionModels(ms []model.SectionModel) []SectionResponse {
	out := make([]SectionResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromSectionModel(m))
	}
	return out
}
