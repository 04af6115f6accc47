package dto

import (
	"time"

	"github.com/google/uuid"

	model "schoolku_backend/internals/features/attendance/records/model"
	helper "schoolku_backend/internals/helpers"
)

/* ===================== REQUESTS ===================== */

// Satu baris dalam batch bulk. UI lama mengirim person_id untuk student dan
// staff_id untuk staff; dua-duanya diterima, salah satu wajib ada.
type BulkRecordInput struct {
	PersonID *uuid.UUID `json:"person_id" validate:"omitempty"`
	StaffID  *uuid.UUID `json:"staff_id" validate:"omitempty"`

	// status manual ATAU check_in_time (feed otomatis); status menang kalau dua-duanya ada
	Status      *model.AttendanceStatus `json:"status" validate:"omitempty,oneof=present absent late leave"`
	CheckInTime *string                 `json:"check_in_time" validate:"omitempty"`

	// Context: wajib class_id untuk student, informasional untuk staff
	ClassID    *uuid.UUID `json:"class_id" validate:"omitempty"`
	SectionID  *uuid.UUID `json:"section_id" validate:"omitempty"`
	Department *string    `json:"department" validate:"omitempty,max=100"`

	// UI lama ikut mengirim date per baris; diabaikan, tanggal batch yang berlaku
	Date *string `json:"date" validate:"omitempty"`
}

// SubjectID: person_id diprioritaskan, fallback staff_id.
func (r *BulkRecordInput) SubjectID() *uuid.UUID {
	if r.PersonID != nil {
		return r.PersonID
	}
	return r.StaffID
}

type BulkUpsertRequest struct {
	Date    string            `json:"date" validate:"required"`
	Type    model.SubjectKind `json:"type" validate:"required,oneof=staff student"`
	Records []BulkRecordInput `json:"records" validate:"required,min=1,dive"`
}

/* ===================== RESPONSES ===================== */

type AttendanceRecordResponse struct {
	SubjectID   uuid.UUID               `json:"subject_id"`
	PersonID    *uuid.UUID              `json:"person_id,omitempty"`
	StaffID     *uuid.UUID              `json:"staff_id,omitempty"`
	SubjectKind model.SubjectKind       `json:"subject_kind"`
	Date        string                  `json:"date"`
	Status      model.AttendanceStatus  `json:"status"`
	CheckInTime *string                 `json:"check_in_time,omitempty"`
	ClassID     *uuid.UUID              `json:"class_id,omitempty"`
	SectionID   *uuid.UUID              `json:"section_id,omitempty"`
	Department  *string                 `json:"department,omitempty"`
	RecordedBy  uuid.UUID               `json:"recorded_by"`
	RecordedAt  time.Time               `json:"recorded_at"`
}

func FromAttendanceRecordModel(m model.AttendanceRecordModel) AttendanceRecordResponse {
	resp := AttendanceRecordResponse{
		SubjectID:   m.AttendanceRecordSubjectID,
		SubjectKind: m.AttendanceRecordSubjectKind,
		Date:        m.AttendanceRecordDate.Format(helper.DateLayout),
		Status:      m.AttendanceRecordStatus,
		CheckInTime: m.AttendanceRecordCheckInTime,
		ClassID:     m.AttendanceRecordClassID,
		SectionID:   m.AttendanceRecordSectionID,
		Department:  m.AttendanceRecordDepartment,
		RecordedBy:  m.AttendanceRecordRecordedBy,
		RecordedAt:  m.AttendanceRecordRecordedAt,
	}
	// alias kompatibilitas UI lama
	sid := m.AttendanceRecordSubjectID
	if m.AttendanceRecordSubjectKind == model.SubjectStaff {
		resp.StaffID = &sid
	} else {
		resp.PersonID = &sid
	}
	return resp
}

func FromAttendanceRecordModels(ms []model.AttendanceRecordModel) []AttendanceRecordResponse {
	out := make([]AttendanceRecordResponse, 0, len(ms))
	for _, m := range ms {
		out = append(out, FromAttendanceRecordModel(m))
	}
	return out
}

// Peta sparse per subject: "belum dicatat" = tidak ada key, BUKAN absent.
func MapBySubject(ms []model.AttendanceRecordModel) map[string]AttendanceRecordResponse {
	out := make(map[string]AttendanceRecordResponse, len(ms))
	for _, m := range ms {
		out[m.AttendanceRecordSubjectID.String()] = FromAttendanceRecordModel(m)
	}
	return out
}

// Ringkasan satu hari (GET /attendance/summary).
type DailySummaryResponse struct {
	Total        int                       `json:"total"`
	Present      int                       `json:"present"`
	Absent       int                       `json:"absent"`
	Late         int                       `json:"late"`
	Leave        int                       `json:"leave"`
	ByDepartment map[string]map[string]int `json:"by_department,omitempty"`
}
