package dto

import (
	"time"

	"github.com/gofiber/fiber/v2"

	model "schoolku_backend/internals/features/attendance/rules/model"
	helper "schoolku_backend/internals/helpers"
)

/* ===================== REQUESTS ===================== */

// Update aturan (partial patch, semua optional): tapi commit-nya atomic:
// satu field saja yang invalid membuat SELURUH update ditolak.
type UpdateAttendanceRuleRequest struct {
	LateThresholdMinutes        *int     `json:"late_threshold_minutes" validate:"omitempty,gte=0"`
	MinimumAttendancePercentage *float64 `json:"minimum_attendance_percentage" validate:"omitempty,gte=0,lte=100"`
	SchoolStartTime             *string  `json:"school_start_time" validate:"omitempty"`
	SchoolEndTime               *string  `json:"school_end_time" validate:"omitempty"`
	NotifyAfterAbsences         *int     `json:"notify_after_absences" validate:"omitempty,gte=1"`
	AutoNotifyParents           *bool    `json:"auto_notify_parents" validate:"omitempty"`
	EnablePeriodWise            *bool    `json:"enable_period_wise" validate:"omitempty"`
}

// ApplyTo memvalidasi patch terhadap rule yang ada dan menghasilkan salinan baru.
// Rule existing TIDAK pernah dimutasi kalau ada pelanggaran.
func (r *UpdateAttendanceRuleRequest) ApplyTo(existing model.AttendanceRuleModel) (model.AttendanceRuleModel, error) {
	next := existing

	if r.LateThresholdMinutes != nil {
		if *r.LateThresholdMinutes < 0 {
			return existing, fiber.NewError(fiber.StatusBadRequest, "late_threshold_minutes tidak boleh negatif")
		}
		next.AttendanceRuleLateThresholdMinutes = *r.LateThresholdMinutes
	}
	if r.MinimumAttendancePercentage != nil {
		if *r.MinimumAttendancePercentage < 0 || *r.MinimumAttendancePercentage > 100 {
			return existing, fiber.NewError(fiber.StatusBadRequest, "minimum_attendance_percentage harus 0..100")
		}
		next.AttendanceRuleMinimumAttendancePercentage = *r.MinimumAttendancePercentage
	}
	if r.SchoolStartTime != nil {
		if _, err := helper.ParseClockHHMM(*r.SchoolStartTime); err != nil {
			return existing, fiber.NewError(fiber.StatusBadRequest, "school_start_time tidak valid (HH:MM)")
		}
		next.AttendanceRuleSchoolStartTime = *r.SchoolStartTime
	}
	if r.SchoolEndTime != nil {
		if _, err := helper.ParseClockHHMM(*r.SchoolEndTime); err != nil {
			return existing, fiber.NewError(fiber.StatusBadRequest, "school_end_time tidak valid (HH:MM)")
		}
		next.AttendanceRuleSchoolEndTime = *r.SchoolEndTime
	}
	if r.NotifyAfterAbsences != nil {
		if *r.NotifyAfterAbsences < 1 {
			return existing, fiber.NewError(fiber.StatusBadRequest, "notify_after_absences minimal 1")
		}
		next.AttendanceRuleNotifyAfterAbsences = *r.NotifyAfterAbsences
	}
	if r.AutoNotifyParents != nil {
		next.AttendanceRuleAutoNotifyParents = *r.AutoNotifyParents
	}
	if r.EnablePeriodWise != nil {
		next.AttendanceRuleEnablePeriodWise = *r.EnablePeriodWise
	}

	// cross-field: jam mulai harus sebelum jam pulang
	startMin, _ := helper.ParseClockHHMM(next.AttendanceRuleSchoolStartTime)
	endMin, _ := helper.ParseClockHHMM(next.AttendanceRuleSchoolEndTime)
	if startMin >= endMin {
		return existing, fiber.NewError(fiber.StatusBadRequest, "school_start_time harus sebelum school_end_time")
	}

	return next, nil
}

/* ===================== RESPONSES ===================== */

type AttendanceRuleResponse struct {
	LateThresholdMinutes        int        `json:"late_threshold_minutes"`
	MinimumAttendancePercentage float64    `json:"minimum_attendance_percentage"`
	SchoolStartTime             string     `json:"school_start_time"`
	SchoolEndTime               string     `json:"school_end_time"`
	NotifyAfterAbsences         int        `json:"notify_after_absences"`
	AutoNotifyParents           bool       `json:"auto_notify_parents"`
	EnablePeriodWise            bool       `json:"enable_period_wise"`
	UpdatedAt                   *time.Time `json:"updated_at,omitempty"`
}

func FromAttendanceRuleModel(m model.AttendanceRuleModel) AttendanceRuleResponse {
	return AttendanceRuleResponse{
		LateThresholdMinutes:        m.AttendanceRuleLateThresholdMinutes,
		MinimumAttendancePercentage: m.AttendanceRuleMinimumAttendancePercentage,
		SchoolStartTime:             m.AttendanceRuleSchoolStartTime,
		SchoolEndTime:               m.AttendanceRuleSchoolEndTime,
		NotifyAfterAbsences:         m.AttendanceRuleNotifyAfterAbsences,
		AutoNotifyParents:           m.AttendanceRuleAutoNotifyParents,
		EnablePeriodWise:            m.AttendanceRuleEnablePeriodWise,
		UpdatedAt:                   m.AttendanceRuleUpdatedAt,
	}
}
