package service

import (
	"github.com/gofiber/fiber/v2"

	recordModel "schoolku_backend/internals/features/attendance/records/model"
	ruleModel "schoolku_backend/internals/features/attendance/rules/model"
	helper "schoolku_backend/internals/helpers"
)

/* ===============================
   Status Resolver (pure, tanpa I/O)
=================================*/

// ResolveStatus menurunkan status final dari data mentah:
//  1. status manual (override manusia) selalu menang;
//  2. tanpa check-in → absent;
//  3. check-in lewat dari jam masuk + toleransi telat → late, selain itu present.
//
// Deterministik; dipakai sama persis oleh jalur penandaan manual maupun feed check-in.
func ResolveStatus(checkInTime *string, manualStatus *recordModel.AttendanceStatus, rule *ruleModel.AttendanceRuleModel) (recordModel.AttendanceStatus, error) {
	if manualStatus != nil {
		if !manualStatus.Valid() {
			return "", fiber.NewError(fiber.StatusBadRequest, "Status tidak valid (present/absent/late/leave)")
		}
		return *manualStatus, nil
	}

	if checkInTime == nil || *checkInTime == "" {
		return recordModel.AttendanceAbsent, nil
	}

	checkInMin, err := helper.ParseClockHHMM(*checkInTime)
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "Jam check-in tidak valid (pakai HH:MM)")
	}
	startMin, err := helper.ParseClockHHMM(rule.AttendanceRuleSchoolStartTime)
	if err != nil {
		return "", fiber.NewError(fiber.StatusInternalServerError, "Jam masuk sekolah pada aturan tidak valid")
	}

	if checkInMin > startMin+rule.AttendanceRuleLateThresholdMinutes {
		return recordModel.AttendanceLate, nil
	}
	return recordModel.AttendancePresent, nil
}
