package service

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/features/attendance/rules/dto"
	model "schoolku_backend/internals/features/attendance/rules/model"
)

/* ===============================
   Rule Store: singleton per sekolah
=================================*/

type RuleService struct {
	DB *gorm.DB
}

func NewRuleService(db *gorm.DB) *RuleService {
	return &RuleService{DB: db}
}

// Get: ambil aturan sekolah; provision default saat pertama kali dibaca.
// OnConflict DoNothing menjaga race dua pembaca pertama yang sama-sama provision.
func (s *RuleService) Get(ctx context.Context, schoolID uuid.UUID) (model.AttendanceRuleModel, error) {
	var rule model.AttendanceRuleModel
	err := s.DB.WithContext(ctx).
		Where("attendance_rule_school_id = ?", schoolID).
		First(&rule).Error
	if err == nil {
		return rule, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return model.AttendanceRuleModel{}, err
	}

	def := model.DefaultAttendanceRule(schoolID)
	if err := s.DB.WithContext(ctx).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&def).Error; err != nil {
		return model.AttendanceRuleModel{}, err
	}
	// re-fetch: kalau kalah race, baris pemenang yang diambil
	if err := s.DB.WithContext(ctx).
		Where("attendance_rule_school_id = ?", schoolID).
		First(&rule).Error; err != nil {
		return model.AttendanceRuleModel{}, err
	}
	return rule, nil
}

// Update: atomic replace. Validasi semua field dulu; satu pelanggaran =
// tidak ada satu field pun yang berubah.
func (s *RuleService) Update(ctx context.Context, schoolID uuid.UUID, req *dto.UpdateAttendanceRuleRequest) (model.AttendanceRuleModel, error) {
	var updated model.AttendanceRuleModel

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.AttendanceRuleModel
		if err := tx.
			Where("attendance_rule_school_id = ?", schoolID).
			First(&existing).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				existing = model.DefaultAttendanceRule(schoolID)
				if err := tx.Create(&existing).Error; err != nil {
					return err
				}
			} else {
				return err
			}
		}

		next, err := req.ApplyTo(existing)
		if err != nil {
			return err
		}

		if err := tx.Model(&model.AttendanceRuleModel{}).
			Where("attendance_rule_id = ?", existing.AttendanceRuleID).
			Updates(map[string]interface{}{
				"attendance_rule_late_threshold_minutes":        next.AttendanceRuleLateThresholdMinutes,
				"attendance_rule_minimum_attendance_percentage": next.AttendanceRuleMinimumAttendancePercentage,
				"attendance_rule_school_start_time":             next.AttendanceRuleSchoolStartTime,
				"attendance_rule_school_end_time":               next.AttendanceRuleSchoolEndTime,
				"attendance_rule_notify_after_absences":         next.AttendanceRuleNotifyAfterAbsences,
				"attendance_rule_auto_notify_parents":           next.AttendanceRuleAutoNotifyParents,
				"attendance_rule_enable_period_wise":            next.AttendanceRuleEnablePeriodWise,
			}).Error; err != nil {
			return err
		}

		updated = next
		return nil
	})
	if err != nil {
		return model.AttendanceRuleModel{}, err
	}
	return updated, nil
}
