package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	recordModel "schoolku_backend/internals/features/attendance/records/model"
	recordService "schoolku_backend/internals/features/attendance/records/service"
	ruleService "schoolku_backend/internals/features/attendance/rules/service"
	classModel "schoolku_backend/internals/features/school/classes/model"
	studentModel "schoolku_backend/internals/features/school/students/model"
)

/* ===============================
   Orkestrasi baca: record + rule + katalog nama → Result.
   Aggregator tidak pernah memutasi record.
=================================*/

type AnalyticsService struct {
	DB      *gorm.DB
	Records *recordService.RecordService
	Rules   *ruleService.RuleService
}

func NewAnalyticsService(db *gorm.DB) *AnalyticsService {
	return &AnalyticsService{
		DB:      db,
		Records: recordService.NewRecordService(db),
		Rules:   ruleService.NewRuleService(db),
	}
}

func (s *AnalyticsService) classNames(ctx context.Context, schoolID uuid.UUID) (map[uuid.UUID]string, error) {
	var rows []classModel.ClassModel
	if err := s.DB.WithContext(ctx).
		Select("class_id, class_name").
		Where("class_school_id = ?", schoolID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]string, len(rows))
	for _, r := range rows {
		out[r.ClassID] = r.ClassName
	}
	return out, nil
}

func (s *AnalyticsService) studentNames(ctx context.Context, schoolID uuid.UUID) (map[uuid.UUID]string, error) {
	var rows []studentModel.StudentModel
	if err := s.DB.WithContext(ctx).
		Select("student_id, student_name").
		Where("student_school_id = ?", schoolID).
		Find(&rows).Error; err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]string, len(rows))
	for _, r := range rows {
		out[r.StudentID] = r.StudentName
	}
	return out, nil
}

// Build: satu scan record dalam window + katalog nama, lalu hitung murni.
func (s *AnalyticsService) Build(
	ctx context.Context,
	schoolID uuid.UUID,
	start, end time.Time,
	classID *uuid.UUID,
) (Result, error) {
	rule, err := s.Rules.Get(ctx, schoolID)
	if err != nil {
		return Result{}, err
	}

	records, err := s.Records.Query(ctx, schoolID, start, end, "", recordService.QueryFilters{ClassID: classID})
	if err != nil {
		return Result{}, err
	}

	classNames, err := s.classNames(ctx, schoolID)
	if err != nil {
		return Result{}, err
	}
	studentNames, err := s.studentNames(ctx, schoolID)
	if err != nil {
		return Result{}, err
	}

	return Compute(records, &rule, start, end, studentNames, classNames), nil
}

// Recompute: operasi eksplisit. Terapkan ulang aturan SAAT INI ke record
// ber-source checkin dalam range. Status hasil penandaan manual tidak disentuh;
// perubahan rule tidak pernah otomatis menulis ulang sejarah.
func (s *AnalyticsService) Recompute(
	ctx context.Context,
	schoolID uuid.UUID,
	start, end time.Time,
) (scanned int, updated int, err error) {
	rule, err := s.Rules.Get(ctx, schoolID)
	if err != nil {
		return 0, 0, err
	}

	err = s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var rows []recordModel.AttendanceRecordModel
		if err := tx.
			Where("attendance_record_school_id = ?", schoolID).
			Where("attendance_record_date BETWEEN ? AND ?", start, end).
			Where("attendance_record_source = ?", recordModel.SourceCheckin).
			Where("attendance_record_check_in_time IS NOT NULL").
			Find(&rows).Error; err != nil {
			return err
		}
		scanned = len(rows)

		for i := range rows {
			r := &rows[i]
			next, err := recordService.ResolveStatus(r.AttendanceRecordCheckInTime, nil, &rule)
			if err != nil {
				return err
			}
			if next == r.AttendanceRecordStatus {
				continue
			}
			if err := tx.Model(&recordModel.AttendanceRecordModel{}).
				Where("attendance_record_id = ?", r.AttendanceRecordID).
				Update("attendance_record_status", next).Error; err != nil {
				return err
			}
			updated++
		}
		return nil
	})
	if err != nil {
		return 0, 0, err
	}
	return scanned, updated, nil
}
