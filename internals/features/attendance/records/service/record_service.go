package service

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"schoolku_backend/internals/features/attendance/records/dto"
	model "schoolku_backend/internals/features/attendance/records/model"
	ruleModel "schoolku_backend/internals/features/attendance/rules/model"
	helper "schoolku_backend/internals/helpers"
)

/* ===============================
   Record Store
   Satu fakta per (school, subject, kind, date); tulisan belakangan menang
   berdasarkan urutan commit (unique index + ON CONFLICT).
=================================*/

type RecordService struct {
	DB *gorm.DB
}

func NewRecordService(db *gorm.DB) *RecordService {
	return &RecordService{DB: db}
}

type QueryFilters struct {
	ClassID    *uuid.UUID
	SectionID  *uuid.UUID
	Department *string
}

// BulkUpsert: partial overwrite per subject_id untuk satu (date, kind):
// subject yang ada di batch diganti nilainya, subject lain di hari itu TIDAK disentuh.
// Validasi semua baris dulu, baru tulis (all-or-nothing dalam satu transaksi).
func (s *RecordService) BulkUpsert(
	ctx context.Context,
	schoolID uuid.UUID,
	date time.Time,
	kind model.SubjectKind,
	inputs []dto.BulkRecordInput,
	recordedBy uuid.UUID,
	rule *ruleModel.AttendanceRuleModel,
) ([]model.AttendanceRecordModel, error) {
	day := helper.NormalizeDate(date)
	now := time.Now().UTC()

	rows := make([]model.AttendanceRecordModel, 0, len(inputs))
	seen := make(map[uuid.UUID]int, len(inputs)) // baris terakhir per subject menang di dalam batch

	for i := range inputs {
		in := &inputs[i]

		subjectID := in.SubjectID()
		if subjectID == nil || *subjectID == uuid.Nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Setiap baris wajib punya person_id atau staff_id")
		}
		if kind == model.SubjectStudent && in.ClassID == nil {
			return nil, fiber.NewError(fiber.StatusBadRequest, "class_id wajib untuk record student")
		}
		if in.Status == nil && (in.CheckInTime == nil || *in.CheckInTime == "") {
			return nil, fiber.NewError(fiber.StatusBadRequest, "Setiap baris wajib punya status atau check_in_time")
		}

		status, err := ResolveStatus(in.CheckInTime, in.Status, rule)
		if err != nil {
			return nil, err
		}
		source := model.SourceCheckin
		if in.Status != nil {
			source = model.SourceManual
		}

		row := model.AttendanceRecordModel{
			AttendanceRecordID:          uuid.New(),
			AttendanceRecordSchoolID:    schoolID,
			AttendanceRecordSubjectID:   *subjectID,
			AttendanceRecordSubjectKind: kind,
			AttendanceRecordDate:        day,
			AttendanceRecordStatus:      status,
			AttendanceRecordCheckInTime: in.CheckInTime,
			AttendanceRecordSource:      source,
			AttendanceRecordClassID:     in.ClassID,
			AttendanceRecordSectionID:   in.SectionID,
			AttendanceRecordDepartment:  in.Department,
			AttendanceRecordRecordedBy:  recordedBy,
			AttendanceRecordRecordedAt:  now,
		}

		if j, dup := seen[*subjectID]; dup {
			rows[j] = row
			continue
		}
		seen[*subjectID] = len(rows)
		rows = append(rows, row)
	}

	err := s.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Clauses(clause.OnConflict{
			Columns: []clause.Column{
				{Name: "attendance_record_school_id"},
				{Name: "attendance_record_subject_id"},
				{Name: "attendance_record_subject_kind"},
				{Name: "attendance_record_date"},
			},
			DoUpdates: clause.AssignmentColumns([]string{
				"attendance_record_status",
				"attendance_record_check_in_time",
				"attendance_record_source",
				"attendance_record_class_id",
				"attendance_record_section_id",
				"attendance_record_department",
				"attendance_record_recorded_by",
				"attendance_record_recorded_at",
			}),
		}).Create(&rows).Error
	})
	if err != nil {
		return nil, err
	}
	return rows, nil
}

// Query: scan set record dalam range tanggal; hasil diperlakukan sebagai set.
// Tanpa data = slice kosong, bukan error.
func (s *RecordService) Query(
	ctx context.Context,
	schoolID uuid.UUID,
	start, end time.Time,
	kind model.SubjectKind,
	f QueryFilters,
) ([]model.AttendanceRecordModel, error) {
	q := s.DB.WithContext(ctx).
		Where("attendance_record_school_id = ?", schoolID).
		Where("attendance_record_date BETWEEN ? AND ?", helper.NormalizeDate(start), helper.NormalizeDate(end))

	if kind != "" {
		q = q.Where("attendance_record_subject_kind = ?", kind)
	}
	if f.ClassID != nil {
		q = q.Where("attendance_record_class_id = ?", *f.ClassID)
	}
	if f.SectionID != nil {
		q = q.Where("attendance_record_section_id = ?", *f.SectionID)
	}
	if f.Department != nil && *f.Department != "" {
		q = q.Where("attendance_record_department = ?", *f.Department)
	}

	var out []model.AttendanceRecordModel
	if err := q.Find(&out).Error; err != nil {
		return nil, err
	}
	return out, nil
}

// GetForDate: peta sparse subject_id → record untuk satu hari.
// WAJIB peta kosong (bukan error) kalau belum ada yang dicatat: UI membedakan
// "belum ada data" (clean slate) dari "fetch gagal" (state dipertahankan).
func (s *RecordService) GetForDate(
	ctx context.Context,
	schoolID uuid.UUID,
	date time.Time,
	kind model.SubjectKind,
	f QueryFilters,
) (map[uuid.UUID]model.AttendanceRecordModel, error) {
	records, err := s.Query(ctx, schoolID, date, date, kind, f)
	if err != nil {
		return nil, err
	}
	out := make(map[uuid.UUID]model.AttendanceRecordModel, len(records))
	for _, r := range records {
		out[r.AttendanceRecordSubjectID] = r
	}
	return out, nil
}

// QueryBySubject: riwayat satu subject mundur dari tanggal tertentu (untuk streak alert).
func (s *RecordService) QueryBySubject(
	ctx context.Context,
	schoolID, subjectID uuid.UUID,
	kind model.SubjectKind,
	until time.Time,
	limit int,
) ([]model.AttendanceRecordModel, error) {
	var out []model.AttendanceRecordModel
	err := s.DB.WithContext(ctx).
		Where("attendance_record_school_id = ?", schoolID).
		Where("attendance_record_subject_id = ?", subjectID).
		Where("attendance_record_subject_kind = ?", kind).
		Where("attendance_record_date <= ?", helper.NormalizeDate(until)).
		Order("attendance_record_date DESC").
		Limit(limit).
		Find(&out).Error
	if err != nil {
		return nil, err
	}
	return out, nil
}
