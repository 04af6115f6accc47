package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	alertModel "schoolku_backend/internals/features/attendance/alerts/model"
	recordModel "schoolku_backend/internals/features/attendance/records/model"
	ruleModel "schoolku_backend/internals/features/attendance/rules/model"
	helper "schoolku_backend/internals/helpers"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&recordModel.AttendanceRecordModel{},
		&alertModel.AttendanceAlertStateModel{},
		&alertModel.AttendanceAlertModel{},
	))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

// fakeSender merekam alert yang dikirim; bisa dipaksa selalu gagal.
type fakeSender struct {
	sent []uuid.UUID
	fail bool
}

func (f *fakeSender) Send(_ context.Context, alert *alertModel.AttendanceAlertModel) error {
	if f.fail {
		return errors.New("kanal pesan tidak tersedia")
	}
	f.sent = append(f.sent, alert.AttendanceAlertID)
	return nil
}

func day(s string) time.Time {
	d, err := helper.ParseDateYMD(s)
	if err != nil {
		panic(err)
	}
	return d
}

func seedAbsences(t *testing.T, db *gorm.DB, schoolID, subjectID uuid.UUID, dates []string, status recordModel.AttendanceStatus) {
	t.Helper()
	for _, d := range dates {
		row := recordModel.AttendanceRecordModel{
			AttendanceRecordID:          uuid.New(),
			AttendanceRecordSchoolID:    schoolID,
			AttendanceRecordSubjectID:   subjectID,
			AttendanceRecordSubjectKind: recordModel.SubjectStudent,
			AttendanceRecordDate:        day(d),
			AttendanceRecordStatus:      status,
			AttendanceRecordSource:      recordModel.SourceManual,
			AttendanceRecordRecordedBy:  uuid.New(),
			AttendanceRecordRecordedAt:  time.Now().UTC(),
		}
		require.NoError(t, db.Create(&row).Error)
	}
}

func defaultRule(schoolID uuid.UUID) ruleModel.AttendanceRuleModel {
	return ruleModel.DefaultAttendanceRule(schoolID) // notify_after_absences=3, auto_notify=true
}

func TestConsecutiveAbsenceStreak(t *testing.T) {
	mk := func(statuses ...recordModel.AttendanceStatus) []recordModel.AttendanceRecordModel {
		out := make([]recordModel.AttendanceRecordModel, 0, len(statuses))
		for _, s := range statuses {
			out = append(out, recordModel.AttendanceRecordModel{AttendanceRecordStatus: s})
		}
		return out
	}

	assert.Equal(t, 0, ConsecutiveAbsenceStreak(nil))
	assert.Equal(t, 0, ConsecutiveAbsenceStreak(mk(recordModel.AttendancePresent, recordModel.AttendanceAbsent)))
	assert.Equal(t, 2, ConsecutiveAbsenceStreak(mk(recordModel.AttendanceAbsent, recordModel.AttendanceAbsent, recordModel.AttendancePresent)))
	assert.Equal(t, 3, ConsecutiveAbsenceStreak(mk(recordModel.AttendanceAbsent, recordModel.AttendanceAbsent, recordModel.AttendanceAbsent)))
}

func TestEvaluate_EmitsAtThreshold(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{}
	svc := NewAlertService(db, sender)
	ctx := context.Background()

	schoolID, subjectID := uuid.New(), uuid.New()
	rule := defaultRule(schoolID)

	// hari libur (2026-03-04 tanpa record) tidak memutus streak
	seedAbsences(t, db, schoolID, subjectID,
		[]string{"2026-03-02", "2026-03-03", "2026-03-05"}, recordModel.AttendanceAbsent)

	svc.EvaluateAfterWrite(ctx, schoolID, recordModel.SubjectStudent, day("2026-03-05"), []uuid.UUID{subjectID}, &rule)

	var alerts []alertModel.AttendanceAlertModel
	require.NoError(t, db.Find(&alerts).Error)
	require.Len(t, alerts, 1)
	assert.Equal(t, 3, alerts[0].AttendanceAlertStreak)
	assert.Equal(t, subjectID, alerts[0].AttendanceAlertSubjectID)
	assert.NotNil(t, alerts[0].AttendanceAlertSentAt)
	assert.Equal(t, 1, alerts[0].AttendanceAlertAttempts)
	assert.Len(t, sender.sent, 1)
}

func TestEvaluate_BelowThresholdSilent(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{}
	svc := NewAlertService(db, sender)
	ctx := context.Background()

	schoolID, subjectID := uuid.New(), uuid.New()
	rule := defaultRule(schoolID)

	seedAbsences(t, db, schoolID, subjectID, []string{"2026-03-02", "2026-03-03"}, recordModel.AttendanceAbsent)

	svc.EvaluateAfterWrite(ctx, schoolID, recordModel.SubjectStudent, day("2026-03-03"), []uuid.UUID{subjectID}, &rule)

	var count int64
	require.NoError(t, db.Model(&alertModel.AttendanceAlertModel{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestEvaluate_DedupSameStreak(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{}
	svc := NewAlertService(db, sender)
	ctx := context.Background()

	schoolID, subjectID := uuid.New(), uuid.New()
	rule := defaultRule(schoolID)

	seedAbsences(t, db, schoolID, subjectID,
		[]string{"2026-03-02", "2026-03-03", "2026-03-04"}, recordModel.AttendanceAbsent)

	// evaluasi dua kali untuk streak yang sama (retry / re-save batch)
	svc.EvaluateAfterWrite(ctx, schoolID, recordModel.SubjectStudent, day("2026-03-04"), []uuid.UUID{subjectID}, &rule)
	svc.EvaluateAfterWrite(ctx, schoolID, recordModel.SubjectStudent, day("2026-03-04"), []uuid.UUID{subjectID}, &rule)

	var count int64
	require.NoError(t, db.Model(&alertModel.AttendanceAlertModel{}).Count(&count).Error)
	assert.EqualValues(t, 1, count, "satu streak = maksimal satu notifikasi")

	// streak memanjang → notifikasi baru boleh keluar
	seedAbsences(t, db, schoolID, subjectID, []string{"2026-03-05"}, recordModel.AttendanceAbsent)
	svc.EvaluateAfterWrite(ctx, schoolID, recordModel.SubjectStudent, day("2026-03-05"), []uuid.UUID{subjectID}, &rule)

	require.NoError(t, db.Model(&alertModel.AttendanceAlertModel{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestEvaluate_StreakBreakResetsDedup(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{}
	svc := NewAlertService(db, sender)
	ctx := context.Background()

	schoolID, subjectID := uuid.New(), uuid.New()
	rule := defaultRule(schoolID)

	seedAbsences(t, db, schoolID, subjectID,
		[]string{"2026-03-02", "2026-03-03", "2026-03-04"}, recordModel.AttendanceAbsent)
	svc.EvaluateAfterWrite(ctx, schoolID, recordModel.SubjectStudent, day("2026-03-04"), []uuid.UUID{subjectID}, &rule)

	// hadir → streak putus, state dedup direset
	seedAbsences(t, db, schoolID, subjectID, []string{"2026-03-05"}, recordModel.AttendancePresent)
	svc.EvaluateAfterWrite(ctx, schoolID, recordModel.SubjectStudent, day("2026-03-05"), []uuid.UUID{subjectID}, &rule)

	var state alertModel.AttendanceAlertStateModel
	require.NoError(t, db.
		Where("attendance_alert_state_subject_id = ?", subjectID).
		First(&state).Error)
	assert.Equal(t, 0, state.AttendanceAlertStateLastNotifiedStreak)

	// streak baru 3 hari → notifikasi baru walau panjangnya sama dengan yang lama
	seedAbsences(t, db, schoolID, subjectID,
		[]string{"2026-03-06", "2026-03-07", "2026-03-08"}, recordModel.AttendanceAbsent)
	svc.EvaluateAfterWrite(ctx, schoolID, recordModel.SubjectStudent, day("2026-03-08"), []uuid.UUID{subjectID}, &rule)

	var count int64
	require.NoError(t, db.Model(&alertModel.AttendanceAlertModel{}).Count(&count).Error)
	assert.EqualValues(t, 2, count)
}

func TestEvaluate_AutoNotifyDisabled(t *testing.T) {
	db := newTestDB(t)
	svc := NewAlertService(db, &fakeSender{})
	ctx := context.Background()

	schoolID, subjectID := uuid.New(), uuid.New()
	rule := defaultRule(schoolID)
	rule.AttendanceRuleAutoNotifyParents = false

	seedAbsences(t, db, schoolID, subjectID,
		[]string{"2026-03-02", "2026-03-03", "2026-03-04"}, recordModel.AttendanceAbsent)
	svc.EvaluateAfterWrite(ctx, schoolID, recordModel.SubjectStudent, day("2026-03-04"), []uuid.UUID{subjectID}, &rule)

	var count int64
	require.NoError(t, db.Model(&alertModel.AttendanceAlertModel{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestEvaluate_StaffNeverAlerts(t *testing.T) {
	db := newTestDB(t)
	svc := NewAlertService(db, &fakeSender{})
	ctx := context.Background()

	schoolID, subjectID := uuid.New(), uuid.New()
	rule := defaultRule(schoolID)

	svc.EvaluateAfterWrite(ctx, schoolID, recordModel.SubjectStaff, day("2026-03-04"), []uuid.UUID{subjectID}, &rule)

	var count int64
	require.NoError(t, db.Model(&alertModel.AttendanceAlertModel{}).Count(&count).Error)
	assert.EqualValues(t, 0, count)
}

func TestSendFailure_LeavesOutboxPending(t *testing.T) {
	db := newTestDB(t)
	sender := &fakeSender{fail: true}
	svc := NewAlertService(db, sender)
	ctx := context.Background()

	schoolID, subjectID := uuid.New(), uuid.New()
	rule := defaultRule(schoolID)

	seedAbsences(t, db, schoolID, subjectID,
		[]string{"2026-03-02", "2026-03-03", "2026-03-04"}, recordModel.AttendanceAbsent)
	svc.EvaluateAfterWrite(ctx, schoolID, recordModel.SubjectStudent, day("2026-03-04"), []uuid.UUID{subjectID}, &rule)

	var alerts []alertModel.AttendanceAlertModel
	require.NoError(t, db.Find(&alerts).Error)
	require.Len(t, alerts, 1)
	assert.Nil(t, alerts[0].AttendanceAlertSentAt, "gagal kirim tetap tersimpan di outbox")
	assert.Equal(t, 1, alerts[0].AttendanceAlertAttempts)

	// worker redelivery mengulang setelah kanal pulih
	sender.fail = false
	svc.redeliverPending()

	require.NoError(t, db.Find(&alerts).Error)
	require.Len(t, alerts, 1)
	assert.NotNil(t, alerts[0].AttendanceAlertSentAt)
	assert.Equal(t, 2, alerts[0].AttendanceAlertAttempts)
}
