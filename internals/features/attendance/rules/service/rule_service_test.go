package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"schoolku_backend/internals/features/attendance/rules/dto"
	model "schoolku_backend/internals/features/attendance/rules/model"
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

	require.NoError(t, db.AutoMigrate(&model.AttendanceRuleModel{}))

	t.Cleanup(func() { _ = sqlDB.Close() })
	return db
}

func intPtr(i int) *int         { return &i }
func f64Ptr(f float64) *float64 { return &f }

func TestGet_ProvisionsDefault(t *testing.T) {
	svc := NewRuleService(newTestDB(t))
	ctx := context.Background()
	schoolID := uuid.New()

	rule, err := svc.Get(ctx, schoolID)
	require.NoError(t, err)
	assert.Equal(t, schoolID, rule.AttendanceRuleSchoolID)
	assert.Equal(t, 15, rule.AttendanceRuleLateThresholdMinutes)
	assert.Equal(t, 75.0, rule.AttendanceRuleMinimumAttendancePercentage)
	assert.Equal(t, "07:00", rule.AttendanceRuleSchoolStartTime)
	assert.True(t, rule.AttendanceRuleAutoNotifyParents)

	// pembacaan kedua mengembalikan baris yang sama, bukan provision baru
	again, err := svc.Get(ctx, schoolID)
	require.NoError(t, err)
	assert.Equal(t, rule.AttendanceRuleID, again.AttendanceRuleID)
}

func TestUpdate_PartialPatchPersists(t *testing.T) {
	svc := NewRuleService(newTestDB(t))
	ctx := context.Background()
	schoolID := uuid.New()

	updated, err := svc.Update(ctx, schoolID, &dto.UpdateAttendanceRuleRequest{
		LateThresholdMinutes:        intPtr(20),
		MinimumAttendancePercentage: f64Ptr(80),
	})
	require.NoError(t, err)
	assert.Equal(t, 20, updated.AttendanceRuleLateThresholdMinutes)
	assert.Equal(t, 80.0, updated.AttendanceRuleMinimumAttendancePercentage)

	got, err := svc.Get(ctx, schoolID)
	require.NoError(t, err)
	assert.Equal(t, 20, got.AttendanceRuleLateThresholdMinutes)
	assert.Equal(t, 80.0, got.AttendanceRuleMinimumAttendancePercentage)
	// field di luar patch tetap default
	assert.Equal(t, 3, got.AttendanceRuleNotifyAfterAbsences)
}

func TestUpdate_InvalidFieldChangesNothing(t *testing.T) {
	svc := NewRuleService(newTestDB(t))
	ctx := context.Background()
	schoolID := uuid.New()

	before, err := svc.Get(ctx, schoolID)
	require.NoError(t, err)

	// satu field valid + satu invalid → seluruh update ditolak
	_, err = svc.Update(ctx, schoolID, &dto.UpdateAttendanceRuleRequest{
		MinimumAttendancePercentage: f64Ptr(80),
		LateThresholdMinutes:        intPtr(-5),
	})
	require.Error(t, err)

	after, err := svc.Get(ctx, schoolID)
	require.NoError(t, err)
	assert.Equal(t, before.AttendanceRuleLateThresholdMinutes, after.AttendanceRuleLateThresholdMinutes)
	assert.Equal(t, before.AttendanceRuleMinimumAttendancePercentage, after.AttendanceRuleMinimumAttendancePercentage)
}

func TestUpdate_TenantIsolation(t *testing.T) {
	svc := NewRuleService(newTestDB(t))
	ctx := context.Background()
	schoolA, schoolB := uuid.New(), uuid.New()

	_, err := svc.Update(ctx, schoolA, &dto.UpdateAttendanceRuleRequest{
		LateThresholdMinutes: intPtr(30),
	})
	require.NoError(t, err)

	gotB, err := svc.Get(ctx, schoolB)
	require.NoError(t, err)
	assert.Equal(t, 15, gotB.AttendanceRuleLateThresholdMinutes, "aturan sekolah lain tidak ikut berubah")
}
