package service

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	recordModel "schoolku_backend/internals/features/attendance/records/model"
	ruleModel "schoolku_backend/internals/features/attendance/rules/model"
)

func strPtr(s string) *string { return &s }

func statusPtr(s recordModel.AttendanceStatus) *recordModel.AttendanceStatus { return &s }

func testRule() *ruleModel.AttendanceRuleModel {
	r := ruleModel.DefaultAttendanceRule(uuid.New())
	r.AttendanceRuleSchoolStartTime = "07:00"
	r.AttendanceRuleLateThresholdMinutes = 15
	return &r
}

func TestResolveStatus_ManualWins(t *testing.T) {
	rule := testRule()

	// Status manual menang walau jam check-in harusnya late.
	got, err := ResolveStatus(strPtr("09:30"), statusPtr(recordModel.AttendanceLeave), rule)
	require.NoError(t, err)
	assert.Equal(t, recordModel.AttendanceLeave, got)

	got, err = ResolveStatus(nil, statusPtr(recordModel.AttendancePresent), rule)
	require.NoError(t, err)
	assert.Equal(t, recordModel.AttendancePresent, got)
}

func TestResolveStatus_ManualInvalid(t *testing.T) {
	bad := recordModel.AttendanceStatus("sick")
	_, err := ResolveStatus(nil, &bad, testRule())
	assert.Error(t, err)
}

func TestResolveStatus_NoCheckInIsAbsent(t *testing.T) {
	got, err := ResolveStatus(nil, nil, testRule())
	require.NoError(t, err)
	assert.Equal(t, recordModel.AttendanceAbsent, got)

	got, err = ResolveStatus(strPtr(""), nil, testRule())
	require.NoError(t, err)
	assert.Equal(t, recordModel.AttendanceAbsent, got)
}

func TestResolveStatus_LateBoundary(t *testing.T) {
	rule := testRule() // masuk 07:00, toleransi 15 menit

	tests := []struct {
		checkIn string
		want    recordModel.AttendanceStatus
	}{
		{"06:45", recordModel.AttendancePresent},
		{"07:00", recordModel.AttendancePresent},
		{"07:15", recordModel.AttendancePresent}, // tepat di batas toleransi masih present
		{"07:16", recordModel.AttendanceLate},
		{"11:00", recordModel.AttendanceLate},
	}

	for _, tt := range tests {
		got, err := ResolveStatus(strPtr(tt.checkIn), nil, rule)
		require.NoError(t, err, "check-in %s", tt.checkIn)
		assert.Equal(t, tt.want, got, "check-in %s", tt.checkIn)
	}
}

func TestResolveStatus_ZeroThreshold(t *testing.T) {
	rule := testRule()
	rule.AttendanceRuleLateThresholdMinutes = 0

	got, err := ResolveStatus(strPtr("07:00"), nil, rule)
	require.NoError(t, err)
	assert.Equal(t, recordModel.AttendancePresent, got)

	got, err = ResolveStatus(strPtr("07:01"), nil, rule)
	require.NoError(t, err)
	assert.Equal(t, recordModel.AttendanceLate, got)
}

func TestResolveStatus_BadCheckIn(t *testing.T) {
	_, err := ResolveStatus(strPtr("pagi"), nil, testRule())
	assert.Error(t, err)
}
