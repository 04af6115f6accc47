package service

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	recordModel "schoolku_backend/internals/features/attendance/records/model"
	ruleModel "schoolku_backend/internals/features/attendance/rules/model"
	helper "schoolku_backend/internals/helpers"
)

func day(s string) time.Time {
	d, err := helper.ParseDateYMD(s)
	if err != nil {
		panic(err)
	}
	return d
}

func rec(subject uuid.UUID, date string, status recordModel.AttendanceStatus) recordModel.AttendanceRecordModel {
	return recordModel.AttendanceRecordModel{
		AttendanceRecordID:          uuid.New(),
		AttendanceRecordSubjectID:   subject,
		AttendanceRecordSubjectKind: recordModel.SubjectStudent,
		AttendanceRecordDate:        day(date),
		AttendanceRecordStatus:      status,
	}
}

func recInClass(subject, classID uuid.UUID, date string, status recordModel.AttendanceStatus) recordModel.AttendanceRecordModel {
	r := rec(subject, date, status)
	r.AttendanceRecordClassID = &classID
	return r
}

func TestSummarize(t *testing.T) {
	s1, s2 := uuid.New(), uuid.New()
	records := []recordModel.AttendanceRecordModel{
		rec(s1, "2026-03-01", recordModel.AttendancePresent),
		rec(s2, "2026-03-01", recordModel.AttendanceAbsent),
		rec(s1, "2026-03-02", recordModel.AttendanceLate),
		rec(s2, "2026-03-02", recordModel.AttendanceLeave),
	}

	got := Summarize(records)
	assert.Equal(t, 4, got.Total)
	assert.Equal(t, 1, got.Present)
	assert.Equal(t, 1, got.Absent)
	assert.Equal(t, 1, got.Late)
	assert.Equal(t, 1, got.Leave)
	assert.InDelta(t, 0.25, got.AttendanceRate, 1e-9)
}

func TestSummarize_Empty(t *testing.T) {
	got := Summarize(nil)
	assert.Equal(t, 0, got.Total)
	assert.Equal(t, 0.0, got.AttendanceRate) // tidak pernah NaN
}

func TestDailyTrend_GapFree(t *testing.T) {
	s1 := uuid.New()
	records := []recordModel.AttendanceRecordModel{
		rec(s1, "2026-03-01", recordModel.AttendancePresent),
		rec(s1, "2026-03-03", recordModel.AttendanceAbsent),
	}

	start, end := day("2026-03-01"), day("2026-03-05")
	got := DailyTrend(records, start, end)

	require.Len(t, got, helper.DaysInclusive(start, end))
	assert.Equal(t, "2026-03-01", got[0].Date)
	assert.Equal(t, 1, got[0].Present)

	// 2 Maret tanpa record: titik tetap ada, semua nol
	assert.Equal(t, "2026-03-02", got[1].Date)
	assert.Equal(t, 0, got[1].Total)

	assert.Equal(t, "2026-03-03", got[2].Date)
	assert.Equal(t, 1, got[2].Absent)
	assert.Equal(t, 0, got[4].Total)
}

func TestClassBreakdown(t *testing.T) {
	classA, classB := uuid.New(), uuid.New()
	names := map[uuid.UUID]string{classA: "7A", classB: "8B"}
	s1, s2, s3 := uuid.New(), uuid.New(), uuid.New()

	staffRec := rec(uuid.New(), "2026-03-01", recordModel.AttendancePresent)
	staffRec.AttendanceRecordSubjectKind = recordModel.SubjectStaff

	records := []recordModel.AttendanceRecordModel{
		recInClass(s1, classA, "2026-03-01", recordModel.AttendancePresent),
		recInClass(s2, classA, "2026-03-01", recordModel.AttendanceAbsent),
		recInClass(s3, classB, "2026-03-01", recordModel.AttendanceLate),
		staffRec, // staff tidak pernah masuk breakdown kelas
	}

	got := ClassBreakdown(records, names)
	require.Len(t, got, 2)

	// urut nama kelas
	assert.Equal(t, "7A", got[0].ClassName)
	assert.Equal(t, 2, got[0].Total)
	assert.Equal(t, 1, got[0].Present)
	assert.InDelta(t, 0.5, got[0].AttendanceRate, 1e-9)

	assert.Equal(t, "8B", got[1].ClassName)
	assert.Equal(t, 1, got[1].Total)
	assert.Equal(t, 0, got[1].Present)
}

func TestLowAttendance_StrictThreshold(t *testing.T) {
	rule := ruleModel.DefaultAttendanceRule(uuid.New())
	rule.AttendanceRuleMinimumAttendancePercentage = 75

	classA := uuid.New()
	low, borderline, healthy := uuid.New(), uuid.New(), uuid.New()
	names := map[uuid.UUID]string{low: "Budi", borderline: "Sari", healthy: "Andi"}

	var records []recordModel.AttendanceRecordModel
	// Budi: 3 present dari 10 → 30%, jauh di bawah ambang
	for i := 1; i <= 10; i++ {
		status := recordModel.AttendanceAbsent
		if i <= 3 {
			status = recordModel.AttendancePresent
		}
		records = append(records, recInClass(low, classA, dayStr(i), status))
	}
	// Sari: 3 present dari 4 → tepat 75%, TIDAK ditandai (strictly below)
	for i := 1; i <= 4; i++ {
		status := recordModel.AttendancePresent
		if i == 4 {
			status = recordModel.AttendanceAbsent
		}
		records = append(records, recInClass(borderline, classA, dayStr(i), status))
	}
	// Andi: full present
	for i := 1; i <= 5; i++ {
		records = append(records, recInClass(healthy, classA, dayStr(i), recordModel.AttendancePresent))
	}

	got := LowAttendance(records, &rule, names, map[uuid.UUID]string{classA: "7A"})
	require.Len(t, got, 1)
	assert.Equal(t, low.String(), got[0].SubjectID)
	assert.Equal(t, "Budi", got[0].SubjectName)
	assert.Equal(t, "7A", got[0].ClassName)
	assert.InDelta(t, 30.0, got[0].AttendancePercentage, 1e-9)
}

func TestLowAttendance_LeaveDoesNotCount(t *testing.T) {
	rule := ruleModel.DefaultAttendanceRule(uuid.New())
	rule.AttendanceRuleMinimumAttendancePercentage = 75

	onlyLeave := uuid.New()
	records := []recordModel.AttendanceRecordModel{
		rec(onlyLeave, "2026-03-01", recordModel.AttendanceLeave),
		rec(onlyLeave, "2026-03-02", recordModel.AttendanceLeave),
	}

	// hanya leave → penyebut nol → dikecualikan, bukan 0%
	got := LowAttendance(records, &rule, nil, nil)
	assert.Empty(t, got)
}

func TestLowAttendance_WorstFirst(t *testing.T) {
	rule := ruleModel.DefaultAttendanceRule(uuid.New())
	rule.AttendanceRuleMinimumAttendancePercentage = 75

	worse, bad := uuid.New(), uuid.New()
	records := []recordModel.AttendanceRecordModel{
		// worse: 0 dari 2 → 0%
		rec(worse, "2026-03-01", recordModel.AttendanceAbsent),
		rec(worse, "2026-03-02", recordModel.AttendanceAbsent),
		// bad: 1 dari 2 → 50%
		rec(bad, "2026-03-01", recordModel.AttendancePresent),
		rec(bad, "2026-03-02", recordModel.AttendanceAbsent),
	}

	got := LowAttendance(records, &rule, nil, nil)
	require.Len(t, got, 2)
	assert.Equal(t, worse.String(), got[0].SubjectID)
	assert.Equal(t, bad.String(), got[1].SubjectID)
}

func TestSummarizeByDepartment(t *testing.T) {
	dep := "TU"
	withDep := rec(uuid.New(), "2026-03-01", recordModel.AttendancePresent)
	withDep.AttendanceRecordSubjectKind = recordModel.SubjectStaff
	withDep.AttendanceRecordDepartment = &dep

	noDep := rec(uuid.New(), "2026-03-01", recordModel.AttendanceAbsent)
	noDep.AttendanceRecordSubjectKind = recordModel.SubjectStaff

	got := SummarizeByDepartment([]recordModel.AttendanceRecordModel{withDep, noDep})
	require.Contains(t, got, "TU")
	require.Contains(t, got, "-")
	assert.Equal(t, 1, got["TU"]["present"])
	assert.Equal(t, 1, got["TU"]["total"])
	assert.Equal(t, 1, got["-"]["absent"])
}

func TestCompute(t *testing.T) {
	rule := ruleModel.DefaultAttendanceRule(uuid.New())
	classA := uuid.New()
	s1 := uuid.New()

	records := []recordModel.AttendanceRecordModel{
		recInClass(s1, classA, "2026-03-01", recordModel.AttendanceAbsent),
	}

	got := Compute(records, &rule, day("2026-03-01"), day("2026-03-03"),
		map[uuid.UUID]string{s1: "Budi"}, map[uuid.UUID]string{classA: "7A"})

	assert.Equal(t, 1, got.Summary.Total)
	assert.Len(t, got.DailyTrend, 3)
	require.Len(t, got.ClassSummary, 1)
	assert.Equal(t, "7A", got.ClassSummary[0].ClassName)
	require.Len(t, got.LowAttendanceStudents, 1)
	assert.Equal(t, "Budi", got.LowAttendanceStudents[0].SubjectName)
}

func dayStr(i int) string {
	return day("2026-03-01").AddDate(0, 0, i-1).Format(helper.DateLayout)
}
