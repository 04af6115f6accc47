package service

import (
	"sort"
	"time"

	"github.com/google/uuid"

	recordModel "schoolku_backend/internals/features/attendance/records/model"
	ruleModel "schoolku_backend/internals/features/attendance/rules/model"
	helper "schoolku_backend/internals/helpers"
)

/* ===============================
   Analytics Aggregator
   Murni baca: hitung ulang dari record setiap request, tidak pernah disimpan,
   jadi selalu konsisten dengan record terbaru.
=================================*/

type Summary struct {
	Total          int     `json:"total"`
	Present        int     `json:"present"`
	Absent         int     `json:"absent"`
	Late           int     `json:"late"`
	Leave          int     `json:"leave"`
	AttendanceRate float64 `json:"attendance_rate"`
}

type DailyTrendPoint struct {
	Date    string `json:"date"`
	Present int    `json:"present"`
	Absent  int    `json:"absent"`
	Late    int    `json:"late"`
	Leave   int    `json:"leave"`
	Total   int    `json:"total"`
}

type ClassSummary struct {
	ClassID        string  `json:"class_id"`
	ClassName      string  `json:"class_name"`
	Present        int     `json:"present"`
	Absent         int     `json:"absent"`
	Late           int     `json:"late"`
	Total          int     `json:"total"`
	AttendanceRate float64 `json:"attendance_rate"`
}

type LowAttendanceEntry struct {
	SubjectID            string  `json:"subject_id"`
	SubjectName          string  `json:"subject_name"`
	ClassID              string  `json:"class_id"`
	ClassName            string  `json:"class_name"`
	Present              int     `json:"present"`
	Total                int     `json:"total"`
	AttendancePercentage float64 `json:"attendance_percentage"`
}

type Result struct {
	Summary               Summary              `json:"summary"`
	DailyTrend            []DailyTrendPoint    `json:"daily_trend"`
	ClassSummary          []ClassSummary       `json:"class_summary"`
	LowAttendanceStudents []LowAttendanceEntry `json:"low_attendance_students"`
}

// rate aman: 0 saat penyebut 0, tidak pernah bagi nol.
func safeRate(present, total int) float64 {
	if total <= 0 {
		return 0
	}
	return float64(present) / float64(total)
}

// Summarize: tally status di seluruh result set.
func Summarize(records []recordModel.AttendanceRecordModel) Summary {
	var s Summary
	for _, r := range records {
		switch r.AttendanceRecordStatus {
		case recordModel.AttendancePresent:
			s.Present++
		case recordModel.AttendanceAbsent:
			s.Absent++
		case recordModel.AttendanceLate:
			s.Late++
		case recordModel.AttendanceLeave:
			s.Leave++
		}
	}
	s.Total = s.Present + s.Absent + s.Late + s.Leave
	s.AttendanceRate = safeRate(s.Present, s.Total)
	return s
}

// SummarizeByDepartment: breakdown per departemen (untuk summary staff).
// Record tanpa departemen dikelompokkan sebagai "-".
func SummarizeByDepartment(records []recordModel.AttendanceRecordModel) map[string]map[string]int {
	out := make(map[string]map[string]int)
	for _, r := range records {
		dep := "-"
		if r.AttendanceRecordDepartment != nil && *r.AttendanceRecordDepartment != "" {
			dep = *r.AttendanceRecordDepartment
		}
		m, ok := out[dep]
		if !ok {
			m = map[string]int{"present": 0, "absent": 0, "late": 0, "leave": 0, "total": 0}
			out[dep] = m
		}
		m[string(r.AttendanceRecordStatus)]++
		m["total"]++
	}
	return out
}

// DailyTrend: bucket per tanggal; satu titik untuk SETIAP hari kalender di
// [start, end] inklusif, hari tanpa record tetap muncul dengan nol (gap-free
// untuk sumbu waktu chart), urut naik.
func DailyTrend(records []recordModel.AttendanceRecordModel, start, end time.Time) []DailyTrendPoint {
	byDay := make(map[string]*DailyTrendPoint)
	for _, r := range records {
		key := r.AttendanceRecordDate.Format(helper.DateLayout)
		p, ok := byDay[key]
		if !ok {
			p = &DailyTrendPoint{Date: key}
			byDay[key] = p
		}
		switch r.AttendanceRecordStatus {
		case recordModel.AttendancePresent:
			p.Present++
		case recordModel.AttendanceAbsent:
			p.Absent++
		case recordModel.AttendanceLate:
			p.Late++
		case recordModel.AttendanceLeave:
			p.Leave++
		}
		p.Total++
	}

	out := make([]DailyTrendPoint, 0, helper.DaysInclusive(start, end))
	helper.EachDay(start, end, func(d time.Time) {
		key := d.Format(helper.DateLayout)
		if p, ok := byDay[key]; ok {
			out = append(out, *p)
		} else {
			out = append(out, DailyTrendPoint{Date: key})
		}
	})
	return out
}

// ClassBreakdown: bucket record student per class_id. Kelas tanpa record
// TIDAK dimunculkan (beda dengan daily trend): tidak ada record berarti kelas
// tidak diminta / tidak punya siswa, bukan "hari nol" yang bermakna.
func ClassBreakdown(records []recordModel.AttendanceRecordModel, classNames map[uuid.UUID]string) []ClassSummary {
	byClass := make(map[uuid.UUID]*ClassSummary)
	for _, r := range records {
		if r.AttendanceRecordSubjectKind != recordModel.SubjectStudent || r.AttendanceRecordClassID == nil {
			continue
		}
		id := *r.AttendanceRecordClassID
		cs, ok := byClass[id]
		if !ok {
			cs = &ClassSummary{ClassID: id.String(), ClassName: classNames[id]}
			byClass[id] = cs
		}
		switch r.AttendanceRecordStatus {
		case recordModel.AttendancePresent:
			cs.Present++
		case recordModel.AttendanceAbsent:
			cs.Absent++
		case recordModel.AttendanceLate:
			cs.Late++
		}
		cs.Total++
	}

	out := make([]ClassSummary, 0, len(byClass))
	for _, cs := range byClass {
		cs.AttendanceRate = safeRate(cs.Present, cs.Total)
		out = append(out, *cs)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ClassName < out[j].ClassName })
	return out
}

type subjectInfo struct {
	Name      string
	ClassID   uuid.UUID
	ClassName string
}

// LowAttendance: siswa dengan attendance_percentage jendela DI BAWAH ambang
// (strictly less-than; pas di ambang tidak ditandai). Persentase memakai
// present/(present+absent+late): leave tidak menghukum siswa.
// Siswa tanpa record sama sekali dikecualikan: "tidak ada data" ≠ "kehadiran buruk".
// Urut dari yang paling jauh di bawah ambang (terparah dulu).
func LowAttendance(
	records []recordModel.AttendanceRecordModel,
	rule *ruleModel.AttendanceRuleModel,
	studentNames map[uuid.UUID]string,
	classNames map[uuid.UUID]string,
) []LowAttendanceEntry {
	type tally struct {
		present, absent, late int
		classID               uuid.UUID
	}
	byStudent := make(map[uuid.UUID]*tally)
	for _, r := range records {
		if r.AttendanceRecordSubjectKind != recordModel.SubjectStudent {
			continue
		}
		t, ok := byStudent[r.AttendanceRecordSubjectID]
		if !ok {
			t = &tally{}
			byStudent[r.AttendanceRecordSubjectID] = t
		}
		switch r.AttendanceRecordStatus {
		case recordModel.AttendancePresent:
			t.present++
		case recordModel.AttendanceAbsent:
			t.absent++
		case recordModel.AttendanceLate:
			t.late++
		}
		if r.AttendanceRecordClassID != nil {
			t.classID = *r.AttendanceRecordClassID
		}
	}

	out := make([]LowAttendanceEntry, 0)
	for sid, t := range byStudent {
		total := t.present + t.absent + t.late
		if total == 0 {
			continue // record-nya cuma leave: tidak ada penyebut
		}
		pct := float64(t.present) / float64(total) * 100
		if pct >= rule.AttendanceRuleMinimumAttendancePercentage {
			continue
		}
		out = append(out, LowAttendanceEntry{
			SubjectID:            sid.String(),
			SubjectName:          studentNames[sid],
			ClassID:              t.classID.String(),
			ClassName:            classNames[t.classID],
			Present:              t.present,
			Total:                total,
			AttendancePercentage: pct,
		})
	}

	// terparah dulu = persentase terkecil; tie-break stabil by id
	sort.Slice(out, func(i, j int) bool {
		if out[i].AttendancePercentage != out[j].AttendancePercentage {
			return out[i].AttendancePercentage < out[j].AttendancePercentage
		}
		return out[i].SubjectID < out[j].SubjectID
	})
	return out
}

// Compute: satu scan record → empat view analitik.
func Compute(
	records []recordModel.AttendanceRecordModel,
	rule *ruleModel.AttendanceRuleModel,
	start, end time.Time,
	studentNames map[uuid.UUID]string,
	classNames map[uuid.UUID]string,
) Result {
	return Result{
		Summary:               Summarize(records),
		DailyTrend:            DailyTrend(records, start, end),
		ClassSummary:          ClassBreakdown(records, classNames),
		LowAttendanceStudents: LowAttendance(records, rule, studentNames, classNames),
	}
}
