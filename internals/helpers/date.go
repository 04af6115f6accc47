// file: internals/helpers/date.go
package helper

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDateYMD: parse "YYYY-MM-DD" menjadi tanggal kalender (UTC, jam 00:00).
func ParseDateYMD(s string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("format tanggal tidak valid (pakai YYYY-MM-DD): %w", err)
	}
	return t.UTC(), nil
}

// NormalizeDate: buang komponen jam; kehadiran adalah fakta per hari.
func NormalizeDate(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// DaysInclusive: jumlah hari kalender di [start, end] inklusif. 0 kalau range terbalik.
func DaysInclusive(start, end time.Time) int {
	s := NormalizeDate(start)
	e := NormalizeDate(end)
	if e.Before(s) {
		return 0
	}
	return int(e.Sub(s).Hours()/24) + 1
}

// EachDay: panggil fn untuk setiap hari kalender di [start, end] inklusif, urut naik.
func EachDay(start, end time.Time, fn func(d time.Time)) {
	s := NormalizeDate(start)
	e := NormalizeDate(end)
	for d := s; !d.After(e); d = d.AddDate(0, 0, 1) {
		fn(d)
	}
}

// ParseClockHHMM: parse "HH:MM" menjadi menit sejak tengah malam.
func ParseClockHHMM(s string) (int, error) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) != 2 {
		return 0, fmt.Errorf("format jam tidak valid (pakai HH:MM): %q", s)
	}
	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("jam tidak valid: %q", s)
	}
	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("menit tidak valid: %q", s)
	}
	return h*60 + m, nil
}
