package helper

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDateYMD(t *testing.T) {
	d, err := ParseDateYMD("2026-03-15")
	require.NoError(t, err)
	assert.Equal(t, 2026, d.Year())
	assert.Equal(t, time.March, d.Month())
	assert.Equal(t, 15, d.Day())
	assert.Equal(t, time.UTC, d.Location())

	_, err = ParseDateYMD("15-03-2026")
	assert.Error(t, err)

	_, err = ParseDateYMD("")
	assert.Error(t, err)
}

func TestDaysInclusive(t *testing.T) {
	start, _ := ParseDateYMD("2026-03-01")
	end, _ := ParseDateYMD("2026-03-07")

	assert.Equal(t, 7, DaysInclusive(start, end))
	assert.Equal(t, 1, DaysInclusive(start, start))
	assert.Equal(t, 0, DaysInclusive(end, start))
}

func TestEachDay(t *testing.T) {
	start, _ := ParseDateYMD("2026-02-27")
	end, _ := ParseDateYMD("2026-03-02")

	var got []string
	EachDay(start, end, func(d time.Time) {
		got = append(got, d.Format(DateLayout))
	})

	assert.Equal(t, []string{"2026-02-27", "2026-02-28", "2026-03-01", "2026-03-02"}, got)
}

func TestParseClockHHMM(t *testing.T) {
	tests := []struct {
		in      string
		want    int
		wantErr bool
	}{
		{"00:00", 0, false},
		{"07:00", 420, false},
		{"07:15", 435, false},
		{"23:59", 1439, false},
		{"7:00", 420, false},
		{"24:00", 0, true},
		{"07:60", 0, true},
		{"0700", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseClockHHMM(tt.in)
		if tt.wantErr {
			assert.Error(t, err, "input %q", tt.in)
			continue
		}
		require.NoError(t, err, "input %q", tt.in)
		assert.Equal(t, tt.want, got, "input %q", tt.in)
	}
}

func TestNormalizeDate(t *testing.T) {
	loc := time.FixedZone("WIB", 7*3600)
	d := NormalizeDate(time.Date(2026, 3, 15, 23, 45, 0, 0, loc))

	assert.Equal(t, "2026-03-15", d.Format(DateLayout))
	assert.Equal(t, 0, d.Hour())
	assert.Equal(t, time.UTC, d.Location())
}
