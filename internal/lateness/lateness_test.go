package lateness

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var jakarta = time.FixedZone("WIB", 7*60*60)

func TestEvaluate(t *testing.T) {
	start := Clock{Hour: 7, Minute: 0}
	cutoff := time.Date(2026, time.March, 2, 7, 0, 0, 0, jakarta)

	tests := []struct {
		name    string
		checkIn time.Time
		want    Result
	}{
		{"exactly on time", cutoff, Result{IsLate: false, MinutesLate: 0}},
		{"before start", cutoff.Add(-15 * time.Minute), Result{IsLate: false, MinutesLate: 0}},
		{"one millisecond late", cutoff.Add(time.Millisecond), Result{IsLate: true, MinutesLate: 0}},
		{"ten minutes late", cutoff.Add(10 * time.Minute), Result{IsLate: true, MinutesLate: 10}},
		{"ninety minutes late", cutoff.Add(90 * time.Minute), Result{IsLate: true, MinutesLate: 90}},
		{"floors partial minutes", cutoff.Add(5*time.Minute + 59*time.Second), Result{IsLate: true, MinutesLate: 5}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Evaluate(tt.checkIn, start))
		})
	}
}

func TestCutoff_UsesCheckInCalendarDay(t *testing.T) {
	checkIn := time.Date(2026, time.March, 2, 23, 30, 0, 0, jakarta)

	cutoff := Cutoff(checkIn, Clock{Hour: 7, Minute: 15})

	assert.Equal(t, time.Date(2026, time.March, 2, 7, 15, 0, 0, jakarta), cutoff)
}

func TestCutoff_ZoneMatters(t *testing.T) {
	// 00:30 UTC - это 07:30 в Джакарте того же дня
	utc := time.Date(2026, time.March, 2, 0, 30, 0, 0, time.UTC)

	res := Evaluate(utc.In(jakarta), Clock{Hour: 7, Minute: 0})

	assert.True(t, res.IsLate)
	assert.Equal(t, 30, res.MinutesLate)
}

func TestParseClock(t *testing.T) {
	c, err := ParseClock("07:05")
	require.NoError(t, err)
	assert.Equal(t, Clock{Hour: 7, Minute: 5}, c)
	assert.Equal(t, "07:05", c.String())

	_, err = ParseClock("7am")
	assert.Error(t, err)
}

func TestEvaluateString(t *testing.T) {
	checkIn := time.Date(2026, time.March, 2, 7, 10, 0, 0, jakarta)

	res, err := EvaluateString(checkIn, "07:00")
	require.NoError(t, err)
	assert.Equal(t, Result{IsLate: true, MinutesLate: 10}, res)

	_, err = EvaluateString(checkIn, "")
	assert.Error(t, err)
}
