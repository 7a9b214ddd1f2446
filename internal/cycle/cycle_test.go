package cycle

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestDay_StartDateIsDayOne(t *testing.T) {
	start := date(2025, 3, 10)
	assert.Equal(t, 1, Day(start, 28, start))
}

func TestDay_TenDaysIn(t *testing.T) {
	start := date(2025, 3, 1)
	today := start.AddDate(0, 0, 10)
	assert.Equal(t, 11, Day(start, 28, today))
}

func TestDay_WrapsAfterFullCycle(t *testing.T) {
	start := date(2025, 1, 1)
	for _, length := range []int{21, 28, 35} {
		for offset := 0; offset < length; offset++ {
			today := start.AddDate(0, 0, offset)
			day := Day(start, length, today)
			assert.GreaterOrEqual(t, day, 1)
			assert.LessOrEqual(t, day, length)
			// One full cycle later lands on the same day.
			assert.Equal(t, day, Day(start, length, today.AddDate(0, 0, length)))
		}
	}
}

func TestDay_IgnoresTimeOfDay(t *testing.T) {
	start := time.Date(2025, 3, 1, 9, 30, 0, 0, time.UTC)
	today := time.Date(2025, 3, 1, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, 1, Day(start, 28, today))
}

func TestDay_DefaultsCycleLength(t *testing.T) {
	start := date(2025, 3, 1)
	today := start.AddDate(0, 0, 28)
	assert.Equal(t, 1, Day(start, 0, today))
	assert.Equal(t, 1, Day(start, -5, today))
}

func TestDay_FutureStartClampsToOne(t *testing.T) {
	start := date(2025, 3, 10)
	today := date(2025, 3, 5)
	assert.Equal(t, 1, Day(start, 28, today))
}

func TestDaysUntilNext(t *testing.T) {
	start := date(2025, 3, 1)
	// Day 1 of a 28-day cycle: the next period is the full length away.
	assert.Equal(t, 28, DaysUntilNext(start, 28, start))
	// Day 11: 18 days remain.
	assert.Equal(t, 18, DaysUntilNext(start, 28, start.AddDate(0, 0, 10)))
}

func TestPregnancyWeek_StartIsWeekOne(t *testing.T) {
	start := date(2025, 2, 1)
	assert.Equal(t, 1, PregnancyWeek(start, start))
}

func TestPregnancyWeek_AdvancesWeekly(t *testing.T) {
	start := date(2025, 2, 1)
	for w := 0; w < 45; w++ {
		today := start.AddDate(0, 0, 7*w)
		assert.Equal(t, w+1, PregnancyWeek(start, today))
	}
}

func TestPregnancyWeek_FifteenDays(t *testing.T) {
	start := date(2025, 2, 1)
	today := start.AddDate(0, 0, 15)
	assert.Equal(t, 3, PregnancyWeek(start, today))
}

func TestPregnancyWeek_FutureStartFloorsAtOne(t *testing.T) {
	start := date(2025, 2, 10)
	assert.Equal(t, 1, PregnancyWeek(start, date(2025, 2, 1)))
}

func TestPregnancyWeek_UnboundedPastFullTerm(t *testing.T) {
	start := date(2024, 1, 1)
	today := start.AddDate(0, 0, 7*44)
	assert.Equal(t, 45, PregnancyWeek(start, today))
}

func TestPregnancyProgress_ClampsAtFullTerm(t *testing.T) {
	start := date(2024, 1, 1)
	assert.InDelta(t, 1.0/40, PregnancyProgress(start, start), 1e-9)
	assert.Equal(t, 1.0, PregnancyProgress(start, start.AddDate(0, 0, 7*50)))
}
