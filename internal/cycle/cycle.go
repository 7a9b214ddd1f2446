// Package cycle holds the pure date arithmetic behind the dashboard health
// card: current cycle day and current pregnancy week. Both functions are
// deterministic, hold no state and perform no I/O; callers re-evaluate them
// on every request.
package cycle

import "time"

// DefaultCycleLength is assumed when a profile has no cycle length recorded.
const DefaultCycleLength = 28

// FullTermWeeks is the reference pregnancy length used for progress display.
const FullTermWeeks = 40

// Day returns the 1-indexed day within the menstrual cycle for today,
// given the last recorded period start. The result is always within
// [1, cycleLength]. A non-positive cycleLength falls back to
// DefaultCycleLength. If today precedes periodStart the result clamps to
// day 1: it is the only in-range value that stays stable as the start date
// approaches.
func Day(periodStart time.Time, cycleLength int, today time.Time) int {
	if cycleLength <= 0 {
		cycleLength = DefaultCycleLength
	}
	elapsed := wholeDays(periodStart, today)
	if elapsed < 0 {
		return 1
	}
	return elapsed%cycleLength + 1
}

// DaysUntilNext returns how many days remain until the next expected period
// start, derived from Day with the same inputs.
func DaysUntilNext(periodStart time.Time, cycleLength int, today time.Time) int {
	if cycleLength <= 0 {
		cycleLength = DefaultCycleLength
	}
	return cycleLength - Day(periodStart, cycleLength, today) + 1
}

// PregnancyWeek returns the 1-indexed gestational week for today. The week
// number is floored at 1 and has no upper bound; weeks past full term are
// not rejected.
func PregnancyWeek(pregnancyStart, today time.Time) int {
	week := wholeDays(pregnancyStart, today)/7 + 1
	if week < 1 {
		return 1
	}
	return week
}

// PregnancyProgress returns the ratio of the current week to full term,
// clamped to 1.0. Only the displayed ratio is clamped, never the week.
func PregnancyProgress(pregnancyStart, today time.Time) float64 {
	progress := float64(PregnancyWeek(pregnancyStart, today)) / FullTermWeeks
	if progress > 1 {
		return 1
	}
	return progress
}

// wholeDays counts full calendar days from a to b, ignoring the time of day
// so that a period recorded this morning still counts as day 1 tonight.
func wholeDays(a, b time.Time) int {
	a = time.Date(a.Year(), a.Month(), a.Day(), 0, 0, 0, 0, time.UTC)
	b = time.Date(b.Year(), b.Month(), b.Day(), 0, 0, 0, 0, time.UTC)
	return int(b.Sub(a).Hours() / 24)
}
