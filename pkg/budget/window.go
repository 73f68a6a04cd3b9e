package budget

import (
	"time"

	log "github.com/sirupsen/logrus"
)

// WindowEnd returns the end of the budget window starting at start for
// the given period. An unrecognized period is treated as monthly with a
// warning instead of failing.
func WindowEnd(start time.Time, period Period) time.Time {
	switch period {
	case PeriodWeekly:
		return start.AddDate(0, 0, 7)
	case PeriodMonthly:
		return addMonthsClamped(start, 1)
	case PeriodYearly:
		return addMonthsClamped(start, 12)
	default:
		log.Warnf("unknown budget period %q, assuming monthly", period)
		return addMonthsClamped(start, 1)
	}
}

// addMonthsClamped advances by whole calendar months, clamping the day of
// month to the last valid day of the target month. time.AddDate would
// normalize Jan 31 plus one month into early March.
func addMonthsClamped(t time.Time, months int) time.Time {
	firstOfTarget := time.Date(t.Year(), t.Month()+time.Month(months), 1,
		t.Hour(), t.Minute(), t.Second(), t.Nanosecond(), t.Location())
	day := t.Day()
	if last := daysIn(firstOfTarget.Year(), firstOfTarget.Month()); day > last {
		day = last
	}
	return firstOfTarget.AddDate(0, 0, day-1)
}

func daysIn(year int, month time.Month) int {
	return time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
}
