package roster

import (
	"time"
)

// MonthWindow is the month being painted or generated. All roster dates
// are calendar dates pinned to midnight UTC.
type MonthWindow struct {
	Year  int
	Month time.Month
}

func (w MonthWindow) First() time.Time {
	return time.Date(w.Year, w.Month, 1, 0, 0, 0, 0, time.UTC)
}

func (w MonthWindow) Last() time.Time {
	return w.First().AddDate(0, 1, -1)
}

// Days lists every date of the month in order.
func (w MonthWindow) Days() []time.Time {
	first := w.First()
	days := make([]time.Time, 0, 31)
	for d := first; d.Month() == w.Month; d = d.AddDate(0, 0, 1) {
		days = append(days, d)
	}
	return days
}

func (w MonthWindow) Contains(day time.Time) bool {
	return day.Year() == w.Year && day.Month() == w.Month
}

// DateOnly strips the time-of-day and pins the date to UTC so day
// arithmetic never crosses DST boundaries.
func DateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func daysBetween(from, to time.Time) int {
	return int(DateOnly(to).Sub(DateOnly(from)).Hours() / 24)
}
