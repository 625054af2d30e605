package roster

import "time"

// Defaulting policy for assignment dates, kept separate from the
// transaction logic so it can be tested on its own.

// DefaultStartDate resolves an optional assignment start date: absent
// means today.
func DefaultStartDate(d *time.Time, now time.Time) time.Time {
	if d == nil {
		return DateOnly(now)
	}
	return DateOnly(*d)
}

// DefaultPreviousEnd resolves the closing date for a superseded
// assignment: absent means the new assignment's start date.
func DefaultPreviousEnd(d *time.Time, startDate time.Time) time.Time {
	if d == nil {
		return DateOnly(startDate)
	}
	return DateOnly(*d)
}

// DefaultEndDate resolves an optional unassign end date: absent means
// today.
func DefaultEndDate(d *time.Time, now time.Time) time.Time {
	if d == nil {
		return DateOnly(now)
	}
	return DateOnly(*d)
}
