package domain

import (
	"slices"
	"time"
)

// Post is a duty position inside an installation. A post exposes
// RequiredGuards concurrent seats (slots) numbered from 1; every
// assignment and roster cell references one of those slots.
type Post struct {
	ID             int64      `json:"id"`
	OrganizationID int64      `json:"organizationID"`
	InstallationID int64      `json:"installationID"`
	Name           string     `json:"name"`
	ShiftStart     string     `json:"shiftStart"` // "15:04:05"
	ShiftEnd       string     `json:"shiftEnd"`
	Weekdays       []int32    `json:"weekdays"` // 1 = Monday ... 7 = Sunday
	RequiredGuards int32      `json:"requiredGuards"`
	ActiveFrom     time.Time  `json:"activeFrom"`
	ActiveUntil    *time.Time `json:"activeUntil"`
	CreatedAt      time.Time  `json:"createdAt"`
	Version        int32      `json:"-"`
}

// CoversWeekday reports whether the post operates on the ISO weekday
// (1 = Monday ... 7 = Sunday) of the given date. An empty mask means
// the post operates every day.
func (p *Post) CoversWeekday(day time.Time) bool {
	if len(p.Weekdays) == 0 {
		return true
	}
	iso := int32(day.Weekday())
	if iso == 0 {
		iso = 7
	}
	return slices.Contains(p.Weekdays, iso)
}

// OperatesOn reports whether the post operates on the given date: the
// date falls inside the active window and the weekday mask covers it.
func (p *Post) OperatesOn(day time.Time) bool {
	if !p.CoversWeekday(day) {
		return false
	}
	if day.Before(dateOnly(p.ActiveFrom)) {
		return false
	}
	if p.ActiveUntil != nil && day.After(dateOnly(*p.ActiveUntil)) {
		return false
	}
	return true
}

func dateOnly(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func (p *Post) HasSlot(slotNumber int32) bool {
	return slotNumber >= 1 && slotNumber <= p.RequiredGuards
}

// WeekdayMask packs ISO weekdays (1-7) into a bitmask for storage; bit 0
// is Monday.
func WeekdayMask(days []int32) int32 {
	var mask int32
	for _, d := range days {
		if d >= 1 && d <= 7 {
			mask |= 1 << (d - 1)
		}
	}
	return mask
}

func WeekdaysFromMask(mask int32) []int32 {
	days := make([]int32, 0, 7)
	for d := int32(1); d <= 7; d++ {
		if mask&(1<<(d-1)) != 0 {
			days = append(days, d)
		}
	}
	return days
}
