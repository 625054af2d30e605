package domain

import "time"

// Shift codes carried by roster cells. Work-bearing codes also carry the
// planned-guard reference; the informational codes (vacation, leave,
// permit) coexist with whatever guard reference was previously set.
const (
	ShiftCodeWork     = "work"
	ShiftCodeRest     = "rest"
	ShiftCodeDay      = "day"   // work, day leg of a rotating pair
	ShiftCodeNight    = "night" // work, night leg of a rotating pair
	ShiftCodeVacation = "vacation"
	ShiftCodeLeave    = "leave"
	ShiftCodePermit   = "permit"
	ShiftCodeNone     = ""
)

// WorkCode reports whether a shift code marks a worked day, i.e. whether
// the cell carries the planned-guard reference when painted.
func WorkCode(code string) bool {
	return code == ShiftCodeWork || code == ShiftCodeDay || code == ShiftCodeNight
}

// RosterCell is the smallest schedulable unit: one day of one slot.
// Keyed by (post, slot, day) within an organization.
type RosterCell struct {
	OrganizationID int64     `json:"organizationID"`
	PostID         int64     `json:"postID"`
	SlotNumber     int32     `json:"slotNumber"`
	Day            time.Time `json:"day"`
	ShiftCode      string    `json:"shiftCode"`
	PlannedGuardID *int64    `json:"plannedGuardID"`
	Status         string    `json:"status"`
	Notes          string    `json:"notes"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
