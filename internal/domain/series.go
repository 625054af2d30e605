package domain

import "time"

const (
	ShiftLegDay   = "day"
	ShiftLegNight = "night"
)

// Series is the active rotation-pattern definition governing one slot's
// calendar projection. At most one series per (post, slot); repainting
// replaces it and reassignment repoints its guard.
type Series struct {
	ID                int64     `json:"id"`
	OrganizationID    int64     `json:"organizationID"`
	PostID            int64     `json:"postID"`
	SlotNumber        int32     `json:"slotNumber"`
	PatternCode       string    `json:"patternCode"`
	WorkDays          int32     `json:"workDays"`
	RestDays          int32     `json:"restDays"`
	StartPosition     int32     `json:"startPosition"`
	StartDate         time.Time `json:"startDate"`
	IsRotating        bool      `json:"isRotating"`
	CounterpartPostID *int64    `json:"counterpartPostID"`
	CounterpartSlot   *int32    `json:"counterpartSlot"`
	StartShift        string    `json:"startShift"` // "day" or "night" when rotating
	GuardID           *int64    `json:"guardID"`
	CreatedAt         time.Time `json:"createdAt"`
	Version           int32     `json:"-"`
}
