package domain

import "time"

const (
	ReasonTransfer = "transfer"
	ReasonReplaced = "replaced"
)

// Assignment is the historical record of a guard occupying one slot of a
// post for a date range. Records are closed, never deleted; a new period
// always means a new record.
type Assignment struct {
	ID             int64      `json:"id"`
	OrganizationID int64      `json:"organizationID"`
	GuardID        int64      `json:"guardID"`
	PostID         int64      `json:"postID"`
	SlotNumber     int32      `json:"slotNumber"`
	InstallationID int64      `json:"installationID"`
	StartDate      time.Time  `json:"startDate"`
	EndDate        *time.Time `json:"endDate"`
	IsActive       bool       `json:"isActive"`
	Reason         string     `json:"reason"`
	CreatedBy      int64      `json:"createdBy"`
	CreatedAt      time.Time  `json:"createdAt"`
}

// AssignmentListItem is the list projection joined with guard, post and
// installation summaries.
type AssignmentListItem struct {
	Assignment
	GuardName        string `json:"guardName"`
	PostName         string `json:"postName"`
	InstallationName string `json:"installationName"`
	Account          string `json:"account"`
}

// ActiveAssignmentInfo is the checkActive summary callers use to warn
// before reassigning a guard.
type ActiveAssignmentInfo struct {
	AssignmentID     int64     `json:"assignmentID"`
	PostID           int64     `json:"postID"`
	PostName         string    `json:"postName"`
	SlotNumber       int32     `json:"slotNumber"`
	InstallationID   int64     `json:"installationID"`
	InstallationName string    `json:"installationName"`
	Account          string    `json:"account"`
	StartDate        time.Time `json:"startDate"`
}

type AssignmentFilters struct {
	InstallationID *int64
	PostID         *int64
	GuardID        *int64
	ActiveOnly     bool
}
