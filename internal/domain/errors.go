package domain

import "errors"

// Business errors. Each one maps to a stable machine code in the HTTP
// envelope so callers can branch without parsing messages.
var (
	ErrGuardNotFound        = errors.New("guard not found")
	ErrPostNotFound         = errors.New("post not found")
	ErrInstallationNotFound = errors.New("installation not found")
	ErrAssignmentNotFound   = errors.New("active assignment not found")
	ErrGuardIneligible      = errors.New("guard status does not allow assignment")
	ErrGuardBlacklisted     = errors.New("guard is blacklisted")
	ErrSlotExceedsDotation  = errors.New("slot number exceeds the post's required guards")
	ErrInvalidPattern       = errors.New("invalid pattern bounds")
	ErrAssignmentConflict   = errors.New("a concurrent assignment won the slot or the guard, retry")
	ErrOperationInProgress  = errors.New("another operation on this guard or slot is in progress")
)

// ErrorCode returns the stable machine code for a business error, or
// "internal" for anything unrecognized.
func ErrorCode(err error) string {
	switch {
	case errors.Is(err, ErrGuardNotFound):
		return "guard_not_found"
	case errors.Is(err, ErrPostNotFound):
		return "post_not_found"
	case errors.Is(err, ErrInstallationNotFound):
		return "installation_not_found"
	case errors.Is(err, ErrAssignmentNotFound):
		return "assignment_not_found"
	case errors.Is(err, ErrGuardIneligible):
		return "guard_ineligible"
	case errors.Is(err, ErrGuardBlacklisted):
		return "guard_blacklisted"
	case errors.Is(err, ErrSlotExceedsDotation):
		return "slot_exceeds_dotation"
	case errors.Is(err, ErrInvalidPattern):
		return "invalid_pattern"
	case errors.Is(err, ErrAssignmentConflict):
		return "conflict"
	case errors.Is(err, ErrOperationInProgress):
		return "locked"
	default:
		return "internal"
	}
}
