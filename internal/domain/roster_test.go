package domain

import "testing"

func TestWorkCode(t *testing.T) {
	working := []string{ShiftCodeWork, ShiftCodeDay, ShiftCodeNight}
	for _, code := range working {
		if !WorkCode(code) {
			t.Errorf("WorkCode(%q) = false", code)
		}
	}

	notWorking := []string{ShiftCodeRest, ShiftCodeVacation, ShiftCodeLeave, ShiftCodePermit, ShiftCodeNone}
	for _, code := range notWorking {
		if WorkCode(code) {
			t.Errorf("WorkCode(%q) = true", code)
		}
	}
}

func TestErrorCode(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{ErrGuardNotFound, "guard_not_found"},
		{ErrGuardBlacklisted, "guard_blacklisted"},
		{ErrSlotExceedsDotation, "slot_exceeds_dotation"},
		{ErrInvalidPattern, "invalid_pattern"},
		{ErrAssignmentConflict, "conflict"},
		{ErrOperationInProgress, "locked"},
	}

	for _, tt := range tests {
		if got := ErrorCode(tt.err); got != tt.want {
			t.Errorf("ErrorCode(%v) = %q, want %q", tt.err, got, tt.want)
		}
	}
}
