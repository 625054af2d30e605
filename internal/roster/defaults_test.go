package roster

import (
	"testing"
	"time"
)

func TestDefaultStartDate(t *testing.T) {
	now := time.Date(2026, time.May, 12, 16, 30, 0, 0, time.UTC)

	if got := DefaultStartDate(nil, now); !got.Equal(date(2026, time.May, 12)) {
		t.Errorf("DefaultStartDate(nil) = %s, want 2026-05-12", got)
	}

	explicit := time.Date(2026, time.June, 1, 9, 0, 0, 0, time.UTC)
	if got := DefaultStartDate(&explicit, now); !got.Equal(date(2026, time.June, 1)) {
		t.Errorf("DefaultStartDate(explicit) = %s, want 2026-06-01", got)
	}
}

func TestDefaultPreviousEnd(t *testing.T) {
	start := date(2026, time.May, 12)

	if got := DefaultPreviousEnd(nil, start); !got.Equal(start) {
		t.Errorf("DefaultPreviousEnd(nil) = %s, want the new start date", got)
	}

	explicit := date(2026, time.May, 10)
	if got := DefaultPreviousEnd(&explicit, start); !got.Equal(explicit) {
		t.Errorf("DefaultPreviousEnd(explicit) = %s, want 2026-05-10", got)
	}
}

func TestDefaultEndDate(t *testing.T) {
	now := time.Date(2026, time.May, 12, 3, 0, 0, 0, time.UTC)

	if got := DefaultEndDate(nil, now); !got.Equal(date(2026, time.May, 12)) {
		t.Errorf("DefaultEndDate(nil) = %s, want 2026-05-12", got)
	}

	explicit := date(2026, time.May, 31)
	if got := DefaultEndDate(&explicit, now); !got.Equal(explicit) {
		t.Errorf("DefaultEndDate(explicit) = %s, want 2026-05-31", got)
	}
}
