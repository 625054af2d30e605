package roster

import (
	"testing"
	"time"

	"github.com/serviguard/roster/backend/internal/domain"
)

func TestClampEndDate(t *testing.T) {
	start := date(2026, time.March, 10)

	if got := ClampEndDate(date(2026, time.March, 20), start); !got.Equal(date(2026, time.March, 20)) {
		t.Errorf("end after start clamped to %s", got)
	}
	if got := ClampEndDate(date(2026, time.March, 1), start); !got.Equal(start) {
		t.Errorf("end before start = %s, want the start date", got)
	}
	if got := ClampEndDate(start, start); !got.Equal(start) {
		t.Errorf("end equal to start = %s, want the start date", got)
	}
}

func TestPlanAssignTransfer(t *testing.T) {
	target := domain.Assignment{PostID: 2, SlotNumber: 1, StartDate: date(2026, time.April, 1)}
	prev := &domain.Assignment{PostID: 1, SlotNumber: 1, StartDate: date(2026, time.January, 10)}

	closePrev, closeDisplaced := PlanAssign(target, prev, nil, date(2026, time.March, 31))
	if closeDisplaced != nil {
		t.Fatal("no displaced record, expected no displacement close")
	}
	if closePrev == nil {
		t.Fatal("previous assignment must be closed")
	}
	if closePrev.Reason != domain.ReasonTransfer {
		t.Errorf("reason = %q, want %q", closePrev.Reason, domain.ReasonTransfer)
	}
	if !closePrev.EndDate.Equal(date(2026, time.March, 31)) {
		t.Errorf("end date = %s, want 2026-03-31", closePrev.EndDate)
	}
	if !closePrev.Scrub {
		t.Error("old slot must be scrubbed when the guard moves to another slot")
	}
	if !closePrev.ScrubFrom.Equal(closePrev.EndDate) {
		t.Errorf("scrub from %s, want the close date", closePrev.ScrubFrom)
	}
}

func TestPlanAssignClampsPreviousEnd(t *testing.T) {
	target := domain.Assignment{PostID: 2, SlotNumber: 1, StartDate: date(2026, time.April, 1)}
	prev := &domain.Assignment{PostID: 1, SlotNumber: 1, StartDate: date(2026, time.March, 15)}

	// requested close date precedes the record's start
	closePrev, _ := PlanAssign(target, prev, nil, date(2026, time.March, 1))
	if !closePrev.EndDate.Equal(prev.StartDate) {
		t.Errorf("end date = %s, want clamped to the start date %s", closePrev.EndDate, prev.StartDate)
	}
}

func TestPlanAssignSameSlotSkipsScrub(t *testing.T) {
	// re-pinning the guard to the slot it already holds must not null
	// the guard's own future cells
	target := domain.Assignment{PostID: 3, SlotNumber: 2, StartDate: date(2026, time.April, 1)}
	prev := &domain.Assignment{PostID: 3, SlotNumber: 2, StartDate: date(2026, time.January, 1)}

	closePrev, _ := PlanAssign(target, prev, nil, date(2026, time.March, 31))
	if closePrev == nil {
		t.Fatal("previous assignment must still be closed")
	}
	if closePrev.Scrub {
		t.Error("same-slot change must not scrub the slot's planned cells")
	}
}

func TestPlanAssignDisplacement(t *testing.T) {
	target := domain.Assignment{PostID: 2, SlotNumber: 1, StartDate: date(2026, time.April, 1)}
	displaced := &domain.Assignment{PostID: 2, SlotNumber: 1, StartDate: date(2026, time.February, 1)}

	closePrev, closeDisplaced := PlanAssign(target, nil, displaced, target.StartDate)
	if closePrev != nil {
		t.Fatal("no previous record, expected no transfer close")
	}
	if closeDisplaced == nil {
		t.Fatal("slot holder must be closed")
	}
	if closeDisplaced.Reason != domain.ReasonReplaced {
		t.Errorf("reason = %q, want %q", closeDisplaced.Reason, domain.ReasonReplaced)
	}
	if !closeDisplaced.EndDate.Equal(target.StartDate) {
		t.Errorf("end date = %s, want the new start date", closeDisplaced.EndDate)
	}
	if !closeDisplaced.Scrub {
		t.Error("displaced guard must lose its future planned cells")
	}
	if !closeDisplaced.ScrubFrom.Equal(target.StartDate) {
		t.Errorf("scrub from %s, want the new start date", closeDisplaced.ScrubFrom)
	}
}

func TestPlanAssignClampsDisplacedEnd(t *testing.T) {
	// the displaced record started after the incoming start date
	target := domain.Assignment{PostID: 2, SlotNumber: 1, StartDate: date(2026, time.April, 1)}
	displaced := &domain.Assignment{PostID: 2, SlotNumber: 1, StartDate: date(2026, time.April, 10)}

	_, closeDisplaced := PlanAssign(target, nil, displaced, target.StartDate)
	if !closeDisplaced.EndDate.Equal(displaced.StartDate) {
		t.Errorf("end date = %s, want clamped to the displaced start %s", closeDisplaced.EndDate, displaced.StartDate)
	}
}

func TestPlanAssignFreeSlotFreeGuard(t *testing.T) {
	target := domain.Assignment{PostID: 2, SlotNumber: 1, StartDate: date(2026, time.April, 1)}

	closePrev, closeDisplaced := PlanAssign(target, nil, nil, target.StartDate)
	if closePrev != nil || closeDisplaced != nil {
		t.Error("nothing to close when the guard and the slot are both free")
	}
}
