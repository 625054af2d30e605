package roster

import (
	"time"

	"github.com/serviguard/roster/backend/internal/domain"
)

// CloseAction is one close decided by PlanAssign: the clamped end date,
// the ledger reason, and whether the slot's future planned cells must be
// scrubbed from ScrubFrom on.
type CloseAction struct {
	EndDate   time.Time
	Reason    string
	Scrub     bool
	ScrubFrom time.Time
}

// ClampEndDate keeps an assignment's end date from preceding its start;
// closed records always satisfy endDate >= startDate.
func ClampEndDate(end, start time.Time) time.Time {
	if end.Before(start) {
		return start
	}
	return end
}

// PlanAssign decides how an assignment change closes the records in its
// way. The guard's previous assignment closes as a transfer and its old
// slot is scrubbed, unless the change re-pins the guard to the same
// slot. The current holder of the target slot closes as replaced and
// always loses its future planned cells from the new start date on.
// The transaction script executes exactly what is planned here.
func PlanAssign(target domain.Assignment, prev, displaced *domain.Assignment, previousEnd time.Time) (closePrev, closeDisplaced *CloseAction) {
	if prev != nil {
		end := ClampEndDate(previousEnd, prev.StartDate)
		closePrev = &CloseAction{
			EndDate:   end,
			Reason:    domain.ReasonTransfer,
			Scrub:     prev.PostID != target.PostID || prev.SlotNumber != target.SlotNumber,
			ScrubFrom: end,
		}
	}

	if displaced != nil {
		closeDisplaced = &CloseAction{
			EndDate:   ClampEndDate(target.StartDate, displaced.StartDate),
			Reason:    domain.ReasonReplaced,
			Scrub:     true,
			ScrubFrom: target.StartDate,
		}
	}

	return closePrev, closeDisplaced
}
