package roster

import (
	"fmt"
	"time"

	"github.com/serviguard/roster/backend/internal/domain"
)

// Pattern is a cyclic work/rest definition. Projection is a pure function
// of (date, pattern, offset), which is what makes repainting idempotent.
type Pattern struct {
	Code          string
	WorkDays      int32
	RestDays      int32
	StartPosition int32 // 1-based cycle offset at StartDate, lets a guard join mid-cycle
	StartDate     time.Time
}

const (
	MinWorkDays      = 1
	MaxWorkDays      = 30
	MinRestDays      = 0
	MaxRestDays      = 30
	MinStartPosition = 1
	MaxStartPosition = 60
)

// Rotation links a slot to its counterpart in a day/night pair. One team
// covers one post across two 12-hour slots; the pair stays phase-locked.
type Rotation struct {
	CounterpartPostID int64
	CounterpartSlot   int32
	StartShift        string // domain.ShiftLegDay or domain.ShiftLegNight
}

// Validate rejects a rotation that pairs a slot with itself; painting
// such a pair would overwrite the primary's legs with their complement.
func (r *Rotation) Validate(postID int64, slotNumber int32) error {
	if r.CounterpartPostID == postID && r.CounterpartSlot == slotNumber {
		return fmt.Errorf("%w: counterpart must be a different slot", domain.ErrInvalidPattern)
	}
	return nil
}

func (p Pattern) Validate() error {
	if p.WorkDays < MinWorkDays || p.WorkDays > MaxWorkDays {
		return fmt.Errorf("%w: work days must be between %d and %d", domain.ErrInvalidPattern, MinWorkDays, MaxWorkDays)
	}
	if p.RestDays < MinRestDays || p.RestDays > MaxRestDays {
		return fmt.Errorf("%w: rest days must be between %d and %d", domain.ErrInvalidPattern, MinRestDays, MaxRestDays)
	}
	if p.WorkDays+p.RestDays == 0 {
		return fmt.Errorf("%w: cycle length must not be zero", domain.ErrInvalidPattern)
	}
	if p.StartPosition < MinStartPosition || p.StartPosition > MaxStartPosition {
		return fmt.Errorf("%w: start position must be between %d and %d", domain.ErrInvalidPattern, MinStartPosition, MaxStartPosition)
	}
	if p.StartDate.IsZero() {
		return fmt.Errorf("%w: start date is required", domain.ErrInvalidPattern)
	}
	return nil
}

func (p Pattern) CycleLength() int32 {
	return p.WorkDays + p.RestDays
}

// positionOn is the zero-based position inside the cycle for a day at or
// after StartDate.
func (p Pattern) positionOn(day time.Time) int32 {
	delta := daysBetween(p.StartDate, day)
	return int32((delta + int(p.StartPosition) - 1) % int(p.CycleLength()))
}

// cycleIndexOn counts full cycles elapsed at the given day, offset
// included, so a mid-cycle start still flips legs on cycle boundaries.
func (p Pattern) cycleIndexOn(day time.Time) int {
	delta := daysBetween(p.StartDate, day)
	return (delta + int(p.StartPosition) - 1) / int(p.CycleLength())
}

// WorksOn reports whether the day falls inside the working stretch.
func (p Pattern) WorksOn(day time.Time) bool {
	return p.positionOn(day) < p.WorkDays
}

// LegOn returns the leg the primary slot works during the cycle containing
// the day: startShift on even cycles, the opposite leg on odd ones.
func (p Pattern) LegOn(day time.Time, startShift string) string {
	if p.cycleIndexOn(day)%2 == 0 {
		return startShift
	}
	return oppositeLeg(startShift)
}

func oppositeLeg(leg string) string {
	if leg == domain.ShiftLegDay {
		return domain.ShiftLegNight
	}
	return domain.ShiftLegDay
}

// ProjectedCell is one computed day of one slot, before persistence.
type ProjectedCell struct {
	Day  time.Time
	Code string
}

// Project computes the cells for every date of the window at or after the
// pattern's start date. For a rotating pair it also returns the
// counterpart slot's cells: same work/rest dates, complementary leg.
func (p Pattern) Project(window MonthWindow, rot *Rotation) (primary, counterpart []ProjectedCell) {
	start := DateOnly(p.StartDate)

	for _, day := range window.Days() {
		if day.Before(start) {
			continue
		}

		if !p.WorksOn(day) {
			primary = append(primary, ProjectedCell{Day: day, Code: domain.ShiftCodeRest})
			if rot != nil {
				counterpart = append(counterpart, ProjectedCell{Day: day, Code: domain.ShiftCodeRest})
			}
			continue
		}

		if rot == nil {
			primary = append(primary, ProjectedCell{Day: day, Code: domain.ShiftCodeWork})
			continue
		}

		leg := p.LegOn(day, rot.StartShift)
		primary = append(primary, ProjectedCell{Day: day, Code: leg})
		counterpart = append(counterpart, ProjectedCell{Day: day, Code: oppositeLeg(leg)})
	}

	return primary, counterpart
}
