package repository

import (
	"testing"
	"time"

	"github.com/serviguard/roster/backend/internal/domain"
	"github.com/serviguard/roster/backend/internal/roster"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestOperatingCells(t *testing.T) {
	activeUntil := day(2026, time.January, 20)
	post := &domain.Post{
		Weekdays:    []int32{1, 2, 3, 4, 5},
		ActiveFrom:  day(2026, time.January, 5), // a Monday
		ActiveUntil: &activeUntil,               // a Tuesday
	}

	pattern := roster.Pattern{
		Code:          "7x0",
		WorkDays:      7,
		RestDays:      0,
		StartPosition: 1,
		StartDate:     day(2026, time.January, 1),
	}
	projected, _ := pattern.Project(roster.MonthWindow{Year: 2026, Month: time.January}, nil)

	kept := operatingCells(post, projected)

	// Jan 5-20, weekdays only: three full weeks minus the trailing
	// Wed-Fri after the 20th and the two weekends in between.
	if len(kept) != 12 {
		t.Fatalf("kept %d cells, want 12", len(kept))
	}
	for _, cell := range kept {
		if !post.OperatesOn(cell.Day) {
			t.Errorf("kept cell on %s, a day the post does not operate", cell.Day.Format("2006-01-02"))
		}
	}
	if !kept[0].Day.Equal(day(2026, time.January, 5)) {
		t.Errorf("first kept day = %s, want 2026-01-05", kept[0].Day.Format("2006-01-02"))
	}
	if !kept[len(kept)-1].Day.Equal(day(2026, time.January, 20)) {
		t.Errorf("last kept day = %s, want 2026-01-20", kept[len(kept)-1].Day.Format("2006-01-02"))
	}
}

func TestOperatingCellsKeepsEverythingForOpenPost(t *testing.T) {
	post := &domain.Post{ActiveFrom: day(2026, time.January, 1)}

	pattern := roster.Pattern{
		Code:          "4x3",
		WorkDays:      4,
		RestDays:      3,
		StartPosition: 1,
		StartDate:     day(2026, time.January, 1),
	}
	projected, _ := pattern.Project(roster.MonthWindow{Year: 2026, Month: time.February}, nil)

	if kept := operatingCells(post, projected); len(kept) != len(projected) {
		t.Errorf("kept %d of %d cells for an open post without a weekday mask", len(kept), len(projected))
	}
}

func TestCellArrays(t *testing.T) {
	cells := []roster.ProjectedCell{
		{Day: day(2026, time.March, 1), Code: domain.ShiftCodeWork},
		{Day: day(2026, time.March, 2), Code: domain.ShiftCodeRest},
		{Day: day(2026, time.March, 3), Code: domain.ShiftCodeNight},
	}

	days, codes := cellArrays(cells)
	if len(days) != 3 || len(codes) != 3 {
		t.Fatalf("got %d days and %d codes, want 3 and 3", len(days), len(codes))
	}

	wantDays := []string{"2026-03-01", "2026-03-02", "2026-03-03"}
	wantCodes := []string{"work", "rest", "night"}
	for i := range cells {
		if days[i] != wantDays[i] {
			t.Errorf("days[%d] = %q, want %q", i, days[i], wantDays[i])
		}
		if codes[i] != wantCodes[i] {
			t.Errorf("codes[%d] = %q, want %q", i, codes[i], wantCodes[i])
		}
	}
}
