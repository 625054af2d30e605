package roster

import (
	"errors"
	"testing"
	"time"

	"github.com/serviguard/roster/backend/internal/domain"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestPatternWorksOn(t *testing.T) {
	// 4x3: four days on, three days off, seven-day cycle
	p := Pattern{
		Code:          "4x3",
		WorkDays:      4,
		RestDays:      3,
		StartPosition: 1,
		StartDate:     date(2026, time.January, 1),
	}

	tests := []struct {
		day  time.Time
		want bool
	}{
		{date(2026, time.January, 1), true},
		{date(2026, time.January, 2), true},
		{date(2026, time.January, 3), true},
		{date(2026, time.January, 4), true},
		{date(2026, time.January, 5), false},
		{date(2026, time.January, 6), false},
		{date(2026, time.January, 7), false},
		// second cycle repeats the first exactly
		{date(2026, time.January, 8), true},
		{date(2026, time.January, 11), true},
		{date(2026, time.January, 12), false},
		// far future stays aligned
		{date(2026, time.March, 5), true},
	}

	for _, tt := range tests {
		if got := p.WorksOn(tt.day); got != tt.want {
			t.Errorf("WorksOn(%s) = %v, want %v", tt.day.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestPatternStartPositionOffsetsCycle(t *testing.T) {
	// start position 5 means the guard joins on the first rest day
	p := Pattern{
		Code:          "4x3",
		WorkDays:      4,
		RestDays:      3,
		StartPosition: 5,
		StartDate:     date(2026, time.January, 1),
	}

	tests := []struct {
		day  time.Time
		want bool
	}{
		{date(2026, time.January, 1), false},
		{date(2026, time.January, 2), false},
		{date(2026, time.January, 3), false},
		{date(2026, time.January, 4), true},
		{date(2026, time.January, 7), true},
		{date(2026, time.January, 8), false},
	}

	for _, tt := range tests {
		if got := p.WorksOn(tt.day); got != tt.want {
			t.Errorf("WorksOn(%s) = %v, want %v", tt.day.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestPatternWithoutRestDays(t *testing.T) {
	p := Pattern{
		Code:          "7x0",
		WorkDays:      7,
		RestDays:      0,
		StartPosition: 1,
		StartDate:     date(2026, time.January, 1),
	}

	for _, day := range (MonthWindow{Year: 2026, Month: time.February}).Days() {
		if !p.WorksOn(day) {
			t.Fatalf("WorksOn(%s) = false for a pattern without rest days", day.Format("2006-01-02"))
		}
	}
}

func TestPatternLegFlipsEveryCycle(t *testing.T) {
	p := Pattern{
		Code:          "4x3",
		WorkDays:      4,
		RestDays:      3,
		StartPosition: 1,
		StartDate:     date(2026, time.January, 1),
	}

	tests := []struct {
		day  time.Time
		want string
	}{
		{date(2026, time.January, 1), domain.ShiftLegDay},
		{date(2026, time.January, 4), domain.ShiftLegDay},
		// second cycle works the opposite leg
		{date(2026, time.January, 8), domain.ShiftLegNight},
		{date(2026, time.January, 11), domain.ShiftLegNight},
		// third cycle is back on days
		{date(2026, time.January, 15), domain.ShiftLegDay},
	}

	for _, tt := range tests {
		if got := p.LegOn(tt.day, domain.ShiftLegDay); got != tt.want {
			t.Errorf("LegOn(%s) = %q, want %q", tt.day.Format("2006-01-02"), got, tt.want)
		}
	}
}

func TestPatternLegMidCycleStartFlipsOnBoundary(t *testing.T) {
	// position 5 of a 7-day cycle: only three days remain in cycle zero,
	// so the leg must flip after January 3rd, not after a full week.
	p := Pattern{
		Code:          "4x3",
		WorkDays:      4,
		RestDays:      3,
		StartPosition: 5,
		StartDate:     date(2026, time.January, 1),
	}

	if got := p.LegOn(date(2026, time.January, 3), domain.ShiftLegNight); got != domain.ShiftLegNight {
		t.Errorf("LegOn(2026-01-03) = %q, want %q", got, domain.ShiftLegNight)
	}
	if got := p.LegOn(date(2026, time.January, 4), domain.ShiftLegNight); got != domain.ShiftLegDay {
		t.Errorf("LegOn(2026-01-04) = %q, want %q", got, domain.ShiftLegDay)
	}
}

func TestPatternProject(t *testing.T) {
	p := Pattern{
		Code:          "4x3",
		WorkDays:      4,
		RestDays:      3,
		StartPosition: 1,
		StartDate:     date(2026, time.January, 1),
	}
	window := MonthWindow{Year: 2026, Month: time.January}

	primary, counterpart := p.Project(window, nil)
	if len(counterpart) != 0 {
		t.Fatalf("expected no counterpart cells without a rotation, got %d", len(counterpart))
	}
	if len(primary) != 31 {
		t.Fatalf("expected 31 cells, got %d", len(primary))
	}
	if primary[0].Code != domain.ShiftCodeWork {
		t.Errorf("cell 0 code = %q, want %q", primary[0].Code, domain.ShiftCodeWork)
	}
	if primary[4].Code != domain.ShiftCodeRest {
		t.Errorf("cell 4 code = %q, want %q", primary[4].Code, domain.ShiftCodeRest)
	}
}

func TestPatternProjectSkipsDaysBeforeStart(t *testing.T) {
	p := Pattern{
		Code:          "5x2",
		WorkDays:      5,
		RestDays:      2,
		StartPosition: 1,
		StartDate:     date(2026, time.January, 15),
	}
	window := MonthWindow{Year: 2026, Month: time.January}

	primary, _ := p.Project(window, nil)
	if len(primary) != 17 {
		t.Fatalf("expected 17 cells from the 15th on, got %d", len(primary))
	}
	if !primary[0].Day.Equal(date(2026, time.January, 15)) {
		t.Errorf("first cell day = %s, want 2026-01-15", primary[0].Day.Format("2006-01-02"))
	}
}

func TestPatternProjectRotation(t *testing.T) {
	p := Pattern{
		Code:          "4x3",
		WorkDays:      4,
		RestDays:      3,
		StartPosition: 1,
		StartDate:     date(2026, time.January, 1),
	}
	window := MonthWindow{Year: 2026, Month: time.January}
	rot := &Rotation{CounterpartPostID: 2, CounterpartSlot: 1, StartShift: domain.ShiftLegDay}

	primary, counterpart := p.Project(window, rot)
	if len(primary) != len(counterpart) {
		t.Fatalf("primary has %d cells, counterpart %d, expected equal length", len(primary), len(counterpart))
	}

	for i := range primary {
		pc, cc := primary[i], counterpart[i]
		if !pc.Day.Equal(cc.Day) {
			t.Fatalf("cell %d: primary day %s != counterpart day %s", i, pc.Day, cc.Day)
		}
		switch pc.Code {
		case domain.ShiftCodeRest:
			if cc.Code != domain.ShiftCodeRest {
				t.Errorf("%s: counterpart code = %q on a rest day", pc.Day.Format("2006-01-02"), cc.Code)
			}
		case domain.ShiftLegDay:
			if cc.Code != domain.ShiftLegNight {
				t.Errorf("%s: counterpart code = %q, want %q", pc.Day.Format("2006-01-02"), cc.Code, domain.ShiftLegNight)
			}
		case domain.ShiftLegNight:
			if cc.Code != domain.ShiftLegDay {
				t.Errorf("%s: counterpart code = %q, want %q", pc.Day.Format("2006-01-02"), cc.Code, domain.ShiftLegDay)
			}
		default:
			t.Errorf("%s: unexpected primary code %q for a rotating pair", pc.Day.Format("2006-01-02"), pc.Code)
		}
	}

	// first cycle on days, second on nights
	if primary[0].Code != domain.ShiftLegDay {
		t.Errorf("2026-01-01 primary code = %q, want %q", primary[0].Code, domain.ShiftLegDay)
	}
	if primary[7].Code != domain.ShiftLegNight {
		t.Errorf("2026-01-08 primary code = %q, want %q", primary[7].Code, domain.ShiftLegNight)
	}
}

func TestPatternProjectIsIdempotent(t *testing.T) {
	p := Pattern{
		Code:          "6x1",
		WorkDays:      6,
		RestDays:      1,
		StartPosition: 3,
		StartDate:     date(2026, time.February, 10),
	}
	window := MonthWindow{Year: 2026, Month: time.March}
	rot := &Rotation{CounterpartPostID: 9, CounterpartSlot: 2, StartShift: domain.ShiftLegNight}

	first, firstCp := p.Project(window, rot)
	second, secondCp := p.Project(window, rot)

	if len(first) != len(second) || len(firstCp) != len(secondCp) {
		t.Fatalf("projection changed size between runs")
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("cell %d differs between runs: %v vs %v", i, first[i], second[i])
		}
	}
	for i := range firstCp {
		if firstCp[i] != secondCp[i] {
			t.Errorf("counterpart cell %d differs between runs: %v vs %v", i, firstCp[i], secondCp[i])
		}
	}
}

func TestRotationValidate(t *testing.T) {
	rot := &Rotation{CounterpartPostID: 2, CounterpartSlot: 1, StartShift: domain.ShiftLegDay}
	if err := rot.Validate(1, 1); err != nil {
		t.Fatalf("Validate() on a distinct counterpart: %v", err)
	}
	// same post, different slot is a legal pairing
	if err := rot.Validate(2, 2); err != nil {
		t.Fatalf("Validate() on a sibling slot: %v", err)
	}

	err := rot.Validate(2, 1)
	if err == nil {
		t.Fatal("Validate() = nil for a slot paired with itself, want error")
	}
	if !errors.Is(err, domain.ErrInvalidPattern) {
		t.Errorf("Validate() = %v, want ErrInvalidPattern", err)
	}
}

func TestPatternValidate(t *testing.T) {
	valid := Pattern{
		Code:          "4x3",
		WorkDays:      4,
		RestDays:      3,
		StartPosition: 1,
		StartDate:     date(2026, time.January, 1),
	}
	if err := valid.Validate(); err != nil {
		t.Fatalf("Validate() on a valid pattern: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(p *Pattern)
	}{
		{"zero work days", func(p *Pattern) { p.WorkDays = 0 }},
		{"too many work days", func(p *Pattern) { p.WorkDays = 31 }},
		{"negative rest days", func(p *Pattern) { p.RestDays = -1 }},
		{"too many rest days", func(p *Pattern) { p.RestDays = 31 }},
		{"zero start position", func(p *Pattern) { p.StartPosition = 0 }},
		{"start position too large", func(p *Pattern) { p.StartPosition = 61 }},
		{"missing start date", func(p *Pattern) { p.StartDate = time.Time{} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := valid
			tt.mutate(&p)
			err := p.Validate()
			if err == nil {
				t.Fatal("Validate() = nil, want error")
			}
			if !errors.Is(err, domain.ErrInvalidPattern) {
				t.Errorf("Validate() = %v, want ErrInvalidPattern", err)
			}
		})
	}
}
