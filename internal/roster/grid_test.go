package roster

import (
	"testing"
	"time"
)

func TestMonthWindowDays(t *testing.T) {
	tests := []struct {
		year  int
		month time.Month
		want  int
	}{
		{2026, time.January, 31},
		{2026, time.February, 28},
		{2028, time.February, 29}, // leap year
		{2026, time.April, 30},
		{2026, time.December, 31},
	}

	for _, tt := range tests {
		w := MonthWindow{Year: tt.year, Month: tt.month}
		days := w.Days()
		if len(days) != tt.want {
			t.Errorf("%d-%02d: got %d days, want %d", tt.year, tt.month, len(days), tt.want)
		}
		if !days[0].Equal(w.First()) {
			t.Errorf("%d-%02d: first day %s != First() %s", tt.year, tt.month, days[0], w.First())
		}
		if !days[len(days)-1].Equal(w.Last()) {
			t.Errorf("%d-%02d: last day %s != Last() %s", tt.year, tt.month, days[len(days)-1], w.Last())
		}
	}
}

func TestMonthWindowContains(t *testing.T) {
	w := MonthWindow{Year: 2026, Month: time.June}

	if !w.Contains(date(2026, time.June, 15)) {
		t.Error("Contains(2026-06-15) = false")
	}
	if w.Contains(date(2026, time.July, 1)) {
		t.Error("Contains(2026-07-01) = true")
	}
	if w.Contains(date(2025, time.June, 15)) {
		t.Error("Contains(2025-06-15) = true")
	}
}

func TestDateOnly(t *testing.T) {
	santiago, err := time.LoadLocation("America/Santiago")
	if err != nil {
		t.Fatalf("load location: %v", err)
	}

	in := time.Date(2026, time.March, 3, 23, 45, 12, 0, santiago)
	got := DateOnly(in)

	want := time.Date(2026, time.March, 3, 0, 0, 0, 0, time.UTC)
	if !got.Equal(want) {
		t.Errorf("DateOnly(%s) = %s, want %s", in, got, want)
	}
}

func TestDaysBetween(t *testing.T) {
	tests := []struct {
		from, to time.Time
		want     int
	}{
		{date(2026, time.January, 1), date(2026, time.January, 1), 0},
		{date(2026, time.January, 1), date(2026, time.January, 31), 30},
		{date(2026, time.January, 31), date(2026, time.February, 1), 1},
		// crosses a leap day
		{date(2028, time.February, 28), date(2028, time.March, 1), 2},
		{date(2026, time.February, 10), date(2026, time.February, 5), -5},
	}

	for _, tt := range tests {
		if got := daysBetween(tt.from, tt.to); got != tt.want {
			t.Errorf("daysBetween(%s, %s) = %d, want %d",
				tt.from.Format("2006-01-02"), tt.to.Format("2006-01-02"), got, tt.want)
		}
	}
}
