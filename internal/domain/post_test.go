package domain

import (
	"slices"
	"testing"
	"time"
)

func TestPostCoversWeekday(t *testing.T) {
	// 2026-01-05 is a Monday
	monday := time.Date(2026, time.January, 5, 0, 0, 0, 0, time.UTC)
	saturday := monday.AddDate(0, 0, 5)
	sunday := monday.AddDate(0, 0, 6)

	weekdaysOnly := &Post{Weekdays: []int32{1, 2, 3, 4, 5}}
	if !weekdaysOnly.CoversWeekday(monday) {
		t.Error("weekday post should cover Monday")
	}
	if weekdaysOnly.CoversWeekday(saturday) {
		t.Error("weekday post should not cover Saturday")
	}
	if weekdaysOnly.CoversWeekday(sunday) {
		t.Error("weekday post should not cover Sunday")
	}

	sundayOnly := &Post{Weekdays: []int32{7}}
	if !sundayOnly.CoversWeekday(sunday) {
		t.Error("Sunday post should cover Sunday")
	}
	if sundayOnly.CoversWeekday(monday) {
		t.Error("Sunday post should not cover Monday")
	}

	// empty mask means the post operates every day
	everyday := &Post{}
	for i := 0; i < 7; i++ {
		if !everyday.CoversWeekday(monday.AddDate(0, 0, i)) {
			t.Errorf("post without weekday mask should cover day %d", i)
		}
	}
}

func TestPostOperatesOn(t *testing.T) {
	activeUntil := time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC)
	post := &Post{
		Weekdays:    []int32{1, 2, 3, 4, 5},
		ActiveFrom:  time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC),
		ActiveUntil: &activeUntil,
	}

	tests := []struct {
		name string
		day  time.Time
		want bool
	}{
		{"weekday inside window", time.Date(2026, time.February, 2, 0, 0, 0, 0, time.UTC), true}, // a Monday
		{"weekend inside window", time.Date(2026, time.February, 1, 0, 0, 0, 0, time.UTC), false},
		{"before active from", time.Date(2026, time.January, 14, 0, 0, 0, 0, time.UTC), false},
		{"first active day", time.Date(2026, time.January, 15, 0, 0, 0, 0, time.UTC), true}, // a Thursday
		{"last active day", time.Date(2026, time.June, 30, 0, 0, 0, 0, time.UTC), true},     // a Tuesday
		{"after active until", time.Date(2026, time.July, 1, 0, 0, 0, 0, time.UTC), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := post.OperatesOn(tt.day); got != tt.want {
				t.Errorf("OperatesOn(%s) = %v, want %v", tt.day.Format("2006-01-02"), got, tt.want)
			}
		})
	}

	// no end date and no weekday mask: every day from activeFrom on
	openEnded := &Post{ActiveFrom: time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC)}
	if !openEnded.OperatesOn(time.Date(2030, time.December, 25, 0, 0, 0, 0, time.UTC)) {
		t.Error("open-ended post should operate on any future day")
	}
}

func TestPostHasSlot(t *testing.T) {
	post := &Post{RequiredGuards: 3}

	tests := []struct {
		slot int32
		want bool
	}{
		{0, false},
		{1, true},
		{3, true},
		{4, false},
		{-1, false},
	}
	for _, tt := range tests {
		if got := post.HasSlot(tt.slot); got != tt.want {
			t.Errorf("HasSlot(%d) = %v, want %v", tt.slot, got, tt.want)
		}
	}
}

func TestWeekdayMaskRoundTrip(t *testing.T) {
	tests := [][]int32{
		{},
		{1},
		{7},
		{1, 2, 3, 4, 5},
		{6, 7},
		{1, 2, 3, 4, 5, 6, 7},
	}

	for _, days := range tests {
		got := WeekdaysFromMask(WeekdayMask(days))
		if !slices.Equal(got, days) {
			t.Errorf("round trip of %v = %v", days, got)
		}
	}

	// out-of-range values are dropped instead of corrupting the mask
	if mask := WeekdayMask([]int32{0, 8, 3}); !slices.Equal(WeekdaysFromMask(mask), []int32{3}) {
		t.Errorf("mask with out-of-range days decoded to %v", WeekdaysFromMask(mask))
	}
}
