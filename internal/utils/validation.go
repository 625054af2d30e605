package utils

import (
	"fmt"
	"time"
)

// ValidateShiftTimes checks a post's time-of-day bounds. An end time at
// or before the start time means the shift crosses midnight, which is
// common for night posts. The one exception is "00:00:00" on both ends,
// which marks a 24-hour post.
func ValidateShiftTimes(start, end string) error {
	startTime, err := time.Parse("15:04:05", start)
	if err != nil {
		return fmt.Errorf("invalid shift start time %q", start)
	}
	endTime, err := time.Parse("15:04:05", end)
	if err != nil {
		return fmt.Errorf("invalid shift end time %q", end)
	}
	if startTime.Equal(endTime) && start != "00:00:00" {
		return fmt.Errorf("shift must not be zero length")
	}
	return nil
}
