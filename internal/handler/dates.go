package handler

import (
	"fmt"
	"time"
)

const dateLayout = "2006-01-02"

// parseOptionalDate converts an optional "YYYY-MM-DD" field to a date.
// Conversion from nullable input happens once here, at the validation
// edge; everything past this point works with resolved time.Time values.
func parseOptionalDate(s *string) (*time.Time, error) {
	if s == nil || *s == "" {
		return nil, nil
	}
	d, err := time.Parse(dateLayout, *s)
	if err != nil {
		return nil, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", *s)
	}
	return &d, nil
}

func parseDate(s string) (time.Time, error) {
	d, err := time.Parse(dateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid date %q, expected YYYY-MM-DD", s)
	}
	return d, nil
}
