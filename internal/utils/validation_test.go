package utils

import "testing"

func TestValidateShiftTimes(t *testing.T) {
	tests := []struct {
		name    string
		start   string
		end     string
		wantErr bool
	}{
		{"day shift", "08:00:00", "20:00:00", false},
		{"night shift crossing midnight", "20:00:00", "08:00:00", false},
		{"midnight end", "16:00:00", "00:00:00", false},
		{"full day", "00:00:00", "00:00:00", false},
		{"zero length", "08:00:00", "08:00:00", true},
		{"bad start", "8am", "20:00:00", true},
		{"bad end", "08:00:00", "20h", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateShiftTimes(tt.start, tt.end)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateShiftTimes(%q, %q) error = %v, wantErr %v", tt.start, tt.end, err, tt.wantErr)
			}
		})
	}
}
