package domain

import "testing"

func TestGuardEligible(t *testing.T) {
	tests := []struct {
		name        string
		status      GuardStatus
		blacklisted bool
		want        bool
	}{
		{"selected", GuardStatusSeleccionado, false, true},
		{"hired", GuardStatusContratado, false, true},
		{"applicant", GuardStatusPostulado, false, false},
		{"terminated", GuardStatusDesvinculado, false, false},
		{"selected but blacklisted", GuardStatusSeleccionado, true, false},
		{"hired but blacklisted", GuardStatusContratado, true, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := &Guard{Status: tt.status, Blacklisted: tt.blacklisted}
			if got := g.Eligible(); got != tt.want {
				t.Errorf("Eligible() = %v, want %v", got, tt.want)
			}
		})
	}
}
