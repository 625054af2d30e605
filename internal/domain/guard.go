package domain

import (
	"time"
)

type GuardStatus string

const (
	GuardStatusPostulado    GuardStatus = "postulado"
	GuardStatusSeleccionado GuardStatus = "seleccionado"
	GuardStatusContratado   GuardStatus = "contratado_activo"
	GuardStatusDesvinculado GuardStatus = "desvinculado"
)

type Guard struct {
	ID                    int64       `json:"id"`
	OrganizationID        int64       `json:"organizationID"`
	FullName              string      `json:"fullName"`
	DocumentNumber        string      `json:"documentNumber"`
	Email                 string      `json:"email"`
	Phone                 string      `json:"phone"`
	Status                GuardStatus `json:"status"`
	Blacklisted           bool        `json:"blacklisted"`
	CurrentInstallationID *int64      `json:"currentInstallationID"`
	CreatedAt             time.Time   `json:"createdAt"`
	Version               int32       `json:"-"`
}

// Eligible reports whether the guard may receive a new assignment.
// Blacklisted guards are never eligible regardless of status.
func (g *Guard) Eligible() bool {
	if g.Blacklisted {
		return false
	}
	return g.Status == GuardStatusSeleccionado || g.Status == GuardStatusContratado
}
