package domain

import "time"

type Installation struct {
	ID             int64     `json:"id"`
	OrganizationID int64     `json:"organizationID"`
	Name           string    `json:"name"`
	Account        string    `json:"account"`
	Address        string    `json:"address"`
	CreatedAt      time.Time `json:"createdAt"`
	Version        int32     `json:"-"`
}
