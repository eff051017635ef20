package entity

import "time"

// Event es un compromiso de agenda programado para un supervisor (OwnerID).
type Event struct {
	ID               string
	OwnerID          string // supervisor_id
	OwnerName        string
	CreatorID        string
	CreatorName      string
	Title            string
	Description      string
	StartDate        time.Time
	EndDate          time.Time
	EventType        string
	Location         string
	Subcategory      string
	OtherDescription string
	InformAgency     bool
	AgencyNumber     string
	IsPA             bool
	Municipality     string
	State            string // UF
	Feedback         string // tratativa
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
