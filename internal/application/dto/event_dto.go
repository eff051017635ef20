package dto

import "time"

// CreateEventRequest entrada para crear un evento. SupervisorID vacío = el creador.
type CreateEventRequest struct {
	Title            string    `json:"title" validate:"required,min=1,max=200"`
	Description      string    `json:"description"`
	StartDate        time.Time `json:"start_date" validate:"required"`
	EndDate          time.Time `json:"end_date" validate:"required"`
	EventType        string    `json:"event_type" validate:"required,max=50"`
	Location         string    `json:"location" validate:"omitempty,max=100"`
	Subcategory      string    `json:"subcategory" validate:"omitempty,max=100"`
	OtherDescription string    `json:"other_description" validate:"omitempty,max=200"`
	InformAgency     bool      `json:"inform_agency"`
	AgencyNumber     string    `json:"agency_number" validate:"omitempty,max=50"`
	IsPA             bool      `json:"is_pa"`
	Municipality     string    `json:"municipality" validate:"omitempty,max=100"`
	State            string    `json:"state" validate:"omitempty,len=2"`
	SupervisorID     string    `json:"supervisor_id" validate:"omitempty,max=64"`
}

// UpdateEventRequest actualización parcial; los campos nil no cambian.
// SupervisorID distinto del dueño actual es una reasignación.
type UpdateEventRequest struct {
	Title            *string    `json:"title" validate:"omitempty,min=1,max=200"`
	Description      *string    `json:"description"`
	StartDate        *time.Time `json:"start_date"`
	EndDate          *time.Time `json:"end_date"`
	EventType        *string    `json:"event_type" validate:"omitempty,min=1,max=50"`
	Location         *string    `json:"location" validate:"omitempty,max=100"`
	Subcategory      *string    `json:"subcategory" validate:"omitempty,max=100"`
	OtherDescription *string    `json:"other_description" validate:"omitempty,max=200"`
	InformAgency     *bool      `json:"inform_agency"`
	AgencyNumber     *string    `json:"agency_number" validate:"omitempty,max=50"`
	IsPA             *bool      `json:"is_pa"`
	Municipality     *string    `json:"municipality" validate:"omitempty,max=100"`
	State            *string    `json:"state" validate:"omitempty,len=2"`
	SupervisorID     *string    `json:"supervisor_id" validate:"omitempty,max=64"`
}

// UpdateFeedbackRequest tratativa del evento.
type UpdateFeedbackRequest struct {
	Feedback string `json:"feedback" validate:"max=4000"`
}

// EventListQuery filtros del listado. Start/End aceptan RFC3339 o AAAA-MM-DD.
type EventListQuery struct {
	Start   string `query:"start"`
	End     string `query:"end"`
	Type    string `query:"type" validate:"omitempty,max=50"`
	OwnerID string `query:"owner_id" validate:"omitempty,max=64"`
	PageRequest
}

// EventResponse salida de un evento.
type EventResponse struct {
	ID               string    `json:"id"`
	SupervisorID     string    `json:"supervisor_id"`
	SupervisorName   string    `json:"supervisor_name,omitempty"`
	CreatorID        string    `json:"creator_id,omitempty"`
	CreatorName      string    `json:"creator_name,omitempty"`
	Title            string    `json:"title"`
	Description      string    `json:"description"`
	StartDate        time.Time `json:"start_date"`
	EndDate          time.Time `json:"end_date"`
	EventType        string    `json:"event_type"`
	Location         string    `json:"location"`
	Subcategory      string    `json:"subcategory"`
	OtherDescription string    `json:"other_description"`
	InformAgency     bool      `json:"inform_agency"`
	AgencyNumber     string    `json:"agency_number"`
	IsPA             bool      `json:"is_pa"`
	Municipality     string    `json:"municipality"`
	State            string    `json:"state"`
	Feedback         string    `json:"feedback"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

// EventListResponse lista paginada de eventos.
type EventListResponse struct {
	Items []EventResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}
