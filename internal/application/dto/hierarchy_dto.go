package dto

import "time"

// SetSuperiorRequest entrada admin para fijar el superior directo de un usuario.
type SetSuperiorRequest struct {
	SubordinateID string `json:"subordinate_id" validate:"required,max=64"`
	SuperiorID    string `json:"superior_id" validate:"required,max=64"`
}

// HierarchyEdgeResponse arista con nombres y roles.
type HierarchyEdgeResponse struct {
	ID              string    `json:"id"`
	SubordinateID   string    `json:"subordinate_id"`
	SubordinateName string    `json:"subordinate_name"`
	SubordinateRole string    `json:"subordinate_role"`
	SuperiorID      string    `json:"superior_id"`
	SuperiorName    string    `json:"superior_name"`
	SuperiorRole    string    `json:"superior_role"`
	CreatedAt       time.Time `json:"created_at"`
}
