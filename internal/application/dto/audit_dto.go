package dto

import "time"

// CreateUserLogRequest registro enviado por el cliente (navegación, errores de UI...).
type CreateUserLogRequest struct {
	ActionType string         `json:"action_type" validate:"required,max=50"`
	Status     string         `json:"status" validate:"omitempty,oneof=SUCCESS FAILURE INFO"`
	Details    map[string]any `json:"details"`
}

// UserLogQuery filtros del listado de auditoría.
type UserLogQuery struct {
	UserID     string `query:"user_id" validate:"omitempty,max=64"`
	ActionType string `query:"action_type" validate:"omitempty,max=50"`
	Status     string `query:"status" validate:"omitempty,oneof=SUCCESS FAILURE INFO"`
	Start      string `query:"start"`
	End        string `query:"end"`
	PageRequest
}

// UserLogResponse salida de un registro de auditoría.
type UserLogResponse struct {
	ID            string         `json:"id"`
	UserID        string         `json:"user_id,omitempty"`
	UserName      string         `json:"user_name,omitempty"`
	UserFuncional string         `json:"user_funcional,omitempty"`
	UserRole      string         `json:"user_role,omitempty"`
	Timestamp     time.Time      `json:"timestamp"`
	ActionType    string         `json:"action_type"`
	IPAddress     string         `json:"ip_address,omitempty"`
	UserAgent     string         `json:"user_agent,omitempty"`
	Details       map[string]any `json:"details,omitempty"`
	Status        string         `json:"status"`
}
