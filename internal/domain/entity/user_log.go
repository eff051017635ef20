package entity

import "time"

// Tipos de acción registrados en USER_LOGS.
const (
	ActionLogin           = "LOGIN"
	ActionLoginFailed     = "LOGIN_FAILED"
	ActionLogout          = "LOGOUT"
	ActionEventCreated    = "EVENT_CREATED"
	ActionEventUpdated    = "EVENT_UPDATED"
	ActionEventReassigned = "EVENT_REASSIGNED"
	ActionEventDeleted    = "EVENT_DELETED"
	ActionAccessDenied    = "ACCESS_DENIED"
)

// Estados de un registro de auditoría.
const (
	LogStatusSuccess = "SUCCESS"
	LogStatusFailure = "FAILURE"
	LogStatusInfo    = "INFO"
)

// UserLog registro de auditoría de una acción de usuario.
type UserLog struct {
	ID         string
	UserID     string
	Timestamp  time.Time
	ActionType string
	IPAddress  string
	UserAgent  string
	Details    map[string]any
	Status     string

	// Solo lectura (join con users).
	UserName      string
	UserFuncional string
	UserRole      Role
}
