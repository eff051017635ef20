package repository

import (
	"context"
	"time"

	"github.com/jhoicas/agenda-api/internal/domain/entity"
	"github.com/jhoicas/agenda-api/internal/domain/hierarchy"
)

// UserLogFilter filtros del listado de auditoría.
type UserLogFilter struct {
	UserID     string
	ActionType string
	Status     string
	Start      *time.Time
	End        *time.Time
	Limit      int
	Offset     int
}

// UserLogRepository puerto de persistencia de USER_LOGS.
type UserLogRepository interface {
	Create(ctx context.Context, l *entity.UserLog) error
	// List devuelve los registros cuyo usuario pertenece a users, del más reciente al más antiguo.
	List(ctx context.Context, users hierarchy.OwnerSet, f UserLogFilter) ([]*entity.UserLog, error)
}
