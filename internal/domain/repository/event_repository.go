package repository

import (
	"context"
	"time"

	"github.com/jhoicas/agenda-api/internal/domain/entity"
	"github.com/jhoicas/agenda-api/internal/domain/hierarchy"
)

// EventFilter filtros opcionales del listado de eventos. Se aplican sobre el conjunto de
// dueños visibles, nunca en su lugar.
type EventFilter struct {
	Start     *time.Time
	End       *time.Time
	EventType string
	OwnerID   string
	Limit     int
	Offset    int
}

// EventRepository puerto de persistencia de eventos de agenda.
type EventRepository interface {
	// FindByID devuelve (nil, nil) si no existe.
	FindByID(ctx context.Context, id string) (*entity.Event, error)
	// ListByOwnerIn lista los eventos cuyos dueños pertenecen a owners.
	ListByOwnerIn(ctx context.Context, owners hierarchy.OwnerSet, f EventFilter) ([]*entity.Event, error)
	Create(ctx context.Context, e *entity.Event) error
	// Update guarda el evento solo si su dueño sigue siendo expectedOwnerID;
	// si otro cambio lo movió entretanto devuelve ErrConflict.
	Update(ctx context.Context, e *entity.Event, expectedOwnerID string) error
	UpdateFeedback(ctx context.Context, id, feedback string, updatedAt time.Time) error
	Delete(ctx context.Context, id string) error
}
