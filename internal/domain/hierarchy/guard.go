package hierarchy

import (
	"context"
	"fmt"

	"github.com/jhoicas/agenda-api/internal/domain"
	"github.com/jhoicas/agenda-api/internal/domain/entity"
)

// Action operación sobre un evento existente.
type Action string

// Acciones soportadas. Todas comparten la misma regla dueño-o-ancestro.
const (
	ActionRead   Action = "read"
	ActionUpdate Action = "update"
	ActionDelete Action = "delete"
)

// Valid informa si la acción es conocida.
func (a Action) Valid() bool {
	switch a {
	case ActionRead, ActionUpdate, ActionDelete:
		return true
	}
	return false
}

// AuthorizationGuard decide si un usuario puede operar sobre el evento de un dueño.
type AuthorizationGuard struct {
	closure *ClosureResolver
}

// NewAuthorizationGuard construye el guardián.
func NewAuthorizationGuard(closure *ClosureResolver) *AuthorizationGuard {
	return &AuthorizationGuard{closure: closure}
}

// CanAccess admin siempre; el dueño siempre; si no, el dueño debe estar en el cierre del usuario.
// No hay acceso hacia arriba: un subordinado nunca alcanza los eventos de su superior.
func (g *AuthorizationGuard) CanAccess(ctx context.Context, actor entity.Actor, eventOwnerID string, action Action) (bool, error) {
	if !action.Valid() {
		return false, fmt.Errorf("%w: acción %q", domain.ErrInvalidInput, action)
	}
	if IsUnrestricted(actor.Role) {
		return true, nil
	}
	if actor.ID == "" || eventOwnerID == "" {
		return false, nil
	}
	if eventOwnerID == actor.ID {
		return true, nil
	}
	if !HasSubordinates(actor.Role) {
		return false, nil
	}
	subs, err := g.closure.SubordinatesOf(ctx, actor.ID, actor.Role)
	if err != nil {
		return false, err
	}
	return subs.Contains(eventOwnerID), nil
}
