package hierarchy

import (
	"context"

	"github.com/jhoicas/agenda-api/internal/domain"
	"github.com/jhoicas/agenda-api/internal/domain/entity"
)

// ReassignmentValidator controla los cambios de dueño de un evento.
//
// Estados por evento: Unowned (al crear) → Owned(ownerID). Transiciones:
//   - create(owner): libre si owner == creador; si no, el rol debe poder asignar al crear
//     y owner debe estar en el cierre del creador con el rol de dueño de la política.
//   - reassignOnUpdate(newOwner): el rol debe poder reasignar al actualizar (gerente, admin)
//     y newOwner debe estar en el cierre del actor con el rol de dueño de la política.
type ReassignmentValidator struct {
	closure *ClosureResolver
}

// NewReassignmentValidator construye el validador.
func NewReassignmentValidator(closure *ClosureResolver) *ReassignmentValidator {
	return &ReassignmentValidator{closure: closure}
}

// CanReassign verdadero si newOwnerID está en el cierre del actor. El propio actor no está
// en su cierre, así que no puede usarse a sí mismo como destino.
func (v *ReassignmentValidator) CanReassign(ctx context.Context, actor entity.Actor, newOwnerID string) (bool, error) {
	if actor.ID == "" || newOwnerID == "" || newOwnerID == actor.ID {
		return false, nil
	}
	if !HasSubordinates(actor.Role) {
		return false, nil
	}
	subs, err := v.closure.SubordinatesOf(ctx, actor.ID, actor.Role)
	if err != nil {
		return false, err
	}
	return subs.Contains(newOwnerID), nil
}

// OwnerForCreate resuelve el dueño de un evento nuevo. Sin dueño pedido, o pidiendo el
// propio id, el dueño es el creador. Devuelve ErrReassignmentDenied si la asignación no procede.
func (v *ReassignmentValidator) OwnerForCreate(ctx context.Context, actor entity.Actor, requestedOwnerID string) (string, error) {
	if requestedOwnerID == "" || requestedOwnerID == actor.ID {
		return actor.ID, nil
	}
	if !policyFor(actor.Role).assignOnCreate {
		return "", domain.ErrReassignmentDenied
	}
	ok, err := v.canOwn(ctx, actor, requestedOwnerID)
	if err != nil {
		return "", err
	}
	if !ok {
		return "", domain.ErrReassignmentDenied
	}
	return requestedOwnerID, nil
}

// OwnerForUpdate resuelve el dueño tras una actualización. changed indica si hubo reasignación.
// La regla de actualización es más estricta que la de creación: solo los roles con
// reassignOnUpdate pueden mover un evento, aunque el destino esté en el cierre de otro rol.
func (v *ReassignmentValidator) OwnerForUpdate(ctx context.Context, actor entity.Actor, currentOwnerID, requestedOwnerID string) (owner string, changed bool, err error) {
	if requestedOwnerID == "" || requestedOwnerID == currentOwnerID {
		return currentOwnerID, false, nil
	}
	if !policyFor(actor.Role).reassignOnUpdate {
		return "", false, domain.ErrReassignmentDenied
	}
	ok, err := v.canOwn(ctx, actor, requestedOwnerID)
	if err != nil {
		return "", false, err
	}
	if !ok {
		return "", false, domain.ErrReassignmentDenied
	}
	return requestedOwnerID, true, nil
}

// canOwn exige CanReassign y además que el destino tenga el rol de dueño de la política:
// un gerente o un admin no pueden ser dueños de un evento ajeno.
func (v *ReassignmentValidator) canOwn(ctx context.Context, actor entity.Actor, targetID string) (bool, error) {
	if actor.ID == "" || targetID == "" || targetID == actor.ID {
		return false, nil
	}
	members, err := v.closure.Resolve(ctx, actor.ID, actor.Role)
	if err != nil {
		return false, err
	}
	want := policyFor(actor.Role).ownerRole
	for _, m := range members {
		if m.ID == targetID {
			return want == "" || m.Role == want, nil
		}
	}
	return false, nil
}
