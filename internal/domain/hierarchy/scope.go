package hierarchy

import (
	"context"

	"github.com/jhoicas/agenda-api/internal/domain/entity"
)

// OwnerSet dueños cuyos eventos puede listar un usuario. Para admin es el marcador
// Unrestricted: no se materializa la lista de ids (no envejece ni cuesta O(n)).
type OwnerSet struct {
	unrestricted bool
	ids          IDSet
}

// Unrestricted devuelve el marcador "todos los dueños".
func Unrestricted() OwnerSet {
	return OwnerSet{unrestricted: true}
}

// OwnersOf devuelve un conjunto finito de dueños.
func OwnersOf(ids ...string) OwnerSet {
	return OwnerSet{ids: NewIDSet(ids...)}
}

// IsUnrestricted informa si el conjunto es el marcador de admin.
func (s OwnerSet) IsUnrestricted() bool { return s.unrestricted }

// Contains informa si el dueño es visible.
func (s OwnerSet) Contains(ownerID string) bool {
	if s.unrestricted {
		return ownerID != ""
	}
	return s.ids.Contains(ownerID)
}

// IDs devuelve los dueños ordenados; nil para Unrestricted.
func (s OwnerSet) IDs() []string {
	if s.unrestricted {
		return nil
	}
	return s.ids.Slice()
}

// Len cantidad de dueños; -1 para Unrestricted.
func (s OwnerSet) Len() int {
	if s.unrestricted {
		return -1
	}
	return s.ids.Len()
}

// VisibilityScope calcula qué dueños puede ver un usuario.
type VisibilityScope struct {
	closure *ClosureResolver
}

// NewVisibilityScope construye el cálculo de visibilidad.
func NewVisibilityScope(closure *ClosureResolver) *VisibilityScope {
	return &VisibilityScope{closure: closure}
}

// VisibleOwners devuelve {self} ∪ cierre, o Unrestricted para admin.
// Debe calcularse una vez por petición y reutilizarse para cualquier filtro adicional.
func (v *VisibilityScope) VisibleOwners(ctx context.Context, actor entity.Actor) (OwnerSet, error) {
	if IsUnrestricted(actor.Role) {
		return Unrestricted(), nil
	}
	if actor.ID == "" {
		return OwnersOf(), nil
	}
	if !HasSubordinates(actor.Role) {
		return OwnersOf(actor.ID), nil
	}
	subs, err := v.closure.SubordinatesOf(ctx, actor.ID, actor.Role)
	if err != nil {
		return OwnerSet{}, err
	}
	subs.Add(actor.ID)
	return OwnerSet{ids: subs}, nil
}
