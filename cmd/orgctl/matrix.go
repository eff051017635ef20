package main

import (
	"context"
	"sort"

	"github.com/jhoicas/agenda-api/internal/domain/entity"
	"github.com/jhoicas/agenda-api/internal/domain/hierarchy"
)

// matrixRow permisos de un actor sobre los eventos del resto de usuarios.
type matrixRow struct {
	ActorID   string   `json:"actor_id"`
	ActorName string   `json:"actor_name"`
	Role      string   `json:"role"`
	CanAccess []string `json:"can_access"`
	// Dueños a los que puede asignar al crear y mover al actualizar.
	AssignOnCreate   []string `json:"assign_on_create"`
	ReassignOnUpdate []string `json:"reassign_on_update"`
}

// buildMatrix evalúa, para cada par actor/dueño, el guard y las dos reglas de asignación.
func buildMatrix(ctx context.Context, engine *hierarchy.Engine, users []*entity.User, action hierarchy.Action) ([]matrixRow, error) {
	sorted := append([]*entity.User(nil), users...)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Name < sorted[j].Name })

	rows := make([]matrixRow, 0, len(sorted))
	for _, a := range sorted {
		actor := entity.Actor{ID: a.ID, Role: a.Role}
		row := matrixRow{
			ActorID:          a.ID,
			ActorName:        a.Name,
			Role:             a.Role.String(),
			CanAccess:        []string{},
			AssignOnCreate:   []string{},
			ReassignOnUpdate: []string{},
		}
		for _, o := range sorted {
			if o.ID == a.ID {
				continue
			}
			ok, err := engine.Guard.CanAccess(ctx, actor, o.ID, action)
			if err != nil {
				return nil, err
			}
			if ok {
				row.CanAccess = append(row.CanAccess, o.ID)
			}
			if _, err := engine.Reassigner.OwnerForCreate(ctx, actor, o.ID); err == nil {
				row.AssignOnCreate = append(row.AssignOnCreate, o.ID)
			} else if !isDenied(err) {
				return nil, err
			}
			// Dueño actual ficticio (el propio actor) para aislar la regla del destino.
			if _, _, err := engine.Reassigner.OwnerForUpdate(ctx, actor, a.ID, o.ID); err == nil {
				row.ReassignOnUpdate = append(row.ReassignOnUpdate, o.ID)
			} else if !isDenied(err) {
				return nil, err
			}
		}
		rows = append(rows, row)
	}
	return rows, nil
}
