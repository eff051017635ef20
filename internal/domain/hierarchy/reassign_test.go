package hierarchy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agenda-api/internal/domain"
	"github.com/jhoicas/agenda-api/internal/domain/entity"
	"github.com/jhoicas/agenda-api/internal/domain/hierarchy"
)

// Propiedad: fuera del cierre (y distinto del propio actor) la reasignación siempre se niega.
func TestCanReassign_FueraDelCierreSiempreFalso(t *testing.T) {
	snap := orgSnapshot()
	eng := hierarchy.NewEngine(snap)
	ctx := context.Background()
	for _, m := range orgMembers() {
		a := actor(m.ID, m.Role)
		closure, err := eng.Closure.SubordinatesOf(ctx, m.ID, m.Role)
		require.NoError(t, err)
		for _, target := range orgMembers() {
			ok, err := eng.Reassigner.CanReassign(ctx, a, target.ID)
			require.NoError(t, err)
			if target.ID == m.ID {
				assert.False(t, ok, "%s no puede reasignarse a sí mismo", m.ID)
				continue
			}
			assert.Equal(t, closure.Contains(target.ID), ok, "%s → %s", m.ID, target.ID)
		}
	}
}

func TestOwnerForCreate(t *testing.T) {
	eng := hierarchy.NewEngine(orgSnapshot())
	ctx := context.Background()

	tests := []struct {
		name      string
		actor     entity.Actor
		requested string
		want      string
		wantErr   error
	}{
		{"sin dueño pedido es el creador", actor(idS1, entity.RoleSupervisor), "", idS1, nil},
		{"supervisor para sí mismo", actor(idS1, entity.RoleSupervisor), idS1, idS1, nil},
		{"supervisor para otro", actor(idS1, entity.RoleSupervisor), idS2, "", domain.ErrReassignmentDenied},
		{"coordenador para su supervisor", actor(idC, entity.RoleCoordenador), idS1, idS1, nil},
		{"coordenador para supervisor ajeno", actor(idC, entity.RoleCoordenador), idS3, "", domain.ErrReassignmentDenied},
		{"gerente para supervisor de segundo nivel", actor(idG, entity.RoleGerente), idS3, idS3, nil},
		{"gerente para su coordenador", actor(idG, entity.RoleGerente), idC, "", domain.ErrReassignmentDenied},
		{"gerente para supervisor de otro gerente", actor(idG, entity.RoleGerente), idS4, "", domain.ErrReassignmentDenied},
		{"admin para cualquier supervisor", actor(idAdmin, entity.RoleAdmin), idS4, idS4, nil},
		{"admin para un gerente", actor(idAdmin, entity.RoleAdmin), idG2, "", domain.ErrReassignmentDenied},
		{"admin para un coordenador", actor(idAdmin, entity.RoleAdmin), idX, "", domain.ErrReassignmentDenied},
		{"admin para usuario inexistente", actor(idAdmin, entity.RoleAdmin), "fantasma", "", domain.ErrReassignmentDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := eng.Reassigner.OwnerForCreate(ctx, tt.actor, tt.requested)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.ErrorIs(t, err, domain.ErrForbidden, "ReassignmentDenied es un Forbidden")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

// La reasignación en actualización es más estricta que en creación.
func TestOwnerForUpdate(t *testing.T) {
	eng := hierarchy.NewEngine(orgSnapshot())
	ctx := context.Background()

	tests := []struct {
		name        string
		actor       entity.Actor
		current     string
		requested   string
		want        string
		wantChanged bool
		wantErr     error
	}{
		{"sin cambio de dueño", actor(idC, entity.RoleCoordenador), idS1, idS1, idS1, false, nil},
		{"dueño vacío mantiene el actual", actor(idS1, entity.RoleSupervisor), idS1, "", idS1, false, nil},
		{"coordenador no reasigna al actualizar aunque esté en su cierre", actor(idC, entity.RoleCoordenador), idS1, idS2, "", false, domain.ErrReassignmentDenied},
		{"supervisor no reasigna", actor(idS1, entity.RoleSupervisor), idS1, idS2, "", false, domain.ErrReassignmentDenied},
		{"gerente reasigna dentro de su cierre", actor(idG, entity.RoleGerente), idS1, idS3, idS3, true, nil},
		{"gerente no reasigna fuera de su cierre", actor(idG, entity.RoleGerente), idS1, idS4, "", false, domain.ErrReassignmentDenied},
		{"gerente no se asigna a sí mismo", actor(idG, entity.RoleGerente), idS1, idG, "", false, domain.ErrReassignmentDenied},
		{"gerente no reasigna a su coordenador", actor(idG, entity.RoleGerente), idS1, idC, "", false, domain.ErrReassignmentDenied},
		{"admin reasigna", actor(idAdmin, entity.RoleAdmin), idS1, idS4, idS4, true, nil},
		{"admin no reasigna a un gerente", actor(idAdmin, entity.RoleAdmin), idS1, idG2, "", false, domain.ErrReassignmentDenied},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, changed, err := eng.Reassigner.OwnerForUpdate(ctx, tt.actor, tt.current, tt.requested)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.wantChanged, changed)
		})
	}
}

func TestOwnerForUpdate_FalloDeAlmacenamientoNoEsDenegacion(t *testing.T) {
	eng := hierarchy.NewEngine(failingSource{})
	_, _, err := eng.Reassigner.OwnerForUpdate(context.Background(), actor(idG, entity.RoleGerente), idS1, idS3)
	assert.ErrorIs(t, err, errStoreDown)
	assert.NotErrorIs(t, err, domain.ErrForbidden)
}

// Propiedad: todo dueño asignado a otro usuario, al crear o al actualizar, es un supervisor.
func TestOwnerFor_DestinoSiempreSupervisor(t *testing.T) {
	eng := hierarchy.NewEngine(orgSnapshot())
	ctx := context.Background()
	for _, m := range orgMembers() {
		a := actor(m.ID, m.Role)
		for _, target := range orgMembers() {
			if target.ID == m.ID {
				continue
			}
			if owner, err := eng.Reassigner.OwnerForCreate(ctx, a, target.ID); err == nil {
				assert.Equal(t, entity.RoleSupervisor, target.Role, "%s crea para %s", m.ID, owner)
			}
			if _, changed, err := eng.Reassigner.OwnerForUpdate(ctx, a, idSL, target.ID); err == nil && changed {
				assert.Equal(t, entity.RoleSupervisor, target.Role, "%s reasigna a %s", m.ID, target.ID)
			}
		}
	}
}
