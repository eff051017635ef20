package hierarchy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agenda-api/internal/domain/entity"
	"github.com/jhoicas/agenda-api/internal/domain/hierarchy"
)

func TestVisibleOwners_PorRol(t *testing.T) {
	eng := hierarchy.NewEngine(orgSnapshot())
	ctx := context.Background()

	tests := []struct {
		name  string
		actor entity.Actor
		want  []string
	}{
		{"supervisor solo a sí mismo", actor(idS1, entity.RoleSupervisor), []string{idS1}},
		{"coordenador más sus supervisores", actor(idC, entity.RoleCoordenador), []string{idC, idS1, idS2}},
		{"gerente más dos niveles", actor(idG, entity.RoleGerente), []string{idC, idC2, idG, idS1, idS2, idS3}},
		{"coordenador sin equipo", actor(idZ, entity.RoleCoordenador), []string{idZ}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			set, err := eng.Scope.VisibleOwners(ctx, tt.actor)
			require.NoError(t, err)
			assert.False(t, set.IsUnrestricted())
			assert.Equal(t, tt.want, set.IDs())
			assert.Equal(t, len(tt.want), set.Len())
		})
	}
}

// Propiedad: admin recibe el marcador, nunca una lista de ids que pueda quedar obsoleta.
func TestVisibleOwners_AdminEsMarcador(t *testing.T) {
	src := newCountingSource(orgSnapshot())
	eng := hierarchy.NewEngine(src)

	set, err := eng.Scope.VisibleOwners(context.Background(), actor(idAdmin, entity.RoleAdmin))
	require.NoError(t, err)
	assert.True(t, set.IsUnrestricted())
	assert.Nil(t, set.IDs())
	assert.Equal(t, -1, set.Len())
	assert.True(t, set.Contains("usuario-creado-despues"))
	assert.False(t, set.Contains(""))
	assert.Zero(t, src.total, "admin no debe recorrer el árbol")
}

func TestVisibleOwners_SupervisorNoConsultaAlmacenamiento(t *testing.T) {
	eng := hierarchy.NewEngine(failingSource{})
	set, err := eng.Scope.VisibleOwners(context.Background(), actor(idS1, entity.RoleSupervisor))
	require.NoError(t, err)
	assert.Equal(t, []string{idS1}, set.IDs())
}

func TestVisibleOwners_FalloDeAlmacenamiento(t *testing.T) {
	eng := hierarchy.NewEngine(failingSource{})
	_, err := eng.Scope.VisibleOwners(context.Background(), actor(idC, entity.RoleCoordenador))
	assert.ErrorIs(t, err, errStoreDown)
}

func TestOwnerSet_Contains(t *testing.T) {
	set := hierarchy.OwnersOf("a", "b", "")
	assert.True(t, set.Contains("a"))
	assert.False(t, set.Contains("c"))
	assert.Equal(t, 2, set.Len())
}
