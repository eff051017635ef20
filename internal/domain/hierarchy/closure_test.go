package hierarchy_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agenda-api/internal/domain/entity"
	"github.com/jhoicas/agenda-api/internal/domain/hierarchy"
)

func closureOf(t *testing.T, src hierarchy.EdgeSource, id string, role entity.Role) []string {
	t.Helper()
	eng := hierarchy.NewEngine(src)
	set, err := eng.Closure.SubordinatesOf(context.Background(), id, role)
	require.NoError(t, err)
	return set.Slice()
}

func TestSubordinatesOf_SupervisorEsHoja(t *testing.T) {
	assert.Empty(t, closureOf(t, orgSnapshot(), idS1, entity.RoleSupervisor))
}

func TestSubordinatesOf_CoordenadorSoloSupervisoresDirectos(t *testing.T) {
	assert.Equal(t, []string{idS1, idS2}, closureOf(t, orgSnapshot(), idC, entity.RoleCoordenador))
}

// Un subordinado directo con rol distinto de supervisor se descarta sin error.
func TestSubordinatesOf_CoordenadorDescartaRolInesperado(t *testing.T) {
	got := closureOf(t, orgSnapshot(), idC2, entity.RoleCoordenador)
	assert.Equal(t, []string{idS3}, got)
	assert.NotContains(t, got, idZ)
}

// Propiedad: para todo coordenador, el cierre contiene solo supervisores con arista directa.
func TestSubordinatesOf_PropiedadCoordenador(t *testing.T) {
	snap := orgSnapshot()
	ctx := context.Background()
	for _, m := range orgMembers() {
		if m.Role != entity.RoleCoordenador {
			continue
		}
		for _, id := range closureOf(t, snap, m.ID, m.Role) {
			sub, ok := snap.Member(id)
			require.True(t, ok)
			assert.Equal(t, entity.RoleSupervisor, sub.Role)
			sup, has, err := snap.DirectSuperior(ctx, id)
			require.NoError(t, err)
			assert.True(t, has)
			assert.Equal(t, m.ID, sup)
		}
	}
}

// Escenario: G gestiona C que gestiona S; el cierre incluye C y S, y nada por debajo de S.
func TestSubordinatesOf_GerenteDosSaltos(t *testing.T) {
	got := closureOf(t, orgSnapshot(), idG, entity.RoleGerente)
	assert.Equal(t, []string{idC, idC2, idS1, idS2, idS3}, got)
	assert.NotContains(t, got, idZ, "coordenador bajo coordenador no es esperado en el salto 2")
	assert.NotContains(t, got, idSD, "supervisor directo bajo gerente no es esperado en el salto 1")
	assert.NotContains(t, got, idX, "coordenador de otro gerente")
	assert.NotContains(t, got, idG2, "par del gerente")
}

// Propiedad: cierre(G) = coordenadores directos ∪ cierre de cada uno de ellos.
func TestSubordinatesOf_PropiedadGerenteUnionDeCoordenadores(t *testing.T) {
	snap := orgSnapshot()
	ctx := context.Background()
	for _, g := range orgMembers() {
		if g.Role != entity.RoleGerente {
			continue
		}
		want := hierarchy.NewIDSet()
		children, err := snap.DirectSubordinates(ctx, g.ID)
		require.NoError(t, err)
		for _, c := range children {
			if c.Role != entity.RoleCoordenador {
				continue
			}
			want.Add(c.ID)
			for _, s := range closureOf(t, snap, c.ID, c.Role) {
				want.Add(s)
			}
		}
		assert.Equal(t, want.Slice(), closureOf(t, snap, g.ID, g.Role), "gerente %s", g.ID)
	}
}

func TestSubordinatesOf_AdminTodosMenosElMismo(t *testing.T) {
	got := closureOf(t, orgSnapshot(), idAdmin, entity.RoleAdmin)
	assert.Len(t, got, len(orgMembers())-1)
	assert.NotContains(t, got, idAdmin)
	assert.Contains(t, got, idSL, "admin alcanza también a usuarios sin superior")
}

func TestSubordinatesOf_RolDesconocidoVacio(t *testing.T) {
	assert.Empty(t, closureOf(t, orgSnapshot(), idG, entity.Role("diretor")))
}

// Escenario: aristas cíclicas A→B, B→A no deben colgar el recorrido.
func TestSubordinatesOf_CicloTermina(t *testing.T) {
	members := []entity.Member{
		{ID: "a", Role: entity.RoleCoordenador},
		{ID: "b", Role: entity.RoleSupervisor},
		{ID: "gg", Role: entity.RoleGerente},
		{ID: "cc", Role: entity.RoleCoordenador},
	}
	edges := []entity.HierarchyEdge{
		edge("b", "a"), edge("a", "b"),
		edge("cc", "gg"), edge("gg", "cc"),
	}
	src := newCountingSource(hierarchy.NewSnapshot(members, edges))

	assert.Equal(t, []string{"b"}, closureOf(t, src, "a", entity.RoleCoordenador))
	assert.Equal(t, []string{"cc"}, closureOf(t, src, "gg", entity.RoleGerente))

	for id, n := range src.calls {
		assert.Equal(t, 1, n, "id %s expandido más de una vez", id)
	}
}

// Un ciclo largo que vuelve al origen por supervisores tampoco duplica resultados.
func TestSubordinatesOf_CicloDeGerenteVisitaUnaVez(t *testing.T) {
	members := []entity.Member{
		{ID: "g", Role: entity.RoleGerente},
		{ID: "c", Role: entity.RoleCoordenador},
		{ID: "s", Role: entity.RoleSupervisor},
	}
	edges := []entity.HierarchyEdge{edge("c", "g"), edge("s", "c"), edge("g", "s"), edge("c", "s")}
	src := newCountingSource(hierarchy.NewSnapshot(members, edges))

	got := closureOf(t, src, "g", entity.RoleGerente)
	assert.Equal(t, []string{"c", "s"}, got)
	assert.LessOrEqual(t, src.total, 2)
}

func TestSubordinatesOf_FalloDeAlmacenamiento(t *testing.T) {
	eng := hierarchy.NewEngine(failingSource{})
	_, err := eng.Closure.SubordinatesOf(context.Background(), idG, entity.RoleGerente)
	assert.ErrorIs(t, err, errStoreDown)

	_, err = eng.Closure.SubordinatesOf(context.Background(), idAdmin, entity.RoleAdmin)
	assert.ErrorIs(t, err, errStoreDown)
}

func TestResolve_ConservaRolesYOrdenPorNivel(t *testing.T) {
	eng := hierarchy.NewEngine(orgSnapshot())
	got, err := eng.Closure.Resolve(context.Background(), idG, entity.RoleGerente)
	require.NoError(t, err)
	require.Len(t, got, 5)
	assert.Equal(t, entity.RoleCoordenador, got[0].Role)
	assert.Equal(t, entity.RoleCoordenador, got[1].Role)
	for _, m := range got[2:] {
		assert.Equal(t, entity.RoleSupervisor, m.Role)
	}
}

func TestPolicy_ProfundidadYRolEsperado(t *testing.T) {
	assert.Equal(t, 0, hierarchy.Depth(entity.RoleSupervisor))
	assert.Equal(t, 1, hierarchy.Depth(entity.RoleCoordenador))
	assert.Equal(t, 2, hierarchy.Depth(entity.RoleGerente))
	assert.Equal(t, -1, hierarchy.Depth(entity.RoleAdmin))

	r, ok := hierarchy.ExpectedRoleAt(entity.RoleGerente, 1)
	assert.True(t, ok)
	assert.Equal(t, entity.RoleCoordenador, r)
	r, ok = hierarchy.ExpectedRoleAt(entity.RoleGerente, 2)
	assert.True(t, ok)
	assert.Equal(t, entity.RoleSupervisor, r)
	_, ok = hierarchy.ExpectedRoleAt(entity.RoleGerente, 3)
	assert.False(t, ok)
	_, ok = hierarchy.ExpectedRoleAt(entity.RoleSupervisor, 1)
	assert.False(t, ok)
}
