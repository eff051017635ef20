package hierarchy_test

import (
	"context"
	"errors"
	"sync"

	"github.com/jhoicas/agenda-api/internal/domain/entity"
	"github.com/jhoicas/agenda-api/internal/domain/hierarchy"
)

// ──────────────────────────────────────────────────────────────────────────────
// Organigrama de prueba
//
//	admin
//	gerente G ── coordenador C ── supervisor S1, S2
//	          └─ coordenador C2 ── supervisor S3
//	                            └─ coordenador Z (error de datos: no es supervisor)
//	          └─ supervisor SD (atajo directo gerente → supervisor)
//	gerente G2 ── coordenador X ── supervisor S4
//	supervisor SL (sin superior)
// ──────────────────────────────────────────────────────────────────────────────

const (
	idAdmin = "admin"
	idG     = "g"
	idG2    = "g2"
	idC     = "c"
	idC2    = "c2"
	idX     = "x"
	idZ     = "z"
	idS1    = "s1"
	idS2    = "s2"
	idS3    = "s3"
	idS4    = "s4"
	idSD    = "sd"
	idSL    = "sl"
)

func orgMembers() []entity.Member {
	return []entity.Member{
		{ID: idAdmin, Role: entity.RoleAdmin},
		{ID: idG, Role: entity.RoleGerente},
		{ID: idG2, Role: entity.RoleGerente},
		{ID: idC, Role: entity.RoleCoordenador},
		{ID: idC2, Role: entity.RoleCoordenador},
		{ID: idX, Role: entity.RoleCoordenador},
		{ID: idZ, Role: entity.RoleCoordenador},
		{ID: idS1, Role: entity.RoleSupervisor},
		{ID: idS2, Role: entity.RoleSupervisor},
		{ID: idS3, Role: entity.RoleSupervisor},
		{ID: idS4, Role: entity.RoleSupervisor},
		{ID: idSD, Role: entity.RoleSupervisor},
		{ID: idSL, Role: entity.RoleSupervisor},
	}
}

func edge(sub, sup string) entity.HierarchyEdge {
	return entity.HierarchyEdge{ID: sub + "->" + sup, SubordinateID: sub, SuperiorID: sup}
}

func orgEdges() []entity.HierarchyEdge {
	return []entity.HierarchyEdge{
		edge(idC, idG),
		edge(idC2, idG),
		edge(idSD, idG),
		edge(idS1, idC),
		edge(idS2, idC),
		edge(idS3, idC2),
		edge(idZ, idC2),
		edge(idX, idG2),
		edge(idS4, idX),
	}
}

func orgSnapshot() *hierarchy.Snapshot {
	return hierarchy.NewSnapshot(orgMembers(), orgEdges())
}

func actor(id string, role entity.Role) entity.Actor {
	return entity.Actor{ID: id, Role: role}
}

// countingSource cuenta las lecturas de subordinados por usuario.
type countingSource struct {
	hierarchy.EdgeSource
	mu    sync.Mutex
	calls map[string]int
	total int
}

func newCountingSource(src hierarchy.EdgeSource) *countingSource {
	return &countingSource{EdgeSource: src, calls: map[string]int{}}
}

func (c *countingSource) DirectSubordinates(ctx context.Context, userID string) ([]entity.Member, error) {
	c.mu.Lock()
	c.calls[userID]++
	c.total++
	c.mu.Unlock()
	return c.EdgeSource.DirectSubordinates(ctx, userID)
}

var errStoreDown = errors.New("connection refused")

// failingSource simula un almacenamiento caído.
type failingSource struct{}

func (failingSource) DirectSuperior(context.Context, string) (string, bool, error) {
	return "", false, errStoreDown
}

func (failingSource) DirectSubordinates(context.Context, string) ([]entity.Member, error) {
	return nil, errStoreDown
}

func (failingSource) Members(context.Context) ([]entity.Member, error) {
	return nil, errStoreDown
}
