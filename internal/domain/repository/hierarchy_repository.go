package repository

import (
	"context"

	"github.com/jhoicas/agenda-api/internal/domain/entity"
	"github.com/jhoicas/agenda-api/internal/domain/hierarchy"
)

// HierarchyRepository persistencia de las aristas subordinado → superior.
// Además de mutar aristas sirve como EdgeSource del motor de jerarquía.
type HierarchyRepository interface {
	hierarchy.EdgeSource

	ListEdges(ctx context.Context) ([]entity.HierarchyEdge, error)
	ListEdgeViews(ctx context.Context) ([]entity.HierarchyEdgeView, error)
	// SetSuperior reemplaza el superior directo de subordinateID (upsert por subordinado).
	SetSuperior(ctx context.Context, edge *entity.HierarchyEdge) error
	// RemoveEdge elimina la arista del subordinado; ErrNotFound si no existía.
	RemoveEdge(ctx context.Context, subordinateID string) error
}
