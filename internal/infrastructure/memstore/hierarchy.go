package memstore

import (
	"context"
	"sort"

	"github.com/jhoicas/agenda-api/internal/domain"
	"github.com/jhoicas/agenda-api/internal/domain/entity"
	"github.com/jhoicas/agenda-api/internal/domain/repository"
)

var _ repository.HierarchyRepository = (*HierarchyRepo)(nil)

// HierarchyRepo aristas en memoria.
type HierarchyRepo struct {
	s *Store
}

// NewHierarchyRepository construye el repo sobre s.
func NewHierarchyRepository(s *Store) *HierarchyRepo { return &HierarchyRepo{s: s} }

func (r *HierarchyRepo) read() error {
	r.s.hierarchyReads.Add(1)
	return r.s.hierarchyErr
}

func (r *HierarchyRepo) DirectSuperior(_ context.Context, userID string) (string, bool, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.read(); err != nil {
		return "", false, err
	}
	e, ok := r.s.edges[userID]
	if !ok {
		return "", false, nil
	}
	return e.SuperiorID, true, nil
}

func (r *HierarchyRepo) DirectSubordinates(_ context.Context, userID string) ([]entity.Member, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.read(); err != nil {
		return nil, err
	}
	var out []entity.Member
	for _, u := range r.s.sortedUsers() {
		if e, ok := r.s.edges[u.ID]; ok && e.SuperiorID == userID {
			out = append(out, entity.Member{ID: u.ID, Role: u.Role})
		}
	}
	return out, nil
}

func (r *HierarchyRepo) Members(_ context.Context) ([]entity.Member, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.read(); err != nil {
		return nil, err
	}
	out := make([]entity.Member, 0, len(r.s.users))
	for _, u := range r.s.users {
		out = append(out, entity.Member{ID: u.ID, Role: u.Role})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *HierarchyRepo) ListEdges(_ context.Context) ([]entity.HierarchyEdge, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	if err := r.read(); err != nil {
		return nil, err
	}
	out := make([]entity.HierarchyEdge, 0, len(r.s.edges))
	for _, e := range r.s.edges {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].SubordinateID < out[j].SubordinateID })
	return out, nil
}

func (r *HierarchyRepo) ListEdgeViews(ctx context.Context) ([]entity.HierarchyEdgeView, error) {
	edges, err := r.ListEdges(ctx)
	if err != nil {
		return nil, err
	}
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	out := make([]entity.HierarchyEdgeView, 0, len(edges))
	for _, e := range edges {
		v := entity.HierarchyEdgeView{HierarchyEdge: e}
		if u, ok := r.s.users[e.SubordinateID]; ok {
			v.SubordinateName, v.SubordinateRole = u.Name, u.Role
		}
		if u, ok := r.s.users[e.SuperiorID]; ok {
			v.SuperiorName, v.SuperiorRole = u.Name, u.Role
		}
		out = append(out, v)
	}
	return out, nil
}

func (r *HierarchyRepo) SetSuperior(_ context.Context, edge *entity.HierarchyEdge) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[edge.SubordinateID]; !ok {
		return domain.ErrNotFound
	}
	if _, ok := r.s.users[edge.SuperiorID]; !ok {
		return domain.ErrNotFound
	}
	if prev, ok := r.s.edges[edge.SubordinateID]; ok {
		edge.ID = prev.ID
	} else if edge.ID == "" {
		edge.ID = edge.SubordinateID + "->" + edge.SuperiorID
	}
	r.s.edges[edge.SubordinateID] = *edge
	return nil
}

func (r *HierarchyRepo) RemoveEdge(_ context.Context, subordinateID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.edges[subordinateID]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.edges, subordinateID)
	return nil
}
