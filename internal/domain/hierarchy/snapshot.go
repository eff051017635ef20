package hierarchy

import (
	"context"
	"sort"

	"github.com/jhoicas/agenda-api/internal/domain/entity"
)

var _ EdgeSource = (*Snapshot)(nil)

// Snapshot copia inmutable de usuarios y aristas en memoria. La usan la caché de
// jerarquía, la CLI y los tests como EdgeSource sin tocar la base de datos.
type Snapshot struct {
	members  map[string]entity.Member
	ordered  []entity.Member
	parent   map[string]string
	children map[string][]entity.Member
	edges    int
}

// NewSnapshot construye la vista. Las aristas que apuntan a usuarios inexistentes se
// ignoran; si un subordinado aparece con varios superiores, DirectSuperior devuelve el
// primero pero todas las aristas siguen visibles como hijos (el recorrido lo tolera).
func NewSnapshot(members []entity.Member, edges []entity.HierarchyEdge) *Snapshot {
	s := &Snapshot{
		members:  make(map[string]entity.Member, len(members)),
		parent:   make(map[string]string, len(edges)),
		children: make(map[string][]entity.Member),
	}
	for _, m := range members {
		if m.ID == "" {
			continue
		}
		if _, dup := s.members[m.ID]; dup {
			continue
		}
		s.members[m.ID] = m
		s.ordered = append(s.ordered, m)
	}
	sort.Slice(s.ordered, func(i, j int) bool { return s.ordered[i].ID < s.ordered[j].ID })

	for _, e := range edges {
		sub, ok := s.members[e.SubordinateID]
		if !ok {
			continue
		}
		if _, ok := s.members[e.SuperiorID]; !ok {
			continue
		}
		if _, has := s.parent[e.SubordinateID]; !has {
			s.parent[e.SubordinateID] = e.SuperiorID
		}
		s.children[e.SuperiorID] = append(s.children[e.SuperiorID], sub)
		s.edges++
	}
	return s
}

// DirectSuperior implementa EdgeSource.
func (s *Snapshot) DirectSuperior(_ context.Context, userID string) (string, bool, error) {
	p, ok := s.parent[userID]
	return p, ok, nil
}

// DirectSubordinates implementa EdgeSource. Devuelve una copia.
func (s *Snapshot) DirectSubordinates(_ context.Context, userID string) ([]entity.Member, error) {
	c := s.children[userID]
	if len(c) == 0 {
		return nil, nil
	}
	out := make([]entity.Member, len(c))
	copy(out, c)
	return out, nil
}

// Members implementa EdgeSource. Devuelve una copia ordenada por id.
func (s *Snapshot) Members(_ context.Context) ([]entity.Member, error) {
	out := make([]entity.Member, len(s.ordered))
	copy(out, s.ordered)
	return out, nil
}

// Member busca un usuario por id.
func (s *Snapshot) Member(id string) (entity.Member, bool) {
	m, ok := s.members[id]
	return m, ok
}

// EdgeCount cantidad de aristas válidas cargadas.
func (s *Snapshot) EdgeCount() int { return s.edges }

// MemberCount cantidad de usuarios cargados.
func (s *Snapshot) MemberCount() int { return len(s.ordered) }
