package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/agenda-api/internal/domain"
	"github.com/jhoicas/agenda-api/internal/domain/entity"
	"github.com/jhoicas/agenda-api/internal/domain/repository"
)

var _ repository.HierarchyRepository = (*HierarchyRepo)(nil)

// HierarchyRepo aristas subordinado → superior sobre la tabla hierarchy.
// Cada lectura es una consulta: el snapshot en memoria vive en memcache.
type HierarchyRepo struct {
	q Querier
}

// NewHierarchyRepository construye el adaptador. Pasar pool o tx (Querier).
func NewHierarchyRepository(q Querier) *HierarchyRepo {
	return &HierarchyRepo{q: q}
}

// DirectSuperior implementa hierarchy.EdgeSource.
func (r *HierarchyRepo) DirectSuperior(ctx context.Context, userID string) (string, bool, error) {
	if !isUUID(userID) {
		return "", false, nil
	}
	var sup string
	err := r.q.QueryRow(ctx, `SELECT superior_id FROM hierarchy WHERE subordinate_id = $1 LIMIT 1`, userID).Scan(&sup)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return "", false, nil
		}
		return "", false, classify("direct superior", err)
	}
	return sup, true, nil
}

// DirectSubordinates implementa hierarchy.EdgeSource.
func (r *HierarchyRepo) DirectSubordinates(ctx context.Context, userID string) ([]entity.Member, error) {
	if !isUUID(userID) {
		return nil, nil
	}
	query := `
		SELECT u.id, u.role
		FROM hierarchy h JOIN users u ON u.id = h.subordinate_id
		WHERE h.superior_id = $1
		ORDER BY u.name`
	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, classify("direct subordinates", err)
	}
	return collectMembers(rows)
}

// Members implementa hierarchy.EdgeSource.
func (r *HierarchyRepo) Members(ctx context.Context) ([]entity.Member, error) {
	rows, err := r.q.Query(ctx, `SELECT id, role FROM users ORDER BY id`)
	if err != nil {
		return nil, classify("list members", err)
	}
	return collectMembers(rows)
}

// ListEdges devuelve todas las aristas (carga del snapshot).
func (r *HierarchyRepo) ListEdges(ctx context.Context) ([]entity.HierarchyEdge, error) {
	rows, err := r.q.Query(ctx, `SELECT id, subordinate_id, superior_id, created_at FROM hierarchy ORDER BY created_at, id`)
	if err != nil {
		return nil, classify("list edges", err)
	}
	defer rows.Close()
	var out []entity.HierarchyEdge
	for rows.Next() {
		var e entity.HierarchyEdge
		if err := rows.Scan(&e.ID, &e.SubordinateID, &e.SuperiorID, &e.CreatedAt); err != nil {
			return nil, classify("scan edge", err)
		}
		out = append(out, e)
	}
	return out, classify("iterate edges", rows.Err())
}

// ListEdgeViews devuelve las aristas con nombre y rol de ambos extremos.
func (r *HierarchyRepo) ListEdgeViews(ctx context.Context) ([]entity.HierarchyEdgeView, error) {
	query := `
		SELECT h.id, h.subordinate_id, h.superior_id, h.created_at,
		       sub.name, sub.role, sup.name, sup.role
		FROM hierarchy h
		JOIN users sub ON sub.id = h.subordinate_id
		JOIN users sup ON sup.id = h.superior_id
		ORDER BY sup.name, sub.name`
	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, classify("list edge views", err)
	}
	defer rows.Close()
	var out []entity.HierarchyEdgeView
	for rows.Next() {
		var v entity.HierarchyEdgeView
		var subRole, supRole string
		if err := rows.Scan(&v.ID, &v.SubordinateID, &v.SuperiorID, &v.CreatedAt,
			&v.SubordinateName, &subRole, &v.SuperiorName, &supRole); err != nil {
			return nil, classify("scan edge view", err)
		}
		v.SubordinateRole = entity.Role(subRole)
		v.SuperiorRole = entity.Role(supRole)
		out = append(out, v)
	}
	return out, classify("iterate edge views", rows.Err())
}

// SetSuperior inserta o reemplaza la arista del subordinado.
func (r *HierarchyRepo) SetSuperior(ctx context.Context, edge *entity.HierarchyEdge) error {
	if edge.ID == "" {
		edge.ID = uuid.New().String()
	}
	query := `
		INSERT INTO hierarchy (id, subordinate_id, superior_id, created_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (subordinate_id) DO UPDATE
		SET superior_id = EXCLUDED.superior_id, created_at = EXCLUDED.created_at
		RETURNING id`
	err := r.q.QueryRow(ctx, query, edge.ID, edge.SubordinateID, edge.SuperiorID, edge.CreatedAt).Scan(&edge.ID)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: usuario inexistente", domain.ErrNotFound)
		}
		return classify("set superior", err)
	}
	return nil
}

// RemoveEdge elimina la arista del subordinado.
func (r *HierarchyRepo) RemoveEdge(ctx context.Context, subordinateID string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM hierarchy WHERE subordinate_id = $1`, subordinateID)
	if err != nil {
		return classify("remove edge", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func collectMembers(rows pgx.Rows) ([]entity.Member, error) {
	defer rows.Close()
	var out []entity.Member
	for rows.Next() {
		var m entity.Member
		var role string
		if err := rows.Scan(&m.ID, &role); err != nil {
			return nil, classify("scan member", err)
		}
		m.Role = entity.Role(role)
		out = append(out, m)
	}
	return out, classify("iterate members", rows.Err())
}
