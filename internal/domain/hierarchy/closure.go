package hierarchy

import (
	"context"

	"github.com/jhoicas/agenda-api/internal/domain/entity"
)

// ClosureResolver calcula los subordinados transitivos de un usuario.
type ClosureResolver struct {
	graph *OrgGraph
}

// NewClosureResolver construye el resolvedor sobre el grafo.
func NewClosureResolver(graph *OrgGraph) *ClosureResolver {
	return &ClosureResolver{graph: graph}
}

// SubordinatesOf devuelve el cierre de userID según la política de role.
// El propio usuario nunca forma parte del resultado.
func (r *ClosureResolver) SubordinatesOf(ctx context.Context, userID string, role entity.Role) (IDSet, error) {
	members, err := r.Resolve(ctx, userID, role)
	if err != nil {
		return nil, err
	}
	out := make(IDSet, len(members))
	for _, m := range members {
		out.Add(m.ID)
	}
	return out, nil
}

// Resolve igual que SubordinatesOf pero conserva el rol de cada subordinado, en orden
// de recorrido (primero el nivel 1, luego el nivel 2).
//
// Recorrido en anchura con conjunto de visitados: el almacenamiento no impide ciclos,
// así que cada id se visita como máximo una vez. En cada salto solo se aceptan los hijos
// con el rol esperado para esa profundidad; el resto se descarta en silencio y no se expande.
func (r *ClosureResolver) Resolve(ctx context.Context, userID string, role entity.Role) ([]entity.Member, error) {
	if userID == "" {
		return nil, nil
	}
	p := policyFor(role)
	if p.unrestricted {
		return r.everyone(ctx, userID)
	}
	if len(p.levels) == 0 {
		return nil, nil
	}

	visited := NewIDSet(userID)
	var out []entity.Member
	frontier := []string{userID}
	for _, expected := range p.levels {
		var next []string
		for _, id := range frontier {
			if err := ctx.Err(); err != nil {
				return nil, err
			}
			children, err := r.graph.DirectSubordinates(ctx, id)
			if err != nil {
				return nil, err
			}
			for _, c := range children {
				if visited.Contains(c.ID) || c.Role != expected {
					continue
				}
				visited.Add(c.ID)
				out = append(out, c)
				next = append(next, c.ID)
			}
		}
		if len(next) == 0 {
			break
		}
		frontier = next
	}
	return out, nil
}

func (r *ClosureResolver) everyone(ctx context.Context, self string) ([]entity.Member, error) {
	all, err := r.graph.Members(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]entity.Member, 0, len(all))
	for _, m := range all {
		if m.ID == self {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}
