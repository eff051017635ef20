package hierarchy

import (
	"context"

	"github.com/jhoicas/agenda-api/internal/domain/entity"
)

// EdgeSource es la capacidad de lectura de la jerarquía que se inyecta en el motor.
// "No encontrado" se expresa con resultados vacíos, nunca con error; los errores
// representan fallos del almacenamiento.
type EdgeSource interface {
	// DirectSuperior devuelve el superior directo de userID, si existe.
	DirectSuperior(ctx context.Context, userID string) (string, bool, error)
	// DirectSubordinates devuelve los subordinados directos de userID con su rol.
	DirectSubordinates(ctx context.Context, userID string) ([]entity.Member, error)
	// Members devuelve todos los usuarios del sistema.
	Members(ctx context.Context) ([]entity.Member, error)
}

// OrgGraph vista de solo lectura sobre las aristas subordinado → superior.
type OrgGraph struct {
	src EdgeSource
}

// NewOrgGraph construye el grafo sobre la fuente indicada.
func NewOrgGraph(src EdgeSource) *OrgGraph {
	return &OrgGraph{src: src}
}

// DirectSuperior devuelve el superior directo del usuario.
func (g *OrgGraph) DirectSuperior(ctx context.Context, userID string) (string, bool, error) {
	if userID == "" {
		return "", false, nil
	}
	return g.src.DirectSuperior(ctx, userID)
}

// DirectSubordinates devuelve los subordinados directos sin duplicados, en el orden de la fuente.
func (g *OrgGraph) DirectSubordinates(ctx context.Context, userID string) ([]entity.Member, error) {
	if userID == "" {
		return nil, nil
	}
	children, err := g.src.DirectSubordinates(ctx, userID)
	if err != nil {
		return nil, err
	}
	seen := make(IDSet, len(children))
	out := children[:0:0]
	for _, c := range children {
		if c.ID == "" || seen.Contains(c.ID) {
			continue
		}
		seen.Add(c.ID)
		out = append(out, c)
	}
	return out, nil
}

// Members devuelve todos los usuarios conocidos por la fuente.
func (g *OrgGraph) Members(ctx context.Context) ([]entity.Member, error) {
	return g.src.Members(ctx)
}
