package hierarchy

import "sort"

// IDSet conjunto de identificadores de usuario.
type IDSet map[string]struct{}

// NewIDSet construye un conjunto con los ids dados.
func NewIDSet(ids ...string) IDSet {
	s := make(IDSet, len(ids))
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// Add agrega un id; los vacíos se ignoran.
func (s IDSet) Add(id string) {
	if id == "" {
		return
	}
	s[id] = struct{}{}
}

// Contains informa si el id pertenece al conjunto.
func (s IDSet) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Len cantidad de elementos.
func (s IDSet) Len() int { return len(s) }

// Slice devuelve los ids ordenados, para respuestas y consultas deterministas.
func (s IDSet) Slice() []string {
	out := make([]string, 0, len(s))
	for id := range s {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}
