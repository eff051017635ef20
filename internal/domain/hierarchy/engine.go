package hierarchy

// Engine agrupa los componentes del motor construidos sobre una misma fuente.
type Engine struct {
	Graph      *OrgGraph
	Closure    *ClosureResolver
	Scope      *VisibilityScope
	Guard      *AuthorizationGuard
	Reassigner *ReassignmentValidator
}

// NewEngine arma el motor completo sobre src.
func NewEngine(src EdgeSource) *Engine {
	graph := NewOrgGraph(src)
	closure := NewClosureResolver(graph)
	return &Engine{
		Graph:      graph,
		Closure:    closure,
		Scope:      NewVisibilityScope(closure),
		Guard:      NewAuthorizationGuard(closure),
		Reassigner: NewReassignmentValidator(closure),
	}
}
