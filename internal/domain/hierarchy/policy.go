package hierarchy

import "github.com/jhoicas/agenda-api/internal/domain/entity"

// rolePolicy describe el alcance de un rol dentro del árbol.
type rolePolicy struct {
	// levels[i] es el rol esperado a profundidad i+1. Lo que no coincide se descarta.
	levels []entity.Role
	// unrestricted: el cierre es todo el sistema y no se recorre el árbol.
	unrestricted bool
	// assignOnCreate: puede crear eventos para alguien de su cierre.
	assignOnCreate bool
	// reassignOnUpdate: puede cambiar el dueño de un evento existente.
	reassignOnUpdate bool
	// ownerRole: rol exigido al dueño cuando el actor asigna el evento a otro usuario.
	ownerRole entity.Role
}

// policies es la única fuente de verdad de la jerarquía; ningún otro punto ramifica por rol.
var policies = map[entity.Role]rolePolicy{
	entity.RoleSupervisor: {},
	entity.RoleCoordenador: {
		levels:         []entity.Role{entity.RoleSupervisor},
		assignOnCreate: true,
		ownerRole:      entity.RoleSupervisor,
	},
	entity.RoleGerente: {
		levels:           []entity.Role{entity.RoleCoordenador, entity.RoleSupervisor},
		assignOnCreate:   true,
		reassignOnUpdate: true,
		ownerRole:        entity.RoleSupervisor,
	},
	entity.RoleAdmin: {
		unrestricted:     true,
		assignOnCreate:   true,
		reassignOnUpdate: true,
		ownerRole:        entity.RoleSupervisor,
	},
}

// policyFor devuelve la política del rol. Un rol desconocido no alcanza a nadie.
func policyFor(r entity.Role) rolePolicy {
	return policies[r]
}

// Depth devuelve cuántos saltos recorre el cierre del rol; -1 si es ilimitado (admin).
func Depth(r entity.Role) int {
	p := policyFor(r)
	if p.unrestricted {
		return -1
	}
	return len(p.levels)
}

// ExpectedRoleAt devuelve el rol aceptado a la profundidad indicada (1 = subordinado directo).
func ExpectedRoleAt(r entity.Role, depth int) (entity.Role, bool) {
	p := policyFor(r)
	if depth < 1 || depth > len(p.levels) {
		return "", false
	}
	return p.levels[depth-1], true
}

// HasSubordinates informa si el rol puede tener subordinados.
func HasSubordinates(r entity.Role) bool {
	p := policyFor(r)
	return p.unrestricted || len(p.levels) > 0
}

// IsUnrestricted informa si el rol ve a todo el sistema.
func IsUnrestricted(r entity.Role) bool {
	return policyFor(r).unrestricted
}
