package entity

import (
	"fmt"
	"strings"
	"time"
)

// Role es el nivel jerárquico de un usuario. Conjunto cerrado: ver ParseRole.
type Role string

// Roles válidos para User.
const (
	RoleSupervisor  Role = "supervisor"
	RoleCoordenador Role = "coordenador"
	RoleGerente     Role = "gerente"
	RoleAdmin       Role = "admin"
)

// Roles devuelve los roles conocidos, de la base a la cima.
func Roles() []Role {
	return []Role{RoleSupervisor, RoleCoordenador, RoleGerente, RoleAdmin}
}

// ParseRole convierte el texto del token o de la DB en un Role válido.
func ParseRole(s string) (Role, error) {
	r := Role(strings.ToLower(strings.TrimSpace(s)))
	switch r {
	case RoleSupervisor, RoleCoordenador, RoleGerente, RoleAdmin:
		return r, nil
	}
	return "", fmt.Errorf("rol desconocido %q", s)
}

// Valid informa si el rol pertenece al conjunto cerrado.
func (r Role) Valid() bool {
	switch r {
	case RoleSupervisor, RoleCoordenador, RoleGerente, RoleAdmin:
		return true
	}
	return false
}

func (r Role) String() string { return string(r) }

// User representa un usuario del equipo comercial.
type User struct {
	ID           string
	Name         string
	Funcional    string // matrícula del colaborador, usada para login
	Role         Role
	Email        string
	PasswordHash string // bcrypt
	CreatedAt    time.Time
}

// Actor es la identidad verificada de quien hace la petición (claims del JWT).
// El rol no se vuelve a leer de la DB durante la vida del token.
type Actor struct {
	ID   string
	Role Role
}

// Member es la vista mínima de un usuario que necesita el recorrido jerárquico.
type Member struct {
	ID   string
	Role Role
}
