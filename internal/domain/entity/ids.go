package entity

import (
	"strings"

	"github.com/google/uuid"
)

// NormalizeID lleva un identificador a su forma canónica (UUID en minúsculas con guiones).
// Acepta la variante en mayúsculas y sin guiones que emiten algunos clientes.
// Si no es un UUID se devuelve recortado, sin más cambios.
func NormalizeID(id string) string {
	id = strings.TrimSpace(id)
	if id == "" {
		return ""
	}
	if u, err := uuid.Parse(id); err == nil {
		return u.String()
	}
	return id
}
