package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound        = errors.New("recurso no encontrado")
	ErrUserNotFound    = errors.New("usuario no encontrado")
	ErrInvalidInput    = errors.New("entrada inválida")
	ErrDuplicate       = errors.New("recurso duplicado")
	ErrUnauthorized    = errors.New("credenciales inválidas")
	ErrUnauthenticated = errors.New("no autenticado")
	ErrForbidden       = errors.New("sin permiso para esta acción")
	ErrConflict        = errors.New("conflicto con el estado actual")
	ErrTransient       = errors.New("almacenamiento no disponible")

	// ErrReassignmentDenied es un Forbidden específico de la regla de reasignación:
	// errors.Is(err, ErrForbidden) también es verdadero.
	ErrReassignmentDenied = fmt.Errorf("reasignación no permitida: %w", ErrForbidden)
)

// Transient envuelve un fallo de infraestructura para que el caller pueda reintentar.
func Transient(op string, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w: %v", op, ErrTransient, err)
}
