package repository

import (
	"context"

	"github.com/jhoicas/agenda-api/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User (DIP).
// Los métodos de búsqueda devuelven (nil, nil) cuando el usuario no existe.
type UserRepository interface {
	GetByID(ctx context.Context, id string) (*entity.User, error)
	// FindByFuncional busca por matrícula ya normalizada (solo dígitos).
	FindByFuncional(ctx context.Context, funcional string) (*entity.User, error)
	ListAll(ctx context.Context) ([]*entity.User, error)
	// ListByIDs devuelve los usuarios indicados; los ids inexistentes se omiten.
	ListByIDs(ctx context.Context, ids []string) ([]*entity.User, error)
}
