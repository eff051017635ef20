package usecase

import (
	"context"

	"github.com/jhoicas/agenda-api/internal/application/dto"
	"github.com/jhoicas/agenda-api/internal/application/org"
	"github.com/jhoicas/agenda-api/internal/domain"
	"github.com/jhoicas/agenda-api/internal/domain/entity"
	"github.com/jhoicas/agenda-api/internal/domain/repository"
	"github.com/jhoicas/agenda-api/pkg/textnorm"
)

// UserUseCase consultas de usuarios para selectores y la pantalla de equipo.
type UserUseCase struct {
	repo repository.UserRepository
}

// NewUserUseCase construye el caso de uso con el puerto de persistencia.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo}
}

// GetByID obtiene un usuario por ID.
func (uc *UserUseCase) GetByID(ctx context.Context, id string) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, entity.NormalizeID(id))
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	r := org.ToUserResponse(user)
	return &r, nil
}

// List lista usuarios. Q compara sin acentos ni mayúsculas contra nombre y funcional.
func (uc *UserUseCase) List(ctx context.Context, q dto.UserListQuery) ([]dto.UserResponse, error) {
	users, err := uc.repo.ListAll(ctx)
	if err != nil {
		return nil, err
	}
	needle := textnorm.Fold(q.Q)
	filtered := users[:0]
	for _, u := range users {
		if q.Role != "" && u.Role.String() != q.Role {
			continue
		}
		if needle != "" && !textnorm.ContainsFolded(u.Name, needle) && !textnorm.ContainsFolded(u.Funcional, needle) {
			continue
		}
		filtered = append(filtered, u)
	}
	return org.ToUserResponses(filtered), nil
}
