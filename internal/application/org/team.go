package org

import (
	"context"

	"github.com/jhoicas/agenda-api/internal/application/dto"
	"github.com/jhoicas/agenda-api/internal/domain"
	"github.com/jhoicas/agenda-api/internal/domain/entity"
	"github.com/jhoicas/agenda-api/internal/domain/hierarchy"
)

// Team devuelve el cierre del actor con nombre y nivel, para la pantalla de equipo.
func (s *Service) Team(ctx context.Context, actor entity.Actor) ([]dto.TeamMemberResponse, error) {
	members, err := s.engine.Closure.Resolve(ctx, actor.ID, actor.Role)
	if err != nil {
		s.logStoreError(err, actor, "team")
		return nil, err
	}
	if len(members) == 0 {
		return []dto.TeamMemberResponse{}, nil
	}
	levels := make(map[string]int, len(members))
	ids := make([]string, 0, len(members))
	for _, m := range members {
		levels[m.ID] = levelOf(actor.Role, m.Role)
		ids = append(ids, m.ID)
	}
	users, err := s.users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	out := make([]dto.TeamMemberResponse, 0, len(users))
	for _, u := range users {
		out = append(out, dto.TeamMemberResponse{
			ID:        u.ID,
			Name:      u.Name,
			Funcional: u.Funcional,
			Role:      u.Role.String(),
			Level:     levels[u.ID],
		})
	}
	return out, nil
}

// levelOf profundidad a la que role es aceptado bajo actorRole; 0 si el cierre no tiene niveles (admin).
func levelOf(actorRole, role entity.Role) int {
	for d := 1; d <= hierarchy.Depth(actorRole); d++ {
		if expected, ok := hierarchy.ExpectedRoleAt(actorRole, d); ok && expected == role {
			return d
		}
	}
	return 0
}

// DirectSubordinates subordinados directos de userID. Solo coordenador y gerente tienen
// equipo propio; para el resto la lista es vacía.
func (s *Service) DirectSubordinates(ctx context.Context, userID string) ([]dto.UserResponse, error) {
	userID = entity.NormalizeID(userID)
	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if u == nil {
		return nil, domain.ErrUserNotFound
	}
	if u.Role != entity.RoleCoordenador && u.Role != entity.RoleGerente {
		return []dto.UserResponse{}, nil
	}
	children, err := s.engine.Graph.DirectSubordinates(ctx, userID)
	if err != nil {
		return nil, err
	}
	ids := make([]string, 0, len(children))
	for _, c := range children {
		ids = append(ids, c.ID)
	}
	users, err := s.users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return ToUserResponses(users), nil
}

// Superior superior directo de userID; ErrNotFound si no tiene.
func (s *Service) Superior(ctx context.Context, userID string) (*dto.UserResponse, error) {
	supID, ok, err := s.engine.Graph.DirectSuperior(ctx, entity.NormalizeID(userID))
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, domain.ErrNotFound
	}
	sup, err := s.users.GetByID(ctx, supID)
	if err != nil {
		return nil, err
	}
	if sup == nil {
		return nil, domain.ErrNotFound
	}
	r := ToUserResponse(sup)
	return &r, nil
}

// Supervisors supervisores dentro del cierre de userID (selector de dueño al crear eventos).
// userID debe ser coordenador o gerente y el actor debe ser él mismo, un ancestro o admin.
func (s *Service) Supervisors(ctx context.Context, actor entity.Actor, userID string) ([]dto.UserResponse, error) {
	userID = entity.NormalizeID(userID)
	target, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if target == nil {
		return nil, domain.ErrUserNotFound
	}
	if target.Role != entity.RoleCoordenador && target.Role != entity.RoleGerente {
		return nil, domain.ErrForbidden
	}
	if err := s.Authorize(ctx, actor, userID, hierarchy.ActionRead); err != nil {
		return nil, err
	}
	members, err := s.engine.Closure.Resolve(ctx, userID, target.Role)
	if err != nil {
		return nil, err
	}
	var ids []string
	for _, m := range members {
		if m.Role == entity.RoleSupervisor {
			ids = append(ids, m.ID)
		}
	}
	users, err := s.users.ListByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}
	return ToUserResponses(users), nil
}

// ToUserResponse convierte un usuario a su DTO.
func ToUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Name:      u.Name,
		Funcional: u.Funcional,
		Role:      u.Role.String(),
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}

// ToUserResponses convierte una lista; nunca devuelve nil.
func ToUserResponses(users []*entity.User) []dto.UserResponse {
	out := make([]dto.UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, ToUserResponse(u))
	}
	return out
}
