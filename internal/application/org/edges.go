package org

import (
	"context"
	"fmt"

	"github.com/jhoicas/agenda-api/internal/application/dto"
	"github.com/jhoicas/agenda-api/internal/domain"
	"github.com/jhoicas/agenda-api/internal/domain/entity"
	"github.com/jhoicas/agenda-api/internal/domain/hierarchy"
)

// maxChainLength tope del recorrido hacia arriba al detectar ciclos.
const maxChainLength = 64

// invalidationSource etiqueta de métricas para invalidaciones originadas en esta instancia.
const invalidationSource = "local"

// SetSuperior fija (o reemplaza) el superior directo de un usuario. Rechaza aristas que
// cerrarían un ciclo. Tras escribir invalida el cache local y avisa al resto de instancias.
func (s *Service) SetSuperior(ctx context.Context, actor entity.Actor, in dto.SetSuperiorRequest) (*dto.HierarchyEdgeResponse, error) {
	subID := entity.NormalizeID(in.SubordinateID)
	supID := entity.NormalizeID(in.SuperiorID)
	if subID == "" || supID == "" {
		return nil, fmt.Errorf("%w: subordinado y superior son obligatorios", domain.ErrInvalidInput)
	}
	if subID == supID {
		return nil, fmt.Errorf("%w: un usuario no puede ser su propio superior", domain.ErrInvalidInput)
	}
	sub, err := s.users.GetByID(ctx, subID)
	if err != nil {
		return nil, err
	}
	sup, err := s.users.GetByID(ctx, supID)
	if err != nil {
		return nil, err
	}
	if sub == nil || sup == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := s.checkNoCycle(ctx, subID, supID); err != nil {
		return nil, err
	}
	if !hierarchy.IsUnrestricted(sup.Role) && levelOf(sup.Role, sub.Role) != 1 {
		// Se guarda igual; el recorrido descartará la arista.
		s.log.Warn().
			Str("subordinate_role", sub.Role.String()).
			Str("superior_role", sup.Role.String()).
			Msg("arista con roles que el recorrido no seguirá")
	}

	edge := &entity.HierarchyEdge{SubordinateID: subID, SuperiorID: supID, CreatedAt: s.now()}
	if err := s.edges.SetSuperior(ctx, edge); err != nil {
		return nil, err
	}
	edgeMutations.WithLabelValues("set").Inc()
	s.log.Info().Str("actor_id", actor.ID).Str("subordinate_id", subID).Str("superior_id", supID).Msg("superior asignado")
	s.afterMutation(ctx)

	return &dto.HierarchyEdgeResponse{
		ID:              edge.ID,
		SubordinateID:   subID,
		SubordinateName: sub.Name,
		SubordinateRole: sub.Role.String(),
		SuperiorID:      supID,
		SuperiorName:    sup.Name,
		SuperiorRole:    sup.Role.String(),
		CreatedAt:       edge.CreatedAt,
	}, nil
}

// checkNoCycle sube desde supID por la cadena de superiores; si aparece subID, la arista
// nueva cerraría un ciclo. Lee del repositorio, no del cache.
func (s *Service) checkNoCycle(ctx context.Context, subID, supID string) error {
	seen := hierarchy.NewIDSet()
	cur := supID
	for i := 0; i < maxChainLength; i++ {
		if cur == subID {
			return fmt.Errorf("%w: la asignación crearía un ciclo en la jerarquía", domain.ErrConflict)
		}
		if seen.Contains(cur) {
			return nil
		}
		seen.Add(cur)
		next, ok, err := s.edges.DirectSuperior(ctx, cur)
		if err != nil {
			return err
		}
		if !ok {
			return nil
		}
		cur = next
	}
	return nil
}

// RemoveEdge elimina el superior directo de un usuario.
func (s *Service) RemoveEdge(ctx context.Context, actor entity.Actor, subordinateID string) error {
	subID := entity.NormalizeID(subordinateID)
	if err := s.edges.RemoveEdge(ctx, subID); err != nil {
		return err
	}
	edgeMutations.WithLabelValues("remove").Inc()
	s.log.Info().Str("actor_id", actor.ID).Str("subordinate_id", subID).Msg("superior removido")
	s.afterMutation(ctx)
	return nil
}

// ListEdges vuelca todas las aristas con nombres y roles.
func (s *Service) ListEdges(ctx context.Context) ([]dto.HierarchyEdgeResponse, error) {
	views, err := s.edges.ListEdgeViews(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.HierarchyEdgeResponse, 0, len(views))
	for _, v := range views {
		out = append(out, dto.HierarchyEdgeResponse{
			ID:              v.ID,
			SubordinateID:   v.SubordinateID,
			SubordinateName: v.SubordinateName,
			SubordinateRole: v.SubordinateRole.String(),
			SuperiorID:      v.SuperiorID,
			SuperiorName:    v.SuperiorName,
			SuperiorRole:    v.SuperiorRole.String(),
			CreatedAt:       v.CreatedAt,
		})
	}
	return out, nil
}

func (s *Service) afterMutation(ctx context.Context) {
	if s.cache != nil {
		s.cache.Invalidate(invalidationSource)
	}
	if s.publisher != nil {
		if err := s.publisher.Publish(ctx); err != nil {
			// Las demás instancias convergen al vencer su TTL.
			s.log.Warn().Err(err).Msg("no se pudo publicar la invalidación de jerarquía")
		}
	}
}
