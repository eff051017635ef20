// Package org expone el motor de jerarquía a los casos de uso: visibilidad, autorización,
// reasignación, consultas del equipo y mantenimiento de aristas.
package org

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/agenda-api/internal/domain"
	"github.com/jhoicas/agenda-api/internal/domain/entity"
	"github.com/jhoicas/agenda-api/internal/domain/hierarchy"
	"github.com/jhoicas/agenda-api/internal/domain/repository"
)

// CacheInvalidator descarta el snapshot local de la jerarquía.
type CacheInvalidator interface {
	Invalidate(source string)
}

// ChangePublisher avisa a otras instancias que la jerarquía cambió.
type ChangePublisher interface {
	Publish(ctx context.Context) error
}

// Service casos de uso del organigrama.
type Service struct {
	engine    *hierarchy.Engine
	edges     repository.HierarchyRepository
	users     repository.UserRepository
	cache     CacheInvalidator
	publisher ChangePublisher
	log       zerolog.Logger
	now       func() time.Time
}

// Option configura el servicio.
type Option func(*Service)

// WithCache registra el cache local a invalidar tras cada mutación.
func WithCache(c CacheInvalidator) Option {
	return func(s *Service) { s.cache = c }
}

// WithPublisher registra el bus de invalidación entre instancias.
func WithPublisher(p ChangePublisher) Option {
	return func(s *Service) { s.publisher = p }
}

// NewService construye el servicio. engine resuelve sobre la fuente de lectura (cache o DB);
// edges se usa para mutaciones y comprobaciones que necesitan datos frescos.
func NewService(engine *hierarchy.Engine, edges repository.HierarchyRepository, users repository.UserRepository, log zerolog.Logger, opts ...Option) *Service {
	s := &Service{
		engine: engine,
		edges:  edges,
		users:  users,
		log:    log.With().Str("component", "org").Logger(),
		now:    time.Now,
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// ResolveVisibleOwners dueños cuyos eventos puede ver el actor.
func (s *Service) ResolveVisibleOwners(ctx context.Context, actor entity.Actor) (hierarchy.OwnerSet, error) {
	set, err := s.engine.Scope.VisibleOwners(ctx, actor)
	if err != nil {
		s.logStoreError(err, actor, "resolve visible owners")
		return hierarchy.OwnerSet{}, err
	}
	return set, nil
}

// Authorize devuelve nil si el actor puede ejecutar action sobre un evento de ownerID,
// ErrForbidden si no. El mensaje nunca describe la jerarquía.
func (s *Service) Authorize(ctx context.Context, actor entity.Actor, ownerID string, action hierarchy.Action) error {
	ok, err := s.engine.Guard.CanAccess(ctx, actor, ownerID, action)
	if err != nil {
		s.logStoreError(err, actor, "authorize")
		return err
	}
	authzDecisions.WithLabelValues(actor.Role.String(), string(action), decisionLabel(ok)).Inc()
	if !ok {
		s.log.Warn().
			Str("actor_id", actor.ID).
			Str("actor_role", actor.Role.String()).
			Str("action", string(action)).
			Str("owner_id", ownerID).
			Msg("acceso denegado")
		return domain.ErrForbidden
	}
	return nil
}

// ValidateReassignment informa si newOwnerID está en el cierre del actor.
func (s *Service) ValidateReassignment(ctx context.Context, actor entity.Actor, newOwnerID string) (bool, error) {
	ok, err := s.engine.Reassigner.CanReassign(ctx, actor, entity.NormalizeID(newOwnerID))
	if err != nil {
		s.logStoreError(err, actor, "validate reassignment")
		return false, err
	}
	return ok, nil
}

// OwnerForCreate resuelve el dueño de un evento nuevo.
func (s *Service) OwnerForCreate(ctx context.Context, actor entity.Actor, requested string) (string, error) {
	owner, err := s.engine.Reassigner.OwnerForCreate(ctx, actor, entity.NormalizeID(requested))
	return owner, s.reassignOutcome("create", actor, requested, err)
}

// OwnerForUpdate resuelve el dueño tras una actualización.
func (s *Service) OwnerForUpdate(ctx context.Context, actor entity.Actor, current, requested string) (string, bool, error) {
	owner, changed, err := s.engine.Reassigner.OwnerForUpdate(ctx, actor, current, entity.NormalizeID(requested))
	return owner, changed, s.reassignOutcome("update", actor, requested, err)
}

func (s *Service) reassignOutcome(phase string, actor entity.Actor, requested string, err error) error {
	switch {
	case err == nil:
		reassignDecisions.WithLabelValues(phase, "allowed").Inc()
	case errors.Is(err, domain.ErrReassignmentDenied):
		reassignDecisions.WithLabelValues(phase, "denied").Inc()
		s.log.Warn().
			Str("actor_id", actor.ID).
			Str("actor_role", actor.Role.String()).
			Str("phase", phase).
			Str("requested_owner", requested).
			Msg("reasignación denegada")
	default:
		s.logStoreError(err, actor, "reassign "+phase)
	}
	return err
}

func (s *Service) logStoreError(err error, actor entity.Actor, op string) {
	ev := s.log.Error()
	if errors.Is(err, context.Canceled) {
		ev = s.log.Debug()
	}
	ev.Err(err).Str("actor_id", actor.ID).Str("op", op).Msg("fallo resolviendo jerarquía")
}
