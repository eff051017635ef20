package memstore

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/agenda-api/internal/domain"
	"github.com/jhoicas/agenda-api/internal/domain/entity"
	"github.com/jhoicas/agenda-api/internal/domain/hierarchy"
	"github.com/jhoicas/agenda-api/internal/domain/repository"
)

var _ repository.EventRepository = (*EventRepo)(nil)

// EventRepo eventos en memoria.
type EventRepo struct {
	s *Store
}

// NewEventRepository construye el repo sobre s.
func NewEventRepository(s *Store) *EventRepo { return &EventRepo{s: s} }

func (r *EventRepo) view(e *entity.Event) *entity.Event {
	cp := *e
	if u, ok := r.s.users[e.OwnerID]; ok {
		cp.OwnerName = u.Name
	}
	if u, ok := r.s.users[e.CreatorID]; ok {
		cp.CreatorName = u.Name
	}
	return &cp
}

func (r *EventRepo) FindByID(_ context.Context, id string) (*entity.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	e, ok := r.s.events[id]
	if !ok {
		return nil, nil
	}
	return r.view(e), nil
}

func (r *EventRepo) ListByOwnerIn(_ context.Context, owners hierarchy.OwnerSet, f repository.EventFilter) ([]*entity.Event, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.Event
	for _, e := range r.s.events {
		if !owners.Contains(e.OwnerID) {
			continue
		}
		if f.OwnerID != "" && e.OwnerID != f.OwnerID {
			continue
		}
		if f.Start != nil && e.EndDate.Before(*f.Start) {
			continue
		}
		if f.End != nil && e.StartDate.After(*f.End) {
			continue
		}
		if f.EventType != "" && e.EventType != f.EventType {
			continue
		}
		out = append(out, r.view(e))
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].StartDate.Equal(out[j].StartDate) {
			return out[i].StartDate.Before(out[j].StartDate)
		}
		return out[i].ID < out[j].ID
	})
	if f.Offset > 0 {
		if f.Offset >= len(out) {
			return nil, nil
		}
		out = out[f.Offset:]
	}
	if f.Limit > 0 && len(out) > f.Limit {
		out = out[:f.Limit]
	}
	return out, nil
}

func (r *EventRepo) Create(_ context.Context, e *entity.Event) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[e.OwnerID]; !ok {
		return fmt.Errorf("%w: dueño inexistente", domain.ErrInvalidInput)
	}
	if e.ID == "" {
		e.ID = uuid.NewString()
	}
	cp := *e
	r.s.events[e.ID] = &cp
	return nil
}

func (r *EventRepo) Update(_ context.Context, e *entity.Event, expectedOwnerID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	cur, ok := r.s.events[e.ID]
	if !ok {
		return domain.ErrNotFound
	}
	if cur.OwnerID != expectedOwnerID {
		return fmt.Errorf("%w: el dueño del evento cambió", domain.ErrConflict)
	}
	cp := *e
	cp.CreatorID, cp.CreatedAt, cp.Feedback = cur.CreatorID, cur.CreatedAt, cur.Feedback
	r.s.events[e.ID] = &cp
	return nil
}

func (r *EventRepo) UpdateFeedback(_ context.Context, id, feedback string, updatedAt time.Time) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	e, ok := r.s.events[id]
	if !ok {
		return domain.ErrNotFound
	}
	e.Feedback = feedback
	e.UpdatedAt = updatedAt
	return nil
}

func (r *EventRepo) Delete(_ context.Context, id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if _, ok := r.s.events[id]; !ok {
		return domain.ErrNotFound
	}
	delete(r.s.events, id)
	return nil
}
