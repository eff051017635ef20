package memstore

import (
	"context"

	"github.com/google/uuid"

	"github.com/jhoicas/agenda-api/internal/domain/entity"
	"github.com/jhoicas/agenda-api/internal/domain/hierarchy"
	"github.com/jhoicas/agenda-api/internal/domain/repository"
)

var _ repository.UserLogRepository = (*UserLogRepo)(nil)

// UserLogRepo auditoría en memoria.
type UserLogRepo struct {
	s *Store
}

// NewUserLogRepository construye el repo sobre s.
func NewUserLogRepository(s *Store) *UserLogRepo { return &UserLogRepo{s: s} }

func (r *UserLogRepo) Create(_ context.Context, l *entity.UserLog) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	cp := *l
	r.s.logs = append(r.s.logs, &cp)
	return nil
}

func (r *UserLogRepo) List(_ context.Context, users hierarchy.OwnerSet, f repository.UserLogFilter) ([]*entity.UserLog, error) {
	r.s.mu.RLock()
	defer r.s.mu.RUnlock()
	var out []*entity.UserLog
	for i := len(r.s.logs) - 1; i >= 0; i-- {
		l := r.s.logs[i]
		switch {
		case !users.Contains(l.UserID),
			f.UserID != "" && l.UserID != f.UserID,
			f.ActionType != "" && l.ActionType != f.ActionType,
			f.Status != "" && l.Status != f.Status,
			f.Start != nil && l.Timestamp.Before(*f.Start),
			f.End != nil && l.Timestamp.After(*f.End):
			continue
		}
		cp := *l
		if u, ok := r.s.users[l.UserID]; ok {
			cp.UserName, cp.UserFuncional, cp.UserRole = u.Name, u.Funcional, u.Role
		}
		out = append(out, &cp)
	}
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
