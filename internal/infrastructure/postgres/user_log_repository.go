package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jhoicas/agenda-api/internal/domain/entity"
	"github.com/jhoicas/agenda-api/internal/domain/hierarchy"
	"github.com/jhoicas/agenda-api/internal/domain/repository"
)

var _ repository.UserLogRepository = (*UserLogRepo)(nil)

// UserLogRepo auditoría sobre user_logs (usable con pool o tx).
type UserLogRepo struct {
	q Querier
}

// NewUserLogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUserLogRepository(q Querier) *UserLogRepo {
	return &UserLogRepo{q: q}
}

// Create inserta un registro de auditoría.
func (r *UserLogRepo) Create(ctx context.Context, l *entity.UserLog) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	query := `
		INSERT INTO user_logs (id, user_id, timestamp, action_type, ip_address, user_agent, details, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	var details any
	if len(l.Details) > 0 {
		details = l.Details
	}
	_, err := r.q.Exec(ctx, query,
		l.ID, nullable(l.UserID), l.Timestamp, l.ActionType, nullable(l.IPAddress), nullable(l.UserAgent), details, l.Status,
	)
	if err != nil {
		return classify("create user log", err)
	}
	return nil
}

// List devuelve los registros de los usuarios visibles, del más reciente al más antiguo.
func (r *UserLogRepo) List(ctx context.Context, users hierarchy.OwnerSet, f repository.UserLogFilter) ([]*entity.UserLog, error) {
	if !users.IsUnrestricted() && users.Len() == 0 {
		return nil, nil
	}
	if f.UserID != "" && !isUUID(f.UserID) {
		return nil, nil
	}
	var (
		conds []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if !users.IsUnrestricted() {
		add("l.user_id = ANY($%d::uuid[])", users.IDs())
	}
	if f.UserID != "" {
		add("l.user_id = $%d", f.UserID)
	}
	if f.ActionType != "" {
		add("l.action_type = $%d", f.ActionType)
	}
	if f.Status != "" {
		add("l.status = $%d", f.Status)
	}
	if f.Start != nil {
		add("l.timestamp >= $%d", *f.Start)
	}
	if f.End != nil {
		add("l.timestamp <= $%d", *f.End)
	}

	var sb strings.Builder
	sb.WriteString(`
		SELECT l.id, COALESCE(l.user_id::text, ''), l.timestamp, l.action_type,
		       COALESCE(l.ip_address, ''), COALESCE(l.user_agent, ''), l.details, l.status,
		       COALESCE(u.name, ''), COALESCE(u.funcional, ''), COALESCE(u.role, '')
		FROM user_logs l LEFT JOIN users u ON u.id = l.user_id`)
	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY l.timestamp DESC")
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&sb, " LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		fmt.Fprintf(&sb, " OFFSET $%d", len(args))
	}

	rows, err := r.q.Query(ctx, sb.String(), args...)
	if err != nil {
		return nil, classify("list user logs", err)
	}
	defer rows.Close()
	var list []*entity.UserLog
	for rows.Next() {
		var l entity.UserLog
		var role string
		if err := rows.Scan(&l.ID, &l.UserID, &l.Timestamp, &l.ActionType, &l.IPAddress, &l.UserAgent,
			&l.Details, &l.Status, &l.UserName, &l.UserFuncional, &role); err != nil {
			return nil, classify("scan user log", err)
		}
		l.UserRole = entity.Role(role)
		list = append(list, &l)
	}
	return list, classify("iterate user logs", rows.Err())
}
