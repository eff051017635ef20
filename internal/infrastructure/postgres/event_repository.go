package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/agenda-api/internal/domain"
	"github.com/jhoicas/agenda-api/internal/domain/entity"
	"github.com/jhoicas/agenda-api/internal/domain/hierarchy"
	"github.com/jhoicas/agenda-api/internal/domain/repository"
)

var _ repository.EventRepository = (*EventRepo)(nil)

// EventRepo implementación sobre la tabla eventos (usable con pool o tx).
type EventRepo struct {
	q Querier
}

// NewEventRepository construye el adaptador. Pasar pool o tx (Querier).
func NewEventRepository(q Querier) *EventRepo {
	return &EventRepo{q: q}
}

const eventSelect = `
	SELECT e.id, e.supervisor_id, COALESCE(o.name, ''), COALESCE(e.creator_id::text, ''), COALESCE(c.name, ''),
	       e.title, COALESCE(e.description, ''), e.start_date, e.end_date, e.event_type,
	       COALESCE(e.location, ''), COALESCE(e.subcategory, ''), COALESCE(e.other_description, ''),
	       e.inform_agency, COALESCE(e.agency_number, ''), e.is_pa,
	       COALESCE(e.municipality, ''), COALESCE(e.state, ''), COALESCE(e.feedback, ''),
	       e.created_at, e.updated_at
	FROM eventos e
	LEFT JOIN users o ON o.id = e.supervisor_id
	LEFT JOIN users c ON c.id = e.creator_id`

func scanEvent(row pgx.Row) (*entity.Event, error) {
	var e entity.Event
	err := row.Scan(
		&e.ID, &e.OwnerID, &e.OwnerName, &e.CreatorID, &e.CreatorName,
		&e.Title, &e.Description, &e.StartDate, &e.EndDate, &e.EventType,
		&e.Location, &e.Subcategory, &e.OtherDescription,
		&e.InformAgency, &e.AgencyNumber, &e.IsPA,
		&e.Municipality, &e.State, &e.Feedback,
		&e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &e, nil
}

// FindByID obtiene un evento por ID.
func (r *EventRepo) FindByID(ctx context.Context, id string) (*entity.Event, error) {
	if !isUUID(id) {
		return nil, nil
	}
	e, err := scanEvent(r.q.QueryRow(ctx, eventSelect+` WHERE e.id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get event", err)
	}
	return e, nil
}

// ListByOwnerIn lista eventos de los dueños visibles aplicando los filtros opcionales.
// Un conjunto finito vacío no consulta la base.
func (r *EventRepo) ListByOwnerIn(ctx context.Context, owners hierarchy.OwnerSet, f repository.EventFilter) ([]*entity.Event, error) {
	if !owners.IsUnrestricted() && owners.Len() == 0 {
		return nil, nil
	}
	if f.OwnerID != "" && !isUUID(f.OwnerID) {
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
	if !owners.IsUnrestricted() {
		add("e.supervisor_id = ANY($%d::uuid[])", owners.IDs())
	}
	if f.OwnerID != "" {
		add("e.supervisor_id = $%d", f.OwnerID)
	}
	if f.Start != nil {
		add("e.end_date >= $%d", *f.Start)
	}
	if f.End != nil {
		add("e.start_date <= $%d", *f.End)
	}
	if f.EventType != "" {
		add("e.event_type = $%d", f.EventType)
	}

	var sb strings.Builder
	sb.WriteString(eventSelect)
	if len(conds) > 0 {
		sb.WriteString(" WHERE ")
		sb.WriteString(strings.Join(conds, " AND "))
	}
	sb.WriteString(" ORDER BY e.start_date, e.id")
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
		return nil, classify("list events", err)
	}
	defer rows.Close()
	var list []*entity.Event
	for rows.Next() {
		e, err := scanEvent(rows)
		if err != nil {
			return nil, classify("scan event", err)
		}
		list = append(list, e)
	}
	return list, classify("iterate events", rows.Err())
}

// Create persiste un evento nuevo.
func (r *EventRepo) Create(ctx context.Context, e *entity.Event) error {
	if e.ID == "" {
		e.ID = uuid.New().String()
	}
	query := `
		INSERT INTO eventos (id, supervisor_id, creator_id, title, description, start_date, end_date, event_type,
			location, subcategory, other_description, inform_agency, agency_number, is_pa,
			municipality, state, feedback, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, $19)`
	_, err := r.q.Exec(ctx, query,
		e.ID, e.OwnerID, nullable(e.CreatorID), e.Title, nullable(e.Description), e.StartDate, e.EndDate, e.EventType,
		nullable(e.Location), nullable(e.Subcategory), nullable(e.OtherDescription), e.InformAgency,
		nullable(e.AgencyNumber), e.IsPA, nullable(e.Municipality), nullable(e.State), nullable(e.Feedback),
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: dueño inexistente", domain.ErrInvalidInput)
		}
		return classify("create event", err)
	}
	return nil
}

// Update guarda el evento con verificación optimista del dueño: si entre la autorización y la
// escritura otro cambio movió el evento, no se pisa y se devuelve ErrConflict.
func (r *EventRepo) Update(ctx context.Context, e *entity.Event, expectedOwnerID string) error {
	query := `
		UPDATE eventos SET supervisor_id = $3, title = $4, description = $5, start_date = $6, end_date = $7,
			event_type = $8, location = $9, subcategory = $10, other_description = $11, inform_agency = $12,
			agency_number = $13, is_pa = $14, municipality = $15, state = $16, updated_at = $17
		WHERE id = $1 AND supervisor_id = $2`
	cmd, err := r.q.Exec(ctx, query,
		e.ID, expectedOwnerID, e.OwnerID, e.Title, nullable(e.Description), e.StartDate, e.EndDate,
		e.EventType, nullable(e.Location), nullable(e.Subcategory), nullable(e.OtherDescription), e.InformAgency,
		nullable(e.AgencyNumber), e.IsPA, nullable(e.Municipality), nullable(e.State), e.UpdatedAt,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return fmt.Errorf("%w: dueño inexistente", domain.ErrInvalidInput)
		}
		return classify("update event", err)
	}
	if cmd.RowsAffected() > 0 {
		return nil
	}
	var exists bool
	if err := r.q.QueryRow(ctx, `SELECT EXISTS (SELECT 1 FROM eventos WHERE id = $1)`, e.ID).Scan(&exists); err != nil {
		return classify("update event", err)
	}
	if !exists {
		return domain.ErrNotFound
	}
	return fmt.Errorf("%w: el dueño del evento cambió", domain.ErrConflict)
}

// UpdateFeedback actualiza solo la tratativa.
func (r *EventRepo) UpdateFeedback(ctx context.Context, id, feedback string, updatedAt time.Time) error {
	cmd, err := r.q.Exec(ctx, `UPDATE eventos SET feedback = $2, updated_at = $3 WHERE id = $1`, id, feedback, updatedAt)
	if err != nil {
		return classify("update feedback", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Delete elimina un evento.
func (r *EventRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM eventos WHERE id = $1`, id)
	if err != nil {
		return classify("delete event", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
