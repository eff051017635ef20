package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/agenda-api/internal/application/dto"
	"github.com/jhoicas/agenda-api/internal/application/org"
	"github.com/jhoicas/agenda-api/internal/domain"
	"github.com/jhoicas/agenda-api/internal/domain/entity"
	"github.com/jhoicas/agenda-api/internal/domain/hierarchy"
	"github.com/jhoicas/agenda-api/internal/domain/repository"
)

// EventUseCase agenda de eventos con visibilidad y autorización jerárquicas.
// Orden en operaciones sobre un evento existente: buscar (404), autorizar (403),
// validar reasignación, y solo entonces escribir evento + auditoría en una transacción.
type EventUseCase struct {
	repo  repository.EventRepository
	tx    EventTxRunner
	org   *org.Service
	audit *AuditUseCase
	now   func() time.Time
}

// NewEventUseCase construye el caso de uso.
func NewEventUseCase(repo repository.EventRepository, tx EventTxRunner, orgSvc *org.Service, audit *AuditUseCase) *EventUseCase {
	return &EventUseCase{repo: repo, tx: tx, org: orgSvc, audit: audit, now: time.Now}
}

// List eventos visibles para el actor. El conjunto de dueños se resuelve una sola vez y los
// filtros se aplican sobre él; un owner_id fuera del conjunto produce una lista vacía.
func (uc *EventUseCase) List(ctx context.Context, actor entity.Actor, q dto.EventListQuery) (*dto.EventListResponse, error) {
	start, err := parseTimeParam("start", q.Start, false)
	if err != nil {
		return nil, err
	}
	end, err := parseTimeParam("end", q.End, true)
	if err != nil {
		return nil, err
	}
	q.DefaultPage()
	page := dto.PageResponse{Limit: q.Limit, Offset: q.Offset}

	owners, err := uc.org.ResolveVisibleOwners(ctx, actor)
	if err != nil {
		return nil, err
	}
	ownerID := entity.NormalizeID(q.OwnerID)
	if ownerID != "" && !owners.Contains(ownerID) {
		return &dto.EventListResponse{Items: []dto.EventResponse{}, Page: page}, nil
	}
	events, err := uc.repo.ListByOwnerIn(ctx, owners, repository.EventFilter{
		Start:     start,
		End:       end,
		EventType: q.Type,
		OwnerID:   ownerID,
		Limit:     q.Limit,
		Offset:    q.Offset,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.EventResponse, 0, len(events))
	for _, e := range events {
		items = append(items, toEventResponse(e))
	}
	return &dto.EventListResponse{Items: items, Page: page}, nil
}

// Get obtiene un evento si el actor puede leerlo.
func (uc *EventUseCase) Get(ctx context.Context, actor entity.Actor, id string) (*dto.EventResponse, error) {
	e, err := uc.load(ctx, actor, id, hierarchy.ActionRead, dto.RequestMeta{})
	if err != nil {
		return nil, err
	}
	r := toEventResponse(e)
	return &r, nil
}

// Create crea un evento. Sin supervisor_id el dueño es el creador; con otro dueño se
// aplican las reglas de asignación al crear.
func (uc *EventUseCase) Create(ctx context.Context, actor entity.Actor, in dto.CreateEventRequest, meta dto.RequestMeta) (*dto.EventResponse, error) {
	if in.EndDate.Before(in.StartDate) {
		return nil, fmt.Errorf("%w: end_date anterior a start_date", domain.ErrInvalidInput)
	}
	owner, err := uc.org.OwnerForCreate(ctx, actor, in.SupervisorID)
	if err != nil {
		uc.denied(ctx, actor, err, "create", "", meta)
		return nil, err
	}

	now := uc.now()
	e := &entity.Event{
		ID:               uuid.New().String(),
		OwnerID:          owner,
		CreatorID:        actor.ID,
		Title:            in.Title,
		Description:      in.Description,
		StartDate:        in.StartDate,
		EndDate:          in.EndDate,
		EventType:        in.EventType,
		Location:         in.Location,
		Subcategory:      in.Subcategory,
		OtherDescription: in.OtherDescription,
		InformAgency:     in.InformAgency,
		AgencyNumber:     in.AgencyNumber,
		IsPA:             in.IsPA,
		Municipality:     in.Municipality,
		State:            in.State,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	err = uc.tx.RunEventWrite(ctx, func(events repository.EventRepository, logs repository.UserLogRepository) error {
		if err := events.Create(ctx, e); err != nil {
			return err
		}
		return logs.Create(ctx, uc.entry(actor, entity.ActionEventCreated, meta, map[string]any{
			"event_id": e.ID,
			"owner_id": e.OwnerID,
		}))
	})
	if err != nil {
		return nil, err
	}
	return uc.reload(ctx, e)
}

// Update actualiza un evento. Un supervisor_id distinto del dueño actual es una
// reasignación y solo procede según las reglas de actualización.
func (uc *EventUseCase) Update(ctx context.Context, actor entity.Actor, id string, in dto.UpdateEventRequest, meta dto.RequestMeta) (*dto.EventResponse, error) {
	e, err := uc.load(ctx, actor, id, hierarchy.ActionUpdate, meta)
	if err != nil {
		return nil, err
	}
	requested := ""
	if in.SupervisorID != nil {
		requested = *in.SupervisorID
	}
	previousOwner := e.OwnerID
	owner, changed, err := uc.org.OwnerForUpdate(ctx, actor, previousOwner, requested)
	if err != nil {
		uc.denied(ctx, actor, err, "reassign", e.ID, meta)
		return nil, err
	}

	applyUpdate(e, in)
	e.OwnerID = owner
	e.UpdatedAt = uc.now()
	if e.EndDate.Before(e.StartDate) {
		return nil, fmt.Errorf("%w: end_date anterior a start_date", domain.ErrInvalidInput)
	}

	action, details := entity.ActionEventUpdated, map[string]any{"event_id": e.ID}
	if changed {
		action = entity.ActionEventReassigned
		details["from_owner_id"] = previousOwner
		details["to_owner_id"] = owner
	}
	err = uc.tx.RunEventWrite(ctx, func(events repository.EventRepository, logs repository.UserLogRepository) error {
		if err := events.Update(ctx, e, previousOwner); err != nil {
			return err
		}
		return logs.Create(ctx, uc.entry(actor, action, meta, details))
	})
	if err != nil {
		return nil, err
	}
	return uc.reload(ctx, e)
}

// UpdateFeedback actualiza la tratativa. Se autoriza como una actualización.
func (uc *EventUseCase) UpdateFeedback(ctx context.Context, actor entity.Actor, id string, in dto.UpdateFeedbackRequest, meta dto.RequestMeta) (*dto.EventResponse, error) {
	e, err := uc.load(ctx, actor, id, hierarchy.ActionUpdate, meta)
	if err != nil {
		return nil, err
	}
	now := uc.now()
	err = uc.tx.RunEventWrite(ctx, func(events repository.EventRepository, logs repository.UserLogRepository) error {
		if err := events.UpdateFeedback(ctx, e.ID, in.Feedback, now); err != nil {
			return err
		}
		return logs.Create(ctx, uc.entry(actor, entity.ActionEventUpdated, meta, map[string]any{
			"event_id": e.ID,
			"field":    "feedback",
		}))
	})
	if err != nil {
		return nil, err
	}
	e.Feedback = in.Feedback
	e.UpdatedAt = now
	r := toEventResponse(e)
	return &r, nil
}

// Delete elimina un evento.
func (uc *EventUseCase) Delete(ctx context.Context, actor entity.Actor, id string, meta dto.RequestMeta) error {
	e, err := uc.load(ctx, actor, id, hierarchy.ActionDelete, meta)
	if err != nil {
		return err
	}
	return uc.tx.RunEventWrite(ctx, func(events repository.EventRepository, logs repository.UserLogRepository) error {
		if err := events.Delete(ctx, e.ID); err != nil {
			return err
		}
		return logs.Create(ctx, uc.entry(actor, entity.ActionEventDeleted, meta, map[string]any{
			"event_id": e.ID,
			"owner_id": e.OwnerID,
			"title":    e.Title,
		}))
	})
}

// load busca el evento (ErrNotFound) y después autoriza (ErrForbidden).
func (uc *EventUseCase) load(ctx context.Context, actor entity.Actor, id string, action hierarchy.Action, meta dto.RequestMeta) (*entity.Event, error) {
	id = entity.NormalizeID(id)
	if id == "" {
		return nil, domain.ErrNotFound
	}
	e, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	if err := uc.org.Authorize(ctx, actor, e.OwnerID, action); err != nil {
		uc.denied(ctx, actor, err, string(action), e.ID, meta)
		return nil, err
	}
	return e, nil
}

// denied deja constancia de una negativa de permiso. Los fallos de almacenamiento no se registran.
func (uc *EventUseCase) denied(ctx context.Context, actor entity.Actor, err error, op, eventID string, meta dto.RequestMeta) {
	if uc.audit == nil || !errors.Is(err, domain.ErrForbidden) {
		return
	}
	details := map[string]any{"operation": op}
	if eventID != "" {
		details["event_id"] = eventID
	}
	l := uc.entry(actor, entity.ActionAccessDenied, meta, details)
	l.Status = entity.LogStatusFailure
	uc.audit.Append(ctx, l)
}

func (uc *EventUseCase) entry(actor entity.Actor, action string, meta dto.RequestMeta, details map[string]any) *entity.UserLog {
	return &entity.UserLog{
		UserID:     actor.ID,
		Timestamp:  uc.now(),
		ActionType: action,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
		Details:    details,
		Status:     entity.LogStatusSuccess,
	}
}

// reload relee el evento para devolver los nombres de dueño y creador.
func (uc *EventUseCase) reload(ctx context.Context, e *entity.Event) (*dto.EventResponse, error) {
	fresh, err := uc.repo.FindByID(ctx, e.ID)
	if err != nil || fresh == nil {
		r := toEventResponse(e)
		return &r, nil
	}
	r := toEventResponse(fresh)
	return &r, nil
}

func applyUpdate(e *entity.Event, in dto.UpdateEventRequest) {
	setString := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	setBool := func(dst *bool, src *bool) {
		if src != nil {
			*dst = *src
		}
	}
	setString(&e.Title, in.Title)
	setString(&e.Description, in.Description)
	setString(&e.EventType, in.EventType)
	setString(&e.Location, in.Location)
	setString(&e.Subcategory, in.Subcategory)
	setString(&e.OtherDescription, in.OtherDescription)
	setString(&e.AgencyNumber, in.AgencyNumber)
	setString(&e.Municipality, in.Municipality)
	setString(&e.State, in.State)
	setBool(&e.InformAgency, in.InformAgency)
	setBool(&e.IsPA, in.IsPA)
	if in.StartDate != nil {
		e.StartDate = *in.StartDate
	}
	if in.EndDate != nil {
		e.EndDate = *in.EndDate
	}
}

func toEventResponse(e *entity.Event) dto.EventResponse {
	return dto.EventResponse{
		ID:               e.ID,
		SupervisorID:     e.OwnerID,
		SupervisorName:   e.OwnerName,
		CreatorID:        e.CreatorID,
		CreatorName:      e.CreatorName,
		Title:            e.Title,
		Description:      e.Description,
		StartDate:        e.StartDate,
		EndDate:          e.EndDate,
		EventType:        e.EventType,
		Location:         e.Location,
		Subcategory:      e.Subcategory,
		OtherDescription: e.OtherDescription,
		InformAgency:     e.InformAgency,
		AgencyNumber:     e.AgencyNumber,
		IsPA:             e.IsPA,
		Municipality:     e.Municipality,
		State:            e.State,
		Feedback:         e.Feedback,
		CreatedAt:        e.CreatedAt,
		UpdatedAt:        e.UpdatedAt,
	}
}
