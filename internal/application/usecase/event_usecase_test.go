package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agenda-api/internal/application/dto"
	"github.com/jhoicas/agenda-api/internal/application/usecase"
	"github.com/jhoicas/agenda-api/internal/domain"
	"github.com/jhoicas/agenda-api/internal/domain/entity"
	"github.com/jhoicas/agenda-api/internal/infrastructure/memstore"
)

func strPtr(s string) *string { return &s }

func ids(list *dto.EventListResponse) []string {
	out := make([]string, 0, len(list.Items))
	for _, e := range list.Items {
		out = append(out, e.ID)
	}
	return out
}

// ─── List ────────────────────────────────────────────────────────────────────

func TestEventList_PorRol(t *testing.T) {
	e := newEnv()
	e.addEvent("ev-s1", idS1, "Visita agencia", base)
	e.addEvent("ev-s2", idS2, "Reunión", base.Add(time.Hour))
	e.addEvent("ev-c", idC, "Planificación", base.Add(2*time.Hour))
	e.addEvent("ev-s3", idS3, "Visita", base.Add(3*time.Hour))
	ctx := context.Background()

	tests := []struct {
		name  string
		actor entity.Actor
		want  []string
	}{
		{"supervisor ve solo lo propio", act(idS1, entity.RoleSupervisor), []string{"ev-s1"}},
		{"coordenador ve su equipo", act(idC, entity.RoleCoordenador), []string{"ev-s1", "ev-s2", "ev-c"}},
		{"gerente ve dos niveles", act(idG, entity.RoleGerente), []string{"ev-s1", "ev-s2", "ev-c"}},
		{"otro gerente ve su rama", act(idG2, entity.RoleGerente), []string{"ev-s3"}},
		{"admin ve todo", act(idAdmin, entity.RoleAdmin), []string{"ev-s1", "ev-s2", "ev-c", "ev-s3"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			list, err := e.events.List(ctx, tt.actor, dto.EventListQuery{})
			require.NoError(t, err)
			assert.Equal(t, tt.want, ids(list))
		})
	}
}

func TestEventList_FiltrosSobreElAlcance(t *testing.T) {
	e := newEnv()
	e.addEvent("ev-s1", idS1, "Visita", base)
	e.addEvent("ev-s1-b", idS1, "Visita", base.Add(48*time.Hour))
	e.addEvent("ev-s3", idS3, "Visita", base)
	ctx := context.Background()
	c := act(idC, entity.RoleCoordenador)

	list, err := e.events.List(ctx, c, dto.EventListQuery{OwnerID: idS3})
	require.NoError(t, err)
	assert.Empty(t, list.Items, "owner_id fuera del alcance no amplía la visibilidad")

	list, err = e.events.List(ctx, c, dto.EventListQuery{Start: "2024-03-10", End: "2024-03-10"})
	require.NoError(t, err)
	assert.Equal(t, []string{"ev-s1"}, ids(list))

	_, err = e.events.List(ctx, c, dto.EventListQuery{Start: "10/03/2024"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestEventList_AlmacenamientoCaido(t *testing.T) {
	e := newEnv()
	e.store.FailHierarchyReads(domain.Transient("direct subordinates", assert.AnError))

	_, err := e.events.List(context.Background(), act(idC, entity.RoleCoordenador), dto.EventListQuery{})
	assert.ErrorIs(t, err, domain.ErrTransient)

	list, err := e.events.List(context.Background(), act(idAdmin, entity.RoleAdmin), dto.EventListQuery{})
	require.NoError(t, err, "admin no depende de la jerarquía")
	assert.NotNil(t, list)
}

// ─── Get ─────────────────────────────────────────────────────────────────────

func TestEventGet_NotFoundAntesQueForbidden(t *testing.T) {
	e := newEnv()
	_, err := e.events.Get(context.Background(), act(idS1, entity.RoleSupervisor), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestEventGet_SubordinadoNoVeAlSuperior(t *testing.T) {
	e := newEnv()
	e.addEvent("ev-c", idC, "Planificación", base)

	_, err := e.events.Get(context.Background(), act(idS1, entity.RoleSupervisor), "ev-c")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Equal(t, []string{entity.ActionAccessDenied}, e.actions())

	got, err := e.events.Get(context.Background(), act(idG, entity.RoleGerente), "ev-c")
	require.NoError(t, err)
	assert.Equal(t, "Maria Santos", got.SupervisorName)
}

// ─── Create ──────────────────────────────────────────────────────────────────

func newEventRequest(owner string) dto.CreateEventRequest {
	return dto.CreateEventRequest{
		Title:        "Visita agencia 0042",
		StartDate:    base,
		EndDate:      base.Add(time.Hour),
		EventType:    "visita",
		SupervisorID: owner,
	}
}

func TestEventCreate(t *testing.T) {
	ctx := context.Background()
	meta := dto.RequestMeta{IPAddress: "10.0.0.1", UserAgent: "test"}

	t.Run("sin dueño es el creador", func(t *testing.T) {
		e := newEnv()
		got, err := e.events.Create(ctx, act(idS1, entity.RoleSupervisor), newEventRequest(""), meta)
		require.NoError(t, err)
		assert.Equal(t, idS1, got.SupervisorID)
		assert.Equal(t, idS1, got.CreatorID)
		assert.Equal(t, []string{entity.ActionEventCreated}, e.actions())
		assert.Equal(t, "10.0.0.1", e.store.Logs()[0].IPAddress)
	})

	t.Run("coordenador crea para su supervisor", func(t *testing.T) {
		e := newEnv()
		got, err := e.events.Create(ctx, act(idC, entity.RoleCoordenador), newEventRequest(idS2), meta)
		require.NoError(t, err)
		assert.Equal(t, idS2, got.SupervisorID)
		assert.Equal(t, "Ana Costa", got.SupervisorName)
		assert.Equal(t, "Maria Santos", got.CreatorName)
	})

	t.Run("coordenador no crea fuera de su equipo", func(t *testing.T) {
		e := newEnv()
		_, err := e.events.Create(ctx, act(idC, entity.RoleCoordenador), newEventRequest(idS3), meta)
		assert.ErrorIs(t, err, domain.ErrReassignmentDenied)
		assert.Equal(t, []string{entity.ActionAccessDenied}, e.actions(), "no se persiste el evento")
	})

	t.Run("supervisor no crea para otro", func(t *testing.T) {
		e := newEnv()
		_, err := e.events.Create(ctx, act(idS1, entity.RoleSupervisor), newEventRequest(idS2), meta)
		assert.ErrorIs(t, err, domain.ErrReassignmentDenied)
	})

	t.Run("fechas invertidas", func(t *testing.T) {
		e := newEnv()
		in := newEventRequest("")
		in.EndDate = in.StartDate.Add(-time.Hour)
		_, err := e.events.Create(ctx, act(idS1, entity.RoleSupervisor), in, meta)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	})
}

// ─── Update ──────────────────────────────────────────────────────────────────

func TestEventUpdate(t *testing.T) {
	ctx := context.Background()
	meta := dto.RequestMeta{}

	t.Run("coordenador edita evento de su supervisor", func(t *testing.T) {
		e := newEnv()
		e.addEvent("ev", idS1, "Visita", base)
		got, err := e.events.Update(ctx, act(idC, entity.RoleCoordenador), "ev", dto.UpdateEventRequest{Title: strPtr("Visita reprogramada")}, meta)
		require.NoError(t, err)
		assert.Equal(t, "Visita reprogramada", got.Title)
		assert.Equal(t, idS1, got.SupervisorID)
		assert.Equal(t, []string{entity.ActionEventUpdated}, e.actions())
	})

	t.Run("coordenador no reasigna al actualizar", func(t *testing.T) {
		e := newEnv()
		e.addEvent("ev", idS1, "Visita", base)
		_, err := e.events.Update(ctx, act(idC, entity.RoleCoordenador), "ev", dto.UpdateEventRequest{
			Title:        strPtr("otro"),
			SupervisorID: strPtr(idS2),
		}, meta)
		assert.ErrorIs(t, err, domain.ErrReassignmentDenied)
		stored, _ := e.store.Event("ev")
		assert.Equal(t, idS1, stored.OwnerID)
		assert.Equal(t, "Visita", stored.Title, "nada se escribe si la reasignación falla")
	})

	t.Run("gerente reasigna dentro de su cierre", func(t *testing.T) {
		e := newEnv()
		e.addEvent("ev", idS1, "Visita", base)
		got, err := e.events.Update(ctx, act(idG, entity.RoleGerente), "ev", dto.UpdateEventRequest{SupervisorID: strPtr(idS2)}, meta)
		require.NoError(t, err)
		assert.Equal(t, idS2, got.SupervisorID)
		logs := e.store.Logs()
		require.Len(t, logs, 1)
		assert.Equal(t, entity.ActionEventReassigned, logs[0].ActionType)
		assert.Equal(t, idS1, logs[0].Details["from_owner_id"])
		assert.Equal(t, idS2, logs[0].Details["to_owner_id"])
	})

	t.Run("gerente no reasigna fuera de su cierre", func(t *testing.T) {
		e := newEnv()
		e.addEvent("ev", idS1, "Visita", base)
		_, err := e.events.Update(ctx, act(idG, entity.RoleGerente), "ev", dto.UpdateEventRequest{SupervisorID: strPtr(idS3)}, meta)
		assert.ErrorIs(t, err, domain.ErrReassignmentDenied)
	})

	t.Run("supervisor ajeno recibe forbidden", func(t *testing.T) {
		e := newEnv()
		e.addEvent("ev", idS1, "Visita", base)
		_, err := e.events.Update(ctx, act(idS2, entity.RoleSupervisor), "ev", dto.UpdateEventRequest{Title: strPtr("x")}, meta)
		assert.ErrorIs(t, err, domain.ErrForbidden)
		assert.NotErrorIs(t, err, domain.ErrReassignmentDenied)
	})

	t.Run("dueño movido en paralelo da conflicto", func(t *testing.T) {
		e := newEnv()
		e.addEvent("ev", idS1, "Visita", base)
		tx := &movingTxRunner{inner: memstore.NewTxRunner(e.store), store: e.store, eventID: "ev", owner: idS2}
		events := usecase.NewEventUseCase(memstore.NewEventRepository(e.store), tx, e.org, e.audit)

		_, err := events.Update(ctx, act(idG, entity.RoleGerente), "ev", dto.UpdateEventRequest{SupervisorID: strPtr(idS2)}, meta)
		assert.ErrorIs(t, err, domain.ErrConflict)
		stored, _ := e.store.Event("ev")
		assert.Equal(t, idS2, stored.OwnerID)
		assert.Empty(t, e.actions(), "la auditoría se revierte con la escritura")
	})
}

// ─── Feedback & Delete ───────────────────────────────────────────────────────

func TestEventUpdateFeedback(t *testing.T) {
	e := newEnv()
	e.addEvent("ev", idS1, "Visita", base)
	ctx := context.Background()

	got, err := e.events.UpdateFeedback(ctx, act(idS1, entity.RoleSupervisor), "ev", dto.UpdateFeedbackRequest{Feedback: "Cliente interesado"}, dto.RequestMeta{})
	require.NoError(t, err)
	assert.Equal(t, "Cliente interesado", got.Feedback)

	_, err = e.events.UpdateFeedback(ctx, act(idS3, entity.RoleSupervisor), "ev", dto.UpdateFeedbackRequest{Feedback: "x"}, dto.RequestMeta{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	stored, _ := e.store.Event("ev")
	assert.Equal(t, "Cliente interesado", stored.Feedback)
}

func TestEventDelete(t *testing.T) {
	e := newEnv()
	e.addEvent("ev", idS1, "Visita", base)
	ctx := context.Background()

	err := e.events.Delete(ctx, act(idS2, entity.RoleSupervisor), "ev", dto.RequestMeta{})
	assert.ErrorIs(t, err, domain.ErrForbidden)
	_, ok := e.store.Event("ev")
	assert.True(t, ok)

	require.NoError(t, e.events.Delete(ctx, act(idG, entity.RoleGerente), "ev", dto.RequestMeta{}))
	_, ok = e.store.Event("ev")
	assert.False(t, ok)
	assert.Equal(t, []string{entity.ActionAccessDenied, entity.ActionEventDeleted}, e.actions())

	err = e.events.Delete(ctx, act(idG, entity.RoleGerente), "ev", dto.RequestMeta{})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
