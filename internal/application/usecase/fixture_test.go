package usecase_test

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/agenda-api/internal/application/org"
	"github.com/jhoicas/agenda-api/internal/application/usecase"
	"github.com/jhoicas/agenda-api/internal/domain/entity"
	"github.com/jhoicas/agenda-api/internal/domain/hierarchy"
	"github.com/jhoicas/agenda-api/internal/domain/repository"
	"github.com/jhoicas/agenda-api/internal/infrastructure/memstore"
)

// ──────────────────────────────────────────────────────────────────────────────
// Organigrama: G → C → {S1, S2}; G2 → C2 → S3; admin aparte.
// ──────────────────────────────────────────────────────────────────────────────

const (
	idAdmin = "admin"
	idG     = "g"
	idC     = "c"
	idS1    = "s1"
	idS2    = "s2"
	idG2    = "g2"
	idC2    = "c2"
	idS3    = "s3"
)

var base = time.Date(2024, 3, 10, 9, 0, 0, 0, time.UTC)

type env struct {
	store  *memstore.Store
	org    *org.Service
	events *usecase.EventUseCase
	audit  *usecase.AuditUseCase
	users  *usecase.UserUseCase
	tx     usecase.EventTxRunner
}

func newEnv() *env {
	s := memstore.New()
	for _, u := range []entity.User{
		{ID: idAdmin, Name: "Igor Alencar", Funcional: "9444168", Role: entity.RoleAdmin},
		{ID: idG, Name: "Carlos Oliveira", Funcional: "54321", Role: entity.RoleGerente},
		{ID: idC, Name: "Maria Santos", Funcional: "67890", Role: entity.RoleCoordenador},
		{ID: idS1, Name: "João Silva", Funcional: "12345", Role: entity.RoleSupervisor},
		{ID: idS2, Name: "Ana Costa", Funcional: "98765", Role: entity.RoleSupervisor},
		{ID: idG2, Name: "Paulo Souza", Funcional: "11111", Role: entity.RoleGerente},
		{ID: idC2, Name: "Beatriz Lima", Funcional: "22222", Role: entity.RoleCoordenador},
		{ID: idS3, Name: "Ênio Prado", Funcional: "33333", Role: entity.RoleSupervisor},
	} {
		u := u
		s.AddUser(&u)
	}
	s.AddEdge(idC, idG)
	s.AddEdge(idS1, idC)
	s.AddEdge(idS2, idC)
	s.AddEdge(idC2, idG2)
	s.AddEdge(idS3, idC2)

	edges := memstore.NewHierarchyRepository(s)
	userRepo := memstore.NewUserRepository(s)
	orgSvc := org.NewService(hierarchy.NewEngine(edges), edges, userRepo, zerolog.Nop())
	audit := usecase.NewAuditUseCase(memstore.NewUserLogRepository(s), orgSvc, zerolog.Nop())
	tx := memstore.NewTxRunner(s)
	return &env{
		store:  s,
		org:    orgSvc,
		events: usecase.NewEventUseCase(memstore.NewEventRepository(s), tx, orgSvc, audit),
		audit:  audit,
		users:  usecase.NewUserUseCase(userRepo),
		tx:     tx,
	}
}

func (e *env) addEvent(id, owner, title string, start time.Time) {
	e.store.AddEvent(&entity.Event{
		ID:        id,
		OwnerID:   owner,
		CreatorID: owner,
		Title:     title,
		EventType: "visita",
		StartDate: start,
		EndDate:   start.Add(time.Hour),
		CreatedAt: base,
		UpdatedAt: base,
	})
}

func (e *env) actions() []string {
	var out []string
	for _, l := range e.store.Logs() {
		out = append(out, l.ActionType)
	}
	return out
}

func act(id string, role entity.Role) entity.Actor {
	return entity.Actor{ID: id, Role: role}
}

// movingTxRunner simula que otro usuario reasignó el evento justo antes de la escritura.
type movingTxRunner struct {
	inner   usecase.EventTxRunner
	store   *memstore.Store
	eventID string
	owner   string
}

func (m *movingTxRunner) RunEventWrite(ctx context.Context, fn func(repository.EventRepository, repository.UserLogRepository) error) error {
	if e, ok := m.store.Event(m.eventID); ok {
		e.OwnerID = m.owner
		m.store.AddEvent(&e)
	}
	return m.inner.RunEventWrite(ctx, fn)
}
