// Package memstore implementa los puertos de persistencia en memoria. Lo usan los tests de
// las capas superiores y orgctl para evaluar organigramas cargados desde archivo.
package memstore

import (
	"context"
	"sort"
	"sync"
	"sync/atomic"

	"github.com/jhoicas/agenda-api/internal/domain/entity"
	"github.com/jhoicas/agenda-api/internal/domain/repository"
)

// Store estado compartido por los repositorios en memoria.
type Store struct {
	mu     sync.RWMutex
	users  map[string]*entity.User
	edges  map[string]entity.HierarchyEdge // por subordinate_id
	events map[string]*entity.Event
	logs   []*entity.UserLog

	hierarchyErr   error
	hierarchyReads atomic.Int64
}

// New crea un store vacío.
func New() *Store {
	return &Store{
		users:  make(map[string]*entity.User),
		edges:  make(map[string]entity.HierarchyEdge),
		events: make(map[string]*entity.Event),
	}
}

// AddUser registra un usuario (reemplaza si ya existe).
func (s *Store) AddUser(u *entity.User) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *u
	s.users[u.ID] = &cp
}

// AddEdge registra una arista subordinado → superior.
func (s *Store) AddEdge(subordinateID, superiorID string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.edges[subordinateID] = entity.HierarchyEdge{
		ID:            subordinateID + "->" + superiorID,
		SubordinateID: subordinateID,
		SuperiorID:    superiorID,
	}
}

// AddEvent registra un evento.
func (s *Store) AddEvent(e *entity.Event) {
	s.mu.Lock()
	defer s.mu.Unlock()
	cp := *e
	s.events[e.ID] = &cp
}

// Logs devuelve una copia de los registros de auditoría en orden de inserción.
func (s *Store) Logs() []entity.UserLog {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]entity.UserLog, 0, len(s.logs))
	for _, l := range s.logs {
		out = append(out, *l)
	}
	return out
}

// Event devuelve una copia del evento almacenado.
func (s *Store) Event(id string) (entity.Event, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	e, ok := s.events[id]
	if !ok {
		return entity.Event{}, false
	}
	return *e, true
}

// FailHierarchyReads hace fallar las lecturas de jerarquía con err (nil restablece).
func (s *Store) FailHierarchyReads(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.hierarchyErr = err
}

// HierarchyReads cantidad de lecturas de jerarquía atendidas.
func (s *Store) HierarchyReads() int64 {
	return s.hierarchyReads.Load()
}

func (s *Store) sortedUsers() []*entity.User {
	out := make([]*entity.User, 0, len(s.users))
	for _, u := range s.users {
		cp := *u
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Name != out[j].Name {
			return out[i].Name < out[j].Name
		}
		return out[i].ID < out[j].ID
	})
	return out
}

// TxRunner simula la transacción de escritura de eventos: si fn falla, eventos y
// auditoría vuelven al estado previo.
type TxRunner struct {
	s *Store
}

// NewTxRunner construye el runner sobre s.
func NewTxRunner(s *Store) *TxRunner { return &TxRunner{s: s} }

// RunEventWrite ejecuta fn con los repos del store.
func (t *TxRunner) RunEventWrite(ctx context.Context, fn func(events repository.EventRepository, logs repository.UserLogRepository) error) error {
	t.s.mu.RLock()
	events := make(map[string]*entity.Event, len(t.s.events))
	for k, v := range t.s.events {
		cp := *v
		events[k] = &cp
	}
	logs := append([]*entity.UserLog(nil), t.s.logs...)
	t.s.mu.RUnlock()

	if err := fn(NewEventRepository(t.s), NewUserLogRepository(t.s)); err != nil {
		t.s.mu.Lock()
		t.s.events = events
		t.s.logs = logs
		t.s.mu.Unlock()
		return err
	}
	return nil
}
