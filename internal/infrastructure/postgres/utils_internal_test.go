package postgres

import (
	"context"
	"testing"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agenda-api/internal/domain"
	"github.com/jhoicas/agenda-api/internal/domain/hierarchy"
	"github.com/jhoicas/agenda-api/internal/domain/repository"
)

// unreachableQuerier falla el test si alguna consulta llega a la base.
type unreachableQuerier struct {
	t *testing.T
}

func (q unreachableQuerier) Exec(context.Context, string, ...any) (pgconn.CommandTag, error) {
	q.t.Fatal("Exec no debía ejecutarse")
	return pgconn.CommandTag{}, nil
}

func (q unreachableQuerier) Query(context.Context, string, ...any) (pgx.Rows, error) {
	q.t.Fatal("Query no debía ejecutarse")
	return nil, nil
}

func (q unreachableQuerier) QueryRow(context.Context, string, ...any) pgx.Row {
	q.t.Fatal("QueryRow no debía ejecutarse")
	return nil
}

func TestIDsMalFormados_NoLleganALaBase(t *testing.T) {
	ctx := context.Background()
	q := unreachableQuerier{t: t}

	e, err := NewEventRepository(q).FindByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, e, "un id que no es UUID es un evento inexistente")

	list, err := NewEventRepository(q).ListByOwnerIn(ctx, hierarchy.Unrestricted(), repository.EventFilter{OwnerID: "abc"})
	require.NoError(t, err)
	assert.Empty(t, list)

	logs, err := NewUserLogRepository(q).List(ctx, hierarchy.Unrestricted(), repository.UserLogFilter{UserID: "abc"})
	require.NoError(t, err)
	assert.Empty(t, logs)

	u, err := NewUserRepository(q).GetByID(ctx, "abc")
	require.NoError(t, err)
	assert.Nil(t, u)

	h := NewHierarchyRepository(q)
	_, ok, err := h.DirectSuperior(ctx, "abc")
	require.NoError(t, err)
	assert.False(t, ok)
	subs, err := h.DirectSubordinates(ctx, "abc")
	require.NoError(t, err)
	assert.Empty(t, subs)
}

func TestIsUUID(t *testing.T) {
	assert.True(t, isUUID("7f1c2e9a-4b3d-4e5f-8a6b-1c2d3e4f5a6b"))
	assert.False(t, isUUID("abc"))
	assert.False(t, isUUID(""))
}

func TestClassify(t *testing.T) {
	err := classify("get event", &pgconn.PgError{Code: "22P02", Message: "invalid input syntax for type uuid"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotErrorIs(t, err, domain.ErrTransient)

	err = classify("ping DB", &pgconn.PgError{Code: "57P01"})
	assert.ErrorIs(t, err, domain.ErrTransient)

	err = classify("insert", &pgconn.PgError{Code: "23505"})
	assert.NotErrorIs(t, err, domain.ErrInvalidInput)
	assert.NotErrorIs(t, err, domain.ErrTransient)

	assert.NoError(t, classify("noop", nil))
}
