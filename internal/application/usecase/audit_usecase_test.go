package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/agenda-api/internal/application/dto"
	"github.com/jhoicas/agenda-api/internal/domain"
	"github.com/jhoicas/agenda-api/internal/domain/entity"
)

func TestAuditList(t *testing.T) {
	e := newEnv()
	ctx := context.Background()
	for _, id := range []string{idS1, idS2, idC, idS3, idG} {
		e.audit.Append(ctx, &entity.UserLog{UserID: id, ActionType: entity.ActionLogin, Status: entity.LogStatusSuccess})
	}

	_, err := e.audit.List(ctx, act(idS1, entity.RoleSupervisor), dto.UserLogQuery{})
	assert.ErrorIs(t, err, domain.ErrForbidden)

	logs, err := e.audit.List(ctx, act(idC, entity.RoleCoordenador), dto.UserLogQuery{})
	require.NoError(t, err)
	var users []string
	for _, l := range logs {
		users = append(users, l.UserID)
	}
	assert.ElementsMatch(t, []string{idS1, idS2, idC}, users)

	logs, err = e.audit.List(ctx, act(idC, entity.RoleCoordenador), dto.UserLogQuery{UserID: idS3})
	require.NoError(t, err)
	assert.Empty(t, logs)

	logs, err = e.audit.List(ctx, act(idAdmin, entity.RoleAdmin), dto.UserLogQuery{})
	require.NoError(t, err)
	assert.Len(t, logs, 5)
	assert.Equal(t, idG, logs[0].UserID, "más reciente primero")
	assert.Equal(t, "Carlos Oliveira", logs[0].UserName)
}

func TestAuditRecord(t *testing.T) {
	e := newEnv()
	got, err := e.audit.Record(context.Background(), act(idS1, entity.RoleSupervisor), dto.CreateUserLogRequest{
		ActionType: "PAGE_VIEW",
		Details:    map[string]any{"path": "/agenda"},
	}, dto.RequestMeta{IPAddress: "10.1.1.1"})
	require.NoError(t, err)
	assert.Equal(t, entity.LogStatusInfo, got.Status)
	assert.Equal(t, idS1, got.UserID)
	assert.NotEmpty(t, got.ID)
	assert.Equal(t, []string{"PAGE_VIEW"}, e.actions())
}
