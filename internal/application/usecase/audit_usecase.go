package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"github.com/jhoicas/agenda-api/internal/application/dto"
	"github.com/jhoicas/agenda-api/internal/application/org"
	"github.com/jhoicas/agenda-api/internal/domain"
	"github.com/jhoicas/agenda-api/internal/domain/entity"
	"github.com/jhoicas/agenda-api/internal/domain/repository"
)

// AuditUseCase registro y consulta de USER_LOGS.
type AuditUseCase struct {
	repo repository.UserLogRepository
	org  *org.Service
	log  zerolog.Logger
	now  func() time.Time
}

// NewAuditUseCase construye el caso de uso.
func NewAuditUseCase(repo repository.UserLogRepository, orgSvc *org.Service, log zerolog.Logger) *AuditUseCase {
	return &AuditUseCase{repo: repo, org: orgSvc, log: log.With().Str("component", "audit").Logger(), now: time.Now}
}

// Append guarda un registro sin interrumpir la operación principal: un fallo solo se loguea.
func (uc *AuditUseCase) Append(ctx context.Context, l *entity.UserLog) {
	if l.Timestamp.IsZero() {
		l.Timestamp = uc.now()
	}
	if l.Status == "" {
		l.Status = entity.LogStatusInfo
	}
	if err := uc.repo.Create(ctx, l); err != nil {
		uc.log.Error().Err(err).Str("action_type", l.ActionType).Str("user_id", l.UserID).Msg("no se pudo guardar el registro de auditoría")
	}
}

// Record guarda un registro enviado por el cliente en nombre del actor.
func (uc *AuditUseCase) Record(ctx context.Context, actor entity.Actor, in dto.CreateUserLogRequest, meta dto.RequestMeta) (*dto.UserLogResponse, error) {
	status := in.Status
	if status == "" {
		status = entity.LogStatusInfo
	}
	l := &entity.UserLog{
		UserID:     actor.ID,
		Timestamp:  uc.now(),
		ActionType: in.ActionType,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
		Details:    in.Details,
		Status:     status,
	}
	if err := uc.repo.Create(ctx, l); err != nil {
		return nil, err
	}
	r := toUserLogResponse(l)
	return &r, nil
}

// List registros de los usuarios visibles para el actor. Los supervisores no tienen acceso.
func (uc *AuditUseCase) List(ctx context.Context, actor entity.Actor, q dto.UserLogQuery) ([]dto.UserLogResponse, error) {
	if actor.Role == entity.RoleSupervisor {
		return nil, domain.ErrForbidden
	}
	start, err := parseTimeParam("start", q.Start, false)
	if err != nil {
		return nil, err
	}
	end, err := parseTimeParam("end", q.End, true)
	if err != nil {
		return nil, err
	}
	q.DefaultPage()

	users, err := uc.org.ResolveVisibleOwners(ctx, actor)
	if err != nil {
		return nil, err
	}
	userID := entity.NormalizeID(q.UserID)
	if userID != "" && !users.Contains(userID) {
		return []dto.UserLogResponse{}, nil
	}
	logs, err := uc.repo.List(ctx, users, repository.UserLogFilter{
		UserID:     userID,
		ActionType: q.ActionType,
		Status:     q.Status,
		Start:      start,
		End:        end,
		Limit:      q.Limit,
		Offset:     q.Offset,
	})
	if err != nil {
		return nil, err
	}
	out := make([]dto.UserLogResponse, 0, len(logs))
	for _, l := range logs {
		out = append(out, toUserLogResponse(l))
	}
	return out, nil
}

func toUserLogResponse(l *entity.UserLog) dto.UserLogResponse {
	return dto.UserLogResponse{
		ID:            l.ID,
		UserID:        l.UserID,
		UserName:      l.UserName,
		UserFuncional: l.UserFuncional,
		UserRole:      l.UserRole.String(),
		Timestamp:     l.Timestamp,
		ActionType:    l.ActionType,
		IPAddress:     l.IPAddress,
		UserAgent:     l.UserAgent,
		Details:       l.Details,
		Status:        l.Status,
	}
}
