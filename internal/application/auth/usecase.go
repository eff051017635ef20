package auth

import (
	"context"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/agenda-api/internal/application/dto"
	"github.com/jhoicas/agenda-api/internal/application/org"
	"github.com/jhoicas/agenda-api/internal/domain"
	"github.com/jhoicas/agenda-api/internal/domain/entity"
	"github.com/jhoicas/agenda-api/internal/domain/repository"
	"github.com/jhoicas/agenda-api/pkg/jwt"
	"github.com/jhoicas/agenda-api/pkg/textnorm"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuditLog destino de los registros de login/logout.
type AuditLog interface {
	Append(ctx context.Context, l *entity.UserLog)
}

// AuthUseCase casos de uso de autenticación: login por matrícula y logout.
type AuthUseCase struct {
	userRepo repository.UserRepository
	audit    AuditLog
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, audit AuditLog, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, audit: audit, jwtCfg: jwtCfg}
}

// Login normaliza la matrícula, verifica la contraseña con bcrypt y emite el JWT.
// Usuario inexistente y contraseña incorrecta devuelven el mismo ErrUnauthorized.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest, meta dto.RequestMeta) (*dto.LoginResponse, error) {
	funcional := textnorm.NormalizeFuncional(in.Funcional)
	if funcional == "" {
		return nil, domain.ErrInvalidInput
	}
	user, err := uc.userRepo.FindByFuncional(ctx, funcional)
	if err != nil {
		return nil, err
	}
	if user == nil {
		uc.record(ctx, "", entity.ActionLoginFailed, entity.LogStatusFailure, meta, map[string]any{
			"funcional": funcional,
			"reason":    "unknown_user",
		})
		return nil, domain.ErrUnauthorized
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		uc.record(ctx, user.ID, entity.ActionLoginFailed, entity.LogStatusFailure, meta, map[string]any{
			"reason": "bad_password",
		})
		return nil, domain.ErrUnauthorized
	}
	if !user.Role.Valid() {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Role.String(), user.Funcional, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	uc.record(ctx, user.ID, entity.ActionLogin, entity.LogStatusSuccess, meta, nil)
	return &dto.LoginResponse{
		Token:     token,
		ExpiresIn: uc.jwtCfg.ExpMinutes * 60,
		User:      org.ToUserResponse(user),
	}, nil
}

// Logout registra el cierre de sesión. El token no se revoca: expira por sí solo.
func (uc *AuthUseCase) Logout(ctx context.Context, actor entity.Actor, meta dto.RequestMeta) {
	uc.record(ctx, actor.ID, entity.ActionLogout, entity.LogStatusSuccess, meta, nil)
}

func (uc *AuthUseCase) record(ctx context.Context, userID, action, status string, meta dto.RequestMeta, details map[string]any) {
	if uc.audit == nil {
		return
	}
	uc.audit.Append(ctx, &entity.UserLog{
		UserID:     userID,
		Timestamp:  time.Now(),
		ActionType: action,
		IPAddress:  meta.IPAddress,
		UserAgent:  meta.UserAgent,
		Details:    details,
		Status:     status,
	})
}
