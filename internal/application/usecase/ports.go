package usecase

import (
	"context"

	"github.com/jhoicas/agenda-api/internal/domain/repository"
)

// EventTxRunner ejecuta la escritura de un evento y su registro de auditoría en una transacción.
type EventTxRunner interface {
	RunEventWrite(ctx context.Context, fn func(events repository.EventRepository, logs repository.UserLogRepository) error) error
}
