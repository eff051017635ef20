package postgres

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/jhoicas/agenda-api/internal/domain"
)

// Querier es la superficie común de *pgxpool.Pool y pgx.Tx. Los repos la reciben para
// poder trabajar dentro o fuera de una transacción.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// isUniqueViolation verifica si un error es una violación de constraint único (23505).
func isUniqueViolation(err error) bool {
	return pgCode(err) == "23505"
}

// isForeignKeyViolation verifica si un error es una violación de FK (23503).
func isForeignKeyViolation(err error) bool {
	return pgCode(err) == "23503"
}

// isUUID informa si id puede compararse con una columna uuid. Los ids mal formados no
// llegan a la base: una búsqueda por ellos es un "no encontrado".
func isUUID(id string) bool {
	return uuid.Validate(id) == nil
}

func pgCode(err error) string {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return pgErr.Code
	}
	return ""
}

// classify envuelve err con la operación. Los fallos de conexión, timeouts y cortes del
// servidor se marcan como domain.ErrTransient para que el caller responda 503 sin reintentar.
// Un texto que no convierte al tipo de la columna (22P02) es entrada inválida.
func classify(op string, err error) error {
	if err == nil {
		return nil
	}
	if isTransient(err) {
		return domain.Transient(op, err)
	}
	if pgCode(err) == "22P02" {
		return fmt.Errorf("%s: %w: %w", op, domain.ErrInvalidInput, err)
	}
	return fmt.Errorf("%s: %w", op, err)
}

func isTransient(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || pgconn.Timeout(err) {
		return true
	}
	var connErr *pgconn.ConnectError
	if errors.As(err, &connErr) {
		return true
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return true
	}
	code := pgCode(err)
	// 08xxx connection_exception, 57P0x operator intervention (shutdown, cannot_connect_now).
	return strings.HasPrefix(code, "08") || strings.HasPrefix(code, "57P0") || code == "53300"
}
