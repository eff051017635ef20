package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/agenda-api/internal/domain/entity"
	"github.com/jhoicas/agenda-api/internal/domain/repository"
)

var _ repository.UserRepository = (*UserRepo)(nil)

// UserRepo implementación del puerto UserRepository sobre PostgreSQL.
type UserRepo struct {
	q Querier
}

// NewUserRepository construye el adaptador de persistencia para usuarios. Pasar pool o tx (Querier).
func NewUserRepository(q Querier) *UserRepo {
	return &UserRepo{q: q}
}

const userColumns = `id, name, funcional, password_hash, role, COALESCE(email, ''), created_at`

// GetByID obtiene un usuario por ID.
func (r *UserRepo) GetByID(ctx context.Context, id string) (*entity.User, error) {
	if !isUUID(id) {
		return nil, nil
	}
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	u, err := scanUser(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get user by id", err)
	}
	return u, nil
}

// FindByFuncional obtiene un usuario por matrícula.
func (r *UserRepo) FindByFuncional(ctx context.Context, funcional string) (*entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE funcional = $1 LIMIT 1`
	u, err := scanUser(r.q.QueryRow(ctx, query, funcional))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, classify("get user by funcional", err)
	}
	return u, nil
}

// ListAll lista todos los usuarios ordenados por nombre.
func (r *UserRepo) ListAll(ctx context.Context) ([]*entity.User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users ORDER BY name`)
	if err != nil {
		return nil, classify("list users", err)
	}
	return collectUsers(rows)
}

// ListByIDs lista los usuarios indicados ordenados por nombre.
func (r *UserRepo) ListByIDs(ctx context.Context, ids []string) ([]*entity.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+userColumns+` FROM users WHERE id = ANY($1::uuid[]) ORDER BY name`, ids)
	if err != nil {
		return nil, classify("list users by ids", err)
	}
	return collectUsers(rows)
}

func scanUser(row pgx.Row) (*entity.User, error) {
	var u entity.User
	var role string
	if err := row.Scan(&u.ID, &u.Name, &u.Funcional, &u.PasswordHash, &role, &u.Email, &u.CreatedAt); err != nil {
		return nil, err
	}
	u.Role = entity.Role(role)
	return &u, nil
}

func collectUsers(rows pgx.Rows) ([]*entity.User, error) {
	defer rows.Close()
	var list []*entity.User
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, classify("scan user", err)
		}
		list = append(list, u)
	}
	return list, classify("iterate users", rows.Err())
}
