package postgres

import (
	"context"
	"time"

	"taskBoard/internal/models/user"
	"taskBoard/internal/service"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserRepository struct {
	pool *pgxpool.Pool
}

const userColumns = `id, name, email, password_hash, role, is_active, created_at, updated_at`

func scanUser(row pgx.Row) (*user.User, error) {
	u := &user.User{}
	err := row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.IsActive,
		&u.CreatedAt,
		&u.UpdatedAt,
	)
	return u, err
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	start := time.Now()
	defer warnIfSlow("создание пользователя", start)

	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now()
	}

	query := `INSERT INTO users
				(id, name, email, password_hash, role, is_active, created_at)
				VALUES ($1, $2, $3, $4, $5, $6, $7)`

	_, err := r.pool.Exec(ctx, query,
		u.ID,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.IsActive,
		u.CreatedAt,
	)
	if err != nil {
		return translate("добавление пользователя", err)
	}
	return nil
}

func (r *UserRepository) Update(ctx context.Context, u *user.User) error {
	start := time.Now()
	defer warnIfSlow("обновление пользователя", start)

	query := `UPDATE users
			SET name = $1,
				email = $2,
				password_hash = $3,
				role = $4,
				is_active = $5,
				updated_at = NOW()
			WHERE id = $6
			RETURNING updated_at`

	err := r.pool.QueryRow(ctx, query,
		u.Name,
		u.Email,
		u.PasswordHash,
		u.Role,
		u.IsActive,
		u.ID,
	).Scan(&u.UpdatedAt)
	if err != nil {
		return translate("обновление пользователя", err)
	}
	return nil
}

func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	start := time.Now()
	defer warnIfSlow("получение пользователя", start)

	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE id = $1`, id))
	if err != nil {
		return nil, translate("получение пользователя", err)
	}
	return u, nil
}

func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*user.User, error) {
	start := time.Now()
	defer warnIfSlow("поиск пользователя по email", start)

	u, err := scanUser(r.pool.QueryRow(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email))
	if err != nil {
		return nil, translate("поиск пользователя по email", err)
	}
	return u, nil
}

var _ service.UserRepository = (*UserRepository)(nil)
