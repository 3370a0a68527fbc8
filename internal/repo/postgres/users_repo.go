package postgres

import (
	"context"
	"errors"

	"github.com/geocoder89/dashhub/internal/domain/user"
	"github.com/geocoder89/dashhub/internal/repo"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

const userColumns = `id, email, password_hash, role, created_at, dashboard_data`

type UsersRepo struct {
	pool *pgxpool.Pool
}

func NewUsersRepo(pool *pgxpool.Pool) *UsersRepo {
	return &UsersRepo{pool: pool}
}

func scanUser(row pgx.Row) (user.User, error) {
	var u user.User

	err := row.Scan(
		&u.ID,
		&u.Email,
		&u.PasswordHash,
		&u.Role,
		&u.CreatedAt,
		&u.DashboardData,
	)

	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return user.User{}, repo.ErrUserNotFound
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) GetByEmail(ctx context.Context, email string) (user.User, error) {
	return scanUser(r.pool.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE email = $1`,
		email,
	))
}

func (r *UsersRepo) GetByID(ctx context.Context, id string) (user.User, error) {
	return scanUser(r.pool.QueryRow(
		ctx,
		`SELECT `+userColumns+` FROM users WHERE id = $1`,
		id,
	))
}

func (r *UsersRepo) Create(ctx context.Context, email, passwordHash, role string) (user.User, error) {
	u := user.New(email, passwordHash, role)

	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, role, created_at, dashboard_data)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		u.ID, u.Email, u.PasswordHash, u.Role, u.CreatedAt, u.DashboardData,
	)

	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return user.User{}, repo.ErrEmailTaken
		}
		return user.User{}, err
	}
	return u, nil
}

func (r *UsersRepo) UpdateDashboardData(ctx context.Context, id string, data user.DashboardData) (user.User, error) {
	return scanUser(r.pool.QueryRow(
		ctx,
		`UPDATE users SET dashboard_data = $2 WHERE id = $1
		 RETURNING `+userColumns,
		id, data,
	))
}

func (r *UsersRepo) UpdateRole(ctx context.Context, id, role string) (user.User, error) {
	return scanUser(r.pool.QueryRow(
		ctx,
		`UPDATE users SET role = $2 WHERE id = $1
		 RETURNING `+userColumns,
		id, role,
	))
}

func (r *UsersRepo) Delete(ctx context.Context, id string) error {
	// Zero rows affected is fine, delete is idempotent.
	_, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	return err
}

func (r *UsersRepo) ListAll(ctx context.Context) ([]user.User, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT `+userColumns+` FROM users ORDER BY created_at`,
	)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := []user.User{}

	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, u)
	}
	return users, rows.Err()
}

func (r *UsersRepo) ListSummaries(ctx context.Context) ([]user.Summary, error) {
	rows, err := r.pool.Query(
		ctx,
		`SELECT email, role, created_at FROM users ORDER BY created_at`,
	)

	if err != nil {
		return nil, err
	}
	defer rows.Close()

	summaries := []user.Summary{}

	for rows.Next() {
		var s user.Summary
		if err := rows.Scan(&s.Email, &s.Role, &s.CreatedAt); err != nil {
			return nil, err
		}
		summaries = append(summaries, s)
	}
	return summaries, rows.Err()
}
