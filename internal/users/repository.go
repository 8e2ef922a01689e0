package users

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/osa-portal/osa-portal/internal/shared"
)

// Repository defines persistence operations for user management.
type Repository interface {
	ListUsers(ctx context.Context) ([]User, error)
	GetUser(ctx context.Context, id uuid.UUID) (*User, error)
	CreateUser(ctx context.Context, user User, passwordHash string) error
	UpdateUser(ctx context.Context, user User) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
	SetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error
	CountByRole(ctx context.Context) (map[shared.Role]int, int, error)
}

// PGRepository implements Repository using PostgreSQL.
type PGRepository struct {
	pool *pgxpool.Pool
}

// NewRepository constructs a PostgreSQL repository.
func NewRepository(pool *pgxpool.Pool) *PGRepository {
	return &PGRepository{pool: pool}
}

const managedColumns = `id, email, role, full_name, department, is_active, created_at`

// ListUsers returns all accounts newest first.
func (r *PGRepository) ListUsers(ctx context.Context) ([]User, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+managedColumns+` FROM users ORDER BY created_at DESC`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []User
	for rows.Next() {
		var u User
		if err := rows.Scan(&u.ID, &u.Email, &u.Role, &u.FullName, &u.Department, &u.IsActive, &u.CreatedAt); err != nil {
			return nil, err
		}
		result = append(result, u)
	}
	return result, rows.Err()
}

// GetUser fetches one account by primary key.
func (r *PGRepository) GetUser(ctx context.Context, id uuid.UUID) (*User, error) {
	var u User
	err := r.pool.QueryRow(ctx, `SELECT `+managedColumns+` FROM users WHERE id = $1`, id).
		Scan(&u.ID, &u.Email, &u.Role, &u.FullName, &u.Department, &u.IsActive, &u.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &u, nil
}

// CreateUser inserts an account with the given password hash.
func (r *PGRepository) CreateUser(ctx context.Context, user User, passwordHash string) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, role, full_name, department, is_active, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		user.ID, user.Email, passwordHash, user.Role, user.FullName, user.Department, user.IsActive, user.CreatedAt)
	if isUniqueViolation(err) {
		return shared.ErrDuplicateEmail
	}
	return err
}

// UpdateUser rewrites the mutable account columns.
func (r *PGRepository) UpdateUser(ctx context.Context, user User) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE users SET email = $1, role = $2, full_name = $3, department = $4, is_active = $5 WHERE id = $6`,
		user.Email, user.Role, user.FullName, user.Department, user.IsActive, user.ID)
	if isUniqueViolation(err) {
		return shared.ErrDuplicateEmail
	}
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// DeleteUser removes an account.
func (r *PGRepository) DeleteUser(ctx context.Context, id uuid.UUID) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// SetPassword replaces the stored password hash.
func (r *PGRepository) SetPassword(ctx context.Context, id uuid.UUID, passwordHash string) error {
	tag, err := r.pool.Exec(ctx, `UPDATE users SET password_hash = $1 WHERE id = $2`, passwordHash, id)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return shared.ErrNotFound
	}
	return nil
}

// CountByRole returns per-role account counts plus the active total.
func (r *PGRepository) CountByRole(ctx context.Context) (map[shared.Role]int, int, error) {
	rows, err := r.pool.Query(ctx, `SELECT role, is_active FROM users`)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	counts := make(map[shared.Role]int)
	active := 0
	for rows.Next() {
		var role shared.Role
		var isActive bool
		if err := rows.Scan(&role, &isActive); err != nil {
			return nil, 0, err
		}
		counts[role]++
		if isActive {
			active++
		}
	}
	return counts, active, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

var _ Repository = (*PGRepository)(nil)
