package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wakanda-gov/platform/internal/domain"
)

const userColumns = `id, email, username, first_name, last_name, password_hash,
        role, department, phone, address, is_active, last_login_at, created_at, updated_at`

type postgresUserRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresUserRepository returns the pgx-backed implementation.
func NewPostgresUserRepository(pool *pgxpool.Pool) UserRepository {
	return &postgresUserRepository{pool: pool}
}

func (r *postgresUserRepository) Create(ctx context.Context, user *domain.User) error {
	if user.ID == "" {
		user.ID = uuid.NewString()
	}
	const query = `
        INSERT INTO users (id, email, username, first_name, last_name, password_hash,
            role, department, phone, address, is_active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
        RETURNING created_at, updated_at`

	err := r.pool.QueryRow(ctx, query,
		user.ID,
		user.Email,
		user.Username,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.Role,
		user.Department,
		user.Phone,
		user.Address,
		user.Active,
	).Scan(&user.CreatedAt, &user.UpdatedAt)
	return mapUniqueViolation(err)
}

func (r *postgresUserRepository) Update(ctx context.Context, user *domain.User) error {
	const query = `
        UPDATE users SET email=$1, username=$2, first_name=$3, last_name=$4,
            password_hash=$5, role=$6, department=$7, phone=$8, address=$9,
            is_active=$10, updated_at=NOW()
        WHERE id=$11`

	cmd, err := r.pool.Exec(ctx, query,
		user.Email,
		user.Username,
		user.FirstName,
		user.LastName,
		user.PasswordHash,
		user.Role,
		user.Department,
		user.Phone,
		user.Address,
		user.Active,
		user.ID,
	)
	if err != nil {
		return mapUniqueViolation(err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresUserRepository) Delete(ctx context.Context, id string) error {
	cmd, err := r.pool.Exec(ctx, `DELETE FROM users WHERE id=$1`, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresUserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	return r.getBy(ctx, "id=$1", id)
}

func (r *postgresUserRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return r.getBy(ctx, "LOWER(email)=LOWER($1)", email)
}

func (r *postgresUserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return r.getBy(ctx, "LOWER(username)=LOWER($1)", username)
}

func (r *postgresUserRepository) UpdateLastLogin(ctx context.Context, id string, at time.Time) error {
	cmd, err := r.pool.Exec(ctx, `UPDATE users SET last_login_at=$1 WHERE id=$2`, at, id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *postgresUserRepository) List(ctx context.Context, query UserQuery) (*UserPage, error) {
	query.Normalize()

	conditions := make([]string, 0, 3)
	args := make([]any, 0, 5)

	if query.Search != "" {
		args = append(args, "%"+query.Search+"%")
		idx := len(args)
		conditions = append(conditions, fmt.Sprintf(
			"(email ILIKE $%d OR username ILIKE $%d OR first_name ILIKE $%d OR last_name ILIKE $%d)",
			idx, idx, idx, idx))
	}
	if query.Role != "" {
		args = append(args, query.Role)
		conditions = append(conditions, fmt.Sprintf("role=$%d", len(args)))
	}
	if query.Active != nil {
		args = append(args, *query.Active)
		conditions = append(conditions, fmt.Sprintf("is_active=$%d", len(args)))
	}

	where := ""
	if len(conditions) > 0 {
		where = " WHERE " + strings.Join(conditions, " AND ")
	}

	var total int
	if err := r.pool.QueryRow(ctx, "SELECT COUNT(*) FROM users"+where, args...).Scan(&total); err != nil {
		return nil, err
	}

	direction := "ASC"
	if query.SortDir == SortDesc {
		direction = "DESC"
	}
	// SortBy is restricted to a fixed column list by Normalize.
	args = append(args, query.Limit, query.Offset)
	listQuery := fmt.Sprintf("SELECT %s FROM users%s ORDER BY %s %s LIMIT $%d OFFSET $%d",
		userColumns, where, query.SortBy, direction, len(args)-1, len(args))

	rows, err := r.pool.Query(ctx, listQuery, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	users := make([]*domain.User, 0, query.Limit)
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &UserPage{Users: users, Total: total}, nil
}

func (r *postgresUserRepository) getBy(ctx context.Context, condition string, arg any) (*domain.User, error) {
	query := fmt.Sprintf("SELECT %s FROM users WHERE %s", userColumns, condition)
	user, err := scanUser(r.pool.QueryRow(ctx, query, arg))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (*domain.User, error) {
	var user domain.User
	if err := row.Scan(
		&user.ID,
		&user.Email,
		&user.Username,
		&user.FirstName,
		&user.LastName,
		&user.PasswordHash,
		&user.Role,
		&user.Department,
		&user.Phone,
		&user.Address,
		&user.Active,
		&user.LastLoginAt,
		&user.CreatedAt,
		&user.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &user, nil
}

// mapUniqueViolation translates Postgres unique-index violations into the
// repository's duplicate sentinels so the service can answer Conflict.
func mapUniqueViolation(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if strings.Contains(pgErr.ConstraintName, "username") {
			return ErrDuplicateUsername
		}
		return ErrDuplicateEmail
	}
	return err
}
