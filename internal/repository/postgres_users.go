package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"stationhub/internal/domain"

	"github.com/google/uuid"
	"github.com/lib/pq"
)

type PostgresUsersRepo struct {
	db *sql.DB
}

func NewPostgresUsersRepo(db *sql.DB) *PostgresUsersRepo {
	return &PostgresUsersRepo{db: db}
}

const userColumns = `user_id::text, email, first_name, last_name, password_hash, role,
	CASE WHEN company_id IS NULL THEN NULL ELSE company_id::text END,
	is_active, created_at, updated_at`

func scanUser(row interface{ Scan(...any) error }) (*domain.User, error) {
	var u domain.User
	err := row.Scan(&u.UserID, &u.Email, &u.FirstName, &u.LastName, &u.PasswordHash,
		&u.Role, &u.CompanyID, &u.IsActive, &u.CreatedAt, &u.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *PostgresUsersRepo) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE user_id = $1`, userID)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, domain.NotFound("user")
	}
	return u, err
}

func (r *PostgresUsersRepo) GetUserByEmail(ctx context.Context, email string) (*domain.User, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE lower(email) = lower($1)`, email)
	u, err := scanUser(row)
	if err == sql.ErrNoRows {
		return nil, domain.NotFound("user")
	}
	return u, err
}

func (r *PostgresUsersRepo) CreateUser(ctx context.Context, user *domain.User) (string, error) {
	userID := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO users (user_id, email, first_name, last_name, password_hash, role, company_id, is_active)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		userID, user.Email, user.FirstName, user.LastName, user.PasswordHash,
		string(user.Role), user.CompanyID, user.IsActive)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code.Name() == "unique_violation" {
			return "", domain.Conflict("user with this email already exists")
		}
		return "", err
	}
	return userID, nil
}

func (r *PostgresUsersRepo) ListUsersByCompany(ctx context.Context, companyID string) ([]*domain.User, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+userColumns+` FROM users WHERE company_id = $1 ORDER BY created_at DESC`, companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.User{}
	for rows.Next() {
		u, err := scanUser(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, u)
	}
	return out, rows.Err()
}

func (r *PostgresUsersRepo) UpdateUser(ctx context.Context, companyID, userID string, upd UserUpdate) (*domain.User, error) {
	set := []string{"updated_at = now()"}
	args := []any{}
	argN := 1

	if upd.FirstName != nil {
		set = append(set, fmt.Sprintf("first_name = $%d", argN))
		args = append(args, *upd.FirstName)
		argN++
	}
	if upd.LastName != nil {
		set = append(set, fmt.Sprintf("last_name = $%d", argN))
		args = append(args, *upd.LastName)
		argN++
	}
	if upd.Role != nil {
		set = append(set, fmt.Sprintf("role = $%d", argN))
		args = append(args, string(*upd.Role))
		argN++
	}

	args = append(args, userID, companyID)
	q := fmt.Sprintf(
		`UPDATE users SET %s WHERE user_id = $%d AND company_id = $%d RETURNING `+userColumns,
		strings.Join(set, ", "), argN, argN+1)

	u, err := scanUser(r.db.QueryRowContext(ctx, q, args...))
	if err == sql.ErrNoRows {
		return nil, domain.NotFound("user")
	}
	return u, err
}

func (r *PostgresUsersRepo) DeactivateUser(ctx context.Context, companyID, userID string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET is_active = FALSE, updated_at = now()
		 WHERE user_id = $1 AND company_id = $2`, userID, companyID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFound("user")
	}
	return nil
}

func (r *PostgresUsersRepo) CompleteRegistration(ctx context.Context, userID, companyID string, role domain.Role) error {
	// Conditional on company_id IS NULL so registration completes only once.
	res, err := r.db.ExecContext(ctx,
		`UPDATE users SET company_id = $1, role = $2, updated_at = now()
		 WHERE user_id = $3 AND company_id IS NULL`,
		companyID, string(role), userID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.Conflict("registration already completed")
	}
	return nil
}
