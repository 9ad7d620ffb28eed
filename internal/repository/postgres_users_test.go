package repository

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"stationhub/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateUser_DuplicateEmail(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`INSERT INTO users`).
		WillReturnError(&pq.Error{Code: "23505"})

	repo := NewPostgresUsersRepo(db)
	_, err = repo.CreateUser(context.Background(), &domain.User{
		Email:        "dup@example.com",
		PasswordHash: "$2a$12$x",
		Role:         domain.RoleMonitor,
		IsActive:     true,
	})

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestCompleteRegistration_OnlyOnce(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE users`).
		WithArgs("company-1", "operator", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 1))
	// second attempt: company_id is no longer NULL
	mock.ExpectExec(`UPDATE users`).
		WithArgs("company-2", "admin", "user-1").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostgresUsersRepo(db)
	ctx := context.Background()

	require.NoError(t, repo.CompleteRegistration(ctx, "user-1", "company-1", domain.RoleOperator))

	err = repo.CompleteRegistration(ctx, "user-1", "company-2", domain.RoleAdmin)
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeactivateUser_CrossTenantIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`UPDATE users SET is_active = FALSE`).
		WithArgs("user-b", "company-a").
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewPostgresUsersRepo(db)
	err = repo.DeactivateUser(context.Background(), "company-a", "user-b")

	var nf *domain.NotFoundError
	assert.ErrorAs(t, err, &nf)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetUserByEmail_ScansNullCompany(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	rows := sqlmock.NewRows([]string{
		"user_id", "email", "first_name", "last_name", "password_hash",
		"role", "company_id", "is_active", "created_at", "updated_at",
	}).AddRow("user-1", "new@example.com", "New", "User", "$2a$12$x",
		"monitor", nil, true, time.Now(), time.Now())

	mock.ExpectQuery(`SELECT .+ FROM users WHERE lower\(email\) = lower\(\$1\)`).
		WithArgs("new@example.com").
		WillReturnRows(rows)

	repo := NewPostgresUsersRepo(db)
	u, err := repo.GetUserByEmail(context.Background(), "new@example.com")
	require.NoError(t, err)
	assert.False(t, u.HasCompany())
	assert.Equal(t, sql.NullString{}, u.CompanyID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
