package repository

import (
	"context"
	"testing"
	"time"

	"stationhub/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var alertRowColumns = []string{
	"alert_id", "station_id", "device_id", "title", "description",
	"level", "is_resolved", "resolved_at", "resolved_by", "created_at",
}

func TestResolveAlert_Success(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	mock.ExpectQuery(`UPDATE alerts`).
		WithArgs("user-1", "alert-1", "company-1").
		WillReturnRows(sqlmock.NewRows(alertRowColumns).
			AddRow("alert-1", "station-1", nil, "Overheat", nil, "critical", true, now, "user-1", now))

	repo := NewPostgresAlertsRepo(db)
	a, err := repo.ResolveAlert(context.Background(), "company-1", "alert-1", "user-1")
	require.NoError(t, err)
	assert.True(t, a.IsResolved)
	assert.Equal(t, "user-1", a.ResolvedBy.String)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveAlert_AlreadyResolved(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	now := time.Now()
	// Conditional update matches nothing, the follow-up read finds the
	// alert already resolved.
	mock.ExpectQuery(`UPDATE alerts`).
		WithArgs("user-2", "alert-1", "company-1").
		WillReturnRows(sqlmock.NewRows(alertRowColumns))
	mock.ExpectQuery(`SELECT .+ FROM alerts`).
		WithArgs("alert-1", "company-1").
		WillReturnRows(sqlmock.NewRows(alertRowColumns).
			AddRow("alert-1", "station-1", nil, "Overheat", nil, "critical", true, now, "user-1", now))

	repo := NewPostgresAlertsRepo(db)
	_, err = repo.ResolveAlert(context.Background(), "company-1", "alert-1", "user-2")

	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestResolveAlert_CrossTenantIsNotFound(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`UPDATE alerts`).
		WithArgs("user-1", "alert-9", "company-a").
		WillReturnRows(sqlmock.NewRows(alertRowColumns))
	mock.ExpectQuery(`SELECT .+ FROM alerts`).
		WithArgs("alert-9", "company-a").
		WillReturnRows(sqlmock.NewRows(alertRowColumns))

	repo := NewPostgresAlertsRepo(db)
	_, err = repo.ResolveAlert(context.Background(), "company-a", "alert-9", "user-1")

	var nf *domain.NotFoundError
	require.ErrorAs(t, err, &nf)
	assert.Equal(t, "alert", nf.Entity)
	assert.NoError(t, mock.ExpectationsWereMet())
}
