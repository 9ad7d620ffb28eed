package repository

import (
	"context"
	"database/sql"

	"stationhub/internal/domain"

	"github.com/google/uuid"
)

type PostgresAlertsRepo struct {
	db *sql.DB
}

func NewPostgresAlertsRepo(db *sql.DB) *PostgresAlertsRepo {
	return &PostgresAlertsRepo{db: db}
}

const alertColumns = `a.alert_id::text,
	CASE WHEN a.station_id IS NULL THEN NULL ELSE a.station_id::text END,
	CASE WHEN a.device_id IS NULL THEN NULL ELSE a.device_id::text END,
	a.title, a.description, a.level, a.is_resolved, a.resolved_at,
	CASE WHEN a.resolved_by IS NULL THEN NULL ELSE a.resolved_by::text END,
	a.created_at`

func scanAlert(row interface{ Scan(...any) error }) (*domain.Alert, error) {
	var a domain.Alert
	err := row.Scan(&a.AlertID, &a.StationID, &a.DeviceID, &a.Title, &a.Description,
		&a.Level, &a.IsResolved, &a.ResolvedAt, &a.ResolvedBy, &a.CreatedAt)
	if err != nil {
		return nil, err
	}
	return &a, nil
}

func (r *PostgresAlertsRepo) ListAlerts(ctx context.Context, companyID string, limit int) ([]*domain.Alert, error) {
	if limit <= 0 {
		limit = 50
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+alertColumns+`
		 FROM alerts a
		 JOIN stations s ON a.station_id = s.station_id
		 WHERE s.company_id = $1
		 ORDER BY a.created_at DESC
		 LIMIT $2`,
		companyID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Alert{}
	for rows.Next() {
		a, err := scanAlert(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, rows.Err()
}

func (r *PostgresAlertsRepo) GetAlert(ctx context.Context, companyID, alertID string) (*domain.Alert, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+alertColumns+`
		 FROM alerts a
		 JOIN stations s ON a.station_id = s.station_id
		 WHERE a.alert_id = $1 AND s.company_id = $2`,
		alertID, companyID)
	a, err := scanAlert(row)
	if err == sql.ErrNoRows {
		return nil, domain.NotFound("alert")
	}
	return a, err
}

func (r *PostgresAlertsRepo) CreateAlert(ctx context.Context, a *domain.Alert) (string, error) {
	alertID := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO alerts (alert_id, station_id, device_id, title, description, level)
		 VALUES ($1, $2, $3, $4, $5, $6)`,
		alertID, a.StationID, a.DeviceID, a.Title, a.Description, a.Level)
	if err != nil {
		return "", err
	}
	return alertID, nil
}

func (r *PostgresAlertsRepo) ResolveAlert(ctx context.Context, companyID, alertID, userID string) (*domain.Alert, error) {
	row := r.db.QueryRowContext(ctx,
		`UPDATE alerts a
		 SET is_resolved = TRUE, resolved_at = now(), resolved_by = $1
		 FROM stations s
		 WHERE a.station_id = s.station_id
		   AND a.alert_id = $2 AND s.company_id = $3 AND a.is_resolved = FALSE
		 RETURNING `+alertColumns,
		userID, alertID, companyID)

	a, err := scanAlert(row)
	if err != sql.ErrNoRows {
		return a, err
	}

	// Nothing updated: distinguish "already resolved" from "absent or
	// cross-tenant" with a scoped read.
	existing, getErr := r.GetAlert(ctx, companyID, alertID)
	if getErr != nil {
		return nil, getErr
	}
	if existing.IsResolved {
		return nil, domain.Conflict("alert already resolved")
	}
	return nil, domain.NotFound("alert")
}
