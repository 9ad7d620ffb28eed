package repository

import (
	"context"
	"database/sql"
)

type PostgresDashboardRepo struct {
	db *sql.DB
}

func NewPostgresDashboardRepo(db *sql.DB) *PostgresDashboardRepo {
	return &PostgresDashboardRepo{db: db}
}

// Stats runs the three counting queries for the company dashboard.
func (r *PostgresDashboardRepo) Stats(ctx context.Context, companyID string) (*DashboardStats, error) {
	stats := &DashboardStats{}

	err := r.db.QueryRowContext(ctx,
		`SELECT COUNT(*) FROM stations WHERE company_id = $1 AND status = 'active'`,
		companyID).Scan(&stats.ActiveStations)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*)
		 FROM devices d
		 JOIN stations s ON d.station_id = s.station_id
		 WHERE s.company_id = $1 AND d.status = 'active'`,
		companyID).Scan(&stats.ConnectedDevices)
	if err != nil {
		return nil, err
	}

	err = r.db.QueryRowContext(ctx,
		`SELECT COUNT(*)
		 FROM alerts a
		 JOIN stations s ON a.station_id = s.station_id
		 WHERE s.company_id = $1 AND a.is_resolved = FALSE`,
		companyID).Scan(&stats.ActiveAlerts)
	if err != nil {
		return nil, err
	}

	return stats, nil
}
