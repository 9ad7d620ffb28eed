package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"stationhub/internal/domain"

	"github.com/google/uuid"
)

type PostgresStationsRepo struct {
	db *sql.DB
}

func NewPostgresStationsRepo(db *sql.DB) *PostgresStationsRepo {
	return &PostgresStationsRepo{db: db}
}

const stationColumns = `station_id::text, uuid, name, location,
	CASE WHEN company_id IS NULL THEN NULL ELSE company_id::text END,
	status, last_seen,
	CASE WHEN metadata IS NULL THEN NULL ELSE metadata::text END`

func scanStation(row interface{ Scan(...any) error }) (*domain.Station, error) {
	var s domain.Station
	err := row.Scan(&s.StationID, &s.UUID, &s.Name, &s.Location,
		&s.CompanyID, &s.Status, &s.LastSeen, &s.Metadata)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *PostgresStationsRepo) ListStations(ctx context.Context, companyID string) ([]*domain.Station, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+stationColumns+` FROM stations WHERE company_id = $1 ORDER BY updated_at DESC`,
		companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Station{}
	for rows.Next() {
		s, err := scanStation(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

func (r *PostgresStationsRepo) GetStation(ctx context.Context, companyID, stationID string) (*domain.Station, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+stationColumns+` FROM stations WHERE station_id = $1 AND company_id = $2`,
		stationID, companyID)
	s, err := scanStation(row)
	if err == sql.ErrNoRows {
		return nil, domain.NotFound("station")
	}
	return s, err
}

// GetStationByUUID is unscoped: it serves the activation preconditions, where
// the station has no company yet.
func (r *PostgresStationsRepo) GetStationByUUID(ctx context.Context, hwUUID string) (*domain.Station, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+stationColumns+` FROM stations WHERE uuid = $1`, hwUUID)
	s, err := scanStation(row)
	if err == sql.ErrNoRows {
		return nil, domain.NotFound("station")
	}
	return s, err
}

func (r *PostgresStationsRepo) CreateStation(ctx context.Context, st *domain.Station) (string, error) {
	stationID := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO stations (station_id, uuid, name, location, company_id, status, last_seen, metadata)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		stationID, st.UUID, st.Name, st.Location, st.CompanyID, st.Status, st.LastSeen, st.Metadata)
	if err != nil {
		return "", err
	}
	return stationID, nil
}

func (r *PostgresStationsRepo) UpdateStation(ctx context.Context, companyID, stationID string, upd StationUpdate) (*domain.Station, error) {
	set := []string{"updated_at = now()"}
	args := []any{}
	argN := 1

	if upd.Name != nil {
		set = append(set, fmt.Sprintf("name = $%d", argN))
		args = append(args, *upd.Name)
		argN++
	}
	if upd.Location != nil {
		set = append(set, fmt.Sprintf("location = $%d", argN))
		args = append(args, *upd.Location)
		argN++
	}
	if upd.Metadata != nil {
		set = append(set, fmt.Sprintf("metadata = $%d", argN))
		args = append(args, *upd.Metadata)
		argN++
	}

	args = append(args, stationID, companyID)
	q := fmt.Sprintf(
		`UPDATE stations SET %s WHERE station_id = $%d AND company_id = $%d RETURNING `+stationColumns,
		strings.Join(set, ", "), argN, argN+1)

	s, err := scanStation(r.db.QueryRowContext(ctx, q, args...))
	if err == sql.ErrNoRows {
		return nil, domain.NotFound("station")
	}
	return s, err
}

func (r *PostgresStationsRepo) DeleteStation(ctx context.Context, companyID, stationID string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM stations WHERE station_id = $1 AND company_id = $2`, stationID, companyID)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.NotFound("station")
	}
	return nil
}

// ClaimStation assigns the station to companyID with a single conditional
// UPDATE. The company_id IS NULL predicate makes concurrent claims safe:
// whichever statement runs first wins, the other sees zero affected rows.
func (r *PostgresStationsRepo) ClaimStation(ctx context.Context, hwUUID, companyID string) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE stations
		 SET company_id = $1, status = 'active', last_seen = now(), updated_at = now()
		 WHERE uuid = $2 AND company_id IS NULL`,
		companyID, hwUUID)
	if err != nil {
		return false, err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
