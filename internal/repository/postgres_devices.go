package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	"stationhub/internal/domain"

	"github.com/google/uuid"
)

type PostgresDevicesRepo struct {
	db *sql.DB
}

func NewPostgresDevicesRepo(db *sql.DB) *PostgresDevicesRepo {
	return &PostgresDevicesRepo{db: db}
}

const deviceColumns = `d.device_id::text, d.station_id::text, d.name, d.type, d.model, d.serial_number,
	d.status,
	CASE WHEN d.metadata IS NULL THEN NULL ELSE d.metadata::text END,
	d.created_at, d.updated_at`

func scanDevice(row interface{ Scan(...any) error }) (*domain.Device, error) {
	var d domain.Device
	err := row.Scan(&d.DeviceID, &d.StationID, &d.Name, &d.Type, &d.Model, &d.SerialNumber,
		&d.Status, &d.Metadata, &d.CreatedAt, &d.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

func (r *PostgresDevicesRepo) CreateDevice(ctx context.Context, d *domain.Device) (string, error) {
	deviceID := uuid.NewString()
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO devices (device_id, station_id, name, type, model, serial_number, status, metadata)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		deviceID, d.StationID, d.Name, d.Type, d.Model, d.SerialNumber, d.Status, d.Metadata)
	if err != nil {
		return "", err
	}
	return deviceID, nil
}

func (r *PostgresDevicesRepo) GetDevice(ctx context.Context, companyID, deviceID string) (*domain.Device, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+deviceColumns+`
		 FROM devices d
		 JOIN stations s ON d.station_id = s.station_id
		 WHERE d.device_id = $1 AND s.company_id = $2`,
		deviceID, companyID)
	d, err := scanDevice(row)
	if err == sql.ErrNoRows {
		return nil, domain.NotFound("device")
	}
	return d, err
}

func (r *PostgresDevicesRepo) ListDevicesByStation(ctx context.Context, stationID string) ([]*domain.Device, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+deviceColumns+` FROM devices d WHERE d.station_id = $1 ORDER BY d.updated_at DESC`,
		stationID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDevices(rows)
}

func (r *PostgresDevicesRepo) ListCompanyDevices(ctx context.Context, companyID string) ([]*domain.Device, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+deviceColumns+`
		 FROM devices d
		 JOIN stations s ON d.station_id = s.station_id
		 WHERE s.company_id = $1
		 ORDER BY d.updated_at DESC`,
		companyID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDevices(rows)
}

func collectDevices(rows *sql.Rows) ([]*domain.Device, error) {
	out := []*domain.Device{}
	for rows.Next() {
		d, err := scanDevice(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

func (r *PostgresDevicesRepo) UpdateDevice(ctx context.Context, companyID, deviceID string, upd DeviceUpdate) (*domain.Device, error) {
	set := []string{"updated_at = now()"}
	args := []any{}
	argN := 1

	if upd.Name != nil {
		set = append(set, fmt.Sprintf("name = $%d", argN))
		args = append(args, *upd.Name)
		argN++
	}
	if upd.Model != nil {
		set = append(set, fmt.Sprintf("model = $%d", argN))
		args = append(args, *upd.Model)
		argN++
	}
	if upd.SerialNumber != nil {
		set = append(set, fmt.Sprintf("serial_number = $%d", argN))
		args = append(args, *upd.SerialNumber)
		argN++
	}
	if upd.Status != nil {
		set = append(set, fmt.Sprintf("status = $%d", argN))
		args = append(args, *upd.Status)
		argN++
	}
	if upd.Metadata != nil {
		set = append(set, fmt.Sprintf("metadata = $%d", argN))
		args = append(args, *upd.Metadata)
		argN++
	}

	args = append(args, deviceID, companyID)
	q := fmt.Sprintf(
		`UPDATE devices d SET %s
		 FROM stations s
		 WHERE d.station_id = s.station_id AND d.device_id = $%d AND s.company_id = $%d
		 RETURNING `+deviceColumns,
		strings.Join(set, ", "), argN, argN+1)

	d, err := scanDevice(r.db.QueryRowContext(ctx, q, args...))
	if err == sql.ErrNoRows {
		return nil, domain.NotFound("device")
	}
	return d, err
}
