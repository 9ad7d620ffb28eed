package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"stationhub/internal/domain"

	"github.com/google/uuid"
)

type PostgresSensorDataRepo struct {
	db *sql.DB
}

func NewPostgresSensorDataRepo(db *sql.DB) *PostgresSensorDataRepo {
	return &PostgresSensorDataRepo{db: db}
}

const readingColumns = `reading_id::text, device_id::text, parameter, value, unit, ts,
	CASE WHEN metadata IS NULL THEN NULL ELSE metadata::text END`

func scanReading(row interface{ Scan(...any) error }) (*domain.SensorReading, error) {
	var r domain.SensorReading
	err := row.Scan(&r.ReadingID, &r.DeviceID, &r.Parameter, &r.Value, &r.Unit, &r.Timestamp, &r.Metadata)
	if err != nil {
		return nil, err
	}
	return &r, nil
}

func (r *PostgresSensorDataRepo) InsertReading(ctx context.Context, reading *domain.SensorReading) (string, error) {
	readingID := uuid.NewString()
	ts := reading.Timestamp
	if ts.IsZero() {
		ts = time.Now()
	}
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO sensor_data (reading_id, device_id, parameter, value, unit, ts, metadata)
		 VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		readingID, reading.DeviceID, reading.Parameter, reading.Value, reading.Unit, ts, reading.Metadata)
	if err != nil {
		return "", err
	}
	return readingID, nil
}

func (r *PostgresSensorDataRepo) ListReadings(ctx context.Context, deviceID string, f ReadingFilter) ([]*domain.SensorReading, error) {
	where := []string{"device_id = $1"}
	args := []any{deviceID}
	argN := 2

	if f.Parameter != "" {
		where = append(where, fmt.Sprintf("parameter = $%d", argN))
		args = append(args, f.Parameter)
		argN++
	}
	if f.From != nil {
		where = append(where, fmt.Sprintf("ts >= $%d", argN))
		args = append(args, *f.From)
		argN++
	}
	if f.To != nil {
		where = append(where, fmt.Sprintf("ts <= $%d", argN))
		args = append(args, *f.To)
		argN++
	}

	q := `SELECT ` + readingColumns + ` FROM sensor_data WHERE ` + strings.Join(where, " AND ") +
		` ORDER BY ts DESC`
	if f.Limit > 0 {
		q += fmt.Sprintf(" LIMIT $%d", argN)
		args = append(args, f.Limit)
	}

	rows, err := r.db.QueryContext(ctx, q, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.SensorReading{}
	for rows.Next() {
		reading, err := scanReading(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, reading)
	}
	return out, rows.Err()
}
