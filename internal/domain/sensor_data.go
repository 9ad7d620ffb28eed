package domain

import (
	"database/sql"
	"time"
)

// SensorReading maps the sensor_data table. Rows are append-only; there are
// no update or delete paths.
type SensorReading struct {
	ReadingID string         `db:"reading_id"`
	DeviceID  string         `db:"device_id"`
	Parameter string         `db:"parameter"`
	Value     float64        `db:"value"`
	Unit      sql.NullString `db:"unit"`
	Timestamp time.Time      `db:"ts"`
	Metadata  sql.NullString `db:"metadata"` // JSONB
}

func (r *SensorReading) ToJSON() map[string]any {
	m := map[string]any{
		"id":        r.ReadingID,
		"deviceId":  r.DeviceID,
		"parameter": r.Parameter,
		"value":     r.Value,
		"timestamp": r.Timestamp,
	}
	if r.Unit.Valid {
		m["unit"] = r.Unit.String
	}
	m["metadata"] = rawJSONOrNil(r.Metadata)
	return m
}
