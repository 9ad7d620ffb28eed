package domain

import (
	"database/sql"
	"time"
)

// Device sensor categories accepted at creation time.
var DeviceTypes = []string{
	"temperature_sensor",
	"humidity_sensor",
	"pressure_sensor",
	"vibration_sensor",
	"power_meter",
	"gas_sensor",
}

func ValidDeviceType(t string) bool {
	for _, dt := range DeviceTypes {
		if t == dt {
			return true
		}
	}
	return false
}

// Device maps the devices table. A device always belongs to exactly one
// station and inherits its tenant scope through the station's company.
type Device struct {
	DeviceID     string         `db:"device_id"`
	StationID    string         `db:"station_id"`
	Name         string         `db:"name"`
	Type         string         `db:"type"`
	Model        sql.NullString `db:"model"`
	SerialNumber sql.NullString `db:"serial_number"`
	Status       string         `db:"status"`
	Metadata     sql.NullString `db:"metadata"` // JSONB
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

func (d *Device) ToJSON() map[string]any {
	m := map[string]any{
		"id":        d.DeviceID,
		"stationId": d.StationID,
		"name":      d.Name,
		"type":      d.Type,
		"status":    d.Status,
		"createdAt": d.CreatedAt,
	}
	if d.Model.Valid {
		m["model"] = d.Model.String
	}
	if d.SerialNumber.Valid {
		m["serialNumber"] = d.SerialNumber.String
	}
	m["metadata"] = rawJSONOrNil(d.Metadata)
	return m
}
