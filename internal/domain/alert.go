package domain

import (
	"database/sql"
	"time"
)

// Alert levels.
const (
	AlertInfo     = "info"
	AlertWarning  = "warning"
	AlertCritical = "critical"
)

func ValidAlertLevel(l string) bool {
	return l == AlertInfo || l == AlertWarning || l == AlertCritical
}

// Alert maps the alerts table. Scope to a company goes through the
// referenced station.
type Alert struct {
	AlertID     string         `db:"alert_id"`
	StationID   sql.NullString `db:"station_id"`
	DeviceID    sql.NullString `db:"device_id"`
	Title       string         `db:"title"`
	Description sql.NullString `db:"description"`
	Level       string         `db:"level"`
	IsResolved  bool           `db:"is_resolved"`
	ResolvedAt  sql.NullTime   `db:"resolved_at"`
	ResolvedBy  sql.NullString `db:"resolved_by"`
	CreatedAt   time.Time      `db:"created_at"`
}

func (a *Alert) ToJSON() map[string]any {
	m := map[string]any{
		"id":         a.AlertID,
		"title":      a.Title,
		"level":      a.Level,
		"isResolved": a.IsResolved,
		"createdAt":  a.CreatedAt,
	}
	if a.StationID.Valid {
		m["stationId"] = a.StationID.String
	}
	if a.DeviceID.Valid {
		m["deviceId"] = a.DeviceID.String
	}
	if a.Description.Valid {
		m["description"] = a.Description.String
	}
	if a.ResolvedAt.Valid {
		m["resolvedAt"] = a.ResolvedAt.Time
	}
	if a.ResolvedBy.Valid {
		m["resolvedBy"] = a.ResolvedBy.String
	}
	return m
}
