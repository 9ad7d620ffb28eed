package domain

import (
	"database/sql"
	"encoding/json"
)

// Station statuses. Claimed stations are never pending; inactive/error are
// set by heartbeat monitoring, which lives outside this service.
const (
	StationPending  = "pending"
	StationActive   = "active"
	StationInactive = "inactive"
	StationError    = "error"
)

// Station maps the stations table. UUID is the hardware identifier assigned
// at manufacture time; CompanyID is NULL until the station is claimed.
type Station struct {
	StationID string         `db:"station_id"`
	UUID      string         `db:"uuid"`
	Name      string         `db:"name"`
	Location  sql.NullString `db:"location"`
	CompanyID sql.NullString `db:"company_id"`
	Status    string         `db:"status"`
	LastSeen  sql.NullTime   `db:"last_seen"`
	Metadata  sql.NullString `db:"metadata"` // JSONB
}

// Claimed reports whether the station belongs to a company.
func (s *Station) Claimed() bool {
	return s.CompanyID.Valid && s.CompanyID.String != ""
}

func (s *Station) ToJSON() map[string]any {
	m := map[string]any{
		"id":     s.StationID,
		"uuid":   s.UUID,
		"name":   s.Name,
		"status": s.Status,
	}
	if s.Location.Valid {
		m["location"] = s.Location.String
	} else {
		m["location"] = nil
	}
	if s.CompanyID.Valid {
		m["companyId"] = s.CompanyID.String
	} else {
		m["companyId"] = nil
	}
	if s.LastSeen.Valid {
		m["lastSeen"] = s.LastSeen.Time
	} else {
		m["lastSeen"] = nil
	}
	m["metadata"] = rawJSONOrNil(s.Metadata)
	return m
}

// rawJSONOrNil parses a stored JSONB column; stored text is never trusted
// blindly, so unparsable content comes back as nil rather than a raw string.
func rawJSONOrNil(col sql.NullString) any {
	if !col.Valid || col.String == "" {
		return nil
	}
	var v any
	if err := json.Unmarshal([]byte(col.String), &v); err != nil {
		return nil
	}
	return v
}

// ValidateMetadata accepts only a JSON object (or empty input) for metadata
// columns and returns the normalized text to store.
func ValidateMetadata(field string, raw json.RawMessage) (sql.NullString, error) {
	if len(raw) == 0 {
		return sql.NullString{}, nil
	}
	var m map[string]any
	if err := json.Unmarshal(raw, &m); err != nil {
		return sql.NullString{}, Invalid(field, "must be a JSON object")
	}
	normalized, err := json.Marshal(m)
	if err != nil {
		return sql.NullString{}, Invalid(field, "must be a JSON object")
	}
	return sql.NullString{String: string(normalized), Valid: true}, nil
}
