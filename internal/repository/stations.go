package repository

import (
	"context"
	"database/sql"

	"stationhub/internal/domain"
)

// StationUpdate lists the mutable station fields; nil means "leave unchanged".
type StationUpdate struct {
	Name     *string
	Location *string
	Metadata *sql.NullString
}

// StationsRepository accesses the stations table. GetStationByUUID is
// unscoped: activation has to look at unclaimed stations that belong to no
// company yet.
type StationsRepository interface {
	ListStations(ctx context.Context, companyID string) ([]*domain.Station, error)
	GetStation(ctx context.Context, companyID, stationID string) (*domain.Station, error)
	GetStationByUUID(ctx context.Context, uuid string) (*domain.Station, error)
	CreateStation(ctx context.Context, st *domain.Station) (string, error)
	UpdateStation(ctx context.Context, companyID, stationID string, upd StationUpdate) (*domain.Station, error)
	DeleteStation(ctx context.Context, companyID, stationID string) error

	// ClaimStation is a single conditional write: it assigns the company and
	// activates the station only while company_id is still NULL, and reports
	// whether this caller won the claim. Two concurrent claims on the same
	// UUID therefore resolve to exactly one winner.
	ClaimStation(ctx context.Context, uuid, companyID string) (bool, error)
}
