package repository

import (
	"context"
	"database/sql"

	"stationhub/internal/domain"
)

// DeviceUpdate lists the mutable device fields; nil means "leave unchanged".
type DeviceUpdate struct {
	Name         *string
	Model        *string
	SerialNumber *string
	Status       *string
	Metadata     *sql.NullString
}

// DevicesRepository accesses the devices table. Devices inherit tenant scope
// through their station, so scoped queries join stations on company_id.
// ListDevicesByStation trusts the caller to have resolved the station within
// the tenant first.
type DevicesRepository interface {
	CreateDevice(ctx context.Context, d *domain.Device) (string, error)
	GetDevice(ctx context.Context, companyID, deviceID string) (*domain.Device, error)
	ListDevicesByStation(ctx context.Context, stationID string) ([]*domain.Device, error)
	ListCompanyDevices(ctx context.Context, companyID string) ([]*domain.Device, error)
	UpdateDevice(ctx context.Context, companyID, deviceID string, upd DeviceUpdate) (*domain.Device, error)
}
