package repository

import (
	"context"
	"time"

	"stationhub/internal/domain"
)

// ReadingFilter narrows a sensor-data read. Zero values mean "no filter";
// results are always newest-first.
type ReadingFilter struct {
	Parameter string
	From      *time.Time
	To        *time.Time
	Limit     int
}

// SensorDataRepository appends to and scans the flat sensor_data table.
// There are no update or delete operations. The caller resolves the device
// within the tenant before reading or writing.
type SensorDataRepository interface {
	InsertReading(ctx context.Context, r *domain.SensorReading) (string, error)
	ListReadings(ctx context.Context, deviceID string, f ReadingFilter) ([]*domain.SensorReading, error)
}
