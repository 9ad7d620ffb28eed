package repository

import "context"

// DashboardStats holds the summary counts for one company.
type DashboardStats struct {
	ActiveStations   int
	ConnectedDevices int
	ActiveAlerts     int
}

// DashboardRepository computes the dashboard counting queries, all scoped to
// the company.
type DashboardRepository interface {
	Stats(ctx context.Context, companyID string) (*DashboardStats, error)
}
