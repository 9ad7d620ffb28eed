package service

import (
	"context"

	"stationhub/internal/domain"
	"stationhub/internal/repository"
)

// DashboardStats is the summary payload for the dashboard page.
type DashboardStats struct {
	ActiveStations   int     `json:"activeStations"`
	ConnectedDevices int     `json:"connectedDevices"`
	ActiveAlerts     int     `json:"activeAlerts"`
	SystemUptime     float64 `json:"systemUptime"`
}

// placeholderUptime stands in until heartbeat data exists to compute real
// availability from.
const placeholderUptime = 99.9

type DashboardService interface {
	Stats(ctx context.Context, actor *domain.User) (*DashboardStats, error)
}

type dashboardService struct {
	dashboard repository.DashboardRepository
}

func NewDashboardService(dashboard repository.DashboardRepository) DashboardService {
	return &dashboardService{dashboard: dashboard}
}

func (s *dashboardService) Stats(ctx context.Context, actor *domain.User) (*DashboardStats, error) {
	stats, err := s.dashboard.Stats(ctx, actor.CompanyID.String)
	if err != nil {
		return nil, err
	}
	return &DashboardStats{
		ActiveStations:   stats.ActiveStations,
		ConnectedDevices: stats.ConnectedDevices,
		ActiveAlerts:     stats.ActiveAlerts,
		SystemUptime:     placeholderUptime,
	}, nil
}
