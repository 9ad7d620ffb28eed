package service

import (
	"context"

	"stationhub/internal/domain"
	"stationhub/internal/notify"
	"stationhub/internal/repository"

	"go.uber.org/zap"
)

// AlertService covers the alert list, manual alert creation and resolution.
type AlertService interface {
	ListAlerts(ctx context.Context, actor *domain.User, limit int) ([]*domain.Alert, error)
	CreateAlert(ctx context.Context, actor *domain.User, req AlertCreateRequest) (*domain.Alert, error)
	ResolveAlert(ctx context.Context, actor *domain.User, alertID string) (*domain.Alert, error)
}

type AlertCreateRequest struct {
	StationID   string `json:"stationId"`
	DeviceID    string `json:"deviceId"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Level       string `json:"level"`
}

type alertService struct {
	alerts   repository.AlertsRepository
	stations repository.StationsRepository
	devices  repository.DevicesRepository
	notifier *notify.WebhookNotifier
	logger   *zap.Logger
}

func NewAlertService(alerts repository.AlertsRepository, stations repository.StationsRepository, devices repository.DevicesRepository, notifier *notify.WebhookNotifier, logger *zap.Logger) AlertService {
	return &alertService{alerts: alerts, stations: stations, devices: devices, notifier: notifier, logger: logger}
}

func (s *alertService) ListAlerts(ctx context.Context, actor *domain.User, limit int) ([]*domain.Alert, error) {
	return s.alerts.ListAlerts(ctx, actor.CompanyID.String, limit)
}

func (s *alertService) CreateAlert(ctx context.Context, actor *domain.User, req AlertCreateRequest) (*domain.Alert, error) {
	if err := domain.Authorize(actor, domain.PermAlertCreate); err != nil {
		return nil, err
	}

	v := &domain.ValidationError{}
	if req.Title == "" {
		v.Add("title", "is required")
	}
	if req.StationID == "" {
		v.Add("stationId", "is required")
	}
	if req.Level == "" {
		req.Level = domain.AlertInfo
	} else if !domain.ValidAlertLevel(req.Level) {
		v.Add("level", "must be one of info, warning, critical")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	station, err := s.stations.GetStation(ctx, actor.CompanyID.String, req.StationID)
	if err != nil {
		return nil, err
	}

	alert := &domain.Alert{
		StationID:   nullString(station.StationID),
		Title:       req.Title,
		Description: nullString(req.Description),
		Level:       req.Level,
	}
	if req.DeviceID != "" {
		device, err := s.devices.GetDevice(ctx, actor.CompanyID.String, req.DeviceID)
		if err != nil {
			return nil, err
		}
		alert.DeviceID = nullString(device.DeviceID)
	}

	alertID, err := s.alerts.CreateAlert(ctx, alert)
	if err != nil {
		return nil, err
	}
	created, err := s.alerts.GetAlert(ctx, actor.CompanyID.String, alertID)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Alert created",
		zap.String("alert_id", alertID),
		zap.String("level", created.Level),
		zap.String("station_id", station.StationID))

	// Critical alerts fan out to the webhook; delivery failures never fail
	// the request.
	if created.Level == domain.AlertCritical && s.notifier != nil {
		s.notifier.NotifyAsync(notify.AlertEvent{
			AlertID:   created.AlertID,
			StationID: station.StationID,
			Title:     created.Title,
			Level:     created.Level,
			CreatedAt: created.CreatedAt,
		})
	}

	return created, nil
}

func (s *alertService) ResolveAlert(ctx context.Context, actor *domain.User, alertID string) (*domain.Alert, error) {
	if err := domain.Authorize(actor, domain.PermAlertResolve); err != nil {
		return nil, err
	}
	resolved, err := s.alerts.ResolveAlert(ctx, actor.CompanyID.String, alertID, actor.UserID)
	if err != nil {
		return nil, err
	}
	s.logger.Info("Alert resolved",
		zap.String("alert_id", alertID),
		zap.String("user_id", actor.UserID))
	return resolved, nil
}
