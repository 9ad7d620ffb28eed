package service

import (
	"context"
	"database/sql"
	"encoding/json"

	"stationhub/internal/domain"
	"stationhub/internal/repository"

	"go.uber.org/zap"
)

// DeviceService covers sensor devices attached to stations.
type DeviceService interface {
	CreateDevice(ctx context.Context, actor *domain.User, req DeviceCreateRequest) (*domain.Device, error)
	GetDevice(ctx context.Context, actor *domain.User, deviceID string) (*domain.Device, error)
	ListStationDevices(ctx context.Context, actor *domain.User, stationID string) ([]*domain.Device, error)
	ListCompanyDevices(ctx context.Context, actor *domain.User) ([]*domain.Device, error)
	UpdateDevice(ctx context.Context, actor *domain.User, deviceID string, req DeviceUpdateRequest) (*domain.Device, error)
}

type DeviceCreateRequest struct {
	StationID    string          `json:"stationId"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	Model        string          `json:"model"`
	SerialNumber string          `json:"serialNumber"`
	Metadata     json.RawMessage `json:"metadata"`
}

type DeviceUpdateRequest struct {
	Name         *string         `json:"name"`
	Model        *string         `json:"model"`
	SerialNumber *string         `json:"serialNumber"`
	Status       *string         `json:"status"`
	Metadata     json.RawMessage `json:"metadata"`
}

type deviceService struct {
	devices  repository.DevicesRepository
	stations repository.StationsRepository
	logger   *zap.Logger
}

func NewDeviceService(devices repository.DevicesRepository, stations repository.StationsRepository, logger *zap.Logger) DeviceService {
	return &deviceService{devices: devices, stations: stations, logger: logger}
}

func (s *deviceService) CreateDevice(ctx context.Context, actor *domain.User, req DeviceCreateRequest) (*domain.Device, error) {
	if err := domain.Authorize(actor, domain.PermDeviceWrite); err != nil {
		return nil, err
	}

	v := &domain.ValidationError{}
	if req.StationID == "" {
		v.Add("stationId", "is required")
	}
	if req.Name == "" {
		v.Add("name", "is required")
	}
	if !domain.ValidDeviceType(req.Type) {
		v.Add("type", "is not a known sensor type")
	}
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	// The station lookup is tenant-scoped: a foreign station reads as absent.
	station, err := s.stations.GetStation(ctx, actor.CompanyID.String, req.StationID)
	if err != nil {
		return nil, err
	}

	meta, err := domain.ValidateMetadata("metadata", req.Metadata)
	if err != nil {
		return nil, err
	}

	device := &domain.Device{
		StationID:    station.StationID,
		Name:         req.Name,
		Type:         req.Type,
		Model:        nullString(req.Model),
		SerialNumber: nullString(req.SerialNumber),
		Status:       "active",
		Metadata:     meta,
	}
	deviceID, err := s.devices.CreateDevice(ctx, device)
	if err != nil {
		return nil, err
	}

	s.logger.Info("Device created",
		zap.String("device_id", deviceID),
		zap.String("station_id", station.StationID),
		zap.String("user_id", actor.UserID))
	return s.devices.GetDevice(ctx, actor.CompanyID.String, deviceID)
}

func (s *deviceService) GetDevice(ctx context.Context, actor *domain.User, deviceID string) (*domain.Device, error) {
	return s.devices.GetDevice(ctx, actor.CompanyID.String, deviceID)
}

func (s *deviceService) ListStationDevices(ctx context.Context, actor *domain.User, stationID string) ([]*domain.Device, error) {
	station, err := s.stations.GetStation(ctx, actor.CompanyID.String, stationID)
	if err != nil {
		return nil, err
	}
	return s.devices.ListDevicesByStation(ctx, station.StationID)
}

func (s *deviceService) ListCompanyDevices(ctx context.Context, actor *domain.User) ([]*domain.Device, error) {
	return s.devices.ListCompanyDevices(ctx, actor.CompanyID.String)
}

func (s *deviceService) UpdateDevice(ctx context.Context, actor *domain.User, deviceID string, req DeviceUpdateRequest) (*domain.Device, error) {
	if err := domain.Authorize(actor, domain.PermDeviceWrite); err != nil {
		return nil, err
	}
	if req.Name != nil && *req.Name == "" {
		return nil, domain.Invalid("name", "must not be empty")
	}

	upd := repository.DeviceUpdate{
		Name:         req.Name,
		Model:        req.Model,
		SerialNumber: req.SerialNumber,
		Status:       req.Status,
	}
	if len(req.Metadata) > 0 {
		meta, err := domain.ValidateMetadata("metadata", req.Metadata)
		if err != nil {
			return nil, err
		}
		upd.Metadata = &meta
	}

	return s.devices.UpdateDevice(ctx, actor.CompanyID.String, deviceID, upd)
}

func nullString(s string) sql.NullString {
	if s == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: s, Valid: true}
}
