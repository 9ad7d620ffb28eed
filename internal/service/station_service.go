package service

import (
	"context"
	"encoding/json"

	"stationhub/internal/domain"
	"stationhub/internal/repository"

	"go.uber.org/zap"
)

// StationService covers station CRUD and the activation flow.
type StationService interface {
	ListStations(ctx context.Context, actor *domain.User) ([]*domain.Station, error)
	GetStation(ctx context.Context, actor *domain.User, stationID string) (*domain.Station, error)
	UpdateStation(ctx context.Context, actor *domain.User, stationID string, req StationUpdateRequest) (*domain.Station, error)
	DeleteStation(ctx context.Context, actor *domain.User, stationID string) error
	ActivateStation(ctx context.Context, actor *domain.User, hwUUID string) (*domain.Station, error)
	StationData(ctx context.Context, actor *domain.User, stationID string) ([]StationDeviceData, error)
}

type StationUpdateRequest struct {
	Name     *string         `json:"name"`
	Location *string         `json:"location"`
	Metadata json.RawMessage `json:"metadata"`
}

// StationDeviceData pairs a device with its most recent readings for the
// station detail view.
type StationDeviceData struct {
	Device   *domain.Device
	Readings []*domain.SensorReading
}

type stationService struct {
	stations repository.StationsRepository
	devices  repository.DevicesRepository
	readings repository.SensorDataRepository
	logger   *zap.Logger
}

func NewStationService(stations repository.StationsRepository, devices repository.DevicesRepository, readings repository.SensorDataRepository, logger *zap.Logger) StationService {
	return &stationService{stations: stations, devices: devices, readings: readings, logger: logger}
}

func (s *stationService) ListStations(ctx context.Context, actor *domain.User) ([]*domain.Station, error) {
	return s.stations.ListStations(ctx, actor.CompanyID.String)
}

func (s *stationService) GetStation(ctx context.Context, actor *domain.User, stationID string) (*domain.Station, error) {
	return s.stations.GetStation(ctx, actor.CompanyID.String, stationID)
}

func (s *stationService) UpdateStation(ctx context.Context, actor *domain.User, stationID string, req StationUpdateRequest) (*domain.Station, error) {
	if err := domain.Authorize(actor, domain.PermStationUpdate); err != nil {
		return nil, err
	}

	upd := repository.StationUpdate{Name: req.Name, Location: req.Location}
	if req.Name != nil && *req.Name == "" {
		return nil, domain.Invalid("name", "must not be empty")
	}
	if len(req.Metadata) > 0 {
		meta, err := domain.ValidateMetadata("metadata", req.Metadata)
		if err != nil {
			return nil, err
		}
		upd.Metadata = &meta
	}

	return s.stations.UpdateStation(ctx, actor.CompanyID.String, stationID, upd)
}

func (s *stationService) DeleteStation(ctx context.Context, actor *domain.User, stationID string) error {
	if err := domain.Authorize(actor, domain.PermStationDelete); err != nil {
		return err
	}
	if err := s.stations.DeleteStation(ctx, actor.CompanyID.String, stationID); err != nil {
		return err
	}
	s.logger.Info("Station deleted",
		zap.String("station_id", stationID),
		zap.String("company_id", actor.CompanyID.String),
		zap.String("user_id", actor.UserID))
	return nil
}

// ActivateStation claims a pre-provisioned, unclaimed station for the
// admin's company. Re-activation is rejected for everyone, the owning
// company included: a successful claim resets last_seen, so a silent no-op
// would lie about liveness.
func (s *stationService) ActivateStation(ctx context.Context, actor *domain.User, hwUUID string) (*domain.Station, error) {
	if err := domain.Authorize(actor, domain.PermStationActivate); err != nil {
		return nil, err
	}
	if hwUUID == "" {
		return nil, domain.Invalid("uuid", "is required")
	}

	// The claim itself is the atomic step; this read only produces the 404
	// for unknown hardware UUIDs.
	if _, err := s.stations.GetStationByUUID(ctx, hwUUID); err != nil {
		return nil, err
	}

	claimed, err := s.stations.ClaimStation(ctx, hwUUID, actor.CompanyID.String)
	if err != nil {
		return nil, err
	}
	if !claimed {
		// Lost the race or the station was already owned; same answer either way.
		return nil, domain.Conflict("station already activated")
	}

	s.logger.Info("Station activated",
		zap.String("uuid", hwUUID),
		zap.String("company_id", actor.CompanyID.String),
		zap.String("user_id", actor.UserID))

	return s.stations.GetStationByUUID(ctx, hwUUID)
}

func (s *stationService) StationData(ctx context.Context, actor *domain.User, stationID string) ([]StationDeviceData, error) {
	station, err := s.stations.GetStation(ctx, actor.CompanyID.String, stationID)
	if err != nil {
		return nil, err
	}

	devices, err := s.devices.ListDevicesByStation(ctx, station.StationID)
	if err != nil {
		return nil, err
	}

	out := make([]StationDeviceData, 0, len(devices))
	for _, d := range devices {
		readings, err := s.readings.ListReadings(ctx, d.DeviceID, repository.ReadingFilter{Limit: 10})
		if err != nil {
			return nil, err
		}
		out = append(out, StationDeviceData{Device: d, Readings: readings})
	}
	return out, nil
}
