package service

import (
	"context"
	"encoding/json"
	"math"
	"time"

	"stationhub/internal/domain"
	"stationhub/internal/repository"

	"go.uber.org/zap"
)

// SensorDataService handles the append-only reading ingest and the
// device/time-range reads behind search and export.
type SensorDataService interface {
	Ingest(ctx context.Context, actor *domain.User, readings []ReadingInput) ([]*domain.SensorReading, error)
	Search(ctx context.Context, actor *domain.User, req SearchRequest) ([]*domain.SensorReading, error)
}

type ReadingInput struct {
	DeviceID  string          `json:"deviceId"`
	Parameter string          `json:"parameter"`
	Value     float64         `json:"value"`
	Unit      string          `json:"unit"`
	Metadata  json.RawMessage `json:"metadata"`
}

type SearchRequest struct {
	DeviceID  string
	Parameter string
	From      *time.Time
	To        *time.Time
}

type sensorDataService struct {
	readings repository.SensorDataRepository
	devices  repository.DevicesRepository
	logger   *zap.Logger
}

func NewSensorDataService(readings repository.SensorDataRepository, devices repository.DevicesRepository, logger *zap.Logger) SensorDataService {
	return &sensorDataService{readings: readings, devices: devices, logger: logger}
}

// Ingest validates and appends a batch of readings. The whole batch is
// validated before the first insert so a malformed entry never leaves a
// partial write behind it.
func (s *sensorDataService) Ingest(ctx context.Context, actor *domain.User, inputs []ReadingInput) ([]*domain.SensorReading, error) {
	if err := domain.Authorize(actor, domain.PermSensorDataWrite); err != nil {
		return nil, err
	}
	if len(inputs) == 0 {
		return nil, domain.Invalid("body", "at least one reading is required")
	}

	prepared := make([]*domain.SensorReading, 0, len(inputs))
	for _, in := range inputs {
		v := &domain.ValidationError{}
		if in.DeviceID == "" {
			v.Add("deviceId", "is required")
		}
		if in.Parameter == "" {
			v.Add("parameter", "is required")
		}
		if math.IsNaN(in.Value) || math.IsInf(in.Value, 0) {
			v.Add("value", "must be a finite number")
		}
		if err := v.OrNil(); err != nil {
			return nil, err
		}

		// tenant check: the device must resolve within the caller's company
		if _, err := s.devices.GetDevice(ctx, actor.CompanyID.String, in.DeviceID); err != nil {
			return nil, err
		}

		meta, err := domain.ValidateMetadata("metadata", in.Metadata)
		if err != nil {
			return nil, err
		}
		prepared = append(prepared, &domain.SensorReading{
			DeviceID:  in.DeviceID,
			Parameter: in.Parameter,
			Value:     in.Value,
			Unit:      nullString(in.Unit),
			Metadata:  meta,
		})
	}

	out := make([]*domain.SensorReading, 0, len(prepared))
	for _, r := range prepared {
		readingID, err := s.readings.InsertReading(ctx, r)
		if err != nil {
			return nil, err
		}
		r.ReadingID = readingID
		if r.Timestamp.IsZero() {
			r.Timestamp = time.Now()
		}
		out = append(out, r)
	}

	s.logger.Debug("Sensor readings ingested",
		zap.Int("count", len(out)),
		zap.String("company_id", actor.CompanyID.String))
	return out, nil
}

func (s *sensorDataService) Search(ctx context.Context, actor *domain.User, req SearchRequest) ([]*domain.SensorReading, error) {
	if req.DeviceID == "" {
		return nil, domain.Invalid("deviceId", "is required")
	}
	if _, err := s.devices.GetDevice(ctx, actor.CompanyID.String, req.DeviceID); err != nil {
		return nil, err
	}

	return s.readings.ListReadings(ctx, req.DeviceID, repository.ReadingFilter{
		Parameter: req.Parameter,
		From:      req.From,
		To:        req.To,
	})
}
