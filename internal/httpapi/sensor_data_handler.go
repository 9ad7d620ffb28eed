package httpapi

import (
	"encoding/json"
	"io"
	"net/http"
	"time"

	"stationhub/internal/domain"
	"stationhub/internal/service"

	"go.uber.org/zap"
)

type SensorDataHandler struct {
	sensorData service.SensorDataService
	logger     *zap.Logger
}

func NewSensorDataHandler(sensorData service.SensorDataService, logger *zap.Logger) *SensorDataHandler {
	return &SensorDataHandler{sensorData: sensorData, logger: logger}
}

// Ingest appends readings. The body is either a single reading object or an
// array of them.
func (h *SensorDataHandler) Ingest(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	body, err := io.ReadAll(io.LimitReader(r.Body, 4<<20))
	if err != nil {
		writeError(w, h.logger, domain.Invalid("body", "could not be read"))
		return
	}

	inputs, err := decodeReadings(body)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	readings, err := h.sensorData.Ingest(ctx, UserFromContext(ctx), inputs)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusCreated, toJSONList(readings))
}

func decodeReadings(body []byte) ([]service.ReadingInput, error) {
	var inputs []service.ReadingInput
	if err := json.Unmarshal(body, &inputs); err == nil {
		return inputs, nil
	}
	var single service.ReadingInput
	if err := json.Unmarshal(body, &single); err != nil {
		return nil, domain.Invalid("body", "must be a reading or an array of readings")
	}
	return []service.ReadingInput{single}, nil
}

// Search reads readings for one device, optionally narrowed by parameter and
// time range (RFC 3339 timestamps).
func (h *SensorDataHandler) Search(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	req, err := searchRequestFromQuery(r)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	readings, err := h.sensorData.Search(ctx, UserFromContext(ctx), req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toJSONList(readings))
}

func searchRequestFromQuery(r *http.Request) (service.SearchRequest, error) {
	q := r.URL.Query()
	req := service.SearchRequest{
		DeviceID:  q.Get("deviceId"),
		Parameter: q.Get("parameter"),
	}

	if from := q.Get("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return req, domain.Invalid("from", "must be an RFC 3339 timestamp")
		}
		req.From = &t
	}
	if to := q.Get("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return req, domain.Invalid("to", "must be an RFC 3339 timestamp")
		}
		req.To = &t
	}
	return req, nil
}
