package httpapi

import (
	"net/http"
	"strings"

	"stationhub/internal/service"

	"go.uber.org/zap"
)

// StationHandler covers station CRUD, the activation endpoint and the
// station detail data view.
type StationHandler struct {
	stations service.StationService
	devices  service.DeviceService
	logger   *zap.Logger
}

func NewStationHandler(stations service.StationService, devices service.DeviceService, logger *zap.Logger) *StationHandler {
	return &StationHandler{stations: stations, devices: devices, logger: logger}
}

func (h *StationHandler) Collection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	stations, err := h.stations.ListStations(r.Context(), UserFromContext(r.Context()))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toJSONList(stations))
}

// Activate claims a pre-provisioned station by hardware UUID.
func (h *StationHandler) Activate(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	var req struct {
		UUID string `json:"uuid"`
	}
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	station, err := h.stations.ActivateStation(ctx, UserFromContext(ctx), req.UUID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, station.ToJSON())
}

// Item dispatches /api/v1/stations/{id} and its /data and /devices subpaths.
func (h *StationHandler) Item(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/stations/")
	if rest == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	id, sub, _ := strings.Cut(rest, "/")
	switch sub {
	case "":
		h.item(w, r, id)
	case "data":
		h.data(w, r, id)
	case "devices":
		h.stationDevices(w, r, id)
	default:
		w.WriteHeader(http.StatusNotFound)
	}
}

func (h *StationHandler) item(w http.ResponseWriter, r *http.Request, stationID string) {
	ctx := r.Context()
	actor := UserFromContext(ctx)

	switch r.Method {
	case http.MethodGet:
		station, err := h.stations.GetStation(ctx, actor, stationID)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, station.ToJSON())

	case http.MethodPatch, http.MethodPut:
		var req service.StationUpdateRequest
		if err := readBodyJSON(r, 1<<20, &req); err != nil {
			writeError(w, h.logger, err)
			return
		}
		station, err := h.stations.UpdateStation(ctx, actor, stationID, req)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, station.ToJSON())

	case http.MethodDelete:
		if err := h.stations.DeleteStation(ctx, actor, stationID); err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeMessage(w, http.StatusOK, "station deleted")

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// data returns the station's devices with their most recent readings.
func (h *StationHandler) data(w http.ResponseWriter, r *http.Request, stationID string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	data, err := h.stations.StationData(ctx, UserFromContext(ctx), stationID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	out := make([]map[string]any, 0, len(data))
	for _, d := range data {
		out = append(out, map[string]any{
			"device":   d.Device.ToJSON(),
			"readings": toJSONList(d.Readings),
		})
	}
	writeJSON(w, http.StatusOK, out)
}

func (h *StationHandler) stationDevices(w http.ResponseWriter, r *http.Request, stationID string) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	devices, err := h.devices.ListStationDevices(ctx, UserFromContext(ctx), stationID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toJSONList(devices))
}
