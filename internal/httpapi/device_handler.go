package httpapi

import (
	"net/http"
	"strings"

	"stationhub/internal/service"

	"go.uber.org/zap"
)

type DeviceHandler struct {
	devices service.DeviceService
	logger  *zap.Logger
}

func NewDeviceHandler(devices service.DeviceService, logger *zap.Logger) *DeviceHandler {
	return &DeviceHandler{devices: devices, logger: logger}
}

func (h *DeviceHandler) Collection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := UserFromContext(ctx)

	switch r.Method {
	case http.MethodGet:
		devices, err := h.devices.ListCompanyDevices(ctx, actor)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, toJSONList(devices))

	case http.MethodPost:
		var req service.DeviceCreateRequest
		if err := readBodyJSON(r, 1<<20, &req); err != nil {
			writeError(w, h.logger, err)
			return
		}
		device, err := h.devices.CreateDevice(ctx, actor, req)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, device.ToJSON())

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *DeviceHandler) Item(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/devices/")
	if id == "" || strings.Contains(id, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	ctx := r.Context()
	actor := UserFromContext(ctx)

	switch r.Method {
	case http.MethodGet:
		device, err := h.devices.GetDevice(ctx, actor, id)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, device.ToJSON())

	case http.MethodPatch, http.MethodPut:
		var req service.DeviceUpdateRequest
		if err := readBodyJSON(r, 1<<20, &req); err != nil {
			writeError(w, h.logger, err)
			return
		}
		device, err := h.devices.UpdateDevice(ctx, actor, id, req)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, device.ToJSON())

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}
