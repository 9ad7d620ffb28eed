package httpapi

import (
	"net/http"
	"strings"

	"stationhub/internal/service"

	"go.uber.org/zap"
)

const defaultAlertLimit = 50

type AlertHandler struct {
	alerts service.AlertService
	logger *zap.Logger
}

func NewAlertHandler(alerts service.AlertService, logger *zap.Logger) *AlertHandler {
	return &AlertHandler{alerts: alerts, logger: logger}
}

func (h *AlertHandler) Collection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := UserFromContext(ctx)

	switch r.Method {
	case http.MethodGet:
		limit := parseIntParam(r.URL.Query().Get("limit"), defaultAlertLimit)
		alerts, err := h.alerts.ListAlerts(ctx, actor, limit)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, toJSONList(alerts))

	case http.MethodPost:
		var req service.AlertCreateRequest
		if err := readBodyJSON(r, 1<<20, &req); err != nil {
			writeError(w, h.logger, err)
			return
		}
		alert, err := h.alerts.CreateAlert(ctx, actor, req)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, alert.ToJSON())

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

// Item handles /api/v1/alerts/{id}/resolve.
func (h *AlertHandler) Item(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/alerts/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" || sub != "resolve" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	alert, err := h.alerts.ResolveAlert(ctx, UserFromContext(ctx), id)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, alert.ToJSON())
}
