package httpapi

import (
	"net/http"

	"stationhub/internal/service"

	"go.uber.org/zap"
)

type DashboardHandler struct {
	dashboard service.DashboardService
	logger    *zap.Logger
}

func NewDashboardHandler(dashboard service.DashboardService, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{dashboard: dashboard, logger: logger}
}

func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	stats, err := h.dashboard.Stats(ctx, UserFromContext(ctx))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, stats)
}
