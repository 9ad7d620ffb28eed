package httpapi

import (
	"net/http"
	"strings"

	"stationhub/internal/service"

	"go.uber.org/zap"
)

type AlertRuleHandler struct {
	rules  service.AlertRuleService
	logger *zap.Logger
}

func NewAlertRuleHandler(rules service.AlertRuleService, logger *zap.Logger) *AlertRuleHandler {
	return &AlertRuleHandler{rules: rules, logger: logger}
}

func (h *AlertRuleHandler) Collection(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := UserFromContext(ctx)

	switch r.Method {
	case http.MethodGet:
		rules, err := h.rules.ListRules(ctx, actor)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, toJSONList(rules))

	case http.MethodPost:
		var req service.AlertRuleCreateRequest
		if err := readBodyJSON(r, 1<<20, &req); err != nil {
			writeError(w, h.logger, err)
			return
		}
		rule, err := h.rules.CreateRule(ctx, actor, req)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusCreated, rule.ToJSON())

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *AlertRuleHandler) Item(w http.ResponseWriter, r *http.Request) {
	id := strings.TrimPrefix(r.URL.Path, "/api/v1/alert-rules/")
	if id == "" || strings.Contains(id, "/") {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	if r.Method != http.MethodPatch && r.Method != http.MethodPut {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	var req service.AlertRuleUpdateRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	rule, err := h.rules.UpdateRule(ctx, UserFromContext(ctx), id, req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, rule.ToJSON())
}
