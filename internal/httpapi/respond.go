package httpapi

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"stationhub/internal/domain"

	"go.uber.org/zap"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]any{"message": message})
}

// writeError maps the domain error taxonomy onto HTTP statuses. Anything
// outside the taxonomy is a 500 and gets logged here; typed errors already
// carry a client-safe message.
func writeError(w http.ResponseWriter, logger *zap.Logger, err error) {
	var (
		validation *domain.ValidationError
		notFound   *domain.NotFoundError
		conflict   *domain.ConflictError
	)
	switch {
	case errors.As(err, &validation):
		writeJSON(w, http.StatusBadRequest, map[string]any{
			"message": "invalid input",
			"errors":  validation.Fields,
		})
	case errors.Is(err, domain.ErrInvalidCredentials):
		writeMessage(w, http.StatusUnauthorized, "invalid credentials")
	case errors.Is(err, domain.ErrForbidden):
		writeMessage(w, http.StatusForbidden, "insufficient permissions")
	case errors.As(err, &notFound):
		writeMessage(w, http.StatusNotFound, notFound.Error())
	case errors.As(err, &conflict):
		writeMessage(w, http.StatusConflict, conflict.Error())
	default:
		logger.Error("Request failed", zap.Error(err))
		writeMessage(w, http.StatusInternalServerError, "internal server error")
	}
}

func readBodyJSON(r *http.Request, maxBytes int64, out any) error {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBytes))
	if err != nil {
		return domain.Invalid("body", "could not be read")
	}
	if len(body) == 0 {
		return nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return domain.Invalid("body", "must be valid JSON")
	}
	return nil
}

func parseIntParam(s string, def int) int {
	if s == "" {
		return def
	}
	i, err := strconv.Atoi(s)
	if err != nil {
		return def
	}
	return i
}

// jsonMapper is implemented by all domain entities that render themselves
// for HTTP responses.
type jsonMapper interface {
	ToJSON() map[string]any
}

// toJSONList keeps empty collections as [] on the wire, never null.
func toJSONList[T jsonMapper](items []T) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, it := range items {
		out = append(out, it.ToJSON())
	}
	return out
}
