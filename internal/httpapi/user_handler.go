package httpapi

import (
	"net/http"
	"strings"

	"stationhub/internal/service"

	"go.uber.org/zap"
)

// UserHandler covers company user management (admin only; enforced in the
// service layer).
type UserHandler struct {
	users  service.UserService
	logger *zap.Logger
}

func NewUserHandler(users service.UserService, logger *zap.Logger) *UserHandler {
	return &UserHandler{users: users, logger: logger}
}

func (h *UserHandler) Collection(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}
	ctx := r.Context()

	users, err := h.users.ListUsers(ctx, UserFromContext(ctx))
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, toJSONList(users))
}

func (h *UserHandler) Item(w http.ResponseWriter, r *http.Request) {
	rest := strings.TrimPrefix(r.URL.Path, "/api/v1/users/")
	id, sub, _ := strings.Cut(rest, "/")
	if id == "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}
	ctx := r.Context()
	actor := UserFromContext(ctx)

	// deactivation is reachable both as DELETE /users/{id} and as
	// PATCH /users/{id}/deactivate
	if sub == "deactivate" {
		if r.Method != http.MethodPatch {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		h.deactivate(w, r, id)
		return
	}
	if sub != "" {
		w.WriteHeader(http.StatusNotFound)
		return
	}

	switch r.Method {
	case http.MethodPatch, http.MethodPut:
		var req service.UserUpdateRequest
		if err := readBodyJSON(r, 1<<20, &req); err != nil {
			writeError(w, h.logger, err)
			return
		}
		user, err := h.users.UpdateUser(ctx, actor, id, req)
		if err != nil {
			writeError(w, h.logger, err)
			return
		}
		writeJSON(w, http.StatusOK, user.ToJSON())

	case http.MethodDelete:
		h.deactivate(w, r, id)

	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *UserHandler) deactivate(w http.ResponseWriter, r *http.Request, userID string) {
	ctx := r.Context()
	if err := h.users.DeactivateUser(ctx, UserFromContext(ctx), userID); err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeMessage(w, http.StatusOK, "user deactivated")
}
