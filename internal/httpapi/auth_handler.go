package httpapi

import (
	"net/http"
	"time"

	"stationhub/internal/service"
	"stationhub/internal/session"

	"go.uber.org/zap"
)

// AuthHandler covers signup, login, logout, the current-user endpoint and
// registration completion.
type AuthHandler struct {
	authService service.AuthService
	sessions    session.Store
	sessionTTL  time.Duration
	logger      *zap.Logger
}

func NewAuthHandler(authService service.AuthService, sessions session.Store, sessionTTL time.Duration, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		sessions:    sessions,
		sessionTTL:  sessionTTL,
		logger:      logger,
	}
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, token string, maxAge int) {
	http.SetCookie(w, &http.Cookie{
		Name:     SessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   maxAge,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}

// Register creates the account and logs the new user straight in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req service.RegisterRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	user, err := h.authService.Register(ctx, req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	token, err := h.sessions.Create(ctx, user.UserID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.setSessionCookie(w, token, int(h.sessionTTL.Seconds()))
	writeJSON(w, http.StatusCreated, user.ToJSON())
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req service.LoginRequest
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}
	req.IPAddress = getClientIP(r)

	user, err := h.authService.Login(ctx, req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	token, err := h.sessions.Create(ctx, user.UserID)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	h.setSessionCookie(w, token, int(h.sessionTTL.Seconds()))
	writeJSON(w, http.StatusOK, user.ToJSON())
}

func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie(SessionCookie); err == nil && cookie.Value != "" {
		if err := h.sessions.Destroy(r.Context(), cookie.Value); err != nil {
			h.logger.Error("Session destroy failed", zap.Error(err))
		}
	}
	h.setSessionCookie(w, "", -1)
	writeMessage(w, http.StatusOK, "logged out")
}

func (h *AuthHandler) CurrentUser(w http.ResponseWriter, r *http.Request) {
	user := UserFromContext(r.Context())
	writeJSON(w, http.StatusOK, user.ToJSON())
}

func (h *AuthHandler) CompleteRegistration(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	user := UserFromContext(ctx)

	var req service.CompanyChoice
	if err := readBodyJSON(r, 1<<20, &req); err != nil {
		writeError(w, h.logger, err)
		return
	}

	updated, err := h.authService.CompleteRegistration(ctx, user, req)
	if err != nil {
		writeError(w, h.logger, err)
		return
	}
	writeJSON(w, http.StatusOK, updated.ToJSON())
}

// Companies lists active companies for the registration picker. Only id and
// name go over the wire here.
func (h *AuthHandler) Companies(w http.ResponseWriter, r *http.Request) {
	companies, err := h.authService.ListCompanies(r.Context())
	if err != nil {
		writeError(w, h.logger, err)
		return
	}

	out := make([]map[string]any, 0, len(companies))
	for _, c := range companies {
		out = append(out, map[string]any{"id": c.CompanyID, "name": c.CompanyName})
	}
	writeJSON(w, http.StatusOK, out)
}
