package httpapi

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"stationhub/internal/domain"
	"stationhub/internal/repository"
	"stationhub/internal/session"

	"go.uber.org/zap"
)

// SessionCookie is the name of the session cookie.
const SessionCookie = "shub_session"

type contextKey string

const userContextKey contextKey = "stationhub.user"

// UserFromContext returns the authenticated user attached by the session
// middleware, or nil on unauthenticated requests.
func UserFromContext(ctx context.Context) *domain.User {
	u, _ := ctx.Value(userContextKey).(*domain.User)
	return u
}

// SessionMiddleware resolves the session cookie to a user on every request.
type SessionMiddleware struct {
	sessions session.Store
	users    repository.UsersRepository
	logger   *zap.Logger
}

func NewSessionMiddleware(sessions session.Store, users repository.UsersRepository, logger *zap.Logger) *SessionMiddleware {
	return &SessionMiddleware{sessions: sessions, users: users, logger: logger}
}

// RequireUser rejects the request with 401 unless the session cookie maps to
// an active user. Sessions whose user is gone or deactivated are destroyed
// so the stale token cannot be replayed.
func (m *SessionMiddleware) RequireUser(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(SessionCookie)
		if err != nil || cookie.Value == "" {
			writeMessage(w, http.StatusUnauthorized, "authentication required")
			return
		}

		ctx := r.Context()
		userID, err := m.sessions.Get(ctx, cookie.Value)
		if err != nil {
			if !errors.Is(err, session.ErrNotFound) {
				m.logger.Error("Session lookup failed", zap.Error(err))
			}
			writeMessage(w, http.StatusUnauthorized, "authentication required")
			return
		}

		user, err := m.users.GetUser(ctx, userID)
		if err != nil {
			var nf *domain.NotFoundError
			if errors.As(err, &nf) {
				_ = m.sessions.Destroy(ctx, cookie.Value)
				writeMessage(w, http.StatusUnauthorized, "authentication required")
				return
			}
			writeError(w, m.logger, err)
			return
		}
		if !user.IsActive {
			_ = m.sessions.Destroy(ctx, cookie.Value)
			writeMessage(w, http.StatusUnauthorized, "authentication required")
			return
		}

		next(w, r.WithContext(context.WithValue(ctx, userContextKey, user)))
	}
}

// RequireCompany additionally rejects users who have not completed
// registration. Only the companies list, complete-registration, the current
// user endpoint and logout stay reachable without a company.
func (m *SessionMiddleware) RequireCompany(next http.HandlerFunc) http.HandlerFunc {
	return m.RequireUser(func(w http.ResponseWriter, r *http.Request) {
		user := UserFromContext(r.Context())
		if !user.HasCompany() {
			writeMessage(w, http.StatusForbidden, "registration is not complete")
			return
		}
		next(w, r)
	})
}

// getClientIP takes only the first X-Forwarded-For element; the header is
// client-controlled, so the full comma-joined list never reaches the logs.
func getClientIP(r *http.Request) string {
	if fwd := r.Header.Get("X-Forwarded-For"); fwd != "" {
		first, _, _ := strings.Cut(fwd, ",")
		if first = strings.TrimSpace(first); first != "" {
			return first
		}
	}
	return r.RemoteAddr
}
