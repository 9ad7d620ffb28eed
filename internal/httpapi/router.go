package httpapi

import (
	"net/http"

	"go.uber.org/zap"
)

// Router wraps the standard library mux; routing needs here do not justify a
// third-party router.
type Router struct {
	mux    *http.ServeMux
	logger *zap.Logger
}

func NewRouter(logger *zap.Logger) *Router {
	return &Router{
		mux:    http.NewServeMux(),
		logger: logger,
	}
}

func (r *Router) Handle(pattern string, h http.HandlerFunc) {
	r.mux.HandleFunc(pattern, h)
}

func (r *Router) ServeHTTP(w http.ResponseWriter, req *http.Request) {
	r.mux.ServeHTTP(w, req)
}

// Handlers bundles every handler the API mounts.
type Handlers struct {
	Auth       *AuthHandler
	Stations   *StationHandler
	Devices    *DeviceHandler
	SensorData *SensorDataHandler
	Export     *ExportHandler
	Alerts     *AlertHandler
	AlertRules *AlertRuleHandler
	Users      *UserHandler
	Dashboard  *DashboardHandler
}

// RegisterRoutes mounts all /api/v1 routes. Session enforcement is layered
// here: register/login are public, the registration-completion routes need a
// user but no company, everything else needs a fully registered user.
func (r *Router) RegisterRoutes(h Handlers, mw *SessionMiddleware) {
	// auth
	r.Handle("/api/v1/auth/register", postOnly(h.Auth.Register))
	r.Handle("/api/v1/auth/login", postOnly(h.Auth.Login))
	r.Handle("/api/v1/auth/logout", mw.RequireUser(postOnly(h.Auth.Logout)))
	r.Handle("/api/v1/auth/user", mw.RequireUser(getOnly(h.Auth.CurrentUser)))
	r.Handle("/api/v1/auth/complete-registration", mw.RequireUser(postOnly(h.Auth.CompleteRegistration)))

	// companies: reachable mid-registration, it backs the company picker
	r.Handle("/api/v1/companies", mw.RequireUser(getOnly(h.Auth.Companies)))

	// stations
	r.Handle("/api/v1/stations", mw.RequireCompany(h.Stations.Collection))
	r.Handle("/api/v1/stations/activate", mw.RequireCompany(h.Stations.Activate))
	r.Handle("/api/v1/stations/", mw.RequireCompany(h.Stations.Item))

	// devices
	r.Handle("/api/v1/devices", mw.RequireCompany(h.Devices.Collection))
	r.Handle("/api/v1/devices/", mw.RequireCompany(h.Devices.Item))

	// sensor data
	r.Handle("/api/v1/sensor-data", mw.RequireCompany(h.SensorData.Ingest))
	r.Handle("/api/v1/data/search", mw.RequireCompany(h.SensorData.Search))
	r.Handle("/api/v1/data/export", mw.RequireCompany(h.Export.Export))

	// alerts
	r.Handle("/api/v1/alerts", mw.RequireCompany(h.Alerts.Collection))
	r.Handle("/api/v1/alerts/", mw.RequireCompany(h.Alerts.Item))

	// alert rules
	r.Handle("/api/v1/alert-rules", mw.RequireCompany(h.AlertRules.Collection))
	r.Handle("/api/v1/alert-rules/", mw.RequireCompany(h.AlertRules.Item))

	// users
	r.Handle("/api/v1/users", mw.RequireCompany(h.Users.Collection))
	r.Handle("/api/v1/users/", mw.RequireCompany(h.Users.Item))

	// dashboard
	r.Handle("/api/v1/dashboard/stats", mw.RequireCompany(h.Dashboard.Stats))
}

func postOnly(next http.HandlerFunc) http.HandlerFunc {
	return methodOnly(http.MethodPost, next)
}

func getOnly(next http.HandlerFunc) http.HandlerFunc {
	return methodOnly(http.MethodGet, next)
}

func methodOnly(method string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if r.Method != method {
			w.WriteHeader(http.StatusMethodNotAllowed)
			return
		}
		next(w, r)
	}
}
