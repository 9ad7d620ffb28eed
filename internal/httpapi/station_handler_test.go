package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"stationhub/internal/domain"
	"stationhub/internal/service"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeStationService struct {
	activate func(hwUUID string) (*domain.Station, error)
}

func (s *fakeStationService) ListStations(context.Context, *domain.User) ([]*domain.Station, error) {
	return nil, nil
}
func (s *fakeStationService) GetStation(context.Context, *domain.User, string) (*domain.Station, error) {
	return nil, domain.NotFound("station")
}
func (s *fakeStationService) UpdateStation(context.Context, *domain.User, string, service.StationUpdateRequest) (*domain.Station, error) {
	return nil, domain.NotFound("station")
}
func (s *fakeStationService) DeleteStation(context.Context, *domain.User, string) error {
	return domain.NotFound("station")
}
func (s *fakeStationService) ActivateStation(_ context.Context, _ *domain.User, hwUUID string) (*domain.Station, error) {
	return s.activate(hwUUID)
}
func (s *fakeStationService) StationData(context.Context, *domain.User, string) ([]service.StationDeviceData, error) {
	return nil, nil
}

func activateRequest(body string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/api/v1/stations/activate", strings.NewReader(body))
	admin := &domain.User{
		UserID:    "a1",
		Role:      domain.RoleAdmin,
		CompanyID: sql.NullString{String: "c1", Valid: true},
		IsActive:  true,
	}
	return req.WithContext(context.WithValue(req.Context(), userContextKey, admin))
}

func TestActivateEndpointStatuses(t *testing.T) {
	tests := []struct {
		name       string
		result     *domain.Station
		err        error
		wantStatus int
	}{
		{
			name: "claimed",
			result: &domain.Station{
				StationID: "st1",
				UUID:      "hw-1",
				Name:      "Gateway",
				Status:    domain.StationActive,
				CompanyID: sql.NullString{String: "c1", Valid: true},
			},
			wantStatus: http.StatusOK,
		},
		{"unknown uuid", nil, domain.NotFound("station"), http.StatusNotFound},
		{"already claimed", nil, domain.Conflict("station already activated"), http.StatusConflict},
		{"not admin", nil, domain.ErrForbidden, http.StatusForbidden},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeStationService{activate: func(string) (*domain.Station, error) {
				return tt.result, tt.err
			}}
			h := NewStationHandler(svc, nil, zap.NewNop())

			rec := httptest.NewRecorder()
			h.Activate(rec, activateRequest(`{"uuid":"hw-1"}`))

			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.result != nil {
				assert.Contains(t, rec.Body.String(), `"hw-1"`)
			}
		})
	}
}

func TestActivateEndpointRejectsBadJSON(t *testing.T) {
	svc := &fakeStationService{activate: func(string) (*domain.Station, error) {
		t.Fatal("service must not be called for a malformed body")
		return nil, nil
	}}
	h := NewStationHandler(svc, nil, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Activate(rec, activateRequest(`{not json`))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}
