package httpapi

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"

	"stationhub/internal/domain"
	"stationhub/internal/service"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
)

type fakeUserService struct {
	deactivated []string
}

func (s *fakeUserService) ListUsers(context.Context, *domain.User) ([]*domain.User, error) {
	return nil, nil
}

func (s *fakeUserService) UpdateUser(context.Context, *domain.User, string, service.UserUpdateRequest) (*domain.User, error) {
	return nil, domain.NotFound("user")
}

func (s *fakeUserService) DeactivateUser(_ context.Context, actor *domain.User, userID string) error {
	if userID == actor.UserID {
		return domain.Conflict("cannot deactivate your own account")
	}
	s.deactivated = append(s.deactivated, userID)
	return nil
}

func userItemRequest(method, path string) *http.Request {
	req := httptest.NewRequest(method, path, nil)
	admin := &domain.User{
		UserID:    "a1",
		Role:      domain.RoleAdmin,
		CompanyID: sql.NullString{String: "c1", Valid: true},
		IsActive:  true,
	}
	return req.WithContext(context.WithValue(req.Context(), userContextKey, admin))
}

func TestDeactivateUserBothRouteForms(t *testing.T) {
	tests := []struct {
		name   string
		method string
		path   string
	}{
		{"delete form", http.MethodDelete, "/api/v1/users/u2"},
		{"patch deactivate form", http.MethodPatch, "/api/v1/users/u2/deactivate"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := &fakeUserService{}
			h := NewUserHandler(svc, zap.NewNop())

			rec := httptest.NewRecorder()
			h.Item(rec, userItemRequest(tt.method, tt.path))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, []string{"u2"}, svc.deactivated)
		})
	}
}

func TestDeactivateSelfConflictsOverHTTP(t *testing.T) {
	svc := &fakeUserService{}
	h := NewUserHandler(svc, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Item(rec, userItemRequest(http.MethodPatch, "/api/v1/users/a1/deactivate"))

	assert.Equal(t, http.StatusConflict, rec.Code)
	assert.Empty(t, svc.deactivated)
}

func TestUserItemUnknownSubpath(t *testing.T) {
	h := NewUserHandler(&fakeUserService{}, zap.NewNop())

	rec := httptest.NewRecorder()
	h.Item(rec, userItemRequest(http.MethodGet, "/api/v1/users/u2/sessions"))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = httptest.NewRecorder()
	h.Item(rec, userItemRequest(http.MethodDelete, "/api/v1/users/u2/deactivate"))
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code, "the deactivate subpath is PATCH only")
}
