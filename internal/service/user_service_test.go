package service

import (
	"context"
	"database/sql"
	"testing"

	"stationhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func companyUser(id, companyID string, role domain.Role) *domain.User {
	return &domain.User{
		UserID:    id,
		Email:     id + "@example.com",
		Role:      role,
		CompanyID: sql.NullString{String: companyID, Valid: true},
		IsActive:  true,
	}
}

func TestListUsersAdminOnly(t *testing.T) {
	admin := companyUser("a1", "c1", domain.RoleAdmin)
	operator := companyUser("o1", "c1", domain.RoleOperator)
	svc := NewUserService(newFakeUsersRepo(admin, operator), zap.NewNop())

	users, err := svc.ListUsers(context.Background(), admin)
	require.NoError(t, err)
	assert.Len(t, users, 2)

	_, err = svc.ListUsers(context.Background(), operator)
	assert.ErrorIs(t, err, domain.ErrForbidden)
}

func TestSelfDeactivationRejected(t *testing.T) {
	admin := companyUser("a1", "c1", domain.RoleAdmin)
	repo := newFakeUsersRepo(admin)
	svc := NewUserService(repo, zap.NewNop())

	err := svc.DeactivateUser(context.Background(), admin, admin.UserID)
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.True(t, repo.users["a1"].IsActive, "account stays active")
}

func TestDeactivateOtherUser(t *testing.T) {
	admin := companyUser("a1", "c1", domain.RoleAdmin)
	victim := companyUser("m1", "c1", domain.RoleMonitor)
	repo := newFakeUsersRepo(admin, victim)
	svc := NewUserService(repo, zap.NewNop())

	require.NoError(t, svc.DeactivateUser(context.Background(), admin, "m1"))
	assert.False(t, repo.users["m1"].IsActive)
}

func TestDeactivateCrossTenantIsNotFound(t *testing.T) {
	admin := companyUser("a1", "c1", domain.RoleAdmin)
	foreign := companyUser("f1", "c2", domain.RoleMonitor)
	svc := NewUserService(newFakeUsersRepo(admin, foreign), zap.NewNop())

	err := svc.DeactivateUser(context.Background(), admin, "f1")
	var nf *domain.NotFoundError
	assert.ErrorAs(t, err, &nf)
}

func TestUpdateUserRoleValidated(t *testing.T) {
	admin := companyUser("a1", "c1", domain.RoleAdmin)
	target := companyUser("m1", "c1", domain.RoleMonitor)
	svc := NewUserService(newFakeUsersRepo(admin, target), zap.NewNop())

	bad := "superuser"
	_, err := svc.UpdateUser(context.Background(), admin, "m1", UserUpdateRequest{Role: &bad})
	var v *domain.ValidationError
	require.ErrorAs(t, err, &v)

	good := "operator"
	updated, err := svc.UpdateUser(context.Background(), admin, "m1", UserUpdateRequest{Role: &good})
	require.NoError(t, err)
	assert.Equal(t, domain.RoleOperator, updated.Role)
}
