package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoleMatrix(t *testing.T) {
	tests := []struct {
		perm     Permission
		admin    bool
		operator bool
		monitor  bool
	}{
		{PermStationActivate, true, false, false},
		{PermStationUpdate, true, true, false},
		{PermStationDelete, true, false, false},
		{PermDeviceWrite, true, true, false},
		{PermSensorDataWrite, true, true, true},
		{PermAlertCreate, true, true, false},
		{PermAlertResolve, true, true, false},
		{PermAlertRuleWrite, true, true, false},
		{PermUserManage, true, false, false},
	}

	for _, tt := range tests {
		t.Run(string(tt.perm), func(t *testing.T) {
			assert.Equal(t, tt.admin, RoleAdmin.Can(tt.perm))
			assert.Equal(t, tt.operator, RoleOperator.Can(tt.perm))
			assert.Equal(t, tt.monitor, RoleMonitor.Can(tt.perm))
		})
	}
}

func TestAuthorize(t *testing.T) {
	admin := &User{UserID: "u1", Role: RoleAdmin}
	monitor := &User{UserID: "u2", Role: RoleMonitor}

	assert.NoError(t, Authorize(admin, PermStationActivate))
	assert.ErrorIs(t, Authorize(monitor, PermStationActivate), ErrForbidden)
	assert.ErrorIs(t, Authorize(nil, PermStationActivate), ErrForbidden)
}

func TestUnknownRoleAndPermissionDeny(t *testing.T) {
	assert.False(t, Role("superuser").Can(PermStationActivate))
	assert.False(t, RoleAdmin.Can(Permission("nonexistent:op")))
}
