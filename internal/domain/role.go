package domain

// Role is a static capability tier per user. There is no hierarchy: each
// operation enumerates the roles it allows.
type Role string

const (
	RoleAdmin    Role = "admin"
	RoleOperator Role = "operator"
	RoleMonitor  Role = "monitor"
)

func (r Role) Valid() bool {
	switch r {
	case RoleAdmin, RoleOperator, RoleMonitor:
		return true
	}
	return false
}

// Permission names a guarded operation.
type Permission string

const (
	PermStationActivate Permission = "station:activate"
	PermStationUpdate   Permission = "station:update"
	PermStationDelete   Permission = "station:delete"
	PermDeviceWrite     Permission = "device:write"
	PermSensorDataWrite Permission = "sensor-data:write"
	PermAlertCreate     Permission = "alert:create"
	PermAlertResolve    Permission = "alert:resolve"
	PermAlertRuleWrite  Permission = "alert-rule:write"
	PermUserManage      Permission = "user:manage"
)

// permissionRoles is the authorization table: operation -> allowed roles.
// Reads are open to every authenticated company member and are not listed.
var permissionRoles = map[Permission][]Role{
	PermStationActivate: {RoleAdmin},
	PermStationUpdate:   {RoleAdmin, RoleOperator},
	PermStationDelete:   {RoleAdmin},
	PermDeviceWrite:     {RoleAdmin, RoleOperator},
	PermSensorDataWrite: {RoleAdmin, RoleOperator, RoleMonitor},
	PermAlertCreate:     {RoleAdmin, RoleOperator},
	PermAlertResolve:    {RoleAdmin, RoleOperator},
	PermAlertRuleWrite:  {RoleAdmin, RoleOperator},
	PermUserManage:      {RoleAdmin},
}

// Can reports whether the role is in the allow-list for the permission.
// Unknown permissions deny.
func (r Role) Can(p Permission) bool {
	for _, allowed := range permissionRoles[p] {
		if r == allowed {
			return true
		}
	}
	return false
}

// Authorize returns ErrForbidden unless the user's role allows the permission.
func Authorize(u *User, p Permission) error {
	if u == nil || !u.Role.Can(p) {
		return ErrForbidden
	}
	return nil
}
