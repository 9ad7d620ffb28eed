package domain

import (
	"database/sql"
	"time"
)

// User maps the users table. CompanyID is NULL between signup and
// complete-registration ("pending registration").
type User struct {
	UserID       string         `db:"user_id"`
	Email        string         `db:"email"` // unique
	FirstName    sql.NullString `db:"first_name"`
	LastName     sql.NullString `db:"last_name"`
	PasswordHash string         `db:"password_hash"`
	Role         Role           `db:"role"`
	CompanyID    sql.NullString `db:"company_id"`
	IsActive     bool           `db:"is_active"`
	CreatedAt    time.Time      `db:"created_at"`
	UpdatedAt    time.Time      `db:"updated_at"`
}

// HasCompany reports whether registration has been completed.
func (u *User) HasCompany() bool {
	return u.CompanyID.Valid && u.CompanyID.String != ""
}

// ToJSON renders the user for HTTP responses. The password hash never leaves
// the server.
func (u *User) ToJSON() map[string]any {
	m := map[string]any{
		"id":        u.UserID,
		"email":     u.Email,
		"role":      string(u.Role),
		"isActive":  u.IsActive,
		"createdAt": u.CreatedAt,
	}
	if u.FirstName.Valid {
		m["firstName"] = u.FirstName.String
	}
	if u.LastName.Valid {
		m["lastName"] = u.LastName.String
	}
	if u.CompanyID.Valid {
		m["companyId"] = u.CompanyID.String
	} else {
		m["companyId"] = nil
	}
	return m
}
