package domain

import "time"

// Company is the tenant root: every other entity is reachable from exactly
// one company.
type Company struct {
	CompanyID   string    `db:"company_id"`
	CompanyName string    `db:"company_name"`
	LicenseType string    `db:"license_type"` // basic / pro
	MaxStations int       `db:"max_stations"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
	UpdatedAt   time.Time `db:"updated_at"`
}

const (
	DefaultLicenseType = "basic"
	DefaultMaxStations = 10
)

func (c *Company) ToJSON() map[string]any {
	return map[string]any{
		"id":          c.CompanyID,
		"name":        c.CompanyName,
		"licenseType": c.LicenseType,
		"maxStations": c.MaxStations,
		"isActive":    c.IsActive,
		"createdAt":   c.CreatedAt,
	}
}
