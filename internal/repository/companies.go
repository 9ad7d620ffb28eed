package repository

import (
	"context"

	"stationhub/internal/domain"
)

// CompaniesRepository manages the tenant root table. Company listing is
// intentionally unscoped: it backs the registration company picker.
type CompaniesRepository interface {
	GetCompany(ctx context.Context, companyID string) (*domain.Company, error)
	ListActiveCompanies(ctx context.Context) ([]*domain.Company, error)
	CreateCompany(ctx context.Context, name, licenseType string, maxStations int) (*domain.Company, error)
}
