package repository

import (
	"context"
	"database/sql"

	"stationhub/internal/domain"

	"github.com/google/uuid"
)

type PostgresCompaniesRepo struct {
	db *sql.DB
}

func NewPostgresCompaniesRepo(db *sql.DB) *PostgresCompaniesRepo {
	return &PostgresCompaniesRepo{db: db}
}

const companyColumns = `company_id::text, company_name, license_type, max_stations, is_active, created_at, updated_at`

func scanCompany(row interface{ Scan(...any) error }) (*domain.Company, error) {
	var c domain.Company
	err := row.Scan(&c.CompanyID, &c.CompanyName, &c.LicenseType, &c.MaxStations, &c.IsActive, &c.CreatedAt, &c.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &c, nil
}

func (r *PostgresCompaniesRepo) GetCompany(ctx context.Context, companyID string) (*domain.Company, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE company_id = $1`, companyID)
	c, err := scanCompany(row)
	if err == sql.ErrNoRows {
		return nil, domain.NotFound("company")
	}
	return c, err
}

func (r *PostgresCompaniesRepo) ListActiveCompanies(ctx context.Context) ([]*domain.Company, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+companyColumns+` FROM companies WHERE is_active = TRUE ORDER BY company_name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []*domain.Company{}
	for rows.Next() {
		c, err := scanCompany(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (r *PostgresCompaniesRepo) CreateCompany(ctx context.Context, name, licenseType string, maxStations int) (*domain.Company, error) {
	companyID := uuid.NewString()
	row := r.db.QueryRowContext(ctx,
		`INSERT INTO companies (company_id, company_name, license_type, max_stations, is_active)
		 VALUES ($1, $2, $3, $4, TRUE)
		 RETURNING `+companyColumns,
		companyID, name, licenseType, maxStations)
	return scanCompany(row)
}
