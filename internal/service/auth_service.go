package service

import (
	"context"
	"database/sql"
	"errors"
	"strings"

	"stationhub/internal/auth"
	"stationhub/internal/domain"
	"stationhub/internal/repository"

	"go.uber.org/zap"
)

// AuthService handles signup, login and registration completion.
type AuthService interface {
	Register(ctx context.Context, req RegisterRequest) (*domain.User, error)
	Login(ctx context.Context, req LoginRequest) (*domain.User, error)
	CompleteRegistration(ctx context.Context, user *domain.User, req CompanyChoice) (*domain.User, error)
	ListCompanies(ctx context.Context) ([]*domain.Company, error)
}

type authService struct {
	users     repository.UsersRepository
	companies repository.CompaniesRepository
	hasher    *auth.Hasher
	logger    *zap.Logger
}

func NewAuthService(users repository.UsersRepository, companies repository.CompaniesRepository, hasher *auth.Hasher, logger *zap.Logger) AuthService {
	return &authService{users: users, companies: companies, hasher: hasher, logger: logger}
}

// CompanyChoice selects exactly one of: join an existing company, or create
// a new one inline.
type CompanyChoice struct {
	CompanyID      string `json:"companyId"`
	NewCompanyName string `json:"newCompanyName"`
	Role           string `json:"role"`
}

type RegisterRequest struct {
	Email     string `json:"email"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Password  string `json:"password"`
	CompanyChoice
}

type LoginRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	IPAddress string `json:"-"`
}

func (r *RegisterRequest) validate() error {
	v := &domain.ValidationError{}
	if r.Email == "" || !strings.Contains(r.Email, "@") {
		v.Add("email", "must be a valid email address")
	}
	if r.FirstName == "" {
		v.Add("firstName", "is required")
	}
	if r.LastName == "" {
		v.Add("lastName", "is required")
	}
	if len(r.Password) < 6 {
		v.Add("password", "must be at least 6 characters")
	}
	validateCompanyChoice(v, &r.CompanyChoice)
	return v.OrNil()
}

// validateCompanyChoice enforces the exactly-one rule before any write
// happens. Both present or both absent is a validation error.
func validateCompanyChoice(v *domain.ValidationError, c *CompanyChoice) {
	hasExisting := c.CompanyID != ""
	hasNew := c.NewCompanyName != ""
	switch {
	case hasExisting && hasNew:
		v.Add("companyId", "choose an existing company or create a new one, not both")
	case !hasExisting && !hasNew:
		v.Add("companyId", "an existing company or a new company name is required")
	}
	if c.Role != "" && !domain.Role(c.Role).Valid() {
		v.Add("role", "must be one of admin, operator, monitor")
	}
}

// resolveCompany returns the id of the chosen company, creating it when the
// new-company path was taken.
func (s *authService) resolveCompany(ctx context.Context, c *CompanyChoice) (string, error) {
	if c.CompanyID != "" {
		company, err := s.companies.GetCompany(ctx, c.CompanyID)
		if err != nil {
			return "", err
		}
		if !company.IsActive {
			return "", domain.Invalid("companyId", "company is not active")
		}
		return company.CompanyID, nil
	}

	company, err := s.companies.CreateCompany(ctx, c.NewCompanyName, domain.DefaultLicenseType, domain.DefaultMaxStations)
	if err != nil {
		return "", err
	}
	s.logger.Info("Company created during registration",
		zap.String("company_id", company.CompanyID),
		zap.String("company_name", company.CompanyName))
	return company.CompanyID, nil
}

func (s *authService) Register(ctx context.Context, req RegisterRequest) (*domain.User, error) {
	req.Email = strings.TrimSpace(strings.ToLower(req.Email))
	if err := req.validate(); err != nil {
		return nil, err
	}

	// Duplicate email must surface before resolveCompany, or a failed
	// registration on the new-company path would leave an orphan company
	// behind. CreateUser still maps the unique violation for the race window.
	if _, err := s.users.GetUserByEmail(ctx, req.Email); err == nil {
		return nil, domain.Conflict("user with this email already exists")
	} else {
		var nf *domain.NotFoundError
		if !errors.As(err, &nf) {
			return nil, err
		}
	}

	companyID, err := s.resolveCompany(ctx, &req.CompanyChoice)
	if err != nil {
		return nil, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return nil, err
	}

	role := domain.Role(req.Role)
	if role == "" {
		role = domain.RoleMonitor
	}

	user := &domain.User{
		Email:        req.Email,
		FirstName:    sql.NullString{String: req.FirstName, Valid: true},
		LastName:     sql.NullString{String: req.LastName, Valid: true},
		PasswordHash: hash,
		Role:         role,
		CompanyID:    sql.NullString{String: companyID, Valid: true},
		IsActive:     true,
	}

	userID, err := s.users.CreateUser(ctx, user)
	if err != nil {
		return nil, err
	}
	user.UserID = userID

	s.logger.Info("User registered",
		zap.String("user_id", userID),
		zap.String("company_id", companyID),
		zap.String("role", string(role)))
	return user, nil
}

func (s *authService) Login(ctx context.Context, req LoginRequest) (*domain.User, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if email == "" || req.Password == "" {
		return nil, domain.ErrInvalidCredentials
	}

	user, err := s.users.GetUserByEmail(ctx, email)
	if err != nil {
		var nf *domain.NotFoundError
		if errors.As(err, &nf) {
			s.logger.Warn("Login failed: unknown email", zap.String("ip_address", req.IPAddress))
			return nil, domain.ErrInvalidCredentials
		}
		return nil, err
	}

	// Deactivated accounts and wrong passwords are indistinguishable to the
	// caller.
	if !user.IsActive {
		s.logger.Warn("Login failed: account deactivated",
			zap.String("user_id", user.UserID),
			zap.String("ip_address", req.IPAddress))
		return nil, domain.ErrInvalidCredentials
	}
	if !s.hasher.Check(user.PasswordHash, req.Password) {
		s.logger.Warn("Login failed: wrong password",
			zap.String("user_id", user.UserID),
			zap.String("ip_address", req.IPAddress))
		return nil, domain.ErrInvalidCredentials
	}

	return user, nil
}

func (s *authService) CompleteRegistration(ctx context.Context, user *domain.User, req CompanyChoice) (*domain.User, error) {
	if user.HasCompany() {
		return nil, domain.Conflict("registration already completed")
	}

	v := &domain.ValidationError{}
	validateCompanyChoice(v, &req)
	if err := v.OrNil(); err != nil {
		return nil, err
	}

	// The context user may be stale; re-read before resolveCompany so a
	// completion that already happened conflicts here rather than after an
	// inline company was created for nothing.
	fresh, err := s.users.GetUser(ctx, user.UserID)
	if err != nil {
		return nil, err
	}
	if fresh.HasCompany() {
		return nil, domain.Conflict("registration already completed")
	}

	companyID, err := s.resolveCompany(ctx, &req)
	if err != nil {
		return nil, err
	}

	role := domain.Role(req.Role)
	if role == "" {
		role = domain.RoleMonitor
	}

	if err := s.users.CompleteRegistration(ctx, user.UserID, companyID, role); err != nil {
		return nil, err
	}
	return s.users.GetUser(ctx, user.UserID)
}

func (s *authService) ListCompanies(ctx context.Context) ([]*domain.Company, error) {
	return s.companies.ListActiveCompanies(ctx)
}
