package service

import (
	"context"
	"database/sql"
	"testing"

	"stationhub/internal/auth"
	"stationhub/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

func newTestAuthService(users *fakeUsersRepo, companies *fakeCompaniesRepo) AuthService {
	return NewAuthService(users, companies, auth.NewHasher(bcrypt.MinCost), zap.NewNop())
}

func validRegisterRequest() RegisterRequest {
	return RegisterRequest{
		Email:     "new@example.com",
		FirstName: "New",
		LastName:  "User",
		Password:  "secret123",
		CompanyChoice: CompanyChoice{
			NewCompanyName: "Fresh Co",
		},
	}
}

func TestRegisterCreatesUserAndCompany(t *testing.T) {
	users := newFakeUsersRepo()
	companies := newFakeCompaniesRepo()
	svc := newTestAuthService(users, companies)

	user, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	assert.Equal(t, "new@example.com", user.Email)
	assert.Equal(t, domain.RoleMonitor, user.Role, "role defaults to monitor")
	assert.True(t, user.HasCompany())
	assert.Equal(t, 1, companies.created)

	created := companies.companies[user.CompanyID.String]
	require.NotNil(t, created)
	assert.Equal(t, domain.DefaultLicenseType, created.LicenseType)
	assert.Equal(t, domain.DefaultMaxStations, created.MaxStations)
}

func TestRegisterCompanyChoiceExactlyOne(t *testing.T) {
	tests := []struct {
		name   string
		choice CompanyChoice
	}{
		{"both", CompanyChoice{CompanyID: "c1", NewCompanyName: "Fresh Co"}},
		{"neither", CompanyChoice{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			users := newFakeUsersRepo()
			companies := newFakeCompaniesRepo()
			svc := newTestAuthService(users, companies)

			req := validRegisterRequest()
			req.CompanyChoice = tt.choice
			_, err := svc.Register(context.Background(), req)

			var v *domain.ValidationError
			require.ErrorAs(t, err, &v)
			// rejected before any write
			assert.Equal(t, 0, users.created)
			assert.Equal(t, 0, companies.created)
		})
	}
}

func TestRegisterDuplicateEmailConflicts(t *testing.T) {
	users := newFakeUsersRepo()
	companies := newFakeCompaniesRepo()
	svc := newTestAuthService(users, companies)

	_, err := svc.Register(context.Background(), validRegisterRequest())
	require.NoError(t, err)

	req := validRegisterRequest()
	req.NewCompanyName = "Other Co"
	_, err = svc.Register(context.Background(), req)

	var conflict *domain.ConflictError
	assert.ErrorAs(t, err, &conflict)
	assert.Equal(t, 1, companies.created, "the failed registration must not create a company")
	assert.Equal(t, 1, users.created)
}

func TestRegisterInactiveCompanyRejected(t *testing.T) {
	companies := newFakeCompaniesRepo(&domain.Company{CompanyID: "c1", CompanyName: "Gone Co", IsActive: false})
	svc := newTestAuthService(newFakeUsersRepo(), companies)

	req := validRegisterRequest()
	req.CompanyChoice = CompanyChoice{CompanyID: "c1"}
	_, err := svc.Register(context.Background(), req)

	var v *domain.ValidationError
	assert.ErrorAs(t, err, &v)
}

func TestLoginGenericFailures(t *testing.T) {
	hasher := auth.NewHasher(bcrypt.MinCost)
	hash, err := hasher.Hash("correct-horse")
	require.NoError(t, err)

	active := &domain.User{
		UserID:       "u1",
		Email:        "user@example.com",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		CompanyID:    sql.NullString{String: "c1", Valid: true},
		IsActive:     true,
	}
	inactive := &domain.User{
		UserID:       "u2",
		Email:        "gone@example.com",
		PasswordHash: hash,
		Role:         domain.RoleAdmin,
		IsActive:     false,
	}
	svc := NewAuthService(newFakeUsersRepo(active, inactive), newFakeCompaniesRepo(), hasher, zap.NewNop())

	tests := []struct {
		name     string
		email    string
		password string
	}{
		{"unknown email", "nobody@example.com", "correct-horse"},
		{"wrong password", "user@example.com", "wrong"},
		{"inactive account", "gone@example.com", "correct-horse"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.Login(context.Background(), LoginRequest{Email: tt.email, Password: tt.password})
			assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
		})
	}

	user, err := svc.Login(context.Background(), LoginRequest{Email: "User@Example.com", Password: "correct-horse"})
	require.NoError(t, err, "email comparison is case-insensitive")
	assert.Equal(t, "u1", user.UserID)
}

func TestCompleteRegistration(t *testing.T) {
	pending := &domain.User{UserID: "u1", Email: "p@example.com", Role: domain.RoleMonitor, IsActive: true}
	users := newFakeUsersRepo(pending)
	companies := newFakeCompaniesRepo(&domain.Company{CompanyID: "c1", CompanyName: "Acme", IsActive: true})
	svc := newTestAuthService(users, companies)

	updated, err := svc.CompleteRegistration(context.Background(), pending, CompanyChoice{CompanyID: "c1", Role: "operator"})
	require.NoError(t, err)
	assert.Equal(t, "c1", updated.CompanyID.String)
	assert.Equal(t, domain.RoleOperator, updated.Role)

	// second completion conflicts
	_, err = svc.CompleteRegistration(context.Background(), updated, CompanyChoice{CompanyID: "c1"})
	var conflict *domain.ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestCompleteRegistrationStaleUserLeavesNoCompany(t *testing.T) {
	pending := &domain.User{UserID: "u1", Email: "p@example.com", Role: domain.RoleMonitor, IsActive: true}
	users := newFakeUsersRepo(pending)
	companies := newFakeCompaniesRepo()
	svc := newTestAuthService(users, companies)

	// first completion wins and creates an inline company
	first, err := svc.CompleteRegistration(context.Background(), pending, CompanyChoice{NewCompanyName: "First Co"})
	require.NoError(t, err)
	require.True(t, first.HasCompany())
	require.Equal(t, 1, companies.created)

	// a second caller still holding the pre-completion user must conflict
	// without creating another company
	stale := &domain.User{UserID: "u1", Email: "p@example.com", Role: domain.RoleMonitor, IsActive: true}
	_, err = svc.CompleteRegistration(context.Background(), stale, CompanyChoice{NewCompanyName: "Second Co"})
	var conflict *domain.ConflictError
	require.ErrorAs(t, err, &conflict)
	assert.Equal(t, 1, companies.created, "the losing completion must not create a company")
}
