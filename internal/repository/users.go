package repository

import (
	"context"

	"stationhub/internal/domain"
)

// UserUpdate lists the mutable user fields; nil means "leave unchanged".
type UserUpdate struct {
	FirstName *string
	LastName  *string
	Role      *domain.Role
}

// UsersRepository accesses the users table. Lookups by id/email are
// unscoped (they back authentication); every management operation takes the
// caller's company id and is filtered to it in SQL.
type UsersRepository interface {
	GetUser(ctx context.Context, userID string) (*domain.User, error)
	GetUserByEmail(ctx context.Context, email string) (*domain.User, error)
	CreateUser(ctx context.Context, user *domain.User) (string, error)
	ListUsersByCompany(ctx context.Context, companyID string) ([]*domain.User, error)
	UpdateUser(ctx context.Context, companyID, userID string, upd UserUpdate) (*domain.User, error)
	DeactivateUser(ctx context.Context, companyID, userID string) error
	CompleteRegistration(ctx context.Context, userID, companyID string, role domain.Role) error
}
