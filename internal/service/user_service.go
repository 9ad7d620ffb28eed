package service

import (
	"context"

	"stationhub/internal/domain"
	"stationhub/internal/repository"

	"go.uber.org/zap"
)

// UserService covers user management within one company; admin only.
type UserService interface {
	ListUsers(ctx context.Context, actor *domain.User) ([]*domain.User, error)
	UpdateUser(ctx context.Context, actor *domain.User, userID string, req UserUpdateRequest) (*domain.User, error)
	DeactivateUser(ctx context.Context, actor *domain.User, userID string) error
}

type UserUpdateRequest struct {
	FirstName *string `json:"firstName"`
	LastName  *string `json:"lastName"`
	Role      *string `json:"role"`
}

type userService struct {
	users  repository.UsersRepository
	logger *zap.Logger
}

func NewUserService(users repository.UsersRepository, logger *zap.Logger) UserService {
	return &userService{users: users, logger: logger}
}

func (s *userService) ListUsers(ctx context.Context, actor *domain.User) ([]*domain.User, error) {
	if err := domain.Authorize(actor, domain.PermUserManage); err != nil {
		return nil, err
	}
	return s.users.ListUsersByCompany(ctx, actor.CompanyID.String)
}

func (s *userService) UpdateUser(ctx context.Context, actor *domain.User, userID string, req UserUpdateRequest) (*domain.User, error) {
	if err := domain.Authorize(actor, domain.PermUserManage); err != nil {
		return nil, err
	}

	upd := repository.UserUpdate{FirstName: req.FirstName, LastName: req.LastName}
	if req.Role != nil {
		role := domain.Role(*req.Role)
		if !role.Valid() {
			return nil, domain.Invalid("role", "must be one of admin, operator, monitor")
		}
		upd.Role = &role
	}

	return s.users.UpdateUser(ctx, actor.CompanyID.String, userID, upd)
}

func (s *userService) DeactivateUser(ctx context.Context, actor *domain.User, userID string) error {
	if err := domain.Authorize(actor, domain.PermUserManage); err != nil {
		return err
	}
	// Locking yourself out is refused regardless of role.
	if userID == actor.UserID {
		return domain.Conflict("cannot deactivate your own account")
	}
	if err := s.users.DeactivateUser(ctx, actor.CompanyID.String, userID); err != nil {
		return err
	}
	s.logger.Info("User deactivated",
		zap.String("user_id", userID),
		zap.String("by_user_id", actor.UserID))
	return nil
}
