package service

import (
	"context"

	"forum-api/internal/model"
)

type userFinder interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type RoleService struct {
	users userFinder
}

func NewRoleService(users userFinder) *RoleService {
	return &RoleService{users: users}
}

// ResolveRole reads the user record once. A missing record is a standard
// user, not an error.
func (s *RoleService) ResolveRole(ctx context.Context, email string) (model.Role, error) {
	user, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return model.RoleStandard, err
	}

	if user != nil && user.Role == model.AdminRole {
		return model.RoleAdmin, nil
	}
	return model.RoleStandard, nil
}
