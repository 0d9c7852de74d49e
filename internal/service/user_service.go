package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"forum-api/internal/model"
	"forum-api/internal/query"
	"forum-api/internal/repository"
	"forum-api/pkg/apierror"
)

const msgUserExists = "user already exists"

type UserStore interface {
	List(ctx context.Context) ([]model.User, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	Insert(ctx context.Context, u model.User) (primitive.ObjectID, error)
	SetRole(ctx context.Context, id primitive.ObjectID, role string) (model.UpdateResult, error)
}

type UserService struct {
	users UserStore
	roles *RoleService
	audit *AuditService
	now   func() time.Time
}

func NewUserService(users UserStore, roles *RoleService, audit *AuditService) *UserService {
	return &UserService{users: users, roles: roles, audit: audit, now: time.Now}
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	return s.users.List(ctx)
}

// GetByEmail returns nil when the user does not exist.
func (s *UserService) GetByEmail(ctx context.Context, email string) (*model.User, error) {
	return s.users.FindByEmail(ctx, email)
}

func (s *UserService) AdminStatus(ctx context.Context, email string) (model.AdminStatus, error) {
	role, err := s.roles.ResolveRole(ctx, email)
	if err != nil {
		return model.AdminStatus{}, err
	}
	return model.AdminStatus{Admin: role == model.RoleAdmin}, nil
}

// Register inserts the user unless the email is already taken, in which case
// it reports that without inserting. Roles cannot be self-assigned.
func (s *UserService) Register(ctx context.Context, u model.User, actor model.AuditActor) (model.InsertResult, error) {
	u.Email = strings.TrimSpace(u.Email)
	if u.Email == "" {
		return model.InsertResult{}, apierror.Wrap(model.ErrInvalidInput, "BAD_REQUEST", "email is required", "email", http.StatusBadRequest)
	}
	u.ID = primitive.NilObjectID
	u.Role = ""
	if u.CreatedAt.IsZero() {
		u.CreatedAt = s.now().UTC()
	}

	existing, err := s.users.FindByEmail(ctx, u.Email)
	if err != nil {
		return model.InsertResult{}, err
	}
	if existing != nil {
		return model.InsertResult{Message: msgUserExists}, nil
	}

	id, err := s.users.Insert(ctx, u)
	if errors.Is(err, repository.ErrUserExists) {
		return model.InsertResult{Message: msgUserExists}, nil
	}
	if err != nil {
		return model.InsertResult{}, err
	}

	s.audit.Log(ctx, model.AuditActionUserRegister, actor, id.Hex(), map[string]any{"email": u.Email}, nil)
	return model.Inserted(id), nil
}

func (s *UserService) PromoteToAdmin(ctx context.Context, id string, actor model.AuditActor) (model.UpdateResult, error) {
	oid, err := query.ParseObjectID(id)
	if err != nil {
		return model.UpdateResult{}, err
	}

	result, err := s.users.SetRole(ctx, oid, model.AdminRole)
	s.audit.Log(ctx, model.AuditActionUserPromote, actor, oid.Hex(), result, err)
	if err != nil {
		return model.UpdateResult{}, err
	}
	return result, nil
}
