package service

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"forum-api/internal/model"
	"forum-api/internal/repository"
)

func TestUserService_Register(t *testing.T) {
	ctx := context.Background()

	t.Run("second registration reports existing user", func(t *testing.T) {
		users := new(repository.MockUserRepository)
		svc := NewUserService(users, NewRoleService(users), nil)
		id := primitive.NewObjectID()

		users.On("FindByEmail", mock.Anything, "u1").Return(nil, nil).Once()
		users.On("Insert", mock.Anything, mock.MatchedBy(func(u model.User) bool { return u.Email == "u1" })).Return(id, nil).Once()
		users.On("FindByEmail", mock.Anything, "u1").Return(&model.User{ID: id, Email: "u1"}, nil).Once()

		first, err := svc.Register(ctx, model.User{Email: "u1"}, model.AuditActor{})
		require.NoError(t, err)
		require.NotNil(t, first.InsertedID)
		assert.Equal(t, id, *first.InsertedID)

		second, err := svc.Register(ctx, model.User{Email: "u1"}, model.AuditActor{})
		require.NoError(t, err)
		assert.Nil(t, second.InsertedID)
		assert.Equal(t, "user already exists", second.Message)

		body, err := json.Marshal(second)
		require.NoError(t, err)
		assert.JSONEq(t, `{"message":"user already exists","insertedId":null}`, string(body))

		users.AssertExpectations(t)
	})

	t.Run("duplicate key race reports existing user", func(t *testing.T) {
		users := new(repository.MockUserRepository)
		svc := NewUserService(users, NewRoleService(users), nil)

		users.On("FindByEmail", mock.Anything, "u2").Return(nil, nil)
		users.On("Insert", mock.Anything, mock.Anything).Return(primitive.NilObjectID, repository.ErrUserExists)

		result, err := svc.Register(ctx, model.User{Email: "u2"}, model.AuditActor{})
		require.NoError(t, err)
		assert.Nil(t, result.InsertedID)
		assert.Equal(t, "user already exists", result.Message)
	})

	t.Run("self assigned role is dropped", func(t *testing.T) {
		users := new(repository.MockUserRepository)
		svc := NewUserService(users, NewRoleService(users), nil)

		users.On("FindByEmail", mock.Anything, "sneaky").Return(nil, nil)
		users.On("Insert", mock.Anything, mock.MatchedBy(func(u model.User) bool { return u.Role == "" && !u.CreatedAt.IsZero() })).
			Return(primitive.NewObjectID(), nil)

		_, err := svc.Register(ctx, model.User{Email: "sneaky", Role: "admin"}, model.AuditActor{})
		require.NoError(t, err)
		users.AssertExpectations(t)
	})

	t.Run("email is required", func(t *testing.T) {
		users := new(repository.MockUserRepository)
		svc := NewUserService(users, NewRoleService(users), nil)

		_, err := svc.Register(ctx, model.User{Email: "  "}, model.AuditActor{})
		require.ErrorIs(t, err, model.ErrInvalidInput)
		users.AssertNotCalled(t, "FindByEmail", mock.Anything, mock.Anything)
	})
}

func TestUserService_PromoteToAdmin(t *testing.T) {
	ctx := context.Background()

	t.Run("sets admin role", func(t *testing.T) {
		users := new(repository.MockUserRepository)
		audit := new(repository.MockAuditRepository)
		svc := NewUserService(users, NewRoleService(users), NewAuditService(audit, 0))
		id := primitive.NewObjectID()

		users.On("SetRole", mock.Anything, id, "admin").Return(model.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil)
		audit.On("Log", mock.Anything, mock.MatchedBy(func(e model.AuditEntry) bool {
			return e.Action == model.AuditActionUserPromote && e.Resource == id.Hex() && e.Actor.Email == "boss@x.com" && e.Status == model.AuditStatusSuccess
		})).Return(nil)

		result, err := svc.PromoteToAdmin(ctx, id.Hex(), model.AuditActor{Email: "boss@x.com"})
		require.NoError(t, err)
		assert.Equal(t, int64(1), result.ModifiedCount)

		users.AssertExpectations(t)
		audit.AssertExpectations(t)
	})

	t.Run("invalid identifier", func(t *testing.T) {
		users := new(repository.MockUserRepository)
		svc := NewUserService(users, NewRoleService(users), nil)

		_, err := svc.PromoteToAdmin(ctx, "bogus", model.AuditActor{})
		require.ErrorIs(t, err, model.ErrInvalidIdentifier)
		users.AssertNotCalled(t, "SetRole", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserService_AdminStatus(t *testing.T) {
	users := new(repository.MockUserRepository)
	svc := NewUserService(users, NewRoleService(users), nil)

	users.On("FindByEmail", mock.Anything, "boss@x.com").Return(&model.User{Email: "boss@x.com", Role: "admin"}, nil)
	users.On("FindByEmail", mock.Anything, "u1@x.com").Return(&model.User{Email: "u1@x.com"}, nil)

	status, err := svc.AdminStatus(context.Background(), "boss@x.com")
	require.NoError(t, err)
	assert.True(t, status.Admin)

	status, err = svc.AdminStatus(context.Background(), "u1@x.com")
	require.NoError(t, err)
	assert.False(t, status.Admin)
}
