package service

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"forum-api/internal/model"
	"forum-api/internal/repository"
)

func TestRoleService_ResolveRole(t *testing.T) {
	ctx := context.Background()

	t.Run("admin record", func(t *testing.T) {
		users := new(repository.MockUserRepository)
		users.On("FindByEmail", mock.Anything, "boss@x.com").Return(&model.User{Email: "boss@x.com", Role: "admin"}, nil)

		role, err := NewRoleService(users).ResolveRole(ctx, "boss@x.com")
		require.NoError(t, err)
		assert.Equal(t, model.RoleAdmin, role)
		users.AssertNumberOfCalls(t, "FindByEmail", 1)
	})

	t.Run("record with another role", func(t *testing.T) {
		users := new(repository.MockUserRepository)
		users.On("FindByEmail", mock.Anything, "mod@x.com").Return(&model.User{Email: "mod@x.com", Role: "moderator"}, nil)

		role, err := NewRoleService(users).ResolveRole(ctx, "mod@x.com")
		require.NoError(t, err)
		assert.Equal(t, model.RoleStandard, role)
	})

	t.Run("missing record degrades to standard", func(t *testing.T) {
		users := new(repository.MockUserRepository)
		users.On("FindByEmail", mock.Anything, "ghost@x.com").Return(nil, nil)

		role, err := NewRoleService(users).ResolveRole(ctx, "ghost@x.com")
		require.NoError(t, err)
		assert.Equal(t, model.RoleStandard, role)
	})

	t.Run("store failure propagates", func(t *testing.T) {
		users := new(repository.MockUserRepository)
		storeErr := errors.Join(model.ErrUpstreamFailure, errors.New("connection reset"))
		users.On("FindByEmail", mock.Anything, "a@x.com").Return(nil, storeErr)

		_, err := NewRoleService(users).ResolveRole(ctx, "a@x.com")
		require.ErrorIs(t, err, model.ErrUpstreamFailure)
	})
}
