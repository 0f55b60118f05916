package service_test

import (
	"context"
	"errors"
	"testing"

	"github.com/phrazzld/planet-api/internal/domain"
	"github.com/phrazzld/planet-api/internal/mocks"
	"github.com/phrazzld/planet-api/internal/service"
	"github.com/phrazzld/planet-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUserService_CreateUser(t *testing.T) {
	t.Parallel()

	t.Run("creates user and sets groups in one transaction", func(t *testing.T) {
		t.Parallel()
		txm := mocks.NewTxManager()
		user := &domain.User{UserID: "jsmith", FirstName: "Joe", LastName: "Smith", Groups: []string{"admins"}}

		txm.Users.On("Create", mock.Anything, user).Return(nil).Once()
		txm.Memberships.On("ReplaceUserGroups", mock.Anything, "jsmith", []string{"admins"}).Return(nil).Once()

		err := service.NewUserService(txm, nil).CreateUser(context.Background(), user)
		require.NoError(t, err)
		assert.Equal(t, 1, txm.Calls)
		txm.AssertExpectations(t)
	})

	t.Run("duplicate userid skips memberships", func(t *testing.T) {
		t.Parallel()
		txm := mocks.NewTxManager()
		user := &domain.User{UserID: "jsmith", Groups: []string{}}

		txm.Users.On("Create", mock.Anything, user).Return(store.ErrUserExists).Once()

		err := service.NewUserService(txm, nil).CreateUser(context.Background(), user)
		assert.ErrorIs(t, err, store.ErrUserExists)
		txm.Memberships.AssertNotCalled(t, "ReplaceUserGroups", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("invalid user never opens a transaction", func(t *testing.T) {
		t.Parallel()
		txm := mocks.NewTxManager()

		err := service.NewUserService(txm, nil).CreateUser(context.Background(), &domain.User{UserID: ""})
		assert.ErrorIs(t, err, domain.ErrValidation)
		assert.Zero(t, txm.Calls)
	})

	t.Run("membership failure is returned", func(t *testing.T) {
		t.Parallel()
		txm := mocks.NewTxManager()
		user := &domain.User{UserID: "jsmith", Groups: []string{"admins"}}
		boom := errors.New("insert failed")

		txm.Users.On("Create", mock.Anything, user).Return(nil).Once()
		txm.Memberships.On("ReplaceUserGroups", mock.Anything, "jsmith", []string{"admins"}).Return(boom).Once()

		err := service.NewUserService(txm, nil).CreateUser(context.Background(), user)
		assert.ErrorIs(t, err, boom)
	})
}

func TestUserService_GetUser(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()
		txm := mocks.NewTxManager()
		want := &domain.User{UserID: "jsmith", Groups: []string{"admins"}}
		txm.Users.On("Get", mock.Anything, "jsmith").Return(want, nil).Once()

		got, err := service.NewUserService(txm, nil).GetUser(context.Background(), "jsmith")
		require.NoError(t, err)
		assert.Same(t, want, got)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()
		txm := mocks.NewTxManager()
		txm.Users.On("Get", mock.Anything, "ghost").Return(nil, store.ErrUserNotFound).Once()

		_, err := service.NewUserService(txm, nil).GetUser(context.Background(), "ghost")
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		assert.True(t, store.IsNotFoundError(err))
	})

	t.Run("transaction failure", func(t *testing.T) {
		t.Parallel()
		txm := mocks.NewTxManager()
		txm.BeginErr = store.ErrTransactionFailed

		_, err := service.NewUserService(txm, nil).GetUser(context.Background(), "jsmith")
		assert.ErrorIs(t, err, store.ErrTransactionFailed)
	})
}

func TestUserService_ListUsers(t *testing.T) {
	t.Parallel()
	txm := mocks.NewTxManager()
	want := []*domain.User{{UserID: "a"}, {UserID: "b"}}
	txm.Users.On("List", mock.Anything).Return(want, nil).Once()

	got, err := service.NewUserService(txm, nil).ListUsers(context.Background())
	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestUserService_UpdateUser(t *testing.T) {
	t.Parallel()

	t.Run("replaces names and groups", func(t *testing.T) {
		t.Parallel()
		txm := mocks.NewTxManager()
		user := &domain.User{UserID: "jsmith", FirstName: "J", LastName: "S", Groups: []string{}}
		txm.Users.On("Update", mock.Anything, user).Return(nil).Once()
		txm.Memberships.On("ReplaceUserGroups", mock.Anything, "jsmith", []string{}).Return(nil).Once()

		require.NoError(t, service.NewUserService(txm, nil).UpdateUser(context.Background(), user))
		txm.AssertExpectations(t)
	})

	t.Run("missing user", func(t *testing.T) {
		t.Parallel()
		txm := mocks.NewTxManager()
		user := &domain.User{UserID: "ghost", Groups: []string{}}
		txm.Users.On("Update", mock.Anything, user).Return(store.ErrUserNotFound).Once()

		err := service.NewUserService(txm, nil).UpdateUser(context.Background(), user)
		assert.ErrorIs(t, err, store.ErrUserNotFound)
		txm.Memberships.AssertNotCalled(t, "ReplaceUserGroups", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestUserService_DeleteUser(t *testing.T) {
	t.Parallel()
	txm := mocks.NewTxManager()
	txm.Users.On("Delete", mock.Anything, "jsmith").Return(nil).Once()
	txm.Users.On("Delete", mock.Anything, "ghost").Return(store.ErrUserNotFound).Once()

	svc := service.NewUserService(txm, nil)
	require.NoError(t, svc.DeleteUser(context.Background(), "jsmith"))
	assert.ErrorIs(t, svc.DeleteUser(context.Background(), "ghost"), store.ErrUserNotFound)
	txm.AssertExpectations(t)
}
