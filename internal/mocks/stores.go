package mocks

import (
	"context"

	"github.com/phrazzld/planet-api/internal/domain"
	"github.com/phrazzld/planet-api/internal/store"
	"github.com/stretchr/testify/mock"
)

// MockUserStore is a mock of store.UserStore
type MockUserStore struct {
	mock.Mock
}

var _ store.UserStore = (*MockUserStore)(nil)

// Create is a mock implementation of store.UserStore.Create
func (m *MockUserStore) Create(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// Get is a mock implementation of store.UserStore.Get
func (m *MockUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// List is a mock implementation of store.UserStore.List
func (m *MockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]*domain.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

// Update is a mock implementation of store.UserStore.Update
func (m *MockUserStore) Update(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// Delete is a mock implementation of store.UserStore.Delete
func (m *MockUserStore) Delete(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockGroupStore is a mock of store.GroupStore
type MockGroupStore struct {
	mock.Mock
}

var _ store.GroupStore = (*MockGroupStore)(nil)

// Create is a mock implementation of store.GroupStore.Create
func (m *MockGroupStore) Create(ctx context.Context, group *domain.Group) error {
	args := m.Called(ctx, group)
	return args.Error(0)
}

// Get is a mock implementation of store.GroupStore.Get
func (m *MockGroupStore) Get(ctx context.Context, name string) (*domain.Group, error) {
	args := m.Called(ctx, name)
	if group, ok := args.Get(0).(*domain.Group); ok {
		return group, args.Error(1)
	}
	return nil, args.Error(1)
}

// Exists is a mock implementation of store.GroupStore.Exists
func (m *MockGroupStore) Exists(ctx context.Context, name string) (bool, error) {
	args := m.Called(ctx, name)
	return args.Bool(0), args.Error(1)
}

// ListNames is a mock implementation of store.GroupStore.ListNames
func (m *MockGroupStore) ListNames(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if names, ok := args.Get(0).([]string); ok {
		return names, args.Error(1)
	}
	return nil, args.Error(1)
}

// Delete is a mock implementation of store.GroupStore.Delete
func (m *MockGroupStore) Delete(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// MockMembershipStore is a mock of store.MembershipStore
type MockMembershipStore struct {
	mock.Mock
}

var _ store.MembershipStore = (*MockMembershipStore)(nil)

// ReplaceUserGroups is a mock implementation of store.MembershipStore.ReplaceUserGroups
func (m *MockMembershipStore) ReplaceUserGroups(ctx context.Context, userID string, groupNames []string) error {
	args := m.Called(ctx, userID, groupNames)
	return args.Error(0)
}

// ReplaceGroupMembers is a mock implementation of store.MembershipStore.ReplaceGroupMembers
func (m *MockMembershipStore) ReplaceGroupMembers(ctx context.Context, groupName string, userIDs []string) error {
	args := m.Called(ctx, groupName, userIDs)
	return args.Error(0)
}

// TxManager runs fn directly against its mock stores. It records how many
// transactions were opened and can be told to fail before fn runs.
type TxManager struct {
	Users       *MockUserStore
	Groups      *MockGroupStore
	Memberships *MockMembershipStore

	// BeginErr, when set, is returned without calling fn.
	BeginErr error
	Calls    int
}

var _ store.TxManager = (*TxManager)(nil)

// NewTxManager creates a TxManager with fresh mock stores.
func NewTxManager() *TxManager {
	return &TxManager{
		Users:       &MockUserStore{},
		Groups:      &MockGroupStore{},
		Memberships: &MockMembershipStore{},
	}
}

// RunInTx implements store.TxManager.RunInTx
func (m *TxManager) RunInTx(ctx context.Context, fn store.RepoFn) error {
	m.Calls++
	if m.BeginErr != nil {
		return m.BeginErr
	}
	return fn(ctx, store.Repositories{
		Users:       m.Users,
		Groups:      m.Groups,
		Memberships: m.Memberships,
	})
}

// AssertExpectations asserts expectations on every mock store.
func (m *TxManager) AssertExpectations(t mock.TestingT) bool {
	return m.Users.AssertExpectations(t) &&
		m.Groups.AssertExpectations(t) &&
		m.Memberships.AssertExpectations(t)
}
