package mocks

import (
	"context"
	"fmt"

	"github.com/phrazzld/planet-api/internal/domain"
	"github.com/phrazzld/planet-api/internal/service"
	"github.com/stretchr/testify/mock"
)

// MockUserService is a mock of service.UserService
type MockUserService struct {
	mock.Mock
}

var _ service.UserService = (*MockUserService)(nil)

// ListUsers is a mock implementation of service.UserService.ListUsers
func (m *MockUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	args := m.Called(ctx)
	if users, ok := args.Get(0).([]*domain.User); ok {
		return users, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetUser is a mock implementation of service.UserService.GetUser
func (m *MockUserService) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	args := m.Called(ctx, userID)
	if user, ok := args.Get(0).(*domain.User); ok {
		return user, args.Error(1)
	}
	return nil, args.Error(1)
}

// CreateUser is a mock implementation of service.UserService.CreateUser
func (m *MockUserService) CreateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// UpdateUser is a mock implementation of service.UserService.UpdateUser
func (m *MockUserService) UpdateUser(ctx context.Context, user *domain.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

// DeleteUser is a mock implementation of service.UserService.DeleteUser
func (m *MockUserService) DeleteUser(ctx context.Context, userID string) error {
	args := m.Called(ctx, userID)
	return args.Error(0)
}

// MockGroupService is a mock of service.GroupService
type MockGroupService struct {
	mock.Mock

	// ReplacedMembers holds the userids of the last successful ReplaceMembers.
	ReplacedMembers []string
}

var _ service.GroupService = (*MockGroupService)(nil)

// ListGroups is a mock implementation of service.GroupService.ListGroups
func (m *MockGroupService) ListGroups(ctx context.Context) ([]string, error) {
	args := m.Called(ctx)
	if names, ok := args.Get(0).([]string); ok {
		return names, args.Error(1)
	}
	return nil, args.Error(1)
}

// GetMembers is a mock implementation of service.GroupService.GetMembers
func (m *MockGroupService) GetMembers(ctx context.Context, name string) ([]string, error) {
	args := m.Called(ctx, name)
	if members, ok := args.Get(0).([]string); ok {
		return members, args.Error(1)
	}
	return nil, args.Error(1)
}

// CreateGroup is a mock implementation of service.GroupService.CreateGroup
func (m *MockGroupService) CreateGroup(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}

// ReplaceMembers is a mock implementation of service.GroupService.ReplaceMembers.
// The expectation is matched on (ctx, name). A non-nil error is returned
// before members is called, as a missing group would be. Otherwise the
// resolved userids are kept in ReplacedMembers.
func (m *MockGroupService) ReplaceMembers(ctx context.Context, name string, members service.MemberList) error {
	args := m.Called(ctx, name)
	if err := args.Error(0); err != nil {
		return err
	}
	userIDs, err := members()
	if err != nil {
		return fmt.Errorf("%w: %w", service.ErrInvalidMembers, err)
	}
	m.ReplacedMembers = userIDs
	return nil
}

// DeleteGroup is a mock implementation of service.GroupService.DeleteGroup
func (m *MockGroupService) DeleteGroup(ctx context.Context, name string) error {
	args := m.Called(ctx, name)
	return args.Error(0)
}
