package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/planet-api/internal/domain"
	"github.com/phrazzld/planet-api/internal/platform/logger"
	"github.com/phrazzld/planet-api/internal/store"
)

// GroupService provides group-related operations.
type GroupService interface {
	// ListGroups returns every group name, ordered.
	ListGroups(ctx context.Context) ([]string, error)

	// GetMembers returns the userids of a group's members, ordered.
	GetMembers(ctx context.Context, name string) ([]string, error)

	// CreateGroup creates an empty group.
	CreateGroup(ctx context.Context, name string) error

	// ReplaceMembers sets the group's members to exactly the userids
	// returned by members. members is only called once the group is known to
	// exist. Unknown userids are ignored.
	ReplaceMembers(ctx context.Context, name string, members MemberList) error

	// DeleteGroup removes a group and its memberships.
	DeleteGroup(ctx context.Context, name string) error
}

// MemberList yields the userids for a membership replacement.
type MemberList func() ([]string, error)

// Members returns a MemberList for a list that is already known.
func Members(userIDs ...string) MemberList {
	return func() ([]string, error) { return userIDs, nil }
}

// GroupServiceImpl implements the GroupService interface
type GroupServiceImpl struct {
	txManager store.TxManager
	logger    *slog.Logger
}

// NewGroupService creates a new GroupService
func NewGroupService(txManager store.TxManager, logger *slog.Logger) GroupService {
	if logger == nil {
		logger = slog.Default()
	}
	return &GroupServiceImpl{
		txManager: txManager,
		logger:    logger.With("component", "group_service"),
	}
}

// ListGroups returns every group name, ordered.
func (s *GroupServiceImpl) ListGroups(ctx context.Context) ([]string, error) {
	var names []string
	err := s.txManager.RunInTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		var err error
		names, err = repos.Groups.ListNames(ctx)
		return err
	})
	if err != nil {
		s.log(ctx).Error("failed to list groups", "error", err)
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return names, nil
}

// GetMembers returns the userids of a group's members, ordered.
func (s *GroupServiceImpl) GetMembers(ctx context.Context, name string) ([]string, error) {
	var group *domain.Group
	err := s.txManager.RunInTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		var err error
		group, err = repos.Groups.Get(ctx, name)
		return err
	})
	if err != nil {
		logFailure(s.log(ctx), "failed to retrieve group", err, "group_name", name)
		return nil, fmt.Errorf("failed to retrieve group: %w", err)
	}
	return group.Members, nil
}

// CreateGroup creates an empty group.
func (s *GroupServiceImpl) CreateGroup(ctx context.Context, name string) error {
	group, err := domain.NewGroup(name)
	if err != nil {
		return err
	}

	err = s.txManager.RunInTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		return repos.Groups.Create(ctx, group)
	})
	if err != nil {
		if store.IsDuplicateError(err) {
			s.log(ctx).Debug("attempted to create existing group", "group_name", name)
		} else {
			s.log(ctx).Error("failed to create group", "error", err, "group_name", name)
		}
		return fmt.Errorf("failed to create group: %w", err)
	}

	s.log(ctx).Info("group created", "group_name", name)
	return nil
}

// ReplaceMembers checks the group, resolves the member list and replaces
// the memberships in a single transaction.
func (s *GroupServiceImpl) ReplaceMembers(ctx context.Context, name string, members MemberList) error {
	var requested int
	err := s.txManager.RunInTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		exists, err := repos.Groups.Exists(ctx, name)
		if err != nil {
			return err
		}
		if !exists {
			return store.ErrGroupNotFound
		}

		userIDs, err := members()
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidMembers, err)
		}
		userIDs = domain.NormalizeMembers(userIDs)
		requested = len(userIDs)

		return repos.Memberships.ReplaceGroupMembers(ctx, name, userIDs)
	})
	if err != nil {
		if errors.Is(err, ErrInvalidMembers) {
			s.log(ctx).Debug("rejected group member list", "error", err, "group_name", name)
		} else {
			logFailure(s.log(ctx), "failed to replace group members", err, "group_name", name)
		}
		return fmt.Errorf("failed to replace group members: %w", err)
	}

	s.log(ctx).Info("group members replaced",
		"group_name", name,
		"requested", requested)
	return nil
}

// DeleteGroup removes a group and its memberships.
func (s *GroupServiceImpl) DeleteGroup(ctx context.Context, name string) error {
	err := s.txManager.RunInTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		return repos.Groups.Delete(ctx, name)
	})
	if err != nil {
		logFailure(s.log(ctx), "failed to delete group", err, "group_name", name)
		return fmt.Errorf("failed to delete group: %w", err)
	}

	s.log(ctx).Info("group deleted", "group_name", name)
	return nil
}

func (s *GroupServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}
