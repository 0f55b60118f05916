package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/planet-api/internal/domain"
	"github.com/phrazzld/planet-api/internal/platform/logger"
	"github.com/phrazzld/planet-api/internal/store"
)

// UserService provides user-related operations.
type UserService interface {
	// ListUsers returns every user ordered by userid.
	ListUsers(ctx context.Context) ([]*domain.User, error)

	// GetUser retrieves a user and its groups.
	GetUser(ctx context.Context, userID string) (*domain.User, error)

	// CreateUser saves a new user and sets its groups to exactly user.Groups.
	// Unknown group names are ignored.
	CreateUser(ctx context.Context, user *domain.User) error

	// UpdateUser replaces the names and the full group set of an existing user.
	UpdateUser(ctx context.Context, user *domain.User) error

	// DeleteUser removes a user and its memberships.
	DeleteUser(ctx context.Context, userID string) error
}

// UserServiceImpl implements the UserService interface
type UserServiceImpl struct {
	txManager store.TxManager
	logger    *slog.Logger
}

// NewUserService creates a new UserService
func NewUserService(txManager store.TxManager, logger *slog.Logger) UserService {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserServiceImpl{
		txManager: txManager,
		logger:    logger.With("component", "user_service"),
	}
}

// ListUsers returns every user ordered by userid.
func (s *UserServiceImpl) ListUsers(ctx context.Context) ([]*domain.User, error) {
	var users []*domain.User
	err := s.txManager.RunInTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		var err error
		users, err = repos.Users.List(ctx)
		return err
	})
	if err != nil {
		s.log(ctx).Error("failed to list users", "error", err)
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// GetUser retrieves a user and its groups.
func (s *UserServiceImpl) GetUser(ctx context.Context, userID string) (*domain.User, error) {
	var user *domain.User
	err := s.txManager.RunInTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		var err error
		user, err = repos.Users.Get(ctx, userID)
		return err
	})
	if err != nil {
		s.logFailure(ctx, "failed to retrieve user", err, "userid", userID)
		return nil, fmt.Errorf("failed to retrieve user: %w", err)
	}

	s.log(ctx).Debug("retrieved user successfully",
		"userid", userID,
		"groups", len(user.Groups))
	return user, nil
}

// CreateUser saves a new user and sets its groups.
// The user row and its memberships are written in one transaction.
func (s *UserServiceImpl) CreateUser(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	err := s.txManager.RunInTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		if err := repos.Users.Create(ctx, user); err != nil {
			return err
		}
		return repos.Memberships.ReplaceUserGroups(ctx, user.UserID, user.Groups)
	})
	if err != nil {
		if store.IsDuplicateError(err) {
			s.log(ctx).Debug("attempted to create user with existing userid",
				"userid", user.UserID)
		} else {
			s.log(ctx).Error("failed to create user",
				"error", err,
				"userid", user.UserID)
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	s.log(ctx).Info("user created",
		"userid", user.UserID,
		"groups", len(user.Groups))
	return nil
}

// UpdateUser replaces the names and the full group set of an existing user.
func (s *UserServiceImpl) UpdateUser(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return err
	}

	err := s.txManager.RunInTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		if err := repos.Users.Update(ctx, user); err != nil {
			return err
		}
		return repos.Memberships.ReplaceUserGroups(ctx, user.UserID, user.Groups)
	})
	if err != nil {
		s.logFailure(ctx, "failed to update user", err, "userid", user.UserID)
		return fmt.Errorf("failed to update user: %w", err)
	}

	s.log(ctx).Info("user updated", "userid", user.UserID)
	return nil
}

// DeleteUser removes a user and its memberships.
func (s *UserServiceImpl) DeleteUser(ctx context.Context, userID string) error {
	err := s.txManager.RunInTx(ctx, func(ctx context.Context, repos store.Repositories) error {
		return repos.Users.Delete(ctx, userID)
	})
	if err != nil {
		s.logFailure(ctx, "failed to delete user", err, "userid", userID)
		return fmt.Errorf("failed to delete user: %w", err)
	}

	s.log(ctx).Info("user deleted", "userid", userID)
	return nil
}

func (s *UserServiceImpl) log(ctx context.Context) *slog.Logger {
	return logger.FromContextOrDefault(ctx, s.logger)
}

// logFailure logs not-found and duplicate errors at debug level and
// everything else as an error.
func (s *UserServiceImpl) logFailure(ctx context.Context, msg string, err error, args ...any) {
	logFailure(s.log(ctx), msg, err, args...)
}

func logFailure(log *slog.Logger, msg string, err error, args ...any) {
	if store.IsNotFoundError(err) || store.IsDuplicateError(err) {
		log.Debug(msg, append(args, "error", err)...)
		return
	}
	log.Error(msg, append(args, "error", err)...)
}
