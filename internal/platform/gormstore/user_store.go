package gormstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/planet-api/internal/domain"
	"github.com/phrazzld/planet-api/internal/platform/logger"
	"github.com/phrazzld/planet-api/internal/store"
	"gorm.io/gorm"
)

// UserStore implements store.UserStore with gorm.
type UserStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewUserStore creates a gorm-backed UserStore.
func NewUserStore(db *gorm.DB, logger *slog.Logger) *UserStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &UserStore{db: db, logger: logger.With(slog.String("component", "user_store"))}
}

var _ store.UserStore = (*UserStore)(nil)

// WithTx returns a store bound to tx.
func (s *UserStore) WithTx(tx *gorm.DB) *UserStore {
	return &UserStore{db: tx, logger: s.logger}
}

// Create implements store.UserStore.Create
func (s *UserStore) Create(ctx context.Context, user *domain.User) error {
	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	model := UserModel{UserID: user.UserID, FirstName: user.FirstName, LastName: user.LastName}
	if err := s.db.WithContext(ctx).Create(&model).Error; err != nil {
		return mapError(err, store.ErrUserNotFound, store.ErrUserExists)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("user created",
		slog.String("userid", user.UserID))
	return nil
}

// Get implements store.UserStore.Get
func (s *UserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	var model UserModel
	err := s.db.WithContext(ctx).Where("userid = ?", userID).First(&model).Error
	if err != nil {
		return nil, mapError(err, store.ErrUserNotFound, store.ErrUserExists)
	}

	groups := make([]string, 0)
	err = s.db.WithContext(ctx).
		Table("membership").
		Joins("JOIN groups ON groups.id = membership.group_id").
		Where("membership.user_id = ?", model.ID).
		Order("groups.group_name").
		Pluck("groups.group_name", &groups).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get user groups: %w", err)
	}

	return toDomainUser(model, groups), nil
}

// List implements store.UserStore.List
func (s *UserStore) List(ctx context.Context) ([]*domain.User, error) {
	var models []UserModel
	if err := s.db.WithContext(ctx).Order("userid").Find(&models).Error; err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	type pair struct {
		UserID    int64
		GroupName string
	}
	var pairs []pair
	err := s.db.WithContext(ctx).
		Table("membership").
		Select("membership.user_id AS user_id, groups.group_name AS group_name").
		Joins("JOIN groups ON groups.id = membership.group_id").
		Order("groups.group_name").
		Scan(&pairs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", err)
	}

	groupsByUser := make(map[int64][]string)
	for _, p := range pairs {
		groupsByUser[p.UserID] = append(groupsByUser[p.UserID], p.GroupName)
	}

	users := make([]*domain.User, 0, len(models))
	for _, m := range models {
		users = append(users, toDomainUser(m, groupsByUser[m.ID]))
	}
	return users, nil
}

// Update implements store.UserStore.Update
func (s *UserStore) Update(ctx context.Context, user *domain.User) error {
	result := s.db.WithContext(ctx).
		Model(&UserModel{}).
		Where("userid = ?", user.UserID).
		Updates(map[string]any{"first_name": user.FirstName, "last_name": user.LastName})
	if result.Error != nil {
		return fmt.Errorf("failed to update user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrUserNotFound
	}
	return nil
}

// Delete implements store.UserStore.Delete
func (s *UserStore) Delete(ctx context.Context, userID string) error {
	result := s.db.WithContext(ctx).Where("userid = ?", userID).Delete(&UserModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete user: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrUserNotFound
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("user deleted",
		slog.String("userid", userID))
	return nil
}

func toDomainUser(m UserModel, groups []string) *domain.User {
	if groups == nil {
		groups = []string{}
	}
	return &domain.User{
		UserID:    m.UserID,
		FirstName: m.FirstName,
		LastName:  m.LastName,
		Groups:    groups,
	}
}
