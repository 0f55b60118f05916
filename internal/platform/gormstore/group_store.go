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

// GroupStore implements store.GroupStore with gorm.
type GroupStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewGroupStore creates a gorm-backed GroupStore.
func NewGroupStore(db *gorm.DB, logger *slog.Logger) *GroupStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &GroupStore{db: db, logger: logger.With(slog.String("component", "group_store"))}
}

var _ store.GroupStore = (*GroupStore)(nil)

// WithTx returns a store bound to tx.
func (s *GroupStore) WithTx(tx *gorm.DB) *GroupStore {
	return &GroupStore{db: tx, logger: s.logger}
}

// Create implements store.GroupStore.Create
func (s *GroupStore) Create(ctx context.Context, group *domain.Group) error {
	if err := group.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	if err := s.db.WithContext(ctx).Create(&GroupModel{Name: group.Name}).Error; err != nil {
		return mapError(err, store.ErrGroupNotFound, store.ErrGroupExists)
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("group created",
		slog.String("group_name", group.Name))
	return nil
}

// Get implements store.GroupStore.Get
func (s *GroupStore) Get(ctx context.Context, name string) (*domain.Group, error) {
	var model GroupModel
	err := s.db.WithContext(ctx).Where("group_name = ?", name).First(&model).Error
	if err != nil {
		return nil, mapError(err, store.ErrGroupNotFound, store.ErrGroupExists)
	}

	members := make([]string, 0)
	err = s.db.WithContext(ctx).
		Table("membership").
		Joins("JOIN users ON users.id = membership.user_id").
		Where("membership.group_id = ?", model.ID).
		Order("users.userid").
		Pluck("users.userid", &members).Error
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}

	return &domain.Group{Name: model.Name, Members: members}, nil
}

// Exists implements store.GroupStore.Exists
func (s *GroupStore) Exists(ctx context.Context, name string) (bool, error) {
	var count int64
	err := s.db.WithContext(ctx).Model(&GroupModel{}).Where("group_name = ?", name).Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("failed to check group: %w", err)
	}
	return count > 0, nil
}

// ListNames implements store.GroupStore.ListNames
func (s *GroupStore) ListNames(ctx context.Context) ([]string, error) {
	names := make([]string, 0)
	err := s.db.WithContext(ctx).Model(&GroupModel{}).Order("group_name").Pluck("group_name", &names).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return names, nil
}

// Delete implements store.GroupStore.Delete
func (s *GroupStore) Delete(ctx context.Context, name string) error {
	result := s.db.WithContext(ctx).Where("group_name = ?", name).Delete(&GroupModel{})
	if result.Error != nil {
		return fmt.Errorf("failed to delete group: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return store.ErrGroupNotFound
	}

	logger.FromContextOrDefault(ctx, s.logger).Debug("group deleted",
		slog.String("group_name", name))
	return nil
}
