package gormstore

import (
	"context"
	"fmt"
	"log/slog"
	"slices"

	"github.com/phrazzld/planet-api/internal/platform/logger"
	"github.com/phrazzld/planet-api/internal/store"
	"gorm.io/gorm"
)

// nameChunkSize bounds the bind variables of one IN list and of one join
// table insert. SQLite rejects statements over 32766 variables.
const nameChunkSize = 500

// MembershipStore implements store.MembershipStore through the many-to-many
// associations of UserModel and GroupModel. Replacements are only atomic
// when the store is bound to a transaction.
type MembershipStore struct {
	db     *gorm.DB
	logger *slog.Logger
}

// NewMembershipStore creates a gorm-backed MembershipStore.
func NewMembershipStore(db *gorm.DB, logger *slog.Logger) *MembershipStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &MembershipStore{db: db, logger: logger.With(slog.String("component", "membership_store"))}
}

var _ store.MembershipStore = (*MembershipStore)(nil)

// WithTx returns a store bound to tx.
func (s *MembershipStore) WithTx(tx *gorm.DB) *MembershipStore {
	return &MembershipStore{db: tx, logger: s.logger}
}

// ReplaceUserGroups implements store.MembershipStore.ReplaceUserGroups
func (s *MembershipStore) ReplaceUserGroups(ctx context.Context, userID string, groupNames []string) error {
	db := s.db.WithContext(ctx)

	var user UserModel
	if err := db.Where("userid = ?", userID).First(&user).Error; err != nil {
		return mapError(err, store.ErrUserNotFound, store.ErrUserExists)
	}

	// A fresh owner per call keeps Append from re-saving earlier chunks.
	// Omit skips upserting the group rows; only join rows are written.
	groupsOf := func() *gorm.Association {
		return db.Model(&UserModel{ID: user.ID}).Omit("Groups.*").Association("Groups")
	}
	if err := groupsOf().Clear(); err != nil {
		return fmt.Errorf("failed to clear user groups: %w", err)
	}

	inserted := 0
	for chunk := range slices.Chunk(groupNames, nameChunkSize) {
		var groups []GroupModel
		if err := db.Where("group_name IN ?", chunk).Find(&groups).Error; err != nil {
			return fmt.Errorf("failed to resolve groups: %w", err)
		}
		if len(groups) == 0 {
			continue
		}
		if err := groupsOf().Append(groups); err != nil {
			return fmt.Errorf("failed to insert memberships: %w", err)
		}
		inserted += len(groups)
	}

	s.logReplaced(ctx, slog.String("userid", userID), len(groupNames), inserted)
	return nil
}

// ReplaceGroupMembers implements store.MembershipStore.ReplaceGroupMembers
func (s *MembershipStore) ReplaceGroupMembers(ctx context.Context, groupName string, userIDs []string) error {
	db := s.db.WithContext(ctx)

	var group GroupModel
	if err := db.Where("group_name = ?", groupName).First(&group).Error; err != nil {
		return mapError(err, store.ErrGroupNotFound, store.ErrGroupExists)
	}

	usersOf := func() *gorm.Association {
		return db.Model(&GroupModel{ID: group.ID}).Omit("Users.*").Association("Users")
	}
	if err := usersOf().Clear(); err != nil {
		return fmt.Errorf("failed to clear group members: %w", err)
	}

	inserted := 0
	for chunk := range slices.Chunk(userIDs, nameChunkSize) {
		var users []UserModel
		if err := db.Where("userid IN ?", chunk).Find(&users).Error; err != nil {
			return fmt.Errorf("failed to resolve users: %w", err)
		}
		if len(users) == 0 {
			continue
		}
		if err := usersOf().Append(users); err != nil {
			return fmt.Errorf("failed to insert memberships: %w", err)
		}
		inserted += len(users)
	}

	s.logReplaced(ctx, slog.String("group_name", groupName), len(userIDs), inserted)
	return nil
}

func (s *MembershipStore) logReplaced(ctx context.Context, owner slog.Attr, requested, inserted int) {
	logger.FromContextOrDefault(ctx, s.logger).Debug("memberships replaced",
		owner,
		slog.Int("requested", requested),
		slog.Int("inserted", inserted))
}
