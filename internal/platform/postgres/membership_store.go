package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/planet-api/internal/platform/logger"
	"github.com/phrazzld/planet-api/internal/store"
)

// PostgresMembershipStore implements the store.MembershipStore interface.
// It must run inside a transaction for replacements to be atomic.
type PostgresMembershipStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresMembershipStore creates a new PostgreSQL implementation of the MembershipStore interface.
func NewPostgresMembershipStore(db store.DBTX, logger *slog.Logger) *PostgresMembershipStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresMembershipStore{
		db:     db,
		logger: logger.With(slog.String("component", "membership_store")),
	}
}

// Ensure PostgresMembershipStore implements store.MembershipStore interface
var _ store.MembershipStore = (*PostgresMembershipStore)(nil)

// WithTx returns a new store instance that uses the provided transaction.
func (s *PostgresMembershipStore) WithTx(tx *sql.Tx) *PostgresMembershipStore {
	return &PostgresMembershipStore{db: tx, logger: s.logger}
}

// ReplaceUserGroups implements store.MembershipStore.ReplaceUserGroups
func (s *PostgresMembershipStore) ReplaceUserGroups(
	ctx context.Context,
	userID string,
	groupNames []string,
) error {
	ownerID, err := s.lookupID(ctx, `SELECT id FROM users WHERE userid = $1`, userID, store.ErrUserNotFound)
	if err != nil {
		return err
	}

	return s.replace(ctx, ownerID, groupNames,
		`DELETE FROM membership WHERE user_id = $1`,
		`
		INSERT INTO membership (user_id, group_id)
		SELECT $1, g.id FROM groups g WHERE g.group_name = $2
		ON CONFLICT DO NOTHING
		`,
		store.ErrUserNotFound,
		slog.String("userid", userID),
	)
}

// ReplaceGroupMembers implements store.MembershipStore.ReplaceGroupMembers
func (s *PostgresMembershipStore) ReplaceGroupMembers(
	ctx context.Context,
	groupName string,
	userIDs []string,
) error {
	ownerID, err := s.lookupID(ctx, `SELECT id FROM groups WHERE group_name = $1`, groupName, store.ErrGroupNotFound)
	if err != nil {
		return err
	}

	return s.replace(ctx, ownerID, userIDs,
		`DELETE FROM membership WHERE group_id = $1`,
		`
		INSERT INTO membership (user_id, group_id)
		SELECT u.id, $1 FROM users u WHERE u.userid = $2
		ON CONFLICT DO NOTHING
		`,
		store.ErrGroupNotFound,
		slog.String("group_name", groupName),
	)
}

func (s *PostgresMembershipStore) lookupID(
	ctx context.Context,
	query string,
	key string,
	notFound error,
) (int64, error) {
	var id int64
	if err := s.db.QueryRowContext(ctx, query, key).Scan(&id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return 0, notFound
		}
		return 0, fmt.Errorf("failed to resolve %q: %w", key, MapError(err))
	}
	return id, nil
}

// replace deletes every membership row of ownerID, then inserts one row per
// name. Names that do not resolve insert nothing. A foreign key violation
// on insert means the owner row was deleted underneath us and is reported
// as ownerNotFound.
func (s *PostgresMembershipStore) replace(
	ctx context.Context,
	ownerID int64,
	names []string,
	deleteQuery string,
	insertQuery string,
	ownerNotFound error,
	owner slog.Attr,
) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if _, err := s.db.ExecContext(ctx, deleteQuery, ownerID); err != nil {
		return store.NewStoreError("membership", "replace", "failed to clear memberships", MapError(err))
	}

	var inserted int64
	for _, name := range names {
		result, err := s.db.ExecContext(ctx, insertQuery, ownerID, name)
		if IsForeignKeyViolation(err) {
			return fmt.Errorf("%w: %w", ownerNotFound, err)
		}
		if err != nil {
			return store.NewStoreError("membership", "replace", fmt.Sprintf("failed to insert membership for %q", name), MapError(err))
		}
		if n, err := result.RowsAffected(); err == nil {
			inserted += n
		}
	}

	log.Debug("memberships replaced",
		owner,
		slog.Int("requested", len(names)),
		slog.Int64("inserted", inserted))
	return nil
}
