package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/phrazzld/planet-api/internal/domain"
	"github.com/phrazzld/planet-api/internal/platform/logger"
	"github.com/phrazzld/planet-api/internal/store"
)

// PostgresGroupStore implements the store.GroupStore interface
// using a PostgreSQL database as the storage backend.
type PostgresGroupStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresGroupStore creates a new PostgreSQL implementation of the GroupStore interface.
func NewPostgresGroupStore(db store.DBTX, logger *slog.Logger) *PostgresGroupStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresGroupStore{
		db:     db,
		logger: logger.With(slog.String("component", "group_store")),
	}
}

// Ensure PostgresGroupStore implements store.GroupStore interface
var _ store.GroupStore = (*PostgresGroupStore)(nil)

// WithTx returns a new store instance that uses the provided transaction.
func (s *PostgresGroupStore) WithTx(tx *sql.Tx) *PostgresGroupStore {
	return &PostgresGroupStore{db: tx, logger: s.logger}
}

// Create implements store.GroupStore.Create
func (s *PostgresGroupStore) Create(ctx context.Context, group *domain.Group) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := group.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	_, err := s.db.ExecContext(ctx, `INSERT INTO groups (group_name) VALUES ($1)`, group.Name)
	if err != nil {
		return MapUniqueViolation(err, store.ErrGroupExists)
	}

	log.Debug("group created", slog.String("group_name", group.Name))
	return nil
}

// Get implements store.GroupStore.Get
func (s *PostgresGroupStore) Get(ctx context.Context, name string) (*domain.Group, error) {
	var group domain.Group
	err := s.db.QueryRowContext(ctx,
		`SELECT group_name FROM groups WHERE group_name = $1`, name,
	).Scan(&group.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrGroupNotFound
		}
		return nil, fmt.Errorf("failed to get group: %w", MapError(err))
	}

	membersQuery := `
		SELECT u.userid
		FROM membership m
		JOIN users u ON u.id = m.user_id
		JOIN groups g ON g.id = m.group_id
		WHERE g.group_name = $1
		ORDER BY u.userid
	`
	members, err := queryStrings(ctx, s.db, membersQuery, name)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %w", err)
	}
	group.Members = members

	return &group, nil
}

// Exists implements store.GroupStore.Exists
func (s *PostgresGroupStore) Exists(ctx context.Context, name string) (bool, error) {
	var exists bool
	err := s.db.QueryRowContext(ctx,
		`SELECT EXISTS (SELECT 1 FROM groups WHERE group_name = $1)`, name,
	).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("failed to check group: %w", MapError(err))
	}
	return exists, nil
}

// ListNames implements store.GroupStore.ListNames
func (s *PostgresGroupStore) ListNames(ctx context.Context) ([]string, error) {
	names, err := queryStrings(ctx, s.db, `SELECT group_name FROM groups ORDER BY group_name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list groups: %w", err)
	}
	return names, nil
}

// Delete implements store.GroupStore.Delete
func (s *PostgresGroupStore) Delete(ctx context.Context, name string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM groups WHERE group_name = $1`, name)
	if err != nil {
		return store.NewStoreError("group", "delete", "failed to delete group", MapError(err))
	}
	if err := CheckRowsAffected(result, store.ErrGroupNotFound); err != nil {
		return err
	}

	log.Debug("group deleted", slog.String("group_name", name))
	return nil
}
