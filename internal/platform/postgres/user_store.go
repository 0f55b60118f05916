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

// PostgresUserStore implements the store.UserStore interface
// using a PostgreSQL database as the storage backend.
type PostgresUserStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewPostgresUserStore creates a new PostgreSQL implementation of the UserStore interface.
// It accepts a database connection or transaction that should be managed by the caller.
func NewPostgresUserStore(db store.DBTX, logger *slog.Logger) *PostgresUserStore {
	if logger == nil {
		logger = slog.Default()
	}
	return &PostgresUserStore{
		db:     db,
		logger: logger.With(slog.String("component", "user_store")),
	}
}

// Ensure PostgresUserStore implements store.UserStore interface
var _ store.UserStore = (*PostgresUserStore)(nil)

// WithTx returns a new store instance that uses the provided transaction.
func (s *PostgresUserStore) WithTx(tx *sql.Tx) *PostgresUserStore {
	return &PostgresUserStore{db: tx, logger: s.logger}
}

// Create implements store.UserStore.Create
func (s *PostgresUserStore) Create(ctx context.Context, user *domain.User) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := user.Validate(); err != nil {
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	}

	query := `
		INSERT INTO users (first_name, last_name, userid)
		VALUES ($1, $2, $3)
	`
	if _, err := s.db.ExecContext(ctx, query, user.FirstName, user.LastName, user.UserID); err != nil {
		if IsUniqueViolation(err) {
			log.Debug("userid already taken", slog.String("userid", user.UserID))
		}
		return MapUniqueViolation(err, store.ErrUserExists)
	}

	log.Debug("user created", slog.String("userid", user.UserID))
	return nil
}

// Get implements store.UserStore.Get
func (s *PostgresUserStore) Get(ctx context.Context, userID string) (*domain.User, error) {
	query := `
		SELECT userid, first_name, last_name
		FROM users
		WHERE userid = $1
	`
	var user domain.User
	err := s.db.QueryRowContext(ctx, query, userID).Scan(&user.UserID, &user.FirstName, &user.LastName)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", MapError(err))
	}

	groupsQuery := `
		SELECT g.group_name
		FROM membership m
		JOIN users u ON u.id = m.user_id
		JOIN groups g ON g.id = m.group_id
		WHERE u.userid = $1
		ORDER BY g.group_name
	`
	groups, err := queryStrings(ctx, s.db, groupsQuery, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user groups: %w", err)
	}
	user.Groups = groups

	return &user, nil
}

// List implements store.UserStore.List
func (s *PostgresUserStore) List(ctx context.Context) ([]*domain.User, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT userid, first_name, last_name
		FROM users
		ORDER BY userid
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", MapError(err))
	}
	defer func() { _ = rows.Close() }()

	users := make([]*domain.User, 0)
	byID := make(map[string]*domain.User)
	for rows.Next() {
		user := &domain.User{Groups: []string{}}
		if err := rows.Scan(&user.UserID, &user.FirstName, &user.LastName); err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		users = append(users, user)
		byID[user.UserID] = user
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate users: %w", err)
	}

	memberRows, err := s.db.QueryContext(ctx, `
		SELECT u.userid, g.group_name
		FROM membership m
		JOIN users u ON u.id = m.user_id
		JOIN groups g ON g.id = m.group_id
		ORDER BY u.userid, g.group_name
	`)
	if err != nil {
		return nil, fmt.Errorf("failed to list memberships: %w", MapError(err))
	}
	defer func() { _ = memberRows.Close() }()

	for memberRows.Next() {
		var userID, groupName string
		if err := memberRows.Scan(&userID, &groupName); err != nil {
			return nil, fmt.Errorf("failed to scan membership: %w", err)
		}
		if user, ok := byID[userID]; ok {
			user.Groups = append(user.Groups, groupName)
		}
	}
	if err := memberRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate memberships: %w", err)
	}

	return users, nil
}

// Update implements store.UserStore.Update
func (s *PostgresUserStore) Update(ctx context.Context, user *domain.User) error {
	query := `
		UPDATE users
		SET first_name = $1, last_name = $2
		WHERE userid = $3
	`
	result, err := s.db.ExecContext(ctx, query, user.FirstName, user.LastName, user.UserID)
	if err != nil {
		return store.NewStoreError("user", "update", "failed to update user", MapError(err))
	}
	return CheckRowsAffected(result, store.ErrUserNotFound)
}

// Delete implements store.UserStore.Delete
func (s *PostgresUserStore) Delete(ctx context.Context, userID string) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM users WHERE userid = $1`, userID)
	if err != nil {
		return store.NewStoreError("user", "delete", "failed to delete user", MapError(err))
	}
	if err := CheckRowsAffected(result, store.ErrUserNotFound); err != nil {
		return err
	}

	log.Debug("user deleted", slog.String("userid", userID))
	return nil
}

// queryStrings runs a single-column query and collects the values.
// The result is never nil.
func queryStrings(ctx context.Context, db store.DBTX, query string, args ...any) ([]string, error) {
	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, MapError(err)
	}
	defer func() { _ = rows.Close() }()

	values := make([]string, 0)
	for rows.Next() {
		var v string
		if err := rows.Scan(&v); err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return values, rows.Err()
}
