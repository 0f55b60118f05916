package postgres

import (
	"context"
	"database/sql"
	"log/slog"

	"github.com/phrazzld/planet-api/internal/store"
)

// TxManager implements store.TxManager on a *sql.DB.
type TxManager struct {
	db          *sql.DB
	users       *PostgresUserStore
	groups      *PostgresGroupStore
	memberships *PostgresMembershipStore
}

// Ensure TxManager implements store.TxManager interface
var _ store.TxManager = (*TxManager)(nil)

// NewTxManager creates a TxManager whose stores log through logger.
func NewTxManager(db *sql.DB, logger *slog.Logger) *TxManager {
	return &TxManager{
		db:          db,
		users:       NewPostgresUserStore(db, logger),
		groups:      NewPostgresGroupStore(db, logger),
		memberships: NewPostgresMembershipStore(db, logger),
	}
}

// RunInTx implements store.TxManager.RunInTx
func (m *TxManager) RunInTx(ctx context.Context, fn store.RepoFn) error {
	return store.RunInTransaction(ctx, m.db, func(ctx context.Context, tx *sql.Tx) error {
		return fn(ctx, m.Repositories(tx))
	})
}

// Repositories returns the stores bound to tx.
func (m *TxManager) Repositories(tx *sql.Tx) store.Repositories {
	return store.Repositories{
		Users:       m.users.WithTx(tx),
		Groups:      m.groups.WithTx(tx),
		Memberships: m.memberships.WithTx(tx),
	}
}
