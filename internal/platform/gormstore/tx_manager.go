package gormstore

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/phrazzld/planet-api/internal/store"
	"gorm.io/gorm"
)

// TxManager implements store.TxManager with gorm transactions.
type TxManager struct {
	db          *gorm.DB
	users       *UserStore
	groups      *GroupStore
	memberships *MembershipStore
}

var _ store.TxManager = (*TxManager)(nil)

// NewTxManager creates a TxManager whose stores log through logger.
func NewTxManager(db *gorm.DB, logger *slog.Logger) *TxManager {
	return &TxManager{
		db:          db,
		users:       NewUserStore(db, logger),
		groups:      NewGroupStore(db, logger),
		memberships: NewMembershipStore(db, logger),
	}
}

// RunInTx implements store.TxManager.RunInTx. gorm rolls back when fn
// returns an error or panics.
func (m *TxManager) RunInTx(ctx context.Context, fn store.RepoFn) error {
	var fnErr error
	err := m.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		fnErr = fn(ctx, store.Repositories{
			Users:       m.users.WithTx(tx),
			Groups:      m.groups.WithTx(tx),
			Memberships: m.memberships.WithTx(tx),
		})
		return fnErr
	})
	if err != nil && fnErr == nil {
		return fmt.Errorf("%w: %w", store.ErrTransactionFailed, err)
	}
	return err
}
