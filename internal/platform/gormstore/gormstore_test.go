package gormstore_test

import (
	"context"
	"testing"

	"github.com/phrazzld/planet-api/internal/domain"
	"github.com/phrazzld/planet-api/internal/platform/gormstore"
	"github.com/phrazzld/planet-api/internal/platform/migrations"
	"github.com/phrazzld/planet-api/internal/testdb"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

// openTestDB returns a migrated SQLite database private to the test.
func openTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	ctx := context.Background()

	db, err := gormstore.Open(ctx, testdb.SQLiteURL(t), gormstore.PoolConfig{}, nil)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })

	require.NoError(t, migrations.Up(ctx, sqlDB, migrations.DialectSQLite))
	return db
}

func seedUser(t *testing.T, db *gorm.DB, userID string) {
	t.Helper()
	user, err := domain.NewUser(userID, "First", "Last", nil)
	require.NoError(t, err)
	require.NoError(t, gormstore.NewUserStore(db, nil).Create(context.Background(), user))
}

func seedGroup(t *testing.T, db *gorm.DB, name string) {
	t.Helper()
	group, err := domain.NewGroup(name)
	require.NoError(t, err)
	require.NoError(t, gormstore.NewGroupStore(db, nil).Create(context.Background(), group))
}
