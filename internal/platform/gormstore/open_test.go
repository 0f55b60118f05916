package gormstore_test

import (
	"context"
	"testing"

	"github.com/phrazzld/planet-api/internal/platform/gormstore"
	"github.com/phrazzld/planet-api/internal/platform/migrations"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDialectFor(t *testing.T) {
	t.Parallel()

	assert.Equal(t, migrations.DialectPostgres, gormstore.DialectFor("postgres://u:p@localhost/db"))
	assert.Equal(t, migrations.DialectPostgres, gormstore.DialectFor("postgresql://localhost/db"))
	assert.Equal(t, migrations.DialectSQLite, gormstore.DialectFor("sqlite:planet.db"))
	assert.Equal(t, migrations.DialectSQLite, gormstore.DialectFor("/var/lib/planet.db"))
}

func TestSQLiteDSN(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want string
	}{
		{in: "sqlite:///tmp/planet.db", want: "file:/tmp/planet.db?_foreign_keys=on&_busy_timeout=5000"},
		{in: "sqlite:planet.db", want: "file:planet.db?_foreign_keys=on&_busy_timeout=5000"},
		{in: "planet.db", want: "file:planet.db?_foreign_keys=on&_busy_timeout=5000"},
		{in: "file:planet.db?cache=shared", want: "file:planet.db?cache=shared&_foreign_keys=on&_busy_timeout=5000"},
		{in: "file:planet.db?_foreign_keys=off", want: "file:planet.db?_foreign_keys=off&_busy_timeout=5000"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, gormstore.SQLiteDSN(tt.in))
		})
	}
}

func TestOpen_RejectsUnsupportedURL(t *testing.T) {
	t.Parallel()

	for _, url := range []string{"/var/lib/planet.db", "host=db user=planet", "mysql://localhost/planet"} {
		db, err := gormstore.Open(context.Background(), url, gormstore.PoolConfig{}, nil)
		assert.ErrorIs(t, err, gormstore.ErrUnsupportedURL, url)
		assert.Nil(t, db)
	}
}

func TestOpen_SQLiteLimitsConnections(t *testing.T) {
	t.Parallel()

	db := openTestDB(t)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	require.NoError(t, sqlDB.PingContext(context.Background()))
}
