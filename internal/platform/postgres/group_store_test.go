package postgres_test

import (
	"context"
	"database/sql"
	"testing"

	"github.com/phrazzld/planet-api/internal/domain"
	"github.com/phrazzld/planet-api/internal/platform/postgres"
	"github.com/phrazzld/planet-api/internal/store"
	"github.com/phrazzld/planet-api/internal/testdb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresGroupStore_Lifecycle(t *testing.T) {
	db := testdb.OpenPostgres(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		groups := postgres.NewPostgresGroupStore(tx, nil)
		name := uniqueKey("admins")

		exists, err := groups.Exists(ctx, name)
		require.NoError(t, err)
		assert.False(t, exists)

		group, err := domain.NewGroup(name)
		require.NoError(t, err)
		require.NoError(t, groups.Create(ctx, group))
		assert.ErrorIs(t, groups.Create(ctx, group), store.ErrGroupExists)

		exists, err = groups.Exists(ctx, name)
		require.NoError(t, err)
		assert.True(t, exists)

		got, err := groups.Get(ctx, name)
		require.NoError(t, err)
		assert.Equal(t, name, got.Name)
		assert.NotNil(t, got.Members)
		assert.Empty(t, got.Members)

		names, err := groups.ListNames(ctx)
		require.NoError(t, err)
		assert.Contains(t, names, name)
		assert.IsNonDecreasing(t, names)

		require.NoError(t, groups.Delete(ctx, name))
		_, err = groups.Get(ctx, name)
		assert.ErrorIs(t, err, store.ErrGroupNotFound)
		assert.ErrorIs(t, groups.Delete(ctx, name), store.ErrGroupNotFound)
	})
}

func TestPostgresMembershipStore_Replace(t *testing.T) {
	db := testdb.OpenPostgres(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		memberships := postgres.NewPostgresMembershipStore(tx, nil)
		groups := postgres.NewPostgresGroupStore(tx, nil)
		users := postgres.NewPostgresUserStore(tx, nil)

		alice, bob := uniqueKey("alice"), uniqueKey("bob")
		admins, staff := uniqueKey("admins"), uniqueKey("users")
		mustCreateUser(t, tx, alice)
		mustCreateUser(t, tx, bob)
		mustCreateGroup(t, tx, admins)
		mustCreateGroup(t, tx, staff)

		// unknown names are skipped
		require.NoError(t, memberships.ReplaceGroupMembers(ctx, admins, []string{bob, alice, "nobody"}))
		got, err := groups.Get(ctx, admins)
		require.NoError(t, err)
		assert.ElementsMatch(t, []string{alice, bob}, got.Members)

		// full replacement, not a merge
		require.NoError(t, memberships.ReplaceGroupMembers(ctx, admins, []string{bob}))
		got, err = groups.Get(ctx, admins)
		require.NoError(t, err)
		assert.Equal(t, []string{bob}, got.Members)

		require.NoError(t, memberships.ReplaceUserGroups(ctx, bob, []string{staff, staff}))
		user, err := users.Get(ctx, bob)
		require.NoError(t, err)
		assert.Equal(t, []string{staff}, user.Groups)

		require.NoError(t, memberships.ReplaceUserGroups(ctx, bob, []string{}))
		user, err = users.Get(ctx, bob)
		require.NoError(t, err)
		assert.Empty(t, user.Groups)

		assert.ErrorIs(t, memberships.ReplaceUserGroups(ctx, uniqueKey("ghost"), nil), store.ErrUserNotFound)
		assert.ErrorIs(t, memberships.ReplaceGroupMembers(ctx, uniqueKey("ghost"), nil), store.ErrGroupNotFound)
	})
}

func TestPostgresGroupStore_DeleteCascadesMemberships(t *testing.T) {
	db := testdb.OpenPostgres(t)

	testdb.WithTx(t, db, func(t *testing.T, tx *sql.Tx) {
		ctx := context.Background()
		userID, name := uniqueKey("member"), uniqueKey("doomed")
		mustCreateUser(t, tx, userID)
		mustCreateGroup(t, tx, name)
		require.NoError(t, postgres.NewPostgresMembershipStore(tx, nil).ReplaceUserGroups(ctx, userID, []string{name}))

		require.NoError(t, postgres.NewPostgresGroupStore(tx, nil).Delete(ctx, name))

		user, err := postgres.NewPostgresUserStore(tx, nil).Get(ctx, userID)
		require.NoError(t, err)
		assert.Empty(t, user.Groups)
	})
}
