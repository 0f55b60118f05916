package postgres_test

import (
	"context"
	"errors"
	"regexp"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/phrazzld/planet-api/internal/domain"
	"github.com/phrazzld/planet-api/internal/platform/postgres"
	"github.com/phrazzld/planet-api/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgresMembershipStore_ReplaceUserGroupsQueries(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM users WHERE userid = $1`)).
		WithArgs("jsmith").
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(7))
	mock.ExpectExec(regexp.QuoteMeta(`DELETE FROM membership WHERE user_id = $1`)).
		WithArgs(int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`INSERT INTO membership`).
		WithArgs(int64(7), "admins").
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO membership`).
		WithArgs(int64(7), "missing").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = postgres.NewPostgresMembershipStore(db, nil).
		ReplaceUserGroups(context.Background(), "jsmith", []string{"admins", "missing"})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMembershipStore_ReplaceGroupMembersUnknownGroup(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT id FROM groups WHERE group_name = $1`)).
		WithArgs("ghosts").
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	err = postgres.NewPostgresMembershipStore(db, nil).
		ReplaceGroupMembers(context.Background(), "ghosts", []string{"jsmith"})
	assert.ErrorIs(t, err, store.ErrGroupNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMembershipStore_InsertFailureStops(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectQuery(`SELECT id FROM groups`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectExec(`DELETE FROM membership`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO membership`).
		WillReturnError(errors.New("connection lost"))

	err = postgres.NewPostgresMembershipStore(db, nil).
		ReplaceGroupMembers(context.Background(), "admins", []string{"a", "b"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connection lost")

	var storeErr *store.StoreError
	require.ErrorAs(t, err, &storeErr)
	assert.Equal(t, "membership", storeErr.Entity)
	assert.Equal(t, "replace", storeErr.Operation)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestPostgresMembershipStore_OwnerDeletedDuringReplace(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	fkErr := &pgconn.PgError{Code: "23503", ConstraintName: "membership_group_id_fkey"}
	mock.ExpectQuery(`SELECT id FROM groups`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(3))
	mock.ExpectExec(`DELETE FROM membership`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`INSERT INTO membership`).
		WithArgs(int64(3), "jsmith").
		WillReturnError(fkErr)

	err = postgres.NewPostgresMembershipStore(db, nil).
		ReplaceGroupMembers(context.Background(), "admins", []string{"jsmith", "bob"})
	assert.ErrorIs(t, err, store.ErrGroupNotFound)
	assert.ErrorIs(t, err, fkErr)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_RollsBackOnError(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectExec(regexp.QuoteMeta(`INSERT INTO groups (group_name) VALUES ($1)`)).
		WithArgs("admins").
		WillReturnResult(sqlmock.NewResult(1, 1))
	mock.ExpectRollback()

	boom := errors.New("later step failed")
	err = postgres.NewTxManager(db, nil).RunInTx(context.Background(),
		func(ctx context.Context, repos store.Repositories) error {
			if err := repos.Groups.Create(ctx, mustGroup(t, "admins")); err != nil {
				return err
			}
			return boom
		})
	assert.ErrorIs(t, err, boom)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestTxManager_Commits(t *testing.T) {
	t.Parallel()

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer func() { _ = db.Close() }()

	mock.ExpectBegin()
	mock.ExpectQuery(regexp.QuoteMeta(`SELECT group_name FROM groups ORDER BY group_name`)).
		WillReturnRows(sqlmock.NewRows([]string{"group_name"}).AddRow("admins").AddRow("users"))
	mock.ExpectCommit()

	var names []string
	err = postgres.NewTxManager(db, nil).RunInTx(context.Background(),
		func(ctx context.Context, repos store.Repositories) error {
			var err error
			names, err = repos.Groups.ListNames(ctx)
			return err
		})
	require.NoError(t, err)
	assert.Equal(t, []string{"admins", "users"}, names)
	assert.NoError(t, mock.ExpectationsWereMet())
}
func mustGroup(t *testing.T, name string) *domain.Group {
	t.Helper()
	group, err := domain.NewGroup(name)
	require.NoError(t, err)
	return group
}
