package gormstore

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"github.com/phrazzld/planet-api/internal/store"
	"gorm.io/gorm"
)

// IsDuplicateKey reports whether err is a unique or primary key violation.
// Drivers translate most of these to gorm.ErrDuplicatedKey; the raw driver
// errors are checked as well for statements that bypass translation.
func IsDuplicateKey(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return true
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique ||
			sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey
	}

	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// mapError converts gorm and driver errors to store errors. notFound and
// duplicate select the entity-specific sentinels.
func mapError(err error, notFound, duplicate error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return notFound
	case IsDuplicateKey(err):
		return fmt.Errorf("%w: %w", duplicate, err)
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return fmt.Errorf("%w: %w", store.ErrInvalidEntity, err)
	default:
		return err
	}
}
