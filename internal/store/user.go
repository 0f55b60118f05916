package store

import (
	"context"

	"github.com/phrazzld/planet-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
// Users are addressed by their external userid, never by surrogate keys.
type UserStore interface {
	// Create saves a new user row. It does not touch memberships.
	// Returns ErrUserExists if the userid is already taken.
	Create(ctx context.Context, user *domain.User) error

	// Get retrieves a user and its group names, ordered by name.
	// Returns ErrUserNotFound if the user does not exist.
	Get(ctx context.Context, userID string) (*domain.User, error)

	// List returns every user with its groups, ordered by userid.
	List(ctx context.Context) ([]*domain.User, error)

	// Update replaces first and last name.
	// Returns ErrUserNotFound if the user does not exist.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user; memberships are removed by cascade.
	// Returns ErrUserNotFound if the user does not exist.
	Delete(ctx context.Context, userID string) error
}
