package store

import (
	"context"

	"github.com/phrazzld/planet-api/internal/domain"
)

// GroupStore defines the interface for group data persistence.
type GroupStore interface {
	// Create saves a new group.
	// Returns ErrGroupExists if the name is already taken.
	Create(ctx context.Context, group *domain.Group) error

	// Get retrieves a group and its member userids, ordered.
	// Returns ErrGroupNotFound if the group does not exist.
	Get(ctx context.Context, name string) (*domain.Group, error)

	// Exists reports whether a group with the given name exists.
	Exists(ctx context.Context, name string) (bool, error)

	// ListNames returns every group name, ordered.
	ListNames(ctx context.Context) ([]string, error)

	// Delete removes a group; memberships are removed by cascade.
	// Returns ErrGroupNotFound if the group does not exist.
	Delete(ctx context.Context, name string) error
}
