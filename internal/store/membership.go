package store

import "context"

// MembershipStore replaces membership sets. Both operations have
// full-replace semantics: every existing row for the owner is deleted, then
// one row is inserted per name that resolves to an existing counterpart.
// Names that do not resolve are skipped without error.
type MembershipStore interface {
	// ReplaceUserGroups sets the groups of userID to exactly groupNames.
	// Returns ErrUserNotFound if the user does not exist.
	ReplaceUserGroups(ctx context.Context, userID string, groupNames []string) error

	// ReplaceGroupMembers sets the members of groupName to exactly userIDs.
	// Returns ErrGroupNotFound if the group does not exist.
	ReplaceGroupMembers(ctx context.Context, groupName string, userIDs []string) error
}
