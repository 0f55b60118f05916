package domain

import "strings"

// User is a person known to the service, addressed by UserID.
// Groups holds the names of the groups the user belongs to.
type User struct {
	UserID    string
	FirstName string
	LastName  string
	Groups    []string
}

// NewUser builds a User and validates it.
func NewUser(userID, firstName, lastName string, groups []string) (*User, error) {
	user := &User{
		UserID:    userID,
		FirstName: firstName,
		LastName:  lastName,
		Groups:    normalizeNames(groups),
	}

	if err := user.Validate(); err != nil {
		return nil, err
	}

	return user, nil
}

// Validate checks if the User has valid data.
func (u *User) Validate() error {
	return validateKey("userid", u.UserID)
}

// validateKey checks a value used as a primary identifier and path segment.
func validateKey(field, value string) error {
	if value == "" {
		return NewValidationError(field, "cannot be empty", ErrInvalidID)
	}
	if strings.Contains(value, "/") {
		return NewValidationError(field, "cannot contain '/'", ErrInvalidID)
	}
	return nil
}

// normalizeNames returns a non-nil copy of names without duplicates,
// preserving first-seen order.
func normalizeNames(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, name := range names {
		if _, ok := seen[name]; ok {
			continue
		}
		seen[name] = struct{}{}
		out = append(out, name)
	}
	return out
}
