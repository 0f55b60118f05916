package api

import "github.com/phrazzld/planet-api/internal/domain"

// CreateUserRequest is the body of POST /users. Pointer fields tell a
// missing field apart from an empty one.
type CreateUserRequest struct {
	FirstName *string  `json:"first_name" validate:"required"`
	LastName  *string  `json:"last_name"  validate:"required"`
	UserID    *string  `json:"userid"     validate:"required"`
	Groups    []string `json:"groups"     validate:"required"`
}

// UpdateUserRequest is the body of PUT /users/{userid}. UserID is optional
// and must match the path when present.
type UpdateUserRequest struct {
	FirstName *string  `json:"first_name" validate:"required"`
	LastName  *string  `json:"last_name"  validate:"required"`
	UserID    *string  `json:"userid,omitempty"`
	Groups    []string `json:"groups"     validate:"required"`
}

// CreateGroupRequest is the body of POST /groups.
type CreateGroupRequest struct {
	Name *string `json:"name" validate:"required"`
}

// UserResponse is the JSON representation of a user.
type UserResponse struct {
	FirstName string   `json:"first_name"`
	LastName  string   `json:"last_name"`
	UserID    string   `json:"userid"`
	Groups    []string `json:"groups"`
}

// NewUserResponse converts a domain user. Groups is never null.
func NewUserResponse(user *domain.User) UserResponse {
	groups := user.Groups
	if groups == nil {
		groups = []string{}
	}
	return UserResponse{
		FirstName: user.FirstName,
		LastName:  user.LastName,
		UserID:    user.UserID,
		Groups:    groups,
	}
}

// NewUserListResponse converts a list of domain users. The result is never null.
func NewUserListResponse(users []*domain.User) []UserResponse {
	out := make([]UserResponse, 0, len(users))
	for _, u := range users {
		out = append(out, NewUserResponse(u))
	}
	return out
}

// nonNil returns names, or an empty slice when names is nil.
func nonNil(names []string) []string {
	if names == nil {
		return []string{}
	}
	return names
}
