package service

import "errors"

// Service sentinel errors. The API layer maps these to HTTP status codes.
var (
	// ErrInvalidMembers indicates that the member list supplied for a group
	// could not be read. API layer should map this to HTTP 400 Bad Request.
	ErrInvalidMembers = errors.New("invalid member list")
)
