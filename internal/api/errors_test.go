package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/phrazzld/planet-api/internal/api/shared"
	"github.com/phrazzld/planet-api/internal/domain"
	"github.com/phrazzld/planet-api/internal/service"
	"github.com/phrazzld/planet-api/internal/store"
	"github.com/stretchr/testify/assert"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{name: "user not found", err: fmt.Errorf("get: %w", store.ErrUserNotFound), want: http.StatusNotFound},
		{name: "group not found", err: store.ErrGroupNotFound, want: http.StatusNotFound},
		{name: "user exists", err: fmt.Errorf("create: %w", store.ErrUserExists), want: http.StatusConflict},
		{name: "group exists", err: store.ErrGroupExists, want: http.StatusConflict},
		{name: "domain validation", err: domain.NewValidationError("userid", "cannot be empty", domain.ErrInvalidID), want: http.StatusBadRequest},
		{name: "invalid entity", err: store.ErrInvalidEntity, want: http.StatusBadRequest},
		{name: "malformed body", err: fmt.Errorf("%w: eof", shared.ErrMalformedBody), want: http.StatusBadRequest},
		{name: "userid mismatch", err: ErrUserIDMismatch, want: http.StatusBadRequest},
		{name: "invalid members", err: fmt.Errorf("replace: %w", service.ErrInvalidMembers), want: http.StatusBadRequest},
		{name: "transaction failed", err: store.ErrTransactionFailed, want: http.StatusInternalServerError},
		{name: "unknown", err: errors.New("boom"), want: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, MapErrorToStatusCode(tt.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "User not found", GetSafeErrorMessage(fmt.Errorf("x: %w", store.ErrUserNotFound)))
	assert.Equal(t, "Group already exists", GetSafeErrorMessage(store.ErrGroupExists))
	assert.Equal(t, "invalid group_name: cannot contain '/'",
		GetSafeErrorMessage(domain.NewValidationError("group_name", "cannot contain '/'", domain.ErrInvalidID)))
	assert.Equal(t, "Invalid request format", GetSafeErrorMessage(shared.ErrMalformedBody))
	assert.Equal(t, "Request body must be a JSON array of userids",
		GetSafeErrorMessage(fmt.Errorf("%w: %w", service.ErrInvalidMembers, shared.ErrMalformedBody)))
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(nil))

	leaky := errors.New("pq: password authentication failed for user admin")
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(leaky))
}
