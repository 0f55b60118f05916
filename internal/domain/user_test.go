package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewUser(t *testing.T) {
	user, err := NewUser("testguy", "test", "guy", []string{"b", "a", "b"})

	require.NoError(t, err)
	assert.Equal(t, "testguy", user.UserID)
	assert.Equal(t, "test", user.FirstName)
	assert.Equal(t, "guy", user.LastName)
	assert.Equal(t, []string{"b", "a"}, user.Groups, "duplicates collapse, order kept")
}

func TestNewUser_NilGroups(t *testing.T) {
	user, err := NewUser("testguy", "", "", nil)

	require.NoError(t, err)
	assert.NotNil(t, user.Groups)
	assert.Empty(t, user.Groups)
}

func TestUserValidate(t *testing.T) {
	tests := []struct {
		name    string
		userID  string
		wantErr bool
	}{
		{"valid", "testguy", false},
		{"empty names are fine", "x", false},
		{"empty userid", "", true},
		{"slash in userid", "test/guy", true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			u := &User{UserID: tt.userID}
			err := u.Validate()
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrValidation))
			assert.True(t, errors.Is(err, ErrInvalidID))

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, "userid", vErr.Field)
		})
	}
}
