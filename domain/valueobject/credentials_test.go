package valueobject

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCredentials(t *testing.T) {
	t.Run("normalizes email", func(t *testing.T) {
		creds, err := NewCredentials("  A@X.com ", "secret1")
		require.NoError(t, err)
		assert.Equal(t, "a@x.com", creds.Email())
		assert.Equal(t, "secret1", creds.Password())
	})

	t.Run("short password is accepted at login", func(t *testing.T) {
		_, err := NewCredentials("a@x.com", "x")
		assert.NoError(t, err)
	})

	t.Run("missing fields", func(t *testing.T) {
		_, err := NewCredentials("", "secret1")
		assert.ErrorIs(t, err, ErrMissingEmail)

		_, err = NewCredentials("a@x.com", "")
		assert.ErrorIs(t, err, ErrMissingPassword)
	})
}

func TestNewRegistration(t *testing.T) {
	tests := []struct {
		name     string
		userName string
		email    string
		password string
		wantErr  error
	}{
		{"valid", "A", "a@x.com", "secret1", nil},
		{"missing name", "  ", "a@x.com", "secret1", ErrMissingName},
		{"missing email", "A", "", "secret1", ErrMissingEmail},
		{"missing password", "A", "a@x.com", "", ErrMissingPassword},
		{"bad email", "A", "not-an-email", "secret1", ErrInvalidEmail},
		{"short password", "A", "a@x.com", "abc", ErrPasswordTooShort},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, err := NewRegistration(tt.userName, tt.email, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, reg)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, "A", reg.Name())
			assert.Equal(t, "a@x.com", reg.Email())
		})
	}
}
