package domain

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validPassword = "correct-horse-battery"

func TestNewAccount(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name      string
		email     string
		password  string
		wantField string
	}{
		{name: "valid", email: "  Pen@Example.com ", password: validPassword},
		{name: "empty email", email: "", password: validPassword, wantField: "email"},
		{name: "malformed email", email: "not-an-email", password: validPassword, wantField: "email"},
		{name: "short password", email: "a@b.io", password: "short", wantField: "password"},
		{name: "long password", email: "a@b.io", password: strings.Repeat("x", 73), wantField: "password"},
		{name: "missing password", email: "a@b.io", password: "", wantField: "password"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			account, err := NewAccount(tt.email, tt.password)
			if tt.wantField == "" {
				require.NoError(t, err)
				assert.Equal(t, "pen@example.com", account.Email)
				assert.True(t, account.IsActive)
				assert.False(t, account.CreatedAt.IsZero())
				return
			}

			require.Error(t, err)
			assert.Nil(t, account)
			assert.ErrorIs(t, err, ErrValidation)

			var vErr *ValidationError
			require.True(t, errors.As(err, &vErr))
			assert.Equal(t, tt.wantField, vErr.Field)
		})
	}
}

func TestAccountApply(t *testing.T) {
	t.Parallel()

	base := func() *Account {
		return &Account{ID: 1, Email: "a@b.io", PasswordHash: "$2a$hash", IsActive: true}
	}
	str := func(s string) *string { return &s }

	t.Run("applies fields", func(t *testing.T) {
		t.Parallel()
		a := base()
		dob := time.Date(1990, 5, 1, 0, 0, 0, 0, time.UTC)

		err := a.Apply(AccountPatch{
			FirstName: str(" Ada "),
			Gender:    str("Female"),
			UserName:  str("ada"),
			DOB:       &dob,
		})

		require.NoError(t, err)
		assert.Equal(t, "Ada", a.FirstName)
		assert.Equal(t, "female", a.Gender)
		require.NotNil(t, a.UserName)
		assert.Equal(t, "ada", *a.UserName)
		assert.Equal(t, dob, *a.DOB)
	})

	t.Run("invalid gender leaves account untouched", func(t *testing.T) {
		t.Parallel()
		a := base()

		err := a.Apply(AccountPatch{FirstName: str("Ada"), Gender: str("robot")})

		assert.ErrorIs(t, err, ErrValidation)
		assert.Empty(t, a.FirstName)
		assert.Empty(t, a.Gender)
	})

	t.Run("empty password rejected", func(t *testing.T) {
		t.Parallel()
		a := base()
		assert.ErrorIs(t, a.Apply(AccountPatch{Password: str("")}), ErrValidation)
	})
}
