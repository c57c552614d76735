package postgres_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stockroom-dev/stockroom-api/internal/platform/postgres"
	"github.com/stockroom-dev/stockroom-api/internal/store"
	"github.com/stretchr/testify/assert"
	"gorm.io/gorm"
)

func newPgError(code, constraint string) *pgconn.PgError {
	return &pgconn.PgError{
		Code:           code,
		Message:        "error message",
		Detail:         "error details",
		TableName:      "accounts",
		ColumnName:     "email",
		ConstraintName: constraint,
	}
}

func TestMapError(t *testing.T) {
	t.Parallel()

	plain := errors.New("connection reset")

	tests := []struct {
		name   string
		err    error
		wantIs []error
	}{
		{name: "record not found", err: gorm.ErrRecordNotFound, wantIs: []error{store.ErrNotFound}},
		{name: "gorm duplicated key", err: gorm.ErrDuplicatedKey, wantIs: []error{store.ErrDuplicate}},
		{
			name:   "email unique violation",
			err:    fmt.Errorf("insert: %w", newPgError("23505", "accounts_email_key")),
			wantIs: []error{store.ErrEmailExists, store.ErrDuplicate},
		},
		{
			name:   "user name unique violation",
			err:    newPgError("23505", "accounts_user_name_key"),
			wantIs: []error{store.ErrUserNameExists, store.ErrDuplicate},
		},
		{
			name:   "other unique violation",
			err:    newPgError("23505", "something_key"),
			wantIs: []error{store.ErrDuplicate},
		},
		{name: "foreign key", err: newPgError("23503", "products_user_id_fkey"), wantIs: []error{store.ErrInvalidEntity}},
		{
			name:   "wrapped foreign key",
			err:    fmt.Errorf("insert product: %w", newPgError("23503", "products_user_id_fkey")),
			wantIs: []error{store.ErrInvalidEntity},
		},
		{name: "check", err: newPgError("23514", "products_price_check"), wantIs: []error{store.ErrInvalidEntity}},
		{name: "not null", err: newPgError("23502", ""), wantIs: []error{store.ErrInvalidEntity}},
		{name: "unmapped pg error", err: newPgError("42P01", ""), wantIs: nil},
		{name: "plain error", err: plain, wantIs: []error{plain}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mapped := postgres.MapError(tt.err)

			assert.ErrorIs(t, mapped, tt.err, "original error must stay in the chain")
			for _, want := range tt.wantIs {
				assert.ErrorIs(t, mapped, want)
			}
			if tt.wantIs == nil {
				assert.False(t, store.IsDuplicateError(mapped))
				assert.False(t, store.IsNotFoundError(mapped))
				assert.False(t, errors.Is(mapped, store.ErrInvalidEntity))
			}
		})
	}
}

func TestMapErrorNil(t *testing.T) {
	t.Parallel()
	assert.NoError(t, postgres.MapError(nil))
}

func TestViolationHelpers(t *testing.T) {
	t.Parallel()

	assert.True(t, postgres.IsUniqueViolation(newPgError("23505", "x")))
	assert.False(t, postgres.IsUniqueViolation(newPgError("23503", "x")))
	assert.True(t, postgres.IsForeignKeyViolation(fmt.Errorf("wrap: %w", newPgError("23503", "x"))))
	assert.False(t, postgres.IsForeignKeyViolation(errors.New("nope")))
}
