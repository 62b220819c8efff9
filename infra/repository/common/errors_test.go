package common

import (
	"errors"
	"fmt"
	"testing"

	"github.com/amirasaad/finhealth/pkg/domain"
	"github.com/amirasaad/finhealth/pkg/domain/transaction"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestMapGormErrorToDomain(t *testing.T) {
	t.Parallel()

	other := errors.New("some other error")
	tests := []struct {
		name     string
		input    error
		expected error
	}{
		{name: "nil error returns nil", input: nil, expected: nil},
		{name: "duplicate key maps to ErrAlreadyExists", input: gorm.ErrDuplicatedKey, expected: domain.ErrAlreadyExists},
		{name: "record not found maps to ErrNotFound", input: gorm.ErrRecordNotFound, expected: domain.ErrNotFound},
		{name: "non-GORM error returned as is", input: other, expected: other},
		{name: "joined duplicate key", input: errors.Join(errors.New("outer"), gorm.ErrDuplicatedKey), expected: domain.ErrAlreadyExists},
		{name: "wrapped record not found", input: fmt.Errorf("query: %w", gorm.ErrRecordNotFound), expected: domain.ErrNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			result := MapGormErrorToDomain(tt.input)
			if tt.expected == nil {
				require.NoError(t, result)
				return
			}
			require.Error(t, result)
			assert.ErrorIs(t, result, tt.expected)
		})
	}
}

func TestWrapError(t *testing.T) {
	t.Parallel()

	assert.NoError(t, WrapError(func() error { return nil }))
	assert.ErrorIs(t, WrapError(func() error { return gorm.ErrDuplicatedKey }), domain.ErrAlreadyExists)
}

func TestNotFoundAs(t *testing.T) {
	t.Parallel()

	err := NotFoundAs(gorm.ErrRecordNotFound, transaction.ErrTransactionNotFound)
	assert.ErrorIs(t, err, transaction.ErrTransactionNotFound)
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = NotFoundAs(gorm.ErrDuplicatedKey, transaction.ErrTransactionNotFound)
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

func TestRequireAffected(t *testing.T) {
	t.Parallel()

	assert.NoError(t, RequireAffected(&gorm.DB{RowsAffected: 1}, transaction.ErrTransactionNotFound))
	assert.ErrorIs(t,
		RequireAffected(&gorm.DB{RowsAffected: 0}, transaction.ErrTransactionNotFound),
		transaction.ErrTransactionNotFound,
	)
	assert.ErrorIs(t,
		RequireAffected(&gorm.DB{Error: gorm.ErrDuplicatedKey}, transaction.ErrTransactionNotFound),
		domain.ErrAlreadyExists,
	)
}
