package database

import (
	"database/sql"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
)

func pqError(code pq.ErrorCode) error {
	return &pq.Error{Code: code}
}

func TestClassifyError(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want ErrorClass
	}{
		{"nil", nil, ErrorClassPermanent},
		{"serialization failure", pqError("40001"), ErrorClassSerialization},
		{"deadlock detected", pqError("40P01"), ErrorClassDeadlock},
		{"lock not available", pqError("55P03"), ErrorClassTransient},
		{"unique violation", pqError("23505"), ErrorClassPermanent},
		{"foreign key violation", pqError("23503"), ErrorClassPermanent},
		{"not null violation", pqError("23502"), ErrorClassPermanent},
		{"no rows", sql.ErrNoRows, ErrorClassPermanent},
		{"plain error", errors.New("boom"), ErrorClassPermanent},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ClassifyError(tt.err))
		})
	}
}

func TestClassifyErrorUnwrapsWrappedCodes(t *testing.T) {
	wrapped := fmt.Errorf("copy row: %w", pqError("40P01"))
	assert.Equal(t, ErrorClassDeadlock, ClassifyError(wrapped))
}

func TestIsRetryable(t *testing.T) {
	assert.True(t, IsRetryable(pqError("40001")))
	assert.True(t, IsRetryable(pqError("40P01")))
	assert.True(t, IsRetryable(pqError("55P03")))

	assert.False(t, IsRetryable(pqError("23505")))
	assert.False(t, IsRetryable(sql.ErrNoRows))
	assert.False(t, IsRetryable(nil))
}

func TestConstraintPredicates(t *testing.T) {
	assert.True(t, IsUniqueViolation(pqError("23505")))
	assert.False(t, IsUniqueViolation(pqError("23503")))

	assert.True(t, IsForeignKeyViolation(pqError("23503")))
	assert.False(t, IsForeignKeyViolation(pqError("23505")))

	wrapped := fmt.Errorf("insert user 1: %w", pqError("23505"))
	assert.True(t, IsUniqueViolation(wrapped))
}
