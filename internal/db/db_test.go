package db

import (
	"errors"
	"fmt"
	"testing"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/stretchr/testify/assert"
)

func TestHasCode(t *testing.T) {
	wrapped := fmt.Errorf("insert failed: %w", &pgconn.PgError{Code: pgerrcode.ExclusionViolation})

	assert.True(t, HasCode(wrapped, pgerrcode.ExclusionViolation))
	assert.False(t, HasCode(wrapped, pgerrcode.UniqueViolation))
	assert.False(t, HasCode(errors.New("plain"), pgerrcode.UniqueViolation))
	assert.False(t, HasCode(nil, pgerrcode.UniqueViolation))
}

func TestReadyCheckWithoutPool(t *testing.T) {
	assert.Error(t, ReadyCheck(nil)(t.Context()))
}
