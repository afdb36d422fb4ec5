package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

var errSentinel = New(http.StatusConflict, "time slot already booked")

func TestWrappedSentinelStillMatches(t *testing.T) {
	wrapped := Wrap(errors.New("exclusion violation"), http.StatusConflict, "time slot already booked")

	assert.ErrorIs(t, wrapped, errSentinel)
	assert.ErrorIs(t, fmt.Errorf("create appointment: %w", wrapped), errSentinel)
	assert.NotErrorIs(t, New(http.StatusBadRequest, "time slot already booked"), errSentinel)
}

func TestStatusCode(t *testing.T) {
	assert.Equal(t, http.StatusConflict, StatusCode(errSentinel))
	assert.Equal(t, http.StatusConflict, StatusCode(fmt.Errorf("ctx: %w", errSentinel)))
	assert.Equal(t, http.StatusInternalServerError, StatusCode(errors.New("boom")))
}
