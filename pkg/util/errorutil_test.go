package util

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToDomainErrorPassthrough(t *testing.T) {
	err := NewRoleFull("server", map[string]any{"event_id": "evt-1"})

	domainErr := ToDomainError(err)
	assert.Equal(t, "ROLE_FULL", domainErr.Code)
	assert.Equal(t, http.StatusConflict, domainErr.HTTPStatus)

	wrapped := fmt.Errorf("assigning: %w", err)
	assert.Equal(t, "ROLE_FULL", ToDomainError(wrapped).Code, "wrapped domain errors unwrap")
}

func TestToDomainErrorDefaultsToInternal(t *testing.T) {
	domainErr := ToDomainError(errors.New("boom"))

	assert.Equal(t, "INTERNAL_ERROR", domainErr.Code)
	assert.Equal(t, http.StatusInternalServerError, domainErr.HTTPStatus)
	require.NotNil(t, domainErr.Err)
}

func TestIsCode(t *testing.T) {
	err := NewContention(nil)

	assert.True(t, IsCode(err, "CONTENTION"))
	assert.True(t, IsCode(fmt.Errorf("wrapped: %w", err), "CONTENTION"))
	assert.False(t, IsCode(err, "CONFLICT"))
	assert.False(t, IsCode(errors.New("plain"), "CONTENTION"))
	assert.False(t, IsCode(nil, "CONTENTION"))
}

func TestStorageUnavailableWraps(t *testing.T) {
	cause := errors.New("connection refused")
	err := NewStorageUnavailable(cause)

	assert.True(t, IsCode(err, "STORAGE_UNAVAILABLE"))
	assert.ErrorIs(t, err, cause)
}
