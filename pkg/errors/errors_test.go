package errors

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUpstreamWrapsCause(t *testing.T) {
	cause := errors.New("connection refused")
	err := Upstream("surveys", cause)

	require.NotNil(t, err)
	assert.Equal(t, ErrUpstreamFetch.Code, err.Code)
	assert.Equal(t, http.StatusBadGateway, err.Status)
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, ErrUpstreamFetch)
	assert.Equal(t, "failed to fetch surveys: connection refused", err.Error())

	// already classified upstream errors are returned untouched
	assert.Same(t, err, Upstream("tasks", err))
	assert.Nil(t, Upstream("tasks", nil))
}

func TestFromError(t *testing.T) {
	assert.Nil(t, FromError(nil))

	wrapped := fmt.Errorf("handler: %w", ErrNotFound)
	assert.Same(t, ErrNotFound, FromError(wrapped))

	plain := FromError(errors.New("boom"))
	assert.Equal(t, ErrInternal.Code, plain.Code)
	assert.Equal(t, http.StatusInternalServerError, plain.Status)
}

func TestCloneKeepsIdentity(t *testing.T) {
	clone := Clone(ErrValidation, "orgId must be positive")
	assert.Equal(t, "orgId must be positive", clone.Message)
	assert.Equal(t, "validation failed", ErrValidation.Message)
	assert.ErrorIs(t, clone, ErrValidation)
	assert.Nil(t, Clone(nil, "x"))
}
