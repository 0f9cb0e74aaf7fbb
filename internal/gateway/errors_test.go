package gateway

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRejectionFromStatus(t *testing.T) {
	tests := []struct {
		status    int
		creds     bool
		retryable bool
		reselect  bool
	}{
		{http.StatusUnauthorized, true, false, true},
		{http.StatusForbidden, true, false, true},
		{http.StatusNotFound, true, false, true},
		{http.StatusNotFound, false, false, false},
		{http.StatusTooManyRequests, true, true, false},
		{http.StatusInternalServerError, true, true, false},
		{http.StatusServiceUnavailable, false, true, false},
		{http.StatusBadRequest, true, false, false},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%d/creds=%v", tt.status, tt.creds), func(t *testing.T) {
			f := RejectionFromStatus(tt.status, tt.creds, errors.New("boom"))
			assert.Equal(t, KindServiceRejection, f.Kind)
			assert.Equal(t, tt.retryable, f.Retryable)
			assert.Equal(t, tt.reselect, f.ReselectCredentials)
			assert.Equal(t, tt.status, f.StatusCode)
			assert.NotEmpty(t, f.Message)
			assert.NotEmpty(t, f.LocalMessage)
		})
	}
}

func TestClassifyUnknown(t *testing.T) {
	assert.Equal(t, KindNetwork, classifyUnknown(context.DeadlineExceeded).Kind)
	assert.Equal(t, KindNetwork, classifyUnknown(&net.OpError{Op: "dial", Err: errors.New("refused")}).Kind)

	noKey := classifyUnknown(fmt.Errorf("resolving: %w", ErrNoCredential))
	assert.Equal(t, KindServiceRejection, noKey.Kind)
	assert.True(t, noKey.ReselectCredentials)

	parse := ParseFailure(errors.New("bad"))
	assert.Same(t, parse, classifyUnknown(fmt.Errorf("wrapped: %w", parse)))

	other := classifyUnknown(errors.New("something else"))
	assert.Equal(t, KindServiceRejection, other.Kind)
	assert.False(t, other.Retryable)
}

func TestLookupFailure_ErrorAndUnwrap(t *testing.T) {
	cause := errors.New("connection reset")
	f := NetworkFailure(cause)
	assert.ErrorIs(t, f, cause)
	assert.Contains(t, f.Error(), "network")
	assert.Contains(t, f.Error(), "connection reset")

	var target *LookupFailure
	require.True(t, errors.As(fmt.Errorf("outer: %w", f), &target))
	assert.True(t, target.Retryable)

	assert.Equal(t, "parse: the AI service returned an unexpected response", ParseFailure(nil).Error())
}

func TestCredentials(t *testing.T) {
	t.Setenv("TECHLINGO_TEST_KEY_A", "")
	t.Setenv("TECHLINGO_TEST_KEY_B", "from-env")

	c := NewCredentials("", "TECHLINGO_TEST_KEY_A", "TECHLINGO_TEST_KEY_B")
	key, err := c.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "from-env", key)

	c.SetAPIKey("  explicit ")
	key, err = c.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "explicit", key)

	c.SetAPIKey("")
	t.Setenv("TECHLINGO_TEST_KEY_B", "rotated")
	key, err = c.APIKey()
	require.NoError(t, err)
	assert.Equal(t, "rotated", key)

	_, err = NewCredentials("").APIKey()
	assert.ErrorIs(t, err, ErrNoCredential)
}
