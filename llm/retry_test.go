package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fastRetry() RetryConfig {
	return RetryConfig{MaxAttempts: 3, InitialWait: time.Millisecond, MaxWait: 5 * time.Millisecond, Multiplier: 2}
}

var okContent = json.RawMessage(`{"ok":true}`)

func TestRetry_TransientThenSuccess(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &UnavailableError{Err: errors.New("down")}},
		MockResponse{Err: &RateLimitError{RetryAfter: time.Millisecond, Err: errors.New("429")}},
		MockResponse{Content: okContent},
	)

	resp, err := WithRetry(mock, fastRetry()).Generate(context.Background(), Request{})

	require.NoError(t, err)
	assert.JSONEq(t, `{"ok":true}`, string(resp.Content))
	assert.Equal(t, 3, mock.CallCount())
}

func TestRetry_GivesUpAfterMaxAttempts(t *testing.T) {
	mock := NewMockProvider()
	for i := 0; i < 5; i++ {
		mock.Enqueue(MockResponse{Err: &UnavailableError{Err: errors.New("down")}})
	}

	_, err := WithRetry(mock, fastRetry()).Generate(context.Background(), Request{})

	var unavailable *UnavailableError
	assert.ErrorAs(t, err, &unavailable)
	assert.Equal(t, 3, mock.CallCount())
}

func TestRetry_TruncationIsNotRetried(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &TruncatedError{Content: json.RawMessage(`{`)}},
		MockResponse{Content: okContent},
	)

	_, err := WithRetry(mock, fastRetry()).Generate(context.Background(), Request{})

	var truncated *TruncatedError
	assert.ErrorAs(t, err, &truncated)
	assert.Equal(t, 1, mock.CallCount())
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	bad := MockResponse{Err: &InvalidResponseError{Err: errors.New("bad")}}
	mock := NewMockProvider(bad, bad, MockResponse{Content: okContent})

	_, err := WithRetry(mock, fastRetry()).Generate(context.Background(), Request{})

	var invalid *InvalidResponseError
	assert.ErrorAs(t, err, &invalid)
	assert.Equal(t, 2, mock.CallCount())
}

func TestRetry_CancelledContextStops(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Err: &UnavailableError{Err: errors.New("down")}},
		MockResponse{Content: okContent},
	)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	cfg := fastRetry()
	cfg.InitialWait = time.Second
	_, err := WithRetry(mock, cfg).Generate(ctx, Request{})

	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, mock.CallCount())
}

func TestIsTransient(t *testing.T) {
	assert.True(t, IsTransient(&RateLimitError{}))
	assert.True(t, IsTransient(&UnavailableError{}))
	assert.False(t, IsTransient(&TruncatedError{}))
	assert.False(t, IsTransient(errors.New("plain")))
}
