package llm

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

// RateLimitError is a 429 from the vendor.
type RateLimitError struct {
	RetryAfter time.Duration
	Err        error
}

func (e *RateLimitError) Error() string {
	return fmt.Sprintf("llm rate limited (retry after %s): %v", e.RetryAfter, e.Err)
}

func (e *RateLimitError) Unwrap() error { return e.Err }

// InvalidResponseError means the output was not JSON or failed the schema.
type InvalidResponseError struct {
	Content json.RawMessage
	Err     error
}

func (e *InvalidResponseError) Error() string {
	return fmt.Sprintf("llm returned invalid content: %v", e.Err)
}

func (e *InvalidResponseError) Unwrap() error { return e.Err }

// UnavailableError covers vendor outages and transport failures.
type UnavailableError struct {
	Err error
}

func (e *UnavailableError) Error() string {
	if e.Err == nil {
		return "llm provider unavailable"
	}
	return fmt.Sprintf("llm provider unavailable: %v", e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// TruncatedError means generation stopped at the token limit.
type TruncatedError struct {
	Content json.RawMessage
}

func (e *TruncatedError) Error() string {
	return "llm output truncated at max tokens"
}

// IsTransient reports whether retrying err may succeed.
func IsTransient(err error) bool {
	var rl *RateLimitError
	var un *UnavailableError
	return errors.As(err, &rl) || errors.As(err, &un)
}
