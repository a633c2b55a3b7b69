package gateway

import (
	"errors"
	"fmt"
)

var (
	// ErrUnexpectedStatus wraps every non-2xx answer.
	ErrUnexpectedStatus = errors.New("unexpected status")

	// ErrMalformedPayload wraps every answer whose body does not decode.
	ErrMalformedPayload = errors.New("malformed payload")
)

// Error describes a failed backend call. The container only uses Error(),
// callers that care can inspect it with errors.As.
type Error struct {
	Op         string
	Method     string
	Path       string
	StatusCode int // 0 when no response arrived or a decoded payload was rejected
	Err        error
}

func (e *Error) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("%s: %s %s: status %d: %v", e.Op, e.Method, e.Path, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("%s: %s %s: %v", e.Op, e.Method, e.Path, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
