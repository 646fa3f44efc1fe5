package remote

import (
	"errors"
	"fmt"
)

// ErrNotFound reports that the server holds no payload for the user.
var ErrNotFound = errors.New("remote: no payload for user")

// ErrUnavailable wraps transport failures and non-2xx responses.
type ErrUnavailable struct {
	Op         string
	StatusCode int
	Err        error
}

func (e *ErrUnavailable) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("remote %s: server returned %d", e.Op, e.StatusCode)
	}
	return fmt.Sprintf("remote %s: %v", e.Op, e.Err)
}

func (e *ErrUnavailable) Unwrap() error { return e.Err }

// ErrInvalidPayload reports a response body that failed schema
// validation or decoding. The local state is never touched by one.
type ErrInvalidPayload struct {
	Err error
}

func (e *ErrInvalidPayload) Error() string {
	return fmt.Sprintf("remote: invalid payload: %v", e.Err)
}

func (e *ErrInvalidPayload) Unwrap() error { return e.Err }
