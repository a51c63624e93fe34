package inference

import (
	"errors"
	"fmt"
)

// ErrInvalidResponse is returned when the inference service replied with
// well-formed JSON that does not carry a successful answer.
var ErrInvalidResponse = errors.New("invalid response from inference service")

// StatusError reports a reply with any status other than 200.
type StatusError struct {
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("inference service returned status %d: %s", e.StatusCode, e.Body)
}

// ContentTypeError reports a 200 reply that is not JSON.
type ContentTypeError struct {
	ContentType string
	Body        string
}

func (e *ContentTypeError) Error() string {
	return fmt.Sprintf("inference service returned non-JSON response (%s): %s", e.ContentType, e.Body)
}

// DecodeError reports an unparseable JSON reply.
type DecodeError struct {
	Cause error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("parse inference response: %v", e.Cause)
}

func (e *DecodeError) Unwrap() error { return e.Cause }
