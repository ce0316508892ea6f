package classify

import "errors"

var (
	// ErrUnavailable indicates the model server is unreachable.
	ErrUnavailable = errors.New("model server unavailable")

	// ErrTimeout indicates the request exceeded the configured timeout.
	ErrTimeout = errors.New("classification request timed out")

	// ErrInvalidOutput indicates the model response could not be parsed
	// into a classification.
	ErrInvalidOutput = errors.New("invalid classification output")
)
