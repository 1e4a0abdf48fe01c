package trivia

import (
	"fmt"
)

// FailureKind identifies the category of a fetch failure
type FailureKind int

// Failure kinds
const (
	// NetworkFailure covers transport errors, timeouts, TLS errors and non-2xx responses
	NetworkFailure FailureKind = iota + 1
	// CorruptPayload covers responses that aren't a json array holding a complete question
	CorruptPayload
)

// String returns the name of the failure kind
func (k FailureKind) String() string {
	switch k {
	case NetworkFailure:
		return "networkFailure"
	case CorruptPayload:
		return "corruptPayload"
	default:
		return fmt.Sprintf("unknown(%d)", int(k))
	}
}

// FetchError is the error returned when fetching a question fails
type FetchError struct {
	Kind    FailureKind
	Message string
	cause   error
}

func newNetworkFailure(cause error, format string, args ...interface{}) *FetchError {
	return &FetchError{Kind: NetworkFailure, Message: fmt.Sprintf(format, args...), cause: cause}
}

func newCorruptPayload(cause error, format string, args ...interface{}) *FetchError {
	return &FetchError{Kind: CorruptPayload, Message: fmt.Sprintf(format, args...), cause: cause}
}

// Error returns the error message including the cause, if any
func (e *FetchError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.cause)
	}

	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Cause returns the underlying error. It makes FetchError play well with github.com/pkg/errors.Cause
func (e *FetchError) Cause() error {
	return e.cause
}

// Unwrap returns the underlying error
func (e *FetchError) Unwrap() error {
	return e.cause
}
