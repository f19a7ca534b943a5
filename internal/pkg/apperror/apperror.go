package apperror

import (
	"errors"
	"fmt"
)

// Kind classifies a failure so transport code can map it without string matching.
type Kind string

const (
	KindUnknown                   Kind = "UNKNOWN"
	KindNotFoundOrUnauthorized    Kind = "NOT_FOUND_OR_UNAUTHORIZED"
	KindUpstreamUnavailable       Kind = "UPSTREAM_UNAVAILABLE"
	KindUpstreamEmpty             Kind = "UPSTREAM_EMPTY"
	KindMalformedStructuredOutput Kind = "MALFORMED_STRUCTURED_OUTPUT"
	KindStorageFailure            Kind = "STORAGE_FAILURE"
	KindInputInvalid              Kind = "INPUT_INVALID"
	KindUnauthenticated           Kind = "UNAUTHENTICATED"
	KindConflict                  Kind = "CONFLICT"
)

// Error is the error type returned by services.
// Detail carries diagnostics (e.g. raw model output) that must not reach the client.
type Error struct {
	Kind    Kind
	Message string
	Detail  string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches any *Error of the same kind, so errors.Is(err, apperror.ErrNotFound) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Message == ""
}

// Kind sentinels for errors.Is checks.
var (
	ErrNotFound        = &Error{Kind: KindNotFoundOrUnauthorized}
	ErrUpstream        = &Error{Kind: KindUpstreamUnavailable}
	ErrUpstreamEmpty   = &Error{Kind: KindUpstreamEmpty}
	ErrMalformedOutput = &Error{Kind: KindMalformedStructuredOutput}
	ErrStorage         = &Error{Kind: KindStorageFailure}
	ErrInputInvalid    = &Error{Kind: KindInputInvalid}
	ErrUnauthenticated = &Error{Kind: KindUnauthenticated}
	ErrConflict        = &Error{Kind: KindConflict}
)

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func NotFound(message string) *Error {
	return New(KindNotFoundOrUnauthorized, message)
}

func InputInvalid(message string) *Error {
	return New(KindInputInvalid, message)
}

func Storage(err error) *Error {
	return Wrap(KindStorageFailure, "storage unavailable", err)
}

func Upstream(err error) *Error {
	return Wrap(KindUpstreamUnavailable, "language model unavailable", err)
}

func UpstreamEmpty(message string) *Error {
	return New(KindUpstreamEmpty, message)
}

func Malformed(message, detail string, err error) *Error {
	return &Error{Kind: KindMalformedStructuredOutput, Message: message, Detail: detail, Err: err}
}

// KindOf returns the kind of the first *Error in err's chain.
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindUnknown
}
