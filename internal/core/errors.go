package core

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
)

// ErrorKind names a class of per-query failure.
type ErrorKind string

const (
	ErrorKindToken             ErrorKind = "TokenError"
	ErrorKindUnexpectedContent ErrorKind = "UnexpectedContentError"
	ErrorKindRateLimit         ErrorKind = "RateLimitError"
	ErrorKindNetwork           ErrorKind = "NetworkError"
	ErrorKindQuery             ErrorKind = "QueryError"
	ErrorKindLookup            ErrorKind = "LookupError"
	ErrorKindCancelled         ErrorKind = "CancelledError"
)

// User-facing explanations shared by every platform.
const (
	TokenErrorMessage        = "Could not retrieve token. You might be sending too many requests. Use a proxy or wait before trying again."
	UnexpectedContentMessage = "Unexpected content type %s. You might be sending too many requests. Use a proxy or wait before trying again."
	TooManyRequestsMessage   = "Requests denied by platform due to excessive requests. Use a proxy or wait before trying again."
	NoResultMessage          = "Error retrieving result"
)

// Error is a classified per-query failure.
type Error struct {
	Kind   ErrorKind
	Detail string
	Err    error
}

// NewError creates an Error of the given kind.
func NewError(kind ErrorKind, detail string) *Error {
	return &Error{Kind: kind, Detail: detail}
}

// WrapError classifies err under kind, keeping it for errors.Is/As.
func WrapError(kind ErrorKind, err error) *Error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Detail: err.Error(), Err: err}
}

func (e *Error) Error() string {
	if e.Detail == "" {
		return string(e.Kind)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Detail)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// ErrToken is returned for every token-gated query once a token fetch has failed.
var ErrToken = NewError(ErrorKindToken, TokenErrorMessage)

// UnexpectedContent reports a response whose content type does not match what the parser expects.
func UnexpectedContent(contentType string) *Error {
	return NewError(ErrorKindUnexpectedContent, fmt.Sprintf(UnexpectedContentMessage, contentType))
}

// RateLimited reports an explicit too-many-requests answer.
func RateLimited() *Error {
	return NewError(ErrorKindRateLimit, TooManyRequestsMessage)
}

// MissingField reports a response that lacks an expected field.
func MissingField(field string) *Error {
	return NewError(ErrorKindLookup, fmt.Sprintf("missing field %q", field))
}

// KindOf maps an arbitrary error onto the failure taxonomy.
func KindOf(err error) ErrorKind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	if errors.Is(err, context.Canceled) {
		return ErrorKindCancelled
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return ErrorKindNetwork
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return ErrorKindNetwork
	}
	var netErr net.Error
	if errors.As(err, &netErr) {
		return ErrorKindNetwork
	}
	return ErrorKindQuery
}

// FailureMessage renders err as "<Kind>: <detail>".
func FailureMessage(err error) string {
	kind := KindOf(err)
	var classified *Error
	if errors.As(err, &classified) && classified.Detail != "" {
		return fmt.Sprintf("%s: %s", kind, classified.Detail)
	}
	return fmt.Sprintf("%s: %s", kind, err.Error())
}
