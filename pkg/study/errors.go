package study

import (
	"errors"
	"fmt"
)

// Kind classifies an operation failure so callers can map it to an
// HTTP status without matching on message strings.
type Kind int

const (
	KindValidation Kind = iota // bad input, nothing written
	KindNotFound               // a referenced entity does not exist
	KindConflict               // storage-level constraint violation
	KindStorage                // unexpected storage failure
	KindInternal               // any other unhandled fault
)

// Error carries a caller-safe Message and the wrapped cause. Only
// Message may be shown to API clients; Err stays in the logs.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

func Validation(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

func Conflict(err error) *Error {
	return &Error{Kind: KindConflict, Message: "Database constraint violation", Err: err}
}

func StorageFault(err error) *Error {
	return &Error{Kind: KindStorage, Message: "Database error occurred", Err: err}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "An unexpected error occurred", Err: err}
}

// asError normalizes anything that escaped an operation into *Error.
func asError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return Internal(err)
}
