// Package apperr defines the error taxonomy shared by the locator, the
// download driver and the updater, and maps errors to the title/message/
// severity triple the UI presents to the user.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error by how the user should be told about it.
type Kind int

const (
	Internal Kind = iota
	InvalidInput
	NotFound
	NetworkFailure
	PermissionDenied
	UnsupportedPlatform
	InvalidVersionFormat
)

// String returns the name of the kind.
func (k Kind) String() string {
	switch k {
	case InvalidInput:
		return "invalid input"
	case NotFound:
		return "not found"
	case NetworkFailure:
		return "network failure"
	case PermissionDenied:
		return "permission denied"
	case UnsupportedPlatform:
		return "unsupported platform"
	case InvalidVersionFormat:
		return "invalid version format"
	default:
		return "internal error"
	}
}

// Error is a classified error. Msg is the user facing text; Err the cause.
type Error struct {
	Kind Kind
	Op   string
	Msg  string
	Err  error
}

// New creates a classified error without an underlying cause.
func New(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}

// Wrap classifies err. A nil err yields nil.
func Wrap(kind Kind, op, msg string, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Op: op, Msg: msg, Err: err}
}

func (e *Error) Error() string {
	msg := e.Msg
	if msg == "" {
		msg = e.Kind.String()
	}
	if e.Op != "" {
		msg = e.Op + ": " + msg
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports whether target is an *Error of the same kind, so that
// errors.Is(err, apperr.New(apperr.NotFound, "", "")) matches any NotFound.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

// KindOf returns the kind of the outermost classified error in err's chain,
// or Internal when there is none.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return Internal
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// MessageOf returns the user facing message of err.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Msg != "" {
		return e.Msg
	}
	if err == nil {
		return ""
	}
	return err.Error()
}
