package types

import (
	"errors"
	"fmt"
)

// -----------------------------------------------------------------------------
// Typed Errors (stable categories for programmatic handling)
// -----------------------------------------------------------------------------

// ErrKind classifies errors so callers can branch on intent rather than text.
type ErrKind int

const (
	ErrKindUnknown             ErrKind = iota // anything not raised by this module
	ErrKindInvalidArgument                    // missing/null required argument
	ErrKindInvalidStreamFormat                // bad magic or truncated structural read
	ErrKindUnsupportedVersion                 // header version above the supported ceiling
	ErrKindValidationFailed                   // a field validator rejected a decoded value
	ErrKindIO                                 // underlying file/stream failure
	ErrKindNotFound                           // required container entry is missing
)

// String implements fmt.Stringer for ErrKind.
func (k ErrKind) String() string {
	switch k {
	case ErrKindInvalidArgument:
		return "invalid argument"
	case ErrKindInvalidStreamFormat:
		return "invalid stream format"
	case ErrKindUnsupportedVersion:
		return "unsupported version"
	case ErrKindValidationFailed:
		return "validation failed"
	case ErrKindIO:
		return "i/o failure"
	case ErrKindNotFound:
		return "not found"
	default:
		return "unknown failure"
	}
}

// Error is a typed error with an optional underlying cause.
type Error struct {
	Kind ErrKind
	Msg  string
	Err  error // optional underlying cause
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

// Is matches any *Error of the same Kind, so errors.Is(err, ErrNotFound) holds
// for every not-found error regardless of message.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) || t == nil || e == nil {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels commonly returned by implementations.
var (
	// ErrInvalidArgument indicates a required argument was missing.
	ErrInvalidArgument = &Error{Kind: ErrKindInvalidArgument, Msg: "invalid argument"}
	// ErrInvalidStreamFormat indicates a magic mismatch or truncated structure.
	ErrInvalidStreamFormat = &Error{Kind: ErrKindInvalidStreamFormat, Msg: "invalid stream format"}
	// ErrUnsupportedVersion indicates a header newer than this module understands.
	ErrUnsupportedVersion = &Error{Kind: ErrKindUnsupportedVersion, Msg: "unsupported version"}
	// ErrValidationFailed indicates a field-level validator rejected a value.
	ErrValidationFailed = &Error{Kind: ErrKindValidationFailed, Msg: "validation failed"}
	// ErrIO indicates an underlying I/O failure.
	ErrIO = &Error{Kind: ErrKindIO, Msg: "i/o failure"}
	// ErrNotFound indicates a required entry was missing.
	ErrNotFound = &Error{Kind: ErrKindNotFound, Msg: "not found"}
)

// Errorf builds an *Error of the given kind whose cause is fmt.Errorf(format, args...).
func Errorf(kind ErrKind, format string, args ...any) *Error {
	return &Error{Kind: kind, Msg: kind.String(), Err: fmt.Errorf(format, args...)}
}

// Wrap attaches kind to err unless err already carries a kind.
func Wrap(kind ErrKind, msg string, err error) error {
	if err == nil {
		return nil
	}
	var te *Error
	if errors.As(err, &te) {
		return fmt.Errorf("%s: %w", msg, err)
	}
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf reports the kind of the outermost *Error in err's chain.
// Errors that carry no kind report ErrKindUnknown.
func KindOf(err error) ErrKind {
	var te *Error
	if errors.As(err, &te) && te != nil {
		return te.Kind
	}
	return ErrKindUnknown
}
