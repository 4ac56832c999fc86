package keccaktree

import "fmt"

// Kind identifies the category of error raised by this package's operations.
type Kind int

const (
	// UnknownAlgorithm is raised by the registry when a tag is not one of
	// Keccak256 or Keccak512.
	UnknownAlgorithm Kind = iota + 1
	// ShortBuffer is raised when an input or output slice cannot hold the
	// required number of bytes at the given offset.
	ShortBuffer
	// InvalidParameter is raised when a parallel-profile or personalization
	// parameter violates its documented constraints.
	InvalidParameter
	// InvalidState is raised when an operation is attempted on a Digest
	// after Destroy.
	InvalidState
)

func (k Kind) String() string {
	switch k {
	case UnknownAlgorithm:
		return "unknown algorithm"
	case ShortBuffer:
		return "short buffer"
	case InvalidParameter:
		return "invalid parameter"
	case InvalidState:
		return "invalid state"
	default:
		return "unknown error kind"
	}
}

// Error is the concrete error type raised by this package. Compare against a
// category with errors.Is and one of the exported sentinels
// (ErrUnknownAlgorithm, ErrShortBuffer, ErrInvalidParameter, ErrInvalidState).
type Error struct {
	Kind Kind
	Op   string // the method that raised the error, e.g. "Finalize"
	Msg  string
}

func (e *Error) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("keccaktree: %s: %s", e.Op, e.Kind)
	}
	return fmt.Sprintf("keccaktree: %s: %s: %s", e.Op, e.Kind, e.Msg)
}

// Is reports whether target is an *Error of the same Kind, so that
// errors.Is(err, ErrShortBuffer) works regardless of Op or Msg.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind
}

// Sentinel errors, one per Kind, for use with errors.Is.
var (
	ErrUnknownAlgorithm = &Error{Kind: UnknownAlgorithm}
	ErrShortBuffer      = &Error{Kind: ShortBuffer}
	ErrInvalidParameter = &Error{Kind: InvalidParameter}
	ErrInvalidState     = &Error{Kind: InvalidState}
)

func newError(kind Kind, op, msg string) *Error {
	return &Error{Kind: kind, Op: op, Msg: msg}
}
