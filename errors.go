package treeclock

import (
	"errors"
	"fmt"
)

// Error is the failure type returned by every fallible treeclock operation.
//
// Errors carry a Kind for programmatic handling and an Op naming the
// operation that failed. All failures are local and deterministic: the
// library never retries internally, and a failed operation leaves its
// input stamps untouched (trees are immutable and only swapped on
// success).
type Error struct {
	// Kind identifies the error category.
	Kind Kind

	// Op is the operation that failed, e.g. "Join" or "UnmarshalStamp".
	Op string

	// Message is a human-readable description.
	Message string
}

// Kind categorizes treeclock errors.
type Kind string

const (
	// KindInvalidArgument indicates structurally invalid input to an
	// operation expecting invariant-holding trees, such as joining two
	// stamps with overlapping ownership or a wire counter wider than the
	// configured counter size.
	KindInvalidArgument Kind = "INVALID_ARGUMENT"

	// KindInvalidState indicates an operation forbidden by the stamp's
	// current state, such as recording an event on a stamp that owns no
	// part of the identity space.
	KindInvalidState Kind = "INVALID_STATE"

	// KindMalformedData indicates truncated input, a bad tag, a wire
	// version mismatch, or non-canonical padding during deserialization.
	KindMalformedData Kind = "MALFORMED_DATA"

	// KindResourceExhausted indicates that tree depth exceeded the
	// configured safety bound. This guards against adversarial or
	// corrupt serialized input rather than the host call stack.
	KindResourceExhausted Kind = "RESOURCE_EXHAUSTED"
)

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Op, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// IsInvalidArgument reports whether err is a treeclock error of kind
// KindInvalidArgument. Uses errors.As to handle wrapped errors.
func IsInvalidArgument(err error) bool { return hasKind(err, KindInvalidArgument) }

// IsInvalidState reports whether err is a treeclock error of kind
// KindInvalidState. Uses errors.As to handle wrapped errors.
func IsInvalidState(err error) bool { return hasKind(err, KindInvalidState) }

// IsMalformedData reports whether err is a treeclock error of kind
// KindMalformedData. Uses errors.As to handle wrapped errors.
func IsMalformedData(err error) bool { return hasKind(err, KindMalformedData) }

// IsResourceExhausted reports whether err is a treeclock error of kind
// KindResourceExhausted. Uses errors.As to handle wrapped errors.
func IsResourceExhausted(err error) bool { return hasKind(err, KindResourceExhausted) }

func hasKind(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

func errorf(kind Kind, op, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Op:      op,
		Message: fmt.Sprintf(format, args...),
	}
}
