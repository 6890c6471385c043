package engine

import (
	"errors"
	"fmt"
)

// Kind classifies every failure the computation engine can surface. The engine
// fails precisely instead of approximating: nothing is retried internally and
// no required value is ever silently defaulted.
type Kind string

const (
	// InvalidInput: an out-of-domain parameter (negative income, multiplier
	// outside its range, disposal before acquisition).
	InvalidInput Kind = "INVALID_INPUT"
	// MissingContext: a dependent value the caller must supply was omitted
	// (e.g. the marginal slab rate for debt STCG).
	MissingContext Kind = "MISSING_CONTEXT"
	// UnreachableGoal: the required contribution or return is non-positive or
	// undefined for the requested horizon.
	UnreachableGoal Kind = "UNREACHABLE_GOAL"
	// InvalidRate: a real rate is undefined (expected return <= inflation).
	InvalidRate Kind = "INVALID_RATE"
	// IncompletePriceData: a holding has no resolvable price in the snapshot.
	IncompletePriceData Kind = "INCOMPLETE_PRICE_DATA"
)

// Error is the engine's only error type.
type Error struct {
	Kind Kind
	Msg  string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Msg)
}

func Errorf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// KindOf extracts the Kind from err, or "" if err is not an engine error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind Kind) bool {
	return KindOf(err) == kind
}
