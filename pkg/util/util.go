package util

import (
	"errors"
	"fmt"
	"math"
)

// Error carries a human readable message, the underlying cause and a sentinel
// code. errors.Is matches either the cause or the code.
type Error struct {
	cause   error
	message string
	code    error
}

func (e *Error) Error() string {
	if e.cause == nil {
		return e.message
	}
	return e.message + ": " + e.cause.Error()
}

func (e *Error) Unwrap() []error {
	var errs []error
	for _, err := range [...]error{e.cause, e.code} {
		if err != nil {
			errs = append(errs, err)
		}
	}
	return errs
}

func (e *Error) Code() error { return e.code }

// WrapErrorf builds an *Error. cause may be nil.
func WrapErrorf(cause error, code error, format string, a ...any) error {
	return &Error{cause: cause, code: code, message: fmt.Sprintf(format, a...)}
}

var (
	ErrNotFound      = errors.New("requested item not found")
	ErrBadParamInput = errors.New("invalid parameter")

	ErrInvalidCoordinate = errors.New("invalid coordinate")
	ErrEmptyGrid         = errors.New("grid axis is empty")
	ErrEmptyRoute        = errors.New("route has no waypoints")
	ErrDivisionByZero    = errors.New("division by zero")
	ErrNumericOverflow   = errors.New("numeric overflow")
)

const MessageInternalServerError = "internal server error"

// IsWarning reports whether err only signals a recoverable condition. The
// result returned alongside such an error is still usable.
func IsWarning(err error) bool {
	if err == nil {
		return false
	}
	return errors.Is(err, ErrNumericOverflow)
}

func DegreeToRadians(deg float64) float64 { return deg * math.Pi / 180 }

func RadiansToDegree(rad float64) float64 { return rad * 180 / math.Pi }

func IsFinite(f float64) bool {
	return !math.IsNaN(f) && !math.IsInf(f, 0)
}

func Clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
