package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is against any error returned by this package.
var (
	// ErrDivisionByZero indicates a zero divisor for division or modulus.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrInvalidDomain indicates an operand or result outside the valid numeric domain.
	ErrInvalidDomain = errors.New("invalid domain")

	// ErrUnsupportedOperator indicates an operator token outside the registry.
	ErrUnsupportedOperator = errors.New("unsupported operator")

	// ErrMalformedInput indicates input that cannot be interpreted as a number or request.
	ErrMalformedInput = errors.New("malformed input")
)

// Error is a calculation failure carrying its kind and a client-facing message.
type Error struct {
	Kind    error
	Message string
}

// Error returns the client-facing message.
func (e *Error) Error() string {
	return e.Message
}

// Unwrap exposes the kind for errors.Is.
func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) *Error {
	return &Error{
		Kind:    kind,
		Message: fmt.Sprintf(format, args...),
	}
}

// DivisionByZero returns the division-by-zero failure.
func DivisionByZero() error {
	return newError(ErrDivisionByZero, "division by zero")
}

// InvalidDomain returns an invalid-domain failure with the given message.
func InvalidDomain(msg string) error {
	return newError(ErrInvalidDomain, "%s", msg)
}

// UnsupportedOperator returns an unsupported-operator failure naming the token.
func UnsupportedOperator(token string) error {
	return newError(ErrUnsupportedOperator, "unsupported operation: %s", token)
}

// MalformedInput returns a malformed-input failure with the given message.
func MalformedInput(format string, args ...any) error {
	return newError(ErrMalformedInput, format, args...)
}

// ErrorKind returns a short tag for err, used in logs and events.
func ErrorKind(err error) string {
	switch {
	case errors.Is(err, ErrDivisionByZero):
		return "division_by_zero"
	case errors.Is(err, ErrInvalidDomain):
		return "invalid_domain"
	case errors.Is(err, ErrUnsupportedOperator):
		return "unsupported_operator"
	case errors.Is(err, ErrMalformedInput):
		return "malformed_input"
	default:
		return "unknown"
	}
}
