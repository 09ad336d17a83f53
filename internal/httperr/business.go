package httperr

import (
	"errors"
	"fmt"
	"strings"
)

// ===============================
// Business (server-side rule violations)
// ===============================

type BusinessError struct {
	Code string
}

func (e BusinessError) Error() string {
	return e.Code
}

func ErrBusiness(code string) error {
	return BusinessError{Code: code}
}

func IsBusiness(err error, code string) bool {
	var be BusinessError
	if errors.As(err, &be) {
		return be.Code == code
	}
	return false
}

// ===============================
// Validation (local, never reaches the network)
// ===============================

// ValidationError names every unmet condition at once so an editor can
// show all warnings together.
type ValidationError struct {
	Code   string
	Fields []string
}

func (e ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return e.Code
	}
	return fmt.Sprintf("%s: %s", e.Code, strings.Join(e.Fields, ", "))
}

func ErrValidation(code string, fields ...string) error {
	return ValidationError{Code: code, Fields: fields}
}

func IsValidation(err error) bool {
	var ve ValidationError
	return errors.As(err, &ve)
}

// ===============================
// Transport (network failure or non-2xx)
// ===============================

type TransportError struct {
	Op         string
	StatusCode int
	Code       string
	Message    string
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Op, e.Err)
	case e.Code != "":
		return fmt.Sprintf("%s: status %d: %s", e.Op, e.StatusCode, e.Code)
	default:
		return fmt.Sprintf("%s: status %d", e.Op, e.StatusCode)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// TransportCode returns the remote error_code carried by a TransportError.
func TransportCode(err error) string {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Code
	}
	return ""
}
