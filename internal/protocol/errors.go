package protocol

import (
	"errors"
	"fmt"
)

const (
	// Event validation.
	ErrBadRequest    = "E_BAD_REQUEST"
	ErrInvalidTarget = "E_INVALID_TARGET"

	// Geometry.
	ErrDegenerateFacing = "E_DEGENERATE_FACING"

	// Stacked plants.
	ErrNoSupport = "E_NO_SUPPORT"

	ErrInternal = "E_INTERNAL"
)

var knownCodes = map[string]struct{}{
	ErrBadRequest:       {},
	ErrInvalidTarget:    {},
	ErrDegenerateFacing: {},
	ErrNoSupport:        {},
	ErrInternal:         {},
}

func IsKnownCode(code string) bool {
	if code == "" {
		return true
	}
	_, ok := knownCodes[code]
	return ok
}

// Error couples a stable machine code with human-readable context.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Code + ": " + e.Message }

func E(code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// CodeOf extracts the machine code from an error chain, E_INTERNAL when none.
func CodeOf(err error) string {
	var pe *Error
	if errors.As(err, &pe) {
		return pe.Code
	}
	return ErrInternal
}
