package service

import (
	"errors"
	"sort"
	"strings"
)

// Domain errors surfaced to the HTTP layer.
var (
	// ErrInvalidCredentials is returned for unknown email and wrong password
	// alike; callers must never learn which one failed.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrInvalidToken       = errors.New("invalid token")
	ErrNotFound           = errors.New("not found")
	ErrForbidden          = errors.New("forbidden")
)

// ValidationError collects field-level violations, evaluated before any
// persistence call. Field names are lower-case; messages read like
// "can't be blank" so FullMessages can render "Email can't be blank".
type ValidationError struct {
	Fields map[string][]string
}

func newValidationError() *ValidationError {
	return &ValidationError{Fields: map[string][]string{}}
}

func (e *ValidationError) add(field, message string) {
	e.Fields[field] = append(e.Fields[field], message)
}

func (e *ValidationError) empty() bool { return len(e.Fields) == 0 }

func (e *ValidationError) Error() string {
	return "validation failed: " + strings.Join(e.FullMessages(), ", ")
}

// FullMessages renders one "Field message" string per violation, in stable
// field order.
func (e *ValidationError) FullMessages() []string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)

	out := make([]string, 0, len(fields))
	for _, f := range fields {
		label := strings.ToUpper(f[:1]) + f[1:]
		for _, msg := range e.Fields[f] {
			out = append(out, label+" "+msg)
		}
	}
	return out
}
