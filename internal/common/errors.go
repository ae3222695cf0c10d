package common

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors shared across services and handlers. Handlers translate
// these into HTTP status codes; services never touch HTTP types.
var (
	// ErrNotFound covers both "does not exist" and "exists but the caller
	// has no access", so callers cannot probe for resource existence.
	ErrNotFound = errors.New("not found")

	// ErrForbidden means the caller is authenticated but not permitted to
	// perform this specific write.
	ErrForbidden = errors.New("forbidden")

	// ErrAlreadyMember is returned when a user joins a household they
	// already belong to.
	ErrAlreadyMember = errors.New("already a member of this household")

	// ErrUnauthenticated means no usable identity could be resolved from
	// the request.
	ErrUnauthenticated = errors.New("unauthenticated")

	// ErrInvalidIdentity means an identity value could not be parsed.
	ErrInvalidIdentity = errors.New("invalid identity")

	// ErrInviteCodeExhausted is returned when invite code generation keeps
	// colliding with existing codes after bounded retries.
	ErrInviteCodeExhausted = errors.New("could not generate a unique invite code")
)

// ValidationError aggregates field constraint violations. All violated
// fields are collected before the error is returned, never one at a time.
type ValidationError struct {
	Fields map[string]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{Fields: make(map[string]string)}
}

func (e *ValidationError) Add(field, message string) {
	e.Fields[field] = message
}

func (e *ValidationError) HasErrors() bool {
	return len(e.Fields) > 0
}

func (e *ValidationError) Error() string {
	fields := make([]string, 0, len(e.Fields))
	for f := range e.Fields {
		fields = append(fields, f)
	}
	sort.Strings(fields)
	return fmt.Sprintf("validation failed: %s", strings.Join(fields, ", "))
}
