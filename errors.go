package promptvault

import (
	"errors"
	"fmt"
	"strings"
)

// Sentinel errors for template, codec and vault operations.
// All use prefix "promptvault:" for identification. Callers should use errors.Is/errors.As.
var (
	ErrMissingVariable  = errors.New("promptvault: required template variable not provided")
	ErrMalformedRecord  = errors.New("promptvault: template record is malformed")
	ErrUnknownFormat    = errors.New("promptvault: unknown record format")
	ErrUnknownVariant   = errors.New("promptvault: template variant is not registered")
	ErrInvalidVersion   = errors.New("promptvault: invalid version string")
	ErrInvalidName      = errors.New("promptvault: invalid template name")
	ErrNotFound         = errors.New("promptvault: template not found in vault")
	ErrVersionExists    = errors.New("promptvault: template version already exists")
	ErrReadOnly         = errors.New("promptvault: vault is read-only")
	ErrInvalidVariant   = errors.New("promptvault: value is not a usable template variant")
	ErrUnsupportedField = errors.New("promptvault: variant field has unsupported type")
)

// MissingVariablesError reports every placeholder that had no binding at render time.
// Use errors.Is(err, ErrMissingVariable) and errors.As(err, &missingErr) to inspect.
type MissingVariablesError struct {
	Missing  []string // unbound placeholder names, sorted
	Expected []string // every placeholder of the template, sorted
}

// Error implements error.
func (e *MissingVariablesError) Error() string {
	return fmt.Sprintf("promptvault: missing variables [%s] (expected [%s])",
		strings.Join(e.Missing, ", "), strings.Join(e.Expected, ", "))
}

// Unwrap returns ErrMissingVariable for errors.Is.
func (e *MissingVariablesError) Unwrap() error { return ErrMissingVariable }

// MalformedRecordError wraps a structural problem found while decoding a record.
type MalformedRecordError struct {
	Field string // offending field, empty when the record as a whole is at fault
	Err   error
}

// Error implements error.
func (e *MalformedRecordError) Error() string {
	if e.Field == "" {
		return fmt.Sprintf("%v: %v", ErrMalformedRecord, e.Err)
	}
	return fmt.Sprintf("%v: field %q: %v", ErrMalformedRecord, e.Field, e.Err)
}

// Unwrap exposes both ErrMalformedRecord and the underlying cause.
func (e *MalformedRecordError) Unwrap() []error { return []error{ErrMalformedRecord, e.Err} }

// Compile-time checks that the typed errors implement error.
var (
	_ error = (*MissingVariablesError)(nil)
	_ error = (*MalformedRecordError)(nil)
)
