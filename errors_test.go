package promptvault

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMissingVariablesError_Error(t *testing.T) {
	t.Parallel()
	err := &MissingVariablesError{Missing: []string{"b"}, Expected: []string{"a", "b"}}
	assert.Equal(t, "promptvault: missing variables [b] (expected [a, b])", err.Error())
}

func TestMissingVariablesError_errorsAs(t *testing.T) {
	t.Parallel()
	outer := fmt.Errorf("outer: %w", &MissingVariablesError{Missing: []string{"x"}, Expected: []string{"x"}})

	var me *MissingVariablesError
	require.ErrorAs(t, outer, &me)
	assert.Equal(t, []string{"x"}, me.Missing)
	require.ErrorIs(t, outer, ErrMissingVariable)
}

func TestMalformedRecordError(t *testing.T) {
	t.Parallel()
	cause := errors.New("boom")
	err := &MalformedRecordError{Field: "version", Err: cause}
	assert.Contains(t, err.Error(), `field "version"`)
	assert.Contains(t, err.Error(), "boom")
	require.ErrorIs(t, err, ErrMalformedRecord)
	require.ErrorIs(t, err, cause)

	whole := &MalformedRecordError{Err: cause}
	assert.Equal(t, "promptvault: template record is malformed: boom", whole.Error())
}

func TestSentinelErrors_Is(t *testing.T) {
	t.Parallel()
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"missing var", ErrMissingVariable, ErrMissingVariable, true},
		{"not found", ErrNotFound, ErrNotFound, true},
		{"version exists", ErrVersionExists, ErrVersionExists, true},
		{"wrapped not found", fmt.Errorf("%w: %q", ErrNotFound, "x"), ErrNotFound, true},
		{"wrapped invalid name", fmt.Errorf("wrap: %w", ErrInvalidName), ErrInvalidName, true},
		{"wrong target", ErrNotFound, ErrReadOnly, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tt.want, errors.Is(tt.err, tt.target))
		})
	}
}
