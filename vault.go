package promptvault

import (
	"context"
	"fmt"
	"strings"
)

// Vault stores template records by name and version.
// Implementations: localvault (filesystem), embedvault (read-only fs.FS); cachevault and otelvault decorate them.
type Vault interface {
	// Save persists v under the folder override or TagOf(v). An existing version is never
	// overwritten: the vault bumps v's Version once and retries, and the bump is visible on v.
	Save(ctx context.Context, v Variant, opts ...SaveOption) error
	// Load returns the stored record; an empty version selects the latest one.
	Load(ctx context.Context, name, version string) (Variant, error)
	// List returns one Entry per stored name.
	List(ctx context.Context) ([]Entry, error)
}

// Entry is one stored template name with its versions in enumeration order.
type Entry struct {
	Name     string
	Versions []string
}

// ValidateName checks that name is safe as a single path element and a cache key.
func ValidateName(name string) error {
	switch {
	case name == "":
		return fmt.Errorf("%w: empty", ErrInvalidName)
	case strings.ContainsAny(name, `/\:`) || strings.ContainsRune(name, 0):
		return fmt.Errorf("%w: %q contains a separator", ErrInvalidName, name)
	case strings.HasPrefix(name, "."):
		return fmt.Errorf("%w: %q starts with a dot", ErrInvalidName, name)
	case strings.TrimSpace(name) != name:
		return fmt.Errorf("%w: %q has surrounding whitespace", ErrInvalidName, name)
	}
	return nil
}

// TargetName resolves the storage name for v: the WithFolder override when given,
// else TagOf(v). The result is validated with ValidateName. A nil variant, or one
// without a base template, returns ErrInvalidVariant.
func TargetName(v Variant, opts ...SaveOption) (string, error) {
	if _, err := variantValue(v); err != nil {
		return "", err
	}
	var o SaveOptions
	for _, opt := range opts {
		opt(&o)
	}
	name := o.Folder
	if name == "" {
		name = TagOf(v)
	}
	if err := ValidateName(name); err != nil {
		return "", err
	}
	return name, nil
}

// Get loads name at version (latest when empty) from vault.
func Get(ctx context.Context, vault Vault, name, version string) (Variant, error) {
	return vault.Load(ctx, name, version)
}

// GetAs loads a record and asserts its variant type.
func GetAs[T Variant](ctx context.Context, vault Vault, name, version string) (T, error) {
	var zero T
	v, err := vault.Load(ctx, name, version)
	if err != nil {
		return zero, err
	}
	t, ok := v.(T)
	if !ok {
		return zero, fmt.Errorf("%w: %s@%s is %T (tag %q)", ErrInvalidVariant, name, version, v, TagOf(v))
	}
	return t, nil
}

// Save persists v in vault.
func Save(ctx context.Context, vault Vault, v Variant, opts ...SaveOption) error {
	return vault.Save(ctx, v, opts...)
}

// List returns the stored names and versions of vault.
func List(ctx context.Context, vault Vault) ([]Entry, error) {
	return vault.List(ctx)
}
