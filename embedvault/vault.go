package embedvault

import (
	"context"
	"fmt"
	"io/fs"

	"github.com/skosovsky/promptvault"
	"github.com/skosovsky/promptvault/internal/layout"
)

// Ensures Vault implements promptvault.Vault.
var _ promptvault.Vault = (*Vault)(nil)

// Vault reads template records from an fs.FS. No mutex: the filesystem is read-only.
type Vault struct {
	fsys     fs.FS
	registry *promptvault.Registry
	order    promptvault.VersionOrder
	prefer   promptvault.Format
}

// Option configures a Vault.
type Option func(*Vault)

// WithRegistry sets the registry used to decode records. Default is promptvault.NewRegistry().
func WithRegistry(r *promptvault.Registry) Option {
	return func(v *Vault) { v.registry = r }
}

// WithVersionOrder sets how Load picks the latest version. Default is promptvault.OrderLexical.
func WithVersionOrder(o promptvault.VersionOrder) Option {
	return func(v *Vault) { v.order = o }
}

// WithPreferredFormat sets the format chosen when a version exists in several formats. Default is YAML.
func WithPreferredFormat(f promptvault.Format) Option {
	return func(v *Vault) { v.prefer = f }
}

// New returns a Vault over the root directory of fsys ("" or "." for the whole filesystem).
func New(fsys fs.FS, root string, opts ...Option) (*Vault, error) {
	if fsys == nil {
		return nil, fmt.Errorf("embedvault: filesystem must not be nil")
	}
	if root != "" && root != "." {
		sub, err := fs.Sub(fsys, root)
		if err != nil {
			return nil, fmt.Errorf("embedvault: %w", err)
		}
		fsys = sub
	}
	v := &Vault{fsys: fsys, prefer: promptvault.FormatYAML}
	for _, opt := range opts {
		opt(v)
	}
	if v.registry == nil {
		v.registry = promptvault.NewRegistry()
	}
	return v, nil
}

// Save always fails with promptvault.ErrReadOnly.
func (v *Vault) Save(_ context.Context, tpl promptvault.Variant, opts ...promptvault.SaveOption) error {
	name, err := promptvault.TargetName(tpl, opts...)
	if err != nil {
		return err
	}
	return fmt.Errorf("%w: cannot save %q", promptvault.ErrReadOnly, name)
}

// Load reads name at version; an empty version selects the latest stored one.
func (v *Vault) Load(ctx context.Context, name, version string) (promptvault.Variant, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return layout.Load(v.fsys, v.registry, name, version, layout.Lookup{Prefer: v.prefer, Order: v.order})
}

// List returns one entry per template directory.
func (v *Vault) List(ctx context.Context) ([]promptvault.Entry, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return layout.List(v.fsys)
}
