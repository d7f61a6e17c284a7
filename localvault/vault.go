package localvault

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/natefinch/atomic"
	"github.com/rs/zerolog"

	"github.com/skosovsky/promptvault"
	"github.com/skosovsky/promptvault/internal/layout"
)

// Ensures Vault implements promptvault.Vault.
var _ promptvault.Vault = (*Vault)(nil)

// Vault stores template records under a root directory. There is no locking:
// concurrent writers of the same name and version race at the filesystem level.
type Vault struct {
	root     string
	registry *promptvault.Registry
	format   promptvault.Format
	order    promptvault.VersionOrder
	bump     promptvault.Bump
	logger   zerolog.Logger
}

// Option configures a Vault.
type Option func(*Vault)

// WithRegistry sets the registry used to decode records. Default is promptvault.NewRegistry().
func WithRegistry(r *promptvault.Registry) Option {
	return func(v *Vault) { v.registry = r }
}

// WithFormat sets the format of newly written records. Default is YAML.
func WithFormat(f promptvault.Format) Option {
	return func(v *Vault) { v.format = f }
}

// WithVersionOrder sets how Load picks the latest version. Default is promptvault.OrderLexical.
func WithVersionOrder(o promptvault.VersionOrder) Option {
	return func(v *Vault) { v.order = o }
}

// WithCollisionBump sets the component bumped when Save hits an existing version.
// Default is promptvault.DefaultBump.
func WithCollisionBump(b promptvault.Bump) Option {
	return func(v *Vault) { v.bump = b }
}

// WithLogger sets the logger for save diagnostics. Default is zerolog.Nop().
func WithLogger(l zerolog.Logger) Option {
	return func(v *Vault) { v.logger = l }
}

// New creates a Vault rooted at root, creating the directory (and parents) if needed.
func New(root string, opts ...Option) (*Vault, error) {
	if root == "" {
		return nil, fmt.Errorf("localvault: root must not be empty")
	}
	v := &Vault{
		root:   root,
		format: promptvault.FormatYAML,
		order:  promptvault.OrderLexical,
		bump:   promptvault.DefaultBump,
		logger: zerolog.Nop(),
	}
	for _, opt := range opts {
		opt(v)
	}
	if v.registry == nil {
		v.registry = promptvault.NewRegistry()
	}
	if _, err := promptvault.ParseFormat(string(v.format)); err != nil {
		return nil, fmt.Errorf("localvault: %w", err)
	}
	if err := os.MkdirAll(root, 0o750); err != nil {
		return nil, fmt.Errorf("localvault: create root: %w", err)
	}
	return v, nil
}

// Root returns the root directory.
func (v *Vault) Root() string { return v.root }

// Save writes tpl to {root}/{name}/{version}.{ext}. When that version already exists
// in any format, tpl's version is bumped once and the write retried; a second
// collision returns promptvault.ErrVersionExists. tpl's version is only changed when
// the write succeeds.
func (v *Vault) Save(ctx context.Context, tpl promptvault.Variant, opts ...promptvault.SaveOption) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	name, err := promptvault.TargetName(tpl, opts...)
	if err != nil {
		return err
	}
	base := tpl.Base()
	if _, err := promptvault.ParseVersion(base.Version); err != nil {
		return err
	}
	dir := filepath.Join(v.root, name)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return fmt.Errorf("localvault: create %s: %w", dir, err)
	}
	fsys := os.DirFS(v.root)
	exists, err := layout.Has(fsys, name, base.Version)
	if err != nil {
		return err
	}
	prev := base.Version
	if exists {
		if err := base.BumpVersion(v.bump); err != nil {
			return err
		}
		v.logger.Info().Str("name", name).Str("version", prev).Str("bumped", base.Version).
			Msg("version exists, saving under bumped version")
		exists, err = layout.Has(fsys, name, base.Version)
		if err != nil {
			base.Version = prev
			return err
		}
		if exists {
			bumped := base.Version
			base.Version = prev
			return fmt.Errorf("%w: %s@%s (bumped from %s)", promptvault.ErrVersionExists, name, bumped, prev)
		}
	}
	data, err := promptvault.Serialize(tpl, v.format)
	if err != nil {
		base.Version = prev
		return err
	}
	path := filepath.Join(dir, base.Version+v.format.Ext())
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		base.Version = prev
		return fmt.Errorf("localvault: write %s: %w", path, err)
	}
	v.logger.Debug().Str("name", name).Str("version", base.Version).Str("path", path).Msg("template saved")
	return nil
}

// Load reads name at version; an empty version selects the latest stored one.
func (v *Vault) Load(ctx context.Context, name, version string) (promptvault.Variant, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return layout.Load(os.DirFS(v.root), v.registry, name, version, layout.Lookup{Prefer: v.format, Order: v.order})
}

// List returns one entry per template directory with its versions in directory order.
func (v *Vault) List(ctx context.Context) ([]promptvault.Entry, error) {
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}
	return layout.List(os.DirFS(v.root))
}
