package promptvault

import "github.com/rs/zerolog"

// Option configures a Template built by NewTemplate (functional options pattern).
type Option func(*Template)

// WithVersion sets the initial version. It is validated when the template is saved or bumped.
func WithVersion(version string) Option {
	return func(t *Template) {
		t.Version = version
	}
}

// RegistryOption configures a Registry.
type RegistryOption func(*Registry)

// WithLogger sets the logger that receives fallback warnings and decode diagnostics.
// Default writes warn-level events to stderr.
func WithLogger(logger zerolog.Logger) RegistryOption {
	return func(r *Registry) {
		r.logger = logger
	}
}

// SaveOptions holds per-call settings for Vault.Save.
type SaveOptions struct {
	Folder string // overrides the storage name derived from the type tag
}

// SaveOption configures one Vault.Save call.
type SaveOption func(*SaveOptions)

// WithFolder stores the template under name instead of its type tag.
func WithFolder(name string) SaveOption {
	return func(o *SaveOptions) {
		o.Folder = name
	}
}
