package cachevault

import (
	"time"

	"github.com/rs/zerolog"
)

// Option configures a Vault (functional options pattern).
type Option func(*Vault)

// WithTTL sets the cache TTL. Records are reloaded from the inner vault after this duration.
// Default is 5 minutes. TTL <= 0 means entries never expire (infinite cache).
func WithTTL(d time.Duration) Option {
	return func(v *Vault) {
		v.ttl = d
	}
}

// WithLogger sets the logger for cache diagnostics. Default is zerolog.Nop().
func WithLogger(logger zerolog.Logger) Option {
	return func(v *Vault) {
		v.logger = logger
	}
}
