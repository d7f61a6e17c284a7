// Package config resolves which vault to open from a config file and VAULT_*
// environment variables (viper), and builds it with Open.
package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/skosovsky/promptvault"
	"github.com/skosovsky/promptvault/cachevault"
	"github.com/skosovsky/promptvault/localvault"
	"github.com/skosovsky/promptvault/otelvault"
)

// Vault types accepted in Config.Type.
const (
	TypeLocal  = "local"
	TypeRemote = "remote"
)

// EnvPrefix prefixes every environment key (VAULT_TYPE, VAULT_PATH, ...).
const EnvPrefix = "VAULT"

var (
	// ErrRemoteUnsupported is returned by Open for Type "remote".
	ErrRemoteUnsupported = errors.New("config: remote vault is not supported")
	// ErrInvalidConfig is returned for unknown types, formats or orders.
	ErrInvalidConfig = errors.New("config: invalid configuration")
)

// Config selects and parameterises a vault.
type Config struct {
	Type     string        `mapstructure:"type"`
	Path     string        `mapstructure:"path"`
	Format   string        `mapstructure:"format"`
	Order    string        `mapstructure:"order"`
	CacheTTL time.Duration `mapstructure:"cache_ttl"`
	Trace    bool          `mapstructure:"trace"`
}

// Default returns the configuration used when nothing is set.
func Default() Config {
	return Config{
		Type:   TypeLocal,
		Path:   "templates",
		Format: string(promptvault.FormatYAML),
		Order:  "lexical",
	}
}

// New returns a viper instance with defaults and VAULT_* environment binding.
func New() *viper.Viper {
	v := viper.New()
	d := Default()
	v.SetDefault("type", d.Type)
	v.SetDefault("path", d.Path)
	v.SetDefault("format", d.Format)
	v.SetDefault("order", d.Order)
	v.SetDefault("cache_ttl", d.CacheTTL)
	v.SetDefault("trace", d.Trace)
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	return v
}

// Load reads file (when not empty) into v and decodes the result.
// Environment variables override the file; values set on v (flags) override both.
func Load(v *viper.Viper, file string) (Config, error) {
	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return Config{}, fmt.Errorf("config: read %s: %w", file, err)
		}
	}
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	cfg.Type = strings.ToLower(strings.TrimSpace(cfg.Type))
	return cfg, nil
}

// Validate checks Type, Format and Order without touching the filesystem.
func (c Config) Validate() error {
	switch c.Type {
	case TypeLocal:
	case TypeRemote:
		return ErrRemoteUnsupported
	default:
		return fmt.Errorf("%w: unknown vault type %q", ErrInvalidConfig, c.Type)
	}
	if c.Path == "" {
		return fmt.Errorf("%w: empty path", ErrInvalidConfig)
	}
	if _, err := promptvault.ParseFormat(c.Format); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if _, err := promptvault.ParseVersionOrder(c.Order); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	return nil
}

// Open builds the configured vault: a localvault, wrapped in a cachevault when
// CacheTTL > 0 and then in an otelvault (global tracer provider) when Trace is set.
// A nil reg means promptvault.NewRegistry().
func Open(cfg Config, reg *promptvault.Registry, logger zerolog.Logger) (promptvault.Vault, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	format, _ := promptvault.ParseFormat(cfg.Format)
	order, _ := promptvault.ParseVersionOrder(cfg.Order)
	if reg == nil {
		reg = promptvault.NewRegistry(promptvault.WithLogger(logger))
	}
	local, err := localvault.New(cfg.Path,
		localvault.WithRegistry(reg),
		localvault.WithFormat(format),
		localvault.WithVersionOrder(order),
		localvault.WithLogger(logger),
	)
	if err != nil {
		return nil, err
	}
	logger.Debug().Str("type", cfg.Type).Str("path", cfg.Path).Str("format", string(format)).Msg("vault opened")
	var vault promptvault.Vault = local
	if cfg.CacheTTL > 0 {
		vault = cachevault.New(vault, cachevault.WithTTL(cfg.CacheTTL), cachevault.WithLogger(logger))
	}
	if cfg.Trace {
		vault = otelvault.New(vault)
	}
	return vault, nil
}
