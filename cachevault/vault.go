package cachevault

import (
	"context"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/singleflight"

	"github.com/skosovsky/promptvault"
)

const defaultTTL = 5 * time.Minute

// detachCancel returns a context that survives cancellation of parent but keeps its
// deadline, so one caller giving up does not fail the shared load for the others.
func detachCancel(parent context.Context) (context.Context, context.CancelFunc) {
	ctx := context.WithoutCancel(parent)
	if dl, ok := parent.Deadline(); ok {
		return context.WithDeadline(ctx, dl)
	}
	return context.WithCancel(ctx)
}

// Ensures Vault implements promptvault.Vault.
var _ promptvault.Vault = (*Vault)(nil)

type cacheEntry struct {
	tpl       promptvault.Variant
	expiresAt time.Time
}

func (v *Vault) cacheEntryValid(ent *cacheEntry, now time.Time) bool {
	return v.ttl <= 0 || now.Before(ent.expiresAt)
}

// Vault caches Load results of an inner vault.
type Vault struct {
	inner  promptvault.Vault
	ttl    time.Duration
	logger zerolog.Logger
	mu     sync.RWMutex
	cache  map[string]map[string]*cacheEntry // name -> version ("" for latest) -> entry
	gen    uint64                            // bumped on every eviction
	sf     singleflight.Group
}

// New wraps inner. Panics if inner is nil.
func New(inner promptvault.Vault, opts ...Option) *Vault {
	if inner == nil {
		panic("cachevault: inner vault must not be nil")
	}
	v := &Vault{
		inner:  inner,
		ttl:    defaultTTL,
		logger: zerolog.Nop(),
		cache:  make(map[string]map[string]*cacheEntry),
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// flightKey joins name and version with NUL, which ValidateName rejects in names.
func flightKey(name, version string) string {
	return name + "\x00" + version
}

func (v *Vault) lookup(name, version string) (promptvault.Variant, bool) {
	v.mu.RLock()
	defer v.mu.RUnlock()
	ent, ok := v.cache[name][version]
	if !ok || !v.cacheEntryValid(ent, time.Now()) {
		return nil, false
	}
	return ent.tpl, true
}

func (v *Vault) generation() uint64 {
	v.mu.RLock()
	defer v.mu.RUnlock()
	return v.gen
}

// Load returns a clone of the cached record, loading it from the inner vault on miss or expiry.
func (v *Vault) Load(ctx context.Context, name, version string) (promptvault.Variant, error) {
	if err := promptvault.ValidateName(name); err != nil {
		return nil, err
	}
	if tpl, ok := v.lookup(name, version); ok {
		return promptvault.Clone(tpl)
	}
	if ctx.Err() != nil {
		return nil, ctx.Err()
	}

	res, err, shared := v.sf.Do(flightKey(name, version), func() (any, error) {
		gen := v.generation()
		loadCtx, cancel := detachCancel(ctx)
		defer cancel()
		tpl, err := v.inner.Load(loadCtx, name, version)
		if err != nil {
			return nil, err
		}
		expiresAt := time.Time{}
		if v.ttl > 0 {
			expiresAt = time.Now().Add(v.ttl)
		}
		v.mu.Lock()
		defer v.mu.Unlock()
		// An eviction during the load may have made tpl stale; return it uncached.
		if v.gen != gen {
			return tpl, nil
		}
		if v.cache[name] == nil {
			v.cache[name] = make(map[string]*cacheEntry)
		}
		v.cache[name][version] = &cacheEntry{tpl: tpl, expiresAt: expiresAt}
		return tpl, nil
	})
	if err != nil {
		return nil, err
	}
	v.logger.Debug().Str("name", name).Str("version", version).Bool("shared", shared).Msg("cache miss")
	return promptvault.Clone(res.(promptvault.Variant))
}

// Save delegates to the inner vault and evicts the stored name on success.
func (v *Vault) Save(ctx context.Context, tpl promptvault.Variant, opts ...promptvault.SaveOption) error {
	name, err := promptvault.TargetName(tpl, opts...)
	if err != nil {
		return err
	}
	if err := v.inner.Save(ctx, tpl, opts...); err != nil {
		return err
	}
	v.Evict(name)
	return nil
}

// List delegates to the inner vault; listings are not cached.
func (v *Vault) List(ctx context.Context) ([]promptvault.Entry, error) {
	return v.inner.List(ctx)
}

// Evict removes every cached version of name. Loads of name already in flight are
// not cached, and later latest-version loads start a fresh read. Safe for concurrent use.
func (v *Vault) Evict(name string) {
	v.mu.Lock()
	delete(v.cache, name)
	v.gen++
	v.mu.Unlock()
	v.sf.Forget(flightKey(name, ""))
}

// EvictAll clears the entire cache. Safe for concurrent use.
func (v *Vault) EvictAll() {
	v.mu.Lock()
	v.cache = make(map[string]map[string]*cacheEntry)
	v.gen++
	v.mu.Unlock()
}

// Len returns the number of cached entries, expired ones included.
func (v *Vault) Len() int {
	v.mu.RLock()
	defer v.mu.RUnlock()
	n := 0
	for _, versions := range v.cache {
		n += len(versions)
	}
	return n
}
