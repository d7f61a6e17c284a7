// Package cachevault wraps any promptvault.Vault with a read-through TTL cache.
// Concurrent misses for the same name and version share one inner Load
// (singleflight). Load returns a clone, so callers may mutate the result freely.
// Save delegates to the inner vault and evicts every cached version of the name.
package cachevault
