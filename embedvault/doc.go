// Package embedvault provides a read-only vault over an fs.FS (typically embed.FS)
// laid out like a local vault: {root}/{name}/{version}.{yaml|json}.
// Use New with the filesystem and root directory; Save always returns
// promptvault.ErrReadOnly.
package embedvault
